package service

import (
	"github.com/google/uuid"

	readModel "booklog-backend/internal/domains/read/model"
	"booklog-backend/internal/shared/utils"
)

// identityGroup collects every read of the same real-world work.
// Different users own separate book rows for the same book, grouping by
// normalized "title|author" merges them for analytics without touching
// the schema. The first row seen supplies the canonical book id and the
// display title/author.
type identityGroup struct {
	key    string
	bookID uuid.UUID
	title  string
	author string
	reads  []*readModel.Read
}

// groupByIdentity buckets reads by normalized identity, preserving
// first-seen order so results are deterministic.
func groupByIdentity(reads []*readModel.Read) []*identityGroup {
	index := make(map[string]*identityGroup)
	var groups []*identityGroup

	for _, read := range reads {
		if read.Book == nil {
			continue
		}

		key := utils.IdentityKey(read.Book.Title, read.Book.Author)

		group, ok := index[key]
		if !ok {
			group = &identityGroup{
				key:    key,
				bookID: read.BookID,
				title:  read.Book.Title,
				author: read.Book.Author,
			}
			index[key] = group
			groups = append(groups, group)
		}
		group.reads = append(group.reads, read)
	}

	return groups
}
