package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func ratingPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func TestCreateReadRequest_RatingValidation(t *testing.T) {
	tests := []struct {
		name   string
		rating *decimal.Decimal
		valid  bool
	}{
		{"nil rating is allowed", nil, true},
		{"minimum half point", ratingPtr(0.5), true},
		{"mid-range half step", ratingPtr(7.5), true},
		{"maximum", ratingPtr(10.0), true},
		{"zero is below minimum", ratingPtr(0), false},
		{"below minimum", ratingPtr(0.3), false},
		{"above maximum", ratingPtr(10.5), false},
		{"quarter step rejected not clamped", ratingPtr(7.25), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := CreateReadRequest{
				BookID: uuid.New(),
				Status: string(StatusRead),
				Rating: tt.rating,
			}
			err := req.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCreateReadRequest_StatusValidation(t *testing.T) {
	req := CreateReadRequest{BookID: uuid.New(), Status: "FINISHED"}
	assert.Error(t, req.Validate())

	req.Status = string(StatusDNF)
	assert.NoError(t, req.Validate())

	req.Status = ""
	assert.Error(t, req.Validate())
}

func TestCreateReadRequest_DateOrder(t *testing.T) {
	started := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	finished := started.AddDate(0, 0, -1)

	req := CreateReadRequest{
		BookID:       uuid.New(),
		Status:       string(StatusRead),
		DateStarted:  &started,
		DateFinished: &finished,
	}
	assert.Error(t, req.Validate())

	finished = started.AddDate(0, 0, 5)
	req.DateFinished = &finished
	assert.NoError(t, req.Validate())
}

func TestUpdateReadRequest_Validation(t *testing.T) {
	empty := UpdateReadRequest{}
	assert.NoError(t, empty.Validate())

	bad := UpdateReadRequest{Rating: ratingPtr(11)}
	assert.Error(t, bad.Validate())

	negative := -5
	assert.Error(t, UpdateReadRequest{BasePoints: &negative}.Validate())
}
