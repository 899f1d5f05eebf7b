package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ===== REQUEST DTOs =====

// UpsertSemesterRequest names or renames one semester for the caller
type UpsertSemesterRequest struct {
	SemesterNumber int     `json:"semester_number"`
	CustomName     *string `json:"custom_name"`
}

func (r UpsertSemesterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SemesterNumber, validation.Required, validation.Min(1)),
		validation.Field(&r.CustomName, validation.By(customNameLength)),
	)
}

func customNameLength(value interface{}) error {
	name, ok := value.(*string)
	if !ok || name == nil {
		return nil
	}
	if len(*name) > 100 {
		return validation.NewError("validation_custom_name", "must be at most 100 characters")
	}
	return nil
}

// ListSemestersRequest pages through semesters, newest first
type ListSemestersRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func (r *ListSemestersRequest) Normalize() {
	if r.Limit < 1 {
		r.Limit = 4
	}
	if r.Limit > 20 {
		r.Limit = 20
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}

// ===== RESPONSE DTOs =====

// SemesterStats aggregates the finished reads inside one semester's range
type SemesterStats struct {
	ReadsFinished         int     `json:"reads_finished"`
	WithoutReview         int     `json:"without_review"`
	Commented             int     `json:"commented"`
	TotalPointsAllegory   float64 `json:"total_points_allegory"`
	TotalPointsReasonable float64 `json:"total_points_reasonable"`
	AvgPointsAllegory     float64 `json:"avg_points_allegory"`
	AvgPointsReasonable   float64 `json:"avg_points_reasonable"`
}

// SemesterResponse combines computed calendar data with the stored annotation
type SemesterResponse struct {
	SemesterNumber int            `json:"semester_number"`
	DisplayName    string         `json:"display_name"`
	CustomName     *string        `json:"custom_name,omitempty"`
	StartDate      string         `json:"start_date"`
	EndDate        string         `json:"end_date"`
	DateRange      string         `json:"date_range"`
	IsCurrent      bool           `json:"is_current"`
	Stats          *SemesterStats `json:"stats,omitempty"`
}

// ListSemestersResponse pages the calendar from the current semester backwards
type ListSemestersResponse struct {
	Items           []*SemesterResponse `json:"items"`
	Total           int                 `json:"total"`
	HasMore         bool                `json:"has_more"`
	CurrentSemester int                 `json:"current_semester"`
}

// CurrentSemesterResponse is the /semesters/current payload
type CurrentSemesterResponse struct {
	SemesterResponse
	Today string `json:"today"`
}
