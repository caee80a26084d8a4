package models

import (
	"time"

	"github.com/google/uuid"
)

// DateFormat is the storage format for duty dates. Duty timelines work at
// calendar-day granularity; times of day are never stored.
const DateFormat = "2006-01-02"

// AstronautDuty is one contiguous period during which a person held a given
// rank and duty title. EndDate is nil while the duty is still in effect; a
// person has at most one such open period at any time.
type AstronautDuty struct {
	ID        string     `json:"id"`
	PersonID  string     `json:"personId"`
	Rank      string     `json:"rank"`
	DutyTitle string     `json:"dutyTitle"`
	StartDate time.Time  `json:"dutyStartDate"`
	EndDate   *time.Time `json:"dutyEndDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// NewAstronautDuty creates a new open-ended duty period with a generated UUID
func NewAstronautDuty(personID, rank, dutyTitle string, startDate time.Time) *AstronautDuty {
	return &AstronautDuty{
		ID:        uuid.New().String(),
		PersonID:  personID,
		Rank:      rank,
		DutyTitle: dutyTitle,
		StartDate: DateOnly(startDate),
	}
}

// IsOpen reports whether the duty period is still in effect.
func (d *AstronautDuty) IsOpen() bool {
	return d.EndDate == nil
}

// DateOnly truncates a timestamp to its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
