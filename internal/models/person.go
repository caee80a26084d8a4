package models

import (
	"time"

	"github.com/google/uuid"
)

// Person represents a registered person and the denormalized projection of
// their astronaut career. CurrentRank, CurrentDutyTitle, CareerStartDate and
// CareerEndDate are derived from the person's duty periods and are rewritten
// by the duty service on every duty insertion.
type Person struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	CurrentRank      string     `json:"currentRank,omitempty"`
	CurrentDutyTitle string     `json:"currentDutyTitle,omitempty"`
	CareerStartDate  *time.Time `json:"careerStartDate,omitempty"`
	CareerEndDate    *time.Time `json:"careerEndDate,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// NewPerson creates a new Person with a generated UUID and no career yet
func NewPerson(name string) *Person {
	return &Person{
		ID:   uuid.New().String(),
		Name: name,
	}
}

// HasCareer reports whether the person has at least one duty period.
func (p *Person) HasCareer() bool {
	return p.CareerStartDate != nil
}
