package services

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"stargate/internal/apperrors"
	"stargate/internal/models"
	"stargate/internal/repositories"
	"stargate/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AstronautDutyService maintains each person's duty timeline. Recording a new
// duty closes the person's currently open period the day before the new one
// starts, inserts the new period open-ended, and rewrites the person's derived
// career status, all in a single transaction.
type AstronautDutyService struct {
	db           *sql.DB
	personRepo   *repositories.PersonRepository
	dutyRepo     *repositories.AstronautDutyRepository
	retiredTitle string

	// Per-person locks serialize concurrent duty insertions for the same
	// person. Insertions for different people run in parallel.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewAstronautDutyService(db *sql.DB, personRepo *repositories.PersonRepository,
	dutyRepo *repositories.AstronautDutyRepository, retiredTitle string) *AstronautDutyService {
	return &AstronautDutyService{
		db:           db,
		personRepo:   personRepo,
		dutyRepo:     dutyRepo,
		retiredTitle: retiredTitle,
		locks:        make(map[string]*sync.Mutex),
	}
}

// RecordDuty records a new duty assignment for a person.
//
// The person's timeline stays contiguous and non-overlapping: the currently
// open period (if any) is closed at the calendar day immediately before
// startDate, and the new period is inserted with no end date. A start date on
// or before the open period's start date is rejected. If dutyTitle equals the
// configured retirement marker the person's career end date is set to
// startDate; any other title clears it, so a retired person can be
// re-activated by a later duty.
func (s *AstronautDutyService) RecordDuty(personID, rank, dutyTitle string, startDate time.Time) (*models.AstronautDuty, error) {
	if personID == "" {
		return nil, fmt.Errorf("%w: person ID is required", apperrors.ErrInvalidInput)
	}
	if _, err := uuid.Parse(personID); err != nil {
		return nil, fmt.Errorf("%w: invalid person ID format", apperrors.ErrInvalidInput)
	}
	if rank == "" {
		return nil, fmt.Errorf("%w: rank is required", apperrors.ErrInvalidInput)
	}
	if dutyTitle == "" {
		return nil, fmt.Errorf("%w: duty title is required", apperrors.ErrInvalidInput)
	}
	if startDate.IsZero() {
		return nil, fmt.Errorf("%w: duty start date is required", apperrors.ErrInvalidInput)
	}

	start := models.DateOnly(startDate)

	lock := s.personLock(personID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	defer tx.Rollback()

	person, err := s.personRepo.GetByIDTx(tx, personID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("person %q %w", personID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	open, err := s.dutyRepo.GetOpenByPersonIDTx(tx, personID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	if open != nil {
		if !start.After(open.StartDate) {
			return nil, fmt.Errorf("%w: duty start date %s must be after current duty start date %s",
				apperrors.ErrInvalidInput,
				start.Format(models.DateFormat), open.StartDate.Format(models.DateFormat))
		}

		// Close the open period one day before the new duty begins
		if err := s.dutyRepo.CloseTx(tx, open.ID, start.AddDate(0, 0, -1)); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
		}
	}

	duty := models.NewAstronautDuty(personID, rank, dutyTitle, start)
	if err := s.dutyRepo.CreateTx(tx, duty); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	// Rewrite the derived career projection from the new latest period
	person.CurrentRank = rank
	person.CurrentDutyTitle = dutyTitle
	if person.CareerStartDate == nil {
		person.CareerStartDate = &start
	}
	if dutyTitle == s.retiredTitle {
		person.CareerEndDate = &start
	} else {
		person.CareerEndDate = nil
	}

	if err := s.personRepo.UpdateStatusTx(tx, person); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	logger.WithFields(logrus.Fields{
		"person_id":  personID,
		"rank":       rank,
		"duty_title": dutyTitle,
		"start_date": start.Format(models.DateFormat),
	}).Info("Recorded astronaut duty")

	return duty, nil
}

// HistoryFor retrieves a person's duty periods ordered by start date
func (s *AstronautDutyService) HistoryFor(personID string) ([]*models.AstronautDuty, error) {
	if personID == "" {
		return nil, fmt.Errorf("%w: person ID is required", apperrors.ErrInvalidInput)
	}

	_, err := s.personRepo.GetByID(personID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("person %q %w", personID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	duties, err := s.dutyRepo.ListByPersonID(personID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	return duties, nil
}

// HistoryForName retrieves a person and their duty periods by display name
func (s *AstronautDutyService) HistoryForName(name string) (*models.Person, []*models.AstronautDuty, error) {
	person, err := s.personRepo.GetByName(name)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("person %q %w", name, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	duties, err := s.dutyRepo.ListByPersonID(person.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	return person, duties, nil
}

func (s *AstronautDutyService) personLock(personID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[personID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[personID] = lock
	}
	return lock
}
