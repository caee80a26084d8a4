package services

import (
	"database/sql"
	"fmt"
	"strings"

	"stargate/internal/apperrors"
	"stargate/internal/models"
	"stargate/internal/repositories"
)

type PersonService struct {
	personRepo *repositories.PersonRepository
}

func NewPersonService(personRepo *repositories.PersonRepository) *PersonService {
	return &PersonService{
		personRepo: personRepo,
	}
}

// Register creates a new person with the given unique display name. The new
// person has no duty periods and no career dates until a duty is recorded.
func (s *PersonService) Register(name string) (*models.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrInvalidInput)
	}

	exists, err := s.personRepo.ExistsByName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	if exists {
		return nil, fmt.Errorf("person %q %w", name, apperrors.ErrConflict)
	}

	person := models.NewPerson(name)
	if err := s.personRepo.Create(person); err != nil {
		// Unique index on name catches the race between two registrations
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("person %q %w", name, apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	return s.GetByName(name)
}

// GetByName retrieves a person by display name
func (s *PersonService) GetByName(name string) (*models.Person, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrInvalidInput)
	}

	person, err := s.personRepo.GetByName(name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("person %q %w", name, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	return person, nil
}

// List retrieves all people with their current career status, ordered by name
func (s *PersonService) List() ([]*models.Person, error) {
	people, err := s.personRepo.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	return people, nil
}
