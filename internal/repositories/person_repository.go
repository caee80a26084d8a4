package repositories

import (
	"database/sql"
	"time"

	"stargate/internal/models"
)

type PersonRepository struct {
	db              *sql.DB
	caseInsensitive bool
}

func NewPersonRepository(db *sql.DB, caseInsensitive bool) *PersonRepository {
	return &PersonRepository{db: db, caseInsensitive: caseInsensitive}
}

const personColumns = `id, name, current_rank, current_duty_title, career_start_date, career_end_date, created_at, updated_at`

// Create creates a new person
func (r *PersonRepository) Create(person *models.Person) error {
	query := `
		INSERT INTO people (
			id, name
		) VALUES (?, ?)
	`

	_, err := r.db.Exec(query, person.ID, person.Name)
	return err
}

// GetByID retrieves a person by ID
func (r *PersonRepository) GetByID(id string) (*models.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE id = ?`
	return scanPerson(r.db.QueryRow(query, id))
}

// GetByIDTx retrieves a person by ID inside an open transaction
func (r *PersonRepository) GetByIDTx(tx *sql.Tx, id string) (*models.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE id = ?`
	return scanPerson(tx.QueryRow(query, id))
}

// GetByName retrieves a person by display name
func (r *PersonRepository) GetByName(name string) (*models.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE name = ?` + r.collate()
	return scanPerson(r.db.QueryRow(query, name))
}

// ExistsByName checks if a person exists by name
func (r *PersonRepository) ExistsByName(name string) (bool, error) {
	query := `SELECT COUNT(*) FROM people WHERE name = ?` + r.collate()
	var count int
	err := r.db.QueryRow(query, name).Scan(&count)
	return count > 0, err
}

// List retrieves all people ordered by name for stable output
func (r *PersonRepository) List() ([]*models.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people ORDER BY name, id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []*models.Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, person)
	}

	return people, rows.Err()
}

// UpdateStatusTx rewrites the person's derived career fields inside an open
// transaction. Name and ID are immutable and never updated.
func (r *PersonRepository) UpdateStatusTx(tx *sql.Tx, person *models.Person) error {
	query := `
		UPDATE people SET
			current_rank = ?, current_duty_title = ?,
			career_start_date = ?, career_end_date = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := tx.Exec(query,
		person.CurrentRank, person.CurrentDutyTitle,
		formatDate(person.CareerStartDate), formatDate(person.CareerEndDate),
		person.ID,
	)
	return err
}

func (r *PersonRepository) collate() string {
	if r.caseInsensitive {
		return " COLLATE NOCASE"
	}
	return ""
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPerson(row rowScanner) (*models.Person, error) {
	person := &models.Person{}
	var rank, title sql.NullString
	var careerStart, careerEnd sql.NullTime

	err := row.Scan(
		&person.ID, &person.Name, &rank, &title,
		&careerStart, &careerEnd, &person.CreatedAt, &person.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	person.CurrentRank = rank.String
	person.CurrentDutyTitle = title.String
	if careerStart.Valid {
		t := models.DateOnly(careerStart.Time)
		person.CareerStartDate = &t
	}
	if careerEnd.Valid {
		t := models.DateOnly(careerEnd.Time)
		person.CareerEndDate = &t
	}

	return person, nil
}

// formatDate renders an optional calendar date for storage, keeping NULL
// for absent dates.
func formatDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(models.DateFormat)
}
