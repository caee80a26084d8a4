package repositories

import (
	"database/sql"
	"time"

	"stargate/internal/models"
)

type AstronautDutyRepository struct {
	db *sql.DB
}

func NewAstronautDutyRepository(db *sql.DB) *AstronautDutyRepository {
	return &AstronautDutyRepository{db: db}
}

const dutyColumns = `id, person_id, rank, duty_title, start_date, end_date, created_at`

// CreateTx inserts a new duty period inside an open transaction
func (r *AstronautDutyRepository) CreateTx(tx *sql.Tx, duty *models.AstronautDuty) error {
	query := `
		INSERT INTO astronaut_duties (
			id, person_id, rank, duty_title, start_date, end_date
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := tx.Exec(query,
		duty.ID, duty.PersonID, duty.Rank, duty.DutyTitle,
		duty.StartDate.Format(models.DateFormat), formatDate(duty.EndDate),
	)
	return err
}

// GetOpenByPersonIDTx returns the person's currently open duty period, or nil
// if the person has none. Runs inside an open transaction so the engine sees
// a consistent timeline.
func (r *AstronautDutyRepository) GetOpenByPersonIDTx(tx *sql.Tx, personID string) (*models.AstronautDuty, error) {
	query := `
		SELECT ` + dutyColumns + `
		FROM astronaut_duties
		WHERE person_id = ? AND end_date IS NULL
	`

	duty, err := scanDuty(tx.QueryRow(query, personID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return duty, nil
}

// CloseTx sets the end date of a duty period inside an open transaction.
// This is the only mutation a duty period ever receives after creation.
func (r *AstronautDutyRepository) CloseTx(tx *sql.Tx, dutyID string, endDate time.Time) error {
	query := `UPDATE astronaut_duties SET end_date = ? WHERE id = ?`

	_, err := tx.Exec(query, endDate.Format(models.DateFormat), dutyID)
	return err
}

// ListByPersonID retrieves all duty periods for a person ordered by start date
func (r *AstronautDutyRepository) ListByPersonID(personID string) ([]*models.AstronautDuty, error) {
	query := `
		SELECT ` + dutyColumns + `
		FROM astronaut_duties
		WHERE person_id = ?
		ORDER BY start_date
	`

	rows, err := r.db.Query(query, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var duties []*models.AstronautDuty
	for rows.Next() {
		duty, err := scanDuty(rows)
		if err != nil {
			return nil, err
		}
		duties = append(duties, duty)
	}

	return duties, rows.Err()
}

func scanDuty(row rowScanner) (*models.AstronautDuty, error) {
	duty := &models.AstronautDuty{}
	var start time.Time
	var end sql.NullTime

	err := row.Scan(
		&duty.ID, &duty.PersonID, &duty.Rank, &duty.DutyTitle,
		&start, &end, &duty.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	duty.StartDate = models.DateOnly(start)
	if end.Valid {
		t := models.DateOnly(end.Time)
		duty.EndDate = &t
	}

	return duty, nil
}
