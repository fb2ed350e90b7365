package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/traineeline/internal/models"
	"github.com/julianstephens/traineeline/internal/storage"
)

const holidayColumns = "id, date, name, deleted_at"

// AddHoliday inserts a holiday, or revives and renames the existing row for
// the same date.
func (s *Store) AddHoliday(h models.Holiday) error {
	if err := h.Validate(); err != nil {
		return err
	}
	if h.ID == "" {
		h.ID = uuid.New().String()
	}

	_, err := s.db.Exec(`
		INSERT INTO holidays (id, date, name, created_at, deleted_at)
		VALUES (?, ?, ?, ?, NULL)
		ON CONFLICT(date) DO UPDATE SET name = excluded.name, deleted_at = NULL`,
		h.ID, h.Date, h.Name, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save holiday %s: %w", h.Date, err)
	}
	return nil
}

func (s *Store) GetHoliday(date string) (models.Holiday, error) {
	row := s.db.QueryRow(`SELECT `+holidayColumns+` FROM holidays WHERE date = ? AND deleted_at IS NULL`, date)
	h, err := scanHoliday(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Holiday{}, fmt.Errorf("%w: %s", storage.ErrNotFound, date)
	}
	return h, err
}

func (s *Store) GetHolidays(from, to string) ([]models.Holiday, error) {
	rows, err := s.db.Query(`
		SELECT `+holidayColumns+` FROM holidays
		WHERE date >= ? AND date <= ? AND deleted_at IS NULL
		ORDER BY date`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHolidays(rows)
}

func (s *Store) GetAllHolidays(includeDeleted bool) ([]models.Holiday, error) {
	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE deleted_at IS NULL ORDER BY date`
	if includeDeleted {
		query = `SELECT ` + holidayColumns + ` FROM holidays ORDER BY date`
	}
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHolidays(rows)
}

func (s *Store) DeleteHoliday(date string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	result, err := s.db.Exec(`UPDATE holidays SET deleted_at = ? WHERE date = ? AND deleted_at IS NULL`, now, date)
	if err != nil {
		return err
	}
	return requireRow(result, date)
}

func (s *Store) RestoreHoliday(date string) error {
	result, err := s.db.Exec(`UPDATE holidays SET deleted_at = NULL WHERE date = ? AND deleted_at IS NOT NULL`, date)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("no deleted holiday found for %s", date)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHoliday(row scanner) (models.Holiday, error) {
	var h models.Holiday
	var deletedAt sql.NullString
	if err := row.Scan(&h.ID, &h.Date, &h.Name, &deletedAt); err != nil {
		return models.Holiday{}, err
	}
	if deletedAt.Valid {
		h.DeletedAt = &deletedAt.String
	}
	return h, nil
}

func scanHolidays(rows *sql.Rows) ([]models.Holiday, error) {
	var holidays []models.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

func requireRow(result sql.Result, date string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, date)
	}
	return nil
}
