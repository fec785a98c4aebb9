package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendly-backend/internal/domain/semester"
	"github.com/attendly/attendly-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type semesterRepository struct {
	db *database.DB
}

func NewSemesterRepository(db *database.DB) semester.SemesterRepository {
	return &semesterRepository{db: db}
}

// Create implements semester.SemesterRepository.
func (r *semesterRepository) Create(ctx context.Context, newSemester semester.Semester) (semester.Semester, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO semesters (id, user_id, name, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		newSemester.ID,
		newSemester.UserID,
		newSemester.Name,
		newSemester.StartDate,
		newSemester.EndDate,
	).Scan(&newSemester.CreatedAt)
	if err != nil {
		return semester.Semester{}, fmt.Errorf("failed to create semester: %w", err)
	}

	return newSemester, nil
}

// GetByID implements semester.SemesterRepository.
func (r *semesterRepository) GetByID(ctx context.Context, id string, userID string) (semester.Semester, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, name, start_date, end_date, created_at
		FROM semesters
		WHERE id = $1 AND user_id = $2
	`

	var s semester.Semester
	err := q.QueryRow(ctx, query, id, userID).Scan(
		&s.ID, &s.UserID, &s.Name, &s.StartDate, &s.EndDate, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return semester.Semester{}, semester.ErrSemesterNotFound
		}
		return semester.Semester{}, fmt.Errorf("failed to get semester: %w", err)
	}

	return s, nil
}

// List implements semester.SemesterRepository.
func (r *semesterRepository) List(ctx context.Context, userID string) ([]semester.Semester, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, name, start_date, end_date, created_at
		FROM semesters
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list semesters: %w", err)
	}
	defer rows.Close()

	semesters := make([]semester.Semester, 0)
	for rows.Next() {
		var s semester.Semester
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.StartDate, &s.EndDate, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan semester: %w", err)
		}
		semesters = append(semesters, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate semesters: %w", err)
	}

	return semesters, nil
}

// Update implements semester.SemesterRepository.
func (r *semesterRepository) Update(ctx context.Context, s semester.Semester) (semester.Semester, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE semesters
		SET name = $3, start_date = $4, end_date = $5
		WHERE id = $1 AND user_id = $2
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, s.ID, s.UserID, s.Name, s.StartDate, s.EndDate).Scan(&s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return semester.Semester{}, semester.ErrSemesterNotFound
		}
		return semester.Semester{}, fmt.Errorf("failed to update semester: %w", err)
	}

	return s, nil
}

// Delete implements semester.SemesterRepository.
func (r *semesterRepository) Delete(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM semesters WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete semester: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return semester.ErrSemesterNotFound
	}

	return nil
}
