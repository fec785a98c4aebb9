package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/attendly/attendly-backend/internal/domain/subject"
	"github.com/attendly/attendly-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const subjectColumns = `
	s.id, s.user_id, s.semester_id, s.name, s.type,
	s.total_classes, s.classes_held, s.classes_attended, s.created_at,
	sem.name`

type subjectRepository struct {
	db *database.DB
}

func NewSubjectRepository(db *database.DB) subject.SubjectRepository {
	return &subjectRepository{db: db}
}

func scanSubject(row pgx.Row) (subject.Subject, error) {
	var s subject.Subject
	err := row.Scan(
		&s.ID, &s.UserID, &s.SemesterID, &s.Name, &s.Type,
		&s.TotalClasses, &s.ClassesHeld, &s.ClassesAttended, &s.CreatedAt,
		&s.SemesterName,
	)
	return s, err
}

// Create implements subject.SubjectRepository.
func (r *subjectRepository) Create(ctx context.Context, newSubject subject.Subject) (subject.Subject, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO subjects (
			id, user_id, semester_id, name, type,
			total_classes, classes_held, classes_attended
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		newSubject.ID,
		newSubject.UserID,
		newSubject.SemesterID,
		newSubject.Name,
		newSubject.Type,
		newSubject.TotalClasses,
		newSubject.ClassesHeld,
		newSubject.ClassesAttended,
	).Scan(&newSubject.CreatedAt)
	if err != nil {
		return subject.Subject{}, fmt.Errorf("failed to create subject: %w", err)
	}

	return newSubject, nil
}

// GetByID implements subject.SubjectRepository.
func (r *subjectRepository) GetByID(ctx context.Context, id string, userID string) (subject.Subject, error) {
	return r.getOne(ctx, id, userID, false)
}

// LockByID implements subject.SubjectRepository.
func (r *subjectRepository) LockByID(ctx context.Context, id string, userID string) (subject.Subject, error) {
	return r.getOne(ctx, id, userID, true)
}

func (r *subjectRepository) getOne(ctx context.Context, id string, userID string, forUpdate bool) (subject.Subject, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + subjectColumns + `
		FROM subjects s
		JOIN semesters sem ON sem.id = s.semester_id
		WHERE s.id = $1 AND s.user_id = $2
	`
	if forUpdate {
		query += " FOR UPDATE OF s"
	}

	s, err := scanSubject(q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return subject.Subject{}, subject.ErrSubjectNotFound
		}
		return subject.Subject{}, fmt.Errorf("failed to get subject: %w", err)
	}

	return s, nil
}

// List implements subject.SubjectRepository.
func (r *subjectRepository) List(ctx context.Context, filter subject.SubjectFilter, userID string) ([]subject.Subject, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"s.user_id = $1"}
	args := []interface{}{userID}

	if filter.SemesterID != nil {
		args = append(args, *filter.SemesterID)
		conditions = append(conditions, fmt.Sprintf("s.semester_id = $%d", len(args)))
	}

	query := `
		SELECT ` + subjectColumns + `
		FROM subjects s
		JOIN semesters sem ON sem.id = s.semester_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY s.created_at DESC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	defer rows.Close()

	subjects := make([]subject.Subject, 0)
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subjects: %w", err)
	}

	return subjects, nil
}

// Update implements subject.SubjectRepository.
func (r *subjectRepository) Update(ctx context.Context, s subject.Subject) (subject.Subject, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH s AS (
			UPDATE subjects
			SET name = $3, type = $4, total_classes = $5,
				classes_held = $6, classes_attended = $7
			WHERE id = $1 AND user_id = $2
			RETURNING *
		)
		SELECT ` + subjectColumns + `
		FROM s
		JOIN semesters sem ON sem.id = s.semester_id
	`

	updated, err := scanSubject(q.QueryRow(ctx, query,
		s.ID, s.UserID, s.Name, s.Type, s.TotalClasses, s.ClassesHeld, s.ClassesAttended,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return subject.Subject{}, subject.ErrSubjectNotFound
		}
		return subject.Subject{}, fmt.Errorf("failed to update subject: %w", err)
	}

	return updated, nil
}

// MarkAttendance implements subject.SubjectRepository.
// The row lock taken by UPDATE serialises concurrent marks, and the cap is
// re-checked against the locked row.
func (r *subjectRepository) MarkAttendance(ctx context.Context, id string, userID string, attended bool) (subject.Subject, error) {
	q := GetQuerier(ctx, r.db)

	attendedIncrement := 0
	if attended {
		attendedIncrement = 1
	}

	query := `
		WITH s AS (
			UPDATE subjects
			SET classes_held = classes_held + 1,
				classes_attended = classes_attended + $3
			WHERE id = $1 AND user_id = $2
			  AND (total_classes IS NULL OR classes_held < total_classes)
			RETURNING *
		)
		SELECT ` + subjectColumns + `
		FROM s
		JOIN semesters sem ON sem.id = s.semester_id
	`

	updated, err := scanSubject(q.QueryRow(ctx, query, id, userID, attendedIncrement))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return subject.Subject{}, fmt.Errorf("failed to mark attendance: %w", err)
	}

	// Nothing updated: either the subject is gone or its term is complete.
	if _, getErr := r.GetByID(ctx, id, userID); getErr != nil {
		return subject.Subject{}, getErr
	}
	return subject.Subject{}, subject.ErrTermComplete
}

// Delete implements subject.SubjectRepository.
func (r *subjectRepository) Delete(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM subjects WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subject.ErrSubjectNotFound
	}

	return nil
}

// DeleteBySemester implements subject.SubjectRepository.
func (r *subjectRepository) DeleteBySemester(ctx context.Context, semesterID string, userID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `DELETE FROM subjects WHERE semester_id = $1 AND user_id = $2 RETURNING id`, semesterID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete subjects of semester: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to delete subjects of semester: %w", err)
	}

	return ids, nil
}
