package subject

import "context"

// SubjectRepository scopes every lookup by userID so one account never sees another's subjects.
type SubjectRepository interface {
	Create(ctx context.Context, newSubject Subject) (Subject, error)

	GetByID(ctx context.Context, id string, userID string) (Subject, error)

	// LockByID is GetByID with a row lock held until the surrounding transaction ends.
	LockByID(ctx context.Context, id string, userID string) (Subject, error)

	List(ctx context.Context, filter SubjectFilter, userID string) ([]Subject, error)

	Update(ctx context.Context, s Subject) (Subject, error)

	// MarkAttendance increments classes_held, and classes_attended when attended
	// is true, in one statement. It returns ErrTermComplete once the cap is reached.
	MarkAttendance(ctx context.Context, id string, userID string, attended bool) (Subject, error)

	Delete(ctx context.Context, id string, userID string) error

	// DeleteBySemester returns the ids of the removed subjects.
	DeleteBySemester(ctx context.Context, semesterID string, userID string) ([]string, error)
}
