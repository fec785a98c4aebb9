package semester

import "context"

type SemesterRepository interface {
	Create(ctx context.Context, newSemester Semester) (Semester, error)
	GetByID(ctx context.Context, id string, userID string) (Semester, error)
	List(ctx context.Context, userID string) ([]Semester, error)
	Update(ctx context.Context, s Semester) (Semester, error)
	Delete(ctx context.Context, id string, userID string) error
}
