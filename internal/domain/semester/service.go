package semester

import "context"

type SemesterService interface {
	ListSemesters(ctx context.Context) ([]SemesterResponse, error)
	GetSemester(ctx context.Context, id string) (SemesterResponse, error)
	CreateSemester(ctx context.Context, req CreateSemesterRequest) (SemesterResponse, error)
	UpdateSemester(ctx context.Context, req UpdateSemesterRequest) (SemesterResponse, error)

	// DeleteSemester removes the semester together with all of its subjects.
	DeleteSemester(ctx context.Context, id string) error
}
