package semester

import "time"

type Semester struct {
	ID        string
	UserID    string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
}
