package court

import "time"

type Court struct {
	ID         int       `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	HourlyRate int64     `db:"hourly_rate" json:"hourly_rate"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
