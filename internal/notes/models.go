package notes

import "time"

// Note is the sole persisted entity: an id, text content and two
// timestamps. UpdatedAt equals CreatedAt until the first update.
type Note struct {
	ID        int64
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
