package entry

import "time"

// Entry represents a single logged day activity
type Entry struct {
	ID        string     `json:"id"`
	Date      string     `json:"date"` // YYYY-MM-DD
	TimeOfDay TimeOfDay  `json:"time_of_day"`
	Category  Category   `json:"category"`
	Emoji     string     `json:"emoji"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// IsEmpty reports whether the entry has neither content nor emoji.
// Such entries are rejected at save time.
func (e Entry) IsEmpty() bool {
	return e.Content == "" && e.Emoji == ""
}

// Edited reports whether the entry has been modified since creation.
func (e Entry) Edited() bool {
	return e.UpdatedAt != nil
}
