package domain

import "time"

// Priority bounds for a todo, inclusive.
const (
	MinPriority = 1
	MaxPriority = 5
)

// Todo is a single task record. OwnerID references the owning user; the
// ownership filter is applied at every access point in the service layer,
// not by the storage schema.
type Todo struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Completed   bool   `json:"completed"`
	OwnerID     int64  `json:"owner_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
