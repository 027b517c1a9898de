package holiday

import "time"

// Holiday is read-only reference data for clients; one row per calendar date.
type Holiday struct {
	ID        string
	Name      string
	Date      time.Time
	CreatedAt time.Time
}
