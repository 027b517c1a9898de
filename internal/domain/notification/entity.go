package notification

import "time"

// Notification is one durable row read back by polling; there is no push
// channel. RecipientID nil means the row is global and appears in every
// employee's feed at read time.
type Notification struct {
	ID          string
	RecipientID *string
	Message     string
	IsRead      bool
	CreatedAt   time.Time
}

// IsGlobal reports whether the row fans out to all employees.
func (n Notification) IsGlobal() bool {
	return n.RecipientID == nil
}
