package notification

import "errors"

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotificationNotOwned = errors.New("notification belongs to another employee")
)
