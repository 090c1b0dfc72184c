package domain

import "time"

// UserData is one key/value entry owned by a user. Values are opaque text,
// often JSON encoded by the client.
type UserData struct {
	ID        int64
	UserID    int64
	Key       string
	Value     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
