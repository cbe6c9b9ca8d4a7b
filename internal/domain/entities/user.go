package entities

import "time"

// User is a display snapshot of an identity-provider account. The core
// stores only the identifier and display metadata; it never authenticates.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
