package domain

// ProfileCreatedEvent is the message published after a successful
// registration so downstream services can provision the account's profile.
// Field names are the wire contract shared with the consumer side.
type ProfileCreatedEvent struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	UserRole  int    `json:"userRole"`
}
