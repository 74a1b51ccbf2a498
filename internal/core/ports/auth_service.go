package ports

import "context"

// RegisterInput carries a validated registration request into the service.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	UserType  int
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	UserID      string
	BearerToken string
	Email       string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) error
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
}
