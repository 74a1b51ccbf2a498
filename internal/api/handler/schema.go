package handler

// envelope is the uniform response shape for every operation. Unexpected
// internal detail never crosses this boundary; clients get the success flag,
// a stable message, and the operation's value.
type envelope struct {
	IsSuccess bool   `json:"isSuccess"`
	Message   string `json:"message,omitempty"`
	Value     any    `json:"value,omitempty"`
}

func success(message string, value any) envelope {
	return envelope{IsSuccess: true, Message: message, Value: value}
}

func fail(message string) envelope {
	return envelope{IsSuccess: false, Message: message}
}

// --- Request types ---

// Field bounds mirror the registration contract shared with clients.
type registerRequest struct {
	Username  string `json:"username"  validate:"required,min=3,max=32"`
	Email     string `json:"email"     validate:"required,email,max=256"`
	Password  string `json:"password"  validate:"required,min=6,max=128"`
	FirstName string `json:"firstName" validate:"required,min=2,max=32"`
	LastName  string `json:"lastName"  validate:"required,min=3,max=64"`
	UserType  int    `json:"userType"`
}

type loginRequest struct {
	// Email carries either the email or the username; the service resolves
	// the identifier both ways.
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type profileSaveRequest struct {
	FirstName   string `json:"firstName"   validate:"omitempty,max=32"`
	LastName    string `json:"lastName"    validate:"omitempty,max=64"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=32"`
}

type addressSaveRequest struct {
	Title   string `json:"title"   validate:"required,max=64"`
	Address string `json:"address" validate:"required,max=256"`
}

// --- Response values ---

type loginValue struct {
	UserID      string `json:"userId"`
	BearerToken string `json:"bearerToken"`
	Email       string `json:"email"`
}
