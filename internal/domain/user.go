package domain

// User is the authenticated profile returned by /auth/user/.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Credentials is a login request.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is a signup request. Password is sent twice, matching the
// backend's registration endpoint.
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}
