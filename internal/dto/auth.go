package dto

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the ledger's answer to a successful login.
// Username and FullName are optional on the wire.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username,omitempty"`
	FullName string `json:"fullName,omitempty"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName" binding:"required"`
}

// MessageResponse is the shape of acknowledgements and of every error body.
type MessageResponse struct {
	Message string `json:"message"`
}
