package dto

// RegisterRequest describes the student sign-up payload.
type RegisterRequest struct {
	RollNumber string `json:"roll_number"`
	Name       string `json:"name"`
	Password   string `json:"password"`
}

// LoginRequest accepts a roll number for students or an email for staff.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// AuthResponse returns the issued session token.
type AuthResponse struct {
	Token string `json:"token"`
}

// UserResponse is the signed-in account without its credentials.
type UserResponse struct {
	UserID    string `json:"user_id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CanteenID string `json:"canteen_id,omitempty"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}
