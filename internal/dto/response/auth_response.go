package response

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	BirthDate *string `json:"birth_date,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	UserType  string  `json:"user_type"`
	WineryID  *string `json:"winery_id,omitempty"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      UserResponse `json:"user"`
}
