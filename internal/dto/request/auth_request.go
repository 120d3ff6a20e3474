package request

// RegisterWineryRequest is embedded in registration when the account being
// created manages a winery. The winery starts unapproved.
type RegisterWineryRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description string  `json:"description" validate:"max=1000"`
	Website     string  `json:"website" validate:"omitempty,url"`
	Latitude    float64 `json:"latitude" validate:"latitude"`
	Longitude   float64 `json:"longitude" validate:"longitude"`
}

type RegisterRequest struct {
	Email      string                 `json:"email" validate:"required,email"`
	Password   string                 `json:"password" validate:"required,min=8"`
	FirstName  string                 `json:"first_name" validate:"required,min=2,max=50"`
	LastName   string                 `json:"last_name" validate:"required,min=2,max=50"`
	BirthDate  string                 `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Phone      string                 `json:"phone" validate:"omitempty,min=6,max=20"`
	UserType   string                 `json:"user_type" validate:"required,oneof=tourist winery"`
	CountryID  string                 `json:"country_id" validate:"required,uuid4"`
	LanguageID string                 `json:"language_id" validate:"required,uuid4"`
	GenderID   string                 `json:"gender_id" validate:"required,uuid4"`
	Winery     *RegisterWineryRequest `json:"winery" validate:"omitempty"`
}

// UpdateProfileRequest changes the mutable profile fields. Email, password
// and account type stay fixed.
type UpdateProfileRequest struct {
	FirstName  string `json:"first_name" validate:"required,min=2,max=50"`
	LastName   string `json:"last_name" validate:"required,min=2,max=50"`
	BirthDate  string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Phone      string `json:"phone" validate:"omitempty,min=6,max=20"`
	CountryID  string `json:"country_id" validate:"required,uuid4"`
	LanguageID string `json:"language_id" validate:"required,uuid4"`
	GenderID   string `json:"gender_id" validate:"required,uuid4"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
