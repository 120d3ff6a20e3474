package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserType string

const (
	UserTypeTourist UserType = "tourist"
	UserTypeWinery  UserType = "winery"
	UserTypeAdmin   UserType = "admin"
)

type User struct {
	Base
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	BirthDate    *time.Time `db:"birth_date"`
	Phone        string     `db:"phone"`
	UserType     UserType   `db:"user_type"`
	WineryID     *uuid.UUID `db:"winery_id"`
	CountryID    uuid.UUID  `db:"country_id"`
	LanguageID   uuid.UUID  `db:"language_id"`
	GenderID     uuid.UUID  `db:"gender_id"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
