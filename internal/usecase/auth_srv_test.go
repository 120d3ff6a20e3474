package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/eliasjuanpablo/wineapi/internal/dto/request"

	"github.com/google/uuid"
)

func newAuthService() (*AuthService, *fakeUserRepo, *fakeSessionRepo, *fakeWineryRepo) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	wineries := newFakeWineryRepo()
	service := NewAuthService(users, sessions, wineries, testConfig(), testLogger())
	return service, users, sessions, wineries
}

func touristRequest(email string) *request.RegisterRequest {
	return &request.RegisterRequest{
		Email:      email,
		Password:   "secret-password",
		FirstName:  "Ana",
		LastName:   "Lopez",
		BirthDate:  "1990-05-12",
		UserType:   "tourist",
		CountryID:  uuid.NewString(),
		LanguageID: uuid.NewString(),
		GenderID:   uuid.NewString(),
	}
}

func TestRegisterAndLogin(t *testing.T) {
	service, _, sessions, _ := newAuthService()

	user, err := service.Register(context.Background(), touristRequest("ana@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.UserType != "tourist" {
		t.Errorf("user type = %s, want tourist", user.UserType)
	}

	auth, err := service.Login(context.Background(), &request.LoginRequest{
		Email:    "ana@example.com",
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if auth.Token == "" {
		t.Fatal("login returned empty token")
	}
	if _, ok := sessions.sessions[auth.Token]; !ok {
		t.Error("session not stored for token")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	service, _, _, _ := newAuthService()

	if _, err := service.Register(context.Background(), touristRequest("ana@example.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := service.Login(context.Background(), &request.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _, _, _ := newAuthService()

	if _, err := service.Register(context.Background(), touristRequest("ana@example.com")); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	_, err := service.Register(context.Background(), touristRequest("ana@example.com"))
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("second Register = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterWineryAccount(t *testing.T) {
	service, users, _, wineries := newAuthService()

	req := touristRequest("bodega@example.com")
	req.UserType = "winery"
	req.Winery = &request.RegisterWineryRequest{
		Name:      "Finca Example",
		Latitude:  -32.89,
		Longitude: -68.85,
	}

	user, err := service.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.WineryID == nil {
		t.Fatal("winery account has no winery id")
	}

	winery := wineries.wineries[uuid.MustParse(*user.WineryID)]
	if winery == nil {
		t.Fatal("winery not stored")
	}
	if winery.IsApproved() {
		t.Error("new winery must start unapproved")
	}

	stored := users.users[uuid.MustParse(user.ID)]
	if stored.PasswordHash == "secret-password" {
		t.Error("password stored in plain text")
	}
}

func TestRegisterWineryWithoutDetails(t *testing.T) {
	service, _, _, _ := newAuthService()

	req := touristRequest("bodega@example.com")
	req.UserType = "winery"

	_, err := service.Register(context.Background(), req)
	if !errors.Is(err, ErrWineryRequired) {
		t.Fatalf("Register = %v, want ErrWineryRequired", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	service, users, _, _ := newAuthService()

	created, err := service.Register(context.Background(), touristRequest("ana@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	userID, err := uuid.Parse(created.ID)
	if err != nil {
		t.Fatalf("parse user id: %v", err)
	}

	updated, err := service.UpdateProfile(context.Background(), userID, &request.UpdateProfileRequest{
		FirstName:  "Ana Maria",
		LastName:   "Lopez",
		Phone:      "555-0101",
		CountryID:  uuid.NewString(),
		LanguageID: uuid.NewString(),
		GenderID:   uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	if updated.FirstName != "Ana Maria" {
		t.Errorf("first name = %s, want Ana Maria", updated.FirstName)
	}
	stored := users.users[userID]
	if stored.Phone != "555-0101" {
		t.Errorf("stored phone = %s, want 555-0101", stored.Phone)
	}
	if stored.BirthDate != nil {
		t.Error("birth date should clear when omitted from the update")
	}
	if stored.Email != "ana@example.com" {
		t.Errorf("email changed to %s", stored.Email)
	}
}
