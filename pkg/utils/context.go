package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UserTypeKey contextKey = "user_type"
	WineryIDKey contextKey = "winery_id"
)

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return uuid.Nil, false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

func GetUserTypeFromContext(ctx context.Context) (string, bool) {
	typeVal := ctx.Value(UserTypeKey)
	if typeVal == nil {
		return "", false
	}

	userType, ok := typeVal.(string)
	return userType, ok
}

// GetWineryIDFromContext returns the winery owned by the authenticated user.
// Present only for winery accounts.
func GetWineryIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	wineryVal := ctx.Value(WineryIDKey)
	if wineryVal == nil {
		return uuid.Nil, false
	}

	wineryStr, ok := wineryVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	wineryID, err := uuid.Parse(wineryStr)
	if err != nil {
		return uuid.Nil, false
	}

	return wineryID, true
}

func SetUserContext(ctx context.Context, userID uuid.UUID, userType string, wineryID *uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID.String())
	ctx = context.WithValue(ctx, UserTypeKey, userType)
	if wineryID != nil {
		ctx = context.WithValue(ctx, WineryIDKey, wineryID.String())
	}
	return ctx
}
