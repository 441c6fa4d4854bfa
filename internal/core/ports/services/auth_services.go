package services

import (
	"context"
)

// TokenSvcFacade issues access tokens for authenticated users.
type TokenSvcFacade interface {
	// GenerateAccessToken issues a signed JWT for the user.
	GenerateAccessToken(ctx context.Context, userID string) (string, error)
}

// GoogleUserInfo carries the fields the platform needs from Google's userinfo
// endpoint.
type GoogleUserInfo struct {
	Email string
	Name  string
}

// GoogleOAuthSvcFacade handles the Google OAuth sign-in flow.
type GoogleOAuthSvcFacade interface {
	// AuthCodeURL builds the Google consent URL for the given state.
	AuthCodeURL(state string) string

	// ExchangeCode exchanges an authorization code for the user's identity.
	ExchangeCode(ctx context.Context, code string) (*GoogleUserInfo, error)
}
