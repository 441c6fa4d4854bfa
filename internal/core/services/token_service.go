package services

import (
	"context"
	"time"

	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
	"github.com/viaensino/via_ensino_app/internal/utils"
)

// tokenService issues signed access tokens.
type tokenService struct {
	BaseService
	secret string
	expiry time.Duration
	issuer string
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(secret string, expiry time.Duration, issuer string) portssvc.TokenSvcFacade {
	return &tokenService{secret: secret, expiry: expiry, issuer: issuer}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

func (s *tokenService) GenerateAccessToken(ctx context.Context, userID string) (string, error) {
	token, err := utils.GenerateJWT(userID, s.secret, s.expiry, s.issuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token")
		return "", err
	}
	return token, nil
}
