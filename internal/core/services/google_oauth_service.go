package services

import (
	"context"

	"golang.org/x/oauth2"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
)

// googleOAuthService drives the Google sign-in flow: consent URL, code
// exchange, and userinfo lookup.
type googleOAuthService struct {
	BaseService
	oauthConfig *oauth2.Config
}

// NewGoogleOAuthService creates a new instance of googleOAuthService.
func NewGoogleOAuthService(oauthConfig *oauth2.Config) portssvc.GoogleOAuthSvcFacade {
	return &googleOAuthService{oauthConfig: oauthConfig}
}

var _ portssvc.GoogleOAuthSvcFacade = (*googleOAuthService)(nil)

func (s *googleOAuthService) AuthCodeURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (s *googleOAuthService) ExchangeCode(ctx context.Context, code string) (*portssvc.GoogleUserInfo, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		s.LogError(ctx, err, "Failed to exchange authorization code")
		return nil, err
	}

	oauth2Service, err := googleoauth.NewService(ctx, option.WithTokenSource(s.oauthConfig.TokenSource(ctx, token)))
	if err != nil {
		s.LogError(ctx, err, "Failed to build userinfo client")
		return nil, err
	}
	userInfo, err := oauth2Service.Userinfo.Get().Do()
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch userinfo")
		return nil, err
	}

	return &portssvc.GoogleUserInfo{
		Email: userInfo.Email,
		Name:  userInfo.Name,
	}, nil
}
