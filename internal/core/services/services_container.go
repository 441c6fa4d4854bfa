package services

import (
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth "google.golang.org/api/oauth2/v2"

	portsrepo "github.com/viaensino/via_ensino_app/internal/core/ports/repositories"
	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
	"github.com/viaensino/via_ensino_app/pkg/config"
)

// NewServiceContainer wires every service with its repository dependencies.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	entitlementSvc := NewEntitlementService(
		repos.UserRepo,
		repos.MembershipRepo,
		repos.OrganizationRepo,
		repos.SubscriptionRepo,
		repos.EnrollmentRepo,
		repos.TrainingRepo,
		repos.CatalogRepo,
	)

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Endpoint:     google.Endpoint,
		Scopes:       []string{googleoauth.UserinfoEmailScope, googleoauth.UserinfoProfileScope},
	}

	return &portssvc.ServiceContainer{
		User:         NewUserService(repos.UserRepo),
		Organization: NewOrganizationService(repos.OrganizationRepo, repos.AccountRepo, repos.MembershipRepo),
		Membership:   NewMembershipService(repos.MembershipRepo, repos.OrganizationRepo, repos.UserRepo),
		Sector:       NewSectorService(repos.CatalogRepo, repos.UserRepo, repos.MembershipRepo),
		Training:     NewTrainingService(repos.TrainingRepo, repos.CatalogRepo, repos.UserRepo, repos.MembershipRepo),
		Entitlement:  entitlementSvc,
		Enrollment:   NewEnrollmentService(repos.EnrollmentRepo, repos.TrainingRepo, repos.OrganizationRepo, repos.CatalogRepo, entitlementSvc),
		Progress:     NewProgressService(repos.ProgressRepo, repos.EnrollmentRepo, repos.TrainingRepo),
		Subscription: NewSubscriptionService(repos.SubscriptionRepo, repos.AccountRepo, repos.OrganizationRepo, repos.MembershipRepo, repos.UserRepo),
		Token:        NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTExpiryMinutes)*time.Minute, cfg.JWTIssuer),
		GoogleOAuth:  NewGoogleOAuthService(oauthConfig),
	}
}
