package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/viaensino/via_ensino_app/internal/apperrors"
	"github.com/viaensino/via_ensino_app/internal/core/domain"
	portsrepo "github.com/viaensino/via_ensino_app/internal/core/ports/repositories"
	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
	"github.com/viaensino/via_ensino_app/internal/dto"
	"github.com/viaensino/via_ensino_app/internal/utils"
)

// userService implements user lifecycle and credential verification.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.ListUsers(ctx, limit, offset)
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, err
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		GlobalRole:   domain.RoleStandard,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("email", req.Email))
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("userID", user.UserID))
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updatedBy string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = updatedBy

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("userID", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID, actorID string) error {
	if userID != actorID {
		actor, err := s.userRepo.FindUserByID(ctx, actorID)
		if err != nil {
			return err
		}
		if actor.GlobalRole != domain.RoleSystemAdmin {
			return apperrors.NewForbiddenError("users can only delete their own account")
		}
	}
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.DeleteUser(ctx, userID)
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) FindOrCreateByEmail(ctx context.Context, email, name string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	created := domain.User{
		UserID:     uuid.NewString(),
		Name:       name,
		Email:      email,
		GlobalRole: domain.RoleStandard,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	created.CreatedBy = created.UserID
	created.LastUpdatedBy = created.UserID

	if err := s.userRepo.SaveUser(ctx, created); err != nil {
		s.LogError(ctx, err, "Failed to save externally authenticated user", slog.String("email", email))
		return nil, err
	}
	s.LogInfo(ctx, "User created from external identity", slog.String("userID", created.UserID))
	return &created, nil
}
