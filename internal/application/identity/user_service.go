package identity

import (
	"context"
	"errors"
	"time"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/identity"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/auth"
	"github.com/eyedist/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// UserService manages login accounts
type UserService struct {
	userRepo   identity.UserRepository
	blacklist  auth.TokenBlacklist
	refreshTTL time.Duration
	publisher  shared.EventPublisher
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, blacklist auth.TokenBlacklist, refreshTTL time.Duration) *UserService {
	return &UserService{userRepo: userRepo, blacklist: blacklist, refreshTTL: refreshTTL}
}

// SetEventPublisher sets the publisher for domain events
func (s *UserService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Create creates a user with a unique email
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	role, err := identity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	user, err := identity.NewUser(req.Name, req.Email, req.Password, role)
	if err != nil {
		return nil, err
	}
	if req.Phone != "" {
		if err := user.UpdateProfile(user.Name, req.Phone); err != nil {
			return nil, err
		}
	}
	if err := s.ensureUniqueEmail(ctx, user.Email); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	application.PublishEvents(ctx, s.publisher, user)

	resp := ToUserResponse(user)
	return &resp, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

func (s *UserService) List(ctx context.Context, filter UserListFilter) ([]UserResponse, int64, error) {
	f := filter.Filter()
	if filter.Role != "" {
		f.Filters["role"] = identity.Role(filter.Role)
	}
	if filter.Active != nil {
		f.Filters["active"] = *filter.Active
	}
	users, total, err := s.userRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return lo.Map(users, func(u *identity.User, _ int) UserResponse { return ToUserResponse(u) }), total, nil
}

// Update edits an account. The last active admin cannot be demoted or
// deactivated, and a password reset or deactivation revokes the user's tokens.
func (s *UserService) Update(ctx context.Context, actor application.Actor, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Phone != nil {
		name, phone := user.Name, user.Phone
		if req.Name != nil {
			name = *req.Name
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := user.UpdateProfile(name, phone); err != nil {
			return nil, err
		}
	}
	if req.Email != nil {
		before := user.Email
		if err := user.ChangeEmail(*req.Email); err != nil {
			return nil, err
		}
		if user.Email != before {
			if err := s.ensureUniqueEmail(ctx, user.Email); err != nil {
				return nil, err
			}
		}
	}
	if req.Role != nil {
		role, err := identity.ParseRole(*req.Role)
		if err != nil {
			return nil, err
		}
		if role != identity.RoleAdmin {
			if err := s.keepAnAdmin(ctx, actor, user); err != nil {
				return nil, err
			}
		}
		if err := user.ChangeRole(role); err != nil {
			return nil, err
		}
	}

	revoke := false
	if req.Active != nil && *req.Active != user.Active {
		if *req.Active {
			user.Activate()
		} else {
			if err := s.keepAnAdmin(ctx, actor, user); err != nil {
				return nil, err
			}
			if err := user.Deactivate(); err != nil {
				return nil, err
			}
			revoke = true
		}
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
		revoke = true
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if revoke {
		s.revokeTokens(ctx, user)
	}
	application.PublishEvents(ctx, s.publisher, user)

	resp := ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile lets the caller edit their own name and phone
func (s *UserService) UpdateProfile(ctx context.Context, actor application.Actor, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(req.Name, req.Phone); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete removes an account that owns no records. Accounts with records
// must be deactivated instead.
func (s *UserService) Delete(ctx context.Context, actor application.Actor, id uuid.UUID) error {
	if actor.UserID == id {
		return shared.NewDomainError("CANNOT_DELETE_SELF", "You cannot delete your own account")
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.keepAnAdmin(ctx, actor, user); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrInUse) {
			return shared.NewDomainError("IN_USE", "User still owns records; deactivate the account instead")
		}
		return err
	}
	s.revokeTokens(ctx, user)
	return nil
}

// keepAnAdmin refuses to take away the last active admin
func (s *UserService) keepAnAdmin(ctx context.Context, actor application.Actor, user *identity.User) error {
	if user.Role != identity.RoleAdmin || !user.Active {
		return nil
	}
	if user.IsSelf(actor.UserID) {
		return shared.NewDomainError("CANNOT_DEMOTE_SELF", "You cannot remove your own admin access")
	}
	n, err := s.userRepo.CountByRole(ctx, identity.RoleAdmin)
	if err != nil {
		return err
	}
	if n <= 1 {
		return shared.NewDomainError("LAST_ADMIN", "At least one active admin is required")
	}
	return nil
}

func (s *UserService) ensureUniqueEmail(ctx context.Context, email string) error {
	taken, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	}
	return nil
}

func (s *UserService) revokeTokens(ctx context.Context, user *identity.User) {
	if s.blacklist == nil {
		return
	}
	if err := s.blacklist.RevokeUser(ctx, user.ID.String(), s.refreshTTL); err != nil {
		logger.L(ctx).Error("Failed to revoke user tokens", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
}
