package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kamilwozniak/portfolio/backend/internal/auth"
	"github.com/kamilwozniak/portfolio/backend/internal/oauth"
	"gorm.io/gorm"
)

// ErrInvalidProfile indicates the provider profile lacked a usable email.
var ErrInvalidProfile = errors.New("users: invalid profile")

// ServiceConfig describes the dependencies of the identity service.
type ServiceConfig struct {
	Database *gorm.DB
	Admins   *auth.AdminDirectory
	Clock    func() time.Time
}

// Service reconciles provider profiles with local user records. The
// upsert is the only mutation path for User.
type Service struct {
	db     *gorm.DB
	admins *auth.AdminDirectory
	now    func() time.Time
}

// NewService constructs the identity service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Database == nil {
		return nil, fmt.Errorf("users: database connection required")
	}
	if cfg.Admins == nil {
		return nil, fmt.Errorf("users: admin directory required")
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Service{db: cfg.Database, admins: cfg.Admins, now: clock}, nil
}

// Upsert looks up the user by email and creates or refreshes the record.
// The linking provider is sticky: provider and provider id are written on
// first login only. The admin flag is recomputed from the allow-list on
// every call so a list change takes effect on the next login.
func (s *Service) Upsert(ctx context.Context, profile oauth.Profile) (User, error) {
	email := normalize(profile.Email)
	if email == "" {
		return User{}, ErrInvalidProfile
	}

	var user User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = User{
			ID:          uuid.NewString(),
			Email:       email,
			Name:        normalize(profile.Name),
			AvatarURL:   normalize(profile.AvatarURL),
			Provider:    profile.Provider,
			ProviderID:  profile.Subject,
			IsAdmin:     s.admins.IsAdmin(email),
			LastLoginAt: s.now(),
		}
		if createErr := s.db.WithContext(ctx).Create(&user).Error; createErr != nil {
			// A concurrent first login may have won the unique-email
			// race; fall back to updating the winner's row.
			var existing User
			if refetchErr := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; refetchErr != nil {
				return User{}, createErr
			}
			return s.refresh(ctx, existing, profile)
		}
		return user, nil
	}
	if err != nil {
		return User{}, err
	}

	return s.refresh(ctx, user, profile)
}

// FindByEmail returns the stored user for the given email.
func (s *Service) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("email = ?", normalize(email)).First(&user).Error
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *Service) refresh(ctx context.Context, user User, profile oauth.Profile) (User, error) {
	user.Name = normalize(profile.Name)
	user.AvatarURL = normalize(profile.AvatarURL)
	user.LastLoginAt = s.now()
	user.IsAdmin = s.admins.IsAdmin(user.Email)

	err := s.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"name":          user.Name,
			"avatar_url":    user.AvatarURL,
			"last_login_at": user.LastLoginAt,
			"is_admin":      user.IsAdmin,
		}).Error
	if err != nil {
		return User{}, err
	}
	return user, nil
}
