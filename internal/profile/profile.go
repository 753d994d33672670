// Package profile stores the single user profile record.
package profile

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/souravsharma24/onboarding-form-sub000/internal/common/logger"
	"github.com/souravsharma24/onboarding-form-sub000/internal/storage"
)

// User is persisted whole-record with no history and no expiry.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Initials    string `json:"initials"`
	CompanyName string `json:"companyName"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

type Service struct {
	drafts *storage.Drafts
	logger logger.Logger
}

func NewService(drafts *storage.Drafts, log logger.Logger) *Service {
	return &Service{
		drafts: drafts,
		logger: log.WithFields(map[string]interface{}{"component": "profile"}),
	}
}

// Get returns the stored profile, seeding and persisting a default record
// on first access.
func (s *Service) Get(ctx context.Context) User {
	var user User
	if ok := s.drafts.LoadUser(ctx, &user); ok {
		return user
	}

	user = defaultUser()
	if err := s.drafts.SaveUser(ctx, user); err != nil {
		s.logger.WithError(err).Warn("failed to seed default profile", nil)
	}
	return user
}

// Update replaces the stored record. The ID is preserved and initials are
// rederived from the display name.
func (s *Service) Update(ctx context.Context, updated User) (User, error) {
	current := s.Get(ctx)
	updated.ID = current.ID
	updated.Initials = initials(updated.DisplayName)

	if err := s.drafts.SaveUser(ctx, updated); err != nil {
		return current, err
	}
	return updated, nil
}

func defaultUser() User {
	name := "New Trader"
	return User{
		ID:          uuid.NewString(),
		Username:    "trader",
		DisplayName: name,
		Email:       "trader@example.com",
		Initials:    initials(name),
	}
}

func initials(displayName string) string {
	var b strings.Builder
	for _, part := range strings.Fields(displayName) {
		if b.Len() >= 2 {
			break
		}
		r := []rune(part)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	if b.Len() == 0 {
		return "U"
	}
	return b.String()
}
