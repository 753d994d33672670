// Package invite validates onboarding invite codes. Remote validation
// degrades to a local allow-list when the network is unavailable, so an
// outage never blocks onboarding.
package invite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/souravsharma24/onboarding-form-sub000/internal/common/config"
	"github.com/souravsharma24/onboarding-form-sub000/internal/common/httpclient"
	"github.com/souravsharma24/onboarding-form-sub000/internal/common/logger"
	"github.com/souravsharma24/onboarding-form-sub000/internal/storage"
)

// fallbackCodes are the codes accepted when the remote check is unreachable.
var fallbackCodes = map[string]bool{
	"WELCOME123": true,
	"TRADE2024":  true,
	"PARTNER01":  true,
}

type Service struct {
	verifyURL string
	client    *httpclient.Client
	drafts    *storage.Drafts
	logger    logger.Logger
}

func NewService(cfg config.InviteConfig, drafts *storage.Drafts, log logger.Logger) *Service {
	return &Service{
		verifyURL: cfg.VerifyURL,
		client:    httpclient.NewClient(cfg.RequestTimeout),
		drafts:    drafts,
		logger:    log.WithFields(map[string]interface{}{"component": "invite"}),
	}
}

// Validate checks an invite code, remote first, falling back to the local
// allow-list on any network or HTTP failure. A valid code is persisted for
// 24 hours.
func (s *Service) Validate(ctx context.Context, code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}

	valid, err := s.validateRemote(ctx, code)
	if err != nil {
		s.logger.WithError(err).Warn("remote invite check failed, using local allow-list", map[string]interface{}{
			"code": code,
		})
		valid = fallbackCodes[code]
	}

	if valid {
		if err := s.drafts.SaveInvite(ctx, code); err != nil {
			s.logger.WithError(err).Warn("failed to persist invite code", nil)
		}
	}
	return valid
}

// Stored returns the previously validated code, if still unexpired.
func (s *Service) Stored(ctx context.Context) (string, bool) {
	return s.drafts.LoadInvite(ctx)
}

func (s *Service) validateRemote(ctx context.Context, code string) (bool, error) {
	if s.verifyURL == "" {
		return false, fmt.Errorf("no verify endpoint configured")
	}

	body := strings.NewReader(fmt.Sprintf(`{"code":%q}`, code))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, body)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("verify endpoint returned status %d", resp.StatusCode)
	}

	var out struct {
		Valid bool `json:"valid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}
	return out.Valid, nil
}
