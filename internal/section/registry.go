package section

import (
	"context"
	"sync"
	"time"

	"github.com/souravsharma24/onboarding-form-sub000/internal/common/logger"
	"github.com/souravsharma24/onboarding-form-sub000/internal/events"
	"github.com/souravsharma24/onboarding-form-sub000/internal/storage"
)

// Registry hands out one Controller per section, created lazily and loaded
// from the draft store on first use.
type Registry struct {
	drafts   *storage.Drafts
	bus      *events.Bus
	logger   logger.Logger
	debounce time.Duration

	mu          sync.Mutex
	controllers map[string]*Controller
}

func NewRegistry(drafts *storage.Drafts, bus *events.Bus, log logger.Logger, debounce time.Duration) *Registry {
	return &Registry{
		drafts:      drafts,
		bus:         bus,
		logger:      log,
		debounce:    debounce,
		controllers: make(map[string]*Controller),
	}
}

// Get returns the controller for a section, creating and loading it on
// first access.
func (r *Registry) Get(ctx context.Context, sectionID string) (*Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.controllers[sectionID]; ok {
		return c, nil
	}

	c, err := NewController(sectionID, r.drafts, r.bus, r.logger, r.debounce)
	if err != nil {
		return nil, err
	}
	c.Load(ctx)
	r.controllers[sectionID] = c
	return c, nil
}

// FlushAll forces any pending autosaves. Called on shutdown.
func (r *Registry) FlushAll(ctx context.Context) {
	r.mu.Lock()
	controllers := make([]*Controller, 0, len(r.controllers))
	for _, c := range r.controllers {
		controllers = append(controllers, c)
	}
	r.mu.Unlock()

	for _, c := range controllers {
		if err := c.Flush(ctx); err != nil {
			r.logger.WithError(err).Warn("flush on shutdown failed", nil)
		}
	}
}

// Reset drops all cached controllers, e.g. after drafts are cleared.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.controllers = make(map[string]*Controller)
}
