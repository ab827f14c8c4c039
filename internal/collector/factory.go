package collector

import (
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/qepting91/reddit-annotator/internal/config"
	"github.com/qepting91/reddit-annotator/internal/domain"
)

// NeedsLogin reports whether the configured mode authenticates with a profile.
func NeedsLogin(cfg *config.Config) bool {
	return cfg.CollectorMode == config.ModeAPI
}

// NewCollector selects the correct implementation based on the mode.
// creds is only consulted in api mode.
func NewCollector(cfg *config.Config, creds *domain.Credentials, userAgent string) (domain.Collector, error) {
	switch cfg.CollectorMode {
	case config.ModeAPI:
		if creds == nil {
			return nil, fmt.Errorf("credentials are required for api mode")
		}
		return NewAPIClient(creds.ClientID, creds.ClientSecret, userAgent)
	case config.ModePublic:
		return NewPublicClient(cfg.PublicURL, userAgent)
	case config.ModeMock:
		return NewMockClient(clockwork.NewRealClock()), nil
	default:
		return nil, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'api', 'public', or 'mock')", cfg.CollectorMode)
	}
}
