package marketdata

import (
	"time"

	"llm-stock-analyst/internal/interfaces"
	"llm-stock-analyst/internal/store"
)

type Params struct {
	APIKey      string
	AccessToken string
}

// New builds the provider the config asks for and wraps it in the history
// cache. STATIC is the default and needs no credentials.
func New(cfg *store.Config, p Params) interfaces.Provider {
	var upstream interfaces.Provider
	if cfg.DataSource == "LIVE" {
		upstream = NewKiteProvider(p.APIKey, p.AccessToken, cfg.Exchange)
	} else {
		upstream = NewStaticProvider()
	}

	ttl := time.Duration(cfg.PollSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	return NewCachedProvider(upstream, ttl)
}
