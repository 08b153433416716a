package apilogs

import (
	"time"

	"github.com/nathants/apilogs/lib"
)

// Handlers hold only process-wide, read-only state. Every invocation builds
// its own entries and dynamodb inputs, so one Handlers is safe to share
// across concurrent invocations.
type Handlers struct {
	Config Config
	Store  *Store
	Now    func() time.Time
	NewID  func(time.Time) string
}

func NewHandlers(cfg Config, api DynamoDBAPI) *Handlers {
	if cfg.Table == "" {
		cfg.Table = DefaultTable
	}
	if cfg.WebsiteDir == "" {
		cfg.WebsiteDir = DefaultWebsiteDir(cfg.HandlerDir)
	}
	return &Handlers{
		Config: cfg,
		Store:  NewStore(api, cfg.Table),
		Now:    time.Now,
		NewID:  NewLogID,
	}
}

func NewHandlersFromEnv() *Handlers {
	return NewHandlers(ConfigFromEnv(), lib.DynamoDBClient())
}
