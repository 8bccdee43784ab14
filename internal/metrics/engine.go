package metrics

import (
	"log/slog"
	"sync/atomic"

	gocache "github.com/patrickmn/go-cache"

	"github.com/nao1215/civicdash/internal/model"
)

// summaryKeyPrefix namespaces memoized summaries in the cache.
const summaryKeyPrefix = "civicdash:v1:summary:"

// Engine memoizes dataset summaries keyed by dataset fingerprint.
// Entries never expire; a dataset is immutable for the life of its
// fingerprint.
type Engine struct {
	cache  *gocache.Cache
	logger *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEngineLogger sets the logger used for cache diagnostics.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an Engine with an empty cache.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Summary returns the Summary of ds, computing it on first use.
// Datasets without a fingerprint are summarized every time.
func (e *Engine) Summary(ds *model.Dataset) Summary {
	if ds.Fingerprint == "" {
		e.misses.Add(1)
		return Summarize(ds)
	}

	key := summaryKeyPrefix + ds.Fingerprint
	if cached, found := e.cache.Get(key); found {
		if s, ok := cached.(Summary); ok {
			e.hits.Add(1)
			return s
		}
	}

	e.misses.Add(1)
	s := Summarize(ds)
	e.cache.Set(key, s, gocache.NoExpiration)
	e.logger.Debug("summary computed",
		"fingerprint", ds.Fingerprint,
		"assemblies", s.AssemblyCount,
		"modules", s.ModuleCount,
	)
	return s
}

// EngineStats reports cache usage.
type EngineStats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// Stats returns the current cache usage.
func (e *Engine) Stats() EngineStats {
	return EngineStats{
		Hits:    e.hits.Load(),
		Misses:  e.misses.Load(),
		Entries: e.cache.ItemCount(),
	}
}
