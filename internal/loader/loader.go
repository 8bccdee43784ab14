package loader

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/nao1215/civicdash/internal/model"
)

// DefaultLocation is the well-known path of the seed dataset.
const DefaultLocation = "data/seed.json"

// ErrMalformedDataset is returned when the document is empty, is not a JSON
// object, lacks a top-level key or does not match the dataset shape.
var ErrMalformedDataset = errors.New("malformed dataset document")

// requiredKeys are the top-level keys every dataset document carries.
var requiredKeys = []string{
	"charter",
	"assemblies",
	"modules",
	"auditTimeline",
	"participation",
	"fundingStack",
}

// Loader loads one dataset from one Source, at most once.
type Loader struct {
	source Source
	logger *slog.Logger

	once  sync.Once
	mu    sync.RWMutex
	state State
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a Loader in the Pending phase.
func New(source Source, opts ...Option) *Loader {
	l := &Loader{
		source: source,
		state:  PendingState(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Load fetches and parses the dataset on the first call and records the
// outcome. Later calls return the recorded outcome without fetching again.
// Cancelling ctx during the first call fails the load for good.
func (l *Loader) Load(ctx context.Context) (*model.Dataset, error) {
	l.once.Do(func() {
		l.setState(State{Phase: Loading})
		l.setState(l.load(ctx))
	})

	s := l.State()
	if s.Phase == Failed {
		return nil, s.Err
	}
	return s.Dataset, nil
}

// State returns a snapshot of the lifecycle state.
func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

func (l *Loader) setState(s State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = s
}

func (l *Loader) load(ctx context.Context) State {
	location := l.source.Location()
	l.logger.Info("loading dataset", "location", location)
	start := time.Now()

	data, err := l.source.Fetch(ctx)
	if err != nil {
		l.logger.Error("dataset fetch failed", "location", location, "error", err)
		return FailedState(fmt.Errorf("load %s: %w", location, err))
	}

	ds, err := Parse(data)
	if err != nil {
		l.logger.Error("dataset parse failed", "location", location, "error", err)
		return FailedState(fmt.Errorf("load %s: %w", location, err))
	}

	l.logger.Info("dataset loaded",
		"location", location,
		"fingerprint", ds.Fingerprint,
		"assemblies", len(ds.Assemblies),
		"modules", len(ds.Modules),
		"audit_years", len(ds.AuditTimeline),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return ReadyState(ds)
}

// Parse decodes a dataset document and stamps it with its fingerprint.
func Parse(data []byte) (*model.Dataset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedDataset)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDataset, err)
	}
	if top == nil {
		return nil, fmt.Errorf("%w: document is null", ErrMalformedDataset)
	}
	for _, key := range requiredKeys {
		if _, ok := top[key]; !ok {
			return nil, fmt.Errorf("%w: missing key %q", ErrMalformedDataset, key)
		}
	}

	var ds model.Dataset
	if err := json.Unmarshal(trimmed, &ds); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDataset, err)
	}
	ds.Fingerprint = Fingerprint(trimmed)
	return &ds, nil
}

// Fingerprint returns the hex SHA3-256 digest of a raw document.
func Fingerprint(data []byte) string {
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
