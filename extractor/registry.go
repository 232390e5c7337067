package extractor

import (
	"context"
	"fmt"
	"sync"

	"github.com/anisan-cli/streamkit/network"
	"github.com/anisan-cli/streamkit/source"
	"github.com/samber/lo"
)

// Registry holds extractors in registration order. The first whose pattern
// matches a URL handles it.
type Registry struct {
	mu         sync.RWMutex
	client     Client
	extractors []*Extractor
}

func NewRegistry(client Client) *Registry {
	return &Registry{client: client}
}

// Register adds an extractor built from config. Names must be unique and a pattern is required.
func (r *Registry) Register(config Config) error {
	if config.Name == "" {
		return fmt.Errorf("extractor name is empty")
	}

	if config.Pattern == nil {
		return fmt.Errorf("extractor %s: pattern is nil", config.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if lo.ContainsBy(r.extractors, func(e *Extractor) bool { return e.Name == config.Name }) {
		return fmt.Errorf("extractor %s is already registered", config.Name)
	}

	r.extractors = append(r.extractors, New(config, r.client))
	return nil
}

// Match returns the first extractor whose pattern matches embedURL.
func (r *Registry) Match(embedURL string) (*Extractor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Find(r.extractors, func(e *Extractor) bool {
		return e.Pattern.MatchString(embedURL)
	})
}

func (r *Registry) Get(name string) (*Extractor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Find(r.extractors, func(e *Extractor) bool {
		return e.Name == name
	})
}

// Names lists the registered names in match order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Map(r.extractors, func(e *Extractor, _ int) string {
		return e.Name
	})
}

// Extractors returns a snapshot of the registered extractors.
func (r *Registry) Extractors() []*Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*Extractor(nil), r.extractors...)
}

// Resolve picks the matching extractor and returns its videos.
func (r *Registry) Resolve(ctx context.Context, embedURL string) ([]*source.Video, error) {
	return r.ResolveWithHeaders(ctx, embedURL, nil)
}

// ResolveWithHeaders is Resolve with extra request headers.
func (r *Registry) ResolveWithHeaders(ctx context.Context, embedURL string, headers map[string]string) ([]*source.Video, error) {
	e, ok := r.Match(embedURL)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedHost, embedURL)
	}

	if len(headers) > 0 {
		e = e.WithHeaders(headers)
	}

	return e.Resolve(ctx, embedURL)
}

// NewDefault returns a registry with every preset registered.
func NewDefault(client Client) *Registry {
	r := NewRegistry(client)
	for _, preset := range Presets() {
		// presets have distinct names and non-nil patterns
		_ = r.Register(preset)
	}
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default is the preset registry backed by network.Default.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewDefault(network.Default())
	})
	return defaultRegistry
}
