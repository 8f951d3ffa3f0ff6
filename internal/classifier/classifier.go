package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/pbaille/notecat/internal/domain"
	"golang.org/x/time/rate"
)

// Categorizer is implemented by every provider variant
type Categorizer interface {
	Categorize(ctx context.Context, content, apiKey string) (string, error)
}

// Dispatcher routes a note to the selected provider and normalizes failures
type Dispatcher struct {
	providers map[domain.Provider]Categorizer
	logger    *slog.Logger

	// rate limiting, zero rps disables it
	rps      float64
	burst    int
	mu       sync.Mutex
	limiters map[domain.Provider]*rate.Limiter
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithLogger sets the logger used for failed attempts
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithRateLimit throttles live calls per provider
func WithRateLimit(rps float64, burst int) Option {
	return func(d *Dispatcher) {
		d.rps = rps
		d.burst = burst
	}
}

// WithProvider registers or replaces the categorizer for a provider
func WithProvider(p domain.Provider, c Categorizer) Option {
	return func(d *Dispatcher) {
		d.providers[p] = c
	}
}

// New creates a Dispatcher wired to the known providers
func New(client *http.Client, opts ...Option) *Dispatcher {
	if client == nil {
		client = http.DefaultClient
	}

	d := &Dispatcher{
		providers: map[domain.Provider]Categorizer{
			domain.ProviderChatGPT: NewOpenAI(client),
			domain.ProviderGemini:  NewGemini(client),
			domain.ProviderClaude:  NewAnthropic(client),
			domain.ProviderMistral: Pending{Name: "Mistral"},
		},
		logger:   slog.Default(),
		limiters: make(map[domain.Provider]*rate.Limiter),
	}

	for _, opt := range opts {
		opt(d)
	}
	if d.burst < 1 {
		d.burst = 1
	}

	return d
}

// Categorize resolves a single category label for content
func (d *Dispatcher) Categorize(ctx context.Context, content string, provider domain.Provider, apiKey string) (string, error) {
	category, err := d.categorize(ctx, content, provider, apiKey)
	if err != nil {
		d.logger.Error("categorize note", "provider", string(provider), "error", err)
		return "", err
	}

	d.logger.Debug("categorized note", "provider", string(provider), "category", category)
	return category, nil
}

func (d *Dispatcher) categorize(ctx context.Context, content string, provider domain.Provider, apiKey string) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", &domain.ConfigurationError{
			Provider: provider,
			Message:  fmt.Sprintf("API key is required for %s", provider),
		}
	}

	c, ok := d.providers[provider]
	if !ok {
		return "", &domain.ConfigurationError{
			Provider: provider,
			Message:  "invalid AI model selected",
		}
	}

	if _, stub := c.(Pending); !stub {
		if err := d.wait(ctx, provider); err != nil {
			return "", &domain.TransportError{Provider: provider, Err: fmt.Errorf("rate limit wait: %w", err)}
		}
	}

	return c.Categorize(ctx, content, apiKey)
}

func (d *Dispatcher) wait(ctx context.Context, provider domain.Provider) error {
	if d.rps <= 0 {
		return nil
	}

	d.mu.Lock()
	limiter, ok := d.limiters[provider]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), d.burst)
		d.limiters[provider] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// Pending stands in for a provider that has no implementation yet
type Pending struct {
	Name string
}

// Categorize returns the placeholder category without any network call
func (p Pending) Categorize(ctx context.Context, content, apiKey string) (string, error) {
	return fmt.Sprintf("Uncategorized (%s implementation pending)", p.Name), nil
}

func taxonomyList() string {
	return strings.Join(domain.Taxonomy, ", ")
}
