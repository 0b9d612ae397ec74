package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Generator drafts retail layouts. Both methods return the raw JSON layout
// document; callers validate it before use.
type Generator interface {
	FromText(ctx context.Context, description string) ([]byte, error)
	FromImage(ctx context.Context, image []byte, mimeType string) ([]byte, error)
}

var (
	ErrNoAPIKey      = errors.New("llm: api key not configured")
	ErrEmptyResponse = errors.New("llm: empty response")
	ErrEmptyInput    = errors.New("llm: nothing to generate from")
)

// DefaultTimeout bounds a single generation request.
const DefaultTimeout = 60 * time.Second

// Options selects and configures a generator.
type Options struct {
	Provider string // openai, remote or offline
	APIKey   string
	Model    string
	Endpoint string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// New returns the generator named by opts.Provider. Unknown providers fall
// back to the offline generator.
func New(opts Options) Generator {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "openai":
		return NewOpenAIGenerator(opts.APIKey, opts.Model, opts.Timeout)
	case "remote":
		return NewRemoteGenerator(opts.Endpoint, opts.Timeout)
	case "offline", "":
	default:
		opts.Logger.Warn("unknown llm provider, using offline generator", zap.String("provider", opts.Provider))
	}
	return NewOfflineGenerator()
}

func requireText(description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: empty description", ErrEmptyInput)
	}
	return nil
}

func requireImage(image []byte) error {
	if len(image) == 0 {
		return fmt.Errorf("%w: empty image", ErrEmptyInput)
	}
	return nil
}
