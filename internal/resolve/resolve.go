// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve finds the DOI or arXiv ID of a PDF and retrieves the
// publication's bibliographic metadata from the corresponding lookup
// service (doi.org for DOIs, the arXiv API for preprints).
package resolve

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

const defaultRateLimit = 5.0

// Service implements identifier extraction and metadata lookup. It
// satisfies the renamer.Resolver interface.
type Service struct {
	client  *http.Client
	limiter *rate.Limiter
	cache   *Cache
	cfg     types.ResolverConfig
}

// NewService builds a Service from the configuration. When
// cfg.CachePath is set, lookups are cached in SQLite; a cache that
// fails to open disables caching with a warning rather than aborting.
func NewService(cfg types.ResolverConfig) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = defaultRateLimit
	}

	s := &Service{
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(limit), 1),
		cfg:     cfg,
	}

	if cfg.CachePath != "" {
		cache, err := OpenCache(cfg.CachePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: resolution cache disabled: %v\n", err)
		} else {
			s.cache = cache
		}
	}
	return s
}

// Close releases the resolution cache, if any.
func (s *Service) Close() error {
	if s.cache != nil {
		return s.cache.Close()
	}
	return nil
}

// Resolve inspects the PDF at path and returns its identifier and
// metadata. A zero-valued Resolution with a nil error means no
// identifier was found, which is a normal outcome, not a failure.
func (s *Service) Resolve(ctx context.Context, path string) (types.Resolution, error) {
	identifier, idType, method, err := ExtractIdentifier(path, s.cfg.MaxPages)
	if err != nil {
		return types.Resolution{}, err
	}
	if identifier == "" {
		return types.Resolution{}, nil
	}

	if s.cache != nil {
		if res, ok := s.cache.Get(identifier); ok {
			return res, nil
		}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return types.Resolution{}, err
	}

	var (
		metadata map[string]string
		raw      string
	)
	switch idType {
	case TypeDOI:
		metadata, raw, err = fetchDOI(ctx, s.client, identifier, s.cfg)
	case TypeArxiv:
		metadata, raw, err = fetchArxiv(ctx, s.client, identifier, s.cfg)
	default:
		return types.Resolution{}, fmt.Errorf("unsupported identifier type for %q", identifier)
	}
	if err != nil {
		return types.Resolution{}, fmt.Errorf("looking up %s %s: %w", idType, identifier, err)
	}

	validation := "true"
	if s.cfg.WebValidation {
		validation = raw
	}

	res := types.Resolution{
		Identifier:     identifier,
		IdentifierType: idType.String(),
		Metadata:       metadata,
		ValidationInfo: validation,
		Method:         method,
		Bibtex:         FormatBibtex(metadata),
	}

	if s.cache != nil {
		if err := s.cache.Put(res); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not cache resolution for %s: %v\n", identifier, err)
		}
	}
	return res, nil
}
