package usecase

import (
	"context"
	"sort"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/nldi-service/internal/domain"
	"github.com/nldi-service/internal/domain/repository"
	"github.com/nldi-service/internal/pkg/errors"
)

// registrySnapshot is the immutable view readers see. Align publishes a
// replacement wholesale, so a reader observes either the old or the new set,
// never a partial mix.
type registrySnapshot struct {
	bySuffix map[string]domain.CrawlerSource
	ordered  []domain.CrawlerSource
}

// SourceRegistry makes the set of crawler sources a first-class value. It is
// constructed once per process and cached; the synthetic comid source is
// always resolvable without a database hit.
type SourceRegistry struct {
	repo     repository.CrawlerSourceRepository
	logger   *zap.Logger
	snapshot atomic.Pointer[registrySnapshot]
}

func NewSourceRegistry(ctx context.Context, repo repository.CrawlerSourceRepository, logger *zap.Logger) (*SourceRegistry, error) {
	r := &SourceRegistry{
		repo:   repo,
		logger: logger,
	}
	if err := r.Reload(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload rebuilds the cached map from the crawler_source table and swaps it
// in atomically.
func (r *SourceRegistry) Reload(ctx context.Context) error {
	sources, err := r.repo.List(ctx)
	if err != nil {
		return err
	}

	snap := &registrySnapshot{
		bySuffix: make(map[string]domain.CrawlerSource, len(sources)+1),
	}

	comid := domain.ComidSource()
	snap.bySuffix[comid.FoldedSuffix()] = comid
	snap.ordered = append(snap.ordered, comid)

	for _, src := range sources {
		if src.IsComid() || src.FoldedSuffix() == domain.ComidSourceSuffix {
			r.logger.Warn("Ignoring crawler source shadowing the built-in comid source",
				zap.Int64("id", src.ID))
			continue
		}
		snap.bySuffix[src.FoldedSuffix()] = src
		snap.ordered = append(snap.ordered, src)
	}

	sort.Slice(snap.ordered, func(i, j int) bool {
		return snap.ordered[i].ID < snap.ordered[j].ID
	})

	r.snapshot.Store(snap)
	r.logger.Info("Source registry loaded", zap.Int("sources", len(snap.ordered)))
	return nil
}

// Get resolves a source by case-insensitive suffix.
func (r *SourceRegistry) Get(suffix string) (domain.CrawlerSource, error) {
	snap := r.snapshot.Load()
	src, ok := snap.bySuffix[strings.ToLower(suffix)]
	if !ok {
		return domain.CrawlerSource{}, errors.ErrNotFound.WithMessage("no such source: %s", suffix)
	}
	return src, nil
}

// List returns all sources, synthetic comid included, ordered by source id.
func (r *SourceRegistry) List() []domain.CrawlerSource {
	snap := r.snapshot.Load()
	out := make([]domain.CrawlerSource, len(snap.ordered))
	copy(out, snap.ordered)
	return out
}

// Align reconciles the crawler_source table with a declarative source list:
// missing rows are inserted, changed rows updated, nothing is ever deleted.
// Idempotent. On success the cached map is rebuilt.
func (r *SourceRegistry) Align(ctx context.Context, sources []domain.CrawlerSource) error {
	if err := validateSources(sources); err != nil {
		return err
	}

	for _, src := range sources {
		if err := r.repo.Upsert(ctx, src); err != nil {
			return err
		}
		r.logger.Info("Aligned crawler source",
			zap.Int64("id", src.ID),
			zap.String("suffix", src.FoldedSuffix()),
		)
	}

	return r.Reload(ctx)
}

// validateSources enforces the registry invariants before any row is
// touched: unique case-folded suffixes, reserved comid identity, known
// ingest types.
func validateSources(sources []domain.CrawlerSource) error {
	seen := make(map[string]int64, len(sources))
	for _, src := range sources {
		suffix := src.FoldedSuffix()
		if suffix == "" {
			return errors.ErrConfiguration.WithMessage("source %d has an empty suffix", src.ID)
		}
		if suffix == domain.ComidSourceSuffix || src.ID == domain.ComidSourceID {
			return errors.ErrConfiguration.WithMessage(
				"source %d conflicts with the reserved comid source", src.ID)
		}
		if other, dup := seen[suffix]; dup {
			return errors.ErrConfiguration.WithMessage(
				"duplicate source suffix %q (ids %d and %d)", suffix, other, src.ID)
		}
		seen[suffix] = src.ID

		switch src.IngestType {
		case domain.IngestTypePoint, domain.IngestTypeReach:
		default:
			return errors.ErrConfiguration.WithMessage(
				"source %d has unknown ingest_type %q", src.ID, src.IngestType)
		}
	}
	return nil
}
