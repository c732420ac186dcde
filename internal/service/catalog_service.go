package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/anyulbade/card-fee-simulator/internal/model"
	"github.com/anyulbade/card-fee-simulator/internal/repository"
)

type RateSourceReader interface {
	Read(ctx context.Context, src model.RateSource) (model.RateTable, error)
}

// LoadCatalog reads every source and builds the catalog. A failing source does
// not stop the others, but any failure means no catalog is returned: the
// caller gets LoadErrors listing all of them in source order.
func LoadCatalog(ctx context.Context, reader RateSourceReader, mode model.CalcMode, sources []model.RateSource, concurrency int) (*model.RateCatalog, error) {
	tables := make([]model.RateTable, len(sources))
	failures := make([]*LoadError, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, src := range sources {
		g.Go(func() error {
			table, err := reader.Read(gctx, src)
			if err != nil {
				kind := SourceParseError
				if errors.Is(err, repository.ErrSourceNotFound) {
					kind = SourceNotFound
				}
				failures[i] = &LoadError{Kind: kind, Source: src, Err: err}
				return nil
			}
			tables[i] = table
			return nil
		})
	}
	_ = g.Wait()

	var loadErrs LoadErrors
	for _, le := range failures {
		if le == nil {
			continue
		}
		log.Error().
			Str("provider", le.Source.Provider).
			Str("brand", le.Source.Brand).
			Str("locator", le.Source.Locator).
			Str("kind", string(le.Kind)).
			Err(le.Err).
			Msg("rate source failed to load")
		loadErrs = append(loadErrs, le)
	}
	if len(loadErrs) > 0 {
		log.Warn().Int("failed", len(loadErrs)).Int("sources", len(sources)).Msg("rate catalog not loaded")
		return nil, loadErrs
	}

	var providers []string
	byProvider := make(map[string]map[string]model.RateTable)
	for i, src := range sources {
		brands, ok := byProvider[src.Provider]
		if !ok {
			brands = make(map[string]model.RateTable)
			byProvider[src.Provider] = brands
			providers = append(providers, src.Provider)
		}
		brands[src.Brand] = tables[i]
	}

	log.Info().
		Int("providers", len(providers)).
		Int("sources", len(sources)).
		Str("mode", string(mode)).
		Msg("rate catalog loaded")

	return model.NewRateCatalog(mode, providers, byProvider), nil
}

// CatalogService builds the catalog on first use and keeps it, or the load
// failure, for the life of the process.
type CatalogService struct {
	reader      RateSourceReader
	mode        model.CalcMode
	sources     []model.RateSource
	concurrency int

	once    sync.Once
	catalog *model.RateCatalog
	err     error
}

func NewCatalogService(reader RateSourceReader, mode model.CalcMode, sources []model.RateSource, concurrency int) *CatalogService {
	return &CatalogService{
		reader:      reader,
		mode:        mode,
		sources:     append([]model.RateSource(nil), sources...),
		concurrency: concurrency,
	}
}

func (s *CatalogService) Catalog(ctx context.Context) (*model.RateCatalog, error) {
	s.once.Do(func() {
		s.catalog, s.err = LoadCatalog(context.WithoutCancel(ctx), s.reader, s.mode, s.sources, s.concurrency)
	})
	return s.catalog, s.err
}

func (s *CatalogService) Sources() []model.RateSource {
	return append([]model.RateSource(nil), s.sources...)
}
