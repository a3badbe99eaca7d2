package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"buildings-server/metrics"
	"buildings-server/models"
	"buildings-server/models/places"
)

// GenerateRequest is one scene or buffer request. RequestURI is the path
// and query string relative to the API prefix, e.g.
// "/buildings.gltf?method=radius&lat=51.5&lon=-0.1&radius=100&draw=1".
type GenerateRequest struct {
	Query      models.Query
	RequestURI string
}

// BuildingsService serves scene/buffer pairs from the stash and, when
// allowed, generates them from the OS APIs.
type BuildingsService struct {
	fetcher        *PaginatedFetcher
	synthesizer    *GeometrySynthesizer
	cache          *ArtifactCache
	assemble       SceneAssembler
	apiPrefix      string
	liveGeneration bool
}

func NewBuildingsService(
	fetcher *PaginatedFetcher,
	synthesizer *GeometrySynthesizer,
	cache *ArtifactCache,
	assemble SceneAssembler,
	apiPrefix string,
	liveGeneration bool,
) *BuildingsService {
	return &BuildingsService{
		fetcher:        fetcher,
		synthesizer:    synthesizer,
		cache:          cache,
		assemble:       assemble,
		apiPrefix:      apiPrefix,
		liveGeneration: liveGeneration,
	}
}

// Generate returns the artifact pair for req. The pair is served from the
// stash when both parts are present; otherwise it is generated (if live
// generation is enabled) and stashed in the background.
func (s *BuildingsService) Generate(ctx context.Context, req GenerateRequest) (*models.CachedArtifactPair, error) {
	if !req.Query.Draw {
		return nil, ErrNoDrawRequested
	}
	extent, err := ResolveExtent(req.Query)
	if err != nil {
		return nil, err
	}

	keys := models.NewArtifactKeys(s.cache.StashPath(req.RequestURI))
	cached, hit, err := s.cache.Lookup(ctx, keys)
	if err != nil {
		return nil, err
	}
	if hit {
		return cached, nil
	}
	if !s.liveGeneration {
		return nil, ErrNoCachedArtifact
	}

	start := time.Now()
	pair, err := s.generate(ctx, extent, req)
	if err != nil {
		return nil, err
	}
	metrics.GenerationDurationMs.Observe(float64(time.Since(start).Milliseconds()))

	s.cache.Store(ctx, keys, *pair)
	return pair, nil
}

func (s *BuildingsService) generate(ctx context.Context, extent models.ProjectedExtent, req GenerateRequest) (*models.CachedArtifactPair, error) {
	records, err := s.fetchAndClassify(ctx, extent)
	if err != nil {
		return nil, err
	}

	group, _, err := s.synthesizer.Synthesize(ctx, records, req.Query.Draw, extent.ReferencePoint())
	if err != nil {
		return nil, err
	}

	scene, err := s.assemble(group, BufferURI(s.apiPrefix, req.RequestURI), MaterialMapping)
	if err != nil {
		return nil, fmt.Errorf("assemble scene: %w", err)
	}
	doc, err := json.Marshal(scene.Document)
	if err != nil {
		return nil, fmt.Errorf("encode scene: %w", err)
	}
	return &models.CachedArtifactPair{SceneDocument: doc, BinaryBuffer: scene.Buffer}, nil
}

// Preview resolves and fetches the buildings of q without drawing them.
// It always reaches the OS APIs, so it is gated like live generation.
func (s *BuildingsService) Preview(ctx context.Context, q models.Query) ([]places.BuildingRecord, models.ProjectedExtent, error) {
	extent, err := ResolveExtent(q)
	if err != nil {
		return nil, extent, err
	}
	if !s.liveGeneration {
		return nil, extent, ErrLiveGenerationDisabled
	}
	records, err := s.fetchAndClassify(ctx, extent)
	if err != nil {
		return nil, extent, err
	}
	return records, extent, nil
}

func (s *BuildingsService) fetchAndClassify(ctx context.Context, extent models.ProjectedExtent) ([]places.BuildingRecord, error) {
	records, err := s.fetcher.FetchAll(ctx, extent)
	if err != nil {
		return nil, err
	}
	kept := ClassifyAndDedup(records)
	log.Printf("[BuildingsService] %d records, %d duplicates removed, %d kept",
		len(records), len(records)-len(kept), len(kept))
	metrics.BuildingsKeptTotal.Add(float64(len(kept)))
	return kept, nil
}

// Wait drains pending background stores.
func (s *BuildingsService) Wait() {
	s.cache.Wait()
}
