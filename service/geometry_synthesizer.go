package services

import (
	"context"
	"log"

	"buildings-server/api/osdata"
	"buildings-server/metrics"
	"buildings-server/models"
	"buildings-server/models/dimensions"
	"buildings-server/models/places"
	"buildings-server/util/mesh"
)

// SynthesisStats counts what happened to the buildings of one synthesis run.
type SynthesisStats struct {
	Requested  int
	Failed     int
	Heightless int
	Meshes     int
}

type GeometrySynthesizer struct {
	osDataAPI osdata.OSDataAPI
}

func NewGeometrySynthesizer(osDataAPI osdata.OSDataAPI) *GeometrySynthesizer {
	return &GeometrySynthesizer{osDataAPI: osDataAPI}
}

// Synthesize looks up the dimensions of every record in turn and extrudes
// the footprints of those with a relative height, grouped by ClassCode.
// A failed lookup is replaced by an empty placeholder and only counted.
func (s *GeometrySynthesizer) Synthesize(ctx context.Context, records []places.BuildingRecord, draw bool, ref models.GridCoord) (models.MeshGroup, SynthesisStats, error) {
	var stats SynthesisStats
	if !draw {
		return nil, stats, ErrNoDrawRequested
	}

	group := models.MeshGroup{}
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		stats.Requested++

		dim := s.dimensions(ctx, r.UPRN, &stats)
		if !dim.HasHeight() {
			stats.Heightless++
			continue
		}
		meshes := mesh.Extrude(dim.Footprint(), *dim.RelativeHeightToMax, ref)
		stats.Meshes += len(meshes)
		group.Append(r.ClassCode, meshes...)
	}

	log.Printf("[GeometrySynthesizer] requested=%d failed=%d heightless=%d meshes=%d",
		stats.Requested, stats.Failed, stats.Heightless, stats.Meshes)
	metrics.HeightlessBuildingsTotal.Add(float64(stats.Heightless))
	return group, stats, nil
}

func (s *GeometrySynthesizer) dimensions(ctx context.Context, uprn string, stats *SynthesisStats) dimensions.DimensionRecord {
	resp, err := s.osDataAPI.GetDimensions(ctx, uprn)
	if err != nil {
		stats.Failed++
		log.Printf("[GeometrySynthesizer] dimensions lookup failed for uprn=%s: %v", uprn, err)
		return dimensions.DimensionRecord{}
	}
	return resp.First()
}
