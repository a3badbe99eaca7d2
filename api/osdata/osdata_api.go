package osdata

import (
	"context"

	"buildings-server/models"
	"buildings-server/models/dimensions"
	"buildings-server/models/places"
)

// OSDataAPI defines the interface for interacting with the OS data provider
type OSDataAPI interface {
	// SearchRadius returns one page of records around center. offset 0 is the first page.
	SearchRadius(ctx context.Context, center models.GridCoord, radius float64, offset int) (*places.PlacesResponse, error)
	// SearchBBox returns one page of records inside the extent's bounding box.
	SearchBBox(ctx context.Context, extent models.ProjectedExtent, offset int) (*places.PlacesResponse, error)
	// GetDimensions returns the footprint and height records of a building.
	GetDimensions(ctx context.Context, uprn string) (*dimensions.DimensionsResponse, error)
	SetCredentials(apiKey string)
}
