package osdata

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"buildings-server/config"
	"buildings-server/models"
	"buildings-server/models/dimensions"
	"buildings-server/models/places"
	"buildings-server/util"
)

// OSDataApiClientMock serves canned responses from JSON fixtures on disk.
// The places fixture holds every record of the search; each page request
// returns the maxresults-sized window starting at its offset. Dimension
// lookups return the same fixture record stamped with the requested UPRN.
type OSDataApiClientMock struct {
	resourcesDir string
}

// NewOSDataApiClientMock creates a new instance of OSDataApiClientMock
func NewOSDataApiClientMock(resourcesDir string) *OSDataApiClientMock {
	return &OSDataApiClientMock{resourcesDir: resourcesDir}
}

func (c *OSDataApiClientMock) SetCredentials(apiKey string) {}

func (c *OSDataApiClientMock) SearchRadius(ctx context.Context, center models.GridCoord, radius float64, offset int) (*places.PlacesResponse, error) {
	return c.page(offset)
}

func (c *OSDataApiClientMock) SearchBBox(ctx context.Context, extent models.ProjectedExtent, offset int) (*places.PlacesResponse, error) {
	return c.page(offset)
}

func (c *OSDataApiClientMock) GetDimensions(ctx context.Context, uprn string) (*dimensions.DimensionsResponse, error) {
	response, err := util.ReadDimensionsResponseFromJSON(filepath.Join(c.resourcesDir, config.DIMENSIONS_RESPONSE_RESOURCE))
	if err != nil {
		log.Println("[OSDataApiClientMock] Could not read dimensions response from json")
		return nil, err
	}
	for i := range response.Results {
		response.Results[i].UPRN = uprn
	}
	return response, nil
}

func (c *OSDataApiClientMock) page(offset int) (*places.PlacesResponse, error) {
	response, err := util.ReadPlacesResponseFromJSON(filepath.Join(c.resourcesDir, config.PLACES_RESPONSE_RESOURCE))
	if err != nil {
		log.Println("[OSDataApiClientMock] Could not read places response from json")
		return nil, err
	}
	if offset < 0 {
		return nil, fmt.Errorf("negative offset %d", offset)
	}

	pageSize := response.Header.MaxResults
	if pageSize <= 0 {
		pageSize = len(response.Results)
	}
	start := min(offset, len(response.Results))
	end := min(start+pageSize, len(response.Results))
	response.Results = response.Results[start:end]
	response.Header.Offset = offset
	return response, nil
}
