package osdata

import (
	"context"
	"net/url"
	"strconv"

	"buildings-server/api"
	"buildings-server/models"
	"buildings-server/models/dimensions"
	"buildings-server/models/places"
)

const (
	RADIUS_ENDPOINT     = "/search/places/v1/radius"
	BBOX_ENDPOINT       = "/search/places/v1/bbox"
	DIMENSIONS_ENDPOINT = "/search/places/v1/dimensions"

	// British National Grid; record coordinates come back as eastings/northings.
	OUTPUT_SRS = "EPSG:27700"
)

// OSDataApiClient embeds the common HTTPClient
type OSDataApiClient struct {
	*api.HTTPClient
	apiKey string
}

// NewOSDataApiClient creates a new instance of OSDataApiClient
func NewOSDataApiClient(httpClient *api.HTTPClient) *OSDataApiClient {
	return &OSDataApiClient{
		HTTPClient: httpClient,
	}
}

func (c *OSDataApiClient) SetCredentials(apiKey string) {
	c.apiKey = apiKey
}

// SearchRadius queries records within radius metres of center.
func (c *OSDataApiClient) SearchRadius(ctx context.Context, center models.GridCoord, radius float64, offset int) (*places.PlacesResponse, error) {
	q := c.baseQuery(offset)
	q.Set("point", center.String())
	q.Set("radius", strconv.FormatFloat(radius, 'f', -1, 64))

	var response places.PlacesResponse
	if err := c.Request(ctx, "GET", RADIUS_ENDPOINT, q, nil, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// SearchBBox queries records inside the extent's lower-left/upper-right box.
func (c *OSDataApiClient) SearchBBox(ctx context.Context, extent models.ProjectedExtent, offset int) (*places.PlacesResponse, error) {
	q := c.baseQuery(offset)
	q.Set("bbox", extent.BBoxString())

	var response places.PlacesResponse
	if err := c.Request(ctx, "GET", BBOX_ENDPOINT, q, nil, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetDimensions retrieves the dimension records for a UPRN.
func (c *OSDataApiClient) GetDimensions(ctx context.Context, uprn string) (*dimensions.DimensionsResponse, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("uprn", uprn)

	var response dimensions.DimensionsResponse
	if err := c.Request(ctx, "GET", DIMENSIONS_ENDPOINT, q, nil, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *OSDataApiClient) baseQuery(offset int) url.Values {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("output_srs", OUTPUT_SRS)
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	return q
}
