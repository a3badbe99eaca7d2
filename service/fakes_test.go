package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"buildings-server/models"
	"buildings-server/models/dimensions"
	"buildings-server/models/places"
)

var errFakeUpstream = errors.New("fake upstream failure")

// fakeOSDataAPI serves canned pages keyed by offset and canned dimensions
// keyed by UPRN, and records every call.
type fakeOSDataAPI struct {
	mu sync.Mutex

	pages     map[int]*places.PlacesResponse
	pageErrs  map[int]error
	dims      map[string]float64
	dimErrs   map[string]error
	footprint orb.Polygon

	radiusCalls []int
	bboxCalls   []int
	dimCalls    []string
}

func newFakeOSDataAPI() *fakeOSDataAPI {
	return &fakeOSDataAPI{
		pages:    map[int]*places.PlacesResponse{},
		pageErrs: map[int]error{},
		dims:     map[string]float64{},
		dimErrs:  map[string]error{},
		footprint: orb.Polygon{{
			{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0},
		}},
	}
}

// addPages splits records into pages of maxResults starting at offset 0.
func (f *fakeOSDataAPI) addPages(records []places.BuildingRecord, maxResults int) {
	for offset := 0; offset == 0 || offset < len(records); offset += maxResults {
		end := offset + maxResults
		if end > len(records) {
			end = len(records)
		}
		resp := &places.PlacesResponse{Header: places.Header{
			Offset:       offset,
			TotalResults: len(records),
			MaxResults:   maxResults,
		}}
		for _, r := range records[offset:end] {
			resp.Results = append(resp.Results, places.Result{DPA: r})
		}
		f.pages[offset] = resp
	}
}

func (f *fakeOSDataAPI) page(offset int) (*places.PlacesResponse, error) {
	if err := f.pageErrs[offset]; err != nil {
		return nil, err
	}
	resp, ok := f.pages[offset]
	if !ok {
		return nil, fmt.Errorf("no page at offset %d", offset)
	}
	return resp, nil
}

func (f *fakeOSDataAPI) SearchRadius(ctx context.Context, center models.GridCoord, radius float64, offset int) (*places.PlacesResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.radiusCalls = append(f.radiusCalls, offset)
	return f.page(offset)
}

func (f *fakeOSDataAPI) SearchBBox(ctx context.Context, extent models.ProjectedExtent, offset int) (*places.PlacesResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bboxCalls = append(f.bboxCalls, offset)
	return f.page(offset)
}

func (f *fakeOSDataAPI) GetDimensions(ctx context.Context, uprn string) (*dimensions.DimensionsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dimCalls = append(f.dimCalls, uprn)
	if err := f.dimErrs[uprn]; err != nil {
		return nil, err
	}
	rec := dimensions.DimensionRecord{UPRN: uprn, Geometry: geojson.NewGeometry(f.footprint)}
	if h, ok := f.dims[uprn]; ok {
		rec.RelativeHeightToMax = &h
	}
	return &dimensions.DimensionsResponse{Results: []dimensions.DimensionRecord{rec}}, nil
}

func (f *fakeOSDataAPI) SetCredentials(apiKey string) {}

func (f *fakeOSDataAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.radiusCalls) + len(f.bboxCalls) + len(f.dimCalls)
}

func record(uprn, code string, x, y float64) places.BuildingRecord {
	return places.BuildingRecord{UPRN: uprn, ClassificationCode: code, X: x, Y: y}
}
