package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"buildings-server/api/osdata"
	"buildings-server/metrics"
	"buildings-server/models"
	"buildings-server/models/places"
)

// PaginatedFetcher gathers every building record of an extent from the
// radius or bbox search endpoints.
type PaginatedFetcher struct {
	osDataAPI osdata.OSDataAPI
}

func NewPaginatedFetcher(osDataAPI osdata.OSDataAPI) *PaginatedFetcher {
	return &PaginatedFetcher{osDataAPI: osDataAPI}
}

// FetchAll requests the first page, then all follow-up pages concurrently.
// Records come back in page order; a single failed page fails the fetch.
func (f *PaginatedFetcher) FetchAll(ctx context.Context, extent models.ProjectedExtent) ([]places.BuildingRecord, error) {
	first, err := f.page(ctx, extent, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: first page: %v", ErrUpstream, err)
	}

	offsets := FollowUpOffsets(first.Header.TotalResults, first.Header.MaxResults)
	log.Printf("[PaginatedFetcher] %s search: total=%d maxresults=%d follow-up pages=%d",
		extent.Method, first.Header.TotalResults, first.Header.MaxResults, len(offsets))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pages := make([][]places.BuildingRecord, len(offsets))
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	for i, offset := range offsets {
		wg.Add(1)
		go func(i, offset int) {
			defer wg.Done()
			resp, err := f.page(ctx, extent, offset)
			if err != nil {
				once.Do(func() {
					firstErr = fmt.Errorf("%w: page at offset %d: %v", ErrUpstream, offset, err)
					cancel()
				})
				return
			}
			pages[i] = resp.Records()
		}(i, offset)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	records := first.Records()
	for _, p := range pages {
		records = append(records, p...)
	}
	log.Printf("[PaginatedFetcher] gathered %d records", len(records))
	metrics.BuildingsFetchedTotal.Add(float64(len(records)))
	return records, nil
}

func (f *PaginatedFetcher) page(ctx context.Context, extent models.ProjectedExtent, offset int) (*places.PlacesResponse, error) {
	if extent.IsRadius() {
		return f.osDataAPI.SearchRadius(ctx, extent.Center, extent.Radius, offset)
	}
	return f.osDataAPI.SearchBBox(ctx, extent, offset)
}

// FollowUpOffsets returns the offsets of the pages after the first one:
// i*maxResults for i in 1..total/maxResults, skipping an offset equal to
// total since that page would be empty.
func FollowUpOffsets(total, maxResults int) []int {
	if maxResults <= 0 || total <= 0 {
		return nil
	}
	pageCount := total / maxResults
	offsets := make([]int, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		offset := i * maxResults
		if offset == total {
			continue
		}
		offsets = append(offsets, offset)
	}
	return offsets
}
