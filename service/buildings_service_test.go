package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildings-server/db"
	"buildings-server/models"
	"buildings-server/models/places"
	"buildings-server/util/scene"
)

const radiusURI = "/buildings.gltf?method=radius&lat=51.5&lon=-0.12&radius=100&draw=1"

func radiusQuery(draw bool) models.Query {
	return models.Query{
		Method:       models.MethodRadius,
		Center:       models.LatLon{Lat: 51.5, Lon: -0.12},
		RadiusMeters: 100,
		Draw:         draw,
	}
}

func newTestService(api *fakeOSDataAPI, live bool) (*BuildingsService, *ArtifactCache, *db.MockRedisClient) {
	cache, client := newTestCache()
	svc := NewBuildingsService(
		NewPaginatedFetcher(api),
		NewGeometrySynthesizer(api),
		cache,
		scene.Assemble,
		"/api/os",
		live,
	)
	return svc, cache, client
}

func seed(t *testing.T, cache *ArtifactCache, uri string, pair models.CachedArtifactPair) {
	t.Helper()
	cache.Store(context.Background(), models.NewArtifactKeys(cache.StashPath(uri)), pair)
	cache.Wait()
}

func liveAPI() *fakeOSDataAPI {
	api := newFakeOSDataAPI()
	var records []places.BuildingRecord
	codes := []string{"RD04", "CE01", "CR07", "RD04"}
	for i, code := range codes {
		uprn := fmt.Sprint(1000 + i)
		records = append(records, record(uprn, code, 530000+float64(i)*20, 180000))
		api.dims[uprn] = 0.5
	}
	// duplicate position of the last residential record
	records = append(records, record("2000", "RD06", 530060, 180000))
	api.addPages(records, 2)
	return api
}

func TestGenerate_NoDrawIgnoresCache(t *testing.T) {
	api := newFakeOSDataAPI()
	svc, cache, _ := newTestService(api, true)
	seed(t, cache, radiusURI, models.CachedArtifactPair{SceneDocument: []byte("{}"), BinaryBuffer: []byte{1}})

	_, err := svc.Generate(context.Background(), GenerateRequest{Query: radiusQuery(false), RequestURI: radiusURI})

	assert.ErrorIs(t, err, ErrNoDrawRequested)
	assert.Zero(t, api.calls())
}

func TestGenerate_CacheHit(t *testing.T) {
	for _, live := range []bool{false, true} {
		t.Run(fmt.Sprintf("live=%v", live), func(t *testing.T) {
			api := liveAPI()
			svc, cache, _ := newTestService(api, live)
			want := models.CachedArtifactPair{SceneDocument: []byte(`{"asset":{"version":"2.0"}}`), BinaryBuffer: []byte{9, 8, 7}}
			seed(t, cache, radiusURI, want)

			got, err := svc.Generate(context.Background(), GenerateRequest{Query: radiusQuery(true), RequestURI: radiusURI})

			require.NoError(t, err)
			assert.Equal(t, want, *got)
			assert.Zero(t, api.calls())
		})
	}
}

func TestGenerate_BufferRequestSharesKeys(t *testing.T) {
	api := newFakeOSDataAPI()
	svc, cache, _ := newTestService(api, false)
	want := models.CachedArtifactPair{SceneDocument: []byte("{}"), BinaryBuffer: []byte{1, 2}}
	seed(t, cache, radiusURI, want)

	binURI := models.SwapExtension(radiusURI, models.BufferExtension)
	got, err := svc.Generate(context.Background(), GenerateRequest{Query: radiusQuery(true), RequestURI: binURI})

	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestGenerate_MissWithoutLiveGeneration(t *testing.T) {
	api := liveAPI()
	svc, _, _ := newTestService(api, false)

	_, err := svc.Generate(context.Background(), GenerateRequest{Query: radiusQuery(true), RequestURI: radiusURI})

	assert.ErrorIs(t, err, ErrNoCachedArtifact)
	assert.Equal(t, NoCachedArtifactMessage, Message(err))
	assert.Zero(t, api.calls())
}

func TestGenerate_InvalidGridReference(t *testing.T) {
	api := newFakeOSDataAPI()
	svc, _, _ := newTestService(api, true)
	q := models.Query{Method: models.MethodOSGrid, GridReference: "TG51401", Draw: true}

	_, err := svc.Generate(context.Background(), GenerateRequest{Query: q, RequestURI: "/buildings.gltf?method=osgrid&osgridref=TG51401&draw=1"})

	assert.ErrorIs(t, err, ErrInvalidQuery)
	assert.Zero(t, api.calls())
}

func TestGenerate_StashReadError(t *testing.T) {
	api := newFakeOSDataAPI()
	svc, _, client := newTestService(api, true)
	client.GetErr = assert.AnError

	_, err := svc.Generate(context.Background(), GenerateRequest{Query: radiusQuery(true), RequestURI: radiusURI})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, api.calls())
}

func TestGenerate_LiveGenerationStoresPair(t *testing.T) {
	api := liveAPI()
	svc, _, client := newTestService(api, true)
	req := GenerateRequest{Query: radiusQuery(true), RequestURI: radiusURI}

	pair, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	svc.Wait()

	var doc gltf.Document
	require.NoError(t, json.Unmarshal(pair.SceneDocument, &doc))
	require.Len(t, doc.Buffers, 1)
	assert.Equal(t, "/api/os/buildings.bin?method=radius&lat=51.5&lon=-0.12&radius=100&draw=1", doc.Buffers[0].URI)
	assert.EqualValues(t, len(pair.BinaryBuffer), doc.Buffers[0].ByteLength)

	materials := map[string]string{}
	for _, m := range doc.Meshes {
		materials[m.Name] = doc.Materials[*m.Primitives[0].Material].Name
	}
	assert.Equal(t, map[string]string{"C": "Effect-Blue", "CE": "Effect-Red", "R": "Effect-Green"}, materials)

	// the duplicate record never reaches the dimensions endpoint
	assert.Len(t, api.dimCalls, 4)
	assert.NotContains(t, api.dimCalls, "2000")
	assert.Len(t, client.Keys(), 2)

	calls := api.calls()
	again, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, *pair, *again)
	assert.Equal(t, calls, api.calls(), "second request is served from the stash")
}

func TestGenerate_StoreFailureNotPropagated(t *testing.T) {
	api := liveAPI()
	svc, _, client := newTestService(api, true)
	client.SetErr = assert.AnError

	pair, err := svc.Generate(context.Background(), GenerateRequest{Query: radiusQuery(true), RequestURI: radiusURI})
	svc.Wait()

	require.NoError(t, err)
	assert.NotEmpty(t, pair.BinaryBuffer)
	assert.Empty(t, client.Keys())
}

func TestGenerate_UpstreamFailure(t *testing.T) {
	api := liveAPI()
	api.pageErrs[2] = errFakeUpstream
	svc, _, client := newTestService(api, true)

	_, err := svc.Generate(context.Background(), GenerateRequest{Query: radiusQuery(true), RequestURI: radiusURI})
	svc.Wait()

	assert.ErrorIs(t, err, ErrUpstream)
	assert.Empty(t, client.Keys())
}

func assertEmptySceneStashed(t *testing.T, api *fakeOSDataAPI) {
	t.Helper()
	svc, _, client := newTestService(api, true)
	req := GenerateRequest{Query: radiusQuery(true), RequestURI: radiusURI}

	pair, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	svc.Wait()

	var doc gltf.Document
	require.NoError(t, json.Unmarshal(pair.SceneDocument, &doc))
	assert.Equal(t, "2.0", doc.Asset.Version)
	assert.Empty(t, doc.Meshes)
	assert.Empty(t, doc.Nodes)
	assert.Empty(t, pair.BinaryBuffer)
	assert.Len(t, client.Keys(), 2)

	calls := api.calls()
	again, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.JSONEq(t, string(pair.SceneDocument), string(again.SceneDocument))
	assert.Equal(t, calls, api.calls(), "empty scene is served from the stash")
}

func TestGenerate_AllBuildingsHeightless(t *testing.T) {
	api := liveAPI()
	api.dims = map[string]float64{}

	assertEmptySceneStashed(t, api)
}

func TestGenerate_NoBuildingsInExtent(t *testing.T) {
	api := newFakeOSDataAPI()
	api.addPages([]places.BuildingRecord{}, 100)

	assertEmptySceneStashed(t, api)
}

func TestPreview(t *testing.T) {
	api := liveAPI()
	svc, _, _ := newTestService(api, true)

	records, extent, err := svc.Preview(context.Background(), radiusQuery(false))

	require.NoError(t, err)
	assert.True(t, extent.IsRadius())
	assert.Len(t, records, 4)
	assert.Empty(t, api.dimCalls)
}

func TestPreview_Disabled(t *testing.T) {
	api := liveAPI()
	svc, _, _ := newTestService(api, false)

	_, _, err := svc.Preview(context.Background(), radiusQuery(false))

	assert.ErrorIs(t, err, ErrLiveGenerationDisabled)
	assert.Zero(t, api.calls())
}
