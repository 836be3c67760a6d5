package browse

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtnguyen/storeboard/internal/api"
	"github.com/vtnguyen/storeboard/internal/app/model"
	"github.com/vtnguyen/storeboard/pkg/geo"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeBackend records the queries each endpoint received.
type fakeBackend struct {
	mu      sync.Mutex
	queries map[string][]url.Values
	server  *httptest.Server
	router  *gin.Engine
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{router: gin.New(), queries: map[string][]url.Values{}}
	fb.router.Use(func(c *gin.Context) {
		fb.mu.Lock()
		path := c.Request.URL.Path
		fb.queries[path] = append(fb.queries[path], c.Request.URL.Query())
		fb.mu.Unlock()
		c.Next()
	})
	fb.server = httptest.NewServer(fb.router)
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) hits(path string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.queries[path])
}

func (fb *fakeBackend) lastQuery(path string) url.Values {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	qs := fb.queries[path]
	if len(qs) == 0 {
		return url.Values{}
	}
	return qs[len(qs)-1]
}

func newTestClient(t *testing.T, fb *fakeBackend) *api.Client {
	t.Helper()
	client, err := api.NewClient(api.Config{
		BaseURL:     fb.server.URL + "/api/v1",
		AuthBaseURL: fb.server.URL + "/api/users",
		Logger:      zerolog.Nop(),
	})
	require.NoError(t, err)
	return client
}

func storePage(stores ...gin.H) gin.H {
	return gin.H{"success": true, "data": gin.H{
		"results":  stores,
		"count":    len(stores),
		"next":     nil,
		"previous": nil,
	}}
}

func fixedLocator(lat, lng float64) *geo.Locator {
	return geo.NewLocator(geo.ProviderFunc(func(context.Context, bool) (geo.Position, error) {
		return geo.Position{Latitude: lat, Longitude: lng}, nil
	}), 0, 0)
}

func failingLocator(err error) *geo.Locator {
	return geo.NewLocator(geo.ProviderFunc(func(context.Context, bool) (geo.Position, error) {
		return geo.Position{}, err
	}), 0, 0)
}

func TestBrowser_StaleResponseDropped(t *testing.T) {
	var b Browser[model.Store]

	slowStarted := make(chan struct{})
	release := make(chan struct{})
	slow := func(ctx context.Context) (*api.Page[model.Store], error) {
		close(slowStarted)
		<-release
		return &api.Page[model.Store]{Results: []model.Store{{ID: 1, Name: "stale"}}}, nil
	}
	fast := func(ctx context.Context) (*api.Page[model.Store], error) {
		return &api.Page[model.Store]{Results: []model.Store{{ID: 2, Name: "fresh"}}}, nil
	}

	done := make(chan error, 1)
	go func() { done <- b.Load(context.Background(), slow) }()
	<-slowStarted

	require.NoError(t, b.Load(context.Background(), fast))
	close(release)
	require.NoError(t, <-done)

	// The slow first response must not overwrite the fresh one.
	results := b.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "fresh", results[0].Name)
	assert.Equal(t, StateLoaded, b.State())
}

func TestBrowser_ErrorKeepsPreviousPage(t *testing.T) {
	var b Browser[model.Store]

	ok := func(ctx context.Context) (*api.Page[model.Store], error) {
		return &api.Page[model.Store]{Results: []model.Store{{ID: 1}}, Count: 1}, nil
	}
	boom := errors.New("backend down")
	fail := func(ctx context.Context) (*api.Page[model.Store], error) {
		return nil, boom
	}

	require.NoError(t, b.Load(context.Background(), ok))
	require.Error(t, b.Load(context.Background(), fail))

	assert.Equal(t, StateErrored, b.State())
	assert.ErrorIs(t, b.Err(), boom)
	assert.Len(t, b.Results(), 1, "previous results stay visible behind the error")
}

func TestBrowser_RetryReplaysLastFetch(t *testing.T) {
	var b Browser[model.Store]

	calls := 0
	flaky := func(ctx context.Context) (*api.Page[model.Store], error) {
		calls++
		if calls == 1 {
			return nil, errors.New("transient")
		}
		return &api.Page[model.Store]{Count: 5}, nil
	}

	require.Error(t, b.Load(context.Background(), flaky))
	require.NoError(t, b.Retry(context.Background()))
	assert.Equal(t, 2, calls)
	assert.Equal(t, StateLoaded, b.State())
	assert.Equal(t, int64(5), b.Count())
}

func TestBrowser_RetryBeforeFirstLoadIsNoop(t *testing.T) {
	var b Browser[model.Store]
	assert.NoError(t, b.Retry(context.Background()))
	assert.Equal(t, StateIdle, b.State())
}

func TestStoreBrowser_EndpointRouting(t *testing.T) {
	fb := newFakeBackend(t)
	fb.router.GET("/api/v1/stores/", func(c *gin.Context) {
		c.JSON(http.StatusOK, storePage(gin.H{"id": 1, "name": "Circle K"}))
	})
	fb.router.GET("/api/v1/stores/search/", func(c *gin.Context) {
		c.JSON(http.StatusOK, storePage(gin.H{"id": 2, "name": "GS25"}))
	})
	b := NewStoreBrowser(newTestClient(t, fb), nil, 20)
	ctx := context.Background()

	// No filters routes to the plain list endpoint.
	require.NoError(t, b.Load(ctx))
	assert.Equal(t, 1, fb.hits("/api/v1/stores/"))
	assert.Equal(t, 0, fb.hits("/api/v1/stores/search/"))

	// Any filter routes to the search endpoint.
	require.NoError(t, b.SetDistrict(ctx, "district-1"))
	assert.Equal(t, 1, fb.hits("/api/v1/stores/search/"))
	assert.Equal(t, "district-1", fb.lastQuery("/api/v1/stores/search/").Get("district"))
}

func TestStoreBrowser_FilterChangeResetsPage(t *testing.T) {
	next := "next"
	fb := newFakeBackend(t)
	fb.router.GET("/api/v1/stores/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"results": []gin.H{{"id": 1}}, "count": 40, "next": next, "previous": nil,
		}})
	})
	fb.router.GET("/api/v1/stores/search/", func(c *gin.Context) {
		c.JSON(http.StatusOK, storePage())
	})
	b := NewStoreBrowser(newTestClient(t, fb), nil, 20)
	ctx := context.Background()

	require.NoError(t, b.Load(ctx))
	require.NoError(t, b.NextPage(ctx))
	require.Equal(t, 2, b.Page())

	require.NoError(t, b.SetStoreType(ctx, "gs25"))
	assert.Equal(t, 1, b.Page())
	q := fb.lastQuery("/api/v1/stores/search/")
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "gs25", q.Get("store_type"))
}

func TestStoreBrowser_TermAppliedOnlyOnSubmit(t *testing.T) {
	fb := newFakeBackend(t)
	fb.router.GET("/api/v1/stores/", func(c *gin.Context) {
		c.JSON(http.StatusOK, storePage())
	})
	fb.router.GET("/api/v1/stores/search/", func(c *gin.Context) {
		c.JSON(http.StatusOK, storePage())
	})
	b := NewStoreBrowser(newTestClient(t, fb), nil, 20)
	ctx := context.Background()

	require.NoError(t, b.Load(ctx))
	b.SetTerm("circle")
	// Typing alone does not fetch.
	assert.Equal(t, 1, fb.hits("/api/v1/stores/")+fb.hits("/api/v1/stores/search/"))

	require.NoError(t, b.SubmitSearch(ctx))
	assert.Equal(t, "circle", fb.lastQuery("/api/v1/stores/search/").Get("search"))
}

func TestStoreBrowser_PaginationGuards(t *testing.T) {
	fb := newFakeBackend(t)
	fb.router.GET("/api/v1/stores/", func(c *gin.Context) {
		c.JSON(http.StatusOK, storePage(gin.H{"id": 1}))
	})
	b := NewStoreBrowser(newTestClient(t, fb), nil, 20)
	ctx := context.Background()

	require.NoError(t, b.Load(ctx))
	hits := fb.hits("/api/v1/stores/")

	// No next link and already on page 1: both directions are no-ops.
	require.NoError(t, b.NextPage(ctx))
	require.NoError(t, b.PreviousPage(ctx))
	assert.Equal(t, hits, fb.hits("/api/v1/stores/"))
	assert.Equal(t, 1, b.Page())
}

func TestStoreBrowser_ToggleNearby(t *testing.T) {
	fb := newFakeBackend(t)
	fb.router.GET("/api/v1/stores/search/", func(c *gin.Context) {
		c.JSON(http.StatusOK, storePage(
			gin.H{"id": 1, "name": "Near", "latitude": 10.7800, "longitude": 106.7000},
			gin.H{"id": 2, "name": "NoCoords"},
		))
	})
	b := NewStoreBrowser(newTestClient(t, fb), fixedLocator(10.7769, 106.7009), 20)
	ctx := context.Background()

	require.NoError(t, b.ToggleNearby(ctx, true))
	assert.True(t, b.SortNearby())

	q := fb.lastQuery("/api/v1/stores/search/")
	assert.Equal(t, "10.7769", q.Get("latitude"))
	assert.Equal(t, "106.7009", q.Get("longitude"))
	assert.Equal(t, "true", q.Get("sort_by_distance"))

	rows := b.Rows()
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].DistanceKm)
	assert.Less(t, *rows[0].DistanceKm, 1.0)
	assert.Nil(t, rows[1].DistanceKm, "no distance without coordinates")
}

func TestStoreBrowser_NearbyCaptureFailureStaysOff(t *testing.T) {
	fb := newFakeBackend(t)
	b := NewStoreBrowser(newTestClient(t, fb), failingLocator(geo.ErrPermissionDenied), 20)

	err := b.ToggleNearby(context.Background(), true)
	require.ErrorIs(t, err, geo.ErrPermissionDenied)
	assert.False(t, b.SortNearby())
	assert.Equal(t, 0, fb.hits("/api/v1/stores/search/"), "no fetch without a position")
}

func TestItemBrowser_CategoryFilterRoutesToSearch(t *testing.T) {
	fb := newFakeBackend(t)
	fb.router.GET("/api/v1/items/", func(c *gin.Context) {
		c.JSON(http.StatusOK, storePage())
	})
	fb.router.GET("/api/v1/items/search/", func(c *gin.Context) {
		c.JSON(http.StatusOK, storePage(gin.H{"id": 3, "name": "Green Tea"}))
	})
	b := NewItemBrowser(newTestClient(t, fb), 20)
	ctx := context.Background()

	require.NoError(t, b.Load(ctx))
	assert.Equal(t, 1, fb.hits("/api/v1/items/"))

	require.NoError(t, b.SetCategory(ctx, "beverages"))
	assert.Equal(t, "beverages", fb.lastQuery("/api/v1/items/search/").Get("category"))
	require.Len(t, b.Results(), 1)
	assert.Equal(t, "Green Tea", b.Results()[0].Name)
}

func TestInventoryBrowser_NearbyMode(t *testing.T) {
	fb := newFakeBackend(t)
	fb.router.GET("/api/v1/inventory/", func(c *gin.Context) {
		c.JSON(http.StatusOK, storePage())
	})
	fb.router.GET("/api/v1/inventory/nearby/", func(c *gin.Context) {
		c.JSON(http.StatusOK, storePage(gin.H{"id": 7, "store": 1, "item": 2, "is_available": true}))
	})
	b := NewInventoryBrowser(newTestClient(t, fb), fixedLocator(10.8231, 106.6297), 20)
	ctx := context.Background()

	require.NoError(t, b.EnableNearby(ctx, 3))
	assert.True(t, b.Nearby())

	q := fb.lastQuery("/api/v1/inventory/nearby/")
	assert.Equal(t, "10.8231", q.Get("latitude"))
	assert.Equal(t, "106.6297", q.Get("longitude"))
	assert.Equal(t, "3", q.Get("radius_km"))
	require.Len(t, b.Results(), 1)

	require.NoError(t, b.DisableNearby(ctx))
	assert.False(t, b.Nearby())
	assert.Equal(t, 1, fb.hits("/api/v1/inventory/"))
}

func TestInventoryBrowser_StoreScopeRoutesToSearch(t *testing.T) {
	fb := newFakeBackend(t)
	fb.router.GET("/api/v1/inventory/search/", func(c *gin.Context) {
		c.JSON(http.StatusOK, storePage())
	})
	b := NewInventoryBrowser(newTestClient(t, fb), nil, 20)

	storeID := int64(4)
	require.NoError(t, b.SetStore(context.Background(), &storeID))
	assert.Equal(t, "4", fb.lastQuery("/api/v1/inventory/search/").Get("store"))
}
