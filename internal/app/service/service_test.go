package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtnguyen/storeboard/internal/api"
	"github.com/vtnguyen/storeboard/internal/app/form"
	"github.com/vtnguyen/storeboard/internal/app/model"
	"github.com/vtnguyen/storeboard/internal/app/session"
	"github.com/vtnguyen/storeboard/pkg/geo"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newBackend(t *testing.T) (*gin.Engine, *api.Client) {
	t.Helper()
	router := gin.New()
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	client, err := api.NewClient(api.Config{
		BaseURL:     server.URL + "/api/v1",
		AuthBaseURL: server.URL + "/api/users",
		Logger:      zerolog.Nop(),
	})
	require.NoError(t, err)
	return router, client
}

func validStoreForm() *form.StoreForm {
	f := form.NewStoreForm()
	f.Name = "GS25 Le Loi"
	f.Address = "87 Le Loi, District 1"
	f.Latitude = "10.7731"
	f.Longitude = "106.6983"
	f.StoreType = string(model.StoreTypeGS25)
	return f
}

func TestStoreService_CreateStore_LocalValidation(t *testing.T) {
	_, client := newBackend(t)
	svc := NewStoreService(client, nil, zerolog.Nop())

	draft := validStoreForm()
	draft.Name = ""
	_, err := svc.CreateStore(context.Background(), draft)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
}

func TestStoreService_CreateStore_BackendFieldErrors(t *testing.T) {
	router, client := newBackend(t)
	router.POST("/api/v1/stores/", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  gin.H{"email": []string{"A store with this email already exists."}},
		})
	})
	svc := NewStoreService(client, nil, zerolog.Nop())

	_, err := svc.CreateStore(context.Background(), validStoreForm())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "A store with this email already exists.", verr.Fields["email"])
}

func TestStoreService_CreateStore_Success(t *testing.T) {
	router, client := newBackend(t)
	router.POST("/api/v1/stores/", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{
			"id": 11, "name": "GS25 Le Loi", "store_type": "gs25", "city": "Ho Chi Minh City", "is_active": true,
		}})
	})
	svc := NewStoreService(client, nil, zerolog.Nop())

	store, err := svc.CreateStore(context.Background(), validStoreForm())
	require.NoError(t, err)
	assert.Equal(t, int64(11), store.ID)
}

func TestStoreService_ResolveLocation(t *testing.T) {
	router, client := newBackend(t)
	router.GET("/api/v1/districts/lookup-by-coordinates/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"district": gin.H{"id": 1, "name": "District 1", "code": "D1", "city": "Ho Chi Minh City", "district_type": "urban", "is_active": true},
			"city":     "Ho Chi Minh City",
		}})
	})

	nominatim := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name": "87 Le Loi, District 1, Ho Chi Minh City, Vietnam"}`))
	}))
	defer nominatim.Close()

	svc := NewStoreService(client, geo.NewReverseGeocoder(nominatim.URL), zerolog.Nop())

	resolved, err := svc.ResolveLocation(context.Background(), 10.7731, 106.6983)
	require.NoError(t, err)
	assert.Equal(t, "District 1", resolved.District)
	assert.Equal(t, "Ho Chi Minh City", resolved.City)
	assert.Equal(t, "87 Le Loi, District 1, Ho Chi Minh City, Vietnam", resolved.Address)
}

func TestStoreService_ResolveLocation_DistrictFailureVisible(t *testing.T) {
	router, client := newBackend(t)
	router.GET("/api/v1/districts/lookup-by-coordinates/", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No district contains this point"})
	})
	svc := NewStoreService(client, geo.NewReverseGeocoder("http://127.0.0.1:1"), zerolog.Nop())

	_, err := svc.ResolveLocation(context.Background(), 0, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrNotFound)
	assert.Equal(t, "No district contains this point", api.Message(err))
}

func TestStoreService_ResolveLocation_AddressFallsBack(t *testing.T) {
	router, client := newBackend(t)
	router.GET("/api/v1/districts/lookup-by-coordinates/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"district": nil, "city": "Ho Chi Minh City"}})
	})
	// Nothing listens here; the address lookup fails silently.
	svc := NewStoreService(client, geo.NewReverseGeocoder("http://127.0.0.1:1"), zerolog.Nop())

	resolved, err := svc.ResolveLocation(context.Background(), 10.7731, 106.6983)
	require.NoError(t, err)
	assert.Empty(t, resolved.District)
	assert.Equal(t, "10.7731, 106.6983", resolved.Address)
}

func TestInventoryService_ConflictBecomesFieldError(t *testing.T) {
	router, client := newBackend(t)
	router.POST("/api/v1/inventory/", func(c *gin.Context) {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Duplicate inventory record"})
	})
	svc := NewInventoryService(client, zerolog.Nop())

	storeID, itemID := int64(1), int64(2)
	draft := form.NewInventoryForm()
	draft.StoreID, draft.ItemID = &storeID, &itemID

	_, err := svc.CreateInventory(context.Background(), draft)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "item")
}

func TestInventoryService_MissingSelections(t *testing.T) {
	_, client := newBackend(t)
	svc := NewInventoryService(client, zerolog.Nop())

	_, err := svc.CreateInventory(context.Background(), form.NewInventoryForm())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "store")
	assert.Contains(t, verr.Fields, "item")
}

func TestReviewService_CanModify(t *testing.T) {
	_, client := newBackend(t)

	guest, err := session.Open(t.TempDir() + "/session.json")
	require.NoError(t, err)
	svc := NewReviewService(client, guest, zerolog.Nop())

	owner := int64(3)
	review := model.Review{ID: 1, StoreID: 1, UserID: &owner}

	// Guests can never modify.
	assert.False(t, svc.CanModify(review))

	// A logged-in user can modify only their own reviews.
	router := gin.New()
	server := httptest.NewServer(router)
	defer server.Close()
	router.POST("/api/users/auth/login/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"tokens": gin.H{"access": "acc", "refresh": "ref"},
			"user":   gin.H{"id": 3, "username": "manager", "email": "m@example.com"},
		})
	})
	authClient, err := api.NewClient(api.Config{
		BaseURL:     server.URL + "/api/v1",
		AuthBaseURL: server.URL + "/api/users",
		Logger:      zerolog.Nop(),
	})
	require.NoError(t, err)

	sess, err := session.Open(t.TempDir() + "/session.json")
	require.NoError(t, err)
	_, err = sess.Login(context.Background(), authClient, "m@example.com", "secret")
	require.NoError(t, err)

	svc = NewReviewService(client, sess, zerolog.Nop())
	assert.True(t, svc.CanModify(review))

	other := int64(9)
	review.UserID = &other
	assert.False(t, svc.CanModify(review))

	review.UserID = nil
	assert.False(t, svc.CanModify(review), "guest reviews are not editable from the dashboard")
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: form.Errors{"name": "required", "email": "bad format"}}
	assert.Equal(t, "validation failed: email, name", err.Error())
	assert.Equal(t, "validation failed", (&ValidationError{}).Error())
}
