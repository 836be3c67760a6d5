package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtnguyen/storeboard/config"
	"github.com/vtnguyen/storeboard/internal/api"
	"github.com/vtnguyen/storeboard/internal/app/model"
	"github.com/vtnguyen/storeboard/internal/app/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestApp(t *testing.T) (*app, *gin.Engine, *bytes.Buffer) {
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

	out := &bytes.Buffer{}
	a := &app{
		cfg: &config.Config{
			API: config.APIConfig{PageLimit: 20},
			// Nothing listens here; address lookups fall back to coordinates.
			Geo: config.GeoConfig{
				ReverseGeocodeURL: "http://127.0.0.1:1",
				LocateTimeout:     time.Second,
				PositionMaxAge:    time.Minute,
			},
		},
		client: client,
		in:     strings.NewReader(""),
		out:    out,
	}
	return a, router, out
}

func TestStoreCreate_SendsWirePayload(t *testing.T) {
	a, router, out := newTestApp(t)
	var got model.StoreWrite
	router.POST("/api/v1/stores/", func(c *gin.Context) {
		assert.NoError(t, c.ShouldBindJSON(&got))
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{
			"id": 7, "name": got.Name, "store_type": "gs25", "city": "Ho Chi Minh City", "is_active": true,
		}})
	})

	err := a.runStores(context.Background(), []string{
		"create", "-name", "GS25 Le Loi", "-address", "87 Le Loi, District 1",
		"-lat", "10.7731", "-lng", "106.6983", "-type", "gs25",
	})
	require.NoError(t, err)

	assert.Equal(t, "GS25 Le Loi", got.Name)
	assert.Equal(t, "Point", got.Location.Type)
	assert.Equal(t, 106.6983, got.Location.Coordinates[0], "longitude first on the wire")
	assert.Equal(t, 10.7731, got.Location.Coordinates[1])
	assert.True(t, got.IsActive)
	assert.Contains(t, out.String(), "Store 7 (GS25 Le Loi) created")
}

func TestStoreCreate_LocalValidationSkipsBackend(t *testing.T) {
	a, router, _ := newTestApp(t)
	var hits atomic.Int32
	router.POST("/api/v1/stores/", func(c *gin.Context) {
		hits.Add(1)
		c.Status(http.StatusCreated)
	})

	err := a.runStores(context.Background(), []string{"create", "-name", "No Coordinates"})

	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "address")
	assert.Contains(t, verr.Fields, "latitude")
	assert.Contains(t, verr.Fields, "longitude")
	assert.Zero(t, hits.Load(), "invalid drafts never reach the backend")
	assert.Contains(t, userMessage(err), "latitude")
}

func TestStoreEdit_MergesOnlyGivenFlags(t *testing.T) {
	a, router, out := newTestApp(t)
	router.GET("/api/v1/stores/9/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"id": 9, "name": "GS25 Le Loi", "address": "87 Le Loi, District 1",
			"latitude": 10.7731, "longitude": 106.6983, "store_type": "gs25",
			"district": "District 1", "city": "Ho Chi Minh City", "is_active": true,
		}})
	})
	var got model.StoreWrite
	router.PUT("/api/v1/stores/9/", func(c *gin.Context) {
		assert.NoError(t, c.ShouldBindJSON(&got))
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"id": 9, "name": got.Name, "store_type": "gs25", "city": "Ho Chi Minh City", "is_active": true,
		}})
	})

	err := a.runStores(context.Background(), []string{"edit", "-id", "9", "-name", "GS25 Nguyen Hue"})
	require.NoError(t, err)

	assert.Equal(t, "GS25 Nguyen Hue", got.Name)
	assert.Equal(t, "87 Le Loi, District 1", got.Address, "unedited fields keep the backend value")
	assert.Equal(t, "District 1", got.District)
	assert.Equal(t, 10.7731, got.Location.Coordinates[1])
	assert.True(t, got.IsActive)
	assert.Contains(t, out.String(), "Store 9 (GS25 Nguyen Hue) updated")
}

func TestStoreEdit_ResolveFillsDistrict(t *testing.T) {
	a, router, out := newTestApp(t)
	router.GET("/api/v1/stores/9/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"id": 9, "name": "GS25 Le Loi", "address": "87 Le Loi, District 1",
			"latitude": 10.7731, "longitude": 106.6983, "store_type": "gs25",
			"district": "District 1", "city": "Ho Chi Minh City", "is_active": true,
		}})
	})
	router.GET("/api/v1/districts/lookup-by-coordinates/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"district": gin.H{"id": 3, "name": "District 3", "code": "D3", "city": "Ho Chi Minh City", "district_type": "urban", "is_active": true},
			"city":     "Ho Chi Minh City",
		}})
	})
	var got model.StoreWrite
	router.PUT("/api/v1/stores/9/", func(c *gin.Context) {
		assert.NoError(t, c.ShouldBindJSON(&got))
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"id": 9, "name": got.Name, "store_type": "gs25", "city": "Ho Chi Minh City", "is_active": true,
		}})
	})

	err := a.runStores(context.Background(), []string{
		"edit", "-id", "9", "-lat", "10.78", "-lng", "106.69", "-resolve",
	})
	require.NoError(t, err)

	assert.Equal(t, "District 3", got.District)
	assert.Contains(t, out.String(), "Location resolved to District 3, Ho Chi Minh City")
}

func itemBackend(t *testing.T, router *gin.Engine) *atomic.Int32 {
	t.Helper()
	router.GET("/api/v1/items/4/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"id": 4, "name": "Green Tea", "category": "beverages", "is_active": true,
		}})
	})
	deletes := &atomic.Int32{}
	router.DELETE("/api/v1/items/4/", func(c *gin.Context) {
		deletes.Add(1)
		c.Status(http.StatusNoContent)
	})
	return deletes
}

func TestItemDelete_DeclinedConfirmation(t *testing.T) {
	a, router, out := newTestApp(t)
	deletes := itemBackend(t, router)
	a.in = strings.NewReader("n\n")

	err := a.runItems(context.Background(), []string{"delete", "-id", "4"})
	require.NoError(t, err)

	assert.Zero(t, deletes.Load())
	assert.Contains(t, out.String(), `Delete item "Green Tea"? [y/N]`)
	assert.Contains(t, out.String(), "Cancelled")
}

func TestItemDelete_ConfirmedThenDeleted(t *testing.T) {
	a, router, out := newTestApp(t)
	deletes := itemBackend(t, router)
	a.in = strings.NewReader("y\n")

	err := a.runItems(context.Background(), []string{"delete", "-id", "4"})
	require.NoError(t, err)

	assert.Equal(t, int32(1), deletes.Load())
	assert.Contains(t, out.String(), `Item "Green Tea" deleted`)
}

func TestItemDelete_YesFlagSkipsPrompt(t *testing.T) {
	a, router, out := newTestApp(t)
	deletes := itemBackend(t, router)

	err := a.runItems(context.Background(), []string{"delete", "-id", "4", "-yes"})
	require.NoError(t, err)

	assert.Equal(t, int32(1), deletes.Load())
	assert.NotContains(t, out.String(), "[y/N]")
}

func TestItemCreate_AppliesTriStateActive(t *testing.T) {
	a, router, out := newTestApp(t)
	var got model.ItemWrite
	router.POST("/api/v1/items/", func(c *gin.Context) {
		assert.NoError(t, c.ShouldBindJSON(&got))
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{
			"id": 12, "name": got.Name, "category": "beverages", "is_active": false,
		}})
	})

	err := a.runItems(context.Background(), []string{
		"create", "-name", "Green Tea", "-category", "beverages", "-active", "false",
	})
	require.NoError(t, err)

	assert.Equal(t, "Green Tea", got.Name)
	assert.False(t, got.IsActive)
	assert.Contains(t, out.String(), "Item 12 (Green Tea) created")
}

func TestInventoryCreate_ConflictShowsFieldMessage(t *testing.T) {
	a, router, _ := newTestApp(t)
	router.POST("/api/v1/inventory/", func(c *gin.Context) {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Duplicate inventory record"})
	})

	err := a.runInventory(context.Background(), []string{"create", "-store", "1", "-item", "2"})

	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, userMessage(err), "already has an inventory record")
}

func TestInventoryEdit_TogglesAvailability(t *testing.T) {
	a, router, out := newTestApp(t)
	router.GET("/api/v1/inventory/5/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"id": 5, "store": 1, "item": 2, "is_available": true,
		}})
	})
	var got model.InventoryWrite
	router.PUT("/api/v1/inventory/5/", func(c *gin.Context) {
		assert.NoError(t, c.ShouldBindJSON(&got))
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"id": 5, "store": 1, "item": 2, "is_available": false,
		}})
	})

	err := a.runInventory(context.Background(), []string{"edit", "-id", "5", "-available", "false"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.StoreID, "store binding survives the edit")
	assert.Equal(t, int64(2), got.ItemID)
	assert.False(t, got.IsAvailable)
	assert.Contains(t, out.String(), "Inventory record 5 updated")
}
