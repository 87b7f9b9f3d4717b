package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appchannel "github.com/commerce/backend/internal/application/channel"
	"github.com/commerce/backend/internal/infrastructure/event"
	"github.com/commerce/backend/internal/infrastructure/persistence"
	"github.com/commerce/backend/internal/infrastructure/persistence/models"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidations())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.SalesChannelModel{},
		&models.SalesChannelProductModel{},
		&models.StoreModel{},
		&models.ProductModel{},
		&models.OutboxEntryModel{},
	))

	serializer := event.NewSerializer()
	scope := persistence.NewGormTransactionScope(db, serializer)
	products := persistence.NewGormProductRepository(db)
	service := appchannel.NewSalesChannelService(scope, products, zap.NewNop())
	h := NewSalesChannelHandler(service)

	router := gin.New()
	router.POST("/sales-channels", h.Create)
	router.GET("/sales-channels", h.List)
	router.GET("/sales-channels/:id", h.Retrieve)
	router.PUT("/sales-channels/:id", h.Update)
	router.DELETE("/sales-channels/:id", h.Delete)
	router.POST("/sales-channels/:id/products/batch", h.AddProducts)
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func createChannel(t *testing.T, router *gin.Engine, name string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/sales-channels", gin.H{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	return env.Data["id"].(string)
}

func TestCreateEndpoint(t *testing.T) {
	t.Run("creates a channel", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/sales-channels", gin.H{
			"name":        "Webshop",
			"description": "Main storefront",
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
		assert.Equal(t, "Webshop", env.Data["name"])
		assert.Equal(t, "Main storefront", env.Data["description"])
		assert.Equal(t, false, env.Data["is_disabled"])
		assert.NotEmpty(t, env.Data["id"])
	})

	t.Run("blank name is a 400", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/sales-channels", gin.H{"name": "   "})

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing name is a 400", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/sales-channels", gin.H{"description": "x"})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestRetrieveEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	id := createChannel(t, router, "Webshop")

	t.Run("returns the channel", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/sales-channels/"+id, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, id, env.Data["id"])
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/sales-channels/"+uuid.NewString(), nil)

		require.Equal(t, http.StatusNotFound, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})

	t.Run("malformed id is a 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/sales-channels/not-a-uuid", nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	id := createChannel(t, router, "Webshop")

	t.Run("absent fields keep their values", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/sales-channels/"+id, gin.H{
			"is_disabled": true,
		})

		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Webshop", env.Data["name"])
		assert.Equal(t, true, env.Data["is_disabled"])
	})

	t.Run("present empty description overwrites", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/sales-channels/"+id, gin.H{
			"description": "",
		})

		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "", env.Data["description"])
	})

	t.Run("unknown channel is a 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/sales-channels/"+uuid.NewString(), gin.H{
			"is_disabled": true,
		})

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	id := createChannel(t, router, "Webshop")

	rec := doJSON(t, router, http.MethodDelete, "/sales-channels/"+id, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	t.Run("the channel is gone afterwards", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/sales-channels/"+id, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("repeating the delete still succeeds", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodDelete, "/sales-channels/"+id, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestListEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/sales-channels", nil)

	require.Equal(t, http.StatusNotImplemented, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "NOT_IMPLEMENTED", env.Error.Code)
}

func TestAddProductsEndpoint(t *testing.T) {
	router, db := newTestRouter(t)
	id := createChannel(t, router, "Webshop")

	seedProduct := func(t *testing.T) string {
		t.Helper()
		pid := uuid.New()
		require.NoError(t, db.Create(&models.ProductModel{ID: pid, Title: "Widget"}).Error)
		return pid.String()
	}

	t.Run("attaches a batch and wraps the channel in the response", func(t *testing.T) {
		p1 := seedProduct(t)
		p2 := seedProduct(t)

		rec := doJSON(t, router, http.MethodPost,
			fmt.Sprintf("/sales-channels/%s/products/batch", id),
			gin.H{"products_ids": []gin.H{{"id": p1}, {"id": p2}}},
		)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		env := decodeEnvelope(t, rec)
		sc, ok := env.Data["sales_channel"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, id, sc["id"])

		var n int64
		require.NoError(t, db.Model(&models.SalesChannelProductModel{}).Count(&n).Error)
		assert.EqualValues(t, 2, n)
	})

	t.Run("repeating a batch does not duplicate rows", func(t *testing.T) {
		p := seedProduct(t)
		payload := gin.H{"products_ids": []gin.H{{"id": p}}}
		path := fmt.Sprintf("/sales-channels/%s/products/batch", id)

		require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPost, path, payload).Code)
		require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPost, path, payload).Code)

		var n int64
		require.NoError(t, db.Model(&models.SalesChannelProductModel{}).
			Where("product_id = ?", p).Count(&n).Error)
		assert.EqualValues(t, 1, n)
	})

	t.Run("malformed product id is a 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost,
			fmt.Sprintf("/sales-channels/%s/products/batch", id),
			gin.H{"products_ids": []gin.H{{"id": "not-a-uuid"}}},
		)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("an empty batch is a no-op returning the channel", func(t *testing.T) {
		var before int64
		require.NoError(t, db.Model(&models.SalesChannelProductModel{}).Count(&before).Error)

		rec := doJSON(t, router, http.MethodPost,
			fmt.Sprintf("/sales-channels/%s/products/batch", id),
			gin.H{"products_ids": []gin.H{}},
		)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		env := decodeEnvelope(t, rec)
		sc, ok := env.Data["sales_channel"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, id, sc["id"])

		var after int64
		require.NoError(t, db.Model(&models.SalesChannelProductModel{}).Count(&after).Error)
		assert.Equal(t, before, after)
	})

	t.Run("a body without products_ids is also a no-op", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost,
			fmt.Sprintf("/sales-channels/%s/products/batch", id), gin.H{},
		)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})
}
