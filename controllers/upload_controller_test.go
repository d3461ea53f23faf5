package controllers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stitchhouse/stitchhouse-api/config"
	"github.com/stitchhouse/stitchhouse-api/models"
	"github.com/stitchhouse/stitchhouse-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performImageUpload(t *testing.T, router *gin.Engine, path, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUploadProductImage(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	mockS3 := services.NewMockS3Service()
	mockS3.SetAsMockForTesting()
	defer services.SetS3Service(nil)

	admin := createTestUser(t, db, "Admin", "imgadmin@example.com", "secret123", "admin")
	category := createTestCategory(t, db, "Shirts")
	product := createTestProduct(t, db, category.ID, "Pictured Shirt", 100, 10)

	router := setupTestRouter()
	router.POST("/products/:id/images", mockAuthMiddleware(admin), UploadProductImage)

	w := performImageUpload(t, router, fmt.Sprintf("/products/%d/images", product.ID), "front.jpg", []byte("fake image data"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	response := parseResponse(t, w)
	assert.True(t, response["success"].(bool))
	imageKey := response["image_key"].(string)
	assert.Equal(t, "products/mock_front.jpg", imageKey)
	assert.Contains(t, response["image_url"].(string), imageKey)
	assert.True(t, mockS3.HasFile(imageKey))

	// The key is persisted on the product
	var reread models.Product
	require.NoError(t, db.First(&reread, product.ID).Error)
	require.Len(t, reread.Images, 1)
	assert.Equal(t, imageKey, reread.Images[0])

	// A second upload appends rather than replaces
	w = performImageUpload(t, router, fmt.Sprintf("/products/%d/images", product.ID), "back.jpg", []byte("more image data"))
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, db.First(&reread, product.ID).Error)
	assert.Len(t, reread.Images, 2)
}

func TestUploadProductImage_InvalidFormat(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	mockS3 := services.NewMockS3Service()
	mockS3.SetAsMockForTesting()
	defer services.SetS3Service(nil)

	admin := createTestUser(t, db, "Admin", "imgadmin2@example.com", "secret123", "admin")
	category := createTestCategory(t, db, "Shirts")
	product := createTestProduct(t, db, category.ID, "Plain Shirt", 100, 10)

	router := setupTestRouter()
	router.POST("/products/:id/images", mockAuthMiddleware(admin), UploadProductImage)

	w := performImageUpload(t, router, fmt.Sprintf("/products/%d/images", product.ID), "notes.pdf", []byte("not an image"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	response := parseResponse(t, w)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "INVALID_FILE_FORMAT", errorData["code"])
	assert.False(t, mockS3.HasFile("products/mock_notes.pdf"))
}

func TestUploadProductImage_MissingFile(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	admin := createTestUser(t, db, "Admin", "imgadmin3@example.com", "secret123", "admin")
	category := createTestCategory(t, db, "Shirts")
	product := createTestProduct(t, db, category.ID, "Plain Shirt", 100, 10)

	router := setupTestRouter()
	router.POST("/products/:id/images", mockAuthMiddleware(admin), UploadProductImage)

	w := performJSONRequest(router, http.MethodPost, fmt.Sprintf("/products/%d/images", product.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	response := parseResponse(t, w)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errorData["code"])
}

func TestUploadProductImage_ProductNotFound(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	admin := createTestUser(t, db, "Admin", "imgadmin4@example.com", "secret123", "admin")

	router := setupTestRouter()
	router.POST("/products/:id/images", mockAuthMiddleware(admin), UploadProductImage)

	w := performImageUpload(t, router, "/products/99999/images", "front.jpg", []byte("fake image data"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadProductImage_StorageNotConfigured(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	services.SetS3Service(nil)

	admin := createTestUser(t, db, "Admin", "imgadmin5@example.com", "secret123", "admin")
	category := createTestCategory(t, db, "Shirts")
	product := createTestProduct(t, db, category.ID, "Plain Shirt", 100, 10)

	router := setupTestRouter()
	router.POST("/products/:id/images", mockAuthMiddleware(admin), UploadProductImage)

	w := performImageUpload(t, router, fmt.Sprintf("/products/%d/images", product.ID), "front.jpg", []byte("fake image data"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	response := parseResponse(t, w)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "STORAGE_ERROR", errorData["code"])
}
