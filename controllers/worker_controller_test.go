package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stitchhouse/stitchhouse-api/config"
	"github.com/stitchhouse/stitchhouse-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWorker(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	admin := createTestUser(t, db, "Admin", "wadmin@example.com", "secret123", "admin")

	router := setupTestRouter()
	router.POST("/workers", mockAuthMiddleware(admin), CreateWorker)

	// Without credentials only the worker row is created
	w := performJSONRequest(router, http.MethodPost, "/workers", map[string]interface{}{
		"name":          "Rafiq Mia",
		"role":          "cutter",
		"salary_type":   "hourly",
		"salary_amount": 150,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	response := parseResponse(t, w)
	worker := response["worker"].(map[string]interface{})
	assert.Equal(t, "cutter", worker["role"])
	assert.Equal(t, "active", worker["status"])
	assert.Nil(t, worker["user_id"])

	var userCount int64
	db.Model(&models.User{}).Where("role = ?", "worker").Count(&userCount)
	assert.Zero(t, userCount)
}

func TestCreateWorker_WithLoginAccount(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	admin := createTestUser(t, db, "Admin", "wadmin2@example.com", "secret123", "admin")

	router := setupTestRouter()
	router.POST("/workers", mockAuthMiddleware(admin), CreateWorker)

	w := performJSONRequest(router, http.MethodPost, "/workers", map[string]interface{}{
		"name":     "Salma Begum",
		"role":     "tailor",
		"email":    "salma@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Both rows exist and are linked
	var account models.User
	require.NoError(t, db.Where("email = ?", "salma@example.com").First(&account).Error)
	assert.Equal(t, "worker", account.Role)

	var worker models.Worker
	require.NoError(t, db.Where("name = ?", "Salma Begum").First(&worker).Error)
	require.NotNil(t, worker.UserID)
	assert.Equal(t, account.ID, *worker.UserID)
	assert.Equal(t, "fixed", worker.SalaryType)
}

func TestCreateWorker_DuplicateEmailRollsBack(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	admin := createTestUser(t, db, "Admin", "wadmin3@example.com", "secret123", "admin")
	createTestUser(t, db, "Existing", "taken@example.com", "secret123", "customer")

	router := setupTestRouter()
	router.POST("/workers", mockAuthMiddleware(admin), CreateWorker)

	w := performJSONRequest(router, http.MethodPost, "/workers", map[string]interface{}{
		"name":     "Clashing Worker",
		"role":     "tailor",
		"email":    "taken@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// The account insert failed, so the worker row must not exist either
	var workerCount int64
	db.Model(&models.Worker{}).Count(&workerCount)
	assert.Zero(t, workerCount)
}

func TestCreateWorker_Validation(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	admin := createTestUser(t, db, "Admin", "wadmin4@example.com", "secret123", "admin")

	tests := []struct {
		name        string
		requestBody map[string]interface{}
	}{
		{
			name:        "Fail without a name",
			requestBody: map[string]interface{}{"role": "tailor"},
		},
		{
			name:        "Fail without a role",
			requestBody: map[string]interface{}{"name": "No Role"},
		},
		{
			name: "Fail with unknown salary type",
			requestBody: map[string]interface{}{
				"name": "Odd Pay", "role": "tailor", "salary_type": "barter",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/workers", mockAuthMiddleware(admin), CreateWorker)

			w := performJSONRequest(router, http.MethodPost, "/workers", tt.requestBody)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestUpdateWorker(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	admin := createTestUser(t, db, "Admin", "wadmin5@example.com", "secret123", "admin")
	worker := models.Worker{Name: "Old Name", Role: "tailor", SalaryType: "fixed", SalaryAmount: 1000, Status: "active"}
	require.NoError(t, db.Create(&worker).Error)

	router := setupTestRouter()
	router.PUT("/workers/:id", mockAuthMiddleware(admin), UpdateWorker)

	w := performJSONRequest(router, http.MethodPut, fmt.Sprintf("/workers/%d", worker.ID), map[string]interface{}{
		"salary_amount": 1200,
		"status":        "inactive",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Worker
	require.NoError(t, db.First(&updated, worker.ID).Error)
	assert.Equal(t, float64(1200), updated.SalaryAmount)
	assert.Equal(t, "inactive", updated.Status)
	// untouched fields keep their values
	assert.Equal(t, "Old Name", updated.Name)
	assert.Equal(t, "tailor", updated.Role)

	// Empty update is rejected
	w = performJSONRequest(router, http.MethodPut, fmt.Sprintf("/workers/%d", worker.ID), map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSONRequest(router, http.MethodPut, "/workers/99999", map[string]interface{}{
		"status": "active",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteWorker(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	admin := createTestUser(t, db, "Admin", "wadmin6@example.com", "secret123", "admin")
	worker := models.Worker{Name: "Leaving Tailor", Role: "tailor", SalaryType: "fixed", Status: "active"}
	require.NoError(t, db.Create(&worker).Error)

	router := setupTestRouter()
	router.DELETE("/workers/:id", mockAuthMiddleware(admin), DeleteWorker)

	w := performJSONRequest(router, http.MethodDelete, fmt.Sprintf("/workers/%d", worker.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Soft deleted: invisible to normal queries, row retained
	var gone models.Worker
	assert.Error(t, db.First(&gone, worker.ID).Error)
	var kept models.Worker
	require.NoError(t, db.Unscoped().First(&kept, worker.ID).Error)
	assert.True(t, kept.DeletedAt.Valid)

	w = performJSONRequest(router, http.MethodDelete, fmt.Sprintf("/workers/%d", worker.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetWorkers(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	admin := createTestUser(t, db, "Admin", "wadmin7@example.com", "secret123", "admin")
	account := createTestUser(t, db, "Linked Tailor", "linked@example.com", "secret123", "worker")

	linked := models.Worker{UserID: &account.ID, Name: "Linked Tailor", Role: "tailor", SalaryType: "fixed", Status: "active"}
	plain := models.Worker{Name: "Plain Tailor", Role: "finisher", SalaryType: "fixed", Status: "active"}
	require.NoError(t, db.Create(&linked).Error)
	require.NoError(t, db.Create(&plain).Error)

	router := setupTestRouter()
	router.GET("/workers", mockAuthMiddleware(admin), GetWorkers)

	w := performJSONRequest(router, http.MethodGet, "/workers", nil)
	require.Equal(t, http.StatusOK, w.Code)

	response := parseResponse(t, w)
	workers := response["workers"].([]interface{})
	require.Len(t, workers, 2)

	for _, wr := range workers {
		row := wr.(map[string]interface{})
		if row["name"] == "Linked Tailor" {
			// login account preloaded for linked workers
			assert.Equal(t, "linked@example.com", row["user"].(map[string]interface{})["email"])
		} else {
			_, hasUser := row["user"]
			assert.False(t, hasUser)
		}
	}
}

func TestGetWorkerAssignments(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	admin := createTestUser(t, db, "Admin", "wadmin8@example.com", "secret123", "admin")
	customer := createTestUser(t, db, "Rahim", "rahim@example.com", "secret123", "customer")

	worker := models.Worker{Name: "Assigned Tailor", Role: "tailor", SalaryType: "fixed", Status: "active"}
	other := models.Worker{Name: "Other Tailor", Role: "tailor", SalaryType: "fixed", Status: "active"}
	require.NoError(t, db.Create(&worker).Error)
	require.NoError(t, db.Create(&other).Error)

	order := createTestOrder(t, db, customer.ID, "ORD-60-aaaaaaaaa", 400, "processing", time.Now())
	otherOrder := createTestOrder(t, db, customer.ID, "ORD-61-bbbbbbbbb", 100, "pending", time.Now())

	assigned := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.Assignment{
		WorkerID: worker.ID, OrderID: order.ID, Status: "in_progress", Progress: 60, AssignedDate: &assigned,
	}).Error)
	require.NoError(t, db.Create(&models.Assignment{
		WorkerID: other.ID, OrderID: otherOrder.ID, Status: "assigned",
	}).Error)

	router := setupTestRouter()
	router.GET("/workers/:id/assignments", mockAuthMiddleware(admin), GetWorkerAssignments)

	w := performJSONRequest(router, http.MethodGet, fmt.Sprintf("/workers/%d/assignments", worker.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	response := parseResponse(t, w)
	assignments := response["assignments"].([]interface{})
	require.Len(t, assignments, 1)

	row := assignments[0].(map[string]interface{})
	assert.Equal(t, float64(worker.ID), row["worker_id"])
	assert.Equal(t, "in_progress", row["status"])
	assert.Equal(t, float64(60), row["progress"])
	assert.Equal(t, "ORD-60-aaaaaaaaa", row["order_number"])
	assert.Equal(t, float64(400), row["total_amount"])
	assert.Equal(t, "processing", row["order_status"])
	assert.Equal(t, "Rahim", row["customer_name"])
}
