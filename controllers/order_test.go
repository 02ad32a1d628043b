package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"venuepos-backend/config"
	"venuepos-backend/models"
	"venuepos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

// sessionStub stands in for AuthMiddleware with a resolved session.
func sessionStub(staffID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("staffId", staffID)
		c.Set("role", role)
		c.Next()
	}
}

func newOrderRouter(staffID uint, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/orders",
		sessionStub(staffID, role),
		utils.RequireRoles(models.RoleServer, models.RoleBartender, models.RoleManager, models.RoleAdmin),
		CreateOrder)
	return r
}

func postOrder(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderEndpoint(t *testing.T) {
	db := setupTestDB(t)
	config.DB = db

	staff := models.Staff{Email: "server@venue.test", Password: "supersecret", Name: "Server", Role: models.RoleServer, IsActive: true}
	require.NoError(t, db.Create(&staff).Error)
	area := models.SeatingArea{Name: "Table 1", Capacity: 4, IsActive: true}
	require.NoError(t, db.Create(&area).Error)
	product := models.Product{Name: "House Red", Category: "Drinks", SalePrice: decimal.RequireFromString("15.00"), IsActive: true}
	require.NoError(t, db.Create(&product).Error)

	r := newOrderRouter(staff.ID, models.RoleServer)

	body := fmt.Sprintf(`{"seatingAreaId": %d, "cart": [{"productId": %d, "quantity": 2}]}`, area.ID, product.ID)
	w := postOrder(t, r, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			SalesCreated int    `json:"salesCreated"`
			OrderRef     string `json:"orderRef"`
			OrderTotal   string `json:"orderTotal"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Data.SalesCreated)
	assert.NotEmpty(t, resp.Data.OrderRef)
	// Monetary fields travel as strings
	assert.Equal(t, "30", resp.Data.OrderTotal)
}

func TestCreateOrderEndpointValidation(t *testing.T) {
	db := setupTestDB(t)
	config.DB = db

	r := newOrderRouter(1, models.RoleServer)

	// Empty cart
	w := postOrder(t, r, `{"seatingAreaId": 1, "cart": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing seating area field
	w = postOrder(t, r, `{"cart": [{"productId": 1, "quantity": 1}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Zero quantity
	w = postOrder(t, r, `{"seatingAreaId": 1, "cart": [{"productId": 1, "quantity": 0}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderEndpointUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	config.DB = db

	area := models.SeatingArea{Name: "Table 2", Capacity: 2, IsActive: true}
	require.NoError(t, db.Create(&area).Error)

	r := newOrderRouter(1, models.RoleBartender)

	body := fmt.Sprintf(`{"seatingAreaId": %d, "cart": [{"productId": 9999, "quantity": 1}]}`, area.ID)
	w := postOrder(t, r, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var sales int64
	db.Model(&models.Sale{}).Count(&sales)
	assert.Zero(t, sales)
}

func TestCreateOrderEndpointRoleCheck(t *testing.T) {
	db := setupTestDB(t)
	config.DB = db

	r := newOrderRouter(1, "cleaner")

	w := postOrder(t, r, `{"seatingAreaId": 1, "cart": [{"productId": 1, "quantity": 1}]}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
