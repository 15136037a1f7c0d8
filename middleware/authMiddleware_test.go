package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-restaurant-ordering/helpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Authentication())
	router.GET("/menu", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": c.GetString("uid")})
	})
	dashboard := router.Group("/dashboard", StaffOnly())
	dashboard.GET("/orders", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func TestAuthenticationRejectsMissingToken(t *testing.T) {
	router := newTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/menu", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticationRejectsInvalidToken(t *testing.T) {
	router := newTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/menu", nil)
	req.Header.Set("token", "not-a-token")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticationSetsIdentity(t *testing.T) {
	token, _, err := helpers.GenerateAllTokens("amina@example.com", "Amina", "user-1", false)
	assert.NoError(t, err)

	router := newTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/menu", nil)
	req.Header.Set("token", token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestStaffOnlyRejectsCustomer(t *testing.T) {
	token, _, err := helpers.GenerateAllTokens("amina@example.com", "Amina", "user-1", false)
	assert.NoError(t, err)

	router := newTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/orders", nil)
	req.Header.Set("token", token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStaffOnlyAllowsStaff(t *testing.T) {
	token, _, err := helpers.GenerateAllTokens("chef@example.com", "Chef", "user-2", true)
	assert.NoError(t, err)

	router := newTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/orders", nil)
	req.Header.Set("token", token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
