package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingController struct{}

func (pingController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func (pingController) RegisterProtected(route *gin.RouterGroup) {
	route.GET("/secret", func(c *gin.Context) { c.String(http.StatusOK, "secret") })
}

func TestRouterHandler(t *testing.T) {
	denyAll := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no"})
	}
	router := NewRouter(Config{
		BaseURL:                 "/api",
		Mode:                    gin.TestMode,
		Controllers:             []i.Controller{pingController{}},
		AuthorizationMiddleware: denyAll,
	})
	handler := router.Handler()

	cases := []struct {
		name   string
		path   string
		status int
	}{
		{"Public route is open", "/api/v1/ping", http.StatusOK},
		{"Protected route runs the middleware", "/api/v1/secret", http.StatusUnauthorized},
		{"Routes live under the base URL", "/v1/ping", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestNewRouterDefaultsToRelease(t *testing.T) {
	r := NewRouter(Config{})
	assert.Equal(t, gin.ReleaseMode, r.mode)
}
