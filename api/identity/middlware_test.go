package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthoriz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokenizer := token.NewJwtService("test-secret", "vinom-maze")

	router := gin.New()
	router.GET("/whoami", Authoriz(tokenizer), func(c *gin.Context) {
		c.String(http.StatusOK, Subject(c))
	})

	valid, err := tokenizer.Generate(map[string]interface{}{"sub": "cli"}, time.Minute)
	require.NoError(t, err)
	expired, err := tokenizer.Generate(map[string]interface{}{"sub": "cli"}, -time.Minute)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"Valid bearer token", "Bearer " + valid, http.StatusOK, "cli"},
		{"Scheme is case insensitive", "bearer " + valid, http.StatusOK, "cli"},
		{"Missing header", "", http.StatusUnauthorized, ""},
		{"Wrong scheme", "Basic " + valid, http.StatusUnauthorized, ""},
		{"No token", "Bearer", http.StatusUnauthorized, ""},
		{"Expired token", "Bearer " + expired, http.StatusUnauthorized, ""},
		{"Garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, tc.body, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), "error")
			}
		})
	}
}

func TestSubjectWithoutClaims(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "", Subject(c))

	c.Set(ContextUserClaims, map[string]interface{}{"sub": 12})
	assert.Equal(t, "", Subject(c))
}
