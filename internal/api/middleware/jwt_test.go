package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWTConfig = JWTConfig{
	SigningKey: []byte("test-signing-key"),
	Issuer:     "crm-relay-test",
	ExpiresIn:  time.Hour,
}

func authedRouter(signingKey []byte) *gin.Engine {
	r := gin.New()
	r.Use(JWTAuth(signingKey))
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetUserID(c.Request.Context()),
			"email":   GetUserEmail(c.Request.Context()),
		})
	})
	return r
}

func TestJWTAuth_ValidToken(t *testing.T) {
	token, _, err := GenerateToken(testJWTConfig, "u-1", "ops@crm.local")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	authedRouter(testJWTConfig.SigningKey).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u-1")
	assert.Contains(t, w.Body.String(), "ops@crm.local")
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	w := httptest.NewRecorder()
	authedRouter(testJWTConfig.SigningKey).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing authorization header")
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()
	authedRouter(testJWTConfig.SigningKey).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_WrongKey(t *testing.T) {
	token, _, err := GenerateToken(testJWTConfig, "u-1", "ops@crm.local")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	authedRouter([]byte("a-different-key")).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	expired := testJWTConfig
	expired.ExpiresIn = -time.Hour
	token, _, err := GenerateToken(expired, "u-1", "ops@crm.local")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	authedRouter(testJWTConfig.SigningKey).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token expired")
}
