package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func authTestRouter(issuer string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(testSecret, issuer), func(c *gin.Context) {
		userID, _ := GetUserIDFromCtx(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return r
}

func doAuthRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r := authTestRouter("crewpay")
	token := signToken(t, jwt.RegisteredClaims{
		Subject:   "u1",
		Issuer:    "crewpay",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	w := doAuthRequest(r, token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"u1"`)
}

func TestAuthMiddleware_WrongIssuerRejected(t *testing.T) {
	r := authTestRouter("crewpay")
	token := signToken(t, jwt.RegisteredClaims{
		Subject:   "u1",
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	w := doAuthRequest(r, token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "issuer")
}

func TestAuthMiddleware_NoIssuerConfiguredSkipsCheck(t *testing.T) {
	r := authTestRouter("")
	token := signToken(t, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	w := doAuthRequest(r, token)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	r := authTestRouter("crewpay")
	token := signToken(t, jwt.RegisteredClaims{
		Subject:   "u1",
		Issuer:    "crewpay",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})

	w := doAuthRequest(r, token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := authTestRouter("crewpay")

	w := doAuthRequest(r, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
