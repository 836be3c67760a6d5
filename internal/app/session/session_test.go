package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtnguyen/storeboard/internal/api"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestClient(t *testing.T, baseURL string, tokens api.TokenSource) *api.Client {
	t.Helper()
	client, err := api.NewClient(api.Config{
		BaseURL:     baseURL + "/api/v1",
		AuthBaseURL: baseURL + "/api/users",
		Tokens:      tokens,
		Logger:      zerolog.Nop(),
	})
	require.NoError(t, err)
	return client
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 3,
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestOpen_MissingFileMeansGuest(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	assert.Empty(t, s.AccessToken())
	assert.Nil(t, s.User())
	assert.Nil(t, s.CurrentUserID())
	assert.False(t, s.Authenticated())
}

func TestOpen_CorruptFileRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestSession_LoginPersistsAndReopens(t *testing.T) {
	access := signedToken(t, time.Now().Add(time.Hour))

	router := gin.New()
	router.POST("/api/users/auth/login/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"tokens": gin.H{"access": access, "refresh": "refresh-token"},
			"user":   gin.H{"id": 3, "username": "manager", "email": "m@example.com"},
		})
	})
	server := httptest.NewServer(router)
	defer server.Close()

	path := filepath.Join(t.TempDir(), "session.json")
	s, err := Open(path)
	require.NoError(t, err)

	client := newTestClient(t, server.URL, s)
	user, err := s.Login(context.Background(), client, "m@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "manager", user.Username)
	assert.True(t, s.Authenticated())
	assert.Equal(t, access, s.AccessToken())

	// A fresh open from the same file restores the session.
	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, access, reopened.AccessToken())
	require.NotNil(t, reopened.CurrentUserID())
	assert.Equal(t, int64(3), *reopened.CurrentUserID())
	assert.True(t, reopened.Authenticated())
}

func TestSession_ExpiredTokenNotAuthenticated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := Open(path)
	require.NoError(t, err)
	s.data.AccessToken = signedToken(t, time.Now().Add(-time.Minute))

	assert.False(t, s.Authenticated())
	assert.NotEmpty(t, s.AccessToken(), "token stays available for the backend to reject")
}

func TestSession_MalformedTokenNotAuthenticated(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	s.data.AccessToken = "not-a-jwt"

	assert.False(t, s.Authenticated())
}

func TestSession_LogoutClearsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := Open(path)
	require.NoError(t, err)
	s.data.AccessToken = signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, s.saveLocked())

	require.NoError(t, s.Logout())
	assert.Empty(t, s.AccessToken())
	assert.NoFileExists(t, path)

	// Logging out twice is fine.
	assert.NoError(t, s.Logout())
}
