package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	ti, err := NewTokenIssuer("test-secret", 1)
	require.NoError(t, err)

	token, err := ti.GenerateToken("user-1", "admin")
	require.NoError(t, err)

	claims, err := ti.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "admin", claims["role"])

	other, err := NewTokenIssuer("other-secret", 1)
	require.NoError(t, err)
	_, err = other.ParseToken(token)
	assert.Error(t, err)

	ti.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = ti.ParseToken(token)
	assert.Error(t, err, "expired token")

	_, err = NewTokenIssuer("", 1)
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ti, err := NewTokenIssuer("test-secret", 1)
	require.NoError(t, err)
	token, err := ti.GenerateToken("user-1", "admin")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(ti), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("userId"))
	})

	cases := map[string]int{
		"":                http.StatusUnauthorized,
		"Bearer garbage":  http.StatusUnauthorized,
		"Bearer " + token: http.StatusOK,
		"bearer " + token: http.StatusOK,
		token:             http.StatusOK,
	}
	for header, want := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, "header %q", header)
		if want == http.StatusOK {
			assert.Equal(t, "user-1", w.Body.String())
		}
	}
}

func TestPhoneHelpers(t *testing.T) {
	assert.True(t, ValidatePhone("+91 98765-43210"))
	assert.True(t, ValidatePhone("9876543210"))
	assert.False(t, ValidatePhone("12ab"))
	assert.False(t, ValidatePhone("0123"))

	assert.Equal(t, "+919876543210", WhatsAppNumber("98765 43210"))
	assert.Equal(t, "+919876543210", WhatsAppNumber("09876543210"))
	assert.Equal(t, "+447700900123", WhatsAppNumber("+44 7700 900123"))
	assert.Equal(t, "", WhatsAppNumber("n/a"))
}

func TestDates(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)
	// 00:30 on 1 Nov in India, still October in UTC.
	ts := time.Date(2026, time.October, 31, 19, 0, 0, 0, time.UTC)

	assert.True(t, time.Date(2026, time.November, 1, 0, 0, 0, 0, ist).Equal(StartOfDay(ts, ist)))
	assert.True(t, time.Date(2026, time.November, 1, 0, 0, 0, 0, ist).Equal(StartOfMonth(ts, ist)))
	assert.True(t, time.Date(2026, time.October, 31, 0, 0, 0, 0, time.UTC).Equal(StartOfDay(ts, time.UTC)))
	assert.True(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC).Equal(StartOfMonth(ts, time.UTC)))
}
