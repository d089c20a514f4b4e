package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSameSite(t *testing.T) {
	assert.Equal(t, http.SameSiteStrictMode, ParseSameSite("Strict"))
	assert.Equal(t, http.SameSiteNoneMode, ParseSameSite("none"))
	assert.Equal(t, http.SameSiteLaxMode, ParseSameSite("lax"))
	assert.Equal(t, http.SameSiteLaxMode, ParseSameSite(""))
	assert.Equal(t, http.SameSiteLaxMode, ParseSameSite("whatever"))
}

func TestSetTokenCookies(t *testing.T) {
	cfg := CookieConfig{
		SameSite:   "strict",
		Secure:     true,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 240 * time.Hour,
	}

	rec := httptest.NewRecorder()
	SetTokenCookies(rec, cfg, "at-value", "rt-value")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)

	byName := map[string]*http.Cookie{}
	for _, c := range cookies {
		byName[c.Name] = c
	}

	at := byName[AccessTokenCookie]
	require.NotNil(t, at)
	assert.Equal(t, "at-value", at.Value)
	assert.True(t, at.HttpOnly)
	assert.True(t, at.Secure)
	assert.Equal(t, int((15 * time.Minute).Seconds()), at.MaxAge)

	rt := byName[RefreshTokenCookie]
	require.NotNil(t, rt)
	assert.Equal(t, "rt-value", rt.Value)
	assert.True(t, rt.HttpOnly)
	assert.True(t, rt.Secure)
}

func TestClearTokenCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearTokenCookies(rec, CookieConfig{Secure: true})

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, c := range cookies {
		assert.Empty(t, c.Value)
		assert.Equal(t, -1, c.MaxAge)
		assert.True(t, c.Expires.Before(time.Now()))
		assert.True(t, c.HttpOnly)
	}
}
