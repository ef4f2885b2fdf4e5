package helpers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieManager writes and clears the auth cookie pair. The access cookie
// value is prefixed "Bearer "; the refresh cookie holds the raw token.
type CookieManager struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

func NewCookie(domain string, secure bool, sameSite string) *CookieManager {
	return &CookieManager{Domain: domain, Secure: secure, SameSite: parseSameSite(sameSite)}
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// SetPair writes both auth cookies, HttpOnly, with Max-Age derived from each
// token's expiry.
func (m *CookieManager) SetPair(c *gin.Context, access string, aexp time.Time, refresh string, rexp time.Time) {
	c.SetSameSite(m.SameSite)
	c.SetCookie("access_token", "Bearer "+access, maxAgeFrom(aexp), "/", m.Domain, m.Secure, true)
	c.SetCookie("refresh_token", refresh, maxAgeFrom(rexp), "/", m.Domain, m.Secure, true)
}

// SetAccess replaces only the access cookie, used on refresh.
func (m *CookieManager) SetAccess(c *gin.Context, access string, exp time.Time) {
	c.SetSameSite(m.SameSite)
	c.SetCookie("access_token", "Bearer "+access, maxAgeFrom(exp), "/", m.Domain, m.Secure, true)
}

func (m *CookieManager) Clear(c *gin.Context) {
	c.SetSameSite(m.SameSite)
	c.SetCookie("access_token", "", -1, "/", m.Domain, m.Secure, true)
	c.SetCookie("refresh_token", "", -1, "/", m.Domain, m.Secure, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
