// Package cookie sets and clears the session cookies.
package cookie

import (
	"net/http"
	"strings"
	"time"

	"vidhub/config"

	"github.com/labstack/echo/v4"
)

// Cookie names shared by the handlers and the Auth Gate.
const (
	AccessToken  = "accessToken"
	RefreshToken = "refreshToken"
)

// Jar writes the token cookies with the configured attributes.
type Jar struct {
	cfg        config.CookieConfig
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJar is the constructor for Jar.
func NewJar(cfg *config.Config) *Jar {
	return &Jar{
		cfg:        cfg.Cookie,
		accessTTL:  cfg.Token.AccessTTL,
		refreshTTL: cfg.Token.RefreshTTL,
	}
}

// SetTokens writes both token cookies, living as long as the tokens do.
func (j *Jar) SetTokens(c echo.Context, accessToken, refreshToken string) {
	c.SetCookie(j.build(AccessToken, accessToken, j.accessTTL))
	c.SetCookie(j.build(RefreshToken, refreshToken, j.refreshTTL))
}

// Clear expires both token cookies.
func (j *Jar) Clear(c echo.Context) {
	for _, name := range []string{AccessToken, RefreshToken} {
		ck := j.build(name, "", 0)
		ck.MaxAge = -1
		ck.Expires = time.Unix(0, 0)
		c.SetCookie(ck)
	}
}

func (j *Jar) build(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     j.cfg.Path,
		Domain:   j.cfg.Domain,
		MaxAge:   int(ttl.Seconds()),
		Secure:   j.cfg.Secure,
		HttpOnly: true,
		SameSite: sameSite(j.cfg.SameSite),
	}
}

func sameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	case "lax":
		return http.SameSiteLaxMode
	default:
		return http.SameSiteDefaultMode
	}
}
