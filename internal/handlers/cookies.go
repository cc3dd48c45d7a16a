package handlers

import (
	"net/http"
	"time"
)

// CookieConfig controls the session cookies set on login and refresh.
type CookieConfig struct {
	Secure        bool          // Secure flag, off for plain-HTTP development
	AccessMaxAge  time.Duration // Lifetime of the accessToken cookie
	RefreshMaxAge time.Duration // Lifetime of the refreshToken cookie
}

// setAuthCookies sets the two same-site HTTP-only session cookies.
func setAuthCookies(w http.ResponseWriter, cfg CookieConfig, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(cfg.AccessMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(cfg.RefreshMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearAuthCookies expires both session cookies.
func clearAuthCookies(w http.ResponseWriter, cfg CookieConfig) {
	for _, name := range []string{"accessToken", "refreshToken"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   cfg.Secure,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
