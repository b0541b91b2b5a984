package utils

import (
	"github.com/gin-gonic/gin"
)

// Cookie names are namespaced so the tokens do not clash with other apps
// served under the same domain.
const (
	accessCookieName  = "carepulse_access"
	refreshCookieName = "carepulse_refresh"
	authCookiePath    = "/"
)

// SetAuthCookies stores both tokens as HTTP-only cookies alongside the
// JSON response, for browser clients that prefer cookie auth.
func SetAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	writeAuthCookie(c, accessCookieName, accessToken, int(AccessTokenExpiry.Seconds()))
	writeAuthCookie(c, refreshCookieName, refreshToken, int(RefreshTokenExpiry.Seconds()))
}

// ClearAuthCookies expires both token cookies on logout.
func ClearAuthCookies(c *gin.Context) {
	writeAuthCookie(c, accessCookieName, "", -1)
	writeAuthCookie(c, refreshCookieName, "", -1)
}

// Secure is dropped only in debug mode so local frontends without TLS
// can complete a login.
func writeAuthCookie(c *gin.Context, name, value string, maxAge int) {
	secure := gin.Mode() != gin.DebugMode
	c.SetCookie(name, value, maxAge, authCookiePath, "", secure, true)
}
