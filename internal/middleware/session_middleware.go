package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// browserSessionKey — ключ идентификатора сессии браузера в контексте Gin
const browserSessionKey = "browserSessionID"

// sessionCookieMaxAge — время жизни cookie сессии браузера (30 дней)
const sessionCookieMaxAge = 30 * 24 * 60 * 60

// BrowserSession выдает каждому браузеру стабильный идентификатор в cookie.
// К идентификатору привязывается активная игровая сессия: один браузер —
// максимум одна незавершенная викторина.
func BrowserSession(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(cookieName, sessionID, sessionCookieMaxAge, "/", "", false, true)
		}
		c.Set(browserSessionKey, sessionID)
		c.Next()
	}
}

// BrowserSessionID возвращает идентификатор сессии браузера из контекста
func BrowserSessionID(c *gin.Context) string {
	return c.GetString(browserSessionKey)
}
