package middleware

import (
	"github.com/gin-gonic/gin"

	"portfolio-api/internal/i18n"
)

const langKey = "lang"

// Locale resolves the request language from the lang cookie or the
// Accept-Language header and stores it on the context.
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie("lang")
		c.Set(langKey, i18n.Resolve(cookie, c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// Lang returns the language resolved by Locale, or the default when the
// middleware did not run.
func Lang(c *gin.Context) i18n.Language {
	if v, ok := c.Get(langKey); ok {
		if lang, ok := v.(i18n.Language); ok {
			return lang
		}
	}
	return i18n.Default
}
