package middleware

import (
	"net/http"
	"strings"

	"github.com/crushconfessions/crushconfessions-backend/internal/common"
	"github.com/gin-gonic/gin"
)

// SecurityHeaders adds common security headers to all responses
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

		// HSTS (only over TLS)
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// InputSanitizer blocks requests with common XSS/injection patterns in query parameters
func InputSanitizer() gin.HandlerFunc {
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"eval(",
		"document.cookie",
	}

	return func(c *gin.Context) {
		for _, values := range c.Request.URL.Query() {
			for _, v := range values {
				lower := strings.ToLower(v)
				for _, pattern := range dangerousPatterns {
					if strings.Contains(lower, pattern) {
						common.ErrorResponse(c, http.StatusBadRequest, "Potentially dangerous input detected", nil)
						c.Abort()
						return
					}
				}
			}
		}
		c.Next()
	}
}
