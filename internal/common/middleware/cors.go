package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// CORS applies the cross-origin policy for the configured origins. "*"
// allows any origin. Preflights from allowed origins are answered with
// 204; any other OPTIONS request falls through to the router.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	policy := cors.New(cors.Options{
		AllowedOrigins:     allowedOrigins,
		AllowedMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:     []string{"Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders:     []string{RequestIDHeader},
		MaxAge:             600,
		OptionsPassthrough: true,
	})

	return func(c *gin.Context) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPreflight(r) && w.Header().Get("Access-Control-Allow-Origin") != "" {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
			c.Next()
		})
		policy.Handler(next).ServeHTTP(c.Writer, c.Request)
	}
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
}
