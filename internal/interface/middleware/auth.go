package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/contasclaras/api/pkg/helpers"
	"github.com/contasclaras/api/pkg/response"
)

// Auth validates the access token and ensures an active session exists in
// Redis whose sid matches the token. It sets userID, userName, userEmail
// and isAdmin in the Gin context on success.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", err.Error())
			c.Abort()
			return
		}

		key := "user:session:" + claims.UserID
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 {
			response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
			c.Abort()
			return
		}
		if sid, ok := data["sid"]; ok && claims.SessionID != "" && sid != claims.SessionID {
			response.Error[any](c, http.StatusUnauthorized, "session superseded", nil)
			c.Abort()
			return
		}

		c.Set("userID", data["user_id"])
		c.Set("userName", data["name"])
		c.Set("userEmail", data["email"])
		c.Set("isAdmin", data["is_admin"] == "1" || data["is_admin"] == "true")
		c.Next()
	}
}

// RequireAdmin gates admin-only routes on the session's is_admin flag,
// which mirrors the persisted users.is_admin column.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("isAdmin") {
			response.Error[any](c, http.StatusForbidden, "admin access required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
