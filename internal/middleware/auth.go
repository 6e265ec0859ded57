package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thereayou/classchat/pkg/auth"
)

const UserIDKey = "userID"

// AuthMiddleware проверяет JWT токен. Токены выдаёт внешний сервис
// дашборда, subject — числовой id пользователя.
func AuthMiddleware(jwtManager *auth.JWTManager, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			c.Abort()
			return
		}

		authorize(c, token, jwtManager, redisClient)
	}
}

// WSAuthMiddleware специальный middleware для WebSocket: браузер не умеет
// ставить заголовки на апгрейд, поэтому токен принимается и из query.
func WSAuthMiddleware(jwtManager *auth.JWTManager, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
					token = parts[1]
				}
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		authorize(c, token, jwtManager, redisClient)
	}
}

func authorize(c *gin.Context, token string, jwtManager *auth.JWTManager, redisClient *redis.Client) {
	// Проверяем, не в черном списке ли токен
	exists, err := redisClient.Exists(context.Background(), "blacklist:"+token).Result()
	if err != nil || exists > 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token is blacklisted"})
		c.Abort()
		return
	}

	claims, err := jwtManager.Verify(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		c.Abort()
		return
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
		c.Abort()
		return
	}

	c.Set(UserIDKey, uint(userID))
	c.Next()
}
