package main

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thereayou/classchat/internal/handlers"
	"github.com/thereayou/classchat/internal/middleware"
	"github.com/thereayou/classchat/pkg/auth"
)

func APIEndpoints(r *gin.Engine, chatH *handlers.ChatHandler, wsH *handlers.WebSocketHandler, jwtMgr *auth.JWTManager, rdb *redis.Client) {
	// REST endpoints
	api := r.Group("/api/chat", middleware.AuthMiddleware(jwtMgr, rdb))
	{
		api.GET("/", chatH.GetMyChats)
		api.GET("/messages/:chatID", chatH.GetChatMessages)
	}

	// WebSocket endpoint
	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, rdb), wsH.HandleWebSocket)
}
