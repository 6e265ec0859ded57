package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/thereayou/classchat/internal/database"
	"github.com/thereayou/classchat/internal/handlers"
	"github.com/thereayou/classchat/internal/logger"
	"github.com/thereayou/classchat/internal/store"
	"github.com/thereayou/classchat/internal/ws"
	"github.com/thereayou/classchat/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *ws.Hub
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			zap.L().Info(".env not found, using environment variables")
		}
	}

	if err := logger.Init(os.Getenv("APP_ENV")); err != nil {
		panic(err)
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		zap.L().Fatal("postgres connect failed", zap.Error(err))
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		zap.L().Fatal("invalid REDIS_URL", zap.Error(err))
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		zap.L().Fatal("redis connect failed", zap.Error(err))
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)

	registry := ws.NewRegistry()
	hub := ws.NewHub(registry)
	go hub.Run()

	messages := store.NewMessageStore(dbConn, dbConn)
	gateway := handlers.NewGateway(messages, dbConn, registry)

	chatH := handlers.NewChatHandler(messages, dbConn)
	wsH := handlers.NewWebSocketHandler(hub, gateway, dbConn)

	router := gin.Default()
	APIEndpoints(router, chatH, wsH, jwtMgr, rdb)

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	zap.L().Info("server starting", zap.String("port", port))
	if err := s.Router.Run(":" + port); err != nil {
		zap.L().Fatal("server run error", zap.Error(err))
	}
}
