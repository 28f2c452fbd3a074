package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/unboxus/unbox-server/internal/config"
	"github.com/unboxus/unbox-server/internal/database"
	"github.com/unboxus/unbox-server/internal/game"
	"github.com/unboxus/unbox-server/internal/handlers"
	"github.com/unboxus/unbox-server/internal/session"
	"github.com/unboxus/unbox-server/internal/websocket"
	"github.com/unboxus/unbox-server/pkg/auth"
)

type Server struct {
	Router *gin.Engine
	DB     *database.Database
	Redis  *redis.Client
	Hub    *websocket.Hub
	Tokens *auth.HostTokenManager

	cfg *config.Config
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	cfg := config.Load()

	dbConn := &database.Database{}
	if err := dbConn.Connect(cfg.DatabaseURL); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	tokens := auth.NewHostTokenManager(cfg.HostTokenSecret, cfg.HostTokenTTL)
	sessions := session.NewStore(rdb, cfg.SessionTTL)

	lifecycle := game.NewLifecycle(dbConn)
	reveal := game.NewRevealService(dbConn)

	hub := websocket.NewHub(dbConn, cfg.RefreshInterval)
	// Every snapshot, pushed or polled, feeds the same reconciliation path.
	hub.OnSnapshot(reveal.Reconcile)

	roomH := handlers.NewRoomHandler(dbConn, lifecycle, reveal, hub, tokens)
	answerH := handlers.NewAnswerHandler(dbConn, lifecycle, reveal, sessions, hub)
	sessionH := handlers.NewSessionHandler(sessions)
	wsH := handlers.NewWebSocketHandler(hub, dbConn)

	router := gin.Default()
	APIEndpoints(router, roomH, answerH, sessionH, wsH, tokens)

	return &Server{
		Router: router,
		DB:     dbConn,
		Redis:  rdb,
		Hub:    hub,
		Tokens: tokens,
		cfg:    cfg,
	}
}

func (s *Server) Run() {
	go s.Hub.Run()
	defer s.Hub.Stop()

	log.Printf("Server starting on port %s", s.cfg.ServerPort)
	if err := s.Router.Run(":" + s.cfg.ServerPort); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
