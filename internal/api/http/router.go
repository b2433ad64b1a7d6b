package http

import (
	"net/http"
	"time"

	"chance-chess/internal/api/ws"
	"chance-chess/internal/config"
	"chance-chess/internal/room"

	// swagger packages
	_ "chance-chess/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

func NewRouter(rm *room.Manager, rooms RoomLister, hub *ws.Hub, cfg config.Config, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())

	// WebSocket for FE live updates
	r.GET("/ws", hub.HandleWS)

	// --- ROOM ENDPOINTS ---
	r.POST("/rooms", CreateRoomHandler(rm, hub))
	r.GET("/rooms/:code", GetRoomHandler(rm))
	r.POST("/rooms/:code/join", JoinRoomHandler(rm))
	r.POST("/rooms/:code/bots", AddBotHandler(rm, hub))

	// --- GAME ENDPOINTS ---
	r.POST("/rooms/:code/select", SelectHandler(rm))
	r.POST("/rooms/:code/move", MoveHandler(rm, hub))
	r.POST("/rooms/:code/roll", RollHandler(rm, hub))
	r.POST("/rooms/:code/toss", TossHandler(rm, hub))
	r.POST("/rooms/:code/promote", PromoteHandler(rm, hub))
	r.POST("/rooms/:code/reset", ResetHandler(rm, hub))
	r.POST("/rooms/:code/bot-move", BotMoveHandler(rm))
	r.GET("/rooms/:code/fen", FENHandler(rm))
	r.GET("/rooms/:code/record", RecordHandler(rm))

	// --- CONFIG ENDPOINTS ---
	ch := NewConfigHandler(cfg, rooms)
	r.GET("/config", ch.GetConfigHandler)
	r.GET("/healthz", ch.HealthHandler)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	return r
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
