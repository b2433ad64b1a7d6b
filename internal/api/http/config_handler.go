package http

import (
	"net/http"

	"chance-chess/internal/config"

	"github.com/gin-gonic/gin"
)

// RoomLister reports the rooms currently held by the store.
type RoomLister interface {
	RoomCodes() []string
}

type ConfigHandler struct {
	cfg   config.Config
	rooms RoomLister
}

func NewConfigHandler(cfg config.Config, rooms RoomLister) *ConfigHandler {
	return &ConfigHandler{cfg: cfg, rooms: rooms}
}

// GetConfigHandler returns the running configuration
// @Summary Get server configuration
// @Description Returns the default variant, room code length and bot heuristic weights
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /config [get]
func (h *ConfigHandler) GetConfigHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"defaultVariant": h.cfg.DefaultVariant,
		"roomCodeLength": h.cfg.RoomCodeLength,
		"weights":        h.cfg.Weights,
	})
}

// HealthHandler
// @Summary Liveness probe
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /healthz [get]
func (h *ConfigHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"rooms":  len(h.rooms.RoomCodes()),
	})
}
