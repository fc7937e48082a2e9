package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the HTTP surface: the websocket endpoint that carries
// all game traffic, plus a small read-only API.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.Default()

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/rooms/:code", h.CheckRoom)
		api.GET("/rooms/:code/stats", h.RoomStats)
	}

	router.GET("/ws", h.HandleGameWS)

	return router
}
