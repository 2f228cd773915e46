package user

import (
	"github.com/Mrlaolu/luBoard/internal/api"
	"github.com/Mrlaolu/luBoard/internal/config"
	"github.com/Mrlaolu/luBoard/internal/contest"
	"github.com/Mrlaolu/luBoard/internal/embedui"
	"github.com/Mrlaolu/luBoard/internal/pubsub"
	"github.com/gin-gonic/gin"
)

// NewUserRouter creates and configures the public Gin engine.
func NewUserRouter(cfg *config.Config, state *contest.State, broker *pubsub.Broker) *gin.Engine {
	r := gin.Default()

	r.Use(api.MetricsMiddleware())
	r.Use(api.CORSMiddleware(cfg.CORS))

	h := NewHandler(cfg, state, broker)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/contest", h.getContest)
		v1.GET("/board/:seconds", h.getBoard)
		v1.GET("/board/:seconds/export.xlsx", h.exportBoard)
		v1.GET("/teams/:id/rank-history.png", h.getRankHistoryChart)

		v1.GET("/ws/events", h.handleEventsWs)
	}

	embedui.RegisterUIHandlers(r)

	return r
}
