package admin

import (
	"github.com/Mrlaolu/luBoard/internal/api"
	"github.com/Mrlaolu/luBoard/internal/config"
	"github.com/Mrlaolu/luBoard/internal/contest"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewAdminRouter creates and configures the operator Gin engine. It is meant
// to listen on a private address only.
func NewAdminRouter(cfg *config.Config, state *contest.State) *gin.Engine {
	r := gin.Default()

	r.Use(api.MetricsMiddleware())
	r.Use(api.CORSMiddleware(cfg.CORS))

	h := NewHandler(cfg, state)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		mutations := v1.Group("/")
		mutations.Use(api.RateLimitMiddleware(cfg.Admin))
		{
			mutations.POST("/submissions", h.injectSubmission)
			mutations.POST("/teams", h.registerTeam)
			mutations.POST("/reload", h.reload)
		}

		v1.GET("/teams", h.getAllTeams)
		v1.GET("/baseline", h.getBaseline)
	}

	return r
}
