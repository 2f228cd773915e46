package admin

import (
	"fmt"
	"net/http"

	"github.com/Mrlaolu/luBoard/internal/api"
	"github.com/Mrlaolu/luBoard/internal/loader"
	"github.com/Mrlaolu/luBoard/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// reload re-reads the configured source. On failure the current state is kept.
// Injected submissions and registered teams are discarded by a successful reload.
func (h *Handler) reload(c *gin.Context) {
	zap.S().Infof("reloading contest log from %s source %s", h.cfg.Source.Type, h.cfg.Source.Path)

	log, err := loader.Load(h.cfg.Source)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, fmt.Errorf("failed to reload contest log: %w", err))
		return
	}

	h.state.Replace(log)
	zap.S().Info("contest state reloaded successfully")

	util.Success(c, gin.H{
		"problems_loaded":    len(log.Problems),
		"teams_loaded":       len(log.Teams),
		"submissions_loaded": len(log.Submissions),
	}, "Reload successful")
}

// getBaseline exposes the full-contest resolver output, including the total
// attempts per team and problem.
func (h *Handler) getBaseline(c *gin.Context) {
	baseline, err := h.state.Baseline()
	if err != nil {
		util.Error(c, api.StatusFor(err), err)
		return
	}
	util.Success(c, baseline, "")
}
