package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Mrlaolu/luBoard/internal/api"
	"github.com/Mrlaolu/luBoard/internal/util"
	"github.com/gin-gonic/gin"
)

type injectRequest struct {
	// TeamID is a pointer so that team 0 passes the required check.
	TeamID    *int   `json:"team_id" form:"team_id" binding:"required"`
	ProblemID string `json:"problem_id" form:"problem_id" binding:"required"`
	Result    string `json:"result" form:"result" binding:"required,oneof=AC WA"`
	// Minute is the solve minute for AC, one past the attempt minute for WA.
	// Anything that is not an integer counts as 0.
	Minute string `json:"minute" form:"minute"`
}

func (h *Handler) injectSubmission(c *gin.Context) {
	var req injectRequest
	if err := c.ShouldBind(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	minute, err := strconv.Atoi(strings.TrimSpace(req.Minute))
	if err != nil {
		minute = 0
	}

	sub, err := h.state.InjectSubmission(*req.TeamID, req.ProblemID, req.Result == "AC", minute)
	if err != nil {
		util.Error(c, api.StatusFor(err), err)
		return
	}
	util.Success(c, sub, "Submission injected")
}
