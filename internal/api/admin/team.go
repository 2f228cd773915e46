package admin

import (
	"net/http"

	"github.com/Mrlaolu/luBoard/internal/api"
	"github.com/Mrlaolu/luBoard/internal/util"
	"github.com/gin-gonic/gin"
)

type registerTeamRequest struct {
	TeamName string `json:"team_name" form:"team_name" binding:"required"`
}

func (h *Handler) registerTeam(c *gin.Context) {
	var req registerTeamRequest
	if err := c.ShouldBind(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	team, err := h.state.RegisterTeam(req.TeamName)
	if err != nil {
		util.Error(c, api.StatusFor(err), err)
		return
	}
	util.Success(c, gin.H{"team_id": team.ID}, "Team registered")
}

func (h *Handler) getAllTeams(c *gin.Context) {
	teams, err := h.state.Teams()
	if err != nil {
		util.Error(c, api.StatusFor(err), err)
		return
	}
	util.Success(c, teams, "")
}
