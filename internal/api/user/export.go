package user

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Mrlaolu/luBoard/internal/api"
	"github.com/Mrlaolu/luBoard/internal/export"
	"github.com/Mrlaolu/luBoard/internal/util"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) exportBoard(c *gin.Context) {
	board, ok := h.boardFromParam(c)
	if !ok {
		return
	}

	data, err := export.BoardWorkbook(board)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, fmt.Errorf("failed to build workbook: %w", err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="board-%d.xlsx"`, board.Cutoff))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *Handler) getRankHistoryChart(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, "invalid team id")
		return
	}
	step := 60
	if raw := c.Query("step"); raw != "" {
		if step, err = strconv.Atoi(raw); err != nil || step <= 0 {
			util.Error(c, http.StatusBadRequest, "step must be a positive number of seconds")
			return
		}
	}

	points, err := h.state.RankHistory(teamID, step)
	if err != nil {
		util.Error(c, api.StatusFor(err), err)
		return
	}

	name := strconv.Itoa(teamID)
	if teams, err := h.state.Teams(); err == nil {
		for _, t := range teams {
			if t.ID == teamID {
				name = t.DisplayName()
				break
			}
		}
	}

	img, err := export.RankHistoryChart(name, points)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, fmt.Errorf("failed to render chart: %w", err))
		return
	}
	c.Data(http.StatusOK, "image/png", img)
}
