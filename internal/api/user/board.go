package user

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Mrlaolu/luBoard/internal/api"
	"github.com/Mrlaolu/luBoard/internal/standings"
	"github.com/Mrlaolu/luBoard/internal/util"
	"github.com/gin-gonic/gin"
)

func (h *Handler) getContest(c *gin.Context) {
	meta, err := h.state.Metadata()
	if err != nil {
		util.Error(c, api.StatusFor(err), err)
		return
	}
	util.Success(c, meta, "")
}

func (h *Handler) getBoard(c *gin.Context) {
	board, ok := h.boardFromParam(c)
	if !ok {
		return
	}
	util.Success(c, board, "")
}

// boardFromParam projects the board at the :seconds path parameter. It writes
// the error response itself and reports false on failure.
func (h *Handler) boardFromParam(c *gin.Context) (standings.Board, bool) {
	seconds, err := strconv.Atoi(c.Param("seconds"))
	if err != nil || seconds < 0 {
		util.Error(c, http.StatusBadRequest, fmt.Sprintf("invalid cutoff %q: must be a non-negative number of seconds", c.Param("seconds")))
		return standings.Board{}, false
	}

	board, err := h.state.BoardAt(seconds)
	if err != nil {
		util.Error(c, api.StatusFor(err), err)
		return standings.Board{}, false
	}
	return board, true
}
