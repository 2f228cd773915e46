package admin

import (
	"github.com/Mrlaolu/luBoard/internal/config"
	"github.com/Mrlaolu/luBoard/internal/contest"
)

// Handler holds all dependencies for the admin API handlers.
type Handler struct {
	cfg   *config.Config
	state *contest.State
}

func NewHandler(cfg *config.Config, state *contest.State) *Handler {
	return &Handler{
		cfg:   cfg,
		state: state,
	}
}
