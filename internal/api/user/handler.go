package user

import (
	"github.com/Mrlaolu/luBoard/internal/config"
	"github.com/Mrlaolu/luBoard/internal/contest"
	"github.com/Mrlaolu/luBoard/internal/pubsub"
)

// Handler holds all dependencies for the public API handlers.
type Handler struct {
	cfg    *config.Config
	state  *contest.State
	broker *pubsub.Broker
}

func NewHandler(cfg *config.Config, state *contest.State, broker *pubsub.Broker) *Handler {
	return &Handler{
		cfg:    cfg,
		state:  state,
		broker: broker,
	}
}
