package api

import (
	"errors"
	"net/http"

	"github.com/Mrlaolu/luBoard/internal/contest"
)

// StatusFor maps state errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, contest.ErrDataUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, contest.ErrUnknownTeam), errors.Is(err, contest.ErrUnknownProblem):
		return http.StatusNotFound
	case errors.Is(err, contest.ErrEmptyTeamName), errors.Is(err, contest.ErrStepTooSmall):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
