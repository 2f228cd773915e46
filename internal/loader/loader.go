package loader

import (
	"errors"
	"fmt"

	"github.com/Mrlaolu/luBoard/internal/config"
	"github.com/Mrlaolu/luBoard/internal/standings"
)

// ErrSourceUnavailable means the contest log could not be opened at all.
var ErrSourceUnavailable = errors.New("contest log unavailable")

// ContestLog is the structured content of a contest log.
type ContestLog struct {
	Problems    map[string]standings.Problem
	Teams       map[int]standings.Team
	Submissions []standings.Submission
}

func NewContestLog() *ContestLog {
	return &ContestLog{
		Problems: make(map[string]standings.Problem),
		Teams:    make(map[int]standings.Team),
	}
}

// Clone returns a deep copy so the caller can own and mutate it.
func (l *ContestLog) Clone() *ContestLog {
	c := NewContestLog()
	for id, p := range l.Problems {
		c.Problems[id] = p
	}
	for id, t := range l.Teams {
		c.Teams[id] = t
	}
	c.Submissions = append([]standings.Submission(nil), l.Submissions...)
	return c
}

type Options struct {
	// IgnoreTeams lists team names dropped while loading.
	IgnoreTeams []string
}

// Load reads the contest log described by src.
func Load(src config.Source) (*ContestLog, error) {
	opts := Options{IgnoreTeams: src.IgnoreTeams}
	switch src.Type {
	case config.SourceDat, "":
		return LoadDat(src.Path, opts)
	case config.SourceSQLite:
		return LoadSQLite(src.Path, opts)
	default:
		return nil, fmt.Errorf("unknown source type %q", src.Type)
	}
}
