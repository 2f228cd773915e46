package contest

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Mrlaolu/luBoard/internal/loader"
	"github.com/Mrlaolu/luBoard/internal/metrics"
	"github.com/Mrlaolu/luBoard/internal/pubsub"
	"github.com/Mrlaolu/luBoard/internal/standings"
	"go.uber.org/zap"
)

var (
	ErrDataUnavailable = errors.New("contest data unavailable")
	ErrUnknownTeam     = errors.New("unknown team")
	ErrUnknownProblem  = errors.New("unknown problem")
	ErrEmptyTeamName   = errors.New("team name is empty")
	ErrStepTooSmall    = errors.New("rank history step too small")
)

// MaxRankPoints bounds how many boards one RankHistory call projects.
const MaxRankPoints = 1000

type Options struct {
	DurationSeconds int
	AutoplayAt      *time.Time
	// Broker receives board events after every mutation; nil disables them.
	Broker *pubsub.Broker
}

// State owns the authoritative contest log and the baseline derived from it.
// Writers replace the slices and the baseline wholesale under the write lock,
// so a snapshot taken under the read lock stays valid after it is released.
type State struct {
	mu          sync.RWMutex
	available   bool
	cause       error
	problems    map[string]standings.Problem
	teams       map[int]standings.Team
	submissions []standings.Submission
	baseline    standings.Baseline

	opts Options
}

type Metadata struct {
	Problems         []string   `json:"problems"`
	TotalDurationSec int        `json:"total_duration_sec"`
	Teams            int        `json:"teams"`
	Submissions      int        `json:"submissions"`
	AutoplayAt       *time.Time `json:"autoplay_at,omitempty"`
}

type RankPoint struct {
	Elapsed int `json:"elapsed"`
	Rank    int `json:"rank"`
	Solved  int `json:"solved"`
}

// New builds a state from log. The state keeps its own copy of log.
func New(log *loader.ContestLog, opts Options) *State {
	s := &State{opts: opts}
	s.Replace(log)
	return s
}

// NewUnavailable builds a state that answers every query with ErrDataUnavailable
// until Replace succeeds.
func NewUnavailable(cause error, opts Options) *State {
	return &State{opts: opts, cause: cause}
}

// Replace swaps in a whole new contest log and recomputes the baseline.
func (s *State) Replace(log *loader.ContestLog) {
	own := log.Clone()
	standings.SortSubmissions(own.Submissions)
	baseline := standings.Resolve(own.Teams, own.Problems, own.Submissions)

	s.mu.Lock()
	s.problems = own.Problems
	s.teams = own.Teams
	s.submissions = own.Submissions
	s.baseline = baseline
	s.available = true
	s.cause = nil
	s.mu.Unlock()

	metrics.ResolvesTotal.Inc()
	s.observeSize(len(own.Teams), len(own.Problems), len(own.Submissions))
	s.publish("reload", map[string]int{
		"teams":       len(own.Teams),
		"problems":    len(own.Problems),
		"submissions": len(own.Submissions),
	})
}

// Available reports whether contest data is loaded, and why not otherwise.
func (s *State) Available() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.available, s.cause
}

func (s *State) snapshot() (standings.Baseline, []standings.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.available {
		return standings.Baseline{}, nil, ErrDataUnavailable
	}
	return s.baseline, s.submissions, nil
}

// BoardAt projects the board at cutoff elapsed seconds. Negative cutoffs are
// treated as the contest start.
func (s *State) BoardAt(cutoff int) (standings.Board, error) {
	baseline, subs, err := s.snapshot()
	if err != nil {
		return standings.Board{}, err
	}
	if cutoff < 0 {
		cutoff = 0
	}

	start := time.Now()
	board := standings.Project(baseline, subs, cutoff)
	metrics.ProjectionDuration.Observe(time.Since(start).Seconds())
	metrics.ProjectionsTotal.Inc()
	return board, nil
}

// RankHistory samples a team's rank every step seconds from 0 to the contest end.
func (s *State) RankHistory(teamID, step int) ([]RankPoint, error) {
	baseline, subs, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	found := false
	for _, row := range baseline.Rows {
		if row.TeamID == teamID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrUnknownTeam
	}
	if step <= 0 {
		step = 60
	}
	// one point per step plus the contest end
	if (s.opts.DurationSeconds+step-1)/step+1 > MaxRankPoints {
		return nil, fmt.Errorf("%w: %ds over %ds gives more than %d points",
			ErrStepTooSmall, step, s.opts.DurationSeconds, MaxRankPoints)
	}

	var points []RankPoint
	for t := 0; ; t += step {
		if t > s.opts.DurationSeconds {
			t = s.opts.DurationSeconds
		}
		board := standings.Project(baseline, subs, t)
		for _, row := range board.Rows {
			if row.TeamID == teamID {
				points = append(points, RankPoint{Elapsed: t, Rank: row.Rank, Solved: row.Solved})
				break
			}
		}
		if t >= s.opts.DurationSeconds {
			break
		}
	}
	return points, nil
}

func (s *State) Metadata() (Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meta := Metadata{
		Problems:         []string{},
		TotalDurationSec: s.opts.DurationSeconds,
		AutoplayAt:       s.opts.AutoplayAt,
	}
	if !s.available {
		return meta, ErrDataUnavailable
	}
	meta.Problems = append(meta.Problems, s.baseline.ProblemIDs...)
	meta.Teams = len(s.teams)
	meta.Submissions = len(s.submissions)
	return meta, nil
}

// Baseline returns the full-contest state, including diagnostics such as
// total attempts per problem.
func (s *State) Baseline() (standings.Baseline, error) {
	baseline, _, err := s.snapshot()
	return baseline, err
}

// Teams returns the known teams ordered by id.
func (s *State) Teams() ([]standings.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.available {
		return nil, ErrDataUnavailable
	}
	teams := make([]standings.Team, 0, len(s.teams))
	for _, t := range s.teams {
		teams = append(teams, t)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

// InjectSubmission appends an operator submission. minute is the solve minute
// for accepted submissions and one past the attempt minute for rejected ones.
func (s *State) InjectSubmission(teamID int, problemID string, accepted bool, minute int) (standings.Submission, error) {
	elapsed := minute * 60
	if !accepted {
		elapsed = (minute - 1) * 60
	}
	if elapsed < 0 {
		elapsed = 0
	}
	sub := standings.Submission{TeamID: teamID, ProblemID: problemID, Elapsed: elapsed, Accepted: accepted}

	s.mu.Lock()
	if !s.available {
		s.mu.Unlock()
		return sub, ErrDataUnavailable
	}
	if _, ok := s.teams[teamID]; !ok {
		s.mu.Unlock()
		return sub, ErrUnknownTeam
	}
	if _, ok := s.problems[problemID]; !ok {
		s.mu.Unlock()
		return sub, ErrUnknownProblem
	}

	subs := make([]standings.Submission, len(s.submissions), len(s.submissions)+1)
	copy(subs, s.submissions)
	subs = append(subs, sub)
	standings.SortSubmissions(subs)

	s.submissions = subs
	s.baseline = standings.Resolve(s.teams, s.problems, subs)
	size := [3]int{len(s.teams), len(s.problems), len(subs)}
	s.mu.Unlock()

	metrics.ResolvesTotal.Inc()
	metrics.MutationsTotal.WithLabelValues("submission").Inc()
	s.observeSize(size[0], size[1], size[2])
	zap.S().Infof("injected submission: team %d problem %s elapsed %ds accepted=%t", teamID, problemID, elapsed, accepted)
	s.publish("submission", sub)
	return sub, nil
}

// RegisterTeam adds a team with the next free id.
func (s *State) RegisterTeam(name string) (standings.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return standings.Team{}, ErrEmptyTeamName
	}

	s.mu.Lock()
	if !s.available {
		s.mu.Unlock()
		return standings.Team{}, ErrDataUnavailable
	}
	maxID := 0
	for id := range s.teams {
		if id > maxID {
			maxID = id
		}
	}
	team := standings.Team{ID: maxID + 1, Name: name}

	teams := make(map[int]standings.Team, len(s.teams)+1)
	for id, t := range s.teams {
		teams[id] = t
	}
	teams[team.ID] = team

	s.teams = teams
	s.baseline = standings.Resolve(teams, s.problems, s.submissions)
	size := [3]int{len(teams), len(s.problems), len(s.submissions)}
	s.mu.Unlock()

	metrics.ResolvesTotal.Inc()
	metrics.MutationsTotal.WithLabelValues("team").Inc()
	s.observeSize(size[0], size[1], size[2])
	zap.S().Infof("registered team %d: %s", team.ID, team.Name)
	s.publish("team", team)
	return team, nil
}

func (s *State) publish(stream string, data interface{}) {
	if s.opts.Broker == nil {
		return
	}
	s.opts.Broker.PublishEvent(pubsub.TopicBoard, stream, data)
}

func (s *State) observeSize(teams, problems, submissions int) {
	metrics.ContestSize.WithLabelValues("teams").Set(float64(teams))
	metrics.ContestSize.WithLabelValues("problems").Set(float64(problems))
	metrics.ContestSize.WithLabelValues("submissions").Set(float64(submissions))
}
