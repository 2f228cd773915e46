package standings

// Unset marks a time field that has no value yet.
const Unset = -1

type Problem struct {
	ID      string `json:"id" yaml:"id"`
	Penalty int    `json:"penalty" yaml:"penalty"` // minutes per rejected attempt
}

type Team struct {
	ID     int    `json:"id"`
	School string `json:"school"`
	Name   string `json:"name"`
}

// DisplayName is "School - Name", or just Name when no school is known.
func (t Team) DisplayName() string {
	if t.School == "" {
		return t.Name
	}
	return t.School + " - " + t.Name
}

// Submission is one judged attempt. Elapsed is seconds since contest start.
type Submission struct {
	TeamID    int    `json:"team_id"`
	ProblemID string `json:"problem_id"`
	Elapsed   int    `json:"elapsed"`
	Accepted  bool   `json:"accepted"`
}

// FinalStatus is the terminal outcome of one team on one problem over the whole log.
type FinalStatus struct {
	Accepted bool `json:"accepted"`
	// SolvedAt is the elapsed second of the first acceptance, or Unset.
	SolvedAt int `json:"solved_at"`
	// Rejections counts rejected attempts before acceptance (all of them if never accepted).
	Rejections int `json:"rejections"`
	Penalty    int `json:"penalty"`
	// LastSubmissionAt is the last submission processed while the pair was still open.
	LastSubmissionAt int `json:"last_submission_at"`
	// TotalAttempts counts every submission for the pair, including ignored ones.
	TotalAttempts int `json:"total_attempts"`
}

func newFinalStatus() FinalStatus {
	return FinalStatus{SolvedAt: Unset, LastSubmissionAt: Unset}
}

// AttemptsToAccept returns the number of tries it took, counting the accepted one.
func (s FinalStatus) AttemptsToAccept() int {
	if s.Accepted {
		return s.Rejections + 1
	}
	return s.Rejections
}

type BaselineRow struct {
	TeamID int    `json:"team_id"`
	Team   string `json:"team"`
	// Final is indexed like Baseline.ProblemIDs.
	Final []FinalStatus `json:"final"`
}

// Baseline is the full-contest state produced by Resolve. It is treated as
// read-only once built; Project never writes into it.
type Baseline struct {
	ProblemIDs []string      `json:"problem_ids"`
	Rows       []BaselineRow `json:"rows"`
}

// Cell is what the board shows for one team on one problem at a cutoff.
type Cell struct {
	Symbol           string `json:"display"`
	SolvedMinute     int    `json:"solved_time"`
	Penalty          int    `json:"penalty"`
	LastSubmissionAt int    `json:"last_submission_time"`
}

// Solved reports whether the cell shows an accepted problem.
func (c Cell) Solved() bool {
	return len(c.Symbol) > 0 && c.Symbol[0] == '+'
}

type Row struct {
	TeamID  int             `json:"team_id"`
	Team    string          `json:"team"`
	Solved  int             `json:"solved"`
	Penalty int             `json:"penalty"`
	Rank    int             `json:"rank"`
	Cells   map[string]Cell `json:"status"`
}

type ProblemStats struct {
	ProblemID       string `json:"problem_id"`
	Submitted       int    `json:"submitted"`
	Accepted        int    `json:"accepted"`
	AcceptedPercent int    `json:"accepted_percent"`
	// FirstSolved is the earliest solve minute, nil when nobody has solved it yet.
	FirstSolved *int `json:"first_solved"`
}

type Board struct {
	Cutoff     int            `json:"cutoff"`
	ProblemIDs []string       `json:"problems"`
	Rows       []Row          `json:"board"`
	Statistics []ProblemStats `json:"statistics"`
}
