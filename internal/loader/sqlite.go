package loader

import (
	"fmt"
	"os"

	"github.com/Mrlaolu/luBoard/internal/database"
	"github.com/Mrlaolu/luBoard/internal/database/models"
	"github.com/Mrlaolu/luBoard/internal/standings"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LoadSQLite reads a contest log previously stored with SaveSQLite.
func LoadSQLite(path string, opts Options) (*ContestLog, error) {
	db, err := database.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer database.Close(db)

	log, err := ReadDB(db, opts)
	if err != nil {
		return nil, err
	}
	zap.S().Infof("loaded %s: %d problems, %d teams, %d submissions",
		path, len(log.Problems), len(log.Teams), len(log.Submissions))
	return log, nil
}

// ReadDB converts the stored records into a ContestLog.
func ReadDB(db *gorm.DB, opts Options) (*ContestLog, error) {
	problems, err := database.GetAllProblems(db)
	if err != nil {
		return nil, fmt.Errorf("failed to read problems: %w", err)
	}
	teams, err := database.GetAllTeams(db)
	if err != nil {
		return nil, fmt.Errorf("failed to read teams: %w", err)
	}
	subs, err := database.GetAllSubmissions(db)
	if err != nil {
		return nil, fmt.Errorf("failed to read submissions: %w", err)
	}

	ignored := make(map[string]struct{}, len(opts.IgnoreTeams))
	for _, name := range opts.IgnoreTeams {
		ignored[name] = struct{}{}
	}

	log := NewContestLog()
	for _, p := range problems {
		log.Problems[p.ID] = standings.Problem{ID: p.ID, Penalty: p.Penalty}
	}
	for _, t := range teams {
		if _, skip := ignored[t.Name]; skip {
			continue
		}
		log.Teams[t.ID] = standings.Team{ID: t.ID, School: t.School, Name: t.Name}
	}
	for _, s := range subs {
		if s.Elapsed < 0 {
			continue
		}
		log.Submissions = append(log.Submissions, standings.Submission{
			TeamID:    s.TeamID,
			ProblemID: s.ProblemID,
			Elapsed:   s.Elapsed,
			Accepted:  IsAccepted(s.Status),
		})
	}
	return log, nil
}

// WriteDB replaces the stored contest log with log.
func WriteDB(db *gorm.DB, log *ContestLog) error {
	problems := make([]models.Problem, 0, len(log.Problems))
	for _, id := range standings.SortedProblemIDs(log.Problems) {
		p := log.Problems[id]
		problems = append(problems, models.Problem{ID: p.ID, Name: p.ID, Penalty: p.Penalty})
	}

	teams := make([]models.Team, 0, len(log.Teams))
	for _, t := range log.Teams {
		teams = append(teams, models.Team{ID: t.ID, School: t.School, Name: t.Name})
	}

	subs := make([]models.Submission, 0, len(log.Submissions))
	for i, s := range log.Submissions {
		status := "WA"
		if s.Accepted {
			status = "OK"
		}
		subs = append(subs, models.Submission{
			Seq:       i,
			TeamID:    s.TeamID,
			ProblemID: s.ProblemID,
			Elapsed:   s.Elapsed,
			Status:    status,
		})
	}

	return database.ReplaceContestLog(db, problems, teams, subs)
}

// SaveSQLite writes log into the sqlite database at path, creating it if needed.
func SaveSQLite(path string, log *ContestLog) error {
	db, err := database.Init(path)
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", path, err)
	}
	defer database.Close(db)
	return WriteDB(db, log)
}
