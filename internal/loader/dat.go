package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/Mrlaolu/luBoard/internal/standings"
	"go.uber.org/zap"
)

// teamInfoPattern splits `"School - Team[ - anything]"`.
var teamInfoPattern = regexp.MustCompile(`^"(.*?)\s-\s(.*?)(?:\s-\s.*)?"`)

// ParseStats describes what a parse kept and dropped.
type ParseStats struct {
	Problems    int `json:"problems"`
	Teams       int `json:"teams"`
	Submissions int `json:"submissions"`
	Malformed   int `json:"malformed"`
	Ignored     int `json:"ignored"`
}

// ParseDat reads the line-tagged contest.dat format:
//
//	@p <id>,<name>,<penalty>,<x>
//	@t <id>,<x>,<x>,"<school> - <team>"
//	@s <team>,<problem>,<x>,<seconds>,<status>
//
// Unknown tags are skipped; malformed records are dropped and counted.
func ParseDat(r io.Reader, opts Options) (*ContestLog, ParseStats, error) {
	log := NewContestLog()
	var stats ParseStats

	ignored := make(map[string]struct{}, len(opts.IgnoreTeams))
	for _, name := range opts.IgnoreTeams {
		ignored[name] = struct{}{}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "@p"):
			p, ok := parseProblem(line)
			if !ok {
				stats.Malformed++
				continue
			}
			if _, exists := log.Problems[p.ID]; exists {
				zap.S().Warnf("duplicate problem ID %s found, overwriting", p.ID)
			}
			log.Problems[p.ID] = p
		case strings.HasPrefix(line, "@t"):
			t, ok := parseTeam(line)
			if !ok {
				stats.Malformed++
				continue
			}
			if _, skip := ignored[t.Name]; skip {
				stats.Ignored++
				continue
			}
			log.Teams[t.ID] = t
		case strings.HasPrefix(line, "@s"):
			s, ok := parseSubmission(line)
			if !ok {
				stats.Malformed++
				continue
			}
			log.Submissions = append(log.Submissions, s)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("failed to read contest log: %w", err)
	}

	stats.Problems = len(log.Problems)
	stats.Teams = len(log.Teams)
	stats.Submissions = len(log.Submissions)
	return log, stats, nil
}

// LoadDat parses the contest.dat file at path.
func LoadDat(path string, opts Options) (*ContestLog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	log, stats, err := ParseDat(f, opts)
	if err != nil {
		return nil, err
	}
	zap.S().Infof("parsed %s: %d problems, %d teams, %d submissions (%d malformed, %d ignored)",
		path, stats.Problems, stats.Teams, stats.Submissions, stats.Malformed, stats.Ignored)
	return log, nil
}

func parseProblem(line string) (standings.Problem, bool) {
	_, body, ok := strings.Cut(line, " ")
	if !ok || strings.Count(body, ",") != 3 {
		return standings.Problem{}, false
	}
	fields := strings.Split(body, ",")
	penalty, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil || penalty < 0 {
		return standings.Problem{}, false
	}
	return standings.Problem{ID: fields[0], Penalty: penalty}, true
}

func parseTeam(line string) (standings.Team, bool) {
	if strings.Count(line, ",") < 3 {
		return standings.Team{}, false
	}
	fields := strings.SplitN(line, ",", 4)
	_, rawID, ok := strings.Cut(fields[0], " ")
	if !ok {
		return standings.Team{}, false
	}
	id, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil {
		return standings.Team{}, false
	}

	info := fields[3]
	team := standings.Team{ID: id}
	if m := teamInfoPattern.FindStringSubmatch(info); m != nil {
		team.School, team.Name = m[1], m[2]
	} else {
		team.Name = strings.Trim(info, `"`)
	}
	return team, true
}

func parseSubmission(line string) (standings.Submission, bool) {
	_, body, ok := strings.Cut(line, " ")
	if !ok || strings.Count(body, ",") != 4 {
		return standings.Submission{}, false
	}
	fields := strings.Split(body, ",")
	teamID, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return standings.Submission{}, false
	}
	elapsed, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err != nil || elapsed < 0 {
		return standings.Submission{}, false
	}
	return standings.Submission{
		TeamID:    teamID,
		ProblemID: fields[1],
		Elapsed:   elapsed,
		Accepted:  IsAccepted(fields[4]),
	}, true
}

// IsAccepted maps a judge verdict to the accepted/rejected outcome.
func IsAccepted(status string) bool {
	switch strings.TrimSpace(status) {
	case "OK", "AC":
		return true
	}
	return false
}
