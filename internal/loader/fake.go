package loader

import (
	"fmt"

	"github.com/Mrlaolu/luBoard/internal/standings"
	"github.com/brianvoe/gofakeit/v7"
)

type FakeOptions struct {
	Seed            uint64
	Teams           int
	Problems        int
	Submissions     int
	DurationSeconds int
}

// Fake builds a random but reproducible contest log. Problems are named A, B,
// ... and continue as P27, P28 past the alphabet.
func Fake(opts FakeOptions) *ContestLog {
	f := gofakeit.New(opts.Seed)
	log := NewContestLog()

	ids := make([]string, 0, opts.Problems)
	for i := 0; i < opts.Problems; i++ {
		id := fmt.Sprintf("P%d", i+1)
		if i < 26 {
			id = string(rune('A' + i))
		}
		ids = append(ids, id)
		log.Problems[id] = standings.Problem{ID: id, Penalty: 20}
	}
	for id := 1; id <= opts.Teams; id++ {
		log.Teams[id] = standings.Team{ID: id, School: f.Company(), Name: f.Name()}
	}
	if len(ids) == 0 || opts.Teams == 0 {
		return log
	}

	for i := 0; i < opts.Submissions; i++ {
		log.Submissions = append(log.Submissions, standings.Submission{
			TeamID:    f.IntRange(1, opts.Teams),
			ProblemID: ids[f.IntRange(0, len(ids)-1)],
			Elapsed:   f.IntRange(0, opts.DurationSeconds),
			Accepted:  f.IntRange(0, 3) == 0,
		})
	}
	standings.SortSubmissions(log.Submissions)
	return log
}
