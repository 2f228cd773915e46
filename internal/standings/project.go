package standings

import (
	"strconv"
)

type pairActivity struct {
	rejections int
	last       int
}

// Project derives the board as it looked at cutoff (elapsed seconds).
// Accepted cells come from the baseline, rejection counts are recomputed from
// the submissions visible at the cutoff so later attempts never leak in.
func Project(b Baseline, subs []Submission, cutoff int) Board {
	activity := make(map[pairKey]*pairActivity)
	submitted := make(map[string]int)
	for _, sub := range subs {
		if sub.Elapsed > cutoff {
			continue
		}
		submitted[sub.ProblemID]++

		key := pairKey{sub.TeamID, sub.ProblemID}
		a, ok := activity[key]
		if !ok {
			a = &pairActivity{last: Unset}
			activity[key] = a
		}
		if sub.Elapsed >= a.last {
			a.last = sub.Elapsed
		}
		if !sub.Accepted {
			a.rejections++
		}
	}

	rows := make([]Row, 0, len(b.Rows))
	for _, base := range b.Rows {
		row := Row{
			TeamID: base.TeamID,
			Team:   base.Team,
			Cells:  make(map[string]Cell, len(b.ProblemIDs)),
		}
		for i, problemID := range b.ProblemIDs {
			final := base.Final[i]
			cell := Cell{LastSubmissionAt: Unset}
			if a, ok := activity[pairKey{base.TeamID, problemID}]; ok {
				cell.LastSubmissionAt = a.last
			}

			switch {
			case final.Accepted && final.SolvedAt <= cutoff:
				cell.Symbol = acceptedSymbol(final.AttemptsToAccept())
				cell.SolvedMinute = SecondsToMinutes(final.SolvedAt)
				cell.Penalty = final.Penalty
				row.Solved++
				row.Penalty += final.Penalty
			case cell.LastSubmissionAt != Unset:
				if n := activity[pairKey{base.TeamID, problemID}].rejections; n > 0 {
					cell.Symbol = "-" + strconv.Itoa(n)
				}
			}
			row.Cells[problemID] = cell
		}
		rows = append(rows, row)
	}

	Rank(rows)

	return Board{
		Cutoff:     cutoff,
		ProblemIDs: append([]string(nil), b.ProblemIDs...),
		Rows:       rows,
		Statistics: Statistics(b.ProblemIDs, rows, submitted),
	}
}

func acceptedSymbol(attempts int) string {
	if attempts > 1 {
		return "+" + strconv.Itoa(attempts-1)
	}
	return "+"
}
