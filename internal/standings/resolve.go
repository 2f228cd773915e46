package standings

import (
	"sort"
)

type pairKey struct {
	team    int
	problem string
}

// SecondsToMinutes is the single seconds-to-minutes conversion used for
// penalties and displayed solve times.
func SecondsToMinutes(seconds int) int {
	return seconds / 60
}

// SortSubmissions orders submissions by elapsed time, keeping log order for
// equal timestamps.
func SortSubmissions(subs []Submission) {
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].Elapsed < subs[j].Elapsed
	})
}

// SortedProblemIDs returns the problem ids in ascending order.
func SortedProblemIDs(problems map[string]Problem) []string {
	ids := make([]string, 0, len(problems))
	for id := range problems {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Resolve computes the terminal per-problem outcome of every known team.
// The input slice is not modified.
func Resolve(teams map[int]Team, problems map[string]Problem, subs []Submission) Baseline {
	ordered := make([]Submission, len(subs))
	copy(ordered, subs)
	SortSubmissions(ordered)

	totals := make(map[pairKey]int)
	for _, sub := range ordered {
		totals[pairKey{sub.TeamID, sub.ProblemID}]++
	}

	statuses := make(map[pairKey]*FinalStatus)
	for _, sub := range ordered {
		if _, ok := teams[sub.TeamID]; !ok {
			continue
		}
		problem, ok := problems[sub.ProblemID]
		if !ok {
			continue
		}

		key := pairKey{sub.TeamID, sub.ProblemID}
		status, ok := statuses[key]
		if !ok {
			s := newFinalStatus()
			status = &s
			statuses[key] = status
		}

		// a solved problem is closed
		if status.Accepted {
			continue
		}

		status.LastSubmissionAt = sub.Elapsed
		if sub.Accepted {
			status.Accepted = true
			status.SolvedAt = sub.Elapsed
			status.Penalty = SecondsToMinutes(sub.Elapsed) + status.Rejections*problem.Penalty
		} else {
			status.Rejections++
		}
	}

	problemIDs := SortedProblemIDs(problems)

	teamIDs := make([]int, 0, len(teams))
	for id := range teams {
		teamIDs = append(teamIDs, id)
	}
	sort.Ints(teamIDs)

	rows := make([]BaselineRow, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		final := make([]FinalStatus, len(problemIDs))
		for i, problemID := range problemIDs {
			key := pairKey{teamID, problemID}
			if status, ok := statuses[key]; ok {
				final[i] = *status
			} else {
				final[i] = newFinalStatus()
			}
			final[i].TotalAttempts = totals[key]
		}
		rows = append(rows, BaselineRow{
			TeamID: teamID,
			Team:   teams[teamID].DisplayName(),
			Final:  final,
		})
	}

	return Baseline{ProblemIDs: problemIDs, Rows: rows}
}
