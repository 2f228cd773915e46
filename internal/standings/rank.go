package standings

import (
	"math"
	"sort"
)

// Rank orders rows by solved count (desc) then penalty (asc) and assigns
// competition ranks: tied rows share the 1-based index of the first row in
// their group. Equal rows keep their relative order.
func Rank(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Solved != rows[j].Solved {
			return rows[i].Solved > rows[j].Solved
		}
		return rows[i].Penalty < rows[j].Penalty
	})

	rank := 0
	for i := range rows {
		if i == 0 || rows[i].Solved != rows[i-1].Solved || rows[i].Penalty != rows[i-1].Penalty {
			rank = i + 1
		}
		rows[i].Rank = rank
	}
}

// Statistics aggregates per-problem counts from ranked rows. submitted holds
// the number of visible submissions per problem id.
func Statistics(problemIDs []string, rows []Row, submitted map[string]int) []ProblemStats {
	stats := make([]ProblemStats, 0, len(problemIDs))
	for _, problemID := range problemIDs {
		st := ProblemStats{ProblemID: problemID, Submitted: submitted[problemID]}
		for _, row := range rows {
			cell, ok := row.Cells[problemID]
			if !ok || !cell.Solved() {
				continue
			}
			st.Accepted++
			if st.FirstSolved == nil || cell.SolvedMinute < *st.FirstSolved {
				minute := cell.SolvedMinute
				st.FirstSolved = &minute
			}
		}
		if st.Submitted > 0 {
			st.AcceptedPercent = int(math.RoundToEven(float64(st.Accepted) * 100 / float64(st.Submitted)))
		}
		stats = append(stats, st)
	}
	return stats
}
