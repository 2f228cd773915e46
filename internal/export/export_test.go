package export

import (
	"bytes"
	"testing"

	"github.com/Mrlaolu/luBoard/internal/contest"
	"github.com/Mrlaolu/luBoard/internal/standings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func sampleBoard() standings.Board {
	first := 5
	return standings.Board{
		Cutoff:     600,
		ProblemIDs: []string{"A", "B"},
		Rows: []standings.Row{
			{TeamID: 2, Team: "MIT - Alpha", Solved: 1, Penalty: 25, Rank: 1, Cells: map[string]standings.Cell{
				"A": {Symbol: "+1", SolvedMinute: 5},
				"B": {Symbol: "-2"},
			}},
			{TeamID: 1, Team: "Beta", Rank: 2, Cells: map[string]standings.Cell{}},
		},
		Statistics: []standings.ProblemStats{
			{ProblemID: "A", Submitted: 2, Accepted: 1, AcceptedPercent: 50, FirstSolved: &first},
			{ProblemID: "B", Submitted: 2},
		},
	}
}

func TestBoardWorkbook(t *testing.T) {
	data, err := BoardWorkbook(sampleBoard())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(boardSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Rank", "Team", "Solved", "Penalty", "A", "B"}, rows[0])
	assert.Equal(t, []string{"1", "MIT - Alpha", "1", "25", "+1 5", "-2"}, rows[1])
	assert.Equal(t, "Beta", rows[2][1])

	stats, err := f.GetRows(statsSheet)
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, []string{"A", "2", "1", "50", "5"}, stats[1])
	assert.Equal(t, "B", stats[2][0])
	assert.Equal(t, "0", stats[2][3])
}

func TestRankHistoryChart(t *testing.T) {
	points := []contest.RankPoint{
		{Elapsed: 0, Rank: 3},
		{Elapsed: 60, Rank: 2, Solved: 1},
		{Elapsed: 120, Rank: 1, Solved: 2},
	}
	img, err := RankHistoryChart("Alpha", points)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestRankHistoryChart_FlatAndEmpty(t *testing.T) {
	img, err := RankHistoryChart("Solo", []contest.RankPoint{{Elapsed: 0, Rank: 1}})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))

	img, err = RankHistoryChart("Nobody", nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}
