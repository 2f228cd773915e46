package export

import (
	"bytes"
	"fmt"

	"github.com/Mrlaolu/luBoard/internal/standings"
	"github.com/xuri/excelize/v2"
)

const (
	boardSheet = "Board"
	statsSheet = "Statistics"
)

// BoardWorkbook renders a projected board as an xlsx workbook with a Board
// sheet and a Statistics sheet.
func BoardWorkbook(board standings.Board) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), boardSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(statsSheet); err != nil {
		return nil, fmt.Errorf("failed to add statistics sheet: %w", err)
	}

	header := []interface{}{"Rank", "Team", "Solved", "Penalty"}
	for _, pid := range board.ProblemIDs {
		header = append(header, pid)
	}
	if err := writeRow(f, boardSheet, 1, header); err != nil {
		return nil, err
	}
	for i, row := range board.Rows {
		values := []interface{}{row.Rank, row.Team, row.Solved, row.Penalty}
		for _, pid := range board.ProblemIDs {
			values = append(values, cellText(row.Cells[pid]))
		}
		if err := writeRow(f, boardSheet, i+2, values); err != nil {
			return nil, err
		}
	}

	if err := writeRow(f, statsSheet, 1, []interface{}{"Problem", "Submitted", "Accepted", "Accepted %", "First solved"}); err != nil {
		return nil, err
	}
	for i, st := range board.Statistics {
		var first interface{} = ""
		if st.FirstSolved != nil {
			first = *st.FirstSolved
		}
		values := []interface{}{st.ProblemID, st.Submitted, st.Accepted, st.AcceptedPercent, first}
		if err := writeRow(f, statsSheet, i+2, values); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	axis, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, axis, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// cellText is the symbol, followed by the solve minute for solved cells.
func cellText(c standings.Cell) string {
	if c.Solved() {
		return fmt.Sprintf("%s %d", c.Symbol, c.SolvedMinute)
	}
	return c.Symbol
}
