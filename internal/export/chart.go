package export

import (
	"bytes"

	"github.com/Mrlaolu/luBoard/internal/contest"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	lineColor = drawing.ColorFromHex("1f6feb")
	dotColor  = drawing.ColorFromHex("d29922")
	textColor = drawing.ColorFromHex("24292f")
)

// RankHistoryChart produces a PNG line chart of a team's rank over contest
// minutes, with rank 1 at the top.
func RankHistoryChart(team string, points []contest.RankPoint) ([]byte, error) {
	if len(points) == 0 {
		return renderNoData()
	}

	xValues := make([]float64, len(points))
	yValues := make([]float64, len(points))
	maxRank, lastMinute := 1.0, 1.0
	for i, p := range points {
		xValues[i] = float64(p.Elapsed) / 60
		yValues[i] = float64(p.Rank)
		if yValues[i] > maxRank {
			maxRank = yValues[i]
		}
		if xValues[i] > lastMinute {
			lastMinute = xValues[i]
		}
	}

	graph := chart.Chart{
		Title:  team,
		Width:  800,
		Height: 400,
		XAxis: chart.XAxis{
			Name:  "Minute",
			Range: &chart.ContinuousRange{Min: 0, Max: lastMinute},
			Style: chart.Style{FontColor: textColor},
		},
		YAxis: chart.YAxis{
			Name: "Rank",
			// the range never collapses to a point, go-chart refuses to render those
			Range: &chart.ContinuousRange{Min: 1, Max: maxRank + 1, Descending: true},
			Style: chart.Style{FontColor: textColor},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Rank",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 2,
					DotWidth:    3,
					DotColor:    dotColor,
				},
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoData() ([]byte, error) {
	const msg = "No rank history"

	graph := chart.Chart{
		Width:  400,
		Height: 200,
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
				r.SetFontColor(textColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				r.Text(msg, (cb.Width()-tb.Width())/2, (cb.Height()+tb.Height())/2)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
