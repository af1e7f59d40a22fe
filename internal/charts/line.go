package charts

import (
	"image/color"
	"io"
	"sort"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/domain"
)

// Column names of the plotted table.
const (
	colPeriod = "Academic Year"
	colValue  = "value"
	colSeries = "series"
)

// Lines draws each series as a line with markers, periods on the x axis in
// canonical order. Points with no data are skipped. The y axis always
// includes zero.
func Lines(w io.Writer, title, xLabel, yLabel string, series []domain.Series, width, height int) error {
	var periods, names []string
	var values []float64
	seen := make(map[string]bool)
	for _, s := range series {
		for _, p := range s.Points {
			if !p.Value.Valid() {
				continue
			}
			periods = append(periods, p.Period.Label())
			values = append(values, float64(p.Value))
			names = append(names, s.Name)
			seen[s.Name] = true
		}
	}
	if len(values) == 0 {
		return NoData(w, title, width, height)
	}

	tab := new(table.Builder).
		Add(colPeriod, periods).
		Add(colValue, values).
		Add(colSeries, names).
		Done()

	plot := gg.NewPlot(tab)
	plot.SetScale("y", gg.NewLinearScaler().Include(0))
	plot.SetScale("stroke", seriesScale(seen))
	plot.Add(gg.LayerLines{X: colPeriod, Y: colValue, Color: colSeries})
	plot.Add(gg.LayerPoints{X: colPeriod, Y: colValue, Color: colSeries})
	plot.Add(gg.Title(title), gg.AxisLabel("x", xLabel), gg.AxisLabel("y", yLabel))

	return plot.WriteSVG(w, width, height)
}

// seriesScale maps series names to their fixed colours. The ordinal scale
// indexes names in sorted order, so the palette is laid out the same way.
func seriesScale(names map[string]bool) gg.Scaler {
	sorted := make([]string, 0, len(names))
	for n := range names {
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)

	palette := make([]color.Color, len(sorted))
	for i, n := range sorted {
		c, ok := LevelColors[n]
		if !ok {
			c = defaultLine
		}
		palette[i] = c
	}

	s := gg.NewOrdinalScale()
	s.Ranger(gg.NewColorRanger(palette))
	return s
}
