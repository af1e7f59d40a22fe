package charts

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/domain"
)

const fontStyle = `font-family="Helvetica,Arial,sans-serif" font-size="14px"`

// Pie draws values as a pie chart with a legend. Slices with no data or a
// non-positive value are left out; if nothing remains a placeholder is drawn.
func Pie(w io.Writer, title string, values []domain.LabeledValue, width, height int) error {
	var total float64
	var slices []domain.LabeledValue
	for _, v := range values {
		if v.Value.Valid() && v.Value > 0 {
			slices = append(slices, v)
			total += float64(v.Value)
		}
	}
	if total == 0 {
		return NoData(w, title, width, height)
	}

	canvas := svg.New(w)
	canvas.Start(width, height, fontStyle)
	defer canvas.End()
	canvas.Title(title)
	canvas.Rect(0, 0, width, height, "fill:white")
	canvas.Text(width/2, 30, title, `text-anchor="middle" font-size="16px"`)

	legendW := width / 3
	cx, cy := (width-legendW)/2, height/2+15
	r := int(math.Min(float64(width-legendW), float64(height-60)) / 2 * 0.85)

	angle := -math.Pi / 2
	for i, s := range slices {
		fill := "fill:" + PiePalette[i%len(PiePalette)] + ";stroke:white;stroke-width:1"
		frac := float64(s.Value) / total
		if frac >= 1 {
			canvas.Circle(cx, cy, r, fill)
		} else {
			end := angle + frac*2*math.Pi
			canvas.Path(slicePath(cx, cy, r, angle, end), fill)

			mid := (angle + end) / 2
			lx := cx + int(0.6*float64(r)*math.Cos(mid))
			ly := cy + int(0.6*float64(r)*math.Sin(mid))
			canvas.Text(lx, ly, fmt.Sprintf("%.1f%%", frac*100), `text-anchor="middle" fill="white" font-size="12px"`)
			angle = end
		}

		y := 70 + i*24
		canvas.Rect(width-legendW+10, y-12, 14, 14, "fill:"+PiePalette[i%len(PiePalette)])
		canvas.Text(width-legendW+30, y, s.Label)
	}
	return nil
}

func slicePath(cx, cy, r int, from, to float64) string {
	x1 := float64(cx) + float64(r)*math.Cos(from)
	y1 := float64(cy) + float64(r)*math.Sin(from)
	x2 := float64(cx) + float64(r)*math.Cos(to)
	y2 := float64(cy) + float64(r)*math.Sin(to)
	large := 0
	if to-from > math.Pi {
		large = 1
	}
	return fmt.Sprintf("M%d %d L%.2f %.2f A%d %d 0 %d 1 %.2f %.2f Z", cx, cy, x1, y1, r, r, large, x2, y2)
}

// Bar draws one coloured bar per value on a 0..max axis. Values with no
// data take a slot but draw no bar.
func Bar(w io.Writer, title, xLabel, yLabel string, values []domain.LabeledValue, width, height int) error {
	maxV := 0.0
	for _, v := range values {
		if v.Value.Valid() && float64(v.Value) > maxV {
			maxV = float64(v.Value)
		}
	}
	if maxV == 0 {
		return NoData(w, title, width, height)
	}

	canvas := svg.New(w)
	canvas.Start(width, height, fontStyle)
	defer canvas.End()
	canvas.Title(title)
	canvas.Rect(0, 0, width, height, "fill:white")
	canvas.Text(width/2, 30, title, `text-anchor="middle" font-size="16px"`)

	left, right, top, bottom := 70, 20, 50, 70
	plotW, plotH := width-left-right, height-top-bottom
	top100 := niceCeil(maxV)

	for i := 0; i <= 4; i++ {
		v := top100 * float64(i) / 4
		y := top + plotH - int(float64(plotH)*v/top100)
		canvas.Line(left, y, left+plotW, y, "stroke:#ddd")
		canvas.Text(left-6, y, fmt.Sprintf("%g", v), `text-anchor="end" dy=".3em" fill="#666" font-size="12px"`)
	}
	canvas.Line(left, top+plotH, left+plotW, top+plotH, "stroke:#888;stroke-width:2")

	slot := plotW / len(values)
	for i, v := range values {
		x := left + i*slot
		if v.Value.Valid() {
			h := int(float64(plotH) * float64(v.Value) / top100)
			canvas.Rect(x+slot/8, top+plotH-h, slot*3/4, h, "fill:"+ethnicityColor(v.Label))
		}
		canvas.Text(x+slot/2, top+plotH+18, v.Label, `text-anchor="middle" font-size="11px"`)
	}

	canvas.Text(left+plotW/2, height-15, xLabel, `text-anchor="middle"`)
	canvas.Text(18, top+plotH/2, yLabel, fmt.Sprintf(`text-anchor="middle" transform="rotate(-90 18 %d)"`, top+plotH/2))
	return nil
}

// niceCeil rounds v up to the next multiple of a power of ten step.
func niceCeil(v float64) float64 {
	step := math.Pow(10, math.Floor(math.Log10(v)))
	return math.Ceil(v/step) * step
}

// NoData draws a titled placeholder for a chart with nothing to show.
func NoData(w io.Writer, title string, width, height int) error {
	canvas := svg.New(w)
	canvas.Start(width, height, fontStyle)
	canvas.Title(title)
	canvas.Rect(0, 0, width, height, "fill:white")
	canvas.Text(width/2, 30, title, `text-anchor="middle" font-size="16px"`)
	canvas.Text(width/2, height/2, "No data", `text-anchor="middle" fill="#888" font-size="20px"`)
	canvas.End()
	return nil
}
