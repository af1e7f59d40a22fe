package charts

import (
	"image/color"
	"strings"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/domain"
)

// PiePalette colours pie slices in order.
var PiePalette = []string{"#EB89B5", "#330C73", "#FFD700", "#C1E1C1", "#6A0DAD"}

// EthnicityColors keys bar colours by the ethnicity group suffix.
var EthnicityColors = map[string]string{
	"asian":   "blue",
	"black":   "green",
	"mixed":   "red",
	"other":   "cyan",
	"white":   "magenta",
	"unknown": "yellow",
}

// LevelColors colours comparison lines by course level.
var LevelColors = map[string]color.Color{
	string(domain.CoursePostgraduate):  color.RGBA{0x00, 0x00, 0xff, 0xff},
	string(domain.CourseUndergraduate): color.RGBA{0xff, 0x00, 0xff, 0xff},
}

// defaultLine colours any series without an assigned colour.
var defaultLine = color.RGBA{0x33, 0x0c, 0x73, 0xff}

// ethnicityColor returns the bar colour for a label such as
// "ethnic_mixed_ethnicity".
func ethnicityColor(label string) string {
	group := strings.TrimPrefix(label, "ethnic_")
	if i := strings.IndexByte(group, '_'); i > 0 {
		group = group[:i]
	}
	if c, ok := EthnicityColors[group]; ok {
		return c
	}
	return "gray"
}
