// Package deck assembles the slide presentation. Templates are a closed set
// of static styling records selected by name; the slide sequence is fixed by
// the pipeline stages regardless of what the model suggests.
package deck

import (
	"github.com/csvdeck/csvdeck/internal/core/errx"
)

// Template is a named, static set of visual styling choices. Colors are ARGB
// hex strings as consumed by the pptx writer; Palette drives chart series
// colors as well as slide accents.
type Template struct {
	Name        string
	Description string

	Accent     string // decoration bars, chart headers
	AccentDark string // slide titles
	Panel      string // light fill behind subtitles and metric boxes
	Body       string // body text
	Muted      string // footers, timestamps

	Palette []string
}

// templateOrder fixes the listing order; "default" always comes first.
var templateOrder = []string{
	"default",
	"modern_blue",
	"corporate_green",
	"minimalist_gray",
	"vibrant_orange",
	"elegant_purple",
}

var templates = map[string]Template{
	"default": {
		Name:        "default",
		Description: "Default professional template with blue accents",
		Accent:      "FF3B82F6",
		AccentDark:  "FF1E40AF",
		Panel:       "FFF8FAFC",
		Body:        "FF334155",
		Muted:       "FF94A3B8",
		Palette:     []string{"FF2E86AB", "FFA23B72", "FFF18F01", "FFC73E1D", "FF592E83", "FF1B998B", "FFED217C", "FFF7931E"},
	},
	"modern_blue": {
		Name:        "modern_blue",
		Description: "Modern blue template with clean design",
		Accent:      "FF2E86AB",
		AccentDark:  "FF1B4965",
		Panel:       "FFEFF6FB",
		Body:        "FF1F2937",
		Muted:       "FF8CA3B5",
		Palette:     []string{"FF2E86AB", "FF5FA8D3", "FF1B4965", "FF62B6CB", "FFBEE9E8", "FFA23B72", "FFF18F01", "FF1B998B"},
	},
	"corporate_green": {
		Name:        "corporate_green",
		Description: "Corporate green template for business presentations",
		Accent:      "FF16A34A",
		AccentDark:  "FF14532D",
		Panel:       "FFF0FDF4",
		Body:        "FF1C1917",
		Muted:       "FF86AE96",
		Palette:     []string{"FF16A34A", "FF65A30D", "FF14532D", "FF0D9488", "FF84CC16", "FFA3E635", "FF4D7C0F", "FF22C55E"},
	},
	"minimalist_gray": {
		Name:        "minimalist_gray",
		Description: "Minimalist gray template with blue accents",
		Accent:      "FF64748B",
		AccentDark:  "FF334155",
		Panel:       "FFF8FAFC",
		Body:        "FF475569",
		Muted:       "FFCBD5E1",
		Palette:     []string{"FF64748B", "FF94A3B8", "FF334155", "FF3B82F6", "FF475569", "FF1E293B", "FF60A5FA", "FF93C5FD"},
	},
	"vibrant_orange": {
		Name:        "vibrant_orange",
		Description: "Vibrant orange template for creative presentations",
		Accent:      "FFF18F01",
		AccentDark:  "FFC2410C",
		Panel:       "FFFFF7ED",
		Body:        "FF431407",
		Muted:       "FFFDBA74",
		Palette:     []string{"FFF18F01", "FFF97316", "FFC2410C", "FFFB923C", "FFED217C", "FFC73E1D", "FFFACC15", "FFEA580C"},
	},
	"elegant_purple": {
		Name:        "elegant_purple",
		Description: "Elegant purple template with sophisticated styling",
		Accent:      "FF8B5CF6",
		AccentDark:  "FF4C1D95",
		Panel:       "FFF5F3FF",
		Body:        "FF2E1065",
		Muted:       "FFC4B5FD",
		Palette:     []string{"FF592E83", "FF8B5CF6", "FFA23B72", "FF7C3AED", "FFA78BFA", "FFED217C", "FF4C1D95", "FF6D28D9"},
	},
}

// Lookup resolves a template by name. Unknown names yield a template error;
// this runs before any model call so a typo never costs a network round trip.
func Lookup(name string) (Template, error) {
	if t, ok := templates[name]; ok {
		return t, nil
	}
	return Template{}, errx.New(errx.KindTemplate, "unknown template %q", name)
}

// Names returns the template names in listing order.
func Names() []string {
	out := make([]string, len(templateOrder))
	copy(out, templateOrder)
	return out
}

// Describe returns the description for a known template name.
func Describe(name string) string {
	return templates[name].Description
}
