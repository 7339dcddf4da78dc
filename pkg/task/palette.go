package task

import "strings"

// Swatch is a named palette colour.
type Swatch struct {
	Name string
	Hex  string
}

// DefaultSwatches is the stock chart palette.
var DefaultSwatches = []Swatch{
	{Name: "pink", Hex: "#F06292"},
	{Name: "blue", Hex: "#64B5F6"},
	{Name: "green", Hex: "#81C784"},
	{Name: "yellow", Hex: "#FFD54F"},
	{Name: "purple", Hex: "#BA68C8"},
	{Name: "teal", Hex: "#4DB6AC"},
}

// DefaultFill is used for tasks that have no colour of their own.
const DefaultFill = "#64B5F6"

// Palette hands out colours round-robin. A Palette is not safe for
// concurrent use; give each goroutine its own.
type Palette struct {
	swatches []Swatch
	cursor   int
}

// NewPalette creates a palette over swatches, or over [DefaultSwatches] when
// none are given.
func NewPalette(swatches ...Swatch) *Palette {
	if len(swatches) == 0 {
		swatches = DefaultSwatches
	}
	return &Palette{swatches: append([]Swatch(nil), swatches...)}
}

// Next returns the next swatch and advances the cursor.
func (p *Palette) Next() Swatch {
	s := p.swatches[p.cursor%len(p.swatches)]
	p.cursor++
	return s
}

// Find returns the swatch whose hex value or name matches v, ignoring case.
func (p *Palette) Find(v string) (Swatch, bool) {
	for _, s := range p.swatches {
		if strings.EqualFold(s.Hex, v) || strings.EqualFold(s.Name, v) {
			return s, true
		}
	}
	return Swatch{}, false
}

// Lookup is [Palette.Find] with unknown values falling back to the first
// swatch.
func (p *Palette) Lookup(v string) Swatch {
	if s, ok := p.Find(v); ok {
		return s
	}
	return p.swatches[0]
}

// Resolve turns a swatch name into its hex value. Anything else, hex
// literals included, is returned unchanged for the caller to validate.
func (p *Palette) Resolve(v string) string {
	if v == "" || strings.HasPrefix(v, "#") {
		return v
	}
	if s, ok := p.Find(v); ok {
		return s.Hex
	}
	return v
}

// Swatches returns a copy of the palette entries.
func (p *Palette) Swatches() []Swatch {
	return append([]Swatch(nil), p.swatches...)
}

// Fill returns the colour to draw t with.
func Fill(t *Task) string {
	if t.Color == "" {
		return DefaultFill
	}
	return t.Color
}
