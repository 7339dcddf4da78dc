package render

import (
	"bytes"
	"encoding/xml"
)

const (
	fontSizeMin   = 9.0
	fontSizeMax   = 14.0
	fontRowRatio  = 0.4
	fontCharWidth = 0.55
	textPadding   = 6.0
)

// FontSize picks a label size that fits a block of height h.
func FontSize(h float64) float64 {
	return max(fontSizeMin, min(fontSizeMax, h*fontRowRatio))
}

// TruncateLabel shortens label so it fits in width w at font size size.
// Labels that cannot fit even three characters come back empty.
func TruncateLabel(label string, w, size float64) string {
	maxChars := int((w - 2*textPadding) / (size * fontCharWidth))
	if maxChars < 3 {
		return ""
	}
	r := []rune(label)
	if len(r) <= maxChars {
		return label
	}
	return string(r[:maxChars-2]) + ".."
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
