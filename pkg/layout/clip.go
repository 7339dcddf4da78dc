package layout

// Clip trims r to a grid of columns columns. It returns false when the
// record starts at or beyond the last column or would be left with no
// width. Records starting before column zero are kept as they are; the
// renderer decides how to draw them.
func Clip(r Record, columns int) (Record, bool) {
	c := float64(columns)
	if r.Offset >= c {
		return r, false
	}
	r.Span = min(r.Span, c-r.Offset)
	if r.Span <= 0 {
		return r, false
	}
	return r, true
}

// Visible returns the records of l that survive [Clip] against l.Columns.
func (l Layout) Visible() []Record {
	out := make([]Record, 0, len(l.Records))
	for _, r := range l.Records {
		if c, ok := Clip(r, l.Columns); ok {
			out = append(out, c)
		}
	}
	return out
}
