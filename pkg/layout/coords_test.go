package layout

import (
	"math"
	"testing"
	"time"

	"github.com/matzehuels/ganttline/pkg/scale"
	"github.com/matzehuels/ganttline/pkg/task"
)

const tol = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < tol }

func TestHourCoords(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		rangeStart int
		off, span  float64
	}{
		{"on the hour", hm(9, 0), hm(11, 0), 8, 1, 2},
		{"half hours", hm(8, 30), hm(9, 15), 8, 0.5, 0.75},
		{"before range", hm(6, 0), hm(7, 0), 8, -2, 1},
		{"zero length floors", hm(10, 0), hm(10, 0), 8, 2, MinHourSpan},
		{"range start zero", hm(13, 0), hm(14, 30), 0, 13, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off, span := OffsetAndSpan(mk("x", tt.start, tt.end), scale.Hour, tt.rangeStart)
			if !near(off, tt.off) || !near(span, tt.span) {
				t.Errorf("got (%v, %v), want (%v, %v)", off, span, tt.off, tt.span)
			}
		})
	}
}

func TestDayCoords(t *testing.T) {
	fri := time.Date(2024, time.March, 8, 14, 0, 0, 0, time.UTC)
	sun := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	sunEarly := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		start, end time.Time
		off, span  float64
	}{
		{"friday through sunday", fri, sun, 5, 3},
		{"same day", hm(9, 0), hm(17, 0), 1, 1},
		{"sunday midnight", sunEarly, sunEarly, 0, 1},
		{"ends next midnight", hm(22, 0), base.Add(24 * time.Hour), 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off, span := OffsetAndSpan(mk("x", tt.start, tt.end), scale.Day, 0)
			if off != tt.off || span != tt.span {
				t.Errorf("got (%v, %v), want (%v, %v)", off, span, tt.off, tt.span)
			}
		})
	}
}

func TestDayCoordsAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("no tzdata: %v", err)
	}
	// DST starts 2024-03-10 02:00 in New York; that Sunday has 23 hours.
	start := time.Date(2024, time.March, 9, 12, 0, 0, 0, ny)
	end := time.Date(2024, time.March, 11, 0, 30, 0, 0, ny)
	off, span := OffsetAndSpan(mk("x", start, end), scale.Day, 0)
	if off != 6 || span != 3 {
		t.Errorf("got (%v, %v), want (6, 3)", off, span)
	}
}

func TestMonthCoords(t *testing.T) {
	feb1 := time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)
	feb15noon := time.Date(2023, time.February, 15, 12, 0, 0, 0, time.UTC)
	leapFeb15noon := time.Date(2024, time.February, 15, 12, 0, 0, 0, time.UTC)
	jul1 := time.Date(2023, time.July, 1, 6, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		start, end time.Time
		rangeStart int
		off, span  float64
	}{
		{"feb 1 zero length", feb1, feb1, 1, 1, MinMonthSpan},
		{"mid february", feb15noon, feb15noon.Add(15 * 24 * time.Hour), 1, 1 + 14.5/28, 0.5},
		{"mid february leap year", leapFeb15noon, leapFeb15noon.Add(60 * 24 * time.Hour), 1, 1 + 14.5/29, 2},
		{"range start shifts", jul1, jul1.Add(30 * 24 * time.Hour), 6, 1 + 0.25/31, 1},
		{"before range", feb1, feb1.Add(24 * time.Hour), 3, -1, 1.0 / 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off, span := OffsetAndSpan(mk("x", tt.start, tt.end), scale.Month, tt.rangeStart)
			if !near(off, tt.off) || !near(span, tt.span) {
				t.Errorf("got (%v, %v), want (%v, %v)", off, span, tt.off, tt.span)
			}
		})
	}
}

func TestMonthFractionZeroOnFirst(t *testing.T) {
	feb1 := time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)
	off, span := OffsetAndSpan(mk("x", feb1, feb1), scale.Month, 1)
	if _, frac := math.Modf(off); frac != 0 {
		t.Errorf("fractional offset = %v, want 0", frac)
	}
	if span != 1.0/30 {
		t.Errorf("span = %v, want 1/30", span)
	}
}

func TestMinimumSpanFloor(t *testing.T) {
	for _, g := range scale.All {
		tk := mk("x", hm(10, 0), hm(10, 0))
		_, span := OffsetAndSpan(tk, g, 1)
		if span <= 0 {
			t.Errorf("%s: zero-length task span = %v, want > 0", g, span)
		}
	}
}

func TestOffsetMonotonic(t *testing.T) {
	for _, g := range scale.All {
		t.Run(g.String(), func(t *testing.T) {
			a := mk("a", hm(9, 0), hm(9, 30))
			b := mk("b", hm(10, 0), hm(11, 0))
			if g == scale.Day {
				b = mk("b", base.Add(48*time.Hour), base.Add(49*time.Hour))
			}
			if g == scale.Month {
				b = mk("b", base.Add(72*time.Hour), base.Add(73*time.Hour))
			}
			oa, _ := OffsetAndSpan(a, g, 1)
			ob, _ := OffsetAndSpan(b, g, 1)
			if oa >= ob {
				t.Errorf("offset(a) = %v, offset(b) = %v; want a < b", oa, ob)
			}
		})
	}
}

func TestOffsetAndSpanPanicsOnUnknownGranularity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	OffsetAndSpan(&task.Task{Start: hm(9, 0), End: hm(10, 0)}, scale.Granularity(5), 0)
}
