package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
		ok    bool
	}{
		{"24h clock", "09:30", 570, true},
		{"with seconds", "09:30:45", 570, true},
		{"midnight", "00:00", 0, true},
		{"end of day", "23:59", 1439, true},
		{"12h morning", "9:30 AM", 570, true},
		{"12h afternoon", "2:15 PM", 855, true},
		{"12h noon", "12:00 PM", 720, true},
		{"12h midnight", "12:00 AM", 0, true},
		{"12h no space", "9:30AM", 570, true},
		{"fractional hours", "13.5", 810, true},
		{"whole hours as float", "9", 540, true},
		{"bare minutes", "810", 810, true},
		{"padded", "  10:05  ", 605, true},
		{"empty", "", 0, false},
		{"blank", "   ", 0, false},
		{"garbage", "soon", 0, false},
		{"hour out of range", "25:00", 0, false},
		{"minute out of range", "10:75", 0, false},
		{"negative", "-5", 0, false},
		{"too large", "2000", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToMinutes(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Window
		want bool
	}{
		{"disjoint", Window{540, 570}, Window{600, 630}, false},
		{"identical", Window{540, 570}, Window{540, 570}, true},
		{"partial", Window{540, 570}, Window{555, 585}, true},
		{"containment", Window{540, 660}, Window{570, 600}, true},
		{"touching half-open", Window{540, 570}, Window{570, 600}, false},
		{"touching other side", Window{570, 600}, Window{540, 570}, false},
		{"overnight vs morning", Window{1380, 60}, Window{0, 30}, false},
		{"overnight vs evening", Window{1380, 60}, Window{1400, 1430}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

func TestWindowCovers(t *testing.T) {
	w := Window{Start: 540, End: 600}
	assert.True(t, w.Covers(540), "start inclusive")
	assert.True(t, w.Covers(600), "end inclusive for point checks")
	assert.True(t, w.Covers(570))
	assert.False(t, w.Covers(601))
	assert.False(t, w.Covers(539))

	overnight := Window{Start: 1380, End: 60}
	assert.True(t, overnight.Covers(1400))
	assert.True(t, overnight.Covers(30), "early-morning minute falls inside the wrapped window")
	assert.False(t, overnight.Covers(600))
}

func TestParseWindow(t *testing.T) {
	w, ok := ParseWindow("09:00", "09:30")
	assert.True(t, ok)
	assert.Equal(t, Window{540, 570}, w)

	_, ok = ParseWindow("bad", "09:30")
	assert.False(t, ok)
	_, ok = ParseWindow("09:00", "")
	assert.False(t, ok)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "09:05", HHMM(545))
	assert.Equal(t, "00:00", HHMM(MinutesPerDay))
	assert.Equal(t, "09:00 AM", Clock12(540))
	assert.Equal(t, "12:30 PM", Clock12(750))
	assert.Equal(t, "12:00 AM", Clock12(0))
	assert.Equal(t, "11:59 PM", Clock12(1439))
}

func TestFractionalHour(t *testing.T) {
	assert.InDelta(t, 9.5, FractionalHour(570), 1e-9)
	assert.InDelta(t, 0.0, FractionalHour(0), 1e-9)
}
