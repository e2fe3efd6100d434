package layout

import (
	"testing"
	"time"

	"filmplakat/plakat/gfx"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 5, hour, minute, 0, 0, time.UTC)
}

func wantCount(minute int) int {
	switch {
	case minute == 0:
		return 3
	case minute < 20, minute%10 == 0:
		return 4
	default:
		return 5
	}
}

func TestCopyTimeCountForEveryMinute(t *testing.T) {
	for m := 0; m < 60; m++ {
		f := CopyTime(at(10, m))
		if f.Count != wantCount(m) {
			t.Fatalf("minute %d: Count = %d, want %d", m, f.Count, wantCount(m))
		}
		if f.TenAndMark != (m > 20 && m%10 == 1) {
			t.Fatalf("minute %d: TenAndMark = %v", m, f.TenAndMark)
		}
		for r := 0; r < f.Count; r++ {
			w := f.Words[r]
			if w.Text == "" || len(w.Text) > MaxWordBytes || len(w.Plain) > MaxWordBytes {
				t.Fatalf("minute %d row %d: bad word %+v", m, r, w)
			}
		}
	}
}

func TestCopyTimeWords(t *testing.T) {
	cases := []struct {
		minute int
		text   []string
		plain  []string
	}{
		{0, nil, nil},
		{1, []string{"eıns"}, []string{"eins"}},
		{7, []string{"sıeben"}, []string{"sieben"}},
		{10, []string{"zehn"}, []string{"zehn"}},
		{19, []string{"neunzehn"}, []string{"neunzehn"}},
		{20, []string{"zwanzig"}, []string{"zwanzig"}},
		{21, []string{"eınund", "zwanzıg"}, []string{"einund", "zwanzig"}},
		{35, []string{"fünfund", "dreissig"}, []string{"fünfund", "dreissig"}},
		{40, []string{"vıerzıg"}, []string{"vierzig"}},
		{44, []string{"vıerund", "vıerzıg"}, []string{"vierund", "vierzig"}},
		{59, []string{"neunund", "fünfzig"}, []string{"neunund", "fünfzig"}},
	}
	for _, tc := range cases {
		f := CopyTime(at(10, tc.minute))
		if got := f.Count - 3; got != len(tc.text) {
			t.Fatalf("minute %d: %d minute words, want %d", tc.minute, got, len(tc.text))
		}
		for i := range tc.text {
			w := f.Words[int(RowMinute1)+i]
			if w.Text != tc.text[i] || w.Plain != tc.plain[i] {
				t.Fatalf("minute %d word %d = %q/%q, want %q/%q", tc.minute, i, w.Text, w.Plain, tc.text[i], tc.plain[i])
			}
		}
	}
}

func TestCopyTimeHours(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{0, " zwölf"},
		{12, " zwölf"},
		{13, " eins"},
		{1, " eins"},
		{23, " elf"},
	}
	for _, tc := range cases {
		f := CopyTime(at(tc.hour, 0))
		if got := f.Words[RowHour].Text; got != tc.want {
			t.Fatalf("hour %d: Text = %q, want %q", tc.hour, got, tc.want)
		}
		if f.Words[RowUhr].Text != "uhr" {
			t.Fatalf("hour %d: uhr row = %q", tc.hour, f.Words[RowUhr].Text)
		}
	}
}

func TestCopyTimeDate(t *testing.T) {
	f := CopyTime(at(10, 0))
	if got := f.Words[RowDate].Text; got != "Di 5. März" {
		t.Fatalf("date = %q, want %q", got, "Di 5. März")
	}
	f = CopyTime(time.Date(2023, time.December, 31, 8, 0, 0, 0, time.UTC))
	if got := f.Words[RowDate].Text; got != "So 31. Dezember" {
		t.Fatalf("date = %q, want %q", got, "So 31. Dezember")
	}
}

func TestFrameString(t *testing.T) {
	f := CopyTime(at(22, 21))
	if got, want := f.String(), " zehn uhr einund zwanzig, Di 5. März"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestLayoutPositions(t *testing.T) {
	cases := []struct {
		minute int
		want   []gfx.Point
	}{
		{0, []gfx.Point{{X: 12, Y: 105}, {X: 13, Y: 41}, {X: 15, Y: 69}}},
		{10, []gfx.Point{{X: 7, Y: 117}, {X: 13, Y: 28}, {X: 15, Y: 56}, {X: 10, Y: 81}}},
		{21, []gfx.Point{{X: 3, Y: 126}, {X: 13, Y: 19}, {X: 15, Y: 47}, {X: 11, Y: 67}, {X: 6, Y: 90}}},
	}
	for _, tc := range cases {
		f := CopyTime(at(10, tc.minute))
		Layout(&f)
		for r, want := range tc.want {
			if got := f.Words[r].Pos; got != want {
				t.Fatalf("minute %d %s: Pos = %+v, want %+v", tc.minute, Role(r), got, want)
			}
		}
		for r := len(tc.want); r < NumRows; r++ {
			if got := f.Words[r].Pos; got != (gfx.Point{}) {
				t.Fatalf("minute %d %s: inactive Pos = %+v, want zero", tc.minute, Role(r), got)
			}
		}
	}
}

func TestLayoutDateAtBottom(t *testing.T) {
	for m := 0; m < 60; m++ {
		f := CopyTime(at(10, m))
		Layout(&f)
		date := f.Words[RowDate].Pos.Y
		for r := RowHour; int(r) < f.Count; r++ {
			if f.Words[r].Pos.Y >= date {
				t.Fatalf("minute %d: %s at y=%d, date at y=%d", m, r, f.Words[r].Pos.Y, date)
			}
		}
		if date+DateHeight > ScreenHeight {
			t.Fatalf("minute %d: date at y=%d runs off screen", m, date)
		}
	}
}

func TestLayoutIsIdempotent(t *testing.T) {
	a := CopyTime(at(10, 44))
	b := CopyTime(at(10, 44))
	Layout(&a)
	Layout(&b)
	Layout(&b)
	if a != b {
		t.Fatalf("Layout() not idempotent:\n%+v\n%+v", a, b)
	}
}
