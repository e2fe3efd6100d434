package layout

import (
	"fmt"
	"time"

	"filmplakat/plakat/gfx"
)

// MaxWordBytes bounds a single row's text.
const MaxWordBytes = 20

// Role is the fixed meaning of a row.
type Role uint8

const (
	RowDate Role = iota
	RowHour
	RowUhr
	RowMinute1
	RowMinute2

	NumRows = 5
)

func (r Role) String() string {
	switch r {
	case RowDate:
		return "date"
	case RowHour:
		return "hour"
	case RowUhr:
		return "uhr"
	case RowMinute1:
		return "minute1"
	case RowMinute2:
		return "minute2"
	default:
		return "unknown"
	}
}

type word struct {
	text    string
	dotless string
	ascii   bool
}

// display picks the dotless spelling for words that have one.
func (w word) display() string {
	if !w.ascii && w.dotless != "" {
		return w.dotless
	}
	return w.text
}

var teens = [20]word{
	{"null", "", true},
	{"ein", "eın", false},
	{"zwei", "zwei", false},
	{"drei", "", true},
	{"vier", "vıer", false},
	{"fünf", "", true},
	{"sechs", "sechs", false},
	{"sieben", "sıeben", false},
	{"acht", "", true},
	{"neun", "neun", false},
	{"zehn", "", true},
	{"elf", "", true},
	{"zwölf", "zwölf", false},
	{"dreizehn", "", true},
	{"vierzehn", "vıerzehn", false},
	{"fünfzehn", "", true},
	{"sechzehn", "sechzehn", false},
	{"siebzehn", "sıebzehn", false},
	{"achtzehn", "", true},
	{"neunzehn", "neunzehn", false},
}

// tens is indexed by the tens digit minus two.
var tens = [5]word{
	{"zwanzig", "zwanzıg", false},
	{"dreissig", "", true},
	{"vierzig", "vıerzıg", false},
	{"fünfzig", "", true},
	{"sechzig", "", true},
}

var months = [12]string{
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

var weekdays = [7]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"}

// TimeWord is one row of the sentence.
type TimeWord struct {
	// Text is what gets drawn, with dotless i where the font needs it.
	Text string
	// Plain is the regular spelling.
	Plain   string
	IsASCII bool
	Pos     gfx.Point
}

// Frame is the sentence for one minute. Words[r] is only meaningful for
// r < Count.
type Frame struct {
	Words      [NumRows]TimeWord
	Count      int
	TenAndMark bool
}

// Active reports whether row r carries a word.
func (f *Frame) Active(r Role) bool { return int(r) < f.Count }

// String joins the active rows in reading order.
func (f Frame) String() string {
	s := f.Words[RowHour].Plain + " " + f.Words[RowUhr].Plain
	for r := RowMinute1; int(r) < f.Count; r++ {
		s += " " + f.Words[r].Plain
	}
	return s + ", " + f.Words[RowDate].Plain
}

func newWord(text, plain string, ascii bool) TimeWord {
	return TimeWord{
		Text:    gfx.TruncateBytes(text, MaxWordBytes),
		Plain:   gfx.TruncateBytes(plain, MaxWordBytes),
		IsASCII: ascii,
	}
}

// CopyTime builds the rows for t. Positions are left zero; Layout fills
// them in.
func CopyTime(t time.Time) Frame {
	var f Frame

	date := fmt.Sprintf("%s %d. %s", weekdays[t.Weekday()], t.Day(), months[t.Month()-1])
	f.Words[RowDate] = newWord(date, date, false)

	hours := t.Hour() % 12
	if hours == 0 {
		hours = 12
	}
	h := teens[hours]
	hour := " " + h.text
	if hours == 1 {
		hour += "s"
	}
	f.Words[RowHour] = newWord(hour, hour, h.ascii)
	f.Words[RowUhr] = newWord("uhr", "uhr", true)
	f.Count = 3

	minutes := t.Minute()
	switch {
	case minutes == 0:
	case minutes < 20:
		w := teens[minutes]
		text, plain := w.display(), w.text
		if minutes == 1 {
			text += "s"
			plain += "s"
		}
		f.Words[RowMinute1] = newWord(text, plain, w.ascii)
		f.Count = 4
	case minutes%10 == 0:
		w := tens[minutes/10-2]
		text := w.display()
		if minutes == 20 {
			text = w.text
		}
		f.Words[RowMinute1] = newWord(text, w.text, w.ascii)
		f.Count = 4
	default:
		ones := teens[minutes%10]
		ten := tens[minutes/10-2]
		f.Words[RowMinute1] = newWord(ones.display()+"und", ones.text+"und", ones.ascii)
		f.Words[RowMinute2] = newWord(ten.display(), ten.text, ten.ascii)
		f.Count = 5
		f.TenAndMark = minutes%10 == 1
	}
	return f
}
