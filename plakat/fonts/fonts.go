package fonts

import (
	"tinygo.org/x/tinyfont/freesans"
	"tinygo.org/x/tinyfont/proggy"
)

// The watchface's faces. Hour, "uhr" and minutes use the large oblique
// sans; the date and the status bar are small.
var (
	Hour    = NewFace(&freesans.BoldOblique18pt7b)
	Minutes = NewFace(&freesans.Oblique18pt7b)
	Uhr     = NewFace(&freesans.Oblique18pt7b)
	Date    = NewFace(&freesans.Oblique9pt7b)
	Status  = NewFace(&proggy.TinySZ8pt7b)
)
