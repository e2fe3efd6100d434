//go:build tinygo

package main

import (
	"filmplakat/app"
	"filmplakat/hal"
)

func main() {
	app.Run(hal.New())
}
