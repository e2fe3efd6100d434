//go:build !(tinygo && bootdebug)

package app

import "filmplakat/hal"

func bootStep(hal.HAL, string) {}
