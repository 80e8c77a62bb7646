// Package cli styles terminal output for the operator tools and the
// console log encoder.
package cli

import (
	"fmt"
	"os"
)

const (
	ResetCode = "\033[0m"
	BoldCode  = "\033[1m"
	DimCode   = "\033[2m"
	Red       = "\033[31m"
	Green     = "\033[32m"
	Yellow    = "\033[33m"
	Blue      = "\033[34m"
	Purple    = "\033[35m"
	Cyan      = "\033[36m"
)

// RGB represents a TrueColor
type RGB struct {
	R, G, B float64
}

var (
	BrandBlue   = RGB{0, 120, 255}
	BrandPurple = RGB{189, 52, 235}
)

// enabled is cached; NO_COLOR (https://no-color.org/) turns styling off.
var enabled = checkColor()

func checkColor() bool {
	_, noColor := os.LookupEnv("NO_COLOR")
	return !noColor
}

// Enabled reports whether ANSI styling is on.
func Enabled() bool {
	return enabled
}

// SetEnabled overrides the NO_COLOR detection.
func SetEnabled(v bool) {
	enabled = v
}

// Stylize wraps text in a specific color code
func Stylize(text string, code string) string {
	if !enabled {
		return text
	}
	return code + text + ResetCode
}

// ColorizeRGB returns text wrapped in ANSI TrueColor escape codes
func ColorizeRGB(text string, c RGB) string {
	if !enabled {
		return text
	}
	return fmt.Sprintf("\033[38;2;%d;%d;%dm%s%s", int(c.R), int(c.G), int(c.B), text, ResetCode)
}

// Gradient colors each rune of text along a linear blend from start to end.
func Gradient(text string, start, end RGB) string {
	if !enabled {
		return text
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return text
	}
	out := ""
	for i, r := range runes {
		p := 0.0
		if len(runes) > 1 {
			p = float64(i) / float64(len(runes)-1)
		}
		out += ColorizeRGB(string(r), RGB{
			R: start.R + (end.R-start.R)*p,
			G: start.G + (end.G-start.G)*p,
			B: start.B + (end.B-start.B)*p,
		})
	}
	return out
}

func CheckMark() string {
	return Stylize("✔", Green)
}

func Arrow() string {
	return Stylize("➜", Blue)
}

func CrossMark() string {
	return Stylize("✘", Red)
}
