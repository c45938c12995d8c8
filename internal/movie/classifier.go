package movie

import (
	"strings"

	"golang.org/x/text/cases"
)

// Color is an ffmpeg color name used for generated backgrounds
type Color string

const (
	ColorRed   Color = "red"
	ColorPink  Color = "pink"
	ColorBlack Color = "black"
	ColorBlue  Color = "blue"

	// DefaultColor is used when no keyword matches
	DefaultColor = ColorBlue
)

type keywordRule struct {
	keyword string
	color   Color
}

// Checked in order; the first match wins.
var keywordRules = []keywordRule{
	{keyword: "battle", color: ColorRed},
	{keyword: "love", color: ColorPink},
	{keyword: "space", color: ColorBlack},
}

// Classify picks a background color from keywords found in the script
func Classify(text string) Color {
	folded := cases.Fold().String(text)
	for _, rule := range keywordRules {
		if strings.Contains(folded, rule.keyword) {
			return rule.color
		}
	}
	return DefaultColor
}
