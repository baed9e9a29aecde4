// internal/models/card.go
package models

import (
	"fmt"
	"strings"
)

// Color is the color printed on a card. Wild cards carry ColorWild until played.
type Color string

const (
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorWild   Color = "wild"
)

// PlayableColors are the concrete colors a wild may resolve to, in deck order.
var PlayableColors = []Color{ColorRed, ColorYellow, ColorGreen, ColorBlue}

// ParseColor maps user input to a concrete color. Wild is rejected.
func ParseColor(s string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsConcrete() {
		return "", fmt.Errorf("invalid color %q", s)
	}
	return c, nil
}

// IsConcrete reports whether c is one of the four playable colors.
func (c Color) IsConcrete() bool {
	for _, pc := range PlayableColors {
		if c == pc {
			return true
		}
	}
	return false
}

// Value is the face of a card: "0".."9" or one of the action values.
type Value string

const (
	ValueSkip    Value = "skip"
	ValueReverse Value = "reverse"
	ValueDraw2   Value = "draw2"
	ValueWild    Value = "wild"
	ValueWild4   Value = "wild4"
)

// ActionValues are the colored action faces, two of each per color.
var ActionValues = []Value{ValueSkip, ValueReverse, ValueDraw2}

// Card is a plain value; two cards with the same color and value are interchangeable.
type Card struct {
	Color Color `json:"color"`
	Value Value `json:"value"`
}

// IsWild reports whether the card can be played on anything.
func (c Card) IsWild() bool {
	return c.Color == ColorWild
}

func (c Card) String() string {
	return fmt.Sprintf("[%s %s]", strings.ToUpper(string(c.Color)), strings.ToUpper(string(c.Value)))
}
