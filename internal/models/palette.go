package models

import "strings"

// Color описывает цвет из фиксированной палитры.
type Color struct {
	Name  string // человекочитаемое имя
	Value string // значение для светлой темы, хранится в Note.Color
	Dark  string // значение для темной темы
}

// DefaultColor - цвет новой заметки по умолчанию.
const DefaultColor = "#ffffff"

// Palette is the fixed set of note colors.
var Palette = []Color{
	{Name: "Default", Value: "#ffffff", Dark: "#2d3748"},
	{Name: "Yellow", Value: "#fef3c7", Dark: "#92400e"},
	{Name: "Green", Value: "#d1fae5", Dark: "#065f46"},
	{Name: "Blue", Value: "#dbeafe", Dark: "#1e3a8a"},
	{Name: "Purple", Value: "#e9d5ff", Dark: "#581c87"},
	{Name: "Pink", Value: "#fce7f3", Dark: "#be185d"},
	{Name: "Orange", Value: "#fed7aa", Dark: "#c2410c"},
	{Name: "Red", Value: "#fee2e2", Dark: "#b91c1c"},
}

// LookupColor resolves a palette entry by value or by name (case-insensitive).
func LookupColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Palette {
		if strings.EqualFold(c.Value, s) || strings.EqualFold(c.Name, s) {
			return c, true
		}
	}
	return Color{}, false
}

// ColorFor returns the palette entry of a stored note color, falling back to
// the default entry for values outside the palette.
func ColorFor(value string) Color {
	if c, ok := LookupColor(value); ok {
		return c
	}
	return Palette[0]
}

// Shade returns the value used for the given theme.
func (c Color) Shade(dark bool) string {
	if dark {
		return c.Dark
	}
	return c.Value
}
