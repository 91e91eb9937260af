package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray
)

// ANSI returns the 256-color palette code for the color, or an empty
// string for the terminal default.
func (c Color) ANSI() string {
	switch c {
	case ColorRed:
		return "1"
	case ColorGreen:
		return "2"
	case ColorYellow:
		return "3"
	case ColorBlue:
		return "4"
	case ColorMagenta:
		return "5"
	case ColorCyan:
		return "6"
	case ColorWhite:
		return "7"
	case ColorBrightRed:
		return "9"
	case ColorBrightYellow:
		return "11"
	case ColorBrightCyan:
		return "14"
	case ColorBrightWhite:
		return "15"
	case ColorOrange:
		return "208"
	case ColorGray:
		return "245"
	case ColorDarkGray:
		return "239"
	default:
		return ""
	}
}
