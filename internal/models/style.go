package models

// Style is the calling style of a client interface
type Style int

const (
	StyleUnknown Style = iota
	StyleDirect        // blocking: values, void, List<T>
	StyleAsync         // reactive: single-value or multi-value handles
)

// String returns the string representation of the style
func (s Style) String() string {
	switch s {
	case StyleDirect:
		return "direct"
	case StyleAsync:
		return "asynchronous"
	default:
		return "unknown"
	}
}

// Opposite returns the style a generated interface is written in
func (s Style) Opposite() Style {
	switch s {
	case StyleDirect:
		return StyleAsync
	case StyleAsync:
		return StyleDirect
	default:
		return StyleUnknown
	}
}
