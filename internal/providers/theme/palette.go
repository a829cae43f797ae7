package theme

import "fmt"

// Fallback accent colors used when a persona has none
const (
	DefaultPrimary   = "#6366f1"
	DefaultSecondary = "#a855f7"
)

// Palette is a persona's accent color pair. Values are passed through to
// the client as CSS colors without validation.
type Palette struct {
	Primary   string `json:"primary" yaml:"primary"`
	Secondary string `json:"secondary" yaml:"secondary"`
}

// Default returns the fallback palette
func Default() Palette {
	return Palette{Primary: DefaultPrimary, Secondary: DefaultSecondary}
}

// WithFallback fills empty colors from the default palette
func (p Palette) WithFallback() Palette {
	if p.Primary == "" {
		p.Primary = DefaultPrimary
	}
	if p.Secondary == "" {
		p.Secondary = DefaultSecondary
	}
	return p
}

// Background is the desktop gradient derived from the palette
func (p Palette) Background() string {
	p = p.WithFallback()
	return fmt.Sprintf("linear-gradient(135deg, %s, %s)", p.Primary, p.Secondary)
}
