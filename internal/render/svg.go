package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MrEthical07/goCaptcha/internal"
)

// Config holds artifact dimensions and distortion tuning.
type Config struct {
	Width      int
	Height     int
	NoiseLevel int
	FontSize   int
}

var (
	// ErrInvalidOptions reports out-of-range dimensions or noise settings.
	ErrInvalidOptions = errors.New("invalid render options")
)

// Renderer draws SVG artifacts for challenge display strings.
type Renderer struct {
	cfg Config
}

// New validates the configuration and returns a ready Renderer.
func New(cfg Config) (*Renderer, error) {
	if cfg.Width < 40 || cfg.Width > 1024 {
		return nil, fmt.Errorf("%w: width %d out of range [40, 1024]", ErrInvalidOptions, cfg.Width)
	}
	if cfg.Height < 20 || cfg.Height > 512 {
		return nil, fmt.Errorf("%w: height %d out of range [20, 512]", ErrInvalidOptions, cfg.Height)
	}
	if cfg.NoiseLevel < 0 || cfg.NoiseLevel > 10 {
		return nil, fmt.Errorf("%w: noise level %d out of range [0, 10]", ErrInvalidOptions, cfg.NoiseLevel)
	}
	if cfg.FontSize < 8 || cfg.FontSize > cfg.Height {
		return nil, fmt.Errorf("%w: font size %d out of range [8, %d]", ErrInvalidOptions, cfg.FontSize, cfg.Height)
	}
	return &Renderer{cfg: cfg}, nil
}

// glyphPalette keeps strokes dark enough to read against the light background.
var glyphPalette = []string{"#1f2d3d", "#2f4858", "#503750", "#35524a", "#4a3f35"}

// Render draws the display string as a self-contained SVG document. Rendering
// is pure except for its randomness source and never returns a partial
// artifact alongside an error.
func (r *Renderer) Render(display string) (string, error) {
	if display == "" {
		return "", fmt.Errorf("%w: empty display string", ErrInvalidOptions)
	}

	var b strings.Builder
	b.Grow(1024)

	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		r.cfg.Width, r.cfg.Height, r.cfg.Width, r.cfg.Height,
	)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#f4f4f2"/>`, r.cfg.Width, r.cfg.Height)

	if err := r.drawNoiseCurves(&b); err != nil {
		return "", err
	}
	if err := r.drawGlyphs(&b, display); err != nil {
		return "", err
	}
	if err := r.drawNoiseDots(&b); err != nil {
		return "", err
	}

	b.WriteString(`</svg>`)
	return b.String(), nil
}

func (r *Renderer) drawGlyphs(b *strings.Builder, display string) error {
	glyphs := []rune(display)
	cell := r.cfg.Width / (len(glyphs) + 1)
	baseline := (r.cfg.Height + r.cfg.FontSize) / 2

	for i, g := range glyphs {
		dx, err := internal.RandomInt(cell/2 + 1)
		if err != nil {
			return err
		}
		dy, err := internal.RandomInt(r.cfg.Height/4 + 1)
		if err != nil {
			return err
		}
		rot, err := internal.RandomInt(41)
		if err != nil {
			return err
		}
		ci, err := internal.RandomInt(len(glyphPalette))
		if err != nil {
			return err
		}

		x := cell/2 + i*cell + dx
		y := baseline - r.cfg.Height/8 + dy

		fmt.Fprintf(b,
			`<text x="%d" y="%d" font-family="monospace" font-size="%d" fill="%s" transform="rotate(%d %d %d)">%s</text>`,
			x, y, r.cfg.FontSize, glyphPalette[ci], rot-20, x, y, escapeGlyph(g),
		)
	}
	return nil
}

func (r *Renderer) drawNoiseCurves(b *strings.Builder) error {
	for i := 0; i < r.cfg.NoiseLevel; i++ {
		x1, err := internal.RandomInt(r.cfg.Width)
		if err != nil {
			return err
		}
		y1, err := internal.RandomInt(r.cfg.Height)
		if err != nil {
			return err
		}
		cx, err := internal.RandomInt(r.cfg.Width)
		if err != nil {
			return err
		}
		cy, err := internal.RandomInt(r.cfg.Height)
		if err != nil {
			return err
		}
		x2, err := internal.RandomInt(r.cfg.Width)
		if err != nil {
			return err
		}
		y2, err := internal.RandomInt(r.cfg.Height)
		if err != nil {
			return err
		}

		fmt.Fprintf(b,
			`<path d="M%d %d Q%d %d %d %d" stroke="#b9b9b2" stroke-width="1" fill="none"/>`,
			x1, y1, cx, cy, x2, y2,
		)
	}
	return nil
}

func (r *Renderer) drawNoiseDots(b *strings.Builder) error {
	for i := 0; i < r.cfg.NoiseLevel*3; i++ {
		x, err := internal.RandomInt(r.cfg.Width)
		if err != nil {
			return err
		}
		y, err := internal.RandomInt(r.cfg.Height)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, `<circle cx="%d" cy="%d" r="1" fill="#a5a59c"/>`, x, y)
	}
	return nil
}

func escapeGlyph(g rune) string {
	switch g {
	case '<':
		return "&lt;"
	case '>':
		return "&gt;"
	case '&':
		return "&amp;"
	default:
		return string(g)
	}
}
