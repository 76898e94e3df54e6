// Package qrcode turns text into QR symbols and square raster images.
//
// Output is deterministic: a Generator built from the same Options always
// produces the same matrix and the same pixels for the same text.
package qrcode

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/google/uuid"
	goqrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
)

type Level int

const (
	Low Level = iota
	Medium
	Quartile
	High
)

func (l Level) String() string {
	switch l {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case Quartile:
		return "quartile"
	case High:
		return "high"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l":
		return Low, nil
	case "medium", "m":
		return Medium, nil
	case "quartile", "q":
		return Quartile, nil
	case "high", "h":
		return High, nil
	}
	return Medium, fmt.Errorf("unknown error correction level %q", s)
}

func (l Level) recovery() goqrcode.RecoveryLevel {
	switch l {
	case Low:
		return goqrcode.Low
	case Quartile:
		return goqrcode.High
	case High:
		return goqrcode.Highest
	default:
		return goqrcode.Medium
	}
}

// Options are fixed for the lifetime of a Generator.
type Options struct {
	Level      Level
	Border     int // quiet zone, in modules
	Size       int // output side, in pixels
	Foreground color.Color
	Background color.Color
}

func DefaultOptions() Options {
	return Options{
		Level:      Medium,
		Border:     2,
		Size:       320,
		Foreground: color.Black,
		Background: color.White,
	}
}

// EncodingError reports text that cannot be represented as a QR symbol.
type EncodingError struct {
	Text   string
	Reason string
	Err    error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot encode %d bytes as QR code: %s", len(e.Text), e.Reason)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Matrix is a square grid of modules, true meaning dark. Row-major.
type Matrix [][]bool

func (m Matrix) Size() int {
	return len(m)
}

func (m Matrix) Equal(other Matrix) bool {
	if len(m) != len(other) {
		return false
	}
	for y := range m {
		if len(m[y]) != len(other[y]) {
			return false
		}
		for x := range m[y] {
			if m[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// Artifact is one successful generation.
type Artifact struct {
	ID      string
	Text    string
	Version int
	Matrix  Matrix
	Image   *image.Paletted
}

// Service produces artifacts from text.
type Service interface {
	Generate(text string) (*Artifact, error)
}

type Generator struct {
	opts    Options
	palette color.Palette
}

func NewGenerator(opts Options) (*Generator, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("invalid size %d: must be > 0", opts.Size)
	}
	if opts.Size > 4096 {
		return nil, fmt.Errorf("invalid size %d: must be <= 4096", opts.Size)
	}
	if opts.Border < 0 {
		return nil, fmt.Errorf("invalid border %d: must be >= 0", opts.Border)
	}
	if opts.Foreground == nil {
		opts.Foreground = color.Black
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	if sameColor(opts.Foreground, opts.Background) {
		return nil, errors.New("foreground and background colors must differ")
	}

	return &Generator{
		opts:    opts,
		palette: color.Palette{opts.Background, opts.Foreground},
	}, nil
}

// Encode builds the module matrix for text, including the configured border.
func (g *Generator) Encode(text string) (Matrix, int, error) {
	q, err := goqrcode.New(text, g.opts.Level.recovery())
	if err != nil {
		return nil, 0, &EncodingError{Text: text, Reason: err.Error(), Err: err}
	}
	q.DisableBorder = true

	return withBorder(q.Bitmap(), g.opts.Border), q.VersionNumber, nil
}

// ErrImageTooSmall is returned when the output cannot give every module at
// least one pixel.
var ErrImageTooSmall = errors.New("image too small for symbol")

// Render rasterizes m into a Size×Size two-color image.
func (g *Generator) Render(m Matrix) (*image.Paletted, error) {
	n := m.Size()
	if g.opts.Size < n {
		return nil, fmt.Errorf("%w: %dpx for %d modules", ErrImageTooSmall, g.opts.Size, n)
	}
	src := image.NewPaletted(image.Rect(0, 0, n, n), g.palette)
	for y, row := range m {
		for x, dark := range row {
			if dark {
				src.SetColorIndex(x, y, 1)
			}
		}
	}

	dst := image.NewPaletted(image.Rect(0, 0, g.opts.Size, g.opts.Size), g.palette)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

func (g *Generator) Generate(text string) (*Artifact, error) {
	m, version, err := g.Encode(text)
	if err != nil {
		return nil, err
	}
	img, err := g.Render(m)
	if err != nil {
		return nil, &EncodingError{Text: text, Reason: err.Error(), Err: err}
	}

	return &Artifact{
		ID:      uuid.NewString(),
		Text:    text,
		Version: version,
		Matrix:  m,
		Image:   img,
	}, nil
}

func withBorder(bitmap [][]bool, border int) Matrix {
	n := len(bitmap) + 2*border
	m := make(Matrix, n)
	for y := range m {
		m[y] = make([]bool, n)
	}
	for y, row := range bitmap {
		copy(m[y+border][border:], row)
	}
	return m
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}
