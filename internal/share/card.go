// Package share turns a finished journey into something the user can take
// away: a PNG card with one bubble per emotion, and a caption.
package share

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"whatfeeling/internal/emotion"
)

// Card geometry, in pixels.
const (
	CardWidth     = 1200
	MinCardHeight = 800

	titleBaseline = 80
	titleSize     = 48

	bubbleTop     = 160
	bubbleHeight  = 100
	bubbleGap     = 20
	bubbleInset   = 100
	bubbleRadius  = 50
	bubbleText    = 40
	bubbleTextDY  = 14

	footerSize   = 32
	footerOffset = 40
	footerRoom   = 120

	// kappa places cubic control points for a quarter circle.
	kappa = 0.5522847
)

// Footer is printed at the bottom of every card.
const Footer = "whatfeeling.com"

// Bubble is one emotion on the card. Color is a color token such as
// "Yellow"; unknown tokens draw white.
type Bubble struct {
	Name  string
	Color string
}

// BubblesFor pairs names with resolved color tokens.
func BubblesFor(nodes []*emotion.Node, colors []string) []Bubble {
	out := make([]Bubble, len(nodes))
	for i, n := range nodes {
		token := n.Color
		if i < len(colors) && colors[i] != "" {
			token = colors[i]
		}
		out[i] = Bubble{Name: n.Name, Color: token}
	}
	return out
}

// CardHeight is 800 unless the bubbles need more room.
func CardHeight(n int) int {
	need := bubbleTop + n*(bubbleHeight+bubbleGap) - bubbleGap + footerRoom
	if need < MinCardHeight {
		return MinCardHeight
	}
	return need
}

type faces struct {
	title, bubble, footer font.Face
}

func loadFaces() (*faces, error) {
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	face := func(f *opentype.Font, size float64) (font.Face, error) {
		return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	}

	var fs faces
	if fs.title, err = face(bold, titleSize); err != nil {
		return nil, fmt.Errorf("failed to create title face: %w", err)
	}
	if fs.bubble, err = face(bold, bubbleText); err != nil {
		return nil, fmt.Errorf("failed to create bubble face: %w", err)
	}
	if fs.footer, err = face(regular, footerSize); err != nil {
		return nil, fmt.Errorf("failed to create footer face: %w", err)
	}
	return &fs, nil
}

func (f *faces) Close() {
	f.title.Close()
	f.bubble.Close()
	f.footer.Close()
}

// Render draws the card and encodes it as PNG.
func Render(bubbles []Bubble) ([]byte, error) {
	img, err := Draw(bubbles)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode card: %w", err)
	}
	return buf.Bytes(), nil
}

// Draw rasterizes the card.
func Draw(bubbles []Bubble) (*image.RGBA, error) {
	fs, err := loadFaces()
	if err != nil {
		return nil, err
	}
	defer fs.Close()

	width, height := CardWidth, CardHeight(len(bubbles))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	drawCentered(img, fs.title, "I feel", titleBaseline, color.Black)

	for i, b := range bubbles {
		y := bubbleTop + i*(bubbleHeight+bubbleGap)
		fill := parseHex(emotion.ColorValue(b.Color))
		fillRoundedRect(img, bubbleInset, y, width-2*bubbleInset, bubbleHeight, bubbleRadius, fill)
		drawCentered(img, fs.bubble, b.Name, y+bubbleHeight/2+bubbleTextDY, color.Black)
	}

	drawCentered(img, fs.footer, Footer, height-footerOffset, parseHex("#666666"))
	return img, nil
}

func parseHex(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(emotion.DefaultColorValue)
	}
	return c
}

func drawCentered(dst draw.Image, face font.Face, text string, baseline int, c color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face}
	adv := d.MeasureString(text)
	x := (fixed.I(dst.Bounds().Dx()) - adv) / 2
	d.Dot = fixed.Point26_6{X: x, Y: fixed.I(baseline)}
	d.DrawString(text)
}

func fillRoundedRect(dst draw.Image, x, y, w, h, r int, c color.Color) {
	if r*2 > h {
		r = h / 2
	}
	if r*2 > w {
		r = w / 2
	}
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())

	x0, y0 := float32(x), float32(y)
	x1, y1 := float32(x+w), float32(y+h)
	rr := float32(r)
	k := rr * kappa

	z.MoveTo(x0+rr, y0)
	z.LineTo(x1-rr, y0)
	z.CubeTo(x1-rr+k, y0, x1, y0+rr-k, x1, y0+rr)
	z.LineTo(x1, y1-rr)
	z.CubeTo(x1, y1-rr+k, x1-rr+k, y1, x1-rr, y1)
	z.LineTo(x0+rr, y1)
	z.CubeTo(x0+rr-k, y1, x0, y1-rr+k, x0, y1-rr)
	z.LineTo(x0, y0+rr)
	z.CubeTo(x0, y0+rr-k, x0+rr-k, y0, x0+rr, y0)
	z.ClosePath()

	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}
