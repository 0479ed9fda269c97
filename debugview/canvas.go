// Package debugview renders a top-down picture of a collision scene: the
// terrain quadtree, its triangles, entity hitboxes and contacts. It is a
// debugging aid for headless runs and has no window.
package debugview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Canvas maps the world XY rectangle [MinX, MaxX] x [MinY, MaxY] onto an
// image with +Y up, Scale pixels per world unit.
type Canvas struct {
	MinX, MinY float32
	MaxX, MaxY float32
	Scale      float32
	Background [4]float32

	gizmos []Gizmo
}

func NewCanvas(minX, minY, maxX, maxY, scale float32) *Canvas {
	if maxX <= minX || maxY <= minY || scale <= 0 {
		panic(fmt.Sprintf("debugview: bad canvas [%v,%v]x[%v,%v] at %v px/unit", minX, maxX, minY, maxY, scale))
	}
	return &Canvas{
		MinX: minX, MinY: minY,
		MaxX: maxX, MaxY: maxY,
		Scale:      scale,
		Background: [4]float32{0.08, 0.08, 0.1, 1},
	}
}

func (c *Canvas) Add(g ...Gizmo) {
	c.gizmos = append(c.gizmos, g...)
}

func (c *Canvas) Len() int { return len(c.gizmos) }

func (c *Canvas) Size() image.Point {
	return image.Pt(
		int(math32.Ceil((c.MaxX-c.MinX)*c.Scale)),
		int(math32.Ceil((c.MaxY-c.MinY)*c.Scale)),
	)
}

// ToPixel returns the image position of world point p.
func (c *Canvas) ToPixel(p mgl32.Vec3) (x, y float32) {
	return (p.X() - c.MinX) * c.Scale, (c.MaxY - p.Y()) * c.Scale
}

// Render draws every gizmo in the order added.
func (c *Canvas) Render() *image.RGBA {
	size := c.Size()
	img := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(img, img.Bounds(), image.NewUniform(toColor(c.Background)), image.Point{}, draw.Src)

	z := vector.NewRasterizer(size.X, size.Y)
	for i := range c.gizmos {
		g := &c.gizmos[i]
		src := image.NewUniform(toColor(g.Color))
		switch g.Type {
		case GizmoLine:
			if len(g.Points) < 2 {
				continue
			}
			c.stroke(z, img, src, g.Points[:2], false, g.Width)
		case GizmoPolygon:
			if len(g.Points) < 3 {
				continue
			}
			if g.Filled {
				c.fill(z, img, src, g.Points)
			} else {
				c.stroke(z, img, src, g.Points, true, g.Width)
			}
		case GizmoLabel:
			if len(g.Points) == 0 {
				continue
			}
			x, y := c.ToPixel(g.Points[0])
			d := font.Drawer{
				Dst:  img,
				Src:  src,
				Face: basicfont.Face7x13,
				Dot:  fixed.P(int(x), int(y)),
			}
			d.DrawString(g.Text)
		}
	}
	return img
}

func (c *Canvas) fill(z *vector.Rasterizer, dst draw.Image, src image.Image, pts []mgl32.Vec3) {
	z.Reset(z.Size().X, z.Size().Y)
	x, y := c.ToPixel(pts[0])
	z.MoveTo(x, y)
	for _, p := range pts[1:] {
		z.LineTo(c.ToPixel(p))
	}
	z.ClosePath()
	z.Draw(dst, dst.Bounds(), src, image.Point{})
}

// stroke draws each segment as a quad width pixels wide.
func (c *Canvas) stroke(z *vector.Rasterizer, dst draw.Image, src image.Image, pts []mgl32.Vec3, closed bool, width float32) {
	if width <= 0 {
		width = 1
	}
	n := len(pts)
	segs := n - 1
	if closed {
		segs = n
	}

	z.Reset(z.Size().X, z.Size().Y)
	for i := 0; i < segs; i++ {
		ax, ay := c.ToPixel(pts[i])
		bx, by := c.ToPixel(pts[(i+1)%n])
		dx, dy := bx-ax, by-ay
		l := math32.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		// Every quad winds the same way so joints accumulate, not cancel.
		nx, ny := -dy/l*width/2, dx/l*width/2
		z.MoveTo(ax+nx, ay+ny)
		z.LineTo(bx+nx, by+ny)
		z.LineTo(bx-nx, by-ny)
		z.LineTo(ax-nx, ay-ny)
		z.ClosePath()
	}
	z.Draw(dst, dst.Bounds(), src, image.Point{})
}

// Thumbnail scales img so its longer side is at most maxSide pixels.
// Smaller images are returned unchanged.
func Thumbnail(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	long := max(b.Dx(), b.Dy())
	if maxSide <= 0 || long <= maxSide {
		return img
	}
	w := b.Dx() * maxSide / long
	h := b.Dy() * maxSide / long
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode debug view: %w", err)
	}
	return nil
}

func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create debug view: %w", err)
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func toColor(c [4]float32) color.NRGBA {
	ch := func(v float32) uint8 {
		return uint8(math32.Round(math32.Max(0, math32.Min(1, v)) * 255))
	}
	return color.NRGBA{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: ch(c[3])}
}
