package ebitenview

import (
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// graphics holds the GPU images. They are created on first Draw, so a View
// can be built and driven in tests without a graphics context.
type graphics struct {
	whitePixel *ebiten.Image
	mask       *ebiten.Image
	uploaded   map[string]*ebiten.Image

	// piece is the background cut-out at the notch, clipped to the shape.
	// Rebuilt when background or notch changes.
	piece      *ebiten.Image
	pieceDirty bool
}

func (g *graphics) invalidatePiece() {
	g.pieceDirty = true
}

func (g *graphics) init(shape PieceShape) {
	if g.whitePixel != nil {
		return
	}
	g.whitePixel = ebiten.NewImage(1, 1)
	g.whitePixel.Fill(color.White)
	g.mask = ebiten.NewImageFromImage(shape.Mask())
	g.uploaded = make(map[string]*ebiten.Image)
	g.pieceDirty = true
}

// backgroundImage returns the uploaded background for the current key, or
// nil while it is still loading.
func (v *View) backgroundImage() *ebiten.Image {
	if img, ok := v.gfx.uploaded[v.bgKey]; ok {
		return img
	}
	src, ok := v.images[v.bgKey]
	if !ok {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	v.gfx.uploaded[v.bgKey] = img
	return img
}

// pieceImage cuts the notch region out of the background and clips it to the
// puzzle shape: the region is copied, then the mask is composited with
// destination-in so only pixels under the shape survive.
func (v *View) pieceImage(bg *ebiten.Image) *ebiten.Image {
	g := &v.gfx
	if !g.pieceDirty && g.piece != nil {
		return g.piece
	}
	w, h := int(v.shape.Width), int(v.shape.Height)
	if g.piece == nil {
		g.piece = ebiten.NewImage(w, h)
	}
	g.piece.Clear()

	region := image.Rect(v.notchLeft, v.notchTop, v.notchLeft+w, v.notchTop+h)
	g.piece.DrawImage(bg.SubImage(region).(*ebiten.Image), nil)

	var op ebiten.DrawImageOptions
	op.Blend = ebiten.BlendDestinationIn
	g.piece.DrawImage(g.mask, &op)

	g.pieceDirty = false
	return g.piece
}

// fillRect draws a solid rectangle by scaling the white pixel.
func (v *View) fillRect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(v.gfx.whitePixel, &op)
}

func (v *View) fillElement(dst *ebiten.Image, e *element) {
	v.fillRect(dst, e.Left()+v.shake, e.Y, e.Width, e.Height, e.Color)
}

// Draw renders the widget. Everything is shifted by the current shake.
func (v *View) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if v.debug {
		t0 = time.Now()
	}

	v.gfx.init(v.shape)
	screen.Fill(v.ClearColor)
	dx := v.shake

	bg := v.backgroundImage()
	if bg != nil {
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(v.wrapper.X+dx, v.wrapper.Y)
		screen.DrawImage(bg, &op)

		// Notch: darken the background under the shape.
		op = ebiten.DrawImageOptions{}
		op.GeoM.Translate(v.notch.X+dx, v.notch.Y)
		op.ColorScale.ScaleWithColor(v.notch.Color)
		screen.DrawImage(v.gfx.mask, &op)

		op = ebiten.DrawImageOptions{}
		op.GeoM.Translate(v.piece.Left()+dx, v.piece.Y)
		screen.DrawImage(v.pieceImage(bg), &op)
	} else {
		v.fillRect(screen, v.wrapper.X+dx, v.wrapper.Y, v.wrapper.Width, v.wrapper.Height,
			color.RGBA{R: 0xcf, G: 0xd4, B: 0xda, A: 0xff})
		ebitenutil.DebugPrintAt(screen, "loading...", int(v.wrapper.X+dx)+8, int(v.wrapper.Y)+8)
	}

	if v.status != "" {
		ebitenutil.DebugPrintAt(screen, v.status,
			int(v.wrapper.X+dx), int(v.wrapper.Y+v.wrapper.Height)+4)
	}

	v.fillElement(screen, &v.track)
	v.fillElement(screen, &v.progress)
	v.fillElement(screen, &v.handle)
	ebitenutil.DebugPrintAt(screen, ">>",
		int(v.handle.Left()+dx+v.handle.Width/2)-6, int(v.handle.Y+v.handle.Height/2)-8)

	if v.panel.Visible {
		v.fillElement(screen, &v.panel)
		ebitenutil.DebugPrintAt(screen, v.messages.Passed,
			int(v.panel.X+dx+v.panel.Width/2)-3*len(v.messages.Passed), int(v.confirm.Y)-28)
		v.fillElement(screen, &v.confirm)
		ebitenutil.DebugPrintAt(screen, v.messages.Confirm,
			int(v.confirm.X+dx+v.confirm.Width/2)-3*len(v.messages.Confirm), int(v.confirm.Y)+6)
	}

	v.flushScreenshots(screen)

	if v.debug {
		v.fps.draw(v, screen)
		v.debugLog(time.Since(t0))
	}
}
