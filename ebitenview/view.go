// Package ebitenview renders a slidecheck widget with Ebitengine and feeds
// it mouse and touch input.
//
//	view := ebitenview.New(ebitenview.Options{}, ebitenview.WithSource(src))
//	w, err := slidecheck.New(view)
//	if err != nil { ... }
//	view.Attach(w)
//	err = ebitenview.Run(view, ebitenview.RunConfig{Title: "Verify"})
package ebitenview

import (
	"context"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/phanxgames/slidecheck"
	"github.com/phanxgames/slidecheck/background"
)

// Options sizes the widget. Zero fields take the defaults shown.
type Options struct {
	Padding       float64 // 20
	WrapperWidth  float64 // 360
	WrapperHeight float64 // 220
	TrackHeight   float64 // 40
	HandleWidth   float64 // 50
	PieceSize     float64 // 50
	StatusHeight  float64 // 24
}

func (o Options) withDefaults() Options {
	def := func(v *float64, d float64) {
		if *v <= 0 {
			*v = d
		}
	}
	def(&o.Padding, 20)
	def(&o.WrapperWidth, 360)
	def(&o.WrapperHeight, 220)
	def(&o.TrackHeight, 40)
	def(&o.HandleWidth, 50)
	def(&o.PieceSize, 50)
	def(&o.StatusHeight, 24)
	return o
}

// BackgroundSize returns the pixel size backgrounds are drawn at.
func (o Options) BackgroundSize() (int, int) {
	o = o.withDefaults()
	return int(o.WrapperWidth), int(o.WrapperHeight)
}

// Option configures a View.
type Option func(*View)

// WithSource sets where background images come from. Without one every
// background is a generated placeholder.
func WithSource(src *background.Source) Option {
	return func(v *View) { v.source = src }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(v *View) { v.log = log }
}

// WithMessages sets the labels drawn on the pass panel.
func WithMessages(m slidecheck.Messages) Option {
	return func(v *View) { v.messages = m }
}

// loadedImage carries a finished background fetch back to the UI goroutine.
type loadedImage struct {
	key string
	img image.Image
	err error
}

// View draws one widget and routes input to it. It implements
// slidecheck.Renderer. All methods except the background fetches run on the
// Ebitengine update goroutine.
type View struct {
	opts     Options
	widget   *slidecheck.Widget
	source   *background.Source
	log      *zap.Logger
	messages slidecheck.Messages
	debug    bool
	fps      fpsOverlay

	// Elements in painter order.
	wrapper, notch, piece, track, progress, handle, panel, confirm element
	elements                                                      []*element

	shape  PieceShape
	status string
	shake  float64

	notchLeft, notchTop int

	// Background state. bgKey is the image the widget asked for; images holds
	// decoded sources waiting to be uploaded or already uploaded.
	bgKey   string
	images  map[string]image.Image
	loading map[string]bool
	loaded  chan loadedImage
	ctx     context.Context
	cancel  context.CancelFunc

	input inputState

	// Scripted testing.
	runner          *ScriptRunner
	injectQueue     []syntheticPointerEvent
	screenshotQueue []string
	ScreenshotDir   string

	// ClearColor fills the screen behind the widget.
	ClearColor color.RGBA

	gfx graphics
}

// New builds a view. The view draws nothing useful until Attach is called
// with a widget constructed on top of it.
func New(opts Options, options ...Option) *View {
	o := opts.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	v := &View{
		opts:          o,
		log:           zap.NewNop(),
		messages:      slidecheck.DefaultConfig().Messages,
		images:        make(map[string]image.Image),
		loading:       make(map[string]bool),
		loaded:        make(chan loadedImage, 8),
		ctx:           ctx,
		cancel:        cancel,
		ScreenshotDir: "screenshots",
		ClearColor:    color.RGBA{R: 0xf4, G: 0xf5, B: 0xf7, A: 0xff},
		shape:         PieceShape{Width: o.PieceSize, Height: o.PieceSize},
	}
	v.input.captured = -1
	for _, opt := range options {
		opt(v)
	}
	v.layoutElements()
	return v
}

// layoutElements positions every element from the options. Only offsets,
// notch position and visibility change afterwards.
func (v *View) layoutElements() {
	o := v.opts
	trackY := o.Padding + o.WrapperHeight + o.StatusHeight

	v.wrapper = element{ID: elemWrapper, X: o.Padding, Y: o.Padding,
		Width: o.WrapperWidth, Height: o.WrapperHeight, Visible: true}
	v.notch = element{ID: elemNotch, Width: o.PieceSize, Height: o.PieceSize,
		Color: color.RGBA{A: 0x90}, Visible: true}
	v.piece = element{ID: elemPiece, X: o.Padding, Y: o.Padding,
		Width: o.PieceSize, Height: o.PieceSize, Visible: true,
		Interactable: true, HitShape: v.shape}
	v.track = element{ID: elemTrack, X: o.Padding, Y: trackY,
		Width: o.WrapperWidth, Height: o.TrackHeight,
		Color: color.RGBA{R: 0xe4, G: 0xe7, B: 0xeb, A: 0xff}, Visible: true}
	v.progress = element{ID: elemProgress, X: o.Padding, Y: trackY,
		Height: o.TrackHeight,
		Color: color.RGBA{R: 0x9f, G: 0xd3, B: 0xff, A: 0xff}, Visible: true}
	v.handle = element{ID: elemHandle, X: o.Padding, Y: trackY,
		Width: o.HandleWidth, Height: o.TrackHeight,
		Color: color.RGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff}, Visible: true,
		Interactable: true}
	v.panel = element{ID: elemPanel, X: o.Padding, Y: o.Padding,
		Width: o.WrapperWidth, Height: o.WrapperHeight,
		Color: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xe0}}
	v.confirm = element{ID: elemConfirm,
		X: o.Padding + o.WrapperWidth/2 - 40, Y: o.Padding + o.WrapperHeight/2 + 10,
		Width: 80, Height: 28,
		Color: color.RGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff}, Interactable: true}

	v.elements = []*element{&v.wrapper, &v.notch, &v.piece, &v.track,
		&v.progress, &v.handle, &v.panel, &v.confirm}
}

// Attach connects the widget the view routes input to.
func (v *View) Attach(w *slidecheck.Widget) {
	v.widget = w
}

// Widget returns the attached widget, or nil.
func (v *View) Widget() *slidecheck.Widget {
	return v.widget
}

// ScreenSize returns the logical screen size the widget needs.
func (v *View) ScreenSize() (int, int) {
	o := v.opts
	w := o.WrapperWidth + 2*o.Padding
	h := o.Padding + o.WrapperHeight + o.StatusHeight + o.TrackHeight + o.Padding
	return int(w), int(h)
}

// SetDebugMode enables per-frame timing logs and the FPS overlay.
func (v *View) SetDebugMode(enabled bool) {
	v.debug = enabled
}

// Close stops pending background fetches.
func (v *View) Close() {
	v.cancel()
}

// --- slidecheck.Renderer ---

// Layout reports the widget geometry. Handle and piece both start at the
// wrapper's left edge, so a handle offset equals the piece's offset inside
// the background.
func (v *View) Layout() slidecheck.Layout {
	o := v.opts
	return slidecheck.Layout{
		WrapperX:      v.wrapper.X,
		WrapperY:      v.wrapper.Y,
		WrapperWidth:  o.WrapperWidth,
		WrapperHeight: o.WrapperHeight,
		TrackX:        v.track.X,
		TrackWidth:    v.track.Width,
		HandleWidth:   o.HandleWidth,
		PieceWidth:    o.PieceSize,
		PieceHeight:   o.PieceSize,
	}
}

// SetOffset moves handle and piece and sizes the progress fill, all to x.
func (v *View) SetOffset(x float64) {
	v.handle.OffsetX = x
	v.piece.OffsetX = x
	v.progress.Width = x
}

func (v *View) SetShake(dx float64) {
	v.shake = dx
}

func (v *View) SetNotch(left, top int) {
	v.notchLeft, v.notchTop = left, top
	v.notch.X = v.wrapper.X + float64(left)
	v.notch.Y = v.wrapper.Y + float64(top)
	v.piece.Y = v.wrapper.Y + float64(top)
	v.gfx.invalidatePiece()
}

// SetBackground selects the background and starts loading it if needed.
func (v *View) SetBackground(key string) {
	v.bgKey = key
	v.gfx.invalidatePiece()
	v.requestImage(key)
}

func (v *View) SetPassPanelVisible(visible bool) {
	v.panel.Visible = visible
	v.confirm.Visible = visible
}

func (v *View) SetStatus(text string) {
	v.status = text
}

// Status returns the status message currently shown.
func (v *View) Status() string {
	return v.status
}

// PassPanelVisible reports whether the pass panel is shown.
func (v *View) PassPanelVisible() bool {
	return v.panel.Visible
}

// --- background loading ---

// requestImage starts a fetch for key unless it is cached or in flight.
func (v *View) requestImage(key string) {
	if _, ok := v.images[key]; ok || v.loading[key] {
		return
	}
	if v.source == nil {
		w, h := v.opts.BackgroundSize()
		v.images[key] = background.Fallback(w, h, key)
		return
	}
	if img, ok := v.source.Cached(key); ok {
		v.images[key] = img
		return
	}
	v.loading[key] = true
	go func(ctx context.Context, src *background.Source) {
		img, err := src.Get(ctx, key)
		select {
		case v.loaded <- loadedImage{key: key, img: img, err: err}:
		case <-ctx.Done():
		}
	}(v.ctx, v.source)
}

// drainLoads moves finished fetches into the image table. Failed fetches
// get a placeholder so the round stays playable.
func (v *View) drainLoads() {
	for {
		select {
		case l := <-v.loaded:
			delete(v.loading, l.key)
			if l.err != nil {
				v.log.Warn("background unavailable, using placeholder",
					zap.String("src", l.key), zap.Error(l.err))
				w, h := v.opts.BackgroundSize()
				v.images[l.key] = background.Fallback(w, h, l.key)
			} else {
				v.images[l.key] = l.img
			}
			if l.key == v.bgKey {
				v.gfx.invalidatePiece()
			}
		default:
			return
		}
	}
}

// Update advances one tick at the game's TPS.
func (v *View) Update() error {
	return v.update(float32(1.0 / float64(ebiten.TPS())))
}

func (v *View) update(dt float32) error {
	if v.debug {
		v.fps.update(float64(dt))
	}
	v.drainLoads()
	if v.runner != nil {
		v.runner.step(v)
	}
	v.processInput()
	if v.widget != nil {
		v.widget.Update(dt)
	}
	return nil
}
