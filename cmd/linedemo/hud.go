package main

import (
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/spriteline/ecs"
	"github.com/milk9111/spriteline/ecs/component"
	"golang.org/x/image/font/basicfont"
)

var (
	fromColor = color.RGBA{R: 90, G: 220, B: 120, A: 255}
	toColor   = color.RGBA{R: 240, G: 90, B: 90, A: 255}
	midColor  = color.RGBA{R: 240, G: 220, B: 90, A: 255}
	white     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// hudActions are the callbacks behind the panel buttons. The same actions
// are bound to the R, D and C keys.
type hudActions struct {
	Reload      func()
	ToggleDebug func()
	Copy        func()
}

type hud struct {
	face   *text.GoXFace
	ui     *ebitenui.UI
	status *widget.Text
}

func newHUD(actions hudActions) *hud {
	goFace := text.NewGoXFace(basicfont.Face7x13)
	var face text.Face = goFace

	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnHover}),
			widget.ButtonOpts.Text(label, face, btnTextColor),
			widget.ButtonOpts.TextPadding(widget.Insets{Top: 4, Bottom: 4, Left: 10, Right: 10}),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				if onClick != nil {
					onClick()
				}
			}),
		)
	}

	status := widget.NewText(
		widget.TextOpts.Text("", face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionStart})),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(widget.Insets{Top: 10, Bottom: 10, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(160, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(button("Reload [R]", actions.Reload))
	panel.AddChild(button("Debug [D]", actions.ToggleDebug))
	panel.AddChild(button("Copy [C]", actions.Copy))
	panel.AddChild(status)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(widget.Insets{Top: 8, Right: 8}),
		)),
	)
	root.AddChild(panel)

	return &hud{
		face:   goFace,
		ui:     &ebitenui.UI{Container: root},
		status: status,
	}
}

func (h *hud) update(status string) {
	h.status.Label = status
	h.ui.Update()
}

func (h *hud) draw(screen *ebiten.Image, lines []string) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(10, 8)
	op.ColorScale.ScaleWithColor(color.White)
	op.LineSpacing = 16
	text.Draw(screen, strings.Join(lines, "\n"), h.face, op)

	h.ui.Draw(screen)
}

// drawDebug marks each line's endpoints and the midpoint its sprite is
// anchored on.
func (g *Game) drawDebug(screen *ebiten.Image) {
	zoom := float32(g.render.Zoom)
	if zoom <= 0 {
		zoom = 1
	}
	camX, camY := float32(g.render.CamX), float32(g.render.CamY)
	dot := func(x, y float64, r float32, c color.Color) {
		vector.DrawFilledCircle(screen, (float32(x)-camX)*zoom, (float32(y)-camY)*zoom, r, c, true)
	}

	ecs.ForEach(g.world, component.StretchedLineComponent.Kind(), func(_ ecs.Entity, sl *component.StretchedLine) {
		from, to, mid := sl.Line.From(), sl.Line.To(), sl.Line.Geometry().Mid
		dot(from.X, from.Y, 4, fromColor)
		dot(to.X, to.Y, 4, toColor)
		dot(mid.X, mid.Y, 2, midColor)
	})
}
