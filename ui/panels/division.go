package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"
	"gocv.io/x/gocv"

	"terranova/internal/app"
	"terranova/internal/client"
	"terranova/internal/division"
	"terranova/internal/lot"
	"terranova/internal/plan"
	"terranova/internal/sketch"
	"terranova/pkg/geometry"
	plancanvas "terranova/ui/canvas"
	"terranova/ui/dialogs"
)

// DivisionPanel is the interactive site-plan editor for one division.
type DivisionPanel struct {
	state  *app.State
	window fyne.Window

	division string
	selected *lot.Lot

	canvas     *plancanvas.PlanCanvas
	selector   *widget.Select
	modeNav    *widget.Button
	modeDraw   *widget.Button
	markerMode bool
	markerBtn  *widget.Button
	zoomLabel  *widget.Label

	lotCard fyne.CanvasObject
	number  *widget.Label
	area    *widget.Label
	price   *widget.Entry
	status  *widget.RadioGroup
	history *widget.List
	assign  *widget.Select
	zone    *widget.List

	zoneClients []*client.Client

	root fyne.CanvasObject
}

// NewDivisionPanel builds the editor panel.
func NewDivisionPanel(state *app.State, window fyne.Window) *DivisionPanel {
	p := &DivisionPanel{
		state:  state,
		window: window,
		canvas: plancanvas.NewPlanCanvas(),
	}

	divisions := state.Divisions()
	if len(divisions) > 0 {
		p.division = divisions[0]
	}

	p.buildToolbar(divisions)
	p.buildLotCard()
	p.wireCanvas()

	right := container.NewBorder(
		p.lotCard,
		nil, nil, nil,
		container.NewBorder(
			widget.NewLabelWithStyle("Clientes en la Zona", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			nil, nil, nil,
			p.zone,
		),
	)

	split := container.NewHSplit(p.canvas, right)
	split.SetOffset(0.72)

	p.root = container.NewBorder(
		p.toolbar(),
		nil, nil, nil,
		split,
	)

	state.On(app.EventLotsChanged, func(data interface{}) {
		if name, ok := data.(string); ok && name != p.division {
			return
		}
		p.reload()
	})
	state.On(app.EventPlanChanged, func(data interface{}) {
		if name, ok := data.(string); ok && name != p.division {
			return
		}
		p.reloadPlan()
	})
	state.On(app.EventSnapshotLoaded, func(interface{}) {
		p.reload()
		p.reloadPlan()
	})
	state.On(app.EventClientsChanged, func(interface{}) { p.refreshZone() })

	p.reload()
	p.reloadPlan()
	return p
}

// Container returns the panel root for embedding.
func (p *DivisionPanel) Container() fyne.CanvasObject {
	return p.root
}

// SetDivision switches the edited division.
func (p *DivisionPanel) SetDivision(name string) {
	if name == p.division || name == "" {
		return
	}
	p.division = name
	p.selector.SetSelected(name)
	p.selectLot(nil)
	p.canvas.Tracer().Cancel()
	p.canvas.ResetView()
	p.reload()
	p.reloadPlan()
}

// Division returns the currently edited division.
func (p *DivisionPanel) Division() string {
	return p.division
}

func (p *DivisionPanel) buildToolbar(divisions []string) {
	p.selector = widget.NewSelect(divisions, func(name string) {
		p.SetDivision(name)
	})
	if p.division != "" {
		p.selector.SetSelected(p.division)
	}

	p.modeNav = widget.NewButton("Navegar", func() { p.setMode(sketch.ModeView) })
	p.modeDraw = widget.NewButton("Dibujar Lote", func() { p.setMode(sketch.ModeDraw) })
	p.markerBtn = widget.NewButton("Marcador", func() {
		p.markerMode = !p.markerMode
		p.setMode(sketch.ModeView)
	})

	p.zoomLabel = widget.NewLabel("100%")
	p.canvas.OnViewChanged(func(zoom float64) {
		p.zoomLabel.SetText(fmt.Sprintf("%.0f%%", zoom*100))
	})
}

func (p *DivisionPanel) toolbar() fyne.CanvasObject {
	zoomIn := widget.NewButton("+", func() {
		p.canvas.Viewport().ZoomIn(viewSize(p.canvas))
		p.canvas.Refresh()
	})
	zoomOut := widget.NewButton("-", func() {
		p.canvas.Viewport().ZoomOut(viewSize(p.canvas))
		p.canvas.Refresh()
	})
	reset := widget.NewButton("Centrar", func() { p.canvas.ResetView() })
	upload := widget.NewButton("Subir Plano", p.onUploadPlan)
	detect := widget.NewButton("Detectar Lotes", p.onDetectLots)

	return container.NewHBox(
		p.selector,
		widget.NewSeparator(),
		p.modeNav, p.modeDraw, p.markerBtn,
		widget.NewSeparator(),
		zoomOut, zoomIn, reset, p.zoomLabel,
		widget.NewSeparator(),
		upload, detect,
	)
}

func viewSize(pc *plancanvas.PlanCanvas) geometry.Size {
	size := pc.Size()
	return geometry.Size{Width: float64(size.Width), Height: float64(size.Height)}
}

func (p *DivisionPanel) setMode(m sketch.Mode) {
	p.canvas.Tracer().SetMode(m)
	if m == sketch.ModeDraw {
		p.markerMode = false
		p.selectLot(nil)
	}
	p.canvas.Refresh()
}

func (p *DivisionPanel) wireCanvas() {
	p.canvas.OnBoundaryClosed(func(boundary []geometry.Point2D) {
		l, err := p.state.AddTracedLot(p.division, boundary)
		if err != nil {
			log.Warn().Err(err).Msg("traced boundary rejected")
			return
		}
		p.selectLot(l)
	})

	p.canvas.OnLotTapped(func(l *lot.Lot) {
		p.selectLot(l)
	})

	p.canvas.OnEmptyTapped(func(pt geometry.Point2D) {
		if p.markerMode {
			l, err := p.state.AddMarkerLot(p.division, pt.X, pt.Y)
			if err == nil {
				p.selectLot(l)
			}
			p.markerMode = false
			return
		}
		p.selectLot(nil)
	})
}

func (p *DivisionPanel) buildLotCard() {
	p.number = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	p.area = widget.NewLabel("")

	p.price = widget.NewEntry()
	p.price.OnSubmitted = func(s string) {
		if p.selected == nil {
			return
		}
		amount, ok := parseMoney(s)
		if !ok {
			p.price.SetText(lot.FormatMoney(p.selected.Price))
			return
		}
		upd := p.selected.Clone()
		upd.Price = amount
		if err := p.state.UpdateLot(p.division, upd); err == nil {
			p.selected = upd
		}
	}

	p.status = widget.NewRadioGroup(
		[]string{"Disponible", "Reservado", "Vendido"},
		func(choice string) { p.onStatusChange(choice) },
	)
	p.status.Horizontal = true

	p.history = widget.NewList(
		func() int {
			if p.selected == nil {
				return 0
			}
			return len(p.selected.History)
		},
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if p.selected == nil || i >= len(p.selected.History) {
				return
			}
			ev := p.selected.History[i]
			o.(*widget.Label).SetText(fmt.Sprintf("%s  %s",
				ev.Timestamp.Format("02/01 15:04"), truncate(ev.Description, 60)))
		},
	)

	p.assign = widget.NewSelect(nil, nil)
	formalize := widget.NewButton("Formalizar Venta", p.onFormalizeSale)
	removeArea := widget.NewButton("Eliminar Área", p.onRemoveBoundary)

	p.zone = widget.NewList(
		func() int { return len(p.zoneClients) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= len(p.zoneClients) {
				return
			}
			c := p.zoneClients[i]
			o.(*widget.Label).SetText(fmt.Sprintf("%s · %s", c.Name, c.LotID))
		},
	)

	p.lotCard = container.NewVBox(
		p.number,
		p.area,
		widget.NewForm(widget.NewFormItem("Precio", p.price)),
		p.status,
		container.NewHBox(p.assign, formalize),
		removeArea,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Historial", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWrap(fyne.NewSize(340, 160), p.history),
	)
	p.lotCard.Hide()
}

func (p *DivisionPanel) selectLot(l *lot.Lot) {
	p.selected = l
	if l == nil {
		p.canvas.Select("")
		p.lotCard.Hide()
		p.canvas.Refresh()
		return
	}

	p.canvas.Select(l.ID)
	p.number.SetText(l.Number)
	if l.HasBoundary() {
		p.area.SetText(fmt.Sprintf("Área: %.1f u²", l.Area()))
	} else {
		p.area.SetText("Sin área delimitada")
	}
	p.price.SetText(lot.FormatMoney(l.Price))
	p.status.SetSelected(statusLabel(l.Status))
	p.refreshAssignOptions()
	p.history.Refresh()
	p.lotCard.Show()
	p.canvas.Refresh()
}

func (p *DivisionPanel) onStatusChange(choice string) {
	if p.selected == nil || choice == "" || choice == statusLabel(p.selected.Status) {
		return
	}

	var next lot.Status
	switch choice {
	case "Vendido":
		next = lot.StatusSold
	case "Reservado":
		next = lot.StatusReserved
	default:
		next = lot.StatusAvailable
	}

	upd := p.selected.Clone()
	upd.Status = next
	if err := p.state.UpdateLot(p.division, upd); err == nil {
		p.selected = upd
		p.history.Refresh()
	}
}

func (p *DivisionPanel) onFormalizeSale() {
	if p.selected == nil || p.assign.Selected == "" {
		return
	}

	var chosen *client.Client
	for _, c := range p.state.Clients() {
		if c.Name == p.assign.Selected {
			chosen = c
			break
		}
	}
	if chosen == nil {
		return
	}

	id := p.selected.ID
	if err := p.state.FormalizeSale(p.division, id, chosen.ID); err != nil {
		dialog.ShowError(err, p.window)
		return
	}
	for _, l := range p.state.DivisionLots(p.division) {
		if l.ID == id {
			p.selectLot(l)
			return
		}
	}
}

func (p *DivisionPanel) onRemoveBoundary() {
	if p.selected == nil || !p.selected.HasBoundary() {
		return
	}
	upd := p.selected.Clone()
	upd.Boundary = nil
	if err := p.state.UpdateLot(p.division, upd); err == nil {
		p.selected = upd
		p.selectLot(upd)
	}
}

func (p *DivisionPanel) refreshAssignOptions() {
	var names []string
	for _, c := range p.state.Clients() {
		names = append(names, c.Name)
	}
	p.assign.Options = names
	p.assign.Refresh()
}

func (p *DivisionPanel) refreshZone() {
	p.zoneClients = client.ByDivision(p.state.Clients(), p.division)
	p.zone.Refresh()
	p.refreshAssignOptions()
}

func (p *DivisionPanel) reload() {
	p.canvas.SetLots(p.state.DivisionLots(p.division))
	p.refreshZone()

	if p.selected != nil {
		// Re-resolve the selected lot after state changes.
		for _, l := range p.state.DivisionLots(p.division) {
			if l.ID == p.selected.ID {
				p.selectLot(l)
				return
			}
		}
		p.selectLot(nil)
	}
}

func (p *DivisionPanel) reloadPlan() {
	dataURL := p.state.PlanFor(p.division)
	if dataURL == "" {
		p.canvas.SetPlan(nil)
		return
	}
	img, err := division.DecodePlan(dataURL)
	if err != nil {
		log.Warn().Err(err).Str("division", p.division).Msg("plan decode failed")
		p.canvas.SetPlan(nil)
		return
	}
	p.canvas.SetPlan(img)
}

func (p *DivisionPanel) onUploadPlan() {
	dialogs.ShowPlanUpload(p.window, func(data []byte, mime string) {
		p.state.SetDivisionPlan(p.division, division.EncodePlan(data, mime))
	})
}

// onDetectLots runs contour detection over the uploaded plan and adds
// each suggestion as a traced lot.
func (p *DivisionPanel) onDetectLots() {
	dataURL := p.state.PlanFor(p.division)
	if dataURL == "" {
		dialog.ShowInformation("Detección", "Sube primero un plano de la zona.", p.window)
		return
	}

	raw, err := division.PlanBytes(dataURL)
	if err != nil {
		dialog.ShowError(err, p.window)
		return
	}

	mat, err := gocv.IMDecode(raw, gocv.IMReadColor)
	if err != nil {
		dialog.ShowError(err, p.window)
		return
	}
	defer mat.Close()

	suggestions, err := plan.DetectBoundaries(mat, plan.DefaultOptions())
	if err != nil {
		dialog.ShowError(err, p.window)
		return
	}

	added := 0
	for _, s := range suggestions {
		boundary := plan.Simplify(s.Boundary, 0.8)
		if boundary == nil {
			continue
		}
		if _, err := p.state.AddTracedLot(p.division, boundary); err == nil {
			added++
		}
	}

	dialog.ShowInformation("Detección",
		fmt.Sprintf("Se agregaron %d lotes detectados.", added), p.window)
}
