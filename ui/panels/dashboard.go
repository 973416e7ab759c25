// Package panels contains the content panels of the main window.
package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"terranova/internal/app"
	"terranova/internal/lot"
)

// Dashboard shows the headline numbers and recent lot activity.
type Dashboard struct {
	state *app.State

	projected *widget.Label
	clients   *widget.Label
	overdue   *widget.Label
	available *widget.Label
	activity  *widget.List

	events []activityRow

	root fyne.CanvasObject
}

type activityRow struct {
	division string
	number   string
	text     string
}

// NewDashboard builds the dashboard panel and subscribes it to state
// changes.
func NewDashboard(state *app.State) *Dashboard {
	d := &Dashboard{
		state:     state,
		projected: widget.NewLabel(""),
		clients:   widget.NewLabel(""),
		overdue:   widget.NewLabel(""),
		available: widget.NewLabel(""),
	}

	d.activity = widget.NewList(
		func() int { return len(d.events) },
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= len(d.events) {
				return
			}
			ev := d.events[i]
			o.(*widget.Label).SetText(fmt.Sprintf("%s · %s: %s", ev.division, ev.number, truncate(ev.text, 70)))
		},
	)

	cards := container.NewGridWithColumns(4,
		card("Ventas Proyectadas", d.projected),
		card("Clientes Activos", d.clients),
		card("Pagos Atrasados", d.overdue),
		card("Lotes Disponibles", d.available),
	)

	d.root = container.NewBorder(
		container.NewVBox(
			widget.NewLabelWithStyle("Panel General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			cards,
			widget.NewSeparator(),
			widget.NewLabelWithStyle("Actividad Reciente", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		),
		nil, nil, nil,
		d.activity,
	)

	refresh := func(interface{}) { d.Refresh() }
	state.On(app.EventSnapshotLoaded, refresh)
	state.On(app.EventLotsChanged, refresh)
	state.On(app.EventClientsChanged, refresh)

	d.Refresh()
	return d
}

func card(title string, value *widget.Label) fyne.CanvasObject {
	value.TextStyle = fyne.TextStyle{Bold: true}
	return container.NewVBox(
		widget.NewLabel(title),
		value,
	)
}

// Container returns the panel root for embedding.
func (d *Dashboard) Container() fyne.CanvasObject {
	return d.root
}

// Refresh recomputes the stats and the activity feed.
func (d *Dashboard) Refresh() {
	stats := d.state.Stats()
	d.projected.SetText(lot.FormatMoney(stats.ProjectedSales))
	d.clients.SetText(fmt.Sprintf("%d", stats.ActiveClients))
	d.overdue.SetText(fmt.Sprintf("%d", stats.OverduePayment))
	d.available.SetText(fmt.Sprintf("%d", stats.AvailableLots))

	d.events = d.events[:0]
	for _, division := range d.state.Divisions() {
		for _, l := range d.state.DivisionLots(division) {
			for _, ev := range l.History {
				d.events = append(d.events, activityRow{
					division: division,
					number:   l.Number,
					text:     ev.Description,
				})
				break // newest event per lot keeps the feed short
			}
		}
	}
	d.activity.Refresh()
}
