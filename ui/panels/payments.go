package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"terranova/internal/app"
	"terranova/internal/lot"
	"terranova/internal/payment"
)

// PaymentsPanel is the operator's personal payment ledger with its
// capture form and portfolio statistics.
type PaymentsPanel struct {
	state *app.State

	payments []payment.Payment
	stats    *widget.Label
	byCat    *widget.Label
	list     *widget.List

	root fyne.CanvasObject
}

// NewPaymentsPanel builds the payments panel.
func NewPaymentsPanel(state *app.State) *PaymentsPanel {
	p := &PaymentsPanel{
		state: state,
		stats: widget.NewLabel(""),
		byCat: widget.NewLabel(""),
	}

	p.list = widget.NewList(
		func() int { return len(p.payments) },
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewLabel(""),
				widget.NewButton("Completar", nil),
				widget.NewButton("Eliminar", nil),
			)
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= len(p.payments) {
				return
			}
			rec := p.payments[i]
			row := o.(*fyne.Container)
			label := row.Objects[0].(*widget.Label)
			complete := row.Objects[1].(*widget.Button)
			remove := row.Objects[2].(*widget.Button)

			label.SetText(fmt.Sprintf("%s  %s  %s  %s [%s]",
				rec.Date, truncate(rec.Concept, 28), rec.Category,
				lot.FormatMoney(rec.Amount), rec.Status))

			id := rec.ID
			remove.OnTapped = func() { p.state.DeletePayment(id) }
			if rec.Status == payment.StatusCompleted {
				complete.Hide()
			} else {
				complete.Show()
				complete.OnTapped = func() {
					p.state.SetPaymentStatus(id, payment.StatusCompleted)
				}
			}
		},
	)

	form := p.buildForm()

	p.root = container.NewBorder(
		container.NewVBox(
			widget.NewLabelWithStyle("Pagos Personales", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			p.stats,
			p.byCat,
			widget.NewSeparator(),
			form,
		),
		nil, nil, nil,
		p.list,
	)

	refresh := func(interface{}) { p.reload() }
	state.On(app.EventSnapshotLoaded, refresh)
	state.On(app.EventPaymentsChanged, refresh)

	p.reload()
	return p
}

// Container returns the panel root for embedding.
func (p *PaymentsPanel) Container() fyne.CanvasObject {
	return p.root
}

func (p *PaymentsPanel) buildForm() fyne.CanvasObject {
	concept := widget.NewEntry()
	concept.SetPlaceHolder("Concepto")
	amount := widget.NewEntry()
	amount.SetPlaceHolder("$0")
	category := widget.NewSelect(payment.Categories, nil)
	category.SetSelected("Otros")

	add := widget.NewButton("Registrar Pago", func() {
		parsed, ok := parseMoney(amount.Text)
		if !ok || concept.Text == "" {
			return
		}
		p.state.AddPayment(payment.New(concept.Text, parsed, category.Selected))
		concept.SetText("")
		amount.SetText("")
	})

	return container.NewGridWithColumns(4, concept, amount, category, add)
}

func (p *PaymentsPanel) reload() {
	p.payments = p.state.PersonalPayments()
	p.list.Refresh()

	stats := payment.Summarize(p.payments)
	p.stats.SetText(fmt.Sprintf(
		"Total: %s  ·  Promedio: $%.0f  ·  Desviación: $%.0f  ·  %d pendientes, %d atrasados",
		lot.FormatMoney(stats.Total), stats.Mean, stats.StdDev,
		stats.Pending, stats.Overdue))

	byCat := payment.ByCategory(p.payments)
	line := ""
	for _, cat := range payment.Categories {
		if total, ok := byCat[cat]; ok {
			line += fmt.Sprintf("%s %s   ", cat, lot.FormatMoney(total))
		}
	}
	p.byCat.SetText(line)
}
