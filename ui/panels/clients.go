package panels

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"

	"terranova/internal/app"
	"terranova/internal/client"
	"terranova/internal/division"
	"terranova/internal/lot"
	"terranova/ui/dialogs"
)

// ClientsPanel lists the client portfolio and shows one client's
// profile: payment plan, balance, and documents.
type ClientsPanel struct {
	state  *app.State
	window fyne.Window

	clients  []*client.Client
	selected *client.Client

	list    *widget.List
	name    *widget.Label
	contact *widget.Label
	lotInfo *widget.Label
	balance *widget.Label
	plan    *widget.List
	files   *widget.List
	profile fyne.CanvasObject

	root fyne.CanvasObject
}

// NewClientsPanel builds the clients panel.
func NewClientsPanel(state *app.State, window fyne.Window) *ClientsPanel {
	p := &ClientsPanel{state: state, window: window}

	p.list = widget.NewList(
		func() int { return len(p.clients) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= len(p.clients) {
				return
			}
			c := p.clients[i]
			o.(*widget.Label).SetText(fmt.Sprintf("%s · %s %s", c.Name, c.Division, c.LotID))
		},
	)
	p.list.OnSelected = func(i widget.ListItemID) {
		if i < len(p.clients) {
			p.showProfile(p.clients[i])
		}
	}

	p.buildProfile()

	add := widget.NewButton("Nuevo Cliente", func() {
		dialogs.ShowClientForm(p.window, state.Divisions(), func(c *client.Client) {
			state.AddClient(c)
		})
	})

	left := container.NewBorder(add, nil, nil, nil, p.list)
	split := container.NewHSplit(left, p.profile)
	split.SetOffset(0.35)
	p.root = split

	refresh := func(interface{}) { p.reload() }
	state.On(app.EventSnapshotLoaded, refresh)
	state.On(app.EventClientsChanged, refresh)

	p.reload()
	return p
}

// Container returns the panel root for embedding.
func (p *ClientsPanel) Container() fyne.CanvasObject {
	return p.root
}

func (p *ClientsPanel) buildProfile() {
	p.name = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	p.contact = widget.NewLabel("")
	p.lotInfo = widget.NewLabel("")
	p.balance = widget.NewLabel("")

	p.plan = widget.NewList(
		func() int {
			if p.selected == nil {
				return 0
			}
			return len(p.selected.Payments)
		},
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewLabel(""), widget.NewButton("Marcar Pagado", nil))
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if p.selected == nil || i >= len(p.selected.Payments) {
				return
			}
			sched := p.selected.Payments[i]
			row := o.(*fyne.Container)
			label := row.Objects[0].(*widget.Label)
			btn := row.Objects[1].(*widget.Button)

			status := string(sched.Status)
			if sched.Status != client.SchedulePaid && sched.Due(time.Now()) {
				status = string(client.ScheduleOverdue)
			}
			label.SetText(fmt.Sprintf("%s  %s  [%s]",
				sched.DueDate, lot.FormatMoney(sched.Amount), status))

			if sched.Status == client.SchedulePaid {
				btn.Hide()
				return
			}
			btn.Show()
			id := sched.ID
			btn.OnTapped = func() {
				p.state.SetScheduleStatus(p.selected.ID, id, client.SchedulePaid)
			}
		},
	)

	p.files = widget.NewList(
		func() int {
			if p.selected == nil {
				return 0
			}
			return len(p.selected.Files)
		},
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if p.selected == nil || i >= len(p.selected.Files) {
				return
			}
			f := p.selected.Files[i]
			o.(*widget.Label).SetText(fmt.Sprintf("%s (%s)", f.Name, f.Date))
		},
	)

	attach := widget.NewButton("Adjuntar Documento", p.onAttachFile)

	p.profile = container.NewBorder(
		container.NewVBox(
			p.name, p.contact, p.lotInfo, p.balance,
			widget.NewSeparator(),
			widget.NewLabelWithStyle("Plan de Pagos", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		),
		container.NewVBox(
			widget.NewLabelWithStyle("Documentos", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			container.NewGridWrap(fyne.NewSize(400, 120), p.files),
			attach,
		),
		nil, nil,
		p.plan,
	)
	p.profile.Hide()
}

func (p *ClientsPanel) showProfile(c *client.Client) {
	p.selected = c
	p.name.SetText(c.Name)
	p.contact.SetText(fmt.Sprintf("%s · %s", c.Email, c.Phone))
	p.lotInfo.SetText(fmt.Sprintf("Zona %s, lote %s", c.Division, c.LotID))
	p.balance.SetText("Saldo pendiente: " + lot.FormatMoney(c.OutstandingBalance()))
	p.plan.Refresh()
	p.files.Refresh()
	p.profile.Show()
}

func (p *ClientsPanel) onAttachFile() {
	if p.selected == nil {
		return
	}
	dialogs.ShowPlanUpload(p.window, func(data []byte, mime string) {
		p.state.AddClientFile(p.selected.ID, client.File{
			ID:      uuid.NewString(),
			Name:    fmt.Sprintf("documento-%d", len(p.selected.Files)+1),
			Type:    mime,
			Content: division.EncodePlan(data, mime),
			Date:    time.Now().Format("2006-01-02"),
		})
	})
}

func (p *ClientsPanel) reload() {
	p.clients = p.state.Clients()
	p.list.Refresh()

	if p.selected != nil {
		if c := client.FindByID(p.clients, p.selected.ID); c != nil {
			p.showProfile(c)
		} else {
			p.selected = nil
			p.profile.Hide()
		}
	}
}
