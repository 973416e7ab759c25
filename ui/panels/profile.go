package panels

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"

	"terranova/internal/app"
	"terranova/internal/lot"
	"terranova/internal/user"
	"terranova/ui/dialogs"
)

// ProfilePanel edits the operator profile and its document list.
type ProfilePanel struct {
	state  *app.State
	window fyne.Window

	name  *widget.Entry
	role  *widget.Entry
	email *widget.Entry
	goal  *widget.Entry
	files *widget.List

	current user.Profile

	root fyne.CanvasObject
}

// NewProfilePanel builds the profile panel.
func NewProfilePanel(state *app.State, window fyne.Window) *ProfilePanel {
	p := &ProfilePanel{
		state:  state,
		window: window,
		name:   widget.NewEntry(),
		role:   widget.NewEntry(),
		email:  widget.NewEntry(),
		goal:   widget.NewEntry(),
	}

	p.files = widget.NewList(
		func() int { return len(p.current.Files) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= len(p.current.Files) {
				return
			}
			f := p.current.Files[i]
			o.(*widget.Label).SetText(fmt.Sprintf("%s · %s · %s", f.Name, f.Size, f.UploadDate))
		},
	)

	save := widget.NewButton("Guardar Perfil", p.onSave)
	attach := widget.NewButton("Subir Documento", p.onAttach)

	form := widget.NewForm(
		widget.NewFormItem("Nombre", p.name),
		widget.NewFormItem("Puesto", p.role),
		widget.NewFormItem("Email", p.email),
		widget.NewFormItem("Meta de pagos", p.goal),
	)

	p.root = container.NewBorder(
		container.NewVBox(
			widget.NewLabelWithStyle("Perfil", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			form,
			container.NewHBox(save, attach),
			widget.NewSeparator(),
			widget.NewLabelWithStyle("Documentos", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		),
		nil, nil, nil,
		p.files,
	)

	refresh := func(interface{}) { p.reload() }
	state.On(app.EventSnapshotLoaded, refresh)
	state.On(app.EventProfileChanged, refresh)

	p.reload()
	return p
}

// Container returns the panel root for embedding.
func (p *ProfilePanel) Container() fyne.CanvasObject {
	return p.root
}

func (p *ProfilePanel) reload() {
	p.current = p.state.Profile()
	p.name.SetText(p.current.Name)
	p.role.SetText(p.current.Role)
	p.email.SetText(p.current.Email)
	p.goal.SetText(lot.FormatMoney(p.current.PersonalPaymentGoal))
	p.files.Refresh()
}

func (p *ProfilePanel) onSave() {
	updated := p.current
	updated.Name = p.name.Text
	updated.Role = p.role.Text
	updated.Email = p.email.Text
	if goal, ok := parseMoney(p.goal.Text); ok {
		updated.PersonalPaymentGoal = goal
	}
	p.state.SetProfile(updated)
}

func (p *ProfilePanel) onAttach() {
	dialogs.ShowPlanUpload(p.window, func(data []byte, mime string) {
		updated := p.current
		updated.Files = append([]user.File{{
			ID:         uuid.NewString(),
			Name:       fmt.Sprintf("documento-%d", len(updated.Files)+1),
			Type:       mime,
			Size:       fmt.Sprintf("%.1f KB", float64(len(data))/1024),
			UploadDate: time.Now().Format("2006-01-02"),
		}}, updated.Files...)
		p.state.SetProfile(updated)
	})
}
