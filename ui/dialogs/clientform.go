package dialogs

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"terranova/internal/client"
)

// ShowClientForm opens the new-client dialog. The callback receives
// the created record.
func ShowClientForm(win fyne.Window, divisions []string, cb func(*client.Client)) {
	name := widget.NewEntry()
	email := widget.NewEntry()
	phone := widget.NewEntry()
	lotNumber := widget.NewEntry()
	lotNumber.SetPlaceHolder("L-101")

	divisionSel := widget.NewSelect(divisions, nil)
	if len(divisions) > 0 {
		divisionSel.SetSelected(divisions[0])
	}

	items := []*widget.FormItem{
		widget.NewFormItem("Nombre", name),
		widget.NewFormItem("Email", email),
		widget.NewFormItem("Teléfono", phone),
		widget.NewFormItem("Zona", divisionSel),
		widget.NewFormItem("Lote", lotNumber),
	}

	dialog.ShowForm("Nuevo Cliente", "Guardar", "Cancelar", items, func(ok bool) {
		if !ok {
			return
		}
		if name.Text == "" {
			dialog.ShowError(errors.New("el nombre es obligatorio"), win)
			return
		}
		cb(client.New(name.Text, email.Text, phone.Text, divisionSel.Selected, lotNumber.Text))
	}, win)
}
