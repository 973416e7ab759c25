// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"terranova/internal/ai"
	"terranova/internal/app"
	"terranova/internal/version"
	"terranova/ui/panels"
	"terranova/ui/prefs"
)

// Section names of the sidebar, in display order.
var sections = []string{
	"Panel General",
	"Zonas",
	"Clientes",
	"Pagos",
	"Consultor IA",
	"Perfil",
}

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	dashboard  *panels.Dashboard
	division   *panels.DivisionPanel
	clients    *panels.ClientsPanel
	payments   *panels.PaymentsPanel
	consultant *panels.ConsultantPanel
	profile    *panels.ProfilePanel

	content   *fyne.Container
	statusBar *widget.Label
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State, consultant *ai.Consultant, pr *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Terranova")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  pr,
	}

	mw.setupUI(consultant)
	mw.setupMenus()
	mw.setupEventHandlers()

	if last := pr.String(prefs.KeyLastDivision, ""); last != "" {
		mw.division.SetDivision(last)
	}

	width := float32(pr.Float(prefs.KeyWindowWidth, 1280))
	height := float32(pr.Float(prefs.KeyWindowHeight, 800))
	win.Resize(fyne.NewSize(width, height))

	return mw
}

func (mw *MainWindow) setupUI(consultant *ai.Consultant) {
	mw.dashboard = panels.NewDashboard(mw.state)
	mw.division = panels.NewDivisionPanel(mw.state, mw.Window)
	mw.clients = panels.NewClientsPanel(mw.state, mw.Window)
	mw.payments = panels.NewPaymentsPanel(mw.state)
	mw.consultant = panels.NewConsultantPanel(mw.state, consultant)
	mw.profile = panels.NewProfilePanel(mw.state, mw.Window)

	mw.statusBar = widget.NewLabel("Listo")
	mw.content = container.NewStack(mw.dashboard.Container())

	nav := widget.NewList(
		func() int { return len(sections) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(sections[i])
		},
	)
	nav.OnSelected = func(i widget.ListItemID) {
		mw.showSection(sections[i])
	}

	split := container.NewHSplit(nav, mw.content)
	split.SetOffset(0.16)

	mw.SetContent(container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil, nil,
		split,
	))

	if last := mw.prefs.String(prefs.KeyLastSection, ""); last != "" {
		for i, name := range sections {
			if name == last {
				nav.Select(i)
				return
			}
		}
	}
	nav.Select(0)
}

func (mw *MainWindow) showSection(name string) {
	var panel fyne.CanvasObject
	switch name {
	case "Zonas":
		panel = mw.division.Container()
	case "Clientes":
		panel = mw.clients.Container()
	case "Pagos":
		panel = mw.payments.Container()
	case "Consultor IA":
		panel = mw.consultant.Container()
	case "Perfil":
		panel = mw.profile.Container()
	default:
		panel = mw.dashboard.Container()
	}

	mw.content.Objects = []fyne.CanvasObject{panel}
	mw.content.Refresh()
	mw.prefs.SetString(prefs.KeyLastSection, name)
	mw.updateStatus(name)
}

func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("Archivo",
		fyne.NewMenuItem("Guardar", func() {
			mw.state.Save()
			mw.updateStatus("Datos guardados")
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Salir", func() { mw.app.Quit() }),
	)

	helpMenu := fyne.NewMenu("Ayuda",
		fyne.NewMenuItem("Acerca de", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}

func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventLotsChanged, func(data interface{}) {
		if name, ok := data.(string); ok {
			mw.updateStatus("Zona actualizada: " + name)
		}
	})
	mw.state.On(app.EventClientsChanged, func(interface{}) {
		mw.updateStatus("Cartera de clientes actualizada")
	})
	mw.state.On(app.EventPaymentsChanged, func(interface{}) {
		mw.updateStatus("Pagos actualizados")
	})
}

func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// Persist writes window preferences, called on shutdown.
func (mw *MainWindow) Persist() {
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
	mw.prefs.SetString(prefs.KeyLastDivision, mw.division.Division())
	if err := mw.prefs.Save(); err != nil {
		mw.updateStatus("No se pudieron guardar las preferencias")
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("Acerca de Terranova",
		fmt.Sprintf("Terranova v%s\n\n"+
			"Panel administrativo de lotificaciones.\n\n"+
			"Compilado: %s\nCommit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
