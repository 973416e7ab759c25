package panels

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"terranova/internal/ai"
	"terranova/internal/app"
)

const consultantTimeout = 60 * time.Second

// ConsultantPanel is the AI consultant: a chat over the portfolio plus
// a one-shot payment analysis.
type ConsultantPanel struct {
	state      *app.State
	consultant *ai.Consultant

	history []ai.Message
	waiting bool

	// generation guards against stale replies: clearing the chat bumps
	// it, and replies from an older generation are dropped.
	generation int

	transcript *widget.List
	input      *widget.Entry
	send       *widget.Button
	analysis   *widget.Label

	root fyne.CanvasObject
}

// NewConsultantPanel builds the consultant panel. consultant may be nil
// when no API key is configured; the panel then shows a notice.
func NewConsultantPanel(state *app.State, consultant *ai.Consultant) *ConsultantPanel {
	p := &ConsultantPanel{
		state:      state,
		consultant: consultant,
		analysis:   widget.NewLabel(""),
	}
	p.analysis.Wrapping = fyne.TextWrapWord

	p.transcript = widget.NewList(
		func() int { return len(p.history) },
		func() fyne.CanvasObject {
			l := widget.NewLabel("")
			l.Wrapping = fyne.TextWrapWord
			return l
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= len(p.history) {
				return
			}
			m := p.history[i]
			who := "Tú"
			if m.Role == ai.RoleModel {
				who = "Consultor"
			}
			o.(*widget.Label).SetText(fmt.Sprintf("%s: %s", who, m.Text))
		},
	)

	p.input = widget.NewEntry()
	p.input.SetPlaceHolder("Pregunta al consultor…")
	p.input.OnSubmitted = func(string) { p.onSend() }
	p.send = widget.NewButton("Enviar", p.onSend)
	clear := widget.NewButton("Limpiar", p.onClear)
	analyze := widget.NewButton("Analizar Pagos", p.onAnalyze)

	if consultant == nil {
		notice := widget.NewLabel("Configura GEMINI_API_KEY para habilitar al consultor.")
		p.root = container.NewCenter(notice)
		return p
	}

	p.root = container.NewBorder(
		container.NewVBox(
			widget.NewLabelWithStyle("Consultor Terranova", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			container.NewHBox(analyze, clear),
			p.analysis,
			widget.NewSeparator(),
		),
		container.NewBorder(nil, nil, nil, p.send, p.input),
		nil, nil,
		p.transcript,
	)
	return p
}

// Container returns the panel root for embedding.
func (p *ConsultantPanel) Container() fyne.CanvasObject {
	return p.root
}

func (p *ConsultantPanel) onSend() {
	text := p.input.Text
	if text == "" || p.waiting || p.consultant == nil {
		return
	}

	p.input.SetText("")
	p.history = append(p.history, ai.Message{Role: ai.RoleUser, Text: text})
	p.transcript.Refresh()
	p.waiting = true
	p.send.Disable()

	gen := p.generation
	history := append([]ai.Message(nil), p.history...)
	clients := p.state.Clients()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), consultantTimeout)
		defer cancel()
		reply := p.consultant.Chat(ctx, history, clients)

		p.waiting = false
		p.send.Enable()
		if gen != p.generation {
			return
		}
		p.history = append(p.history, ai.Message{Role: ai.RoleModel, Text: reply})
		p.transcript.Refresh()
		p.transcript.ScrollToBottom()
	}()
}

func (p *ConsultantPanel) onClear() {
	p.generation++
	p.history = nil
	p.transcript.Refresh()
}

func (p *ConsultantPanel) onAnalyze() {
	if p.consultant == nil || p.waiting {
		return
	}

	p.analysis.SetText("Analizando la cartera…")
	payments := p.state.PersonalPayments()
	gen := p.generation

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), consultantTimeout)
		defer cancel()
		result, err := p.consultant.AnalyzePayments(ctx, payments)

		if gen != p.generation {
			return
		}
		if err != nil || result == nil {
			p.analysis.SetText("No se pudo completar el análisis.")
			return
		}

		text := result.Summary + "\n\n" + result.Advice
		for _, kpi := range result.KPIs {
			text += fmt.Sprintf("\n%s: %s", kpi.Label, kpi.Value)
		}
		p.analysis.SetText(text)
	}()
}
