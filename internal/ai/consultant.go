// Package ai wraps the Gemini API behind the in-app real estate
// consultant: portfolio analysis over the payment ledger and an
// interactive chat grounded on the client portfolio.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"terranova/internal/client"
	"terranova/internal/payment"
)

const systemInstruction = `Eres el Consultor Senior de Inteligencia Inmobiliaria y Analista Financiero.
Tu especialidad es el análisis de flujos de caja, detección de patrones de morosidad y optimización de carteras de preventa.
Tienes acceso a datos de lotificaciones dinámicas.
Cuando analices pagos, proporciona:
1. Resumen ejecutivo de liquidez.
2. Identificación de riesgos (morosidad proyectada).
3. Sugerencias estratégicas para acelerar la cobranza.
Mantén siempre un tono profesional, ejecutivo y basado en datos reales de la operación.`

// Canned replies for the degraded paths of the chat.
const (
	fallbackEmptyReply = "Disculpa, no pude procesar la respuesta en este momento."
	fallbackChatError  = "Error en la conexión con el núcleo de inteligencia."
)

// ErrNoAPIKey is returned when the consultant is constructed without a key.
var ErrNoAPIKey = errors.New("ai: missing API key")

// Role of a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one turn of the consultant chat.
type Message struct {
	Role Role
	Text string
}

// KPI is one headline metric of an analysis.
type KPI struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Analysis is the structured result of a payment portfolio review.
type Analysis struct {
	Summary string `json:"summary"`
	Advice  string `json:"advice"`
	KPIs    []KPI  `json:"kpis"`
}

// Consultant talks to Gemini on behalf of the dashboard.
type Consultant struct {
	client   *genai.Client
	analysis *genai.GenerativeModel
	chat     *genai.GenerativeModel
}

// NewConsultant creates the Gemini client and the two model handles,
// one tuned for structured analysis and one for conversation.
func NewConsultant(ctx context.Context, apiKey, model string) (*Consultant, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	gc, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("ai: create client: %w", err)
	}

	analysis := gc.GenerativeModel(model)
	analysis.SystemInstruction = genai.NewUserContent(genai.Text(systemInstruction))
	analysis.ResponseMIMEType = "application/json"
	analysis.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {Type: genai.TypeString, Description: "Resumen ejecutivo de la situación actual."},
			"advice":  {Type: genai.TypeString, Description: "Consejo estratégico basado en el análisis."},
			"kpis": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"label": {Type: genai.TypeString},
						"value": {Type: genai.TypeString},
					},
					Required: []string{"label", "value"},
				},
			},
		},
		Required: []string{"summary", "advice", "kpis"},
	}

	chat := gc.GenerativeModel(model)
	chat.SetTemperature(0.8)
	chat.SetTopP(0.9)

	return &Consultant{client: gc, analysis: analysis, chat: chat}, nil
}

// Close releases the underlying API client.
func (c *Consultant) Close() error {
	return c.client.Close()
}

// AnalyzePayments runs a structured review of the payment ledger.
// Returns nil (no error) when the model answered with something that is
// not a parseable analysis, matching the soft-failure UI contract.
func (c *Consultant) AnalyzePayments(ctx context.Context, payments []payment.Payment) (*Analysis, error) {
	blob, err := json.Marshal(payments)
	if err != nil {
		return nil, fmt.Errorf("ai: encode payments: %w", err)
	}

	prompt := fmt.Sprintf(`Realiza un análisis profundo del siguiente conjunto de transacciones: %s.
Detecta cuellos de botella en la cobranza y sugiere estrategias de reinversión.`, blob)

	resp, err := c.analysis.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("ai: analysis request: %w", err)
	}

	analysis := parseAnalysis(responseText(resp))
	if analysis == nil {
		log.Warn().Msg("analysis response was not parseable, dropping it")
	}
	return analysis, nil
}

// Chat sends the conversation so far and returns the model's reply. It
// never returns an error to the caller; failures surface as the canned
// Spanish fallback strings the panel renders verbatim.
func (c *Consultant) Chat(ctx context.Context, history []Message, clients []*client.Client) string {
	if len(history) == 0 || history[len(history)-1].Role != RoleUser {
		return fallbackEmptyReply
	}

	c.chat.SystemInstruction = genai.NewUserContent(
		genai.Text(systemInstruction + "\n" + portfolioContext(clients)))

	session := c.chat.StartChat()
	for _, m := range history[:len(history)-1] {
		session.History = append(session.History, &genai.Content{
			Role:  string(m.Role),
			Parts: []genai.Part{genai.Text(m.Text)},
		})
	}

	resp, err := session.SendMessage(ctx, genai.Text(history[len(history)-1].Text))
	if err != nil {
		log.Error().Err(err).Msg("chat request failed")
		return fallbackChatError
	}

	if text := responseText(resp); text != "" {
		return text
	}
	return fallbackEmptyReply
}

// portfolioContext summarizes the client portfolio for the system
// prompt so the model can answer with real numbers.
func portfolioContext(clients []*client.Client) string {
	total := decimal.Zero
	for _, c := range clients {
		for _, p := range c.Payments {
			total = total.Add(p.Amount)
		}
	}
	return fmt.Sprintf("Hay %d clientes en sistema con un valor de cartera total de $%s.",
		len(clients), total.StringFixed(0))
}

// responseText flattens the first candidate's text parts.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	return out
}
