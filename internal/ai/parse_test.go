package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONPlain(t *testing.T) {
	got := extractJSON(`{"summary":"ok","advice":"hold","kpis":[]}`)
	assert.Equal(t, `{"summary":"ok","advice":"hold","kpis":[]}`, got)
}

func TestExtractJSONMarkdownFence(t *testing.T) {
	raw := "Claro, aquí está el análisis:\n```json\n{\"summary\":\"liquidez estable\"}\n```\nSaludos."
	assert.Equal(t, `{"summary":"liquidez estable"}`, extractJSON(raw))
}

func TestExtractJSONBareFence(t *testing.T) {
	raw := "```\n{\"advice\":\"reinvertir\"}\n```"
	assert.Equal(t, `{"advice":"reinvertir"}`, extractJSON(raw))
}

func TestExtractJSONNoObject(t *testing.T) {
	assert.Empty(t, extractJSON("no hay datos estructurados"))
	assert.Empty(t, extractJSON("}{"))
}

func TestExtractJSONMalformed(t *testing.T) {
	assert.Empty(t, extractJSON(`{"summary": "sin cierre`))
}

func TestParseAnalysis(t *testing.T) {
	raw := "```json\n" + `{
		"summary": "Flujo de caja positivo con riesgo moderado.",
		"advice": "Priorizar la cobranza de cuotas atrasadas.",
		"kpis": [{"label": "Liquidez", "value": "$42,000"}]
	}` + "\n```"

	a := parseAnalysis(raw)
	require.NotNil(t, a)
	assert.Equal(t, "Flujo de caja positivo con riesgo moderado.", a.Summary)
	require.Len(t, a.KPIs, 1)
	assert.Equal(t, "Liquidez", a.KPIs[0].Label)
	assert.Equal(t, "$42,000", a.KPIs[0].Value)
}

func TestParseAnalysisRejectsEmptyObject(t *testing.T) {
	assert.Nil(t, parseAnalysis("{}"))
	assert.Nil(t, parseAnalysis("texto sin estructura"))
}
