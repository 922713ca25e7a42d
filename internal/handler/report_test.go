package handler_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/JRBelisario/livro-caixa-mei/internal/database"
	"github.com/JRBelisario/livro-caixa-mei/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumoFinanceiro(t *testing.T) {
	r, _ := newTestServer(t)
	ck := loginAs(t, r, "a@x.com", "secret1")

	w := doJSON(t, r, http.MethodGet, "/api/resumo-financeiro", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "0.00", body["totalReceita"])
	assert.Equal(t, "0.00", body["totalDespesa"])
	assert.Equal(t, "0.00", body["saldoAtual"])

	criarLancamento(t, r, ck, lancamento(models.TipoDespesa, 100))
	criarLancamento(t, r, ck, lancamento(models.TipoReceita, 250.5))
	criarLancamento(t, r, ck, lancamento(models.TipoDespesa, 0.1))
	criarLancamento(t, r, ck, lancamento(models.TipoDespesa, 0.2))

	w = doJSON(t, r, http.MethodGet, "/api/resumo-financeiro", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, "250.50", body["totalReceita"])
	assert.Equal(t, "100.30", body["totalDespesa"])
	assert.Equal(t, "150.20", body["saldoAtual"])
}

func TestDadosGrafico(t *testing.T) {
	r, _ := newTestServer(t)
	ck := loginAs(t, r, "a@x.com", "secret1")

	newer := lancamento(models.TipoReceita, 10)
	newer["data"] = "2024-03-01"
	older := lancamento(models.TipoDespesa, 5)
	older["data"] = "2024-01-15"
	criarLancamento(t, r, ck, newer)
	criarLancamento(t, r, ck, older)

	w := doJSON(t, r, http.MethodGet, "/api/dados-grafico", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)

	// a raw array, oldest first
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-15", rows[0]["data"])
	assert.Equal(t, "2024-03-01", rows[1]["data"])
}

func TestExportCSV(t *testing.T) {
	r, _ := newTestServer(t)
	ck := loginAs(t, r, "a@x.com", "secret1")

	tx := lancamento(models.TipoDespesa, 1234.5)
	tx["descricao"] = `Compra "urgente" de material`
	criarLancamento(t, r, ck, tx)
	criarLancamento(t, r, ck, lancamento(models.TipoReceita, 10))

	w := doJSON(t, r, http.MethodGet, "/api/reports/csv", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "relatorio_financeiro.csv")

	lines := strings.Split(strings.TrimRight(w.Body.String(), "\n"), "\n")
	require.Len(t, lines, 3, "header plus one line per lançamento")
	assert.Equal(t, "Data;Descrição;Categoria;Meio de Pagamento;Valor;Tipo de Lançamento", lines[0])

	// semicolon separator, comma decimals, doubled embedded quotes
	assert.Contains(t, lines[1], `"Compra ""urgente"" de material"`)
	assert.Contains(t, lines[1], ";-1234,50;")
	assert.Contains(t, lines[2], ";10,00;")
}

func TestExportPDF(t *testing.T) {
	r, _ := newTestServer(t)
	ck := loginAs(t, r, "a@x.com", "secret1")
	criarLancamento(t, r, ck, lancamento(models.TipoDespesa, 100))

	w := doJSON(t, r, http.MethodGet, "/api/reports/pdf", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "relatorio_financeiro.pdf")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"), "body must be a PDF document")
}

func TestExportXLSX(t *testing.T) {
	r, _ := newTestServer(t)
	ck := loginAs(t, r, "a@x.com", "secret1")
	criarLancamento(t, r, ck, lancamento(models.TipoReceita, 100))

	w := doJSON(t, r, http.MethodGet, "/api/reports/xlsx", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, w.Body.Len())
}

func TestReportsAreScopedToUser(t *testing.T) {
	r, _ := newTestServer(t)
	ckA := loginAs(t, r, "a@x.com", "secret1")
	ckB := loginAs(t, r, "b@x.com", "secret2")

	criarLancamento(t, r, ckA, lancamento(models.TipoReceita, 500))

	w := doJSON(t, r, http.MethodGet, "/api/resumo-financeiro", nil, ckB)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0.00", decodeBody(t, w)["totalReceita"])

	w = doJSON(t, r, http.MethodGet, "/api/reports/csv", nil, ckB)
	require.Equal(t, http.StatusOK, w.Code)
	lines := strings.Split(strings.TrimRight(w.Body.String(), "\n"), "\n")
	assert.Len(t, lines, 1, "only the header row for a user without lançamentos")
}

func TestConfiguracoes(t *testing.T) {
	r, db := newTestServer(t)
	_, err := database.SeedConfiguracoes(db)
	require.NoError(t, err)

	// public route, no session required
	w := doJSON(t, r, http.MethodGet, "/api/configuracoes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["income"], 7)
	assert.Len(t, body["expense"], 40)
	assert.Len(t, body["payments"], 7)
	assert.Contains(t, body["payments"], "Pix")
}
