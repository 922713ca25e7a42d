package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/JRBelisario/livro-caixa-mei/internal/middleware"
	"github.com/JRBelisario/livro-caixa-mei/internal/models"
	"github.com/JRBelisario/livro-caixa-mei/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// reportHeaders is the fixed column set shared by the CSV, PDF and XLSX
// renderings of the ledger.
var reportHeaders = []string{"Data", "Descrição", "Categoria", "Meio de Pagamento", "Valor", "Tipo de Lançamento"}

// ReportHandler computes summaries and renders downloadable reports over the
// authenticated user's lançamentos.
type ReportHandler struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewReportHandler(db *gorm.DB, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{DB: db, Log: log}
}

// transacoesAsc loads every owned lançamento, oldest first, the order all
// reports use.
func (h *ReportHandler) transacoesAsc(userID uint) ([]models.Transacao, error) {
	var transacoes []models.Transacao
	err := h.DB.Where("user_id = ?", userID).
		Order("data ASC, id ASC").
		Find(&transacoes).Error
	return transacoes, err
}

// formatValorBR renders an amount with two decimals and a comma separator,
// e.g. -1234.5 -> "-1234,50".
func formatValorBR(valor float64) string {
	return strings.Replace(decimal.NewFromFloat(valor).StringFixed(2), ".", ",", 1)
}

// Resumo returns total income, total expense (as a positive magnitude) and
// the balance, all as fixed two-decimal strings.
func (h *ReportHandler) Resumo(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Não autenticado.")
		return
	}

	var transacoes []models.Transacao
	if err := h.DB.Where("user_id = ?", user.ID).Find(&transacoes).Error; err != nil {
		h.Log.Error().Err(err).Msg("falha ao calcular resumo financeiro")
		util.Error(c, http.StatusInternalServerError, "Erro ao carregar resumo financeiro.")
		return
	}

	receita := decimal.Zero
	despesa := decimal.Zero
	for _, t := range transacoes {
		valor := decimal.NewFromFloat(t.Valor)
		if t.TipoLancamento == models.TipoReceita {
			receita = receita.Add(valor)
		} else {
			despesa = despesa.Add(valor) // stored negative
		}
	}

	util.OK(c, http.StatusOK, gin.H{
		"totalReceita": receita.StringFixed(2),
		"totalDespesa": despesa.Abs().StringFixed(2),
		"saldoAtual":   receita.Add(despesa).StringFixed(2),
	})
}

// DadosGrafico returns the raw owned rows ordered by date ascending. The
// client buckets them for the chart.
func (h *ReportHandler) DadosGrafico(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Não autenticado.")
		return
	}

	transacoes, err := h.transacoesAsc(user.ID)
	if err != nil {
		h.Log.Error().Err(err).Msg("falha ao carregar dados do gráfico")
		util.Error(c, http.StatusInternalServerError, "Erro ao carregar dados para gráfico.")
		return
	}
	if transacoes == nil {
		transacoes = []models.Transacao{}
	}

	c.JSON(http.StatusOK, transacoes)
}

// ExportCSV streams the ledger as a semicolon-delimited CSV with pt-BR
// decimal commas. Descriptions are always quoted, embedded quotes doubled.
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Não autenticado.")
		return
	}

	transacoes, err := h.transacoesAsc(user.ID)
	if err != nil {
		h.Log.Error().Err(err).Msg("falha ao gerar relatório CSV")
		util.Error(c, http.StatusInternalServerError, "Erro ao gerar relatório CSV.")
		return
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(reportHeaders, ";"))
	sb.WriteByte('\n')
	for _, t := range transacoes {
		descricao := `"` + strings.ReplaceAll(t.Descricao, `"`, `""`) + `"`
		sb.WriteString(strings.Join([]string{
			t.Data,
			descricao,
			t.Categoria,
			t.TipoPagamento,
			formatValorBR(t.Valor),
			t.TipoLancamento,
		}, ";"))
		sb.WriteByte('\n')
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="relatorio_financeiro.csv"`)
	c.String(http.StatusOK, sb.String())
}

// ExportPDF renders the ledger as a paginated table with fixed column widths,
// repeating the header row after each page break.
func (h *ReportHandler) ExportPDF(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Não autenticado.")
		return
	}

	transacoes, err := h.transacoesAsc(user.ID)
	if err != nil {
		h.Log.Error().Err(err).Msg("falha ao gerar relatório PDF")
		util.Error(c, http.StatusInternalServerError, "Erro ao gerar relatório PDF.")
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	widths := []float64{22, 58, 30, 30, 25, 25}
	const rowHeight = 7.0

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		for i, title := range reportHeaders {
			pdf.CellFormat(widths[i], rowHeight, tr(title), "B", 0, "L", false, 0, "")
		}
		pdf.Ln(rowHeight)
		pdf.SetFont("Helvetica", "", 9)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Relatório Financeiro"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 8, tr("Data de Geração: ")+time.Now().Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottomMargin := pdf.GetMargins()

	for _, t := range transacoes {
		if pdf.GetY()+rowHeight > pageHeight-bottomMargin {
			pdf.AddPage()
			header()
		}
		cells := []string{
			t.Data,
			t.Descricao,
			t.Categoria,
			t.TipoPagamento,
			"R$ " + formatValorBR(t.Valor),
			t.TipoLancamento,
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], rowHeight, tr(cell), "", 0, "L", false, 0, "")
		}
		pdf.Ln(rowHeight)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="relatorio_financeiro.pdf"`)
	c.Status(http.StatusOK)

	if err := pdf.Output(c.Writer); err != nil {
		// headers are already out; all that is left is to log
		h.Log.Error().Err(err).Msg("falha ao escrever relatório PDF")
	}
}

// ExportXLSX renders the ledger as a spreadsheet with one sheet and fixed
// column widths.
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Não autenticado.")
		return
	}

	transacoes, err := h.transacoesAsc(user.ID)
	if err != nil {
		h.Log.Error().Err(err).Msg("falha ao gerar relatório XLSX")
		util.Error(c, http.StatusInternalServerError, "Erro ao gerar relatório XLSX.")
		return
	}

	f := excelize.NewFile()
	const sheetName = "Lançamentos"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Erro ao gerar relatório XLSX.")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, title := range reportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, title)
	}

	for idx, t := range transacoes {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), t.Data)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), t.Descricao)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), t.Categoria)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.TipoPagamento)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), t.Valor)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), t.TipoLancamento)
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 35)
	f.SetColWidth(sheetName, "C", "D", 22)
	f.SetColWidth(sheetName, "E", "E", 12)
	f.SetColWidth(sheetName, "F", "F", 16)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"relatorio_financeiro_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		h.Log.Error().Err(err).Msg("falha ao escrever relatório XLSX")
	}
}
