package handler

import (
	"encoding/csv"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/JRBelisario/livro-caixa-mei/internal/middleware"
	"github.com/JRBelisario/livro-caixa-mei/internal/models"
	"github.com/JRBelisario/livro-caixa-mei/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ImportarHandler ingests a bank-statement CSV in the export format and turns
// each valid row into an owned lançamento.
type ImportarHandler struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewImportarHandler(db *gorm.DB, log zerolog.Logger) *ImportarHandler {
	return &ImportarHandler{DB: db, Log: log}
}

// parseRow converts one CSV record into a lançamento. The record layout is
// the same as the CSV report: data;descricao;categoria;pagamento;valor;tipo.
func parseRow(record []string, userID uint) (models.Transacao, error) {
	if len(record) != len(reportHeaders) {
		return models.Transacao{}, fmt.Errorf("expected %d columns, got %d", len(reportHeaders), len(record))
	}

	data := strings.TrimSpace(record[0])
	descricao := strings.TrimSpace(record[1])
	categoria := strings.TrimSpace(record[2])
	tipoPagamento := strings.TrimSpace(record[3])
	valorStr := strings.TrimSpace(record[4])
	tipo := strings.TrimSpace(record[5])

	if descricao == "" || categoria == "" || tipoPagamento == "" {
		return models.Transacao{}, fmt.Errorf("empty required column")
	}
	if err := util.ValidateData(data); err != nil {
		return models.Transacao{}, err
	}
	if err := util.ValidateTipoLancamento(tipo); err != nil {
		return models.Transacao{}, err
	}

	valor, err := strconv.ParseFloat(strings.Replace(valorStr, ",", ".", 1), 64)
	if err != nil {
		return models.Transacao{}, fmt.Errorf("invalid valor %q: %w", valorStr, err)
	}
	if err := util.ValidateValor(math.Abs(valor)); err != nil {
		return models.Transacao{}, err
	}

	valor = math.Abs(valor)
	if tipo == models.TipoDespesa {
		valor = -valor
	}

	return models.Transacao{
		UserID:         userID,
		Data:           data,
		Descricao:      descricao,
		Categoria:      categoria,
		TipoPagamento:  tipoPagamento,
		Valor:          valor,
		TipoLancamento: tipo,
	}, nil
}

// Extrato imports the "arquivo" multipart upload. The header row is skipped
// when present; invalid rows are counted but do not abort the import.
func (h *ImportarHandler) Extrato(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Não autenticado.")
		return
	}

	fileHeader, err := c.FormFile("arquivo")
	if err != nil {
		util.Error(c, http.StatusBadRequest, "Arquivo de extrato é obrigatório.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.Log.Error().Err(err).Msg("falha ao abrir arquivo de extrato")
		util.Error(c, http.StatusInternalServerError, "Erro ao processar extrato.")
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		util.Error(c, http.StatusBadRequest, "Arquivo de extrato inválido. Use CSV separado por ponto e vírgula.")
		return
	}

	importados := 0
	ignorados := 0
	for i, record := range records {
		if i == 0 && len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "data") {
			continue // header row
		}

		t, err := parseRow(record, user.ID)
		if err != nil {
			ignorados++
			continue
		}
		if err := h.DB.Create(&t).Error; err != nil {
			h.Log.Error().Err(err).Msg("falha ao importar linha do extrato")
			ignorados++
			continue
		}
		importados++
	}

	util.OK(c, http.StatusOK, gin.H{
		"message":    fmt.Sprintf("Extrato importado: %d lançamentos adicionados, %d ignorados.", importados, ignorados),
		"importados": importados,
		"ignorados":  ignorados,
	})
}
