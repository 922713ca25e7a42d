package handler

import (
	"errors"
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

// TransacaoHandler implements the per-user lançamento CRUD.
type TransacaoHandler struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewTransacaoHandler(db *gorm.DB, log zerolog.Logger) *TransacaoHandler {
	return &TransacaoHandler{DB: db, Log: log}
}

// lancamentoReq is the request body for create and update. Valor is a pointer
// so a missing field can be told apart from zero.
type lancamentoReq struct {
	Data           string   `json:"data"`
	Descricao      string   `json:"descricao"`
	TipoLancamento string   `json:"tipoLancamento"`
	Categoria      string   `json:"categoria"`
	TipoPagamento  string   `json:"tipoPagamento"`
	Valor          *float64 `json:"valor"`
}

// validate normalizes the request fields and returns the signed amount to
// store: negative for despesa, positive for receita.
func (r *lancamentoReq) validate() (float64, string, bool) {
	r.Descricao = strings.TrimSpace(r.Descricao)
	r.Categoria = strings.TrimSpace(r.Categoria)
	r.TipoPagamento = strings.TrimSpace(r.TipoPagamento)

	if r.Data == "" || r.Descricao == "" || r.TipoLancamento == "" ||
		r.Categoria == "" || r.TipoPagamento == "" || r.Valor == nil {
		return 0, "Todos os campos são obrigatórios.", false
	}
	if err := util.ValidateTipoLancamento(r.TipoLancamento); err != nil {
		return 0, "Tipo de lançamento inválido. Use 'receita' ou 'despesa'.", false
	}
	if err := util.ValidateValor(*r.Valor); err != nil {
		return 0, "Valor inválido. Use um número positivo.", false
	}
	if err := util.ValidateData(r.Data); err != nil {
		return 0, "Data inválida. Use o formato AAAA-MM-DD.", false
	}

	valor := math.Abs(*r.Valor)
	if r.TipoLancamento == models.TipoDespesa {
		valor = -valor
	}
	return valor, "", true
}

// Create adds a new lançamento owned by the authenticated user.
func (h *TransacaoHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Não autenticado.")
		return
	}

	var req lancamentoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Valor inválido. Use um número positivo.")
		return
	}

	valor, msg, ok := req.validate()
	if !ok {
		util.Error(c, http.StatusBadRequest, msg)
		return
	}

	t := models.Transacao{
		UserID:         user.ID,
		Data:           req.Data,
		Descricao:      req.Descricao,
		Categoria:      req.Categoria,
		TipoPagamento:  req.TipoPagamento,
		Valor:          valor,
		TipoLancamento: req.TipoLancamento,
	}
	if err := h.DB.Create(&t).Error; err != nil {
		h.Log.Error().Err(err).Msg("falha ao adicionar lançamento")
		util.Error(c, http.StatusInternalServerError, "Erro interno ao adicionar lançamento.")
		return
	}

	util.OK(c, http.StatusCreated, gin.H{
		"message": "Lançamento adicionado com sucesso!",
		"id":      t.ID,
	})
}

// Update fully replaces the mutable fields of an owned lançamento.
func (h *TransacaoHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Não autenticado.")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "ID inválido.")
		return
	}

	var req lancamentoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Valor inválido. Use um número positivo.")
		return
	}

	valor, msg, ok := req.validate()
	if !ok {
		util.Error(c, http.StatusBadRequest, msg)
		return
	}

	var t models.Transacao
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "Lançamento não encontrado para atualização.")
		} else {
			h.Log.Error().Err(err).Msg("falha ao consultar lançamento")
			util.Error(c, http.StatusInternalServerError, "Erro interno ao atualizar lançamento.")
		}
		return
	}

	t.Data = req.Data
	t.Descricao = req.Descricao
	t.Categoria = req.Categoria
	t.TipoPagamento = req.TipoPagamento
	t.Valor = valor
	t.TipoLancamento = req.TipoLancamento

	if err := h.DB.Save(&t).Error; err != nil {
		h.Log.Error().Err(err).Msg("falha ao atualizar lançamento")
		util.Error(c, http.StatusInternalServerError, "Erro interno ao atualizar lançamento.")
		return
	}

	util.OK(c, http.StatusOK, gin.H{"message": "Lançamento atualizado com sucesso!"})
}

// Delete removes an owned lançamento.
func (h *TransacaoHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Não autenticado.")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "ID inválido.")
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Transacao{})
	if res.Error != nil {
		h.Log.Error().Err(res.Error).Msg("falha ao excluir lançamento")
		util.Error(c, http.StatusInternalServerError, "Erro interno ao excluir lançamento.")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, "Lançamento não encontrado para exclusão.")
		return
	}

	util.OK(c, http.StatusOK, gin.H{"message": "Lançamento excluído com sucesso!"})
}

// List returns all owned lançamentos, newest first.
func (h *TransacaoHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Não autenticado.")
		return
	}

	var transacoes []models.Transacao
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("data DESC, id DESC").
		Find(&transacoes).Error; err != nil {
		h.Log.Error().Err(err).Msg("falha ao listar lançamentos")
		util.Error(c, http.StatusInternalServerError, "Erro ao carregar lançamentos.")
		return
	}

	util.OK(c, http.StatusOK, gin.H{"data": transacoes})
}
