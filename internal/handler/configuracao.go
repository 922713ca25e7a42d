package handler

import (
	"net/http"

	"github.com/JRBelisario/livro-caixa-mei/internal/models"
	"github.com/JRBelisario/livro-caixa-mei/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ConfiguracaoHandler serves the seeded category and payment-method lists.
type ConfiguracaoHandler struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewConfiguracaoHandler(db *gorm.DB, log zerolog.Logger) *ConfiguracaoHandler {
	return &ConfiguracaoHandler{DB: db, Log: log}
}

func (h *ConfiguracaoHandler) nomesPorTipo(tipo string) ([]string, error) {
	nomes := []string{} // keep empty lists as [] in JSON, not null
	err := h.DB.Model(&models.Configuracao{}).
		Where("tipo = ?", tipo).
		Order("id ASC").
		Pluck("nome", &nomes).Error
	return nomes, err
}

// List returns every lookup list in one response:
// income and expense categories plus payment methods.
func (h *ConfiguracaoHandler) List(c *gin.Context) {
	income, err := h.nomesPorTipo(models.ConfigCategoriaEntrada)
	if err != nil {
		h.Log.Error().Err(err).Msg("falha ao carregar categorias de entrada")
		util.Error(c, http.StatusInternalServerError, "Erro ao carregar categorias de entrada.")
		return
	}

	expense, err := h.nomesPorTipo(models.ConfigCategoriaSaida)
	if err != nil {
		h.Log.Error().Err(err).Msg("falha ao carregar categorias de saída")
		util.Error(c, http.StatusInternalServerError, "Erro ao carregar categorias de saída.")
		return
	}

	payments, err := h.nomesPorTipo(models.ConfigTipoPagamento)
	if err != nil {
		h.Log.Error().Err(err).Msg("falha ao carregar tipos de pagamento")
		util.Error(c, http.StatusInternalServerError, "Erro ao carregar tipos de pagamento.")
		return
	}

	util.OK(c, http.StatusOK, gin.H{
		"income":   income,
		"expense":  expense,
		"payments": payments,
	})
}
