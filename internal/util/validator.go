package util

import (
	"fmt"
	"math"
	"time"

	"github.com/JRBelisario/livro-caixa-mei/internal/models"
)

// ValidateValor checks that a submitted amount is a positive finite number
// within a sane upper bound.
func ValidateValor(valor float64) error {
	if math.IsNaN(valor) || math.IsInf(valor, 0) {
		return fmt.Errorf("valor is not a number")
	}
	if valor <= 0 {
		return fmt.Errorf("valor must be positive, got %f", valor)
	}
	if valor >= 10_000_000 {
		return fmt.Errorf("valor too large, got %f", valor)
	}
	return nil
}

// ValidateData checks the date format (must be YYYY-MM-DD).
func ValidateData(data string) error {
	if data == "" {
		return fmt.Errorf("data is empty")
	}
	if _, err := time.Parse("2006-01-02", data); err != nil {
		return fmt.Errorf("invalid data format: %w", err)
	}
	return nil
}

// ValidateTipoLancamento checks the transaction kind tag.
func ValidateTipoLancamento(tipo string) error {
	if tipo != models.TipoReceita && tipo != models.TipoDespesa {
		return fmt.Errorf("invalid tipo_lancamento: %q", tipo)
	}
	return nil
}
