package util

import (
	"math"
	"testing"
)

func TestValidateValor(t *testing.T) {
	valid := []float64{0.01, 1, 1234.56, 9_999_999}
	for _, v := range valid {
		if err := ValidateValor(v); err != nil {
			t.Errorf("ValidateValor(%v) = %v, want nil", v, err)
		}
	}

	invalid := []float64{0, -1, -0.01, 10_000_000, math.NaN(), math.Inf(1)}
	for _, v := range invalid {
		if err := ValidateValor(v); err == nil {
			t.Errorf("ValidateValor(%v) = nil, want error", v)
		}
	}
}

func TestValidateData(t *testing.T) {
	valid := []string{"2024-01-01", "1999-12-31", "2026-02-28"}
	for _, d := range valid {
		if err := ValidateData(d); err != nil {
			t.Errorf("ValidateData(%q) = %v, want nil", d, err)
		}
	}

	invalid := []string{"", "01/01/2024", "2024-13-01", "2024-1-1", "hoje"}
	for _, d := range invalid {
		if err := ValidateData(d); err == nil {
			t.Errorf("ValidateData(%q) = nil, want error", d)
		}
	}
}

func TestValidateTipoLancamento(t *testing.T) {
	if err := ValidateTipoLancamento("receita"); err != nil {
		t.Errorf("receita should be valid: %v", err)
	}
	if err := ValidateTipoLancamento("despesa"); err != nil {
		t.Errorf("despesa should be valid: %v", err)
	}
	for _, tipo := range []string{"", "investimento", "RECEITA"} {
		if err := ValidateTipoLancamento(tipo); err == nil {
			t.Errorf("ValidateTipoLancamento(%q) = nil, want error", tipo)
		}
	}
}
