package models

import "time"

// Valid values for Transacao.TipoLancamento.
const (
	TipoReceita = "receita"
	TipoDespesa = "despesa"
)

// Transacao is a single ledger entry (lançamento). Valor carries the sign:
// negative for despesa, positive for receita.
type Transacao struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	UserID         uint    `gorm:"index;not null" json:"-"`
	Data           string  `gorm:"size:10;index;not null" json:"data"` // YYYY-MM-DD
	Descricao      string  `gorm:"size:255;not null" json:"descricao"`
	Categoria      string  `gorm:"size:64;not null" json:"categoria"`
	TipoPagamento  string  `gorm:"size:64;not null" json:"tipo_pagamento"`
	Valor          float64 `gorm:"not null" json:"valor"`
	TipoLancamento string  `gorm:"size:16;index;not null" json:"tipo_lancamento"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Transacao) TableName() string { return "transacoes" }
