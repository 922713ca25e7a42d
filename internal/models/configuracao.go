package models

// Valid values for Configuracao.Tipo.
const (
	ConfigCategoriaEntrada = "categoria_entrada"
	ConfigCategoriaSaida   = "categoria_saida"
	ConfigTipoPagamento    = "tipo_pagamento"
)

// Configuracao is a seeded lookup entry: an income/expense category name or a
// payment method name. Read-only reference data shared by all users.
type Configuracao struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Tipo string `gorm:"size:32;index;not null" json:"tipo"`
	Nome string `gorm:"size:128;uniqueIndex;not null" json:"nome"`
}

func (Configuracao) TableName() string { return "configuracoes" }
