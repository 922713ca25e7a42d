package database

import (
	"fmt"

	"github.com/JRBelisario/livro-caixa-mei/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Transacao{},
		&models.Configuracao{},
		&models.Session{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// defaultConfiguracoes is the reference data loaded into an empty database:
// income categories, expense categories and payment methods.
var defaultConfiguracoes = []models.Configuracao{
	{Tipo: models.ConfigCategoriaEntrada, Nome: "Adiantamento de Processos"},
	{Tipo: models.ConfigCategoriaEntrada, Nome: "Recustos de Terceiros a Reembolsar"},
	{Tipo: models.ConfigCategoriaEntrada, Nome: "Honorários de Sucumbencia"},
	{Tipo: models.ConfigCategoriaEntrada, Nome: "Honorários Contratuais"},
	{Tipo: models.ConfigCategoriaEntrada, Nome: "Honorários de Consultoria"},
	{Tipo: models.ConfigCategoriaEntrada, Nome: "Honorários de Assessoria"},
	{Tipo: models.ConfigCategoriaEntrada, Nome: "Outras Receitas"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Salários e Encargos"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Aluguel de Escritório"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Manutenção de Escritório"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Equipamentos e Materiais"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Software e Licenças"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Consultoria e Assessoria"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Honorários de Advogados"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Honorários de Contabilidade"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Honorários de Marketing"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas Administrativas"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas de Viagem"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com Publicidade"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com Eventos"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com Treinamento"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com Tecnologia"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com Escritório"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com Telefonia"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com Internet"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com Energia"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com Água"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com Segurança"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com Limpeza"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com Manutenção"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com Transporte"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com Marketing Digital"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com Publicidade Online"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com Redes Sociais"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com SEO"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com Conteúdo"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com E-mail Marketing"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com Publicidade Impressa"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com Eventos e Feiras"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com Assessoria de Imprensa"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Despesas com Relações Públicas"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Simples Nacional"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Imposto de Renda"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "INSS Patronal"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "FGTS"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Outros Tributos"},
	{Tipo: models.ConfigCategoriaSaida, Nome: "Outros Custos"},
	{Tipo: models.ConfigTipoPagamento, Nome: "Dinheiro"},
	{Tipo: models.ConfigTipoPagamento, Nome: "Cartão de Crédito"},
	{Tipo: models.ConfigTipoPagamento, Nome: "Cartão de Débito"},
	{Tipo: models.ConfigTipoPagamento, Nome: "Pix"},
	{Tipo: models.ConfigTipoPagamento, Nome: "Transferência Bancária"},
	{Tipo: models.ConfigTipoPagamento, Nome: "Cheque"},
	{Tipo: models.ConfigTipoPagamento, Nome: "Boleto"},
}

// SeedConfiguracoes inserts the default categories and payment methods when
// the configuracoes table is empty. Running it twice is a no-op.
func SeedConfiguracoes(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&models.Configuracao{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count configuracoes: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	rows := make([]models.Configuracao, len(defaultConfiguracoes))
	copy(rows, defaultConfiguracoes)
	if err := db.Create(&rows).Error; err != nil {
		return 0, fmt.Errorf("seed configuracoes: %w", err)
	}
	return len(rows), nil
}
