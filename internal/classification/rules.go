package classification

import "github.com/Veraticus/contas-em-dia/internal/model"

// DefaultRules recognizes common Brazilian merchants and statement wording.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "Salário",
			Category: model.CategorySalary,
			Type:     model.TypeIncome,
			Regex:    `\b(SALARIO|SALÁRIO|PROVENTOS|FOLHA\s*(DE\s*)?PAGAMENTO|PAGTO\s*SAL)`,
			Priority: 100,
		},
		{
			Name:     "Investimentos",
			Category: model.CategoryInvestment,
			Regex:    `\b(RENDIMENTO|CDB|LCI|LCA|TESOURO|APLICACAO|APLICAÇÃO|RESGATE|DIVIDENDO)`,
			Priority: 95,
		},
		{
			Name:     "Moradia",
			Category: model.CategoryHousing,
			Type:     model.TypeExpense,
			Regex:    `\b(ALUGUEL|CONDOMINIO|CONDOMÍNIO|IPTU)\b`,
			Priority: 90,
		},
		{
			Name:     "Contas de consumo",
			Category: model.CategoryUtilities,
			Type:     model.TypeExpense,
			Regex:    `\b(ENEL|LIGHT|CEMIG|COPEL|CELESC|SABESP|COPASA|CEDAE|COMGAS|ENERGIA|AGUA|ÁGUA|VIVO|CLARO|TIM|OI|INTERNET)\b`,
			Priority: 85,
		},
		{
			Name:     "Saúde",
			Category: model.CategoryHealth,
			Type:     model.TypeExpense,
			Regex:    `\b(FARMACIA|FARMÁCIA|DROGARIA|DROGASIL|DROGA\s*RAIA|PAGUE\s*MENOS|HOSPITAL|CLINICA|CLÍNICA|LABORATORIO|UNIMED|AMIL)`,
			Priority: 80,
		},
		{
			Name:     "Transporte",
			Category: model.CategoryTransport,
			Type:     model.TypeExpense,
			Regex:    `\b(UBER|99\s*(APP|POP|TAXI)|CABIFY|POSTO|COMBUSTIVEL|COMBUSTÍVEL|SHELL|IPIRANGA|ESTACIONAMENTO|SEM\s*PARAR|METRO|METRÔ|BILHETE\s*UNICO)`,
			Priority: 75,
		},
		{
			Name:     "Lazer",
			Category: model.CategoryEntertainment,
			Type:     model.TypeExpense,
			Regex:    `\b(NETFLIX|SPOTIFY|DISNEY|PRIME\s*VIDEO|HBO|GLOBOPLAY|STEAM|CINEMA|INGRESSO)`,
			Priority: 70,
		},
		{
			Name:     "Alimentação",
			Category: model.CategoryFood,
			Type:     model.TypeExpense,
			Regex:    `\b(MERCADO|SUPERMERCADO|ATACADAO|ATACADÃO|ASSAI|ASSAÍ|CARREFOUR|PAO\s*DE\s*ACUCAR|PADARIA|IFOOD|RAPPI|RESTAURANTE|LANCHONETE|ACOUGUE|HORTIFRUTI)`,
			Priority: 60,
		},
	}
}
