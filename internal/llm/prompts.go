package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Veraticus/contas-em-dia/internal/model"
)

const adviceSystemPrompt = "Você é um assistente financeiro útil e inteligente."

// adviceRecord is the trimmed view of a transaction sent for advice.
type adviceRecord struct {
	Date     string `json:"date"`
	DueDate  string `json:"dueDate,omitempty"`
	Desc     string `json:"desc"`
	Amount   string `json:"amount"`
	Type     string `json:"type"`
	Category string `json:"cat"`
}

// advicePayload serializes the fields the advisor needs. The same bytes key
// the advice cache.
func advicePayload(txns []model.Transaction) ([]byte, error) {
	records := make([]adviceRecord, 0, len(txns))
	for _, t := range txns {
		r := adviceRecord{
			Date:     t.Date.String(),
			Desc:     t.Description,
			Amount:   t.Amount.StringFixed(2),
			Type:     string(t.Type),
			Category: t.Category,
		}
		if t.DueDate != nil {
			r.DueDate = t.DueDate.String()
		}
		records = append(records, r)
	}
	return json.Marshal(records)
}

func buildAdvicePrompt(payload []byte) string {
	return fmt.Sprintf(`Atue como um consultor financeiro pessoal especialista.
Analise os seguintes dados financeiros (transações) de um usuário brasileiro:
%s

Por favor, forneça:
1. Um breve resumo da saúde financeira atual.
2. Identifique a maior categoria de gastos.
3. Dê 3 dicas práticas e acionáveis para economizar dinheiro baseadas nesses dados específicos.
4. Use formatação Markdown (negrito, listas) para facilitar a leitura.
5. Mantenha o tom amigável, encorajador e direto. Responda em Português do Brasil.`, payload)
}

func buildBillPrompt(categories []string) string {
	return fmt.Sprintf(`Analise esta imagem de uma conta, boleto ou recibo fiscal brasileiro.
Extraia as informações necessárias para preencher os campos de uma nova transação financeira.
Identifique especificamente a data de emissão (date) e a data de vencimento (dueDate), se houver.
Escolha a categoria mais apropriada DESTA LISTA EXATA: [%s].

Responda somente com um objeto JSON com os campos:
- "description": o nome do estabelecimento ou beneficiário
- "amount": o valor total numérico
- "date": a data de emissão no formato YYYY-MM-DD
- "dueDate": a data de vencimento no formato YYYY-MM-DD, se houver
- "category": a categoria escolhida da lista fornecida`, strings.Join(categories, ", "))
}
