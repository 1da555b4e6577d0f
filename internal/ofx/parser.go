// Package ofx reads OFX/QFX bank and credit card statements into
// transactions ready for import.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/Veraticus/contas-em-dia/internal/calendar"
	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// importNamespace seeds the deterministic ids of imported rows, so the same
// statement line always maps to the same transaction id.
var importNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("contas-em-dia/ofx"))

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Parser converts statements to transactions.
type Parser struct {
	// Location decides the calendar day of posting timestamps.
	Location *time.Location
	// Category is assigned to every imported row.
	Category string
}

// NewParser creates a parser that files rows under category (Outros when
// empty) and reads posting dates in loc (time.Local when nil).
func NewParser(loc *time.Location, category string) *Parser {
	if loc == nil {
		loc = time.Local
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = model.CategoryOther
	}
	return &Parser{Location: loc, Category: category}
}

// TransactionID is the id an imported statement line receives.
func TransactionID(accountID, fitID string) string {
	return uuid.NewSHA1(importNamespace, []byte(accountID+":"+fitID)).String()
}

// preprocessOFX fixes formatting issues some banks ship.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n\ufeff")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile parses one statement file. Lines that cannot become a valid
// transaction are skipped and counted in the log.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts, skipped int

	collect := func(list *ofxgo.TransactionList, accountID string) {
		if list == nil {
			return
		}
		for _, ofxTx := range list.Transactions {
			txn, err := p.convertTransaction(ofxTx, accountID)
			if err != nil {
				skipped++
				slog.Warn("Skipping statement line",
					"account", accountID,
					"fitid", string(ofxTx.FiTID),
					"error", err)
				continue
			}
			transactions = append(transactions, txn)
		}
	}

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			collect(stmt.BankTranList, string(stmt.BankAcctFrom.AcctID))
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			collect(stmt.BankTranList, string(stmt.CCAcctFrom.AcctID))
		}
	}

	slog.Info("Parsed OFX file",
		"transactions", len(transactions),
		"skipped", skipped,
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

// convertTransaction maps a statement line. Debits (negative amounts)
// become expenses, credits become income; both are already settled.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, accountID string) (model.Transaction, error) {
	amount, err := decimal.NewFromString(ofxTx.TrnAmt.FloatString(2))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount: %w", err)
	}

	kind := model.TypeIncome
	if amount.IsNegative() {
		kind = model.TypeExpense
		amount = amount.Neg()
	}

	txn := model.Transaction{
		ID:          TransactionID(accountID, string(ofxTx.FiTID)),
		Description: describe(ofxTx),
		Amount:      amount,
		Type:        kind,
		Category:    p.Category,
		Date:        calendar.FromTime(ofxTx.DtPosted.Time.In(p.Location)),
		IsPaid:      true,
	}
	txn.Normalize()

	if err := txn.Validate(); err != nil {
		return model.Transaction{}, err
	}
	return txn, nil
}

var cardPrefixes = []string{
	"COMPRA CARTAO ",
	"COMPRA CARTÃO ",
	"COMPRA NO DEBITO ",
	"COMPRA NO DÉBITO ",
	"PAGTO ",
	"POS PURCHASE ",
	"DEBIT CARD PURCHASE ",
}

var genericNames = map[string]bool{
	"DEBITO":    true,
	"DÉBITO":    true,
	"CREDITO":   true,
	"CRÉDITO":   true,
	"PAGAMENTO": true,
	"PIX":       true,
	"DEBIT":     true,
	"CREDIT":    true,
}

// describe picks the most useful label for a line: the payee, else the
// name, else the memo when the name is generic or missing.
func describe(tx ofxgo.Transaction) string {
	if tx.Payee != nil && strings.TrimSpace(string(tx.Payee.Name)) != "" {
		return truncate(strings.TrimSpace(string(tx.Payee.Name)))
	}

	name := strings.TrimSpace(string(tx.Name))
	memo := strings.TrimSpace(string(tx.Memo))
	if memo != "" && (name == "" || genericNames[strings.ToUpper(name)]) {
		name = memo
	}

	upper := strings.ToUpper(name)
	for _, prefix := range cardPrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = strings.TrimSpace(name[len(prefix):])
			break
		}
	}

	// DD/MM prefix left by some card processors.
	if len(name) > 6 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	if name == "" {
		name = tx.TrnType.String()
	}
	return truncate(name)
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= model.MaxDescriptionLength {
		return s
	}
	return string(runes[:model.MaxDescriptionLength])
}

// Accounts lists the distinct account ids in a statement file.
func (p *Parser) Accounts(reader io.Reader) ([]string, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	seen := make(map[string]bool)
	var accounts []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			accounts = append(accounts, id)
		}
	}
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			add(string(stmt.BankAcctFrom.AcctID))
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			add(string(stmt.CCAcctFrom.AcctID))
		}
	}
	return accounts, nil
}
