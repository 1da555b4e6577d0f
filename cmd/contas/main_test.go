package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/contas-em-dia/internal/llm"
	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/Veraticus/contas-em-dia/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// harness runs commands against one database in a temp dir.
type harness struct {
	t      *testing.T
	dbPath string
	stdin  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("CONTAS_LLM_API_KEY", "")
	return &harness{t: t, dbPath: filepath.Join(t.TempDir(), "contas.db")}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	a := newApp()
	root := newRootCmd(a)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(h.stdin))
	root.SetArgs(append([]string{"--db", h.dbPath, "--today", "2024-05-10", "--log-level", "error"}, args...))

	err := root.ExecuteContext(context.Background())
	a.close()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, out)
	return out
}

func (h *harness) state() storage.State {
	h.t.Helper()
	ctx := context.Background()
	store, err := storage.OpenSQLiteStore(ctx, h.dbPath)
	require.NoError(h.t, err)
	repo := storage.NewRepository(store)
	defer func() { _ = repo.Close() }()

	state, err := repo.Load(ctx)
	require.NoError(h.t, err)
	return state
}

func TestTransactionLifecycle(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("tx", "add", "Conta de luz", "187,90",
		"--category", model.CategoryUtilities, "--date", "2024-05-01", "--due", "2024-05-08")
	assert.Contains(t, out, "Transação adicionada")
	assert.Contains(t, out, "R$ 187,90")

	h.mustRun("tx", "add", "Salário", "R$ 5.000,00", "--type", "income", "--category", "Salário", "--date", "2024-05-05")

	state := h.state()
	require.Len(t, state.Transactions, 2)
	bill := state.Transactions[1]
	require.Equal(t, "Conta de luz", bill.Description)
	assert.True(t, bill.Amount.Equal(decimal.RequireFromString("187.90")))
	assert.False(t, bill.IsPaid)

	out = h.mustRun("tx", "list")
	assert.Contains(t, out, "Conta de luz")
	assert.Contains(t, out, "Salário")
	assert.Contains(t, out, "Mostrando 2 de 2")

	out = h.mustRun("tx", "list", "--type", "income")
	assert.NotContains(t, out, "Conta de luz")
	assert.Contains(t, out, "Mostrando 1 de 1")

	out = h.mustRun("alerts")
	assert.Contains(t, out, "Atrasada há 2 dia(s): Conta de luz")

	out = h.mustRun("tx", "toggle", bill.ID[:8])
	assert.Contains(t, out, `"Conta de luz" marcada como paga`)
	assert.True(t, h.state().Transactions[1].IsPaid)

	out = h.mustRun("alerts")
	assert.Contains(t, out, "Tudo em dia!")

	out = h.mustRun("summary")
	assert.Contains(t, out, "Visitante")
	assert.Contains(t, out, "R$ 4.812,10")

	out = h.mustRun("tx", "edit", bill.ID, "--amount", "200", "--description", "Luz")
	assert.Contains(t, out, "Transação atualizada")
	edited := h.state().Transactions[1]
	assert.Equal(t, "Luz", edited.Description)
	assert.True(t, edited.Amount.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, model.CategoryUtilities, edited.Category, "fields without a flag are kept")
	assert.True(t, edited.IsPaid)
}

func TestTransactionAddRejectsBadInput(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("tx", "add", "Mercado", "abc")
	assert.ErrorContains(t, err, "invalid amount")

	_, err = h.run("tx", "add", "Mercado", "10", "--date", "10/05/2024")
	assert.ErrorContains(t, err, "invalid --date")

	_, err = h.run("tx", "add", "Mercado", "10", "--type", "transfer")
	require.Error(t, err)

	_, err = h.run("tx", "list", "--from", "ontem")
	assert.ErrorContains(t, err, "invalid --from")
}

func TestToggleIncomeFails(t *testing.T) {
	h := newHarness(t)
	h.mustRun("tx", "add", "Salário", "5000", "--type", "income")

	_, err := h.run("tx", "toggle", h.state().Transactions[0].ID)
	assert.Error(t, err)
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	h := newHarness(t)
	h.mustRun("tx", "add", "Mercado", "80")
	id := h.state().Transactions[0].ID

	h.stdin = "n\n"
	out := h.mustRun("tx", "delete", id)
	assert.Contains(t, out, "Nada foi excluído.")
	assert.Len(t, h.state().Transactions, 1)

	h.stdin = "s\n"
	out = h.mustRun("tx", "delete", id)
	assert.Contains(t, out, `"Mercado" excluída`)
	assert.Empty(t, h.state().Transactions)

	_, err := h.run("tx", "delete", id, "--yes")
	assert.Error(t, err)
}

func TestCategoryCommands(t *testing.T) {
	h := newHarness(t)
	h.mustRun("tx", "add", "Ração", "120", "--category", "Pets")

	out := h.mustRun("categories", "orphans")
	assert.Contains(t, out, "Pets")

	out = h.mustRun("categories", "add", "Pets")
	assert.Contains(t, out, `Categoria "Pets" adicionada`)
	out = h.mustRun("categories", "add", "Pets")
	assert.Contains(t, out, "já existe")

	out = h.mustRun("categories", "orphans")
	assert.Contains(t, out, "Todas as categorias em uso estão cadastradas.")

	out = h.mustRun("categories", "rename", "Pets", "Animais")
	assert.Contains(t, out, "1 transação(ões)")
	state := h.state()
	assert.Contains(t, state.Categories, "Animais")
	assert.Equal(t, "Animais", state.Transactions[0].Category)

	out = h.mustRun("categories", "delete", "Animais")
	assert.Contains(t, out, "removida")
	out = h.mustRun("categories", "list")
	assert.Contains(t, out, "Animais (sem cadastro, ainda em uso)")

	out = h.mustRun("categories", "delete", "Inexistente")
	assert.Contains(t, out, "não existe")
}

func TestReminderCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("reminders", "add", "Pagar aluguel", "--frequency", "monthly", "--day", "10", "--amount", "1500")
	assert.Contains(t, out, "Todo dia 10 às 09:00")

	out = h.mustRun("alerts")
	assert.Contains(t, out, "Lembrete: Pagar aluguel às 09:00 (R$ 1.500,00)")

	id := h.state().Reminders[0].ID
	out = h.mustRun("reminders", "toggle", id[:6])
	assert.Contains(t, out, "desativado")

	out = h.mustRun("alerts")
	assert.NotContains(t, out, "Pagar aluguel")

	_, err := h.run("reminders", "add", "Errado", "--frequency", "weekly", "--weekday", "9")
	assert.Error(t, err)

	h.mustRun("reminders", "delete", id)
	assert.Empty(t, h.state().Reminders)
}

func TestProfileCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("profile", "show")
	assert.Contains(t, out, "👤 Visitante")

	h.mustRun("profile", "set", "--name", "Ana", "--avatar", "👩")
	assert.Equal(t, model.UserProfile{Name: "Ana", Avatar: "👩"}, h.state().Profile)

	_, err := h.run("profile", "set", "--avatar", "X")
	assert.ErrorIs(t, err, model.ErrInvalidAvatar)
}

const statementOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>POR
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>BRL
<BANKACCTFROM>
<BANKID>0341
<ACCTID>12345-6
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>PADARIA REAL
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>3500.00
<FITID>2024012001
<NAME>SALARIO EMPRESA XYZ
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestImportOFXSkipsDuplicates(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "extrato.ofx")
	require.NoError(t, os.WriteFile(path, []byte(statementOFX), 0600))

	out := h.mustRun("import-ofx", path, "--dry-run")
	assert.Contains(t, out, "Nada foi salvo")
	assert.Empty(t, h.state().Transactions)

	out = h.mustRun("import-ofx", path)
	assert.Contains(t, out, "2 transação(ões) importada(s), 0 já existente(s)")

	out = h.mustRun("import-ofx", path)
	assert.Contains(t, out, "0 transação(ões) importada(s), 2 já existente(s)")

	txns := h.state().Transactions
	require.Len(t, txns, 2)
	categories := map[string]string{}
	for _, txn := range txns {
		categories[txn.Description] = txn.Category
		assert.True(t, txn.IsPaid)
	}
	assert.Equal(t, map[string]string{
		"PADARIA REAL":        model.CategoryFood,
		"SALARIO EMPRESA XYZ": model.CategorySalary,
	}, categories)

	_, err := h.run("import-ofx", filepath.Join(t.TempDir(), "*.ofx"))
	assert.ErrorContains(t, err, "no files found")
}

func TestImportOFXWithoutGuessing(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "extrato.ofx")
	require.NoError(t, os.WriteFile(path, []byte(statementOFX), 0600))

	h.mustRun("import-ofx", path, "--auto-category=false", "--category", model.CategoryOther)
	for _, txn := range h.state().Transactions {
		assert.Equal(t, model.CategoryOther, txn.Category)
	}
}

func TestAdviceWithoutAPIKey(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("advice")
	assert.Contains(t, out, llm.AdviceNeedsData)

	h.mustRun("tx", "add", "Mercado", "80")
	out = h.mustRun("advice")
	assert.Contains(t, out, "nenhuma chave de API")

	img := filepath.Join(t.TempDir(), "boleto.png")
	require.NoError(t, os.WriteFile(img, []byte("not really a png"), 0600))
	_, err := h.run("scan", img)
	assert.ErrorContains(t, err, "llm.api_key")
}

func TestBackup(t *testing.T) {
	h := newHarness(t)
	h.mustRun("tx", "add", "Mercado", "80")

	dest := filepath.Join(t.TempDir(), "copia.db")
	out := h.mustRun("backup", dest)
	assert.Contains(t, out, "Cópia salva em "+dest)
	assert.FileExists(t, dest)

	_, err := h.run("backup", dest)
	assert.ErrorIs(t, err, storage.ErrBackupExists)

	_, err = h.run("--ephemeral", "backup", filepath.Join(t.TempDir(), "x.db"))
	assert.Error(t, err)
}

func TestEphemeralLeavesDatabaseUntouched(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("--ephemeral", "tx", "add", "Mercado", "80")
	assert.Contains(t, out, "Transação adicionada")
	assert.NoFileExists(t, h.dbPath)
}

func TestSheetsExportNeedsCredentials(t *testing.T) {
	h := newHarness(t)
	t.Setenv("CONTAS_SHEETS_TOKEN_FILE", filepath.Join(t.TempDir(), "missing.json"))

	_, err := h.run("sheets", "export")
	assert.ErrorContains(t, err, "contas sheets auth")

	_, err = h.run("sheets", "auth")
	assert.ErrorContains(t, err, "sheets.client_id")
}

func TestInvalidToday(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("--today", "amanhã", "summary")
	assert.ErrorContains(t, err, "invalid --today")
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, "contas dev\n", h.mustRun("version"))
}
