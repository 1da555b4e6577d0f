package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompterReadLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "successful read", input: "test input\n", want: "test input"},
		{name: "extra whitespace", input: "  test input  \n", want: "test input"},
		{name: "empty line", input: "\n", want: ""},
		{name: "no trailing newline", input: "last", want: "last"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPrompter(strings.NewReader(tt.input), io.Discard)
			got, err := p.ReadLine(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrompterReadLineCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	p := NewPrompter(pr, io.Discard)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.ReadLine(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestPrompterAsk(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("\nMercado\n"), &out)

	got, err := p.Ask(context.Background(), "Categoria", "Outros")
	require.NoError(t, err)
	assert.Equal(t, "Outros", got)
	assert.Contains(t, out.String(), "Categoria [Outros]")

	got, err = p.Ask(context.Background(), "Categoria", "Outros")
	require.NoError(t, err)
	assert.Equal(t, "Mercado", got)
}

func TestPrompterConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "s\n", want: true},
		{input: "SIM\n", want: true},
		{input: "y\n", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			p := NewPrompter(strings.NewReader(tt.input), io.Discard)
			got, err := p.Confirm(context.Background(), "Excluir?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInterruptHandler(t *testing.T) {
	var out bytes.Buffer
	h := NewInterruptHandler(&out, "Nada foi salvo.")

	ctx, stop := h.HandleInterrupts(context.Background())
	assert.NoError(t, ctx.Err())
	assert.False(t, h.WasInterrupted())

	h.trigger()
	h.trigger()
	assert.True(t, h.WasInterrupted())
	assert.Equal(t, 1, strings.Count(out.String(), "Interrompido!"))
	assert.Contains(t, out.String(), "Nada foi salvo.")

	stop()
	assert.Error(t, ctx.Err())
}

func TestNewProgress(t *testing.T) {
	var out bytes.Buffer
	bar := NewProgress(&out, 3, "Importando")
	require.NoError(t, bar.Add(3))
	assert.True(t, bar.IsFinished())
}
