package repl

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.creack.net/pemdas"
)

func testSettings() Settings {
	return Settings{
		Calculator: pemdas.New(),
		Format:     pemdas.DefaultFormat,
		Prompt:     "Enter an expression: ",
		Banner:     "banner",
	}
}

func runLoop(t *testing.T, input string, s Settings) string {
	t.Helper()
	var out strings.Builder
	require.NoError(t, Loop(context.Background(), strings.NewReader(input), &out, s))
	return out.String()
}

func TestLoop(t *testing.T) {
	got := runLoop(t, "2+5*9/3^2\n5*(9+3)\n", testSettings())
	assert.Equal(t, "banner\n"+
		"Enter an expression: Result: 7.00\n"+
		"Enter an expression: Result: 60.00\n"+
		"Enter an expression: \n", got)
}

func TestLoopContinuesAfterError(t *testing.T) {
	got := runLoop(t, "2&3\n(2+3(\n1+1\n", testSettings())
	assert.Contains(t, got, "UnknownSymbol at index: 1 => '&'\n")
	assert.Contains(t, got, "Semantic error: UnbalancedParenthesis\n")
	assert.Contains(t, got, "Result: 2.00\n")
}

func TestLoopExit(t *testing.T) {
	for _, word := range []string{"exit", "quit", "  QUIT  "} {
		got := runLoop(t, "1+1\n"+word+"\n2+2\n", testSettings())
		assert.Contains(t, got, "Result: 2.00")
		assert.NotContains(t, got, "Result: 4.00", word)
	}
}

func TestLoopSkipsBlankLines(t *testing.T) {
	s := testSettings()
	s.Banner = ""
	s.Prompt = "> "
	got := runLoop(t, "\n   \n3^2\n", s)
	assert.Equal(t, "> > > Result: 9.00\n> \n", got)
}

func TestLoopFormatAndOptions(t *testing.T) {
	s := testSettings()
	s.Format = "%g"
	s.Calculator = pemdas.New(pemdas.WithPermissive())
	got := runLoop(t, "2+&3\n", s)
	assert.Contains(t, got, "Result: 5\n")
}

func TestLoopCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out strings.Builder
	require.NoError(t, Loop(ctx, strings.NewReader("1+1\n"), &out, testSettings()))
	assert.NotContains(t, out.String(), "Result")
}

func TestLoopCanceledWhileReading(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	var out strings.Builder
	done := make(chan error, 1)
	go func() { done <- Loop(ctx, pr, &out, testSettings()) }()

	_, err := pw.Write([]byte("1+1\n"))
	require.NoError(t, err)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop still blocked after cancel")
	}
	assert.True(t, strings.HasPrefix(out.String(), "banner\n"))
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestModelEvaluate(t *testing.T) {
	m := NewModel(testSettings())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2^3^2")})
	assert.Equal(t, "2^3^2", m.input.Value())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, m.input.Value())
	require.Len(t, m.history, 1)
	assert.Equal(t, "512.00", m.history[0].text)
	assert.Contains(t, m.View(), "Result: 512.00")

	m.input.SetValue("2&3")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, m.history, 2)
	assert.Error(t, m.history[1].err)
	assert.Contains(t, m.View(), "UnknownSymbol at index: 1 => '&'")
}

func TestModelIgnoresBlank(t *testing.T) {
	m := NewModel(testSettings())
	m.input.SetValue("   ")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.history)
}

func TestModelHistoryBounded(t *testing.T) {
	m := NewModel(testSettings())
	for range maxHistory + 5 {
		m.input.SetValue("1+1")
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	assert.Len(t, m.history, maxHistory)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Empty(t, m.history)
}

func TestModelQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		m, cmd := update(t, NewModel(testSettings()), msg)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.True(t, m.quitting)
		assert.Empty(t, m.View())
	}

	m := NewModel(testSettings())
	m.input.SetValue("exit")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
}
