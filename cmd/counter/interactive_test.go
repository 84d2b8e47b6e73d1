package main

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/wasm-counter/host"
	"github.com/wippyai/wasm-counter/internal/wasmgen"
)

func newTestInstance(t *testing.T) *host.Instance {
	t.Helper()
	ctx := context.Background()
	rt, err := host.New(ctx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { rt.Close(ctx) })

	mod, err := rt.Load(ctx, wasmgen.Counter())
	require.NoError(t, err)
	inst, err := mod.Instantiate(ctx)
	require.NoError(t, err)
	return inst
}

// press feeds a key through Update and delivers the resulting command's message.
func press(t *testing.T, m *interactiveModel, k tea.KeyMsg) tea.Msg {
	t.Helper()
	_, cmd := m.Update(k)
	require.NotNil(t, cmd)
	msg := cmd()
	m.Update(msg)
	return msg
}

var (
	keyPlus  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")}
	keyGet   = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func TestInteractive_Init(t *testing.T) {
	m := newInteractiveModel(context.Background(), builtinName, newTestInstance(t))
	assert.Contains(t, m.View(), "Loading counter...")

	m.Update(m.Init()())
	assert.True(t, m.loaded)
	assert.Equal(t, int32(0), m.value)
	assert.Contains(t, m.View(), "Value: ")
}

func TestInteractive_Increment(t *testing.T) {
	m := newInteractiveModel(context.Background(), builtinName, newTestInstance(t))

	press(t, m, keyPlus)
	press(t, m, keyEnter)
	assert.Equal(t, int32(2), m.value)
	assert.Equal(t, 2, m.calls)
	assert.Equal(t, "increment", m.last)

	press(t, m, keyGet)
	assert.Equal(t, int32(2), m.value)
	assert.Equal(t, 2, m.calls)
	assert.Equal(t, "get_counter", m.last)
}

func TestInteractive_Quit(t *testing.T) {
	m := newInteractiveModel(context.Background(), builtinName, newTestInstance(t))

	_, cmd := m.Update(keyQuit)
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

type failingInstance struct{}

func (failingInstance) Increment(context.Context) error { return errors.New("trap") }

func (failingInstance) GetCounter(context.Context) (int32, error) { return 0, errors.New("trap") }

func TestInteractive_Error(t *testing.T) {
	m := newInteractiveModel(context.Background(), builtinName, failingInstance{})

	press(t, m, keyPlus)
	require.Error(t, m.err)
	assert.False(t, m.loaded)
	assert.Equal(t, 0, m.calls)
	view := m.View()
	assert.Contains(t, view, "Error: trap")
	assert.NotContains(t, view, "Value:")
	assert.NotContains(t, view, "Loading counter")
}

func TestInteractive_InitError(t *testing.T) {
	m := newInteractiveModel(context.Background(), builtinName, failingInstance{})

	m.Update(m.Init()())
	assert.False(t, m.loaded)
	assert.Equal(t, "get_counter", m.last)

	view := m.View()
	assert.Contains(t, view, "Error: trap")
	assert.NotContains(t, view, "Value:")
}
