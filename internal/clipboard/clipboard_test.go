package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vimline/internal/vim"
)

func TestMemory_RoundTrip(t *testing.T) {
	m := &Memory{}
	require.NoError(t, m.Set("hello"))
	got, err := m.Get()
	require.NoError(t, err)
	require.Equal(t, "hello", got)
}

func TestMemory_Error(t *testing.T) {
	m := &Memory{Err: errors.New("no display")}
	require.Error(t, m.Set("x"))
	_, err := m.Get()
	require.Error(t, err)
}

func TestMemory_BacksPlusRegister(t *testing.T) {
	m := &Memory{}
	regs := vim.NewRegisters()
	regs.SetClipboard(m)

	regs.Store(vim.ClipboardRegister, "copied", false, true)
	require.Equal(t, "copied", m.Text)

	m.Text = "from outside"
	reg, ok := regs.Get(vim.ClipboardRegister)
	require.True(t, ok)
	require.Equal(t, "from outside", reg.Text)
}

func TestNew_NeverNil(t *testing.T) {
	require.NotNil(t, New())
}
