package vim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) Get() (string, error) { return c.text, c.err }

func (c *fakeClipboard) Set(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func TestRegisters_DefaultAlwaysUpdated(t *testing.T) {
	r := NewRegisters()

	r.Store(0, "one", false, false)
	got, ok := r.Get(0)
	require.True(t, ok)
	require.Equal(t, "one", got.Text)

	r.Store('a', "two", true, false)
	got, _ = r.Get(DefaultRegister)
	require.Equal(t, Register{Text: "two", Linewise: true}, got)

	named, _ := r.Get('a')
	require.Equal(t, "two", named.Text)
}

func TestRegisters_YankFillsZero(t *testing.T) {
	r := NewRegisters()

	r.Store(0, "yanked", false, true)
	r.Store(0, "deleted", false, false)

	zero, ok := r.Get(YankRegister)
	require.True(t, ok)
	require.Equal(t, "yanked", zero.Text)

	def, _ := r.Get(0)
	require.Equal(t, "deleted", def.Text)
}

func TestRegisters_UppercaseAppends(t *testing.T) {
	r := NewRegisters()

	r.Store('A', "first", false, false)
	r.Store('A', " second", false, false)
	got, _ := r.Get('a')
	require.Equal(t, "first second", got.Text)

	r.Store('b', "line1", true, false)
	r.Store('B', "line2", true, false)
	got, _ = r.Get('B')
	require.Equal(t, Register{Text: "line1\nline2", Linewise: true}, got)

	def, _ := r.Get(0)
	require.Equal(t, "line1\nline2", def.Text)
}

func TestRegisters_Clipboard(t *testing.T) {
	r := NewRegisters()
	clip := &fakeClipboard{}
	r.SetClipboard(clip)

	r.Store(ClipboardRegister, "copied", false, true)
	require.Equal(t, "copied", clip.text)

	clip.text = "from system"
	got, ok := r.Get(ClipboardRegister)
	require.True(t, ok)
	require.Equal(t, "from system", got.Text)

	clip.err = errors.New("no display")
	_, ok = r.Get(ClipboardRegister)
	require.False(t, ok)
	require.NotPanics(t, func() { r.Store(ClipboardRegister, "x", false, false) })
}

func TestRegisters_ClipboardWithoutProviderActsNamed(t *testing.T) {
	r := NewRegisters()
	r.Store(ClipboardRegister, "local", false, false)

	got, ok := r.Get(ClipboardRegister)
	require.True(t, ok)
	require.Equal(t, "local", got.Text)
}

func TestValidRegister(t *testing.T) {
	for _, name := range `"0+azAZ` {
		require.True(t, ValidRegister(name), string(name))
	}
	for _, name := range `!1-_ é` {
		require.False(t, ValidRegister(name), string(name))
	}
}

func TestRegisters_AllAndRestore(t *testing.T) {
	r := NewRegisters()
	r.Store('q', "macro", false, true)

	snap := r.All()
	snap['q'] = Register{Text: "changed"}
	got, _ := r.Get('q')
	require.Equal(t, "macro", got.Text, "All returns a copy")

	other := NewRegisters()
	other.Restore(map[rune]Register{'q': {Text: "restored"}, '!': {Text: "dropped"}})
	got, ok := other.Get('q')
	require.True(t, ok)
	require.Equal(t, "restored", got.Text)
	require.Len(t, other.All(), 1)
}
