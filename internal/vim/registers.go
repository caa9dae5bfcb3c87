package vim

import (
	"unicode"

	"github.com/zjrosen/vimline/internal/log"
)

// Register names with special behavior.
const (
	// DefaultRegister receives every yank and delete.
	DefaultRegister = '"'
	// YankRegister holds the most recent yank.
	YankRegister = '0'
	// ClipboardRegister reads and writes the system clipboard.
	ClipboardRegister = '+'
)

// Register is the content of one register slot.
type Register struct {
	Text     string `json:"text"`
	Linewise bool   `json:"linewise,omitempty"`
}

// Clipboard abstracts system clipboard access for the + register.
type Clipboard interface {
	Get() (string, error)
	Set(text string) error
}

// Registers is the register table of a session.
type Registers struct {
	entries   map[rune]Register
	clipboard Clipboard
}

// NewRegisters creates an empty register table.
func NewRegisters() *Registers {
	return &Registers{entries: make(map[rune]Register)}
}

// SetClipboard attaches a system clipboard. With no clipboard the + register
// behaves like a named register.
func (r *Registers) SetClipboard(c Clipboard) {
	r.clipboard = c
}

// ValidRegister reports whether name can follow a `"` prefix.
func ValidRegister(name rune) bool {
	switch {
	case name == DefaultRegister, name == YankRegister, name == ClipboardRegister:
		return true
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z':
		return true
	}
	return false
}

// Get returns the content of a register. A zero name reads the default
// register; uppercase names read their lowercase register.
func (r *Registers) Get(name rune) (Register, bool) {
	if name == 0 {
		name = DefaultRegister
	}
	name = unicode.ToLower(name)
	if name == ClipboardRegister && r.clipboard != nil {
		text, err := r.clipboard.Get()
		if err != nil {
			log.ErrorErr(log.CatEngine, "Clipboard read failed", err)
			return Register{}, false
		}
		return Register{Text: text}, text != ""
	}
	reg, ok := r.entries[name]
	return reg, ok
}

// Store records yanked or deleted text. The default register is always
// updated; name additionally targets a named register (A-Z append to a-z).
// Yanks also fill the 0 register.
func (r *Registers) Store(name rune, text string, linewise, yank bool) {
	reg := Register{Text: text, Linewise: linewise}

	switch {
	case name == 0 || name == DefaultRegister:
	case name >= 'A' && name <= 'Z':
		lower := unicode.ToLower(name)
		if prev, ok := r.entries[lower]; ok && prev.Text != "" {
			sep := ""
			if prev.Linewise || linewise {
				sep = "\n"
			}
			reg = Register{Text: prev.Text + sep + text, Linewise: prev.Linewise || linewise}
		}
		r.entries[lower] = reg
	case name == ClipboardRegister && r.clipboard != nil:
		if err := r.clipboard.Set(text); err != nil {
			log.ErrorErr(log.CatEngine, "Clipboard write failed", err)
		}
	default:
		r.entries[name] = reg
	}

	r.entries[DefaultRegister] = reg
	if yank {
		r.entries[YankRegister] = Register{Text: text, Linewise: linewise}
	}
}

// All returns a copy of every stored register.
func (r *Registers) All() map[rune]Register {
	out := make(map[rune]Register, len(r.entries))
	for k, v := range r.entries {
		out[k] = v
	}
	return out
}

// Restore replaces the table contents with regs.
func (r *Registers) Restore(regs map[rune]Register) {
	r.entries = make(map[rune]Register, len(regs))
	for k, v := range regs {
		if ValidRegister(k) {
			r.entries[unicode.ToLower(k)] = v
		}
	}
}
