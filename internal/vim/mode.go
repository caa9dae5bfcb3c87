package vim

// Mode is the editing mode of a session.
type Mode int

const (
	// ModeNormal accepts commands.
	ModeNormal Mode = iota
	// ModeInsert inserts typed text.
	ModeInsert
	// ModeVisual selects from the visual anchor to the cursor.
	ModeVisual
	// ModeReplace overwrites text under the cursor.
	ModeReplace
)

// String returns the mode indicator label.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	case ModeReplace:
		return "REPLACE"
	default:
		return "UNKNOWN"
	}
}
