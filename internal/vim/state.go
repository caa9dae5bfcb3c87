package vim

// CharSearch remembers the last f/F/t/T search for ; and , repetition.
type CharSearch struct {
	Char    rune `json:"char"`
	Forward bool `json:"forward"`
	Till    bool `json:"till"`
}

// Motion returns the motion token that repeats the search, reversing its
// direction when reverse is set.
func (s CharSearch) Motion(reverse bool) string {
	forward := s.Forward != reverse
	var key rune
	switch {
	case forward && s.Till:
		key = 't'
	case forward:
		key = 'f'
	case s.Till:
		key = 'T'
	default:
		key = 'F'
	}
	return string(key) + string(s.Char)
}

// SessionState is the long-lived state of one editing session. The host
// owns it and passes it by handle; only Parser, Engine and the accessors
// below mutate it.
type SessionState struct {
	mode        Mode
	cursor      Position
	registers   *Registers
	marks       map[rune]Position
	lastSearch  *CharSearch
	visualStart *Position
	lastCommand *Command
}

// NewSessionState creates a session in normal mode at 0:0.
func NewSessionState() *SessionState {
	return &SessionState{
		mode:      ModeNormal,
		registers: NewRegisters(),
		marks:     make(map[rune]Position),
	}
}

// Mode returns the current mode.
func (s *SessionState) Mode() Mode {
	return s.mode
}

// SetMode switches modes. Entering normal mode clears the visual anchor;
// entering visual mode anchors at the cursor.
func (s *SessionState) SetMode(m Mode) {
	switch m {
	case ModeNormal:
		s.visualStart = nil
	case ModeVisual:
		if s.visualStart == nil {
			anchor := s.cursor
			s.visualStart = &anchor
		}
	}
	s.mode = m
}

// Cursor returns the cursor position.
func (s *SessionState) Cursor() Position {
	return s.cursor
}

// SetCursor moves the cursor.
func (s *SessionState) SetCursor(p Position) {
	s.cursor = p
}

// Registers returns the register table.
func (s *SessionState) Registers() *Registers {
	return s.registers
}

// Mark returns a stored mark.
func (s *SessionState) Mark(name rune) (Position, bool) {
	p, ok := s.marks[name]
	return p, ok
}

// SetMark stores a mark.
func (s *SessionState) SetMark(name rune, p Position) {
	s.marks[name] = p
}

// LastSearch returns the last character search, if any.
func (s *SessionState) LastSearch() (CharSearch, bool) {
	if s.lastSearch == nil {
		return CharSearch{}, false
	}
	return *s.lastSearch, true
}

// VisualStart returns the visual anchor, if any.
func (s *SessionState) VisualStart() (Position, bool) {
	if s.visualStart == nil {
		return Position{}, false
	}
	return *s.visualStart, true
}

// LastCommand returns the last executed command, if any.
func (s *SessionState) LastCommand() (Command, bool) {
	if s.lastCommand == nil {
		return Command{}, false
	}
	return *s.lastCommand, true
}

// Snapshot is the persistable part of a session.
type Snapshot struct {
	Registers  map[rune]Register
	Marks      map[rune]Position
	LastSearch *CharSearch
}

// Snapshot copies the persistable state.
func (s *SessionState) Snapshot() Snapshot {
	marks := make(map[rune]Position, len(s.marks))
	for k, v := range s.marks {
		marks[k] = v
	}
	var search *CharSearch
	if s.lastSearch != nil {
		cs := *s.lastSearch
		search = &cs
	}
	return Snapshot{
		Registers:  s.registers.All(),
		Marks:      marks,
		LastSearch: search,
	}
}

// Restore loads a snapshot into the session.
func (s *SessionState) Restore(snap Snapshot) {
	s.registers.Restore(snap.Registers)
	s.marks = make(map[rune]Position, len(snap.Marks))
	for k, v := range snap.Marks {
		s.marks[k] = v
	}
	s.lastSearch = nil
	if snap.LastSearch != nil {
		cs := *snap.LastSearch
		s.lastSearch = &cs
	}
}
