package vim

import "strconv"

// ParseStatus reports how far a keystroke sequence got.
type ParseStatus int

const (
	// StatusInvalid means the input can never become a command.
	StatusInvalid ParseStatus = iota
	// StatusPending means the input is a valid prefix; keep buffering.
	StatusPending
	// StatusComplete means a Command was produced.
	StatusComplete
)

func (s ParseStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusComplete:
		return "complete"
	default:
		return "invalid"
	}
}

// maxCount bounds typed counts so repeated pastes and yanks stay finite.
const maxCount = 9999

// Parse turns a buffered keystroke string into a Command. Completed
// character searches are recorded in st for ; and , repetition; nothing
// else in st is modified. A pending result carries the fields parsed so
// far, so "3d" reports Count 3 and OpDelete.
func Parse(st *SessionState, input string) (Command, ParseStatus) {
	if input == "" {
		return Command{}, StatusPending
	}
	if input == ";" || input == "," {
		return parseRepeat(st, input == ",")
	}

	keys := []rune(input)
	var cmd Command

	keys, status := parseRegister(&cmd, keys)
	if status != StatusComplete {
		return partial(cmd, status)
	}

	if len(keys) > 0 && keys[0] >= '1' && keys[0] <= '9' {
		n := 0
		for n < len(keys) && keys[n] >= '0' && keys[n] <= '9' {
			n++
		}
		count, err := strconv.Atoi(string(keys[:n]))
		if err != nil || count > maxCount {
			return Command{}, StatusInvalid
		}
		cmd.Count = count
		keys = keys[n:]
	}

	if cmd.Register == 0 {
		keys, status = parseRegister(&cmd, keys)
		if status != StatusComplete {
			return partial(cmd, status)
		}
	}

	if len(keys) == 0 {
		return cmd, StatusPending
	}

	switch first := keys[0]; first {
	case 'm':
		if len(keys) == 1 {
			return cmd, StatusPending
		}
		if len(keys) != 2 || !isMarkName(keys[1]) {
			return Command{}, StatusInvalid
		}
		cmd.Mark = keys[1]
		return cmd, StatusComplete

	case 'Y':
		if len(keys) != 1 {
			return Command{}, StatusInvalid
		}
		cmd.Operator = OpYank
		cmd.Motion = "yy"
		return cmd, StatusComplete

	case 'p', 'P', 'J':
		if len(keys) != 1 {
			return Command{}, StatusInvalid
		}
		cmd.Operator = Operator(first)
		return cmd, StatusComplete

	case 'd', 'c', 'y', '>', '<':
		cmd.Operator = Operator(first)
		keys = keys[1:]
		if len(keys) == 0 {
			return cmd, StatusPending
		}
		if keys[0] == first {
			if len(keys) != 1 {
				return Command{}, StatusInvalid
			}
			cmd.Motion = string([]rune{first, first})
			return cmd, StatusComplete
		}
	}

	return parseTarget(st, cmd, keys)
}

// parseTarget parses the motion or text object that follows an optional
// operator.
func parseTarget(st *SessionState, cmd Command, keys []rune) (Command, ParseStatus) {
	switch key := keys[0]; key {
	case 'f', 'F', 't', 'T':
		if len(keys) == 1 {
			return cmd, StatusPending
		}
		if len(keys) != 2 {
			return Command{}, StatusInvalid
		}
		st.lastSearch = &CharSearch{
			Char:    keys[1],
			Forward: key == 'f' || key == 't',
			Till:    key == 't' || key == 'T',
		}
		cmd.Motion = string(keys)
		return cmd, StatusComplete

	case 'i', 'a':
		if len(keys) == 1 {
			return cmd, StatusPending
		}
		typ, ok := textObjectKeys[keys[1]]
		if !ok || len(keys) != 2 {
			return Command{}, StatusInvalid
		}
		if cmd.Operator == OpNone {
			cmd.Operator = OpDelete
		}
		cmd.TextObject = &TextObject{Type: typ, Inclusive: key == 'a', Char: keys[1]}
		return cmd, StatusComplete

	case '`', '\'':
		if len(keys) == 1 {
			return cmd, StatusPending
		}
		if len(keys) != 2 || !isMarkName(keys[1]) {
			return Command{}, StatusInvalid
		}
		cmd.Motion = string(keys)
		return cmd, StatusComplete
	}

	if !isMotion(string(keys)) {
		return Command{}, StatusInvalid
	}
	cmd.Motion = string(keys)
	return cmd, StatusComplete
}

// parseRepeat builds the command for ; (same direction) or , (reversed).
func parseRepeat(st *SessionState, reverse bool) (Command, ParseStatus) {
	search, ok := st.LastSearch()
	if !ok {
		return Command{}, StatusInvalid
	}
	op := OpDelete
	if last, ok := st.LastCommand(); ok && last.Operator.takesMotion() {
		op = last.Operator
	}
	return Command{Operator: op, Motion: search.Motion(reverse)}, StatusComplete
}

// parseRegister consumes a leading "r register prefix.
func parseRegister(cmd *Command, keys []rune) ([]rune, ParseStatus) {
	if len(keys) == 0 || keys[0] != '"' {
		return keys, StatusComplete
	}
	if len(keys) == 1 {
		return nil, StatusPending
	}
	if !ValidRegister(keys[1]) {
		return nil, StatusInvalid
	}
	cmd.Register = keys[1]
	return keys[2:], StatusComplete
}

// partial returns cmd for a pending status and an empty command otherwise.
func partial(cmd Command, status ParseStatus) (Command, ParseStatus) {
	if status == StatusPending {
		return cmd, status
	}
	return Command{}, status
}

func isMarkName(r rune) bool {
	return r >= 'a' && r <= 'z'
}
