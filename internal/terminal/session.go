package terminal

// Entry is one block of scrollback. The welcome banner has an empty Command
// and is printed without a prompt.
type Entry struct {
	Command string   `json:"command,omitempty"`
	Output  []string `json:"output"`
}

// Session is a terminal's scrollback plus recall history.
type Session struct {
	entries []Entry
	recall  []string
	cursor  int
}

// NewSession starts with the welcome banner.
func NewSession() *Session {
	return &Session{
		entries: []Entry{{Output: clone(welcomeLines)}},
	}
}

// Run executes raw and records it. Blank input is ignored. clear/cls wipes
// the scrollback, banner included.
func (s *Session) Run(raw string) Result {
	res := Execute(raw)
	if Normalize(raw) == "" {
		return res
	}
	s.recall = append(s.recall, raw)
	s.cursor = len(s.recall)
	if res.Clear {
		s.entries = nil
		return res
	}
	s.entries = append(s.entries, Entry{Command: raw, Output: res.Lines})
	return res
}

// Entries returns a copy of the scrollback.
func (s *Session) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Lines flattens the scrollback into printable lines, echoing each command
// after the prompt.
func (s *Session) Lines() []string {
	var out []string
	for _, e := range s.entries {
		if e.Command != "" {
			out = append(out, Prompt+" "+e.Command)
		}
		out = append(out, e.Output...)
	}
	return out
}

// Previous steps back through previously entered commands.
func (s *Session) Previous() (string, bool) {
	if s.cursor == 0 {
		return "", false
	}
	s.cursor--
	return s.recall[s.cursor], true
}

// Next steps forward; past the newest command it returns an empty line.
func (s *Session) Next() (string, bool) {
	if s.cursor >= len(s.recall) {
		return "", false
	}
	s.cursor++
	if s.cursor == len(s.recall) {
		return "", true
	}
	return s.recall[s.cursor], true
}
