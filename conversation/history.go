package conversation

import "github.com/picolabs/pico/core"

// History is the append-only turn log of a session. The first turn is
// always the persona's system turn. Not safe for concurrent use.
type History struct {
	turns []core.Turn
}

// NewHistory creates a history seeded with the given system turn.
func NewHistory(system core.Turn) *History {
	return &History{turns: []core.Turn{system}}
}

// Append adds a turn to the end of the history.
func (h *History) Append(turn core.Turn) {
	h.turns = append(h.turns, turn)
}

// Turns returns a copy of all turns in order.
func (h *History) Turns() []core.Turn {
	out := make([]core.Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len returns the number of turns, including the seed system turn.
func (h *History) Len() int {
	return len(h.turns)
}

// Window returns the seed system turn followed by the last n
// conversation turns. A non-positive n returns all turns. The window
// applies to prompt assembly only; the full history is retained.
func (h *History) Window(n int) []core.Turn {
	if n <= 0 || len(h.turns) <= n+1 {
		return h.Turns()
	}
	out := make([]core.Turn, 0, n+1)
	out = append(out, h.turns[0])
	out = append(out, h.turns[len(h.turns)-n:]...)
	return out
}
