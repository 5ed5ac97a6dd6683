package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/picolabs/pico/core"
)

func seedTurn() core.Turn {
	return core.Turn{Role: core.RoleSystem, Content: "seed"}
}

func TestHistory_AppendAndTurns(t *testing.T) {
	h := NewHistory(seedTurn())
	h.Append(core.Turn{Role: core.RoleUser, Content: "hi"})
	h.Append(core.Turn{Role: core.RoleAssistant, Content: "hello"})

	turns := h.Turns()
	assert.Len(t, turns, 3)
	assert.Equal(t, core.RoleSystem, turns[0].Role)
	assert.Equal(t, "hi", turns[1].Content)
	assert.Equal(t, "hello", turns[2].Content)
}

func TestHistory_TurnsReturnsCopy(t *testing.T) {
	h := NewHistory(seedTurn())
	h.Append(core.Turn{Role: core.RoleUser, Content: "hi"})

	turns := h.Turns()
	turns[1].Content = "mutated"
	assert.Equal(t, "hi", h.Turns()[1].Content)
}

func TestHistory_Window(t *testing.T) {
	h := NewHistory(seedTurn())
	for _, c := range []string{"u1", "a1", "u2", "a2", "u3", "a3"} {
		h.Append(core.Turn{Role: core.RoleUser, Content: c})
	}

	window := h.Window(2)
	assert.Len(t, window, 3)
	assert.Equal(t, "seed", window[0].Content)
	assert.Equal(t, "u3", window[1].Content)
	assert.Equal(t, "a3", window[2].Content)
}

func TestHistory_WindowUnbounded(t *testing.T) {
	h := NewHistory(seedTurn())
	h.Append(core.Turn{Role: core.RoleUser, Content: "u1"})

	assert.Len(t, h.Window(0), 2)
	assert.Len(t, h.Window(-1), 2)
}

func TestHistory_WindowLargerThanHistory(t *testing.T) {
	h := NewHistory(seedTurn())
	h.Append(core.Turn{Role: core.RoleUser, Content: "u1"})

	assert.Len(t, h.Window(10), 2)
}
