package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextTurnCycles(t *testing.T) {
	tests := []struct {
		name  string
		order []string
	}{
		{name: "two players", order: []string{"a", "b"}},
		{name: "three players", order: []string{"a", "b", "c"}},
		{name: "five players", order: []string{"a", "b", "c", "d", "e"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := tt.order[0]
			for i := 0; i < len(tt.order); i++ {
				current = NextTurn(tt.order, current)
			}
			assert.Equal(t, tt.order[0], current, "N calls must return to the start")
		})
	}
}

func TestNextTurnUnknownIdentity(t *testing.T) {
	order := []string{"a", "b", "c"}
	assert.Equal(t, "a", NextTurn(order, "ghost"))
}

func TestNextTurnEmptyOrder(t *testing.T) {
	assert.Equal(t, "", NextTurn(nil, "a"))
}
