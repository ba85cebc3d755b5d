package testutils

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/dungeon-api/internal/errors"
)

// ScriptedRoller replays fixed rolls in order. It fails once the script runs out
// or when a scripted value does not fit the requested die.
type ScriptedRoller struct {
	rolls []int
	next  int
}

var _ dice.Roller = (*ScriptedRoller)(nil)

// NewScriptedRoller creates a roller that returns rolls in order
func NewScriptedRoller(rolls ...int) *ScriptedRoller {
	return &ScriptedRoller{rolls: rolls}
}

// RoomRolls scripts one placement attempt: a center at (x, y) and a size of
// width x depth, given the min room size the placer adds rolls to.
func RoomRolls(x, y, width, depth, minSize int) []int {
	return []int{x + 1, y + 1, width - minSize + 1, depth - minSize + 1}
}

// Roll returns the next scripted value
func (r *ScriptedRoller) Roll(size int) (int, error) {
	if r.next >= len(r.rolls) {
		return 0, errors.Internalf("scripted roller exhausted after %d rolls", len(r.rolls))
	}
	v := r.rolls[r.next]
	r.next++
	if v < 1 || v > size {
		return 0, errors.Internalf("scripted roll %d does not fit a d%d", v, size)
	}
	return v, nil
}

// RollN returns the next count scripted values
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Remaining returns how many scripted rolls have not been used.
func (r *ScriptedRoller) Remaining() int {
	return len(r.rolls) - r.next
}
