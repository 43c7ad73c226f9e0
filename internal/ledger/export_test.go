package ledger

import "github.com/splithaus/backend/internal/types"

var Round2 = round2

// PinToday fixes the engine clock for tests and returns a function that
// restores the real clock.
func PinToday(day types.Day) func() {
	previous := today
	today = func() types.Day { return day }
	return func() { today = previous }
}
