package engine

import (
	"github.com/DhaniAAA/gcchess/internal/board"
)

// correctionHistorySize must be a power of two; pawn keys are folded into it.
const correctionHistorySize = 16384

// CorrectionHistory adjusts static evaluation based on search results.
// When the search discovers the static eval was wrong, we record the error
// and apply corrections to similar pawn structures in the future.
// Based on Stockfish's correction history, indexed per side by pawn key
// rather than the full position hash so the correction generalizes across
// positions that only differ in piece placement behind the same pawn chain.
type CorrectionHistory struct {
	table [2][correctionHistorySize]int32
}

// NewCorrectionHistory creates a new correction history table.
func NewCorrectionHistory() *CorrectionHistory {
	return &CorrectionHistory{}
}

func corrIndex(pos *board.Position) (board.Color, uint64) {
	return pos.SideToMove, pos.PawnKey & (correctionHistorySize - 1)
}

// Get returns the correction to add to the static evaluation for this position.
// The stored value is kept at 512x scale so updates accumulate without
// losing precision to repeated integer division; Get rescales on read.
func (ch *CorrectionHistory) Get(pos *board.Position) int {
	c, idx := corrIndex(pos)
	return int(ch.table[c][idx]) / 512
}

// Update records a correction based on the difference between the search
// result and the static evaluation. Uses gravity update: new = old +
// (bonus - old) * weight / divisor, matching Stockfish's update_correction.
func (ch *CorrectionHistory) Update(pos *board.Position, searchScore, staticEval, depth int) {
	if depth < 1 {
		return
	}

	diff := (searchScore - staticEval) * 512
	bonus := diff * depth / 8

	const maxBonus = 512 * 256
	if bonus > maxBonus {
		bonus = maxBonus
	} else if bonus < -maxBonus {
		bonus = -maxBonus
	}

	c, idx := corrIndex(pos)
	old := ch.table[c][idx]

	weight := depth
	if weight > 16 {
		weight = 16
	}
	newVal := old + (int32(bonus)-old)*int32(weight)/32

	const clamp = 512 * 16000
	if newVal > clamp {
		newVal = clamp
	} else if newVal < -clamp {
		newVal = -clamp
	}

	ch.table[c][idx] = newVal
}

// Clear resets all correction values.
func (ch *CorrectionHistory) Clear() {
	for c := range ch.table {
		for i := range ch.table[c] {
			ch.table[c][i] = 0
		}
	}
}

// Age scales down all correction values.
func (ch *CorrectionHistory) Age() {
	for c := range ch.table {
		for i := range ch.table[c] {
			ch.table[c][i] /= 2
		}
	}
}
