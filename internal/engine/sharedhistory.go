package engine

import "sync/atomic"

// SharedHistory is a butterfly history table shared across Lazy SMP workers.
// Writes use atomic.Add so concurrent helper threads never tear an entry;
// contention is accepted as the cost of collective learning across threads,
// the same tradeoff Stockfish's Lazy SMP makes for its shared tables.
type SharedHistory struct {
	table [64][64]int64
}

// NewSharedHistory creates an empty shared history table.
func NewSharedHistory() *SharedHistory {
	return &SharedHistory{}
}

// Get returns the current shared history score for a from/to pair.
func (sh *SharedHistory) Get(from, to int) int {
	return int(atomic.LoadInt64(&sh.table[from][to]))
}

// Update adds a bonus to the shared history score for a from/to pair,
// ageing the whole table down when a single entry grows too large.
func (sh *SharedHistory) Update(from, to, bonus int) {
	newVal := atomic.AddInt64(&sh.table[from][to], int64(bonus))
	if newVal > 400000 {
		sh.age()
	} else if newVal < -400000 {
		atomic.StoreInt64(&sh.table[from][to], -400000)
	}
}

func (sh *SharedHistory) age() {
	for i := range sh.table {
		for j := range sh.table[i] {
			v := atomic.LoadInt64(&sh.table[i][j])
			atomic.StoreInt64(&sh.table[i][j], v/2)
		}
	}
}

// Clear resets the shared history table (called at the start of a new game).
func (sh *SharedHistory) Clear() {
	for i := range sh.table {
		for j := range sh.table[i] {
			atomic.StoreInt64(&sh.table[i][j], 0)
		}
	}
}
