package engine

import (
	"github.com/DhaniAAA/gcchess/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

// clusterSize is the number of entries sharing one index, Stockfish-style.
// Clustering lets Store keep several positions per index; Probe returns the
// first entry whose key matches. There is no multi-move lookup.
const clusterSize = 3

// TTEntry represents an entry in the transposition table.
type TTEntry struct {
	Key        uint32     // Upper 32 bits of Zobrist hash for verification
	BestMove   board.Move // Best move found
	Score      int16      // Score (bounded by flag)
	StaticEval int16      // Static eval at the time of store, for correction/pruning reuse
	Depth      int8       // Search depth
	Flag       TTFlag     // Type of bound
	IsPV       bool       // Whether this node was searched with a PV window
	Age        uint8      // Generation for replacement
}

func (e *TTEntry) occupied() bool {
	return e.Depth > 0 || e.BestMove != board.NoMove
}

// ttCluster groups clusterSize entries under one hashed index.
type ttCluster struct {
	entries [clusterSize]TTEntry
}

// TranspositionTable is a clustered hash table for storing search results.
// Reads are unsynchronized: concurrent Lazy SMP workers may race on a
// cluster slot, so every probe revalidates the stored key before trusting
// the rest of the entry (the "torn write" tolerance used by Stockfish).
type TranspositionTable struct {
	clusters []ttCluster
	size     uint64
	mask     uint64
	age      uint8

	// Statistics
	hits   uint64
	probes uint64
}

// NewTranspositionTable creates a transposition table with the given size in MB.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	clusterBytes := uint64(clusterSize) * 16 // approx bytes per TTEntry, rounded
	numClusters := (uint64(sizeMB) * 1024 * 1024) / clusterBytes
	numClusters = roundDownToPowerOf2(numClusters)
	if numClusters == 0 {
		numClusters = 1
	}

	return &TranspositionTable{
		clusters: make([]ttCluster, numClusters),
		size:     numClusters,
		mask:     numClusters - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up a position in the transposition table.
// Returns the entry and true if found, otherwise returns empty entry and false.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	tt.probes++

	cluster := &tt.clusters[hash&tt.mask]
	key := uint32(hash >> 32)

	for i := range cluster.entries {
		e := cluster.entries[i]
		if e.Key == key && e.occupied() {
			tt.hits++
			return e, true
		}
	}

	return TTEntry{}, false
}

// Store saves a position in the transposition table, replacing the
// shallowest/oldest entry in the cluster.
func (tt *TranspositionTable) Store(hash uint64, depth int, score int, flag TTFlag, bestMove board.Move, isPV bool) {
	tt.StoreWithEval(hash, depth, score, 0, flag, bestMove, isPV)
}

// StoreWithEval is Store plus a static evaluation, reused by pruning and
// correction history on a later probe of the same key.
func (tt *TranspositionTable) StoreWithEval(hash uint64, depth int, score int, staticEval int, flag TTFlag, bestMove board.Move, isPV bool) {
	cluster := &tt.clusters[hash&tt.mask]
	key := uint32(hash >> 32)

	// Prefer an exact key match in the cluster; otherwise replace the
	// entry with the lowest (age, depth) priority.
	replace := 0
	replacePriority := -1 << 31
	for i := range cluster.entries {
		e := &cluster.entries[i]
		if e.Key == key {
			replace = i
			break
		}
		priority := int(e.Depth)
		if e.Age != tt.age {
			priority -= 64 // old-generation entries are cheap to evict
		}
		if priority > replacePriority {
			replacePriority = priority
			replace = i
		} else if !e.occupied() {
			replace = i
			break
		}
	}

	e := &cluster.entries[replace]
	if e.Key == key && depth < int(e.Depth) && e.Age == tt.age {
		// Keep the deeper same-generation entry, but move move/eval forward.
		if bestMove != board.NoMove {
			e.BestMove = bestMove
		}
		return
	}

	e.Key = key
	e.BestMove = bestMove
	e.Score = int16(score)
	e.StaticEval = int16(staticEval)
	e.Depth = int8(depth)
	e.Flag = flag
	e.IsPV = isPV
	e.Age = tt.age
}

// NewSearch increments the age counter for a new search.
// This helps with replacement decisions.
func (tt *TranspositionTable) NewSearch() {
	tt.age++
}

// Clear clears the transposition table.
func (tt *TranspositionTable) Clear() {
	for i := range tt.clusters {
		tt.clusters[i] = ttCluster{}
	}
	tt.age = 0
	tt.hits = 0
	tt.probes = 0
}

// HashFull returns the permille (parts per thousand) of the table that is used.
func (tt *TranspositionTable) HashFull() int {
	used := 0
	sampleSize := 1000
	if uint64(sampleSize) > tt.size {
		sampleSize = int(tt.size)
	}

	for i := 0; i < sampleSize; i++ {
		for _, e := range tt.clusters[i].entries {
			if e.occupied() && e.Age == tt.age {
				used++
				break
			}
		}
	}

	return (used * 1000) / sampleSize
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// Size returns the number of clusters in the table.
func (tt *TranspositionTable) Size() uint64 {
	return tt.size
}

// AdjustScore adjusts a score from/to the transposition table.
// Mate scores need to be adjusted based on ply distance.
func AdjustScoreFromTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}

// AdjustScoreToTT adjusts a score for storage in the transposition table.
func AdjustScoreToTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}
