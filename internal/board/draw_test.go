package board

import "testing"

// TestInsufficientMaterialKvK covers spec scenario S5: two bare kings is a
// draw by insufficient material at any depth.
func TestInsufficientMaterialKvK(t *testing.T) {
	pos, err := ParseFEN("8/8/4k3/8/3K4/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	if !pos.IsInsufficientMaterial() {
		t.Error("K vs K should be insufficient material")
	}
	if !pos.IsDraw() {
		t.Error("K vs K should be a draw")
	}
}

func TestInsufficientMaterialKNNvK(t *testing.T) {
	pos, err := ParseFEN("8/8/4k3/8/3K4/8/8/NN6 w - - 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	if !pos.IsInsufficientMaterial() {
		t.Error("K+2N vs K should be insufficient material (two knights cannot force mate)")
	}
}

func TestInsufficientMaterialSameColorBishops(t *testing.T) {
	// White bishop on c1 and black bishop on f8 are both dark squares: same complex.
	pos, err := ParseFEN("5b2/8/8/8/4k3/8/8/2B1K3 w - - 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	if !pos.IsInsufficientMaterial() {
		t.Error("K+B vs K+B with same-color bishops should be insufficient material")
	}
}

func TestInsufficientMaterialOppositeColorBishops(t *testing.T) {
	// White bishop on c1 (dark) and black bishop on c8 (light): opposite complex, can still win.
	pos, err := ParseFEN("2b1k3/8/8/8/8/8/8/2B1K3 w - - 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	if pos.IsInsufficientMaterial() {
		t.Error("K+B vs K+B with opposite-color bishops should NOT be insufficient material")
	}
}

func TestSufficientMaterialWithPawn(t *testing.T) {
	pos, err := ParseFEN("8/8/4k3/8/3K4/4P3/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	if pos.IsInsufficientMaterial() {
		t.Error("K+P vs K should be sufficient material")
	}
}
