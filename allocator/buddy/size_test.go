package buddy

import "testing"

func TestIsPowerOfTwo(t *testing.T) {
	for _, x := range []int{1, 2, 4, 8, 1024, 1 << 30} {
		if !IsPowerOfTwo(x) {
			t.Errorf("IsPowerOfTwo(%d) = false", x)
		}
	}
	for _, x := range []int{0, -1, -8, 3, 6, 12, 1023} {
		if IsPowerOfTwo(x) {
			t.Errorf("IsPowerOfTwo(%d) = true", x)
		}
	}
}

func TestBestSize(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		minBlock int
		maxBlock int
		want     int
		wantOK   bool
	}{
		{"exact power of two", 64, 8, 256, 64, true},
		{"rounds up", 24, 8, 256, 32, true},
		{"clamped up to min", 2, 8, 256, 8, true},
		{"one unit", 1, 1, 512, 1, true},
		{"rounds to max exactly", 200, 8, 256, 256, true},
		{"exceeds max after rounding", 257, 8, 256, 0, false},
		{"exceeds max before rounding", 1000, 8, 256, 0, false},
		{"zero count", 0, 8, 256, 0, false},
		{"negative count", -5, 8, 256, 0, false},
		{"min equals max", 16, 16, 16, 16, true},
		{"min equals max too big", 17, 16, 16, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BestSize(tt.count, tt.minBlock, tt.maxBlock)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("BestSize(%d, %d, %d) = %d, %v; want %d, %v",
					tt.count, tt.minBlock, tt.maxBlock, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
