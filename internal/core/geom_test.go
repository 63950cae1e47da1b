package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"last column", 29, 24, true},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestRectCentered(t *testing.T) {
	outer := NewRect(0, 0, 80, 24)
	inner := outer.Centered(20, 4)

	if inner.X != 30 || inner.Y != 10 {
		t.Errorf("Centered() origin = (%d, %d), expected (30, 10)", inner.X, inner.Y)
	}
	if inner.W != 20 || inner.H != 4 {
		t.Errorf("Centered() size = %dx%d, expected 20x4", inner.W, inner.H)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestAbs(t *testing.T) {
	if Abs(5) != 5 {
		t.Error("Abs(5) should be 5")
	}
	if Abs(-5) != 5 {
		t.Error("Abs(-5) should be 5")
	}
	if Abs(0) != 0 {
		t.Error("Abs(0) should be 0")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name  string
		want  Color
		found bool
	}{
		{"bright_green", ColorBrightGreen, true},
		{" Red ", ColorRed, true},
		{"gray", ColorGray, true},
		{"chartreuse", ColorDefault, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseColor(tc.name)
			if got != tc.want || ok != tc.found {
				t.Errorf("ParseColor(%q) = (%v, %v), expected (%v, %v)", tc.name, got, ok, tc.want, tc.found)
			}
		})
	}
}
