package units

import (
	"math"
	"testing"

	"github.com/claude/liftlog/internal/models"
)

// TestValidAge verifies the exclusive 0..150 bounds.
func TestValidAge(t *testing.T) {
	tests := []struct {
		age  int
		want bool
	}{
		{0, false},
		{1, true},
		{30, true},
		{149, true},
		{150, false},
		{-5, false},
	}

	for _, tt := range tests {
		if got := ValidAge(tt.age); got != tt.want {
			t.Errorf("ValidAge(%d) = %v, want %v", tt.age, got, tt.want)
		}
	}
}

// TestValidHeight verifies the per-unit exclusive upper bounds.
func TestValidHeight(t *testing.T) {
	tests := []struct {
		v    float64
		unit models.HeightUnit
		want bool
	}{
		{300, models.HeightCm, false},
		{299.9, models.HeightCm, true},
		{120, models.HeightIn, false},
		{119.9, models.HeightIn, true},
		{0, models.HeightCm, false},
		{-1, models.HeightIn, false},
		{175, "furlongs", false},
	}

	for _, tt := range tests {
		if got := ValidHeight(tt.v, tt.unit); got != tt.want {
			t.Errorf("ValidHeight(%v, %s) = %v, want %v", tt.v, tt.unit, got, tt.want)
		}
	}
}

// TestValidWeight verifies the per-unit exclusive upper bounds.
func TestValidWeight(t *testing.T) {
	tests := []struct {
		v    float64
		unit models.WeightUnit
		want bool
	}{
		{500, models.WeightKg, false},
		{499.9, models.WeightKg, true},
		{1100, models.WeightLbs, false},
		{1099.9, models.WeightLbs, true},
		{0, models.WeightKg, false},
	}

	for _, tt := range tests {
		if got := ValidWeight(tt.v, tt.unit); got != tt.want {
			t.Errorf("ValidWeight(%v, %s) = %v, want %v", tt.v, tt.unit, got, tt.want)
		}
	}
}

// TestValidName verifies that whitespace-only names are rejected.
func TestValidName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Bench Press", true},
		{"  Squat  ", true},
		{"", false},
		{"   ", false},
		{"\t\n", false},
	}

	for _, tt := range tests {
		if got := ValidName(tt.name); got != tt.want {
			t.Errorf("ValidName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// TestValidBulkCount verifies the inclusive 1..20 bulk-add bound.
func TestValidBulkCount(t *testing.T) {
	tests := []struct {
		n    int
		want bool
	}{
		{0, false},
		{1, true},
		{20, true},
		{21, false},
		{-3, false},
	}

	for _, tt := range tests {
		if got := ValidBulkCount(tt.n); got != tt.want {
			t.Errorf("ValidBulkCount(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

// TestConvertHeight verifies cm/in conversion both ways and the
// same-unit identity.
func TestConvertHeight(t *testing.T) {
	if got := ConvertHeight(2.54, models.HeightCm, models.HeightIn); math.Abs(got-1) > 1e-9 {
		t.Errorf("2.54 cm = %v in, want 1", got)
	}
	if got := ConvertHeight(1, models.HeightIn, models.HeightCm); math.Abs(got-2.54) > 1e-9 {
		t.Errorf("1 in = %v cm, want 2.54", got)
	}
	if got := ConvertHeight(180, models.HeightCm, models.HeightCm); got != 180 {
		t.Errorf("identity conversion changed the value: %v", got)
	}
}

// TestConvertWeight verifies kg/lbs conversion round-trips.
func TestConvertWeight(t *testing.T) {
	lbs := ConvertWeight(100, models.WeightKg, models.WeightLbs)
	if math.Abs(lbs-220.46226218) > 1e-6 {
		t.Errorf("100 kg = %v lbs, want 220.46226218", lbs)
	}
	back := ConvertWeight(lbs, models.WeightLbs, models.WeightKg)
	if math.Abs(back-100) > 1e-9 {
		t.Errorf("round trip = %v, want 100", back)
	}
}
