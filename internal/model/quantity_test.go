package model

import (
	"database/sql"
	"testing"
)

// TestParseQuantity tests the shared quantity rule.
func TestParseQuantity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  sql.NullString
		want   int
		wantOK bool
	}{
		{name: "NULL is excluded", input: sql.NullString{}, want: 0, wantOK: false},
		{name: "empty is excluded", input: sql.NullString{String: "", Valid: true}, want: 0, wantOK: false},
		{name: "blank is excluded", input: sql.NullString{String: "   ", Valid: true}, want: 0, wantOK: false},
		{name: "zero is excluded", input: sql.NullString{String: "0", Valid: true}, want: 0, wantOK: false},
		{name: "negative is excluded", input: sql.NullString{String: "-2", Valid: true}, want: 0, wantOK: false},
		{name: "text is excluded", input: sql.NullString{String: "n/a", Valid: true}, want: 0, wantOK: false},
		{name: "decimal is excluded", input: sql.NullString{String: "1.5", Valid: true}, want: 0, wantOK: false},
		{name: "trailing garbage is excluded", input: sql.NullString{String: "5abc", Valid: true}, want: 0, wantOK: false},
		{name: "one", input: sql.NullString{String: "1", Valid: true}, want: 1, wantOK: true},
		{name: "seven", input: sql.NullString{String: "7", Valid: true}, want: 7, wantOK: true},
		{name: "surrounding whitespace is ignored", input: sql.NullString{String: " 3 ", Valid: true}, want: 3, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseQuantity(tt.input)
			if ok != tt.wantOK {
				t.Errorf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

// TestAgeRangeContains tests the inclusive age bounds.
func TestAgeRangeContains(t *testing.T) {
	t.Parallel()

	tests := []struct {
		age  int
		want bool
	}{
		{age: 17, want: false},
		{age: 18, want: true},
		{age: 21, want: true},
		{age: 35, want: true},
		{age: 36, want: false},
		{age: 40, want: false},
	}

	for _, tt := range tests {
		if got := DefaultAgeRange.Contains(tt.age); got != tt.want {
			t.Errorf("Contains(%d): expected %v, got %v", tt.age, tt.want, got)
		}
	}
}

// TestQuantityStages tests the building blocks used by the pipeline.
func TestQuantityStages(t *testing.T) {
	t.Parallel()

	t.Run("QuantityPresent", func(t *testing.T) {
		t.Parallel()
		if QuantityPresent(sql.NullString{}) {
			t.Error("NULL must not be present")
		}
		if QuantityPresent(sql.NullString{String: " ", Valid: true}) {
			t.Error("blank must not be present")
		}
		if !QuantityPresent(sql.NullString{String: "0", Valid: true}) {
			t.Error("zero is present")
		}
	})

	t.Run("CoerceQuantity", func(t *testing.T) {
		t.Parallel()
		if n, ok := CoerceQuantity("0"); !ok || n != 0 {
			t.Errorf("expected 0/true, got %d/%v", n, ok)
		}
		if n, ok := CoerceQuantity("-4"); !ok || n != -4 {
			t.Errorf("expected -4/true, got %d/%v", n, ok)
		}
		if _, ok := CoerceQuantity("four"); ok {
			t.Error("expected coercion failure")
		}
	})

	t.Run("PositiveQuantity", func(t *testing.T) {
		t.Parallel()
		if PositiveQuantity(0) || PositiveQuantity(-1) {
			t.Error("non-positive quantities must not count")
		}
		if !PositiveQuantity(1) {
			t.Error("1 must count")
		}
	})
}
