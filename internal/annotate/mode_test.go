package annotate

import (
	"errors"
	"testing"
)

func TestDeriveFodder(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"A Lot", "ALOT"},
		{"a lot", "ALOT"},
		{"  spaced  out  ", "SPACEDOUT"},
		{"", ""},
		{"one", "ONE"},
		{"tabs\tand\nnewlines", "TABSANDNEWLINES"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DeriveFodder(tt.input); got != tt.want {
				t.Errorf("DeriveFodder(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDeriveAbbreviation(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"A Lot To Change", "ALTC"},
		{"a lot to change", "ALTC"},
		{"single", "S"},
		{"", ""},
		{"  leading and   gaps ", "LAG"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DeriveAbbreviation(tt.input); got != tt.want {
				t.Errorf("DeriveAbbreviation(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultResolutionPerMode(t *testing.T) {
	reg := DefaultRegistry()

	tests := []struct {
		mode Mode
		text string
		want string
	}{
		{ModeFodder, "A Lot", "ALOT"},
		{ModeAbbreviation, "A Lot To Change", "ALTC"},
		{ModeSynonym, "anything", ""},
		{ModeDefinition, "anything", ""},
		{ModeIndicator, "anything", ""},
		{ModeClear, "anything", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got, err := reg.DefaultResolution(tt.mode, tt.text)
			if err != nil {
				t.Fatalf("DefaultResolution(%s) error: %v", tt.mode, err)
			}
			if got != tt.want {
				t.Errorf("DefaultResolution(%s, %q) = %q, want %q", tt.mode, tt.text, got, tt.want)
			}
		})
	}
}

func TestDefaultResolutionUnknownMode(t *testing.T) {
	reg := DefaultRegistry()

	if _, err := reg.DefaultResolution("bogus", "text"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

func TestRegistryByKey(t *testing.T) {
	reg := DefaultRegistry()

	d, ok := reg.ByKey('f')
	if !ok {
		t.Fatal("expected a descriptor bound to 'f'")
	}
	if d.Mode != ModeFodder {
		t.Errorf("ByKey('f') = %s, want %s", d.Mode, ModeFodder)
	}

	if _, ok := reg.ByKey('z'); ok {
		t.Error("expected no descriptor bound to 'z'")
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	if _, err := NewRegistry(
		Descriptor{Mode: ModeFodder, Key: 'f'},
		Descriptor{Mode: ModeFodder, Key: 'g'},
	); err == nil {
		t.Error("expected error for duplicate mode")
	}

	if _, err := NewRegistry(
		Descriptor{Mode: ModeFodder, Key: 'f'},
		Descriptor{Mode: ModeSynonym, Key: 'f'},
	); err == nil {
		t.Error("expected error for duplicate key")
	}
}

func TestWithDeriver(t *testing.T) {
	reg := DefaultRegistry()

	custom, err := reg.WithDeriver(ModeSynonym, func(text string) string {
		return "CUSTOM"
	})
	if err != nil {
		t.Fatalf("WithDeriver: %v", err)
	}

	got, err := custom.DefaultResolution(ModeSynonym, "anything")
	if err != nil {
		t.Fatalf("DefaultResolution: %v", err)
	}
	if got != "CUSTOM" {
		t.Errorf("custom deriver not applied, got %q", got)
	}

	// The original registry is unchanged.
	orig, err := reg.DefaultResolution(ModeSynonym, "anything")
	if err != nil {
		t.Fatalf("DefaultResolution: %v", err)
	}
	if orig != "" {
		t.Errorf("original registry mutated, got %q", orig)
	}
}

func TestWithKeyRejectsConflicts(t *testing.T) {
	reg := DefaultRegistry()

	if _, err := reg.WithKey(ModeSynonym, 'f'); err == nil {
		t.Error("expected conflict error rebinding synonym onto fodder's key")
	}

	rebound, err := reg.WithKey(ModeSynonym, 'y')
	if err != nil {
		t.Fatalf("WithKey: %v", err)
	}
	if d, ok := rebound.ByKey('y'); !ok || d.Mode != ModeSynonym {
		t.Error("rebinding to a free key failed")
	}
}
