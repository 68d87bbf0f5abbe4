package annotate

import (
	"fmt"
	"strings"
	"unicode"
)

// Mode identifies how a tagged span functions in the clue.
type Mode string

// Standard annotation modes.
const (
	ModeFodder       Mode = "fodder"
	ModeSynonym      Mode = "synonym"
	ModeAbbreviation Mode = "abbreviation"
	ModeIndicator    Mode = "indicator"
	ModeDefinition   Mode = "definition"
	ModeClear        Mode = "clear"
)

// DeriveFunc computes a default resolution from a span's text.
type DeriveFunc func(text string) string

// Descriptor bundles the behavior of one mode: whether it carries an
// editable resolution, how a default resolution is derived, whether the
// wordplay picker applies, and how the mode is presented and keyed.
type Descriptor struct {
	Mode  Mode
	Label string
	Key   rune

	// EditsResolution exposes the resolution field for manual editing.
	EditsResolution bool

	// Derive computes the default resolution at tag time. Nil means the
	// mode starts with an empty resolution.
	Derive DeriveFunc

	// HasWordplay exposes the wordplay classification picker.
	HasWordplay bool

	// Clears makes selections under this mode erase overlapped segments
	// instead of creating one.
	Clears bool
}

// Registry is an immutable lookup table of mode descriptors. It is built
// once at startup and passed by value into the reconciler and views; there
// is no ambient global table.
type Registry struct {
	descriptors map[Mode]Descriptor
	order       []Mode
}

// NewRegistry builds a registry from descriptors. Duplicate modes or
// duplicate shortcut keys are configuration errors.
func NewRegistry(descs ...Descriptor) (Registry, error) {
	reg := Registry{
		descriptors: make(map[Mode]Descriptor, len(descs)),
		order:       make([]Mode, 0, len(descs)),
	}
	keys := make(map[rune]Mode, len(descs))

	for _, d := range descs {
		if d.Mode == "" {
			return Registry{}, fmt.Errorf("descriptor with empty mode")
		}
		if _, exists := reg.descriptors[d.Mode]; exists {
			return Registry{}, fmt.Errorf("duplicate mode: %s", d.Mode)
		}
		if d.Key != 0 {
			if prev, taken := keys[d.Key]; taken {
				return Registry{}, fmt.Errorf("key %q bound to both %s and %s", d.Key, prev, d.Mode)
			}
			keys[d.Key] = d.Mode
		}
		reg.descriptors[d.Mode] = d
		reg.order = append(reg.order, d.Mode)
	}

	return reg, nil
}

// DefaultRegistry returns the standard mode set with its built-in derivers
// and default shortcut keys.
func DefaultRegistry() Registry {
	reg, err := NewRegistry(
		Descriptor{Mode: ModeFodder, Label: "Fodder", Key: 'f', EditsResolution: true, Derive: DeriveFodder, HasWordplay: true},
		Descriptor{Mode: ModeSynonym, Label: "Synonym", Key: 's', EditsResolution: true},
		Descriptor{Mode: ModeAbbreviation, Label: "Abbreviation", Key: 'a', EditsResolution: true, Derive: DeriveAbbreviation},
		Descriptor{Mode: ModeIndicator, Label: "Indicator", Key: 'i', HasWordplay: true},
		Descriptor{Mode: ModeDefinition, Label: "Definition", Key: 'd', EditsResolution: true},
		Descriptor{Mode: ModeClear, Label: "Clear", Key: 'c', Clears: true},
	)
	if err != nil {
		// The built-in table is static; failing to build it is a bug.
		panic(err)
	}
	return reg
}

// Descriptor looks up a mode's behavior. An unknown mode is a configuration
// error, never user-triggered in normal operation.
func (r Registry) Descriptor(m Mode) (Descriptor, error) {
	d, ok := r.descriptors[m]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownMode, m)
	}
	return d, nil
}

// ByKey returns the descriptor bound to a shortcut key.
func (r Registry) ByKey(key rune) (Descriptor, bool) {
	for _, m := range r.order {
		if d := r.descriptors[m]; d.Key == key {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Modes returns all modes in registration order.
func (r Registry) Modes() []Mode {
	out := make([]Mode, len(r.order))
	copy(out, r.order)
	return out
}

// DefaultResolution derives the default resolution for a mode over the
// given span text. Modes without a deriver yield the empty string.
func (r Registry) DefaultResolution(m Mode, text string) (string, error) {
	d, err := r.Descriptor(m)
	if err != nil {
		return "", err
	}
	if d.Derive == nil {
		return "", nil
	}
	return d.Derive(text), nil
}

// WithDeriver returns a copy of the registry with the mode's deriver
// replaced. Used to install user-defined derivers over the defaults.
func (r Registry) WithDeriver(m Mode, fn DeriveFunc) (Registry, error) {
	d, err := r.Descriptor(m)
	if err != nil {
		return Registry{}, err
	}
	d.Derive = fn

	out := Registry{
		descriptors: make(map[Mode]Descriptor, len(r.descriptors)),
		order:       make([]Mode, len(r.order)),
	}
	copy(out.order, r.order)
	for k, v := range r.descriptors {
		out.descriptors[k] = v
	}
	out.descriptors[m] = d
	return out, nil
}

// WithKey returns a copy of the registry with the mode's shortcut rebound.
func (r Registry) WithKey(m Mode, key rune) (Registry, error) {
	d, err := r.Descriptor(m)
	if err != nil {
		return Registry{}, err
	}
	for _, other := range r.order {
		if other != m && r.descriptors[other].Key == key {
			return Registry{}, fmt.Errorf("key %q already bound to %s", key, other)
		}
	}
	d.Key = key

	out := Registry{
		descriptors: make(map[Mode]Descriptor, len(r.descriptors)),
		order:       make([]Mode, len(r.order)),
	}
	copy(out.order, r.order)
	for k, v := range r.descriptors {
		out.descriptors[k] = v
	}
	out.descriptors[m] = d
	return out, nil
}

// DeriveFodder strips all whitespace and uppercases the remainder: the
// letters are the literal fodder the wordplay operates on.
func DeriveFodder(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// DeriveAbbreviation takes the first rune of each whitespace-delimited word,
// uppercased and concatenated, modeling acrostic and initialism clues.
func DeriveAbbreviation(text string) string {
	var b strings.Builder
	for _, word := range strings.Fields(text) {
		for _, r := range word {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	return b.String()
}
