// Package reference holds immutable tables of laboratory line wavelengths
// (in Ångström) used to identify an element in an observed spectrum.
//
// Tables are created once at startup and shared read-only between
// concurrent analyses; no method mutates a Table.
package reference

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cwbudde/algo-lines/dsp/core"
)

var (
	// ErrEmptyTable is returned when a table has no wavelengths.
	ErrEmptyTable = errors.New("reference: table has no wavelengths")
	// ErrInvalidWavelength is returned for non-positive or non-finite entries.
	ErrInvalidWavelength = errors.New("reference: invalid wavelength")
	// ErrUnknownTable is returned by Lookup for unregistered names.
	ErrUnknownTable = errors.New("reference: unknown table")
)

// Table is a named, immutable, sorted set of reference wavelengths.
type Table struct {
	name        string
	wavelengths []float64
}

// NewTable validates and copies wavelengths into a sorted table.
func NewTable(name string, wavelengths []float64) (Table, error) {
	if len(wavelengths) == 0 {
		return Table{}, fmt.Errorf("%w: %q", ErrEmptyTable, name)
	}
	ws := append([]float64(nil), wavelengths...)
	for _, w := range ws {
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return Table{}, fmt.Errorf("%w: %q has %v", ErrInvalidWavelength, name, w)
		}
	}
	sort.Float64s(ws)
	return Table{name: name, wavelengths: ws}, nil
}

func mustTable(name string, wavelengths ...float64) Table {
	t, err := NewTable(name, wavelengths)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the table name.
func (t Table) Name() string { return t.name }

// Len returns the number of wavelengths.
func (t Table) Len() int { return len(t.wavelengths) }

// At returns the i-th wavelength in increasing order.
func (t Table) At(i int) float64 { return t.wavelengths[i] }

// Wavelengths returns a copy of the sorted wavelengths.
func (t Table) Wavelengths() []float64 {
	return append([]float64(nil), t.wavelengths...)
}

// Union merges tables into a new table named name. A wavelength listed by
// more than one table is kept once, so it cannot be matched twice.
func Union(name string, tables ...Table) Table {
	var ws []float64
	for _, t := range tables {
		ws = append(ws, t.wavelengths...)
	}
	sort.Float64s(ws)

	out := ws[:0]
	for _, w := range ws {
		if len(out) > 0 && core.NearlyEqual(out[len(out)-1], w, 1e-9) {
			continue
		}
		out = append(out, w)
	}
	return Table{name: name, wavelengths: out}
}

// Built-in helium tables. The He I 3888.65 Å line sits close to strong lines
// of many other species and is a common source of false positives.
var (
	HeliumI  = mustTable("He I", 3888.65, 4471.5, 5015.678, 5875.6404, 6678.1517, 7065.2153)
	HeliumII = mustTable("He II", 4685.7)
	Helium   = Union("He", HeliumI, HeliumII)
)

var builtin = map[string]Table{
	"helium":    Helium,
	"he":        Helium,
	"helium-i":  HeliumI,
	"he-i":      HeliumI,
	"he1":       HeliumI,
	"helium-ii": HeliumII,
	"he-ii":     HeliumII,
	"he2":       HeliumII,
}

// Lookup returns the built-in table registered under name (case-insensitive).
func Lookup(name string) (Table, error) {
	t, ok := builtin[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Table{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownTable, name, strings.Join(Names(), ", "))
	}
	return t, nil
}

// Names lists the registered lookup keys in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for k := range builtin {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
