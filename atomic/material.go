// Copyright (C) 2024 the gammatrace authors.
// This file is part of gammatrace.
//
// gammatrace is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// gammatrace is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with gammatrace.  If not, see <http://www.gnu.org/licenses/>.

package atomic

import (
	"fmt"
	"math"

	"github.com/gammatrace/transport/gammaerr"
)

// MaterialDefinition is an immutable composition record: a name plus a
// canonical mole-fraction vector over atomic number. Two definitions
// compare equal (Equal) iff their mole vectors agree within 1e-12.
type MaterialDefinition struct {
	Name string

	// moles[z] is the mole fraction of element z, for z in [1, MaxZ].
	// moles[0] is always zero and unused.
	moles [MaxZ + 1]float64
}

// MoleFraction returns the mole fraction of element z in the material.
func (d MaterialDefinition) MoleFraction(z int) float64 {
	if z < 1 || z > MaxZ {
		return 0
	}
	return d.moles[z]
}

// Elements returns the atomic numbers with non-zero mole fraction, in
// increasing order of Z.
func (d MaterialDefinition) Elements() []int {
	var zs []int
	for z := 1; z <= MaxZ; z++ {
		if d.moles[z] > 0 {
			zs = append(zs, z)
		}
	}
	return zs
}

// MolarMass returns the composition's mean molar mass in g/mol.
func (d MaterialDefinition) MolarMass() float64 {
	var m float64
	for z := 1; z <= MaxZ; z++ {
		if d.moles[z] > 0 {
			m += d.moles[z] * PeriodicTable[z].MolarMass
		}
	}
	return m
}

// ElectronsPerMass returns the number of electrons per gram of material
// (Avogadro's number times mean Z over molar mass), the quantity that
// scales the free-electron Compton cross section to a per-mass basis.
func (d MaterialDefinition) ElectronsPerMass() float64 {
	const avogadro = 6.02214076e23
	var zMean float64
	for z := 1; z <= MaxZ; z++ {
		if d.moles[z] > 0 {
			zMean += d.moles[z] * float64(z)
		}
	}
	m := d.MolarMass()
	if m <= 0 {
		return 0
	}
	return avogadro * zMean / m
}

// MeanZ returns the mole-fraction-weighted mean atomic number, the
// effective Z used by empirical per-material scattering corrections
// (e.g. the incoherent scattering function).
func (d MaterialDefinition) MeanZ() float64 {
	var zMean float64
	for z := 1; z <= MaxZ; z++ {
		if d.moles[z] > 0 {
			zMean += d.moles[z] * float64(z)
		}
	}
	return zMean
}

// Equal reports whether two definitions have the same canonical
// mole-fraction vector within 1e-12.
func (d MaterialDefinition) Equal(other MaterialDefinition) bool {
	const tol = 1e-12
	for z := 1; z <= MaxZ; z++ {
		if math.Abs(d.moles[z]-other.moles[z]) > tol {
			return false
		}
	}
	return true
}

// NewFromFormula builds a material definition from a Hill-style chemical
// formula, e.g. NewFromFormula("water", "H2O").
func NewFromFormula(name, formula string) (MaterialDefinition, error) {
	counts, err := ParseFormula(formula)
	if err != nil {
		return MaterialDefinition{}, err
	}
	return NewFromMoleFractions(name, counts)
}

// NewFromMoleFractions builds a material definition directly from mole
// fractions (or any positive weights; they are normalized) keyed by
// atomic number.
func NewFromMoleFractions(name string, moles map[int]float64) (MaterialDefinition, error) {
	if err := validateZRange(moles); err != nil {
		return MaterialDefinition{}, err
	}
	norm, err := normalizedFractions(moles)
	if err != nil {
		return MaterialDefinition{}, err
	}
	var d MaterialDefinition
	d.Name = name
	for z, f := range norm {
		d.moles[z] = f
	}
	return d, nil
}

// NewFromMassFractions builds a material definition from mass fractions
// of individual elements, converting to mole fractions via
// fraction_i / molarMass_i.
func NewFromMassFractions(name string, massFractions map[int]float64) (MaterialDefinition, error) {
	if err := validateZRange(massFractions); err != nil {
		return MaterialDefinition{}, err
	}
	moles := make(map[int]float64, len(massFractions))
	for z, mf := range massFractions {
		if mf <= 0 {
			return MaterialDefinition{}, fmt.Errorf("atomic: Z=%d has non-positive mass fraction %g: %w", z, mf, gammaerr.ErrBadComposition)
		}
		moles[z] = mf / PeriodicTable[z].MolarMass
	}
	return NewFromMoleFractions(name, moles)
}

// NewFromSubMaterials builds a material definition as a mass-weighted
// blend of other material definitions, e.g. concrete as a blend of
// cement, aggregate, and water. Fractions are mass fractions of the
// whole, normalized.
func NewFromSubMaterials(name string, fractions map[MaterialDefinition]float64) (MaterialDefinition, error) {
	if len(fractions) == 0 {
		return MaterialDefinition{}, fmt.Errorf("atomic: %w: no sub-materials", gammaerr.ErrBadComposition)
	}
	var total float64
	for sub, mf := range fractions {
		if mf <= 0 {
			return MaterialDefinition{}, fmt.Errorf("atomic: sub-material %q has non-positive fraction %g: %w", sub.Name, mf, gammaerr.ErrBadComposition)
		}
		total += mf
	}
	moles := map[int]float64{}
	for sub, mf := range fractions {
		massFrac := mf / total
		for _, z := range sub.Elements() {
			// Convert the sub-material's contribution to the blend's
			// mass back into moles of element z: the sub-material
			// contributes massFrac grams per gram of blend, of which
			// sub.moles[z]*molarMass(z)/sub.MolarMass() grams-fraction
			// is element z.
			elementMassFrac := sub.moles[z] * PeriodicTable[z].MolarMass / sub.MolarMass()
			moles[z] += massFrac * elementMassFrac / PeriodicTable[z].MolarMass
		}
	}
	return NewFromMoleFractions(name, moles)
}

func validateZRange(m map[int]float64) error {
	for z := range m {
		if z < 1 || z > MaxZ {
			return fmt.Errorf("atomic: Z=%d: %w", z, gammaerr.ErrBadZ)
		}
	}
	return nil
}
