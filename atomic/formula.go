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
	"strconv"

	"github.com/gammatrace/transport/gammaerr"
)

// ParseFormula parses a Hill-style chemical formula ("H2O", "CaCO3",
// "(NH4)2SO4") into mole counts keyed by atomic number. Element symbols
// must be exact (case sensitive); a trailing integer or decimal gives the
// subscript, defaulting to 1. Parenthesized groups may themselves carry a
// multiplier.
func ParseFormula(formula string) (map[int]float64, error) {
	counts := map[int]float64{}
	_, err := parseGroup(formula, 0, counts)
	if err != nil {
		return nil, fmt.Errorf("atomic: parsing formula %q: %w", formula, err)
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("atomic: formula %q: %w", formula, gammaerr.ErrBadComposition)
	}
	return counts, nil
}

// parseGroup parses tokens starting at position i until it hits the end
// of the string or an unmatched ')', accumulating element counts into
// counts, and returns the position just past what it consumed.
func parseGroup(s string, i int, counts map[int]float64) (int, error) {
	for i < len(s) {
		switch {
		case s[i] == ')':
			return i, nil
		case s[i] == '(':
			sub := map[int]float64{}
			next, err := parseGroup(s, i+1, sub)
			if err != nil {
				return 0, err
			}
			if next >= len(s) || s[next] != ')' {
				return 0, fmt.Errorf("unmatched '('")
			}
			mult, next2 := readNumber(s, next+1, 1)
			for z, n := range sub {
				counts[z] += n * mult
			}
			i = next2
		case isUpper(s[i]):
			symEnd := i + 1
			for symEnd < len(s) && isLower(s[symEnd]) {
				symEnd++
			}
			sym := s[i:symEnd]
			el, ok := BySymbol[sym]
			if !ok {
				return 0, fmt.Errorf("%q: %w", sym, gammaerr.ErrUnknownElement)
			}
			mult, next := readNumber(s, symEnd, 1)
			counts[el.Z] += mult
			i = next
		default:
			return 0, fmt.Errorf("unexpected character %q at position %d", s[i], i)
		}
	}
	return i, nil
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isLower(b byte) bool { return b >= 'a' && b <= 'z' }

// readNumber reads an optional integer or decimal subscript starting at
// i, returning its value (or def if none is present) and the position
// just past the digits.
func readNumber(s string, i int, def float64) (float64, int) {
	start := i
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}
	if i == start {
		return def, i
	}
	v, err := strconv.ParseFloat(s[start:i], 64)
	if err != nil {
		return def, start
	}
	return v, i
}

// normalizedFractions converts raw non-negative counts into fractions
// that sum to 1, returning gammaerr.ErrBadComposition if any count is
// non-positive or the total is zero/non-finite.
func normalizedFractions(counts map[int]float64) (map[int]float64, error) {
	var total float64
	for z, n := range counts {
		if n <= 0 {
			return nil, fmt.Errorf("atomic: Z=%d has non-positive fraction %g: %w", z, n, gammaerr.ErrBadComposition)
		}
		total += n
	}
	if total <= 0 {
		return nil, fmt.Errorf("atomic: %w: zero total", gammaerr.ErrBadComposition)
	}
	out := make(map[int]float64, len(counts))
	for z, n := range counts {
		out[z] = n / total
	}
	return out, nil
}
