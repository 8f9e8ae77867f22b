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

package process

import (
	"github.com/gammatrace/transport/prng"
	"github.com/gammatrace/transport/xsect"
)

// SelectChannel picks an interaction channel at energy E by an inverse-
// CDF draw weighted by each process's per-mass cross section in rec.
// It returns xsect.Photoelectric as a safe default if every
// cross section evaluates to zero (a material with no registered
// processes), which should never occur for a compiled record.
func SelectChannel(rec *xsect.MaterialRecord, E float64, stream *prng.Stream) xsect.Process {
	photo := rec.Tables[xsect.Photoelectric].Evaluate(E)
	compton := rec.Tables[xsect.Compton].Evaluate(E)
	rayleigh := rec.Tables[xsect.Rayleigh].Evaluate(E)

	total := photo + compton + rayleigh
	if total <= 0 {
		return xsect.Photoelectric
	}

	u := stream.Float64() * total
	if u < photo {
		return xsect.Photoelectric
	}
	u -= photo
	if u < compton {
		return xsect.Compton
	}
	return xsect.Rayleigh
}
