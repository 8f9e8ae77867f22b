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

// AbsorptionProcess models photoelectric absorption: terminal, with no
// outgoing sample. It exists as a type mainly so the engine's channel
// dispatch (package engine's INTERACT step) can treat all three
// processes uniformly; there is no state to hold.
type AbsorptionProcess struct{}

// Terminal reports that absorption always ends the trajectory.
func (AbsorptionProcess) Terminal() bool { return true }
