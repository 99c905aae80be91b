// This file is part of Bridge2600.
//
// Bridge2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Bridge2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Bridge2600.  If not, see <https://www.gnu.org/licenses/>.

// Package curated provides the error type used throughout the project. A
// curated error keeps hold of the pattern string it was created with, which
// allows errors to be tested for identity without string comparison of the
// formatted message.
//
// Sentinel patterns are declared by the package that creates them. For
// example, the vcslib package declares the StopExecution pattern and callers
// test for it with:
//
//	if curated.Is(err, vcslib.StopExecution) {
//		...
//	}
//
// Patterns can contain printf verbs. The formatted values are stored
// alongside the pattern and the message is only built when Error() is
// called. If a value is itself a curated error the two messages are chained,
// with duplicate adjacent message parts removed.
package curated
