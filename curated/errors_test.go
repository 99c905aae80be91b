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

package curated_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/bridge2600/curated"
	"github.com/jetsetilly/bridge2600/test"
)

const testPattern = "test error: %s"

func TestIdentity(t *testing.T) {
	err := curated.Errorf(testPattern, "detail")
	test.Equate(t, err.Error(), "test error: detail")
	test.ExpectSuccess(t, curated.IsAny(err))
	test.ExpectSuccess(t, curated.Is(err, testPattern))
	test.ExpectFailure(t, curated.Is(err, "some other pattern"))

	plain := errors.New("plain error")
	test.ExpectFailure(t, curated.IsAny(plain))
	test.ExpectFailure(t, curated.Is(plain, testPattern))
	test.ExpectFailure(t, curated.Is(nil, testPattern))
}

func TestChaining(t *testing.T) {
	inner := curated.Errorf(testPattern, "detail")
	outer := curated.Errorf("outer: %v", inner)

	test.ExpectSuccess(t, curated.Has(outer, testPattern))
	test.ExpectSuccess(t, curated.Has(outer, "outer: %v"))
	test.ExpectFailure(t, curated.Has(outer, "unseen pattern"))
	test.Equate(t, outer.Error(), "outer: test error: detail")
}

func TestDeduplication(t *testing.T) {
	inner := curated.Errorf("elf: %s", "bad magic")
	outer := curated.Errorf("elf: %v", inner)
	test.Equate(t, outer.Error(), "elf: bad magic")
}
