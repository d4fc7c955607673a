// Package assert provides the test assertions used across this module.
package assert

import (
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	Equal    = assert.Equal
	NotEqual = assert.NotEqual
	True     = assert.True
	False    = assert.False
	Less     = assert.Less
	NoError  = assert.NoError
	Error    = assert.Error
	Nil      = assert.Nil
	Len      = assert.Len

	RequireNoError = require.NoError
)

// NoDiff asserts that want and got are equal, reporting their difference as
// computed by [cmp.Diff].
func NoDiff(t assert.TestingT, want, got any, opts ...cmp.Option) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
		return false
	}
	return true
}
