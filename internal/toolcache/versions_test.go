package toolcache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortVersionsSemantic(t *testing.T) {
	names := []string{"3.10.0", "nightly", "3.9.0", "4.0.0-beta.1", "4.0.0", "1.2", "3.9.0-rc.1"}
	sortVersions(names)
	require.Equal(t, []string{"3.9.0-rc.1", "3.9.0", "3.10.0", "4.0.0-beta.1", "4.0.0", "1.2", "nightly"}, names)
}
