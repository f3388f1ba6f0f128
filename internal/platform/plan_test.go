package platform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestPlanWritesRegular verifies non-universal targets plan one replacing write.
func TestPlanWritesRegular(t *testing.T) {
	t.Parallel()

	writes := PlanWrites("windows", "x64", false)
	require.Equal(t, []Write{{Key: "windows-x86_64", Mode: InsertOrReplace}}, writes)

	writes = PlanWrites("linux", "amd64", false)
	require.Equal(t, []Write{{Key: "linux-x86_64", Mode: InsertOrReplace}}, writes)

	// keepUniversal has no effect outside the darwin universal case.
	writes = PlanWrites("macos", "aarch64", true)
	require.Equal(t, []Write{{Key: "darwin-aarch64", Mode: InsertOrReplace}}, writes)
}

// TestPlanWritesUniversal verifies the darwin universal fan-out.
func TestPlanWritesUniversal(t *testing.T) {
	t.Parallel()

	writes := PlanWrites("macos", "universal", false)
	require.Equal(t, []Write{
		{Key: "darwin-aarch64", Mode: InsertIfAbsent},
		{Key: "darwin-x86_64", Mode: InsertIfAbsent},
	}, writes)
}

// TestPlanWritesUniversalKept verifies keepUniversal appends the literal key.
func TestPlanWritesUniversalKept(t *testing.T) {
	t.Parallel()

	writes := PlanWrites("macos", "universal", true)
	require.Equal(t, []Write{
		{Key: "darwin-aarch64", Mode: InsertIfAbsent},
		{Key: "darwin-x86_64", Mode: InsertIfAbsent},
		{Key: "darwin-universal", Mode: InsertOrReplace},
	}, writes)
}
