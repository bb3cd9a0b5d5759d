package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/arbenchgo/internal/testutil"
)

func TestExpectationMismatchIsReported(t *testing.T) {
	benchHCL := `
		arbiter "priority" "p" {
			width = 2
		}

		stimulus "p" {
			tick { req = "0b10" }
		}

		expect "p" {
			tick { grant = "0b01" }
		}
	`
	result := testutil.RunBenchTest(t, benchHCL)
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "1 expectation mismatch(es)")
	assert.Contains(t, result.Err.Error(), "tick 0: p grant = 0b10, want 0b01")
}

func TestUnknownKindFailsStartup(t *testing.T) {
	benchHCL := `
		arbiter "lottery" "l" {
			width = 2
		}
	`
	result := testutil.RunBenchTest(t, benchHCL)
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "application startup panicked")
	assert.Contains(t, result.Err.Error(), `unknown kind "lottery"`)
}

func TestBenchWithoutScriptsFailsCleanly(t *testing.T) {
	benchHCL := `
		arbiter "priority" "p" {
			width = 2
		}
	`
	result := testutil.RunBenchTest(t, benchHCL)
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "no ticks to run")
}
