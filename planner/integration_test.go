package planner_test

import (
	"context"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ved/planner"
	"ved/probe"
)

// TestPlanFile_WithRealProbe plans a real file when VED_SAMPLE_VIDEO points at one.
func TestPlanFile_WithRealProbe(t *testing.T) {
	testFile := os.Getenv("VED_SAMPLE_VIDEO")
	if testFile == "" {
		t.Skip("VED_SAMPLE_VIDEO not set")
	}
	if _, err := os.Stat(testFile); os.IsNotExist(err) {
		t.Skipf("Test file not found: %s", testFile)
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not installed")
	}

	result, err := probe.NewProber(nil, 0).Probe(context.Background(), testFile)
	require.NoError(t, err)

	duration, err := result.GetDuration()
	require.NoError(t, err)

	p := planner.NewPlanner(10)
	segments, err := p.PlanFile(result, testFile)
	require.NoError(t, err)

	if duration > 0 {
		require.NotEmpty(t, segments)
	}
	assert.NoError(t, p.Validate(segments, duration))
}
