package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmfcore/tmtmeta/internal/schema"
)

func TestMergeCustomFile_NameSpacingAndOverwrite(t *testing.T) {
	// S5: parent /t runs 30s, produces [{name: /, result: pass, duration:
	// "00:99:99"}, {name: /sub, result: fail}].
	custom := []Record{
		{Name: "/", Result: schema.OutcomePass, Duration: "00:99:99"},
		{Name: "/sub", Result: schema.OutcomeFail},
	}
	obs := Observation{SerialNumber: 7, Guest: "guest-1", Duration: "00:00:30"}

	merged, err := MergeCustomFile("/t", custom, obs, "/data", "/data")
	require.NoError(t, err)
	require.Len(t, merged, 2)

	assert.Equal(t, "/t", merged[0].Name)
	assert.Equal(t, schema.OutcomePass, merged[0].Result)
	assert.Equal(t, "00:00:30", merged[0].Duration)
	assert.Equal(t, 7, merged[0].SerialNumber)

	assert.Equal(t, "/t/sub", merged[1].Name)
	assert.Equal(t, schema.OutcomeFail, merged[1].Result)
	assert.Equal(t, 7, merged[1].SerialNumber)
	assert.Equal(t, "guest-1", merged[1].Guest)
}

func TestMergeCustomFile_AbsentSynthesizesFromObservation(t *testing.T) {
	obs := Observation{Result: schema.OutcomePass, SerialNumber: 3, Duration: "00:01:00"}
	merged, err := MergeCustomFile("/t", nil, obs, "/data", "/data")
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "/t", merged[0].Name)
	assert.Equal(t, schema.OutcomePass, merged[0].Result)
}

func TestPrefixedName(t *testing.T) {
	// spec §8 property 6
	assert.Equal(t, "/t", PrefixedName("/t", "/"))
	assert.Equal(t, "/t/x", PrefixedName("/t", "/x"))
}

func TestRewriteLogPaths_RelativeToResultsDir(t *testing.T) {
	merged, err := MergeCustomFile("/t", []Record{
		{Name: "/", Result: schema.OutcomePass, Log: []string{"out.log"}},
	}, Observation{}, "/plan/data/t", "/plan")
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "data/t/out.log", merged[0].Log[0])
}

func TestReduce_OutcomeMonoid(t *testing.T) {
	assert.Equal(t, schema.OutcomePass, Reduce([]schema.Outcome{schema.OutcomePass}))
	assert.Equal(t, schema.OutcomeWarn, Reduce([]schema.Outcome{schema.OutcomePass, schema.OutcomeWarn}))
	assert.Equal(t, schema.OutcomeError, Reduce([]schema.Outcome{schema.OutcomeFail, schema.OutcomeError}))
	assert.Equal(t, schema.OutcomeSkip, Reduce([]schema.Outcome{schema.OutcomeSkip, schema.OutcomeSkip}))
	assert.Equal(t, schema.OutcomePass, Reduce([]schema.Outcome{schema.OutcomeSkip, schema.OutcomePass}))
}

func TestExitCode_Scenarios(t *testing.T) {
	// S6
	assert.Equal(t, 0, ExitCode([]schema.Outcome{schema.OutcomeInfo, schema.OutcomeInfo}))
	assert.Equal(t, 1, ExitCode([]schema.Outcome{schema.OutcomeInfo, schema.OutcomeWarn}))
	assert.Equal(t, 2, ExitCode([]schema.Outcome{schema.OutcomeFail, schema.OutcomeError}))
	assert.Equal(t, 3, ExitCode(nil))
	assert.Equal(t, 4, ExitCode([]schema.Outcome{schema.OutcomeSkip, schema.OutcomeSkip}))
}

func TestCheckAugmentedOutcome_FailingCheckCountsAsFailure(t *testing.T) {
	rec := Record{
		Result: schema.OutcomePass,
		Check:  []schema.Check{{How: "avc", Result: string(schema.OutcomeFail)}},
	}
	assert.Equal(t, schema.OutcomeFail, CheckAugmentedOutcome(rec))
}

func TestStableID_Deterministic(t *testing.T) {
	a := StableID("/t/one")
	b := StableID("/t/one")
	c := StableID("/t/two")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
