package conformity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"en13813/internal/classes"
	dErrors "en13813/pkg/domain-errors"
)

func TestAssessCompressive(t *testing.T) {
	t.Run("passes individual and statistical checks", func(t *testing.T) {
		res, err := AssessCompressive([]float64{26, 27, 25.5, 26.2, 25.8}, "C25")
		require.NoError(t, err)

		assert.True(t, res.Passed)
		assert.Equal(t, 25.0, res.DeclaredValue)
		assert.True(t, res.Individual.Passed)
		assert.InDelta(t, 21.25, res.Individual.Threshold, 1e-9)
		assert.InDelta(t, 3.75, res.Individual.AllowedDeviation, 1e-9)
		assert.Equal(t, 25.5, res.Individual.Min)
		assert.Equal(t, 27.0, res.Individual.Max)
		assert.Empty(t, res.Individual.FailingValues)

		require.NotNil(t, res.Statistical)
		assert.Equal(t, 1.80, res.Statistical.AcceptanceConstant)
		assert.InDelta(t, 26.1, res.Statistical.Mean, 1e-9)
		assert.InDelta(t, 0.5657, res.Statistical.StdDev, 1e-3)
		assert.InDelta(t, 25.08, res.Statistical.CharacteristicValue, 1e-2)
		assert.GreaterOrEqual(t, res.Statistical.CharacteristicValue, 25.0)
		assert.False(t, res.Statistical.UpperFractile)
		assert.Empty(t, res.Warnings)
	})

	t.Run("single low value fails regardless of mean", func(t *testing.T) {
		res, err := AssessCompressive([]float64{20, 40, 40, 40, 40}, "C25")
		require.NoError(t, err)

		assert.False(t, res.Passed)
		assert.False(t, res.Individual.Passed)
		assert.Equal(t, []float64{20}, res.Individual.FailingValues)
		require.NotEmpty(t, res.Warnings)
		assert.Contains(t, res.Warnings[0], "1 individual value(s) below the minimum")
	})

	t.Run("low characteristic value fails", func(t *testing.T) {
		res, err := AssessCompressive([]float64{25, 25.5, 24.8, 26, 25.2}, "C25")
		require.NoError(t, err)

		assert.True(t, res.Individual.Passed)
		require.NotNil(t, res.Statistical)
		assert.False(t, res.Statistical.Passed)
		assert.InDelta(t, 24.456, res.Statistical.CharacteristicValue, 1e-2)
		assert.False(t, res.Passed)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "characteristic value 24.46 is below the declared value 25.00")
	})

	t.Run("small sample omits statistical block", func(t *testing.T) {
		res, err := AssessCompressive([]float64{26, 27}, "C25")
		require.NoError(t, err)

		assert.True(t, res.Passed)
		assert.True(t, res.InsufficientSample)
		assert.Nil(t, res.Statistical)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "needs at least 3 values")
	})

	t.Run("small sample still applies individual check", func(t *testing.T) {
		res, err := AssessCompressive([]float64{20}, "C25")
		require.NoError(t, err)
		assert.False(t, res.Passed)
		assert.Nil(t, res.Statistical)
	})
}

func TestAssessFlexural(t *testing.T) {
	res, err := AssessFlexural([]float64{4.2, 4.5, 4.4, 4.6}, "F4")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, res.Individual.Threshold, 1e-9)
	require.NotNil(t, res.Statistical)
	assert.Equal(t, 1.83, res.Statistical.AcceptanceConstant)
	assert.InDelta(t, 4.1125, res.Statistical.CharacteristicValue, 1e-3)
	assert.True(t, res.Passed)
}

func TestAssessSurfaceHardness(t *testing.T) {
	res, err := AssessSurfaceHardness([]float64{39, 60, 62}, "SH50")
	require.NoError(t, err)
	assert.InDelta(t, 40.0, res.Individual.Threshold, 1e-9)
	assert.Equal(t, []float64{39}, res.Individual.FailingValues)
	assert.False(t, res.Passed)
}

func TestAssessBondStrength(t *testing.T) {
	t.Run("absolute floor dominates low classes", func(t *testing.T) {
		res, err := AssessBondStrength([]float64{0.45, 0.9, 1.0}, "B0.5")
		require.NoError(t, err)
		assert.InDelta(t, 0.5, res.Individual.Threshold, 1e-9)
		assert.Equal(t, []float64{0.45}, res.Individual.FailingValues)
		assert.False(t, res.Passed)
	})

	t.Run("proportional bound for higher classes", func(t *testing.T) {
		res, err := AssessBondStrength([]float64{2.4, 2.5, 2.6}, "B2.0")
		require.NoError(t, err)
		assert.InDelta(t, 1.5, res.Individual.Threshold, 1e-9)
		assert.True(t, res.Passed)
	})
}

func TestAssessWearResistance(t *testing.T) {
	t.Run("lower-is-better characteristic value", func(t *testing.T) {
		res, err := AssessWearResistance(classes.WearBohme, []float64{20, 21, 19.5}, "A22")
		require.NoError(t, err)

		assert.Equal(t, LowerIsBetter, res.Direction)
		assert.InDelta(t, 33.0, res.Individual.Threshold, 1e-9)
		assert.True(t, res.Individual.Passed)
		require.NotNil(t, res.Statistical)
		assert.Equal(t, 1.89, res.Statistical.AcceptanceConstant)
		assert.InDelta(t, 20.1667, res.Statistical.Mean, 1e-3)
		assert.InDelta(t, 21.61, res.Statistical.CharacteristicValue, 1e-2)
		assert.LessOrEqual(t, res.Statistical.CharacteristicValue, 22.0)
		assert.True(t, res.Statistical.UpperFractile)
		assert.True(t, res.Passed)
	})

	t.Run("value above the maximum fails", func(t *testing.T) {
		res, err := AssessWearResistance(classes.WearBohme, []float64{20, 34, 19.5}, "A22")
		require.NoError(t, err)
		assert.Equal(t, []float64{34}, res.Individual.FailingValues)
		assert.Contains(t, res.Warnings[0], "above the maximum of 33.00")
		assert.False(t, res.Passed)
	})

	t.Run("high characteristic value fails", func(t *testing.T) {
		res, err := AssessWearResistance(classes.WearBCA, []float64{0.3, 0.6, 0.4}, "AR0.5")
		require.NoError(t, err)
		assert.True(t, res.Individual.Passed)
		assert.False(t, res.Statistical.Passed)
		assert.False(t, res.Passed)
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := AssessWearResistance("sand", []float64{1, 2, 3}, "A22")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func TestAssess_DeclaredClassFormat(t *testing.T) {
	tests := []struct {
		name string
		set  SampleSet
	}{
		{"wrong prefix", SampleSet{Property: classes.PropertyCompressive, DeclaredClass: "X25", Values: []float64{30}}},
		{"missing number", SampleSet{Property: classes.PropertyCompressive, DeclaredClass: "C", Values: []float64{30}}},
		{"decimal not allowed for compressive", SampleSet{Property: classes.PropertyCompressive, DeclaredClass: "C2.5", Values: []float64{30}}},
		{"BCA class for Bohme", SampleSet{Property: classes.PropertyWearBohme, DeclaredClass: "AR1", Values: []float64{3}}},
		{"zero value", SampleSet{Property: classes.PropertyFlexural, DeclaredClass: "F0", Values: []float64{3}}},
		{"trailing dot", SampleSet{Property: classes.PropertyBondStrength, DeclaredClass: "B1.", Values: []float64{3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assess(tt.set)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeFormat), "got %v", err)
		})
	}
}

func TestAssess_InvalidInput(t *testing.T) {
	_, err := AssessCompressive(nil, "C25")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = Assess(SampleSet{Property: classes.PropertyIndentation, DeclaredClass: "IC10", Values: []float64{1}})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestAssessBatch(t *testing.T) {
	sets := []SampleSet{
		{Property: classes.PropertyCompressive, DeclaredClass: "C25", Values: []float64{26, 27, 25.5, 26.2, 25.8}},
		{Property: classes.PropertyFlexural, DeclaredClass: "bogus", Values: []float64{5}},
		{Property: classes.PropertyWearBohme, DeclaredClass: "A22", Values: []float64{20, 21, 19.5}},
	}

	items, err := AssessBatch(context.Background(), sets)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, sets[0].DeclaredClass, items[0].Set.DeclaredClass)
	require.NotNil(t, items[0].Result)
	assert.True(t, items[0].Result.Passed)

	assert.Nil(t, items[1].Result)
	assert.True(t, dErrors.HasCode(items[1].Err, dErrors.CodeFormat))

	require.NotNil(t, items[2].Result)
	assert.Equal(t, classes.PropertyWearBohme, items[2].Result.Property)
	assert.False(t, AllPassed(items))
}

func TestAssessBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := AssessBatch(ctx, []SampleSet{
		{Property: classes.PropertyCompressive, DeclaredClass: "C25", Values: []float64{30}},
	})
	assert.ErrorIs(t, err, context.Canceled)
}
