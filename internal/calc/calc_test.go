package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBMI_ReferenceValue(t *testing.T) {
	bmi, err := BMI(70, 175)
	require.NoError(t, err)
	assert.InDelta(t, 22.86, bmi, 0.01)
	assert.Equal(t, BMINormal, ClassifyBMI(bmi))
}

func TestBMI_InvalidInput(t *testing.T) {
	_, err := BMI(0, 175)
	assert.ErrorIs(t, err, ErrInvalidBiometrics)

	_, err = BMI(70, 0)
	assert.ErrorIs(t, err, ErrInvalidBiometrics)

	_, err = BMI(-70, 175)
	assert.ErrorIs(t, err, ErrInvalidBiometrics)
}

func TestClassifyBMI_Bands(t *testing.T) {
	tests := []struct {
		bmi  float64
		want BMICategory
	}{
		{16.0, BMIUnderweight},
		{18.4, BMIUnderweight},
		{18.5, BMINormal},
		{24.9, BMINormal},
		{25.0, BMIOverweight},
		{29.9, BMIOverweight},
		{30.0, BMIObese},
		{42.0, BMIObese},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyBMI(tt.bmi), "bmi=%.1f", tt.bmi)
	}
}

func TestBMR_SexSpecificCoefficients(t *testing.T) {
	male, err := BMR(SexMale, 70, 175, 30)
	require.NoError(t, err)
	// 88.362 + 13.397*70 + 4.799*175 - 5.677*30
	assert.InDelta(t, 1695.67, male, 0.5)

	female, err := BMR(SexFemale, 60, 165, 30)
	require.NoError(t, err)
	// 447.593 + 9.247*60 + 3.098*165 - 4.330*30
	assert.InDelta(t, 1383.59, female, 0.5)

	assert.Greater(t, male, female)
}

func TestBMR_UnknownSex(t *testing.T) {
	_, err := BMR("other", 70, 175, 30)
	assert.ErrorIs(t, err, ErrInvalidBiometrics)
}

func TestTDEE_Multipliers(t *testing.T) {
	const bmr = 1000.0

	tests := []struct {
		level ActivityLevel
		want  float64
	}{
		{ActivitySedentary, 1200},
		{ActivityLight, 1375},
		{ActivityModerate, 1550},
		{ActivityActive, 1725},
		{ActivityVeryActive, 1900},
	}

	for _, tt := range tests {
		got, err := TDEE(bmr, tt.level)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "level=%s", tt.level)
	}

	_, err := TDEE(bmr, "couch")
	assert.ErrorIs(t, err, ErrInvalidBiometrics)
}

// TestDailyCalorieTarget_Monotonic verifies the target moves with the goal:
// lower target weights demand fewer calories, higher ones more.
func TestDailyCalorieTarget_Monotonic(t *testing.T) {
	target := func(targetWeight float64) float64 {
		got, err := DailyCalorieTarget(SexMale, 80, 180, 35, ActivityModerate, targetWeight, 12)
		require.NoError(t, err)
		return got
	}

	maintenance := target(80)
	losing := target(72)
	gaining := target(88)

	assert.Less(t, losing, maintenance)
	assert.Greater(t, gaining, maintenance)
	assert.Less(t, target(70), target(72), "deeper deficit for a lower target weight")
}

func TestDailyCalorieTarget_AdjustmentMagnitude(t *testing.T) {
	// 8kg down over 8 weeks: 8*7700/(8*7) = 1100 kcal deficit per day
	maintenance, err := DailyCalorieTarget(SexMale, 80, 180, 35, ActivityModerate, 80, 8)
	require.NoError(t, err)

	losing, err := DailyCalorieTarget(SexMale, 80, 180, 35, ActivityModerate, 72, 8)
	require.NoError(t, err)

	assert.InDelta(t, 1100, maintenance-losing, 0.01)
}

func TestDailyCalorieTarget_InvalidPlan(t *testing.T) {
	_, err := DailyCalorieTarget(SexMale, 80, 180, 35, ActivityModerate, 0, 8)
	assert.ErrorIs(t, err, ErrInvalidBiometrics)

	_, err = DailyCalorieTarget(SexMale, 80, 180, 35, ActivityModerate, 72, 0)
	assert.ErrorIs(t, err, ErrInvalidBiometrics)
}

// TestActivityBurn_LinearScaling verifies burn scales linearly with duration
// and with weight relative to the 70kg reference.
func TestActivityBurn_LinearScaling(t *testing.T) {
	full, err := ActivityBurn(ActivityRunning, 70, 60)
	require.NoError(t, err)
	assert.Equal(t, 700.0, full, "table value at reference weight for one hour")

	half, err := ActivityBurn(ActivityRunning, 70, 30)
	require.NoError(t, err)
	assert.InDelta(t, full/2, half, 1e-9)

	double, err := ActivityBurn(ActivityRunning, 140, 60)
	require.NoError(t, err)
	assert.InDelta(t, 2*full, double, 1e-9)
}

func TestActivityBurn_InvalidInput(t *testing.T) {
	_, err := ActivityBurn(ActivityRunning, 0, 60)
	assert.ErrorIs(t, err, ErrInvalidBiometrics)

	_, err = ActivityBurn(ActivityRunning, 70, -10)
	assert.ErrorIs(t, err, ErrInvalidBiometrics)

	_, err = ActivityBurn("levitation", 70, 60)
	assert.ErrorIs(t, err, ErrInvalidBiometrics)
}

func TestActivities_CoverTable(t *testing.T) {
	for _, a := range Activities() {
		_, err := ActivityBurn(a, 70, 60)
		assert.NoError(t, err, "activity %s missing from burn table", a)
	}
	assert.Len(t, Activities(), len(caloriesPerHour))
}
