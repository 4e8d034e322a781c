package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		want      Category
		systolic  int
		diastolic int
	}{
		{name: "normal reading", systolic: 119, diastolic: 79, want: CategoryNormal},
		{name: "elevated at systolic boundary", systolic: 120, diastolic: 79, want: CategoryElevated},
		{name: "stage 1 at systolic boundary", systolic: 130, diastolic: 79, want: CategoryHighStage1},
		{name: "stage 1 at diastolic boundary", systolic: 110, diastolic: 80, want: CategoryHighStage1},
		{name: "stage 2 at systolic boundary", systolic: 140, diastolic: 79, want: CategoryHighStage2},
		{name: "stage 2 at diastolic boundary", systolic: 110, diastolic: 90, want: CategoryHighStage2},
		{name: "crisis at systolic boundary", systolic: 180, diastolic: 80, want: CategoryHypertensiveCrisis},
		{name: "crisis at diastolic boundary", systolic: 110, diastolic: 120, want: CategoryHypertensiveCrisis},
		{name: "just below stage 1", systolic: 129, diastolic: 79, want: CategoryElevated},
		{name: "just below stage 2", systolic: 139, diastolic: 89, want: CategoryHighStage1},
		{name: "just below crisis", systolic: 179, diastolic: 119, want: CategoryHighStage2},
		{name: "zero systolic is invalid", systolic: 0, diastolic: 80, want: CategoryInvalid},
		{name: "zero diastolic is invalid", systolic: 120, diastolic: 0, want: CategoryInvalid},
		{name: "negative values are invalid", systolic: -5, diastolic: -5, want: CategoryInvalid},
		{name: "low normal", systolic: 90, diastolic: 60, want: CategoryNormal},
		{name: "both bounds extreme", systolic: 200, diastolic: 130, want: CategoryHypertensiveCrisis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.systolic, tt.diastolic)
			assert.Equal(t, tt.want, got)

			// Classification is deterministic.
			assert.Equal(t, got, Classify(tt.systolic, tt.diastolic))
		})
	}
}

func TestClassify_RuleOrderFirstMatchWins(t *testing.T) {
	// 185/95 satisfies both the crisis and stage-2 rules; the earlier rule
	// must win.
	assert.Equal(t, CategoryHypertensiveCrisis, Classify(185, 95))
	// 145/85 satisfies both stage 2 and stage 1.
	assert.Equal(t, CategoryHighStage2, Classify(145, 85))
}

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "Normal", CategoryNormal.String())
	assert.Equal(t, "Elevated", CategoryElevated.String())
	assert.Equal(t, "High (Stage 1)", CategoryHighStage1.String())
	assert.Equal(t, "High (Stage 2)", CategoryHighStage2.String())
	assert.Equal(t, "Hypertensive Crisis", CategoryHypertensiveCrisis.String())
	assert.Equal(t, "Invalid", CategoryInvalid.String())
}
