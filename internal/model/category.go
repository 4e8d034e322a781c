package model

// Category is the clinical blood-pressure severity bucket derived from a
// systolic/diastolic pair. It is computed on demand and never persisted.
type Category int

const (
	CategoryInvalid Category = iota
	CategoryNormal
	CategoryElevated
	CategoryHighStage1
	CategoryHighStage2
	CategoryHypertensiveCrisis
)

// String returns the display name for the category.
func (c Category) String() string {
	switch c {
	case CategoryNormal:
		return "Normal"
	case CategoryElevated:
		return "Elevated"
	case CategoryHighStage1:
		return "High (Stage 1)"
	case CategoryHighStage2:
		return "High (Stage 2)"
	case CategoryHypertensiveCrisis:
		return "Hypertensive Crisis"
	default:
		return "Invalid"
	}
}

// Classify maps a systolic/diastolic pair to its category. The rules are
// ordered and the first match wins. Non-positive values mean the reading is
// missing or nonsensical and classify as CategoryInvalid; there is no error
// path beyond that sentinel.
func Classify(systolic, diastolic int) Category {
	switch {
	case systolic <= 0 || diastolic <= 0:
		return CategoryInvalid
	case systolic >= 180 || diastolic >= 120:
		return CategoryHypertensiveCrisis
	case systolic >= 140 || diastolic >= 90:
		return CategoryHighStage2
	case systolic >= 130 || diastolic >= 80:
		return CategoryHighStage1
	case systolic >= 120 && diastolic < 80:
		return CategoryElevated
	case systolic < 120 && diastolic < 80:
		return CategoryNormal
	default:
		// Unreachable in practice: systolic < 120 with diastolic >= 80 is
		// already caught by the stage-1 rule. Kept so the function stays
		// total for every input pair.
		return CategoryHighStage1
	}
}

// Category returns the record's clinical category.
func (r *Record) Category() Category {
	return Classify(r.Systolic, r.Diastolic)
}
