package models

import "fmt"

// MeasurementType classifies how an exercise is quantified. It is the one
// canonical enumeration consumers switch on; field presence on a Set is
// never used to re-derive semantics.
type MeasurementType string

const (
	// WeightReps is the default: load moved for a number of repetitions.
	WeightReps MeasurementType = "weight_reps"
	// TimeOnly is a timed hold or machine interval.
	TimeOnly MeasurementType = "time_only"
	// Cardio is a timed effort with an optional distance.
	Cardio MeasurementType = "cardio"
	// NotesOnly records free text with no expected sets.
	NotesOnly MeasurementType = "notes_only"
)

// ParseMeasurementType validates a raw string from the CLI or the catalog.
func ParseMeasurementType(s string) (MeasurementType, error) {
	switch mt := MeasurementType(s); mt {
	case WeightReps, TimeOnly, Cardio, NotesOnly:
		return mt, nil
	}
	return "", fmt.Errorf("unknown measurement type %q", s)
}

// SetField names one recordable field on a Set.
type SetField string

const (
	FieldWeight      SetField = "weight"
	FieldWeightUnit  SetField = "weight_unit"
	FieldReps        SetField = "reps"
	FieldAssisted    SetField = "assisted"
	FieldDurationSec SetField = "duration_sec"
	FieldDistanceM   SetField = "distance_m"
	FieldNotes       SetField = "notes"
)

// Uses reports whether a field is meaningful under this measurement type.
// The storage layer stores every field regardless; this is the read-side
// contract for display and export consumers.
func (m MeasurementType) Uses(f SetField) bool {
	switch m {
	case WeightReps:
		return f == FieldWeight || f == FieldWeightUnit || f == FieldReps || f == FieldAssisted
	case TimeOnly:
		return f == FieldDurationSec
	case Cardio:
		return f == FieldDurationSec || f == FieldDistanceM
	case NotesOnly:
		return f == FieldNotes
	}
	return false
}
