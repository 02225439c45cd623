package models

import (
	"fmt"
	"strconv"
	"strings"
)

// SetInput carries the optional fields for a new set. Nil means the field
// was not supplied and is stored as NULL.
type SetInput struct {
	Weight      *float64
	WeightUnit  *string
	Reps        *int64
	DurationSec *int64
	DistanceM   *float64
	Assisted    bool
	Notes       *string
}

// ParseSetInput normalizes raw string fields from an input boundary into a
// SetInput. Blank strings become nil; numeric fields must parse. The same
// normalization applies for every measurement type.
func ParseSetInput(weight, weightUnit, reps, durationSec, distanceM string, assisted bool, notes string) (SetInput, error) {
	var in SetInput
	var err error

	if in.Weight, err = optFloat("weight", weight); err != nil {
		return SetInput{}, err
	}
	in.WeightUnit = optString(weightUnit)
	if in.Reps, err = optInt("reps", reps); err != nil {
		return SetInput{}, err
	}
	if in.DurationSec, err = optInt("duration_sec", durationSec); err != nil {
		return SetInput{}, err
	}
	if in.DistanceM, err = optFloat("distance_m", distanceM); err != nil {
		return SetInput{}, err
	}
	in.Assisted = assisted
	in.Notes = optString(notes)
	return in, nil
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optFloat(field, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing %s %q: %w", field, s, err)
	}
	return &v, nil
}

func optInt(field, s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing %s %q: %w", field, s, err)
	}
	return &v, nil
}
