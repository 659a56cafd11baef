package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the only date layout accepted in exercise logs (DD.MM.YYYY).
const DateLayout = "02.01.2006"

// isoLayout is how dates are written in JSON and YAML output.
const isoLayout = "2006-01-02"

// Date is a calendar date at UTC midnight. It serializes as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate returns the calendar date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(isoLayout)
}

// MarshalJSON writes the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON reads the form written by MarshalJSON.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return d.parseISO(s)
}

// MarshalYAML writes the date as a YYYY-MM-DD scalar.
func (d Date) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML reads the form written by MarshalYAML.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.parseISO(s)
}

func (d *Date) parseISO(s string) error {
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// ExerciseRecord is one logged session of a single exercise.
type ExerciseRecord struct {
	Date         Date       `json:"date" yaml:"date"`
	ExerciseName string     `json:"exercise_name" yaml:"exercise_name"`
	Target       TargetReps `json:"target" yaml:"target"`
	Sets         []Set      `json:"sets" yaml:"sets"`
}

// TargetReps is the prescribed scheme, e.g. "3 x 10-15 reps".
// MinReps <= MaxReps is not enforced.
type TargetReps struct {
	SetsCount uint32 `json:"sets_count" yaml:"sets_count"`
	MinReps   uint32 `json:"min_reps" yaml:"min_reps"`
	MaxReps   uint32 `json:"max_reps" yaml:"max_reps"`
}

// Set holds one or more attempts. Several attempts occur when weight or
// reps were changed mid-set.
type Set struct {
	Attempts []Attempt `json:"attempts" yaml:"attempts"`
}

// Attempt is a single weight/reps effort. Weight is in kilograms.
type Attempt struct {
	Weight uint32 `json:"weight" yaml:"weight"`
	Reps   uint32 `json:"reps" yaml:"reps"`
}

// TotalReps sums reps across all attempts in the set.
func (s Set) TotalReps() int {
	total := 0
	for _, a := range s.Attempts {
		total += int(a.Reps)
	}
	return total
}

// Tonnage is weight x reps summed across attempts, in kilograms.
func (s Set) Tonnage() int {
	total := 0
	for _, a := range s.Attempts {
		total += int(a.Weight) * int(a.Reps)
	}
	return total
}

// AttemptCount counts attempts across all sets.
func (r ExerciseRecord) AttemptCount() int {
	n := 0
	for _, s := range r.Sets {
		n += len(s.Attempts)
	}
	return n
}

// TotalReps sums reps across all sets.
func (r ExerciseRecord) TotalReps() int {
	total := 0
	for _, s := range r.Sets {
		total += s.TotalReps()
	}
	return total
}

// Tonnage sums set tonnage in kilograms.
func (r ExerciseRecord) Tonnage() int {
	total := 0
	for _, s := range r.Sets {
		total += s.Tonnage()
	}
	return total
}

// RecordSummary condenses a record into volume figures.
type RecordSummary struct {
	Date         Date   `json:"date" yaml:"date"`
	ExerciseName string `json:"exercise_name" yaml:"exercise_name"`
	Sets         int    `json:"sets" yaml:"sets"`
	TargetSets   uint32 `json:"target_sets" yaml:"target_sets"`
	Attempts     int    `json:"attempts" yaml:"attempts"`
	TotalReps    int    `json:"total_reps" yaml:"total_reps"`
	TonnageKg    int    `json:"tonnage_kg" yaml:"tonnage_kg"`
}

// Summary returns the volume figures for r.
func (r ExerciseRecord) Summary() RecordSummary {
	return RecordSummary{
		Date:         r.Date,
		ExerciseName: r.ExerciseName,
		Sets:         len(r.Sets),
		TargetSets:   r.Target.SetsCount,
		Attempts:     r.AttemptCount(),
		TotalReps:    r.TotalReps(),
		TonnageKg:    r.Tonnage(),
	}
}

// String renders the record for terminal display, e.g.
// "2024-08-05  bench press  target 3x10-15  [100kg x 10, 90kg x 10]  [80kg x 12]".
func (r ExerciseRecord) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  target %dx%d-%d", r.Date, r.ExerciseName,
		r.Target.SetsCount, r.Target.MinReps, r.Target.MaxReps)
	for _, s := range r.Sets {
		b.WriteString("  [")
		for i, a := range s.Attempts {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%dkg x %d", a.Weight, a.Reps)
		}
		b.WriteString("]")
	}
	return b.String()
}
