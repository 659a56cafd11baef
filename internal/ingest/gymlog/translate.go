package gymlog

import (
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/nomadflamingo/gymlog/internal/models"
)

// translateFile converts every record in the tree, stopping at the first
// failure.
func translateFile(f *File) ([]models.ExerciseRecord, error) {
	if f == nil {
		return nil, &FieldError{Field: FieldFile, Line: 1, Column: 1}
	}

	records := make([]models.ExerciseRecord, 0, len(f.Records))
	for _, r := range f.Records {
		rec, err := translateRecord(r)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func translateRecord(r *Record) (models.ExerciseRecord, error) {
	switch {
	case r.Date == nil:
		return models.ExerciseRecord{}, fieldError(FieldDate, r.Pos)
	case r.Name == nil:
		return models.ExerciseRecord{}, fieldError(FieldExerciseName, r.Pos)
	case r.Target == nil:
		return models.ExerciseRecord{}, fieldError(FieldTarget, r.Pos)
	}

	date, err := parseDate(r.Date)
	if err != nil {
		return models.ExerciseRecord{}, err
	}

	name := strings.TrimSpace(r.Name.Text)
	if name == "" {
		return models.ExerciseRecord{}, fieldError(FieldExerciseName, r.Name.Pos)
	}

	target, err := translateTarget(r.Target)
	if err != nil {
		return models.ExerciseRecord{}, err
	}

	sets, err := translateSetGroup(r.SetGroup)
	if err != nil {
		return models.ExerciseRecord{}, err
	}

	return models.ExerciseRecord{
		Date:         date,
		ExerciseName: name,
		Target:       target,
		Sets:         sets,
	}, nil
}

func parseDate(d *Date) (models.Date, error) {
	t, err := time.Parse(models.DateLayout, d.Text)
	if err != nil {
		return models.Date{}, &DateError{Text: d.Text, Line: d.Pos.Line, Column: d.Pos.Column, Err: err}
	}
	return models.Date{Time: t}, nil
}

func translateTarget(t *Target) (models.TargetReps, error) {
	if t.Sets == nil || t.MinReps == nil || t.MaxReps == nil {
		return models.TargetReps{}, fieldError(FieldTarget, t.Pos)
	}

	var values [3]uint32
	for i, n := range []*Integer{t.Sets, t.MinReps, t.MaxReps} {
		v, err := parseUint(n)
		if err != nil {
			return models.TargetReps{}, err
		}
		values[i] = v
	}
	return models.TargetReps{SetsCount: values[0], MinReps: values[1], MaxReps: values[2]}, nil
}

// translateSetGroup returns nil sets for a nil group.
func translateSetGroup(g *SetGroup) ([]models.Set, error) {
	if g == nil {
		return nil, nil
	}

	sets := make([]models.Set, 0, len(g.Sets))
	for _, s := range g.Sets {
		if s == nil || len(s.Attempts) == 0 {
			return nil, fieldError(FieldSetGroup, g.Pos)
		}
		attempts := make([]models.Attempt, 0, len(s.Attempts))
		for _, a := range s.Attempts {
			if a == nil || a.Weight == nil || a.Reps == nil {
				return nil, fieldError(FieldSetGroup, s.Pos)
			}
			weight, err := parseUint(a.Weight)
			if err != nil {
				return nil, err
			}
			reps, err := parseUint(a.Reps)
			if err != nil {
				return nil, err
			}
			attempts = append(attempts, models.Attempt{Weight: weight, Reps: reps})
		}
		sets = append(sets, models.Set{Attempts: attempts})
	}
	return sets, nil
}

func parseUint(n *Integer) (uint32, error) {
	v, err := strconv.ParseUint(n.Text, 10, 32)
	if err != nil {
		return 0, &NumberError{Text: n.Text, Line: n.Pos.Line, Column: n.Pos.Column, Err: err}
	}
	return uint32(v), nil
}

func fieldError(f Field, pos lexer.Position) *FieldError {
	return &FieldError{Field: f, Line: pos.Line, Column: pos.Column}
}
