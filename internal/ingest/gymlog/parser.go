// Package gymlog parses the personal exercise log format, one record per
// line:
//
//	05.08.2024 / bench press / (3 x 10-15 reps) / 100-10,90-10;80-12
//
// Parsing runs in two passes. ParseTree lexes and matches the grammar
// declared on the File struct tree; the translator then validates dates
// and numbers and builds models.ExerciseRecord values.
package gymlog

import "github.com/nomadflamingo/gymlog/internal/models"

// Parse returns every record in text in input order, or the first error.
// It never returns records together with an error.
func Parse(text string) ([]models.ExerciseRecord, error) {
	file, err := ParseTree(text)
	if err != nil {
		return nil, err
	}
	return translateFile(file)
}
