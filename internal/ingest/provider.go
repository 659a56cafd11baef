package ingest

import "github.com/nomadflamingo/gymlog/internal/models"

// Result holds the outcome of an ingest operation.
type Result struct {
	RecordsParsed  int `json:"records_parsed" yaml:"records_parsed"`
	SetsParsed     int `json:"sets_parsed" yaml:"sets_parsed"`
	AttemptsParsed int `json:"attempts_parsed" yaml:"attempts_parsed"`

	Records []models.ExerciseRecord `json:"records" yaml:"records"`
}
