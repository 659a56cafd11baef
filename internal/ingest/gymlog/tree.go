package gymlog

import "github.com/alecthomas/participle/v2/lexer"

// File is the parse tree of a whole log, one Record per non-blank line.
type File struct {
	Pos lexer.Position

	Records []*Record `Newline? @@ ( Newline @@ )* Newline?`
}

// Record is one line: date / exercise name / target / set group.
type Record struct {
	Pos lexer.Position

	Date     *Date         `@@`
	Name     *ExerciseName `@@ "/"`
	Target   *Target       `@@ "/"`
	SetGroup *SetGroup     `@@`
}

// Date is the raw DD.MM.YYYY text; calendar checks happen in translation.
type Date struct {
	Pos lexer.Position

	Text string `@Date`
}

// ExerciseName is the raw text between the first two slashes, surrounding
// whitespace included.
type ExerciseName struct {
	Pos lexer.Position

	Text string `@Name`
}

// Target is "(SETS x MIN-MAX reps)" with the "reps" word optional.
type Target struct {
	Pos lexer.Position

	Sets    *Integer `"(" @@ "x"`
	MinReps *Integer `@@ "-"`
	MaxReps *Integer `@@ "reps"? ")"`
}

type SetGroup struct {
	Pos lexer.Position

	Sets []*Set `@@ ( ";" @@ )*`
}

type Set struct {
	Pos lexer.Position

	Attempts []*Attempt `@@ ( "," @@ )*`
}

// Attempt is WEIGHT-REPS.
type Attempt struct {
	Pos lexer.Position

	Weight *Integer `@@ "-"`
	Reps   *Integer `@@`
}

// Integer keeps the digits as text so range errors can be reported with
// their position.
type Integer struct {
	Pos lexer.Position

	Text string `@Int`
}
