package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/nomadflamingo/gymlog/internal/ingest/gymlog"
)

const logFormat = `One record per line:

  DD.MM.YYYY / exercise name / (SETS x MIN-MAX reps) / WEIGHT-REPS,WEIGHT-REPS;WEIGHT-REPS

"," separates attempts within a set, ";" separates sets. "reps" in the
target is optional. Weights are whole kilograms. Example:

  05.08.2024 / bench press / (3 x 10-15) / 100-10,90-10;80-12
`

// --- Tool definitions ---

var toolParseExerciseLog = mcp.NewTool("parse_exercise_log",
	mcp.WithDescription("Parse exercise log text into structured records (date, exercise name, target sets and rep range, sets of weight/reps attempts). Fails on the first malformed line."),
	mcp.WithString("text", mcp.Required(), mcp.Description("Full exercise log text, one record per line")),
)

var toolSummarizeExerciseLog = mcp.NewTool("summarize_exercise_log",
	mcp.WithDescription("Parse exercise log text and return per-session volume: sets done vs target, total reps and tonnage in kg."),
	mcp.WithString("text", mcp.Required(), mcp.Description("Full exercise log text, one record per line")),
	mcp.WithString("exercise", mcp.Description("Only include exercises whose name contains this text (case-insensitive)")),
)

// --- Tool handlers ---

func (h *handlers) parseExerciseLog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	records, err := gymlog.Parse(text)
	if err != nil {
		h.log.Warn("mcp parse_exercise_log", "kind", gymlog.ErrorKind(err), "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) summarizeExerciseLog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text parameter is required"), nil
	}
	filter := strings.ToLower(req.GetString("exercise", ""))

	records, err := gymlog.Parse(text)
	if err != nil {
		h.log.Warn("mcp summarize_exercise_log", "kind", gymlog.ErrorKind(err), "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	for _, rec := range records {
		if filter != "" && !strings.Contains(strings.ToLower(rec.ExerciseName), filter) {
			continue
		}
		s := rec.Summary()
		fmt.Fprintf(&b, "%s %s: %d/%d sets, %d reps, %d kg\n",
			s.Date, s.ExerciseName, s.Sets, s.TargetSets, s.TotalReps, s.TonnageKg)
	}
	if b.Len() == 0 {
		return mcp.NewToolResultText("no matching records"), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}

// --- Resource handlers ---

func (h *handlers) logFormat(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     logFormat,
		},
	}, nil
}
