package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleLog = "05.08.2024 / bench press / (3 x 10-15) / 100-10,90-10;80-12\n" +
	"06.08.2024 / squat / (4 x 8-12) / 140-10,130-10\n"

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gym.log")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestParseText verifies the default text output lists every record.
func TestParseText(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"parse", "-file", writeLog(t, sampleLog)}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "2024-08-05  bench press  target 3x10-15") {
		t.Errorf("output missing bench press line:\n%s", out)
	}
	if !strings.Contains(out, "2 records, 3 sets, 5 attempts") {
		t.Errorf("output missing totals:\n%s", out)
	}
}

// TestParseJSON verifies -format json emits a decodable record array.
func TestParseJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"parse", "-f", writeLog(t, sampleLog), "-format", "json"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	var records []map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &records); err != nil {
		t.Fatalf("decode error: %v\n%s", err, stdout.String())
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[1]["date"] != "2024-08-06" {
		t.Errorf("date = %v, want 2024-08-06", records[1]["date"])
	}
}

// TestParseYAML verifies -format yaml output.
func TestParseYAML(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"parse", "-file", writeLog(t, sampleLog), "-format", "yaml"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "exercise_name: squat") {
		t.Errorf("yaml output missing squat:\n%s", stdout.String())
	}
}

// TestParseErrorShowsCaret verifies a failing parse exits non-zero and
// points at the offending column.
func TestParseErrorShowsCaret(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := writeLog(t, "05.08.2024 / bench press / 3x10-15 / 100-10\n")
	code := run([]string{"parse", "-file", path}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
	lines := strings.Split(stderr.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("stderr = %q, want message, source and caret", stderr.String())
	}
	if !strings.Contains(lines[0], "line 1, column 28") {
		t.Errorf("message = %q", lines[0])
	}
	if lines[1] != "  1 | 05.08.2024 / bench press / 3x10-15 / 100-10" {
		t.Errorf("source line = %q", lines[1])
	}
	if caret := strings.Index(lines[2], "^"); caret != len("  1 | ")+27 {
		t.Errorf("caret at %d, want %d", caret, len("  1 | ")+27)
	}
}

// TestParseMissingFile verifies IO errors are reported.
func TestParseMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"parse", "-file", "/nonexistent/gym.log"}, &stdout, &stderr); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

// TestParseFlagValidation verifies the required file and known formats.
func TestParseFlagValidation(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"parse"}, &stdout, &stderr); code != 1 {
		t.Errorf("no file: exit code = %d, want 1", code)
	}
	if code := run([]string{"parse", "-file", writeLog(t, sampleLog), "-format", "xml"}, &stdout, &stderr); code != 1 {
		t.Errorf("bad format: exit code = %d, want 1", code)
	}
}

// TestCredits verifies the credits command.
func TestCredits(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"credits"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "Volodymyr Beimuk") {
		t.Errorf("credits = %q", stdout.String())
	}
}

// TestUnknownCommand verifies unknown commands fail with usage.
func TestUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"bogus"}, &stdout, &stderr); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "Unknown command: bogus") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if code := run(nil, &stdout, &stderr); code != 1 {
		t.Errorf("no args: exit code = %d, want 1", code)
	}
}

// TestParseErrorLaterLine verifies the caret display reads the failing line
// back from the file, without its CRLF ending.
func TestParseErrorLaterLine(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := writeLog(t, "05.08.2024 / squat / (4 x 8-12) / 140-10\r\n06.08.2024 / squat / (4 x 8-12) / 140-10-5\r\n")
	if code := run([]string{"parse", "-file", path}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	lines := strings.Split(stderr.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("stderr = %q, want message, source and caret", stderr.String())
	}
	if want := "  2 | 06.08.2024 / squat / (4 x 8-12) / 140-10-5"; lines[1] != want {
		t.Errorf("source line = %q, want %q", lines[1], want)
	}
	if caret := strings.Index(lines[2], "^"); caret != len("  2 | ")+40 {
		t.Errorf("caret at %d, want %d", caret, len("  2 | ")+40)
	}
}
