package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/nomadflamingo/gymlog/internal/ingest"
	"github.com/nomadflamingo/gymlog/internal/ingest/gymlog"
	"github.com/nomadflamingo/gymlog/internal/mcp"
	"gopkg.in/yaml.v3"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 1
	}

	switch args[0] {
	case "parse":
		return handleParse(args[1:], stdout, stderr)
	case "credits":
		printCredits(stdout)
		return 0
	case "mcp":
		return handleMCP(args[1:], stderr)
	case "version", "--version", "-v":
		fmt.Fprintf(stdout, "gymlog version %s\n", Version)
		return 0
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `gymlog - parse and view a personal exercise log

USAGE:
    gymlog <command> [options]

COMMANDS:
    parse       Parse an exercise log file and display the records
    credits     Show credits for this program
    mcp         Serve the parser as MCP tools over stdio
    version     Show version information
    help        Show this help message

PARSE OPTIONS:
    -f, -file PATH      Exercise log file (required)
    -format FORMAT      Output format: text, json or yaml (default text)
    -verbose            Log parse statistics to stderr

LOG FORMAT:
    05.08.2024 / bench press / (3 x 10-15 reps) / 100-10,90-10;80-12
`)
}

func printCredits(w io.Writer) {
	fmt.Fprintln(w, "Simple parser for personal gym data collected and written manually")
	fmt.Fprintln(w, "Created by Volodymyr Beimuk")
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func handleParse(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var path string
	fs.StringVar(&path, "file", "", "exercise log file")
	fs.StringVar(&path, "f", "", "exercise log file (shorthand)")
	format := fs.String("format", "text", "output format: text, json or yaml")
	verbose := fs.Bool("verbose", false, "log parse statistics to stderr")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if path == "" {
		fmt.Fprintln(stderr, "Error: -file is required")
		fs.PrintDefaults()
		return 1
	}
	if *format != "text" && *format != "json" && *format != "yaml" {
		fmt.Fprintf(stderr, "Error: unknown format %q (want text, json or yaml)\n", *format)
		return 1
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error: reading %s: %v\n", path, err)
		return 1
	}
	defer f.Close()

	provider := gymlog.NewProvider(newLogger(stderr, *verbose))
	result, err := provider.Ingest(context.Background(), f)
	if err != nil {
		printParseError(stderr, path, err)
		return 1
	}

	if err := writeResult(stdout, *format, result); err != nil {
		fmt.Fprintf(stderr, "Error: writing output: %v\n", err)
		return 1
	}
	return 0
}

// printParseError reports err and, when it has a position, echoes the
// offending line with a caret under the column. The source line is read
// back from path only on this error path.
func printParseError(w io.Writer, path string, err error) {
	fmt.Fprintf(w, "Error: %s: %v\n", path, err)

	line, col, ok := gymlog.Position(err)
	if !ok {
		return
	}
	src, ok := sourceLine(path, line)
	if !ok {
		return
	}
	fmt.Fprintf(w, "  %d | %s\n", line, src)
	gutter := len(fmt.Sprintf("  %d | ", line))
	fmt.Fprintf(w, "%s^\n", strings.Repeat(" ", gutter+col-1))
}

// sourceLine returns line n (1-based) of the file at path without its line
// ending.
func sourceLine(path string, n int) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for i := 1; sc.Scan(); i++ {
		if i == n {
			return strings.TrimRight(sc.Text(), "\r"), true
		}
	}
	return "", false
}

func writeResult(w io.Writer, format string, result *ingest.Result) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Records)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result.Records); err != nil {
			return err
		}
		return enc.Close()
	}

	for _, rec := range result.Records {
		if _, err := fmt.Fprintln(w, rec); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%d records, %d sets, %d attempts\n",
		result.RecordsParsed, result.SetsParsed, result.AttemptsParsed)
	return err
}

func handleMCP(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("verbose", false, "log tool calls to stderr")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	// stdout carries the MCP protocol, so logs go to stderr.
	log := newLogger(stderr, *verbose)
	if err := mcpserver.ServeStdio(mcp.New(Version, log)); err != nil {
		log.Error("mcp server failed", "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
