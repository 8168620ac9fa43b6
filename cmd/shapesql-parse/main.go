// Command shapesql-parse parses SQL files against a named dialect and
// prints the resulting CST, or any parse/lex diagnostics, to stdout.
//
// Usage:
//
//	shapesql-parse [--config shapesql.yaml] <file.sql> [more files...]
package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/shapesql/shapesql/dialect"
	"github.com/shapesql/shapesql/dialects/ansi"
	"github.com/shapesql/shapesql/dialects/bigquery"
	"github.com/shapesql/shapesql/dialects/postgres"
	"github.com/shapesql/shapesql/parser"
	"github.com/shapesql/shapesql/segment"
	"github.com/shapesql/shapesql/templatefile"
)

// fileConfig is the on-disk shape of the config file named by --config: the
// dialect to parse with, and the parser's two tunable limits.
type fileConfig struct {
	Dialect                string `yaml:"dialect"`
	RecursionLimit         int    `yaml:"recursion_limit"`
	LargeFileSkipByteLimit int    `yaml:"large_file_skip_byte_limit"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Dialect:        "ansi",
		RecursionLimit: parser.DefaultRecursionLimit,
	}
}

func loadFileConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func buildDialect(name string) (*dialect.Dialect, error) {
	var raw *dialect.Dialect
	switch name {
	case "ansi":
		raw = ansi.Dialect()
	case "bigquery":
		raw = bigquery.Dialect()
	case "postgres":
		raw = postgres.Dialect()
	default:
		return nil, fmt.Errorf("unknown dialect %q (want ansi, bigquery or postgres)", name)
	}
	return dialect.Expand(raw)
}

func main() {
	args := os.Args[1:]
	configPath := ""
	var files []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--config" && i+1 < len(args) {
			configPath = args[i+1]
			i++
			continue
		}
		files = append(files, args[i])
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: shapesql-parse [--config shapesql.yaml] <file.sql> [more files...]")
		os.Exit(1)
	}

	fc, err := loadFileConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	d, err := buildDialect(fc.Dialect)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	cfg := parser.NewParserConfig(d,
		parser.WithRecursionLimit(fc.RecursionLimit),
		parser.WithLargeFileSkipByteLimit(fc.LargeFileSkipByteLimit),
	)

	exitCode := 0
	for _, path := range files {
		if err := parseFile(path, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", path, err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func parseFile(path string, cfg parser.ParserConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	tf := templatefile.NewLiteralFile(string(data))
	tree, errs := parser.Parse(tf, cfg)

	fmt.Printf("%s:\n", path)
	if tree != nil {
		printSegment(tree, 0)
	}
	for _, e := range errs {
		fmt.Printf("  [%d] %s (source %d-%d)\n", e.Kind, e.Message, e.SourceSpan.Start, e.SourceSpan.End)
	}
	return nil
}

func printSegment(s segment.Segment, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	if s.IsTerminal() {
		fmt.Printf("%s%s %q\n", indent, s.Kind(), s.Raw())
		return
	}
	fmt.Printf("%s%s\n", indent, s.Kind())
	for _, c := range s.Children() {
		printSegment(c, depth+1)
	}
}
