// Package main provides the formdata command. It reads a JSON object and
// writes it as flattened multipart/form-data fields.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/tomasbasham/formdata"
)

const stdStream = "-"

type flags struct {
	configPath string
	in         string
	out        string
	exclude    string
	boundary   string
	format     string
	logLevel   string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("formdata", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var f flags
	fs.StringVar(&f.configPath, "config", "", "path to a TOML config file")
	fs.StringVar(&f.in, "in", stdStream, "JSON input file, - for stdin")
	fs.StringVar(&f.out, "out", stdStream, "output file, - for stdout")
	fs.StringVar(&f.exclude, "exclude", "", "comma separated field names whose arrays are not indexed")
	fs.StringVar(&f.boundary, "boundary", "", "multipart boundary, random when empty")
	fs.StringVar(&f.format, "format", "", "output format: multipart or fields")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(f.logLevel)); err != nil {
		fmt.Fprintf(stderr, "Error: invalid log level %q\n", f.logLevel)
		return 2
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(f.configPath)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		return 1
	}
	applyFlags(fs, f, &cfg)
	if err := cfg.validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		return 2
	}

	if err := execute(cfg, f, stdin, stdout, logger); err != nil {
		logger.Error("Encoding failed", "error", err)
		return 1
	}
	return 0
}

// applyFlags overrides cfg with the flags given explicitly on the command line.
func applyFlags(fs *flag.FlagSet, f flags, cfg *Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "exclude":
			cfg.Exclude = splitList(f.exclude)
		case "boundary":
			cfg.Boundary = f.boundary
		case "format":
			cfg.Format = f.format
		}
	})
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func execute(cfg Config, f flags, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	data, err := readInput(f.in, stdin)
	if err != nil {
		return err
	}

	root, err := formdata.ParseJSON(data)
	if err != nil {
		return err
	}

	root, err = attachFiles(root, cfg.Attach, logger)
	if err != nil {
		return err
	}

	w, closeOut, err := openOutput(f.out, stdout)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)

	if err := write(bw, root, cfg, logger); err != nil {
		closeOut()
		return err
	}
	if err := bw.Flush(); err != nil {
		closeOut()
		return fmt.Errorf("failed to write output: %w", err)
	}
	return closeOut()
}

func write(w io.Writer, root formdata.Mapping, cfg Config, logger *slog.Logger) error {
	form := formdata.Encode(root, formdata.NewExclusionSet(cfg.Exclude...))
	logger.Debug("Encoded form", "fields", form.Len(), "files", form.Files().Len())

	switch cfg.Format {
	case formatFields:
		for _, field := range form {
			if field.IsFile() {
				fmt.Fprintf(w, "%s=@%s (%s, %d bytes)\n", field.Name, field.File.Filename, field.File.MediaType(), len(field.File.Content))
				continue
			}
			fmt.Fprintf(w, "%s=%s\n", field.Name, fieldText(field.Value))
		}
		return nil
	default:
		var opts []formdata.Option
		if cfg.Boundary != "" {
			opts = append(opts, formdata.WithBoundary(cfg.Boundary))
		}
		enc := formdata.NewEncoder(w, opts...)
		if err := enc.EncodeForm(form); err != nil {
			return err
		}
		logger.Info("Wrote multipart body", "content_type", enc.FormDataContentType(), "fields", form.Len())
		return nil
	}
}

// fieldText keeps each field on a single line: values that need escaping, such
// as those with newlines or quotes, are printed as Go quoted strings.
func fieldText(s string) string {
	q := strconv.Quote(s)
	if q[1:len(q)-1] == s {
		return s
	}
	return q
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == stdStream {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input %s: %w", path, err)
	}
	return data, nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == stdStream {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output %s: %w", path, err)
	}
	return f, f.Close, nil
}
