// Command pkgmap is the CLI tool for package mapping files.
// It provides commands for validating, converting, and resolving
// name:location mappings.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/FocuswithJustin/pkgmap/core/digest"
	"github.com/FocuswithJustin/pkgmap/core/formats"
	"github.com/FocuswithJustin/pkgmap/core/pkgmap"
	"github.com/FocuswithJustin/pkgmap/core/pkgref"
	"github.com/FocuswithJustin/pkgmap/core/uri"
	"github.com/FocuswithJustin/pkgmap/internal/fileutil"
	"github.com/FocuswithJustin/pkgmap/internal/logging"

	// Import embedded format registry to register all format handlers
	_ "github.com/FocuswithJustin/pkgmap/internal/embedded"
)

const version = "0.2.0"

// CLI defines the command-line interface for pkgmap.
var CLI struct {
	// Global flags
	Base      string `help:"Base URI for resolving and relativizing locations (defaults to the input file's own URI)"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"warn" enum:"debug,info,warn,error"`
	LogFormat string `name:"log-format" help:"Log format (text, json)" default:"text" enum:"text,json"`

	Validate ValidateCmd `cmd:"" help:"Parse a mapping file and report problems"`
	List     ListCmd     `cmd:"" help:"List resolved package locations"`
	Fmt      FmtCmd      `cmd:"" help:"Rewrite a mapping file in canonical form"`
	Resolve  ResolveCmd  `cmd:"" help:"Resolve a package: reference against a mapping"`
	Convert  ConvertCmd  `cmd:"" help:"Convert a mapping file to another format"`
	Detect   DetectCmd   `cmd:"" help:"Detect the format of a mapping file"`
	Hash     HashCmd     `cmd:"" help:"Print the canonical digest of a mapping"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// configureLogging applies the global log flags to the process logger.
func configureLogging() {
	var level logging.Level
	switch CLI.LogLevel {
	case "debug":
		level = logging.LevelDebug
	case "info":
		level = logging.LevelInfo
	case "error":
		level = logging.LevelError
	default:
		level = logging.LevelWarn
	}

	format := logging.FormatText
	if CLI.LogFormat == "json" {
		format = logging.FormatJSON
	}

	logging.InitLogger(level, format)
}

// newRunContext returns a context carrying a fresh run ID for log correlation.
func newRunContext() context.Context {
	return logging.WithRunID(context.Background(), uuid.NewString())
}

// baseURI picks the base for resolving relative locations: the --base flag
// when given, otherwise the input file's own URI. Stdin has no location of
// its own, so a synthetic file URI under the working directory stands in.
func baseURI(path string) (uri.URI, error) {
	if CLI.Base != "" {
		b, err := uri.Parse(CLI.Base)
		if err != nil {
			return nil, fmt.Errorf("invalid base URI: %w", err)
		}
		if !b.IsAbsolute() {
			return nil, fmt.Errorf("base URI must be absolute: %q", CLI.Base)
		}
		return b, nil
	}
	if path == fileutil.Stdin {
		path = "stdin"
	}
	return uri.FromFilePath(path)
}

// loadMapping reads path, picks a format handler, and decodes the mapping.
// A formatID of "auto" sniffs the format from the file name and content.
func loadMapping(ctx context.Context, path, formatID string) (*pkgmap.Map, formats.Handler, uri.URI, error) {
	data, err := fileutil.ReadSource(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var handler formats.Handler
	if formatID == "" || formatID == "auto" {
		h, result := formats.Sniff(path, data)
		if h == nil {
			return nil, nil, nil, fmt.Errorf("cannot detect format of %s: %s", path, result.Reason)
		}
		handler = h
	} else {
		handler, err = formats.Get(formatID)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	logging.FileRead(ctx, path, handler.ID(), len(data))

	base, err := baseURI(path)
	if err != nil {
		return nil, nil, nil, err
	}

	m, err := handler.Decode(data, base)
	if err != nil {
		logging.DecodeError(ctx, path, err)
		return nil, nil, nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	logging.DecodeEvent(ctx, path, handler.ID(), m.Len())

	return m, handler, base, nil
}

// writeOutput sends encoded bytes to outPath, or stdout when it is empty.
func writeOutput(out []byte, outPath string) error {
	if outPath == "" || outPath == fileutil.Stdin {
		_, err := os.Stdout.Write(out)
		return err
	}
	if err := fileutil.WriteFileAtomic(outPath, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return nil
}

// ValidateCmd parses a mapping file and reports whether it is well formed.
type ValidateCmd struct {
	Path   string `arg:"" help:"Mapping file path (- for stdin)"`
	Format string `help:"Format ID (auto to sniff)" default:"auto"`
}

func (c *ValidateCmd) Run() error {
	ctx := newRunContext()

	m, handler, _, err := loadMapping(ctx, c.Path, c.Format)
	if err != nil {
		return err
	}

	fmt.Printf("Valid: %s\n", c.Path)
	fmt.Printf("  Format: %s\n", handler.ID())
	fmt.Printf("  Packages: %d\n", m.Len())
	fmt.Printf("  Digest: %s\n", digest.Sum(m))

	return nil
}

// ListCmd prints every package with its fully resolved location.
type ListCmd struct {
	Path   string `arg:"" help:"Mapping file path (- for stdin)"`
	Format string `help:"Format ID (auto to sniff)" default:"auto"`
	JSON   bool   `help:"Output as JSON"`
}

func (c *ListCmd) Run() error {
	ctx := newRunContext()

	m, _, _, err := loadMapping(ctx, c.Path, c.Format)
	if err != nil {
		return err
	}

	entries := m.Entries()
	if c.JSON {
		type listEntry struct {
			Name     string `json:"name"`
			Location string `json:"location"`
		}
		out := make([]listEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, listEntry{Name: e.Name, Location: e.Location.String()})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s\t%s\n", e.Name, e.Location)
	}

	return nil
}

// FmtCmd re-encodes a mapping file in canonical form.
type FmtCmd struct {
	Path    string `arg:"" help:"Mapping file path (- for stdin)"`
	Format  string `help:"Format ID (auto to sniff)" default:"auto"`
	Out     string `help:"Output path (default stdout)" type:"path"`
	Write   bool   `short:"w" help:"Rewrite the input file in place"`
	Comment string `help:"Header comment for the output"`
}

func (c *FmtCmd) Run() error {
	ctx := newRunContext()

	m, handler, base, err := loadMapping(ctx, c.Path, c.Format)
	if err != nil {
		return err
	}

	out, err := handler.Encode(m, base, c.Comment)
	if err != nil {
		return fmt.Errorf("failed to encode as %s: %w", handler.ID(), err)
	}

	if c.Write {
		if c.Path == fileutil.Stdin {
			return fmt.Errorf("cannot rewrite stdin in place")
		}
		return writeOutput(out, c.Path)
	}
	return writeOutput(out, c.Out)
}

// ResolveCmd maps a package: reference to its location, or an absolute
// location back to a package: reference.
type ResolveCmd struct {
	Path   string `arg:"" help:"Mapping file path (- for stdin)"`
	Ref    string `arg:"" help:"package: reference, or an absolute location to invert"`
	Format string `help:"Format ID (auto to sniff)" default:"auto"`
}

func (c *ResolveCmd) Run() error {
	ctx := newRunContext()

	m, _, _, err := loadMapping(ctx, c.Path, c.Format)
	if err != nil {
		return err
	}

	ref, refErr := pkgref.ParseRef(c.Ref)
	if refErr == nil {
		loc, err := ref.Resolve(m, nil)
		if err != nil {
			return err
		}
		fmt.Println(loc)
		return nil
	}

	u, err := uri.Parse(c.Ref)
	if err != nil || !u.IsAbsolute() {
		return fmt.Errorf("not a package: reference or absolute location: %q", c.Ref)
	}
	back, err := pkgref.FromLocation(u, m)
	if err != nil {
		return err
	}
	fmt.Println(back)

	return nil
}

// ConvertCmd decodes a mapping and re-encodes it in another format.
type ConvertCmd struct {
	Path    string `arg:"" help:"Mapping file path (- for stdin)"`
	To      string `required:"" help:"Target format ID"`
	From    string `help:"Source format (auto to sniff)" default:"auto"`
	Out     string `help:"Output path (default stdout)" type:"path"`
	Comment string `help:"Header comment for the output"`
}

func (c *ConvertCmd) Run() error {
	ctx := newRunContext()

	m, source, base, err := loadMapping(ctx, c.Path, c.From)
	if err != nil {
		return err
	}

	target, err := formats.Get(c.To)
	if err != nil {
		return err
	}

	out, err := target.Encode(m, base, c.Comment)
	if err != nil {
		return fmt.Errorf("failed to encode as %s: %w", c.To, err)
	}
	logging.ConvertEvent(ctx, source.ID(), target.ID(), m.Len())

	return writeOutput(out, c.Out)
}

// DetectCmd runs every registered format detector against a file.
type DetectCmd struct {
	Path string `arg:"" help:"Mapping file path (- for stdin)"`
}

func (c *DetectCmd) Run() error {
	data, err := fileutil.ReadSource(c.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.Path, err)
	}

	fmt.Printf("Detecting format of: %s\n\n", c.Path)

	for _, id := range formats.List() {
		handler, err := formats.Get(id)
		if err != nil {
			continue
		}

		result, err := handler.Detect(c.Path, data)
		if err != nil {
			fmt.Printf("  %s: error (%v)\n", id, err)
			continue
		}

		if result.Detected {
			fmt.Printf("  [MATCH] %s: %s\n", id, result.Reason)
		} else {
			fmt.Printf("  [no]    %s: %s\n", id, result.Reason)
		}
	}

	return nil
}

// HashCmd prints the canonical digest of a mapping's resolved contents.
type HashCmd struct {
	Path   string `arg:"" help:"Mapping file path (- for stdin)"`
	Format string `help:"Format ID (auto to sniff)" default:"auto"`
	Check  string `help:"Verify the digest equals this hex value"`
}

func (c *HashCmd) Run() error {
	ctx := newRunContext()

	m, _, _, err := loadMapping(ctx, c.Path, c.Format)
	if err != nil {
		return err
	}

	sum := digest.Sum(m)
	if c.Check != "" {
		if !strings.EqualFold(c.Check, sum) {
			return fmt.Errorf("digest mismatch: got %s, want %s", sum, c.Check)
		}
		fmt.Printf("OK: %s\n", sum)
		return nil
	}
	fmt.Println(sum)

	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("pkgmap version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("pkgmap"),
		kong.Description("Package mapping toolkit: validate, convert, and resolve name:location mapping files"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	configureLogging()

	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
