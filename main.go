package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/mcncl/jsoncs/internal/config"
	"github.com/mcncl/jsoncs/internal/errors"
	"github.com/mcncl/jsoncs/internal/formatter"
	"github.com/mcncl/jsoncs/internal/generator"
	"github.com/mcncl/jsoncs/internal/logger"
	"github.com/mcncl/jsoncs/internal/models"
	"github.com/mcncl/jsoncs/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output C# file. If not specified, writes to stdout (or to --dir)." short:"o" type:"path"`
	Name        string `help:"Handler name. The root class is named <name>Request and --dir output goes to <name>Handler.cs." short:"n"`
	Dir         string `help:"Directory to write <name>Handler.cs into." short:"D" type:"path"`
	RootName    string `help:"Explicit name for the root class, overriding the handler name." short:"r"`
	Namespace   string `help:"Wrap the generated classes in this namespace." short:"N"`
	Config      string `help:"Path to a config file. Defaults to the nearest .jsoncs.yml." short:"c" type:"path"`
	Format      bool   `help:"Tidy the output and add using directives." short:"f" default:"true" negatable:""`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Log    *zap.Logger
	Stdout io.Writer
	Stderr io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsoncs"),
		kong.Description("A tool to convert JSON to C# classes"),
		kong.UsageOnError(),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// Usage has already been shown by kong.UsageOnError()
		os.Exit(1)
	}

	// No arguments at all means interactive mode
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if CLI.Version {
		fmt.Printf("jsoncs version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fail(err)
	}

	log, err := logger.New(cfg.Dev.Debug)
	if err != nil {
		fail(errors.NewConfigError("failed to initialize logger", err))
	}
	defer func() { _ = log.Sync() }()

	ctx := &Context{
		Debug:  cfg.Dev.Debug,
		Config: cfg,
		Log:    log,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	if err := run(ctx); err != nil {
		log.Debug("run failed", zap.String(logger.FieldOperation, "run"), zap.Error(err))
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
	fmt.Fprintf(os.Stderr, "\nFor help, run: jsoncs --help\n")
	os.Exit(1)
}

// loadConfig merges the config file, if any, with command-line flags
func loadConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	overrides := config.Overrides{
		HandlerName: CLI.Name,
		RootName:    CLI.RootName,
		Dir:         CLI.Dir,
		Namespace:   CLI.Namespace,
		Debug:       CLI.Debug,
	}
	// The flag defaults to true, so only an explicit --no-format overrides the file.
	if !CLI.Format {
		disabled := false
		overrides.Format = &disabled
	}

	cfg, err := config.LoadConfigWithCLI(configPath, overrides)
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigError("invalid configuration", err)
	}
	return cfg, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	if ctx.Config == nil {
		ctx.Config = config.NewConfig()
	}
	ctx.Log = logger.OrNop(ctx.Log)
	if ctx.Stdout == nil {
		ctx.Stdout = os.Stdout
	}
	if ctx.Stderr == nil {
		ctx.Stderr = os.Stderr
	}
	cfg := ctx.Config

	// 1. Parse JSON input
	doc, err := parseInput(ctx)
	if err != nil {
		return err
	}

	// 2. Generate C# classes
	rootName := cfg.ResolveRootName()
	ctx.Log.Debug("generating classes", zap.String(logger.FieldSeed, rootName))

	generatorInst := generator.NewGeneratorWithConfig(cfg, ctx.Log)
	code, err := generatorInst.Generate(doc.Root, rootName)
	if err != nil {
		return errors.NewGenerateError("failed to generate C# classes", err)
	}

	// 3. Format the code if requested
	if cfg.Formatting.Enabled {
		formatterInst := formatter.NewFormatterWithConfig(cfg.Output)
		code, err = formatterInst.Format(code)
		if err != nil {
			ctx.Log.Debug("formatting failed", zap.String(logger.FieldOperation, "format"), zap.Error(err))
			return errors.NewFormatError("failed to format C# code", err)
		}
	}

	// 4. Output the result
	return writeOutput(ctx, code)
}

func parserOptions(ctx *Context) []parser.Option {
	return []parser.Option{
		parser.WithMaxDepth(ctx.Config.Limits.MaxDepth),
		parser.WithLogger(ctx.Log),
	}
}

// parseInput reads JSON from file or stdin
func parseInput(ctx *Context) (models.Document, error) {
	opts := parserOptions(ctx)

	if CLI.Input != "" {
		ctx.Log.Debug("reading input file", zap.String(logger.FieldFile, CLI.Input))
		return parser.ParseFile(CLI.Input, opts...)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		if CLI.Interactive {
			return readInteractiveInput(ctx)
		}
		return models.Document{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read from stdin", err)
	}

	if len(jsonData) == 0 {
		return models.Document{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return parser.ParseString(string(jsonData), opts...)
}

// writeOutput writes code to a file, the handler directory or stdout
func writeOutput(ctx *Context, code string) error {
	if CLI.Output != "" {
		if err := os.WriteFile(CLI.Output, []byte(code), 0o644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(ctx.Stderr, "Generated C# code written to %s\n", CLI.Output)
		return nil
	}

	if dir := ctx.Config.Output.Dir; dir != "" {
		if ctx.Config.HandlerName == "" {
			return errors.NewOutputError("cannot name the output file", errors.ErrNoHandlerName)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to create directory '%s'", dir), err)
		}
		path := filepath.Join(dir, ctx.Config.HandlerFileName())
		if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
		}
		ctx.Log.Debug("wrote handler file", zap.String(logger.FieldFile, path), zap.Int(logger.FieldSize, len(code)))
		fmt.Fprintln(ctx.Stderr, "Code generated successfully!")
		return nil
	}

	if _, err := fmt.Fprintln(ctx.Stdout, strings.TrimSpace(code)); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput(ctx *Context) (models.Document, error) {
	fmt.Fprintln(ctx.Stderr, "jsoncs Interactive Mode")
	fmt.Fprintln(ctx.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.Document{}, errors.NewInputError("error reading input", err)
		}
	}

	jsonData := jsonBuilder.String()
	if strings.TrimSpace(jsonData) == "" {
		return models.Document{}, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(ctx.Stderr, "\nProcessing JSON...")
	return parser.ParseString(jsonData, parserOptions(ctx)...)
}
