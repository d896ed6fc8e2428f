package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"
	"pkt.systems/tprint"
	"pkt.systems/tprint/internal/logging"
	"pkt.systems/version"
)

const (
	defaultBorder      = "-"
	defaultLoadingText = "Loading"
)

func init() {
	version.SetDefaultModule("pkt.systems/tprint")
}

type options struct {
	width           int
	indent          int
	followingIndent int
	noNewline       bool
	heading         string
	border          string
	plain           bool
	listColors      bool
	outPath         string

	prompt     string
	inputType  string
	min        float64
	max        float64
	choices    []string
	allowEmpty bool

	loading     time.Duration
	loadingText string

	configPath  string
	logLevel    string
	showVersion bool

	// explicit records flags given on the command line.
	explicit map[string]bool
}

// errUsage marks errors caused by bad flags or configuration.
var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var o options
	flags := pflag.NewFlagSet("tprint", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.IntVarP(&o.width, "width", "w", 0, "Paragraph width (0 uses terminal width if available)")
	flags.IntVar(&o.indent, "indent", 0, "Spaces before every line")
	flags.IntVar(&o.followingIndent, "following-indent", 0, "Extra spaces before every line after the first")
	flags.BoolVarP(&o.noNewline, "no-newline", "n", false, "Do not print a newline after the last line")
	flags.StringVar(&o.heading, "heading", "", "Print a heading between border lines before the text")
	flags.StringVar(&o.border, "border", defaultBorder, "Border character for --heading")
	flags.BoolVarP(&o.plain, "plain", "p", false, "Strip styles and colors from the output")
	flags.BoolVar(&o.listColors, "list-colors", false, "List available color names")
	flags.StringVarP(&o.outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVar(&o.prompt, "prompt", "", "Ask a question on the terminal and print the answer")
	flags.StringVar(&o.inputType, "type", "string", "Answer type for --prompt: string|integer|float")
	flags.Float64Var(&o.min, "min", 0, "Lower limit for numeric answers")
	flags.Float64Var(&o.max, "max", 0, "Upper limit for numeric answers")
	flags.StringArrayVar(&o.choices, "choice", nil, "Accepted answer for --prompt (repeatable)")
	flags.BoolVar(&o.allowEmpty, "allow-empty", false, "Accept an empty answer for --prompt")
	flags.DurationVar(&o.loading, "loading", 0, "Show a loading indicator for the given duration")
	flags.StringVar(&o.loadingText, "loading-text", defaultLoadingText, "Text shown before the loading dots")
	flags.StringVarP(&o.configPath, "config", "c", "", "YAML file with default settings")
	flags.StringVar(&o.logLevel, "log-level", "", "Log level: debug|info|warn|error (default from "+logging.LogLevelEnvVar+")")
	flags.BoolVarP(&o.showVersion, "version", "v", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: tprint [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nIf no input is provided, markup is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	o.explicit = make(map[string]bool)
	flags.Visit(func(f *pflag.Flag) { o.explicit[f.Name] = true })
	if o.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}
	if o.configPath != "" {
		cfg, err := loadConfig(o.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "config: %v\n", err)
			return 2
		}
		cfg.apply(flags, &o)
	}

	if err := logging.Initialize(o.logLevel); err != nil {
		fmt.Fprintf(stderr, "logging: %v\n", err)
		return 2
	}
	defer logging.Sync()

	if err := execute(ctx, o, flags.Args(), stdin, stdout); err != nil {
		fmt.Fprintf(stderr, "tprint: %v\n", err)
		if errors.Is(err, errUsage) {
			return 2
		}
		logging.Error("render failed", zap.Error(err))
		return 1
	}
	return 0
}

func execute(ctx context.Context, o options, args []string, stdin io.Reader, stdout io.Writer) error {
	log := logging.GetLogger()
	border, err := resolveBorder(o.border)
	if err != nil {
		return err
	}
	format := tprint.Format{
		Width:           resolveWidth(o.width),
		TextIndent:      o.indent,
		FollowingIndent: o.followingIndent,
	}
	if err := format.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	color := !o.plain && tprint.DetectColorSupport()
	log.Debug("resolved format",
		zap.Int("width", format.Width),
		zap.Int("indent", format.TextIndent),
		zap.Int("following_indent", format.FollowingIndent),
		zap.Bool("color", color),
	)

	// Prompts and the loading indicator always use the terminal; rendered
	// text follows --output.
	terminal := tprint.NewPrinter(stdout, stdin,
		tprint.WithFormat(format),
		tprint.WithColor(color),
		tprint.WithLogger(log),
	)

	if o.listColors {
		return printColors(terminal)
	}

	var writer io.Writer = stdout
	printer := terminal
	if o.outPath != "" {
		f, err := createOutput(o.outPath)
		if err != nil {
			return fmt.Errorf("open output: %w", err)
		}
		defer func() { _ = f.Close() }()
		writer = f
		printer = tprint.NewPrinter(f, nil,
			tprint.WithFormat(format),
			tprint.WithColor(color),
			tprint.WithLogger(log),
		)
	}

	if o.heading != "" {
		if err := printer.PrintHeading(o.heading, border, tprint.Format{}); err != nil {
			return err
		}
	}

	if o.loading > 0 {
		if err := showLoading(ctx, terminal, o); err != nil {
			return err
		}
	}

	if o.prompt != "" {
		answer, err := ask(ctx, terminal, o)
		if err != nil {
			return err
		}
		fmt.Fprintln(writer, answer)
	}

	// Without file arguments stdin is the text, unless another mode already
	// produced output or stdin is needed for the prompt.
	if len(args) == 0 && (o.prompt != "" || o.heading != "" || o.loading > 0) {
		return nil
	}
	docs, err := readDocuments(ctx, args, stdin)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	for i, doc := range docs {
		logging.LogSource(doc.source, len(doc.body))
		bodyFormat := format
		if doc.hasMeta {
			bodyFormat = doc.config.format(format, o.explicit)
			if err := bodyFormat.Validate(); err != nil {
				return fmt.Errorf("%s: front matter: %w", doc.source, err)
			}
			logging.Info("front matter applied",
				zap.String("source", doc.source),
				zap.Int("width", bodyFormat.Width),
				zap.String("heading", doc.config.Heading),
			)
			if doc.config.Heading != "" && o.heading == "" {
				if err := printer.PrintHeading(doc.config.Heading, border, bodyFormat); err != nil {
					return err
				}
			}
		}
		if o.noNewline && i == len(docs)-1 {
			err = printer.PrintInline(doc.body, bodyFormat)
		} else {
			err = printer.Print(doc.body, bodyFormat)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func ask(ctx context.Context, p *tprint.Printer, o options) (string, error) {
	kind, err := tprint.ParseInputKind(o.inputType)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errUsage, err)
	}
	return p.Input(ctx, tprint.InputRequest{
		Message:    o.prompt,
		Kind:       kind,
		Lower:      o.min,
		Upper:      o.max,
		AllowEmpty: o.allowEmpty,
		Choices:    o.choices,
	})
}

func showLoading(ctx context.Context, p *tprint.Printer, o options) error {
	p.StartLoading(ctx, tprint.LoadingRequest{
		Text:        o.loadingText,
		Interval:    500 * time.Millisecond,
		MaxLifetime: o.loading,
	})
	err := p.Pause(ctx, o.loading)
	p.StopLoading()
	if werr := p.Newline(); werr != nil {
		return werr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printColors(p *tprint.Printer) error {
	basic := make(map[string]bool)
	for _, name := range tprint.BasicColors() {
		basic[name] = true
	}
	for _, name := range tprint.Colors() {
		label := name
		if basic[name] {
			label += " (basic)"
		}
		if err := p.Print("[c-"+name+"]"+label+"[c-none]", tprint.Format{}); err != nil {
			return err
		}
	}
	return nil
}

func resolveBorder(border string) (rune, error) {
	if utf8.RuneCountInString(border) != 1 {
		return 0, fmt.Errorf("%w: --border must be a single character, got %q", errUsage, border)
	}
	r, _ := utf8.DecodeRuneInString(border)
	return r, nil
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(tprint.DefaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

