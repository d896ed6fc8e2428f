package tprint

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Printer writes converted markup to a terminal and reads prompt answers.
// It is safe to print while a loading indicator is running.
type Printer struct {
	mu     sync.Mutex
	out    io.Writer
	in     *bufio.Reader
	format Format
	color  bool
	logger *zap.Logger
	clear  func() error
	sleep  func(context.Context, time.Duration) error

	loadMu  sync.Mutex
	loading *LoadingIndicator
}

// NewPrinter returns a Printer writing to out and reading answers from in.
// in may be nil when no prompts are used.
func NewPrinter(out io.Writer, in io.Reader, opts ...PrinterOption) *Printer {
	cfg := printerConfig{color: true, logger: zap.NewNop(), sleep: sleepContext}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	p := &Printer{
		out:    out,
		format: cfg.format,
		color:  cfg.color,
		logger: cfg.logger,
		clear:  cfg.clear,
		sleep:  cfg.sleep,
	}
	if in != nil {
		p.in = bufio.NewReader(in)
	}
	return p
}

// Print converts text and writes every line followed by a newline.
// A zero f uses the Printer's format.
func (p *Printer) Print(text string, f Format) error {
	return p.print(text, f, true)
}

// PrintInline is Print without the newline after the last line, for prompts
// and text that continues on the same line.
func (p *Printer) PrintInline(text string, f Format) error {
	return p.print(text, f, false)
}

// PrintHeading prints heading between two border lines as long as the
// heading's visible text.
func (p *Printer) PrintHeading(heading string, border rune, f Format) error {
	f = p.resolve(f)
	n := visibleLength(heading)
	if n == 0 {
		n = 1
	}
	rule := strings.Repeat(string(border), n)
	if err := p.Print(rule, f); err != nil {
		return err
	}
	if err := p.Print(heading, f); err != nil {
		return err
	}
	return p.Print(rule, f)
}

// Clear clears the terminal screen.
func (p *Printer) Clear() error {
	if p.clear != nil {
		return p.clear()
	}
	return p.write(ansiClearScreen)
}

// Newline writes a bare line break, for ending inline or loading output.
func (p *Printer) Newline() error {
	return p.write("\n")
}

// Pause blocks for d or until ctx is done.
func (p *Printer) Pause(ctx context.Context, d time.Duration) error {
	return p.sleep(ctx, d)
}

func (p *Printer) print(text string, f Format, newline bool) error {
	lines, err := Convert(text, p.resolve(f))
	if err != nil {
		return fmt.Errorf("print: %w", err)
	}
	var b strings.Builder
	for i, line := range lines {
		if !p.color {
			line = StripANSI(line)
		}
		b.WriteString(line)
		if newline || i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return p.write(b.String())
}

func (p *Printer) resolve(f Format) Format {
	if f == (Format{}) {
		return p.format
	}
	return f
}

func (p *Printer) write(s string) error {
	if s == "" {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := io.WriteString(p.out, s); err != nil {
		return fmt.Errorf("print: write: %w", err)
	}
	return nil
}

// lockedWriter serializes writes from the loading goroutine with Printer
// output.
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l lockedWriter) Write(b []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(b)
}

// visibleLength counts the printable characters text produces.
func visibleLength(text string) int {
	n := 0
	for _, c := range Scan(text) {
		if c.Kind == charStandard || c.Kind == charSpace {
			n++
		}
	}
	return n
}
