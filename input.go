package tprint

import (
	"context"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// InputKind selects how a prompt answer is validated.
type InputKind uint8

const (
	// InputString accepts any text.
	InputString InputKind = iota
	// InputInteger accepts a whole number within the limits.
	InputInteger
	// InputFloat accepts a decimal number within the limits.
	InputFloat
)

// String returns the kind name.
func (k InputKind) String() string {
	switch k {
	case InputInteger:
		return "integer"
	case InputFloat:
		return "float"
	default:
		return "string"
	}
}

// ParseInputKind maps "string", "integer"/"int" and "float" to an InputKind.
func ParseInputKind(name string) (InputKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "string", "str":
		return InputString, nil
	case "integer", "int":
		return InputInteger, nil
	case "float", "number":
		return InputFloat, nil
	default:
		return InputString, fmt.Errorf("unknown input type %q: expected string|integer|float", name)
	}
}

// InputRequest configures Printer.Input.
type InputRequest struct {
	// Message is the prompt, in markup. It is printed without a trailing newline.
	Message string
	Kind    InputKind
	// Lower and Upper bound numeric answers inclusively, in either order.
	// Both zero means unbounded.
	Lower float64
	Upper float64
	// AllowEmpty accepts a bare enter and returns "".
	AllowEmpty bool
	// Choices, when set, lists the only answers accepted.
	Choices []string
	Format  Format
}

const (
	retryPrompt   = "Try again.[n]Press enter to continue. "
	missingAnswer = "Input is required but no input was received."
)

// Input prompts until a valid answer is read and returns it as typed.
// Invalid answers print the reason, wait for enter and clear the screen.
// ctx is checked between attempts; a blocked read is not interrupted.
func (p *Printer) Input(ctx context.Context, req InputRequest) (string, error) {
	f := p.resolve(req.Format)
	if err := f.Validate(); err != nil {
		return "", fmt.Errorf("input: %w", err)
	}
	if p.in == nil {
		return "", fmt.Errorf("input: no input reader configured")
	}
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("input: %w", err)
		}
		if err := p.PrintInline(req.Message, f); err != nil {
			return "", fmt.Errorf("input: %w", err)
		}
		answer, err := p.readLine()
		if err != nil {
			return "", fmt.Errorf("input: read: %w", err)
		}
		reason, ok := req.check(answer)
		if ok {
			p.logger.Debug("input accepted", zap.Int("attempt", attempt), zap.Stringer("kind", req.Kind))
			return answer, nil
		}
		p.logger.Debug("input rejected", zap.Int("attempt", attempt), zap.String("reason", reason))
		if err := p.Print(reason, Format{}); err != nil {
			return "", fmt.Errorf("input: %w", err)
		}
		if err := p.PrintInline(retryPrompt, Format{}); err != nil {
			return "", fmt.Errorf("input: %w", err)
		}
		if _, err := p.readLine(); err != nil {
			return "", fmt.Errorf("input: read: %w", err)
		}
		if err := p.Clear(); err != nil {
			return "", fmt.Errorf("input: clear: %w", err)
		}
	}
}

func (p *Printer) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// check returns the message to show for a rejected answer.
func (req InputRequest) check(answer string) (string, bool) {
	if answer == "" {
		if req.AllowEmpty {
			return "", true
		}
		return missingAnswer, false
	}
	extra := ""
	if req.AllowEmpty {
		extra = " or you can just press enter"
	}
	const prefix = "ERROR. Incorrect input type was received. "
	if len(req.Choices) > 0 {
		if slices.Contains(req.Choices, answer) {
			return "", true
		}
		return prefix + "Text must be one of the following: " + JoinList(req.Choices, "or") + extra + ".", false
	}
	bounded := req.Lower != 0 || req.Upper != 0
	lo, hi := math.Min(req.Lower, req.Upper), math.Max(req.Lower, req.Upper)
	switch req.Kind {
	case InputFloat:
		v, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
		if err != nil || math.IsNaN(v) {
			return prefix + answer + " is not a number" + extra + ".", false
		}
		if bounded && (v < lo || v > hi) {
			return prefix + answer + " was given but value must be between " + formatFloat(lo) + " and " + formatFloat(hi) + extra + ".", false
		}
	case InputInteger:
		v, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil {
			return prefix + answer + " is not a whole number" + extra + ".", false
		}
		ilo, ihi := int(math.Trunc(lo)), int(math.Trunc(hi))
		if bounded && (v < ilo || v > ihi) {
			return prefix + answer + " was given but value must be between " + strconv.Itoa(ilo) + " and " + strconv.Itoa(ihi) + extra + ".", false
		}
	}
	return "", true
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
