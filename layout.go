package tprint

import "strings"

type run struct {
	text  string
	count int
	kind  charKind
}

type layout struct {
	format         Format
	stream         []TaggedChar
	pos            int
	indent         int
	line           strings.Builder
	count          int
	hasInk         bool
	forceNewline   bool
	lines          []string
	continuationAt int
}

// Layout packs a tagged stream into lines no wider than f.Width. It returns
// nil when f fails Validate; use Convert to get the error.
func Layout(stream []TaggedChar, f Format) []string {
	if f.Validate() != nil {
		return nil
	}
	f = f.withDefaults()
	l := layout{format: f, stream: stream}
	return l.run()
}

func (l *layout) run() []string {
	if !hasPrintable(l.stream) {
		return nil
	}
	first := max(l.format.TextIndent, 0)
	l.continuationAt = max(l.format.TextIndent+l.format.FollowingIndent, 0)
	l.startLine(first)
	l.indent = l.continuationAt

	for l.pos < len(l.stream) {
		r := l.nextRun()
		switch r.kind {
		case charStandard:
			l.placeText(r)
		case charSpace:
			l.placeSpaces(r.count)
		case charFormatting:
			if r.text == newlineMarker {
				l.forceNewline = true
			} else {
				l.line.WriteString(r.text)
				l.hasInk = true
			}
		case charSpecialFormatting:
			l.applySpecial(r.text)
		}
		if l.count == l.format.Width || l.forceNewline {
			l.flush()
			if l.pos < len(l.stream) {
				l.startLine(l.indent)
			}
			l.forceNewline = false
		}
	}
	if l.line.Len() > 0 {
		l.flushTail()
	}
	return l.lines
}

// flushTail emits the final partial line. A tail holding only escape
// sequences, such as the closing reset after a full-width line, is appended
// to the previous line instead of producing a blank one.
func (l *layout) flushTail() {
	tail := l.line.String()
	if n := len(l.lines); n > 0 && strings.Contains(tail, "\x1b[") && strings.TrimSpace(StripANSI(tail)) == "" {
		l.lines[n-1] += strings.Join(sgrPattern.FindAllString(tail, -1), "")
		l.line.Reset()
		return
	}
	l.flush()
}

// nextRun pops the longest run of one kind. The newline marker and each
// special instruction are runs of their own.
func (l *layout) nextRun() run {
	start := l.pos
	kind := l.stream[start].Kind
	if kind == charFormatting && l.stream[start].Char == newlineMarker {
		l.pos++
		return run{text: newlineMarker, kind: kind}
	}
	if kind == charSpecialFormatting {
		end := start
		for end < len(l.stream) && l.stream[end].Kind == kind {
			end++
			if l.stream[end-1].Char == "]" {
				break
			}
		}
		l.pos = end
		return run{text: joinChars(l.stream[start:end]), kind: kind}
	}
	end := start
	for end < len(l.stream) && l.stream[end].Kind == kind {
		if kind == charFormatting && l.stream[end].Char == newlineMarker {
			break
		}
		end++
	}
	l.pos = end
	r := run{text: joinChars(l.stream[start:end]), kind: kind}
	if kind == charStandard || kind == charSpace {
		r.count = end - start
	}
	return r
}

func (l *layout) placeText(r run) {
	width := l.format.Width
	if l.count+r.count <= width {
		l.line.WriteString(r.text)
		l.count += r.count
		l.hasInk = true
		return
	}
	if r.count+l.indent <= width {
		l.flush()
		l.startLine(l.indent)
		l.line.WriteString(r.text)
		l.count += r.count
		l.hasInk = true
		return
	}
	// Too long for any line: split across as many lines as needed.
	chars := l.stream[l.pos-r.count : l.pos]
	take := width - l.count
	l.line.WriteString(joinChars(chars[:take]))
	l.count = width
	chars = chars[take:]
	l.flush()
	room := width - l.indent
	for len(chars) > room {
		l.startLine(l.indent)
		l.line.WriteString(joinChars(chars[:room]))
		l.count = width
		l.flush()
		chars = chars[room:]
	}
	l.startLine(l.indent)
	l.line.WriteString(joinChars(chars))
	l.count += len(chars)
	l.hasInk = true
}

func (l *layout) placeSpaces(n int) {
	if len(l.lines) > 0 && !l.hasInk {
		return
	}
	if l.count+n > l.format.Width {
		n = l.format.Width - l.count
	}
	l.line.WriteString(strings.Repeat(" ", n))
	l.count += n
}

func (l *layout) applySpecial(text string) {
	if len(text) != 5 {
		return
	}
	value := int(text[2]-'0')*10 + int(text[3]-'0')
	width := l.format.Width
	switch text[1] {
	case 'i':
		if value == 0 {
			l.indent = l.continuationAt
		} else if l.indent+value >= width {
			l.indent = width - 1
		} else {
			l.indent += value
		}
	case 't':
		n := value
		if l.count+n >= width {
			n = width - l.count
		}
		l.line.WriteString(strings.Repeat(" ", n))
		l.count += n
	}
}

func (l *layout) startLine(indent int) {
	l.line.Reset()
	l.line.WriteString(strings.Repeat(" ", indent))
	l.count = indent
	l.hasInk = false
}

func (l *layout) flush() {
	l.lines = append(l.lines, l.line.String())
	l.line.Reset()
	l.count = 0
	l.hasInk = false
}

func joinChars(chars []TaggedChar) string {
	n := 0
	for _, c := range chars {
		n += len(c.Char)
	}
	var b strings.Builder
	b.Grow(n)
	for _, c := range chars {
		b.WriteString(c.Char)
	}
	return b.String()
}

func hasPrintable(stream []TaggedChar) bool {
	for _, c := range stream {
		if c.Kind != charSpace {
			return true
		}
	}
	return false
}
