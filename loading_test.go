package tprint

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the indicator goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitDone(t *testing.T, l *LoadingIndicator) {
	t.Helper()
	select {
	case <-l.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("loading indicator did not stop")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met before deadline")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestLoadingStoppedBeforeDelayPrintsNothing(t *testing.T) {
	var out syncBuffer
	l := StartLoading(context.Background(), &out, LoadingRequest{Delay: time.Hour})
	if !l.Active() {
		t.Fatalf("expected indicator to be active")
	}
	l.Stop()
	if l.Active() {
		t.Fatalf("expected indicator to be stopped")
	}
	if got := out.String(); got != "" {
		t.Fatalf("expected no output, got %q", got)
	}
}

func TestLoadingStopsAfterMaxLifetime(t *testing.T) {
	var out syncBuffer
	l := StartLoading(context.Background(), &out, LoadingRequest{
		Text:        "Wait",
		Interval:    time.Millisecond,
		MaxLifetime: 30 * time.Millisecond,
	})
	waitDone(t, l)
	got := out.String()
	if !strings.HasPrefix(got, "Wait.") {
		t.Fatalf("unexpected output %q", got)
	}
	if strings.Trim(got[len("Wait"):], ".\n") != "" {
		t.Fatalf("unexpected characters after text: %q", got)
	}
}

func TestLoadingStopsWithContext(t *testing.T) {
	var out syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	l := StartLoading(ctx, &out, LoadingRequest{Interval: time.Millisecond})
	cancel()
	waitDone(t, l)
}

func TestLoadingWrapsAtWidth(t *testing.T) {
	var out syncBuffer
	l := StartLoading(context.Background(), &out, LoadingRequest{
		Text:        "ab",
		Interval:    time.Millisecond,
		MaxLifetime: 200 * time.Millisecond,
		Width:       4,
	})
	waitDone(t, l)
	lines := strings.Split(out.String(), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected dots to wrap, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "ab..") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	for i, line := range lines {
		if len(line) > 4 {
			t.Fatalf("line %d exceeds width: %q", i, line)
		}
	}
}

func TestDefaultLoadingRequest(t *testing.T) {
	req := DefaultLoadingRequest()
	if req.Text != "Loading" || req.Delay != 250*time.Millisecond || req.Interval != 500*time.Millisecond {
		t.Fatalf("unexpected defaults %+v", req)
	}
	if req.MaxLifetime != 120*time.Second || req.Width != DefaultWidth {
		t.Fatalf("unexpected defaults %+v", req)
	}
}

func TestPrinterLoading(t *testing.T) {
	var out syncBuffer
	p := NewPrinter(&out, nil)
	ctx := context.Background()
	req := LoadingRequest{Text: "Busy", Interval: time.Millisecond}

	p.StartLoading(ctx, req)
	if !p.LoadingActive() {
		t.Fatalf("expected loading to be active")
	}
	waitFor(t, func() bool { return strings.Count(out.String(), "Busy") == 1 })
	p.StartLoading(ctx, req)
	waitFor(t, func() bool { return strings.Count(out.String(), "Busy") == 2 })
	if err := p.Print("still printing", Format{}); err != nil {
		t.Fatalf("print: %v", err)
	}
	p.StopLoading()
	if p.LoadingActive() {
		t.Fatalf("expected loading to stop")
	}
	p.StopLoading()

	got := out.String()
	if !strings.Contains(got, "still printing\n") {
		t.Fatalf("print output interleaved: %q", got)
	}
	if strings.Count(got, "Busy") != 2 {
		t.Fatalf("expected two indicators, got %q", got)
	}
}
