package tprint

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"
)

const (
	defaultLoadingText        = "Loading"
	defaultLoadingDelay       = 250 * time.Millisecond
	defaultLoadingInterval    = 500 * time.Millisecond
	defaultLoadingMaxLifetime = 120 * time.Second
)

// LoadingRequest configures a loading indicator.
type LoadingRequest struct {
	// Text is printed once before the dots. Defaults to "Loading".
	Text string
	// Delay postpones the text so quick work finishes without any output.
	// Zero prints immediately.
	Delay time.Duration
	// Interval is the time between dots.
	Interval time.Duration
	// MaxLifetime stops the indicator even if it is never cancelled.
	MaxLifetime time.Duration
	// Width wraps the dots onto a new line. Defaults to DefaultWidth.
	Width int
}

// DefaultLoadingRequest returns the standard indicator timing.
func DefaultLoadingRequest() LoadingRequest {
	return LoadingRequest{
		Text:        defaultLoadingText,
		Delay:       defaultLoadingDelay,
		Interval:    defaultLoadingInterval,
		MaxLifetime: defaultLoadingMaxLifetime,
		Width:       DefaultWidth,
	}
}

func (req LoadingRequest) withDefaults() LoadingRequest {
	if req.Text == "" {
		req.Text = defaultLoadingText
	}
	if req.Delay < 0 {
		req.Delay = 0
	}
	if req.Interval <= 0 {
		req.Interval = defaultLoadingInterval
	}
	if req.MaxLifetime <= 0 {
		req.MaxLifetime = defaultLoadingMaxLifetime
	}
	if req.Width <= 0 {
		req.Width = DefaultWidth
	}
	return req
}

// LoadingIndicator prints text followed by a dot per interval until stopped.
type LoadingIndicator struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartLoading starts a loading indicator writing to w. It stops when ctx is
// done, when Stop is called, or after req.MaxLifetime.
func StartLoading(ctx context.Context, w io.Writer, req LoadingRequest) *LoadingIndicator {
	req = req.withDefaults()
	ctx, cancel := context.WithCancel(ctx)
	l := &LoadingIndicator{cancel: cancel, done: make(chan struct{})}
	go l.run(ctx, w, req)
	return l
}

func (l *LoadingIndicator) run(ctx context.Context, w io.Writer, req LoadingRequest) {
	defer close(l.done)
	if err := sleepContext(ctx, req.Delay); err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, req.MaxLifetime)
	defer cancel()

	if _, err := io.WriteString(w, req.Text); err != nil {
		return
	}
	col := VisibleWidth(req.Text) % req.Width
	ticker := time.NewTicker(req.Interval)
	defer ticker.Stop()
	for {
		if col >= req.Width {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return
			}
			col = 0
		}
		if _, err := io.WriteString(w, "."); err != nil {
			return
		}
		col++
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Stop cancels the indicator and waits for it to finish.
func (l *LoadingIndicator) Stop() {
	l.cancel()
	<-l.done
}

// Done is closed when the indicator has stopped.
func (l *LoadingIndicator) Done() <-chan struct{} {
	return l.done
}

// Active reports whether the indicator is still running.
func (l *LoadingIndicator) Active() bool {
	select {
	case <-l.done:
		return false
	default:
		return true
	}
}

// StartLoading starts a loading indicator on the Printer's output, stopping
// any indicator already running. A zero req.Width uses the Printer's width.
func (p *Printer) StartLoading(ctx context.Context, req LoadingRequest) {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()
	if p.loading != nil {
		p.loading.Stop()
	}
	if req.Width <= 0 {
		req.Width = p.format.withDefaults().Width
	}
	p.loading = StartLoading(ctx, lockedWriter{mu: &p.mu, w: p.out}, req)
	p.logger.Debug("loading indicator started", zap.String("text", req.Text))
}

// StopLoading stops the running loading indicator, if any, and waits for it.
func (p *Printer) StopLoading() {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()
	if p.loading == nil {
		return
	}
	p.loading.Stop()
	p.loading = nil
	p.logger.Debug("loading indicator stopped")
}

// LoadingActive reports whether a loading indicator is running.
func (p *Printer) LoadingActive() bool {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()
	return p.loading != nil && p.loading.Active()
}
