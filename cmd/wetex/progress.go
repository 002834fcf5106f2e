package main

import (
	"fmt"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/term"
)

// progress wraps an mpb bar for the extraction loop, disabled when stderr
// isn't a terminal or --quiet was passed.
type progress struct {
	container *mpb.Progress
	bar       *mpb.Bar
	enabled   bool
}

func newProgress(total int, enabled bool) *progress {
	p := &progress{enabled: enabled && isTerminal()}
	if !p.enabled {
		return p
	}

	p.container = mpb.New(
		mpb.WithOutput(os.Stderr),
		mpb.WithWidth(48),
		mpb.WithRefreshRate(100*time.Millisecond),
	)
	p.bar = p.container.New(int64(total),
		mpb.BarStyle().Lbound("[").Filler("=").Tip(">").Padding(" ").Rbound("]"),
		mpb.PrependDecorators(decor.CountersNoUnit("%d/%d")),
		mpb.AppendDecorators(decor.Percentage()),
	)
	return p
}

func (p *progress) increment() {
	if p.enabled {
		p.bar.Increment()
	}
}

func (p *progress) finish() {
	if p.enabled {
		p.container.Wait()
		fmt.Fprintln(os.Stderr)
	}
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
