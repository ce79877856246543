package cmd

import (
	"os"

	"github.com/gosuri/uiprogress"
	"github.com/mattn/go-isatty"
)

// progress wraps a uiprogress bar. Off a terminal it does nothing, so piped
// output and logs stay clean.
type progress struct {
	bar *uiprogress.Bar
}

func startProgress(label string, total int) *progress {
	fd := os.Stdout.Fd()
	if total <= 0 || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) {
		return &progress{}
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(total).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return label
	})
	return &progress{bar: bar}
}

func (p *progress) Incr() {
	if p.bar != nil {
		p.bar.Incr()
	}
}

func (p *progress) Stop() {
	if p.bar != nil {
		uiprogress.Stop()
	}
}
