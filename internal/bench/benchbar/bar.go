// Package benchbar provides a really simple progress bar for the benchmarking
// process.
package benchbar

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Bar counts the rows processed by one benchmark phase.
type Bar struct {
	pb          *progressbar.ProgressBar
	description string
	maxItems    int
}

// NewBar renders a bar to out. Pass io.Discard to hide it.
func NewBar(out io.Writer, description string, maxItems int) *Bar {
	pb := progressbar.NewOptions64(
		int64(maxItems),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetWidth(10),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("rows"),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(out, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)
	_ = pb.Set(0)

	return &Bar{
		pb:          pb,
		description: description,
		maxItems:    maxItems,
	}
}

func (b *Bar) Inc() {
	_ = b.pb.Add(1)
}

// Count returns the number of increments so far.
func (b *Bar) Count() int {
	return int(b.pb.State().CurrentNum)
}

func (b *Bar) Finish() {
	_ = b.pb.Finish()
	_ = b.pb.Close()
}
