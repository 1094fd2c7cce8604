package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/ariel-frischer/releasekit/internal/output"
	"github.com/ariel-frischer/releasekit/internal/release"
)

const spinnerInterval = 100 * time.Millisecond

// Display renders release stages. It implements release.StageTracker.
type Display struct {
	out     io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	total   int

	spin    *spinner.Spinner
	started time.Time
}

// NewDisplay creates a Display writing to out. The spinner is used only when
// caps reports a TTY.
func NewDisplay(out io.Writer, caps TerminalCapabilities) *Display {
	return &Display{
		out:     out,
		caps:    caps,
		symbols: SelectSymbols(caps),
		total:   len(release.Stages()),
	}
}

// Begin starts the spinner (TTY) or prints the stage line (plain).
func (d *Display) Begin(stage release.Stage) {
	d.started = time.Now()
	if !d.caps.IsTTY {
		output.PrintStageHeader(d.out, int(stage)+1, d.total, stage.Description())
		return
	}

	d.spin = spinner.New(spinner.CharSets[d.symbols.SpinnerSet], spinnerInterval, spinner.WithWriter(d.out))
	d.spin.Suffix = " " + d.label(stage)
	if d.caps.SupportsColor {
		_ = d.spin.Color("cyan")
	}
	d.spin.Start()
}

// End stops the spinner and prints the stage result. In plain mode nothing
// is printed; a failure is reported by the caller.
func (d *Display) End(stage release.Stage, err error) {
	if d.spin != nil {
		d.spin.Stop()
		d.spin = nil
	}
	if !d.caps.IsTTY {
		return
	}

	label := d.label(stage)
	elapsed := time.Since(d.started).Round(time.Millisecond)
	if err != nil {
		fmt.Fprintf(d.out, "%s %s (%s)\n", d.paint(color.FgRed, d.symbols.Failure), label, elapsed)
		return
	}
	fmt.Fprintf(d.out, "%s %s (%s)\n", d.paint(color.FgGreen, d.symbols.Checkmark), label, elapsed)
}

func (d *Display) label(stage release.Stage) string {
	return fmt.Sprintf("[%d/%d] %s", int(stage)+1, d.total, stage.Description())
}

func (d *Display) paint(attr color.Attribute, s string) string {
	if !d.caps.SupportsColor {
		return s
	}
	return color.New(attr, color.Bold).Sprint(s)
}
