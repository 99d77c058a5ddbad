package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/existflow/palette/internal/tui"
)

// printer shows board store notices on the terminal
type printer struct {
	stdout   io.Writer
	stderr   io.Writer
	reported bool // an error notice was shown during this run
}

var out = &printer{stdout: os.Stdout, stderr: os.Stderr}

func (p *printer) Success(msg string) {
	fmt.Fprintln(p.stdout, tui.SuccessStyle.Render("✓ "+msg))
}

func (p *printer) Warn(msg string) {
	p.reported = true
	fmt.Fprintln(p.stderr, tui.WarnStyle.Render("! "+msg))
}

func (p *printer) Error(msg string) {
	p.reported = true
	fmt.Fprintln(p.stderr, tui.ErrorStyle.Render("✗ "+msg))
}

func (p *printer) reset() {
	p.reported = false
}
