package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	sidekiq "github.com/rootlyhq/sidekiq-client-cli"
)

var (
	colorSuccess = lipgloss.Color("42")  // green
	colorDanger  = lipgloss.Color("196") // red
)

// Printer writes one result line per pushed task. Status words are colored
// only when the writer is a terminal.
type Printer struct {
	w    io.Writer
	ok   lipgloss.Style
	fail lipgloss.Style
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = io.Discard
	}
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:    w,
		ok:   r.NewStyle().Foreground(colorSuccess),
		fail: r.NewStyle().Foreground(colorDanger),
	}
}

// Posted reports a successful push.
func (p *Printer) Posted(arg, queue, jid string, retry sidekiq.Retry) {
	fmt.Fprintf(p.w, "%s %s to queue '%s', Job ID : %s, Retry : %s\n",
		p.ok.Render("Posted"), arg, queue, jid, retry)
}

// Failed reports a push that returned err.
func (p *Printer) Failed(err error) {
	fmt.Fprintf(p.w, "%s : %v\n", p.fail.Render("Failed to push to queue"), err)
}
