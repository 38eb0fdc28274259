// Package notice shows user-facing export failures on a terminal stream.
package notice

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/user/glassbanner/pkg/ports"
)

// Notifier writes one line per notice. Messages arrive already translated.
type Notifier struct {
	mu  sync.Mutex
	out io.Writer
}

// New creates a notifier writing to stderr.
func New() *Notifier {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a notifier writing to w.
func NewWithWriter(w io.Writer) *Notifier {
	return &Notifier{out: w}
}

// Notify writes msg on its own line.
func (n *Notifier) Notify(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "! %s\n", msg)
}

// Ensure Notifier implements ports.Notifier
var _ ports.Notifier = (*Notifier)(nil)
