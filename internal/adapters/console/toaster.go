package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/AssiaOU26/Cars-front/internal/core/ports"
)

// Toaster prints transient notices on their own line.
type Toaster struct {
	mu  sync.Mutex
	out io.Writer
	ok  *color.Color
	bad *color.Color
}

var _ ports.Toaster = (*Toaster)(nil)

func NewToaster(out io.Writer) *Toaster {
	return &Toaster{
		out: out,
		ok:  color.New(color.FgGreen, color.Bold),
		bad: color.New(color.FgRed, color.Bold),
	}
}

func (t *Toaster) Success(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "%s %s\n", t.ok.Sprint("✔"), msg)
}

func (t *Toaster) Error(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "%s %s\n", t.bad.Sprint("✖"), msg)
}
