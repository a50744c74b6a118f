package approval

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github/chapool/go-txsigner/internal/wallet/confirm"
	"github/chapool/go-txsigner/internal/wallet/summary"
)

// Terminal shows the prompt as a table and reads a y/N answer. Anything but
// "y" or "yes" counts as rejection.
//
// A single goroutine owns the reader for the lifetime of the Terminal, so a
// cancelled prompt never leaves a second reader behind. Lines typed while no
// prompt is shown are discarded before the next prompt.
type Terminal struct {
	mu      sync.Mutex
	once    sync.Once
	reader  *bufio.Reader
	out     io.Writer
	answers chan answer
}

var _ confirm.Approver = (*Terminal)(nil)

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		reader:  bufio.NewReader(in),
		out:     out,
		answers: make(chan answer),
	}
}

type answer struct {
	line string
	err  error
}

func (t *Terminal) Approve(ctx context.Context, prompt confirm.Prompt) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.drainStale()

	rows := make([]summary.Row, 0, len(prompt.Header)+len(prompt.Rows))
	rows = append(rows, prompt.Header...)
	rows = append(rows, prompt.Rows...)

	fmt.Fprintf(t.out, "\nSign request %s\n\n", prompt.RequestID)
	summary.Render(t.out, rows)
	fmt.Fprint(t.out, "\nSign this transaction? [y/N]: ")

	t.once.Do(func() { go t.readLines() })

	select {
	case <-ctx.Done():
		fmt.Fprintln(t.out)
		return false, errors.Wrap(ctx.Err(), "approval cancelled")
	case a, ok := <-t.answers:
		if !ok {
			return false, errors.Wrap(io.EOF, "failed to read answer")
		}
		if a.err != nil && !(errors.Is(a.err, io.EOF) && a.line != "") {
			return false, errors.Wrap(a.err, "failed to read answer")
		}

		switch strings.ToLower(strings.TrimSpace(a.line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}

// readLines hands every line to the prompt currently waiting. It stops after
// the first read error and closes the channel.
func (t *Terminal) readLines() {
	defer close(t.answers)

	for {
		line, err := t.reader.ReadString('\n')
		t.answers <- answer{line: line, err: err}
		if err != nil {
			return
		}
	}
}

// drainStale drops lines that arrived while no prompt was waiting. Once the
// reader failed the channel is closed and the next prompt reports EOF.
func (t *Terminal) drainStale() {
	for {
		select {
		case _, ok := <-t.answers:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
