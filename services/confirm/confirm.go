// Package confirm asks the operator to confirm destructive actions without blocking the caller.
// A Confirmer hands back a channel; the caller decides when and how long to wait on it.
package confirm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Answer is the outcome of one confirmation request.
type Answer struct {
	Accepted bool
	Err      error
}

// Confirmer issues a confirmation request. The returned channel yields exactly one Answer.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) <-chan Answer
}

// Fixed answers every request immediately with its own value.
type Fixed bool

func (f Fixed) Confirm(_ context.Context, _ string) <-chan Answer {
	ch := make(chan Answer, 1)
	ch <- Answer{Accepted: bool(f)}
	return ch
}

// Terminal asks on out and reads a y/yes reply from in. Anything else declines.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

func (t *Terminal) Confirm(ctx context.Context, prompt string) <-chan Answer {
	ch := make(chan Answer, 1)
	go func() {
		if _, err := fmt.Fprintf(t.out, "%s [y/N]: ", prompt); err != nil {
			ch <- Answer{Err: err}
			return
		}
		line, err := t.in.ReadString('\n')
		if err != nil && err != io.EOF {
			ch <- Answer{Err: err}
			return
		}
		if ctx.Err() != nil {
			ch <- Answer{Err: ctx.Err()}
			return
		}
		reply := strings.ToLower(strings.TrimSpace(line))
		ch <- Answer{Accepted: reply == "y" || reply == "yes"}
	}()
	return ch
}

// Await waits for the answer or for ctx to end.
func Await(ctx context.Context, answers <-chan Answer) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case a := <-answers:
		return a.Accepted, a.Err
	}
}
