package output

import "io"

// flushBuffered pushes out anything w holds back, e.g. a *bufio.Writer
// wrapping stdout, so each event is visible as soon as it is written.
func flushBuffered(w io.Writer) error {
	if f, ok := w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}
