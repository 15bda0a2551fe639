// Package spinner renders a minimal terminal spinner for long-running
// operations like cloning and assessment.
package spinner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const frameInterval = 80 * time.Millisecond

// Start displays an animated spinner with the given message on w.
// Call the returned function to stop the spinner and clear the line.
// When w is a file that is not a terminal (piped or redirected output)
// nothing is written and the returned stop is a no-op, so logs stay free
// of carriage-return noise.
func Start(w io.Writer, message string) (stop func()) {
	if f, ok := w.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return func() {}
	}
	done := make(chan struct{})
	cleared := make(chan struct{})
	var stopOnce sync.Once

	go func() {
		frame := 0
		for {
			select {
			case <-done:
				fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", len(message)+2)) //nolint:errcheck
				close(cleared)
				return
			case <-time.After(frameInterval):
				fmt.Fprintf(w, "\r%s %s", frames[frame%len(frames)], message) //nolint:errcheck
				frame++
			}
		}
	}()

	return func() {
		stopOnce.Do(func() {
			close(done)
		})
		<-cleared
	}
}
