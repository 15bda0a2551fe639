package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // Evaluation completed, verdict acceptable
	ExitEvalFailed = 1 // Evaluation completed with failing repositories
	ExitError      = 2 // Configuration or runtime error
)

// EvalFailureError indicates the tool ran successfully, but one or more
// repositories failed their verdict or could not be evaluated.
type EvalFailureError struct {
	Message string
}

func (e *EvalFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var evalFailureErr *EvalFailureError
		if errors.As(err, &evalFailureErr) {
			os.Exit(ExitEvalFailed)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
