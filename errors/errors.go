package errors

import "fmt"

var (
	ErrWorkerPanic   = fmt.Errorf("worker panic")
	ErrSessionClosed = fmt.Errorf("session closed by client")
	ErrEmptyWords    = fmt.Errorf("no words have been found")
)
