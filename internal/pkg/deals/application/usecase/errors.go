package usecase

import "fmt"

// ErrPersistence wraps repository failures so controllers can map them to a
// generic server error without leaking driver detail.
var ErrPersistence = fmt.Errorf("deals use case persistence error")
