package rag

import "fmt"

// Stage errors carried across pipeline boundaries. The orchestrator decides
// per stage whether an error degrades the stage output or aborts the request:
// only persistence failures on the user turn abort.

type ClassificationError struct {
	Err error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("guardrail classification failed: %v", e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("document retrieval failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

type SynthesisError struct {
	Err error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("answer synthesis failed: %v", e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// PersistenceError marks a failed durable write or read against the
// conversation store. Fatal when it hits the user-turn write.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
