package model

import (
	"errors"
	"fmt"
)

// Sentinel kinds for engine outcomes. These allow errors.Is from callers.
var (
	// ErrTaskNotFound reports that the requested task does not exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrNoSuitableCandidate reports an empty candidate pool after scoring.
	ErrNoSuitableCandidate = errors.New("no suitable candidate")
	// ErrNoScheduleAvailable reports that no person yields a feasible slot.
	ErrNoScheduleAvailable = errors.New("no schedule available")
)

// FlowError marks a repository call failure inside an engine run. It carries
// the engine flow and the failing operation so infrastructure faults stay
// diagnosable and distinct from the domain sentinels above.
type FlowError struct {
	Flow string // "matching" or "scheduling"
	Op   string // repository operation, e.g. "getTask"
	Err  error
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s flow: %s: %v", e.Flow, e.Op, e.Err)
}

func (e *FlowError) Unwrap() error {
	return e.Err
}

// NewFlowError wraps a repository failure with its flow and operation name.
func NewFlowError(flow, op string, err error) *FlowError {
	return &FlowError{Flow: flow, Op: op, Err: err}
}
