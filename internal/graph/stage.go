package graph

import (
	"context"
	"errors"
	"fmt"

	"newsresearch/internal/model"
)

const (
	Start = "__start__"
	End   = "__end__"
)

var (
	ErrInvalidStage       = errors.New("invalid stage")
	ErrDuplicateStage     = errors.New("duplicate stage")
	ErrUnknownStage       = errors.New("unknown stage")
	ErrInvalidEdge        = errors.New("invalid edge")
	ErrNoEntry            = errors.New("graph has no entry stage")
	ErrUnreachable        = errors.New("stage is unreachable from start")
	ErrDeadEnd            = errors.New("stage has no outgoing edge")
	ErrCycle              = errors.New("graph contains a cycle")
	ErrConflictingWriters = errors.New("field has more than one writer")
	ErrUnsatisfiedInput   = errors.New("stage input is not produced upstream")

	ErrNilState         = errors.New("nil state")
	ErrMissingOutput    = errors.New("stage did not produce a declared field")
	ErrUndeclaredOutput = errors.New("stage produced an undeclared field")
)

// StageFunc reads the snapshot it is given and returns the fields it produced.
type StageFunc func(ctx context.Context, state *model.ResearchState) (model.Update, error)

// Stage is one node of the graph. Needs and Produces are checked when the
// graph is compiled and again on every run.
type Stage struct {
	Name     string
	Needs    model.Fields
	Produces model.Fields
	Run      StageFunc
}

// Edge is a dependency: To runs only after From has completed.
type Edge struct {
	From string
	To   string
}

// StageError reports which stage failed a run.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %q: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func checkOutputs(st Stage, u model.Update) error {
	got := u.Fields()
	if extra := got &^ st.Produces; extra != 0 {
		return fmt.Errorf("%w: %s", ErrUndeclaredOutput, extra)
	}
	if missing := st.Produces &^ got; missing != 0 {
		return fmt.Errorf("%w: %s", ErrMissingOutput, missing)
	}
	return nil
}
