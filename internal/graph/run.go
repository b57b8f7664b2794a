package graph

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"newsresearch/internal/model"
)

type runConfig struct {
	concurrency  int
	stageTimeout time.Duration
	observer     Observer
}

type RunOption func(*runConfig)

// WithConcurrency caps how many independent stages run at once.
// 1 runs stages one by one in declaration order; n <= 0 removes the cap.
func WithConcurrency(n int) RunOption {
	return func(c *runConfig) { c.concurrency = n }
}

// WithStageTimeout bounds every stage invocation.
func WithStageTimeout(d time.Duration) RunOption {
	return func(c *runConfig) { c.stageTimeout = d }
}

func WithObserver(o Observer) RunOption {
	return func(c *runConfig) {
		if o != nil {
			c.observer = o
		}
	}
}

// Result is the outcome of a successful run.
type Result struct {
	State     *model.ResearchState
	Order     []string
	Durations map[string]time.Duration
}

type outcome struct {
	index   int
	update  model.Update
	elapsed time.Duration
	err     error
}

// Run executes every stage once, merging each stage's update into state.
// The first stage error cancels the stages still in flight and is returned as
// a *StageError; state then holds whatever had been merged before the failure.
func (g *Graph) Run(ctx context.Context, state *model.ResearchState, opts ...RunOption) (*Result, error) {
	if state == nil {
		return nil, ErrNilState
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := runConfig{observer: nopObserver{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	limit := cfg.concurrency
	if limit <= 0 {
		limit = -1
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	pending := append([]int(nil), g.preds...)
	done := make(chan outcome, len(g.stages))
	inFlight := 0

	dispatch := func(i int) {
		inFlight++
		snapshot := state.Clone()
		eg.Go(func() error {
			o := g.runStage(egCtx, &cfg, i, snapshot)
			done <- o
			return o.err
		})
	}

	res := &Result{
		State:     state,
		Order:     make([]string, 0, len(g.stages)),
		Durations: make(map[string]time.Duration, len(g.stages)),
	}

	for _, i := range g.entries {
		dispatch(i)
	}

	var firstErr error
	for inFlight > 0 {
		o := <-done
		inFlight--

		if o.err != nil {
			if firstErr == nil {
				firstErr = o.err
			}
			continue
		}
		if firstErr != nil {
			continue
		}

		name := g.stages[o.index].Name
		state.Merge(o.update)
		res.Order = append(res.Order, name)
		res.Durations[name] = o.elapsed

		for _, s := range g.succ[o.index] {
			pending[s]--
			if pending[s] == 0 {
				dispatch(s)
			}
		}
	}

	eg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return res, nil
}

func (g *Graph) runStage(ctx context.Context, cfg *runConfig, i int, snapshot *model.ResearchState) outcome {
	st := g.stages[i]

	if cfg.stageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.stageTimeout)
		defer cancel()
	}

	cfg.observer.StageStarted(ctx, st.Name)
	start := time.Now()

	var (
		update model.Update
		err    error
	)
	if missing := st.Needs &^ snapshot.Present(); missing != 0 {
		err = fmt.Errorf("%w: %q needs %s", ErrUnsatisfiedInput, st.Name, missing)
	} else {
		update, err = st.Run(ctx, snapshot)
		if err == nil {
			err = checkOutputs(st, update)
		}
	}

	elapsed := time.Since(start)
	cfg.observer.StageFinished(ctx, st.Name, elapsed, err)

	if err != nil {
		return outcome{index: i, elapsed: elapsed, err: &StageError{Stage: st.Name, Err: err}}
	}
	return outcome{index: i, update: update, elapsed: elapsed}
}
