package graph

import (
	"errors"
	"fmt"

	"newsresearch/internal/model"
)

// Builder collects stages and edges. Errors are reported together by Compile.
type Builder struct {
	stages  []Stage
	index   map[string]int
	edges   []Edge
	initial model.Fields
	errs    []error
}

// NewBuilder starts a graph whose runs begin with the initial fields present.
func NewBuilder(initial ...model.Field) *Builder {
	return &Builder{
		index:   make(map[string]int),
		initial: model.NewFields(initial...),
	}
}

func (b *Builder) AddStage(st Stage) *Builder {
	switch {
	case st.Name == "" || st.Name == Start || st.Name == End:
		b.errs = append(b.errs, fmt.Errorf("%w: name %q", ErrInvalidStage, st.Name))
		return b
	case st.Run == nil:
		b.errs = append(b.errs, fmt.Errorf("%w: %q has no run function", ErrInvalidStage, st.Name))
		return b
	}
	if _, ok := b.index[st.Name]; ok {
		b.errs = append(b.errs, fmt.Errorf("%w: %q", ErrDuplicateStage, st.Name))
		return b
	}
	b.index[st.Name] = len(b.stages)
	b.stages = append(b.stages, st)
	return b
}

func (b *Builder) AddEdge(from, to string) *Builder {
	b.edges = append(b.edges, Edge{From: from, To: to})
	return b
}

// Compile validates the definition and returns the immutable graph.
func (b *Builder) Compile() (*Graph, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	n := len(b.stages)
	g := &Graph{
		stages:  append([]Stage(nil), b.stages...),
		edges:   make([]Edge, 0, len(b.edges)),
		succ:    make([][]int, n),
		preds:   make([]int, n),
		initial: b.initial,
	}

	var errs []error
	fromStart := make([]bool, n)
	toEnd := make([]bool, n)
	seen := make(map[Edge]bool, len(b.edges))

	for _, e := range b.edges {
		if seen[e] {
			continue
		}
		seen[e] = true

		if e.From == End || e.To == Start || (e.From == Start && e.To == End) {
			errs = append(errs, fmt.Errorf("%w: %s -> %s", ErrInvalidEdge, e.From, e.To))
			continue
		}

		from, fromOK := b.index[e.From]
		to, toOK := b.index[e.To]
		if e.From != Start && !fromOK {
			errs = append(errs, fmt.Errorf("%w: %q in edge %s -> %s", ErrUnknownStage, e.From, e.From, e.To))
			continue
		}
		if e.To != End && !toOK {
			errs = append(errs, fmt.Errorf("%w: %q in edge %s -> %s", ErrUnknownStage, e.To, e.From, e.To))
			continue
		}

		g.edges = append(g.edges, e)
		switch {
		case e.From == Start:
			fromStart[to] = true
		case e.To == End:
			toEnd[from] = true
		default:
			g.succ[from] = append(g.succ[from], to)
			g.preds[to]++
		}
	}

	for i, st := range g.stages {
		if g.preds[i] == 0 {
			if !fromStart[i] {
				errs = append(errs, fmt.Errorf("%w: %q", ErrUnreachable, st.Name))
				continue
			}
			g.entries = append(g.entries, i)
		}
		if len(g.succ[i]) == 0 && !toEnd[i] {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDeadEnd, st.Name))
		}
	}
	if len(g.entries) == 0 {
		errs = append(errs, ErrNoEntry)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	order, err := g.topoOrder()
	if err != nil {
		return nil, err
	}

	if err := g.checkDataFlow(order); err != nil {
		return nil, err
	}

	return g, nil
}

// topoOrder is Kahn's algorithm over stage-to-stage edges.
func (g *Graph) topoOrder() ([]int, error) {
	pending := append([]int(nil), g.preds...)
	queue := append([]int(nil), g.entries...)
	order := make([]int, 0, len(g.stages))

	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		order = append(order, i)
		for _, s := range g.succ[i] {
			pending[s]--
			if pending[s] == 0 {
				queue = append(queue, s)
			}
		}
	}

	if len(order) != len(g.stages) {
		var stuck []string
		for i, p := range pending {
			if p > 0 {
				stuck = append(stuck, g.stages[i].Name)
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrCycle, stuck)
	}
	return order, nil
}

// checkDataFlow enforces one writer per field and that every input a stage
// needs is either initial or produced by one of its ancestors.
func (g *Graph) checkDataFlow(order []int) error {
	var errs []error

	writers := make(map[model.Field]string)
	for _, st := range g.stages {
		for _, f := range st.Produces.Slice() {
			if g.initial.Has(f) {
				errs = append(errs, fmt.Errorf("%w: %s is initial and written by %q", ErrConflictingWriters, f, st.Name))
				continue
			}
			if prev, ok := writers[f]; ok {
				errs = append(errs, fmt.Errorf("%w: %s written by %q and %q", ErrConflictingWriters, f, prev, st.Name))
				continue
			}
			writers[f] = st.Name
		}
	}

	available := make([]model.Fields, len(g.stages))
	for i := range available {
		available[i] = g.initial
	}
	for _, i := range order {
		st := g.stages[i]
		if missing := st.Needs &^ available[i]; missing != 0 {
			errs = append(errs, fmt.Errorf("%w: %q needs %s", ErrUnsatisfiedInput, st.Name, missing))
		}
		out := available[i] | st.Produces
		for _, s := range g.succ[i] {
			available[s] |= out
		}
	}

	return errors.Join(errs...)
}
