package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"

	"newsresearch/internal/model"
)

func noop() StageFunc {
	return func(ctx context.Context, s *model.ResearchState) (model.Update, error) {
		return model.Update{}, nil
	}
}

func stage(name string, needs, produces model.Fields) Stage {
	return Stage{Name: name, Needs: needs, Produces: produces, Run: noop()}
}

func TestCompileDiamond(t *testing.T) {
	g, err := diamond(nil).Compile()

	assert.Equal(t, nil, err)
	assert.Equal(t, []string{Start, "fetch", "left", "right", "join", End}, g.Nodes())
	assert.Equal(t, 6, len(g.Edges()))
	assert.Equal(t, []string{"left", "right"}, g.Predecessors("join"))
	assert.Equal(t, 0, len(g.Predecessors("fetch")))

	st, ok := g.Stage("join")
	assert.Equal(t, true, ok)
	assert.Equal(t, model.NewFields(model.FieldSummary, model.FieldSentiment), st.Needs)
}

func TestCompileIgnoresDuplicateEdges(t *testing.T) {
	g, err := NewBuilder(model.FieldTopic).
		AddStage(stage("a", 0, model.NewFields(model.FieldArticle))).
		AddEdge(Start, "a").
		AddEdge(Start, "a").
		AddEdge("a", End).
		Compile()

	assert.Equal(t, nil, err)
	assert.Equal(t, []Edge{{From: Start, To: "a"}, {From: "a", To: End}}, g.Edges())
}

func TestCompileErrors(t *testing.T) {
	article := model.NewFields(model.FieldArticle)
	summary := model.NewFields(model.FieldSummary)

	tests := []struct {
		name  string
		build func() *Builder
		want  error
	}{
		{
			name:  "empty graph",
			build: func() *Builder { return NewBuilder(model.FieldTopic) },
			want:  ErrNoEntry,
		},
		{
			name: "reserved name",
			build: func() *Builder {
				return NewBuilder().AddStage(stage(Start, 0, article))
			},
			want: ErrInvalidStage,
		},
		{
			name: "missing run function",
			build: func() *Builder {
				return NewBuilder().AddStage(Stage{Name: "a"})
			},
			want: ErrInvalidStage,
		},
		{
			name: "duplicate stage",
			build: func() *Builder {
				return NewBuilder().AddStage(stage("a", 0, article)).AddStage(stage("a", 0, summary))
			},
			want: ErrDuplicateStage,
		},
		{
			name: "unknown edge target",
			build: func() *Builder {
				return NewBuilder().AddStage(stage("a", 0, article)).AddEdge(Start, "a").AddEdge("a", "b")
			},
			want: ErrUnknownStage,
		},
		{
			name: "edge out of end",
			build: func() *Builder {
				return NewBuilder().AddStage(stage("a", 0, article)).AddEdge(Start, "a").AddEdge("a", End).AddEdge(End, "a")
			},
			want: ErrInvalidEdge,
		},
		{
			name: "stage without predecessor or start edge",
			build: func() *Builder {
				return NewBuilder().
					AddStage(stage("a", 0, article)).
					AddStage(stage("b", 0, summary)).
					AddEdge(Start, "a").AddEdge("a", End).AddEdge("b", End)
			},
			want: ErrUnreachable,
		},
		{
			name: "stage that never reaches end",
			build: func() *Builder {
				return NewBuilder().
					AddStage(stage("a", 0, article)).
					AddStage(stage("b", 0, summary)).
					AddEdge(Start, "a").AddEdge("a", "b").AddEdge("a", End)
			},
			want: ErrDeadEnd,
		},
		{
			name: "cycle",
			build: func() *Builder {
				return NewBuilder().
					AddStage(stage("a", 0, article)).
					AddStage(stage("b", 0, summary)).
					AddStage(stage("c", 0, 0)).
					AddEdge(Start, "a").AddEdge("a", "b").AddEdge("b", "c").AddEdge("c", "b").AddEdge("c", End)
			},
			want: ErrCycle,
		},
		{
			name: "two writers for one field",
			build: func() *Builder {
				return NewBuilder(model.FieldTopic).
					AddStage(stage("fetch", 0, article)).
					AddStage(stage("summarize", article, summary)).
					AddStage(stage("sentiment", article, summary)).
					AddEdge(Start, "fetch").
					AddEdge("fetch", "summarize").AddEdge("fetch", "sentiment").
					AddEdge("summarize", End).AddEdge("sentiment", End)
			},
			want: ErrConflictingWriters,
		},
		{
			name: "stage overwrites an initial field",
			build: func() *Builder {
				return NewBuilder(model.FieldTopic).
					AddStage(stage("a", 0, model.NewFields(model.FieldTopic))).
					AddEdge(Start, "a").AddEdge("a", End)
			},
			want: ErrConflictingWriters,
		},
		{
			name: "input produced by a sibling only",
			build: func() *Builder {
				return NewBuilder(model.FieldTopic).
					AddStage(stage("fetch", 0, article)).
					AddStage(stage("summarize", article, summary)).
					AddStage(stage("report", summary, model.NewFields(model.FieldFinalReport))).
					AddEdge(Start, "fetch").
					AddEdge("fetch", "summarize").AddEdge("fetch", "report").
					AddEdge("summarize", End).AddEdge("report", End)
			},
			want: ErrUnsatisfiedInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := tt.build().Compile()
			assert.Equal(t, (*Graph)(nil), g)
			assert.Equal(t, true, errors.Is(err, tt.want))
		})
	}
}

// diamond is fetch -> {left, right} -> join with the given run functions.
func diamond(runs map[string]StageFunc) *Builder {
	run := func(name string) StageFunc {
		if f, ok := runs[name]; ok {
			return f
		}
		return noop()
	}
	return NewBuilder(model.FieldTopic).
		AddStage(Stage{Name: "fetch", Needs: model.NewFields(model.FieldTopic), Produces: model.NewFields(model.FieldArticle), Run: run("fetch")}).
		AddStage(Stage{Name: "left", Needs: model.NewFields(model.FieldArticle), Produces: model.NewFields(model.FieldSummary), Run: run("left")}).
		AddStage(Stage{Name: "right", Needs: model.NewFields(model.FieldArticle), Produces: model.NewFields(model.FieldSentiment), Run: run("right")}).
		AddStage(Stage{Name: "join", Needs: model.NewFields(model.FieldSummary, model.FieldSentiment), Produces: model.NewFields(model.FieldFinalReport), Run: run("join")}).
		AddEdge(Start, "fetch").
		AddEdge("fetch", "left").
		AddEdge("fetch", "right").
		AddEdge("left", "join").
		AddEdge("right", "join").
		AddEdge("join", End)
}
