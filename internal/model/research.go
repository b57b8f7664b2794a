package model

import (
	"errors"
	"strings"
)

var ErrEmptyTopic = errors.New("topic must not be empty")

// Field identifies one slot of a ResearchState.
type Field uint8

const (
	FieldTopic Field = iota
	FieldArticle
	FieldArticleTitle
	FieldArticleURL
	FieldSummary
	FieldSentiment
	FieldFactCheck
	FieldFinalReport

	fieldCount
)

var fieldNames = [fieldCount]string{
	FieldTopic:        "topic",
	FieldArticle:      "article",
	FieldArticleTitle: "article_title",
	FieldArticleURL:   "article_url",
	FieldSummary:      "summary",
	FieldSentiment:    "sentiment",
	FieldFactCheck:    "fact_check",
	FieldFinalReport:  "final_report",
}

func (f Field) String() string {
	if f >= fieldCount {
		return "unknown"
	}
	return fieldNames[f]
}

// Fields is a set of Field values.
type Fields uint16

func NewFields(fs ...Field) Fields {
	var set Fields
	for _, f := range fs {
		set = set.With(f)
	}
	return set
}

func (s Fields) With(f Field) Fields { return s | 1<<f }

func (s Fields) Has(f Field) bool { return s&(1<<f) != 0 }

// Contains reports whether every field of other is in s.
func (s Fields) Contains(other Fields) bool { return s&other == other }

func (s Fields) Intersects(other Fields) bool { return s&other != 0 }

// Slice returns the members in declaration order.
func (s Fields) Slice() []Field {
	var out []Field
	for f := Field(0); f < fieldCount; f++ {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (s Fields) String() string {
	names := make([]string, 0, fieldCount)
	for _, f := range s.Slice() {
		names = append(names, f.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// Update is the set of values one stage writes back into the state.
type Update map[Field]string

func (u Update) Fields() Fields {
	var set Fields
	for f := range u {
		set = set.With(f)
	}
	return set
}

// ResearchState is the record accumulated across one graph run.
type ResearchState struct {
	Topic        string
	Article      string
	ArticleTitle string
	ArticleURL   string
	Summary      string
	Sentiment    string
	FactCheck    string
	FinalReport  string

	present Fields
}

func NewResearchState(topic string) (*ResearchState, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, ErrEmptyTopic
	}
	return &ResearchState{Topic: topic, present: NewFields(FieldTopic)}, nil
}

func (s *ResearchState) Has(f Field) bool { return s.present.Has(f) }

func (s *ResearchState) Present() Fields { return s.present }

// Get returns the value of f and whether it has been written.
func (s *ResearchState) Get(f Field) (string, bool) {
	p := s.slot(f)
	if p == nil || !s.present.Has(f) {
		return "", false
	}
	return *p, true
}

// Merge writes every value in u, leaving other fields untouched.
func (s *ResearchState) Merge(u Update) {
	for f, v := range u {
		p := s.slot(f)
		if p == nil {
			continue
		}
		*p = v
		s.present = s.present.With(f)
	}
}

func (s *ResearchState) Clone() *ResearchState {
	cp := *s
	return &cp
}

func (s *ResearchState) slot(f Field) *string {
	switch f {
	case FieldTopic:
		return &s.Topic
	case FieldArticle:
		return &s.Article
	case FieldArticleTitle:
		return &s.ArticleTitle
	case FieldArticleURL:
		return &s.ArticleURL
	case FieldSummary:
		return &s.Summary
	case FieldSentiment:
		return &s.Sentiment
	case FieldFactCheck:
		return &s.FactCheck
	case FieldFinalReport:
		return &s.FinalReport
	}
	return nil
}
