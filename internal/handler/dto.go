package handler

const (
	NoArticle   = "No article found"
	NoSummary   = "No summary generated"
	NoSentiment = "No sentiment detected"
	NoFactCheck = "No fact-check performed"
	NoReport    = "No report generated"
)

type NewsRequest struct {
	Topic string `json:"topic" binding:"required"`
}

type NewsResponse struct {
	Topic   string `json:"topic"`
	Article string `json:"article"`
	Summary string `json:"summary"`
}

type ResearchResponse struct {
	Topic        string `json:"topic"`
	Article      string `json:"article"`
	ArticleTitle string `json:"article_title"`
	ArticleURL   string `json:"article_url"`
	Summary      string `json:"summary"`
	Sentiment    string `json:"sentiment"`
	FactCheck    string `json:"fact_check"`
	FinalReport  string `json:"final_report"`
}

type EdgeResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type GraphResponse struct {
	Nodes []string       `json:"nodes"`
	Edges []EdgeResponse `json:"edges"`
}
