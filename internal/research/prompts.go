package research

import "fmt"

func summarizePrompt(article string) string {
	return fmt.Sprintf("Summarize the article: %s ", article)
}

func sentimentPrompt(article string) string {
	return fmt.Sprintf("Analyze the sentiment of the article %s", article)
}

func factCheckPrompt(article string) string {
	return fmt.Sprintf("Check if this article contains misinformation. Provide a fact-check summary: %s", article)
}

func reportPrompt(topic, summary, sentiment, factCheck string) string {
	return fmt.Sprintf(`
    Topic: %s
    Summary: %s
    Sentiment: %s
    Fact-check: %s
    Provide a final research report
    `, topic, summary, sentiment, factCheck)
}
