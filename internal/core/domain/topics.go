package domain

import "strings"

// topicRule maps filename keywords to a topic label.
type topicRule struct {
	keywords []string
	label    string
}

// topicRules is evaluated in declaration order; every matching label is
// returned. This is a heuristic label generator, not a classifier.
var topicRules = []topicRule{
	{[]string{"rag", "retrieval"}, "RAG"},
	{[]string{"mlops", "ml operations"}, "MLOps"},
	{[]string{"vector", "embedding"}, "Vector DB"},
	{[]string{"microservice"}, "Microservices"},
	{[]string{"cqrs", "command"}, "CQRS"},
	{[]string{"event"}, "Event-Driven"},
	{[]string{"solid"}, "SOLID"},
	{[]string{"design pattern"}, "Design Patterns"},
	{[]string{"api", "rest", "graphql"}, "API"},
	{[]string{"auth"}, "Authentication"},
	{[]string{"database", "sql"}, "Database"},
	{[]string{"cache", "cdn"}, "Caching"},
	{[]string{"ai", "llm"}, "AI/LLM"},
	{[]string{"agent", "manus"}, "Agents"},
}

// ExtractTopics derives topic labels from a source filename by keyword
// matching against the lowercased name. Returns ["General"] when nothing
// matches.
func ExtractTopics(filename string) []string {
	lower := strings.ToLower(filename)

	var topics []string
	for _, rule := range topicRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				topics = append(topics, rule.label)
				break
			}
		}
	}

	if len(topics) == 0 {
		return []string{"General"}
	}
	return topics
}
