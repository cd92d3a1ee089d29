package chatbot

import "strings"

// Match returns the first intent, in knowledge base order, with a pattern
// contained in the lower-cased input. A pattern also matches in its naive
// plural form (pattern + "s"). There is no scoring: earlier intents win.
func (kb *KnowledgeBase) Match(input string) (Intent, bool) {
	lower := strings.ToLower(input)
	for _, in := range kb.intents {
		for _, p := range in.Patterns {
			if strings.Contains(lower, p) || strings.Contains(lower, p+"s") {
				return in, true
			}
		}
	}
	return Intent{}, false
}
