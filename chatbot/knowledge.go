// Package chatbot answers customer chat messages: a scripted intent
// knowledge base first, an optional generative model second, and a canned
// reply when both come up empty.
package chatbot

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed knowledge.yaml
var bundledKnowledge []byte

// Intent maps a category of utterance to its reply templates.
type Intent struct {
	Name      string   `yaml:"name"`
	Patterns  []string `yaml:"patterns"`
	Responses []string `yaml:"responses"`
}

// KnowledgeBase is immutable once loaded and safe for concurrent reads.
type KnowledgeBase struct {
	intents  []Intent
	fallback []string
}

type knowledgeFile struct {
	Intents  []Intent `yaml:"intents"`
	Fallback []string `yaml:"fallback"`
}

// DefaultKnowledgeBase loads the knowledge base bundled with the binary.
func DefaultKnowledgeBase() (*KnowledgeBase, error) {
	return ParseKnowledgeBase(bundledKnowledge)
}

// ParseKnowledgeBase decodes a YAML knowledge base. Intent order in the
// document is the match order.
func ParseKnowledgeBase(data []byte) (*KnowledgeBase, error) {
	var file knowledgeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode knowledge base: %w", err)
	}
	return NewKnowledgeBase(file.Intents, file.Fallback)
}

// NewKnowledgeBase validates and copies intents. Patterns are lower-cased;
// blank patterns are dropped.
func NewKnowledgeBase(intents []Intent, fallback []string) (*KnowledgeBase, error) {
	if len(fallback) == 0 {
		return nil, errors.New("knowledge base: fallback responses are required")
	}
	seen := make(map[string]bool, len(intents))
	kb := &KnowledgeBase{
		intents:  make([]Intent, 0, len(intents)),
		fallback: append([]string(nil), fallback...),
	}
	for _, in := range intents {
		if in.Name == "" {
			return nil, errors.New("knowledge base: intent without a name")
		}
		if seen[in.Name] {
			return nil, fmt.Errorf("knowledge base: duplicate intent %q", in.Name)
		}
		seen[in.Name] = true
		if len(in.Responses) == 0 {
			return nil, fmt.Errorf("knowledge base: intent %q has no responses", in.Name)
		}
		patterns := make([]string, 0, len(in.Patterns))
		for _, p := range in.Patterns {
			if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
				patterns = append(patterns, p)
			}
		}
		kb.intents = append(kb.intents, Intent{
			Name:      in.Name,
			Patterns:  patterns,
			Responses: append([]string(nil), in.Responses...),
		})
	}
	return kb, nil
}

// Intents returns the intents in match order.
func (kb *KnowledgeBase) Intents() []Intent {
	out := make([]Intent, len(kb.intents))
	copy(out, kb.intents)
	return out
}

// Intent looks an intent up by name.
func (kb *KnowledgeBase) Intent(name string) (Intent, bool) {
	for _, in := range kb.intents {
		if in.Name == name {
			return in, true
		}
	}
	return Intent{}, false
}

// Fallback returns the canned replies used when nothing else answers.
func (kb *KnowledgeBase) Fallback() []string {
	return append([]string(nil), kb.fallback...)
}
