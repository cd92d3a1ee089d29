package chatbot

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"brewheaven-api/models"
)

// coffeeKeywords trigger the coffee listing appended to a reply.
var coffeeKeywords = []string{"cappuccino", "latte", "espresso", "coffee"}

// Completer is a text-completion service. It reports false for any failure;
// callers treat that the same as an empty answer.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, bool)
}

// Composer resolves a customer message into a reply.
type Composer struct {
	kb        *KnowledgeBase
	completer Completer
	logger    *slog.Logger
}

// NewComposer builds a composer. A nil completer disables the generative
// fallback.
func NewComposer(kb *KnowledgeBase, completer Completer, logger *slog.Logger) *Composer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Composer{
		kb:        kb,
		completer: completer,
		logger:    logger.With("component", "chatbot"),
	}
}

// GenerativeEnabled reports whether a completer is configured.
func (c *Composer) GenerativeEnabled() bool {
	return c.completer != nil
}

// Resolve always returns a non-empty reply. The matched intent wins over
// the completer, and a canned reply covers the case where neither answers.
// Messages mentioning coffee get the current Coffee items appended.
func (c *Composer) Resolve(ctx context.Context, userMessage string, menu []models.MenuItem) string {
	reply, source := c.answer(ctx, userMessage, menu)
	c.logger.Debug("chat reply resolved", "source", source)

	if mentionsCoffee(userMessage) && len(menu) > 0 {
		if listing := coffeeListing(menu); listing != "" {
			reply = reply + " We have: " + listing
		}
	}
	return reply
}

func (c *Composer) answer(ctx context.Context, userMessage string, menu []models.MenuItem) (reply, source string) {
	if intent, ok := c.kb.Match(userMessage); ok {
		return pick(intent.Responses), "intent:" + intent.Name
	}

	if c.completer != nil {
		prompt := userMessage
		if len(menu) > 0 {
			prompt = fmt.Sprintf("%s\n\nCurrent menu context:\n%s", userMessage, MenuContext(menu))
		}
		if text, ok := c.completer.Complete(ctx, prompt); ok && strings.TrimSpace(text) != "" {
			return text, "generative"
		}
		c.logger.Info("generative fallback gave no answer, using canned reply")
	}

	return pick(c.kb.fallback), "fallback"
}

func mentionsCoffee(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range coffeeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func pick(candidates []string) string {
	return candidates[rand.Intn(len(candidates))]
}
