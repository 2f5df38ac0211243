// Package chat holds the keyword-driven study assistant replies.
package chat

import "strings"

const (
	PhysicsReply = "Physics is a fundamental science that studies matter, energy, and their interactions. " +
		"Key topics include mechanics, thermodynamics, electromagnetism, and quantum physics. " +
		"What specific physics concept would you like to learn about?"
	ChemistryReply = "Chemistry is the study of matter and its properties, changes, and interactions. " +
		"It covers topics like atomic structure, chemical bonding, reactions, and organic chemistry. " +
		"What chemistry topic interests you?"
	MathReply = "Mathematics is the study of numbers, quantities, shapes, and patterns. " +
		"It includes algebra, geometry, calculus, and statistics. " +
		"Which area of mathematics would you like to explore?"
	BiologyReply = "Biology is the study of living organisms and their interactions. " +
		"It covers cell biology, genetics, ecology, and human anatomy. " +
		"What biological topic would you like to discuss?"
	ExamReply = "Exam preparation is crucial for success. " +
		"I can help you with study strategies, practice questions, and subject-specific preparation. " +
		"What subject are you preparing for?"
	HelpReply = "I'm here to help you with your studies! I can assist with:\n" +
		"- Subject explanations\n- Exam preparation\n- Study strategies\n- Practice questions\n\n" +
		"What would you like to learn about?"
	DefaultReply = "I'm your study assistant! I can help you with various subjects like physics, chemistry, " +
		"mathematics, biology, and more. I can also assist with exam preparation and study strategies. " +
		"What would you like to learn about?"
)

// Rule pairs a predicate over the lowercased message with its reply.
type Rule struct {
	Name  string
	Match func(msg string) bool
	Reply string
}

func containsAny(words ...string) func(string) bool {
	return func(msg string) bool {
		for _, w := range words {
			if strings.Contains(msg, w) {
				return true
			}
		}
		return false
	}
}

// DefaultRules is evaluated top to bottom; the first match wins.
var DefaultRules = []Rule{
	{Name: "physics", Match: containsAny("physics"), Reply: PhysicsReply},
	{Name: "chemistry", Match: containsAny("chemistry"), Reply: ChemistryReply},
	{Name: "math", Match: containsAny("mathematics", "math"), Reply: MathReply},
	{Name: "biology", Match: containsAny("biology"), Reply: BiologyReply},
	{Name: "exam", Match: containsAny("exam", "test"), Reply: ExamReply},
	{Name: "help", Match: containsAny("help", "?"), Reply: HelpReply},
}

// Responder picks a canned reply for a free-text message.
type Responder struct {
	rules    []Rule
	fallback string
}

// NewResponder builds a Responder over rules. A nil slice uses DefaultRules.
func NewResponder(rules []Rule, fallback string) *Responder {
	if rules == nil {
		rules = DefaultRules
	}
	if fallback == "" {
		fallback = DefaultReply
	}
	return &Responder{rules: rules, fallback: fallback}
}

// Respond returns the reply of the first matching rule, or the fallback.
func (r *Responder) Respond(message string) string {
	msg := strings.ToLower(message)
	for _, rule := range r.rules {
		if rule.Match(msg) {
			return rule.Reply
		}
	}
	return r.fallback
}
