// Package jokes holds the dad joke style catalog and prompt resolution logic.
// Everything here is pure computation over an immutable template table, so it
// is safe to share a Catalog across concurrent requests.
package jokes

import (
	"fmt"
	"strings"
)

// DefaultStyle is the fallback used when no style is given or the requested
// style is unknown.
const DefaultStyle = "classic"

// topicSlot is the single substitution slot every template must contain.
const topicSlot = "{topic}"

// builtinStyles lists the shipped styles in declaration order. Order matters:
// Styles() advertises identifiers in this order and the prompt description
// enumerates them the same way.
var builtinStyles = []struct {
	id       string
	template string
}{
	{"pun", "You are an expert comedian specializing in puns and wordplay. Create a clever pun-based dad joke about {topic} that plays on multiple meanings of words. The joke should be groan-worthy but clever, appropriate for all ages."},
	{"wordplay", "You are a master of linguistic humor and wordplay. Create a dad joke about {topic} that uses creative word combinations, homophones, or unexpected word associations. Keep it family-friendly and punny."},
	{"observational", "You are a comedian skilled in observational humor. Create a dad joke about {topic} that points out something funny or absurd about everyday situations. Make it relatable and wholesome."},
	{"anti-humor", "You are a comedian who specializes in anti-humor and anti-jokes. Create a dad joke about {topic} that subverts expectations with an unexpectedly literal or mundane punchline. The humor comes from the lack of a traditional punchline."},
	{"question-answer", "You are an expert at question-and-answer style dad jokes. Create a dad joke about {topic} in the classic 'Why did the X...? Because...' or 'What do you call...?' format. Make it punny and groan-inducing."},
	{"one-liner", "You are a master of concise one-liner jokes. Create a short, punchy dad joke about {topic} that delivers the humor in a single sentence. Focus on wordplay or unexpected twists."},
	{"knock-knock", "Knock knock. Who's there? That is for you to decide: create a knock-knock joke about {topic} that uses clever wordplay. Follow the classic format: 'Knock knock. Who's there? [X]. [X] who? [Punchline].'"},
	{"classic", "You are an expert comedian skilled with puns and dad jokes. Create a joke about {topic} that is appropriate for a workplace. Use classic dad joke style with groan-worthy puns and wholesome humor."},
}

// Catalog maps style identifiers to joke prompt templates. Built once at
// startup and treated as read-only afterwards; Register exists for callers
// that extend the table before serving.
type Catalog struct {
	order     []string
	templates map[string]string
}

// NewCatalog returns a catalog seeded with the built-in styles.
func NewCatalog() *Catalog {
	c := &Catalog{
		order:     make([]string, 0, len(builtinStyles)),
		templates: make(map[string]string, len(builtinStyles)),
	}
	for _, s := range builtinStyles {
		c.order = append(c.order, s.id)
		c.templates[s.id] = s.template
	}
	return c
}

// Styles returns all style identifiers in declaration order.
func (c *Catalog) Styles() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Lookup returns the template for a style identifier. Callers are expected to
// lower-case the identifier first.
func (c *Catalog) Lookup(id string) (string, bool) {
	tpl, ok := c.templates[id]
	return tpl, ok
}

// Has reports whether the style identifier exists in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.templates[id]
	return ok
}

// Register adds or replaces a style template. The template must contain
// exactly one {topic} slot so that substitution can never partially apply,
// and the fallback style cannot be shadowed.
func (c *Catalog) Register(id, template string) error {
	if id == "" {
		return fmt.Errorf("style identifier must not be empty")
	}
	if id == DefaultStyle {
		return fmt.Errorf("style %q is the fallback and cannot be replaced", id)
	}
	if id != strings.ToLower(id) {
		return fmt.Errorf("style identifier %q must be lower case", id)
	}
	if n := strings.Count(template, topicSlot); n != 1 {
		return fmt.Errorf("template for %q must contain exactly one %s slot, found %d", id, topicSlot, n)
	}
	if _, exists := c.templates[id]; !exists {
		c.order = append(c.order, id)
	}
	c.templates[id] = template
	return nil
}
