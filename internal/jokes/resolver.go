package jokes

import (
	"errors"
	"fmt"
	"strings"
)

// PromptName is the single prompt this server exposes.
const PromptName = "dad_joke"

var (
	// ErrUnknownPrompt is returned when the requested prompt name does not
	// match PromptName.
	ErrUnknownPrompt = errors.New("unknown prompt")
	// ErrMissingTopic is returned when the required topic argument is absent
	// or empty.
	ErrMissingTopic = errors.New("missing required argument: topic")
)

// WarnFunc receives printf-style warnings for non-fatal conditions, i.e. an
// unrecognized style falling back to the default.
type WarnFunc func(format string, args ...any)

// Argument describes one prompt argument for capability listing.
type Argument struct {
	Name        string
	Description string
	Required    bool
}

// Descriptor describes the dad_joke prompt for capability listing.
type Descriptor struct {
	Name        string
	Description string
	Arguments   []Argument
}

// Message is one prompt message of the resolved response.
type Message struct {
	Role string
	Text string
}

// Response is the transport-agnostic result of resolving a prompt request.
type Response struct {
	Description string
	Messages    []Message
}

// Resolver turns prompt requests into formatted joke instructions. It holds
// no mutable state and may be shared across goroutines.
type Resolver struct {
	catalog *Catalog
	warn    WarnFunc
}

// NewResolver builds a resolver over the given catalog. warn may be nil.
func NewResolver(catalog *Catalog, warn WarnFunc) *Resolver {
	if warn == nil {
		warn = func(string, ...any) {}
	}
	return &Resolver{catalog: catalog, warn: warn}
}

// Describe returns the prompt descriptor. The style description enumerates
// the catalog identifiers in declaration order, so repeated calls over an
// unchanged catalog are identical.
func (r *Resolver) Describe() Descriptor {
	return Descriptor{
		Name:        PromptName,
		Description: "Generate a dad joke prompt about any topic. Supports multiple joke styles.",
		Arguments: []Argument{
			{
				Name:        "topic",
				Description: "The topic or subject for the dad joke",
				Required:    true,
			},
			{
				Name: "style",
				Description: fmt.Sprintf("The style of dad joke. Options: %s. Default: %s",
					strings.Join(r.catalog.Styles(), ", "), DefaultStyle),
			},
		},
	}
}

// Resolve validates the request and substitutes the topic into the resolved
// style's template. Unknown styles are not an error: they warn and degrade to
// DefaultStyle. The call is idempotent and never partially applies.
func (r *Resolver) Resolve(name string, args map[string]string) (*Response, error) {
	if name != PromptName {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPrompt, name)
	}

	topic := args["topic"]
	if topic == "" {
		return nil, ErrMissingTopic
	}

	style, ok := args["style"]
	if !ok {
		style = DefaultStyle
	}
	style = strings.ToLower(style)

	template, found := r.catalog.Lookup(style)
	if !found {
		r.warn("[Resolver] Unknown joke style %q, falling back to %q (available: %s)",
			style, DefaultStyle, strings.Join(r.catalog.Styles(), ", "))
		style = DefaultStyle
		template, found = r.catalog.Lookup(style)
		if !found {
			// The fallback key is seeded by NewCatalog and Register cannot
			// remove it, so this is unreachable with a well-formed catalog.
			return nil, fmt.Errorf("fallback style %q missing from catalog", DefaultStyle)
		}
	}

	text := strings.Replace(template, topicSlot, topic, 1)
	return &Response{
		Description: fmt.Sprintf("Dad joke prompt about %s in %s style", topic, style),
		Messages: []Message{
			{Role: "user", Text: text},
		},
	}, nil
}
