package jokes

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestResolveSubstitutesTopicForEveryStyle(t *testing.T) {
	c := NewCatalog()
	r := NewResolver(c, nil)
	for _, style := range c.Styles() {
		resp, err := r.Resolve(PromptName, map[string]string{"topic": "penguins", "style": style})
		if err != nil {
			t.Fatalf("resolve style %q: %v", style, err)
		}
		if len(resp.Messages) != 1 {
			t.Fatalf("style %q: got %d messages, want 1", style, len(resp.Messages))
		}
		msg := resp.Messages[0]
		if msg.Role != "user" {
			t.Errorf("style %q: role %q, want user", style, msg.Role)
		}
		if msg.Text == "" {
			t.Errorf("style %q: empty prompt text", style)
		}
		if !strings.Contains(msg.Text, "penguins") {
			t.Errorf("style %q: topic missing from text %q", style, msg.Text)
		}
		if strings.Contains(msg.Text, topicSlot) {
			t.Errorf("style %q: unsubstituted slot remains in %q", style, msg.Text)
		}
	}
}

func TestResolveUnknownPromptName(t *testing.T) {
	r := NewResolver(NewCatalog(), nil)
	_, err := r.Resolve("not_a_real_op", map[string]string{"topic": "penguins", "style": "pun"})
	if !errors.Is(err, ErrUnknownPrompt) {
		t.Fatalf("got %v, want ErrUnknownPrompt", err)
	}
}

func TestResolveMissingTopic(t *testing.T) {
	r := NewResolver(NewCatalog(), nil)
	for name, args := range map[string]map[string]string{
		"nil args":    nil,
		"empty topic": {"topic": "", "style": "pun"},
		"no topic":    {"style": "pun"},
	} {
		if _, err := r.Resolve(PromptName, args); !errors.Is(err, ErrMissingTopic) {
			t.Errorf("%s: got %v, want ErrMissingTopic", name, err)
		}
	}
}

func TestResolveStyleCaseInsensitive(t *testing.T) {
	r := NewResolver(NewCatalog(), nil)
	upper, err := r.Resolve(PromptName, map[string]string{"topic": "penguins", "style": "PUN"})
	if err != nil {
		t.Fatalf("resolve PUN: %v", err)
	}
	lower, err := r.Resolve(PromptName, map[string]string{"topic": "penguins", "style": "pun"})
	if err != nil {
		t.Fatalf("resolve pun: %v", err)
	}
	if !reflect.DeepEqual(upper, lower) {
		t.Fatalf("case-sensitive mismatch:\n%+v\n%+v", upper, lower)
	}
}

func TestResolveUnknownStyleFallsBack(t *testing.T) {
	c := NewCatalog()
	var warned []string
	r := NewResolver(c, func(format string, args ...any) {
		warned = append(warned, fmt.Sprintf(format, args...))
	})

	resp, err := r.Resolve(PromptName, map[string]string{"topic": "mathematics", "style": "xyz-unknown"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	classicTemplate, _ := c.Lookup(DefaultStyle)
	want := strings.Replace(classicTemplate, topicSlot, "mathematics", 1)
	if resp.Messages[0].Text != want {
		t.Fatalf("fallback text mismatch:\ngot  %q\nwant %q", resp.Messages[0].Text, want)
	}
	if !strings.Contains(resp.Description, DefaultStyle) {
		t.Errorf("description does not name resolved style: %q", resp.Description)
	}

	if len(warned) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warned), warned)
	}
	if !strings.Contains(warned[0], "xyz-unknown") {
		t.Errorf("warning does not carry requested style: %q", warned[0])
	}
	for _, style := range c.Styles() {
		if !strings.Contains(warned[0], style) {
			t.Errorf("warning does not list style %q: %q", style, warned[0])
		}
	}
}

func TestResolveEmptyStyleWarnsAndFallsBack(t *testing.T) {
	warnings := 0
	r := NewResolver(NewCatalog(), func(string, ...any) { warnings++ })
	resp, err := r.Resolve(PromptName, map[string]string{"topic": "penguins", "style": ""})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.Contains(resp.Description, DefaultStyle) {
		t.Errorf("empty style did not fall back: %q", resp.Description)
	}
	if warnings != 1 {
		t.Errorf("got %d warnings, want 1", warnings)
	}
}

func TestResolveAbsentStyleDefaultsSilently(t *testing.T) {
	warnings := 0
	r := NewResolver(NewCatalog(), func(string, ...any) { warnings++ })
	resp, err := r.Resolve(PromptName, map[string]string{"topic": "penguins"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.Contains(resp.Description, DefaultStyle) {
		t.Errorf("absent style did not use default: %q", resp.Description)
	}
	if warnings != 0 {
		t.Errorf("absent style warned %d times, want 0", warnings)
	}
}

func TestResolveKnockKnockScenario(t *testing.T) {
	r := NewResolver(NewCatalog(), nil)
	resp, err := r.Resolve(PromptName, map[string]string{"topic": "chickens", "style": "knock-knock"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	text := resp.Messages[0].Text
	if !strings.HasPrefix(text, "Knock knock.") {
		t.Errorf("knock-knock prompt does not open with the classic line: %q", text)
	}
	if !strings.Contains(text, "chickens") {
		t.Errorf("topic missing from knock-knock prompt: %q", text)
	}
}

func TestResolveIdempotent(t *testing.T) {
	r := NewResolver(NewCatalog(), nil)
	args := map[string]string{"topic": "penguins", "style": "one-liner"}
	first, err := r.Resolve(PromptName, args)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := r.Resolve(PromptName, args)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("resolve is not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestDescribeDeterministicAndMatchesCatalog(t *testing.T) {
	c := NewCatalog()
	r := NewResolver(c, nil)

	first := r.Describe()
	second := r.Describe()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Describe is not deterministic:\n%+v\n%+v", first, second)
	}

	if first.Name != PromptName {
		t.Errorf("descriptor name %q, want %q", first.Name, PromptName)
	}
	if len(first.Arguments) != 2 {
		t.Fatalf("got %d arguments, want 2", len(first.Arguments))
	}
	topicArg, styleArg := first.Arguments[0], first.Arguments[1]
	if topicArg.Name != "topic" || !topicArg.Required {
		t.Errorf("unexpected topic argument: %+v", topicArg)
	}
	if styleArg.Name != "style" || styleArg.Required {
		t.Errorf("unexpected style argument: %+v", styleArg)
	}
	if !strings.Contains(styleArg.Description, strings.Join(c.Styles(), ", ")) {
		t.Errorf("style description does not enumerate catalog: %q", styleArg.Description)
	}
	if !strings.Contains(styleArg.Description, "Default: "+DefaultStyle) {
		t.Errorf("style description does not state fallback: %q", styleArg.Description)
	}
}

func TestDescribeReflectsRegisteredStyle(t *testing.T) {
	c := NewCatalog()
	if err := c.Register("deadpan", "Tell a deadpan joke about {topic}."); err != nil {
		t.Fatalf("register: %v", err)
	}
	r := NewResolver(c, nil)
	if !strings.Contains(r.Describe().Arguments[1].Description, "deadpan") {
		t.Fatal("descriptor does not advertise registered style")
	}
}
