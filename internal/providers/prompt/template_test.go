package prompt

import (
	"context"
	"strings"
	"testing"

	"server/internal/dish"
)

func TestTemplaterNeverEmitsForbiddenIngredients(t *testing.T) {
	t.Parallel()
	kb := dish.MustNewKnowledgeBase()
	templater := NewTemplateEnhancer(kb)
	styles := []string{"", "Cinematic", "Slow Motion", "Social Media", "Documentary", "Unknown Style"}
	formats := []string{"Video", "Image"}

	for _, d := range kb.All() {
		for _, format := range formats {
			for _, style := range styles {
				res, err := templater.Enhance(context.Background(), Request{
					Prompt:     "I want a " + strings.ToLower(d.Name),
					Format:     format,
					VideoStyle: style,
					Background: "a rustic wooden table",
				})
				if err != nil {
					t.Fatalf("Enhance returned error: %v", err)
				}
				lowered := strings.ToLower(res.Directive)
				// The "Never show" clause names forbidden terms on purpose;
				// strip it before checking the descriptive body.
				if idx := strings.Index(lowered, "never show:"); idx >= 0 {
					end := strings.Index(lowered[idx:], ".")
					if end >= 0 {
						lowered = lowered[:idx] + lowered[idx+end:]
					}
				}
				for _, term := range d.ForbiddenIngredients {
					if containsWord(lowered, strings.ToLower(term)) {
						t.Fatalf("%s/%s/%s: directive body contains forbidden %q:\n%s",
							d.Name, format, style, term, res.Directive)
					}
				}
			}
		}
	}
}

func containsWord(haystack, word string) bool {
	fields := strings.FieldsFunc(haystack, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	target := strings.Fields(word)
	if len(target) == 1 {
		for _, f := range fields {
			if f == word {
				return true
			}
		}
		return false
	}
	return strings.Contains(haystack, word)
}

func TestTemplaterStyleBranches(t *testing.T) {
	t.Parallel()
	kb := dish.MustNewKnowledgeBase()
	templater := NewTemplateEnhancer(kb)
	cases := []struct {
		style string
		hint  string
	}{
		{style: "Cinematic", hint: "dolly"},
		{style: "Slow Motion", hint: "slow-motion"},
		{style: "Social Media", hint: "vertical"},
		{style: "Documentary", hint: "handheld"},
		{style: "Totally Unknown", hint: "close-up"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.style, func(t *testing.T) {
			t.Parallel()
			res, _ := templater.Enhance(context.Background(), Request{Prompt: "pho", Format: "Video", VideoStyle: tc.style})
			if !strings.Contains(strings.ToLower(res.Directive), tc.hint) {
				t.Fatalf("style %q directive missing %q:\n%s", tc.style, tc.hint, res.Directive)
			}
		})
	}
}

func TestTemplaterBackgroundAndContext(t *testing.T) {
	t.Parallel()
	kb := dish.MustNewKnowledgeBase()
	templater := NewTemplateEnhancer(kb)
	res, _ := templater.Enhance(context.Background(), Request{
		Prompt:     "tacos al pastor",
		Format:     "Image",
		Background: "a neon-lit taqueria counter",
	})
	if !strings.Contains(res.Directive, "Set in a neon-lit taqueria counter.") {
		t.Fatalf("background sentence missing:\n%s", res.Directive)
	}
	if !strings.Contains(res.Directive, "Never show: cheese, lettuce, sour cream.") {
		t.Fatalf("forbidden clause missing:\n%s", res.Directive)
	}
	if !strings.Contains(res.Directive, "Tacos al Pastor") {
		t.Fatalf("dish name missing:\n%s", res.Directive)
	}
}

func TestTemplaterUnmatchedPromptIsGeneric(t *testing.T) {
	t.Parallel()
	kb := dish.MustNewKnowledgeBase()
	templater := NewTemplateEnhancer(kb)
	res, _ := templater.Enhance(context.Background(), Request{Prompt: "mystery dumpling platter", Format: "Image"})
	if strings.Contains(res.Directive, "Never show:") {
		t.Fatalf("unmatched prompt should have no forbidden clause:\n%s", res.Directive)
	}
	if !strings.Contains(res.Directive, "Mystery Dumpling Platter") {
		t.Fatalf("subject not title-cased:\n%s", res.Directive)
	}
}

func TestTemplaterDeterministic(t *testing.T) {
	t.Parallel()
	kb := dish.MustNewKnowledgeBase()
	templater := NewTemplateEnhancer(kb)
	req := Request{Prompt: "paella", Format: "Video", VideoStyle: "Cinematic", Background: "a seaside terrace"}
	a, _ := templater.Enhance(context.Background(), req)
	b, _ := templater.Enhance(context.Background(), req)
	if a.Directive != b.Directive {
		t.Fatal("templater output is not deterministic")
	}
}
