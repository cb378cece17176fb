package dish

import (
	"strings"
	"testing"
)

func TestKnowledgeBaseDisjointIngredients(t *testing.T) {
	t.Parallel()
	kb, err := NewKnowledgeBase()
	if err != nil {
		t.Fatalf("NewKnowledgeBase returned error: %v", err)
	}
	if kb.Len() == 0 {
		t.Fatal("knowledge base is empty")
	}
}

func TestIngredientOverlapDetected(t *testing.T) {
	t.Parallel()
	info := Info{
		Name:                 "Broken Dish",
		CanonicalIngredients: []string{"Butter", "flour"},
		ForbiddenIngredients: []string{"butter"},
	}
	if got := ingredientOverlap(info); got != "butter" {
		t.Fatalf("ingredientOverlap = %q, want butter", got)
	}
}

func TestMatchEveryCatalogKey(t *testing.T) {
	t.Parallel()
	kb := MustNewKnowledgeBase()
	for key, want := range catalog {
		got := kb.Match("I want a " + key)
		if got == nil {
			t.Fatalf("Match(%q) returned nil", key)
		}
		if got.Name != want.Name {
			t.Fatalf("Match(%q) = %q, want %q", key, got.Name, want.Name)
		}
	}
}

func TestMatchNoKnownDish(t *testing.T) {
	t.Parallel()
	kb := MustNewKnowledgeBase()
	if got := kb.Match("a bowl of mystery stew with dumplings"); got != nil {
		t.Fatalf("Match = %v, want nil", got.Name)
	}
	if got := kb.Match(""); got != nil {
		t.Fatalf("Match(empty) = %v, want nil", got.Name)
	}
}

func TestMatchMultiWordOutOfOrder(t *testing.T) {
	t.Parallel()
	kb := MustNewKnowledgeBase()
	got := kb.Match("pastor style tacos for the lunch menu")
	if got == nil || got.Name != "Tacos al Pastor" {
		t.Fatalf("Match = %v, want Tacos al Pastor", got)
	}
}

func TestMatchPrefersLongerKey(t *testing.T) {
	t.Parallel()
	kb := MustNewKnowledgeBase()
	got := kb.Match("steaming tonkotsu ramen close-up")
	if got == nil || got.Name != "Tonkotsu Ramen" {
		t.Fatalf("Match = %v, want Tonkotsu Ramen", got)
	}
}

func TestSanitizeRemovesWholeWords(t *testing.T) {
	t.Parallel()
	kb := MustNewKnowledgeBase()
	d := kb.Match("carbonara")
	if d == nil {
		t.Fatal("carbonara not in catalog")
	}
	got := Sanitize("carbonara with garlic and cream", d)
	lowered := " " + strings.ToLower(got) + " "
	for _, term := range []string{"garlic", "cream"} {
		if strings.Contains(lowered, " "+term+" ") {
			t.Fatalf("output %q still contains %q", got, term)
		}
	}
	if !strings.Contains(got, "carbonara") {
		t.Fatalf("output %q lost the dish name", got)
	}
}

func TestSanitizePreservesSubstrings(t *testing.T) {
	t.Parallel()
	kb := MustNewKnowledgeBase()
	d := kb.Match("carbonara")
	got := Sanitize("a garlicky carbonara", d)
	if !strings.Contains(got, "garlicky") {
		t.Fatalf("word-boundary removal corrupted %q", got)
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	t.Parallel()
	kb := MustNewKnowledgeBase()
	d := kb.Match("cacio e pepe")
	input := "Cacio e Pepe with garlic, butter, and cream on the side"
	once := Sanitize(input, d)
	twice := Sanitize(once, d)
	if once != twice {
		t.Fatalf("not idempotent: %q vs %q", once, twice)
	}
}

func TestSanitizeMultiWordTermToFixpoint(t *testing.T) {
	t.Parallel()
	kb := MustNewKnowledgeBase()
	d := kb.Match("pho")
	if d == nil {
		t.Fatal("pho not in catalog")
	}

	// Removing the inner "soy sauce" leaves "soy" and "sauce" adjacent, which
	// space collapsing rejoins into the phrase again. One pass must still get
	// rid of it.
	input := "pho with soy soy sauce sauce on the side"
	got := Sanitize(input, d)
	if strings.Contains(strings.ToLower(got), "soy sauce") {
		t.Fatalf("output %q still contains forbidden phrase", got)
	}
	if want := "pho with on the side"; got != want {
		t.Fatalf("Sanitize() = %q, want %q", got, want)
	}
	if again := Sanitize(got, d); again != got {
		t.Fatalf("not idempotent: %q vs %q", got, again)
	}
}

func TestSanitizeNoDishIsNoOp(t *testing.T) {
	t.Parallel()
	input := "anything with cream and garlic"
	if got := Sanitize(input, nil); got != input {
		t.Fatalf("Sanitize(nil dish) = %q, want input unchanged", got)
	}
}

func TestSanitizeCollapsesSeparators(t *testing.T) {
	t.Parallel()
	kb := MustNewKnowledgeBase()
	d := kb.Match("greek salad")
	got := Sanitize("greek salad with lettuce, cheddar, feta", d)
	if strings.Contains(got, ",,") || strings.Contains(got, "  ") {
		t.Fatalf("separators not collapsed: %q", got)
	}
	if strings.HasSuffix(got, ",") || strings.HasPrefix(got, ",") {
		t.Fatalf("dangling comma: %q", got)
	}
}
