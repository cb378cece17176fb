package dish

import (
	"fmt"
	"regexp"
	"strings"
)

// Info describes one canonical dish in the knowledge base. Canonical
// ingredients are the ones marketing copy should showcase; forbidden
// ingredients must never appear in any generated description of the dish.
type Info struct {
	Name                 string
	CanonicalIngredients []string
	ForbiddenIngredients []string
	Cuisine              string
	Type                 string
	SignatureTechnique   string
	CulturalContext      string

	forbiddenPatterns []*regexp.Regexp
}

// KnowledgeBase is an immutable lookup table from dish keys to dish metadata.
// It is loaded once at process start and is safe for concurrent reads.
type KnowledgeBase struct {
	entries map[string]*Info
	// keys ordered longest-first so overlapping names resolve deterministically
	// to the most specific dish.
	orderedKeys []string
}

// NewKnowledgeBase builds the static dish table. It rejects any entry whose
// canonical and forbidden ingredient sets overlap: such an entry would make
// the sanitizer strip ingredients the templates are supposed to showcase.
func NewKnowledgeBase() (*KnowledgeBase, error) {
	kb := &KnowledgeBase{entries: make(map[string]*Info, len(catalog))}
	for key, info := range catalog {
		if overlap := ingredientOverlap(info); overlap != "" {
			return nil, fmt.Errorf("dish: %q lists %q as both canonical and forbidden", info.Name, overlap)
		}
		entry := info
		entry.forbiddenPatterns = compileForbidden(info.ForbiddenIngredients)
		kb.entries[key] = &entry
		kb.orderedKeys = append(kb.orderedKeys, key)
	}
	sortKeysByPriority(kb.orderedKeys)
	return kb, nil
}

// MustNewKnowledgeBase is NewKnowledgeBase for process start, where a broken
// catalog is a programming error.
func MustNewKnowledgeBase() *KnowledgeBase {
	kb, err := NewKnowledgeBase()
	if err != nil {
		panic(err)
	}
	return kb
}

// All returns every entry in priority order.
func (kb *KnowledgeBase) All() []*Info {
	out := make([]*Info, 0, len(kb.orderedKeys))
	for _, key := range kb.orderedKeys {
		out = append(out, kb.entries[key])
	}
	return out
}

// Len reports the number of dishes in the table.
func (kb *KnowledgeBase) Len() int {
	return len(kb.entries)
}

func ingredientOverlap(info Info) string {
	canonical := make(map[string]struct{}, len(info.CanonicalIngredients))
	for _, ing := range info.CanonicalIngredients {
		canonical[strings.ToLower(strings.TrimSpace(ing))] = struct{}{}
	}
	for _, ing := range info.ForbiddenIngredients {
		if _, ok := canonical[strings.ToLower(strings.TrimSpace(ing))]; ok {
			return ing
		}
	}
	return ""
}

func compileForbidden(terms []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(term)+`\b`))
	}
	return patterns
}

// catalog is the static dish knowledge base, keyed by the lowercase name used
// for prompt matching.
var catalog = map[string]Info{
	"carbonara": {
		Name:                 "Carbonara",
		CanonicalIngredients: []string{"spaghetti", "guanciale", "egg yolks", "pecorino romano", "black pepper"},
		ForbiddenIngredients: []string{"cream", "garlic", "onion", "bacon", "parmesan"},
		Cuisine:              "Italian",
		Type:                 "pasta",
		SignatureTechnique:   "tossing hot pasta through raw egg and pecorino off the heat until it binds into a silky emulsion",
		CulturalContext:      "a Roman trattoria classic born from the city's shepherd and charcoal-worker traditions",
	},
	"cacio e pepe": {
		Name:                 "Cacio e Pepe",
		CanonicalIngredients: []string{"tonnarelli", "pecorino romano", "black pepper"},
		ForbiddenIngredients: []string{"garlic", "oil", "butter", "cream", "parmesan"},
		Cuisine:              "Italian",
		Type:                 "pasta",
		SignatureTechnique:   "emulsifying starchy pasta water with pecorino into a glossy pepper-flecked sauce",
		CulturalContext:      "Rome's proudest three-ingredient dish, a benchmark of restraint in the Roman kitchen",
	},
	"pad thai": {
		Name:                 "Pad Thai",
		CanonicalIngredients: []string{"rice noodles", "tamarind", "fish sauce", "shrimp", "peanuts", "bean sprouts", "lime"},
		ForbiddenIngredients: []string{"ketchup", "soy sauce", "sriracha"},
		Cuisine:              "Thai",
		Type:                 "noodles",
		SignatureTechnique:   "charring noodles in a screaming-hot wok so the tamarind caramelizes at the edges",
		CulturalContext:      "Thailand's national stir-fry, balanced between sweet, sour, and savory in every bite",
	},
	"tonkotsu ramen": {
		Name:                 "Tonkotsu Ramen",
		CanonicalIngredients: []string{"pork bone broth", "chashu", "fresh noodles", "soft egg", "scallions", "nori"},
		ForbiddenIngredients: []string{"butter", "cream", "cheese"},
		Cuisine:              "Japanese",
		Type:                 "noodles",
		SignatureTechnique:   "ladling cloudy broth simmered for eighteen hours over taut alkaline noodles",
		CulturalContext:      "Fukuoka's milky pork-bone style that turned ramen into an obsession worldwide",
	},
	"tacos al pastor": {
		Name:                 "Tacos al Pastor",
		CanonicalIngredients: []string{"marinated pork", "pineapple", "corn tortillas", "cilantro", "white onion", "salsa roja"},
		ForbiddenIngredients: []string{"cheese", "lettuce", "sour cream"},
		Cuisine:              "Mexican",
		Type:                 "tacos",
		SignatureTechnique:   "shaving achiote-stained pork straight from the spinning trompo onto warm tortillas",
		CulturalContext:      "Mexico City street food shaped by Lebanese shawarma brought by immigrants in the 1930s",
	},
	"margherita pizza": {
		Name:                 "Margherita Pizza",
		CanonicalIngredients: []string{"san marzano tomatoes", "fresh mozzarella", "basil", "olive oil"},
		ForbiddenIngredients: []string{"pepperoni", "pineapple", "cheddar"},
		Cuisine:              "Italian",
		Type:                 "pizza",
		SignatureTechnique:   "blistering a hand-stretched base in a wood-fired oven in under ninety seconds",
		CulturalContext:      "Naples' tricolor tribute to Queen Margherita, protected by its own certification body",
	},
	"pho": {
		Name:                 "Pho",
		CanonicalIngredients: []string{"beef broth", "rice noodles", "star anise", "thai basil", "lime", "thin-sliced beef"},
		ForbiddenIngredients: []string{"ketchup", "soy sauce"},
		Cuisine:              "Vietnamese",
		Type:                 "soup",
		SignatureTechnique:   "pouring scalding spiced broth over raw beef so it cooks in the bowl",
		CulturalContext:      "Hanoi's morning ritual, a broth perfumed with charred ginger and star anise",
	},
	"butter chicken": {
		Name:                 "Butter Chicken",
		CanonicalIngredients: []string{"tandoori chicken", "tomato", "butter", "cream", "garam masala", "fenugreek"},
		ForbiddenIngredients: []string{"coconut milk", "curry powder"},
		Cuisine:              "Indian",
		Type:                 "curry",
		SignatureTechnique:   "folding charred tandoor chicken into a velvet tomato gravy finished with kasuri methi",
		CulturalContext:      "a Delhi invention from Moti Mahal that became the gateway dish of Indian cuisine",
	},
	"paella": {
		Name:                 "Paella",
		CanonicalIngredients: []string{"bomba rice", "saffron", "shrimp", "mussels", "green beans"},
		ForbiddenIngredients: []string{"chorizo", "onion"},
		Cuisine:              "Spanish",
		Type:                 "rice",
		SignatureTechnique:   "leaving the rice undisturbed until the socarrat crust crackles at the pan's base",
		CulturalContext:      "Valencia's open-fire rice, traditionally cooked outdoors over orange-wood embers",
	},
	"greek salad": {
		Name:                 "Greek Salad",
		CanonicalIngredients: []string{"tomatoes", "cucumber", "feta", "kalamata olives", "red onion", "oregano", "olive oil"},
		ForbiddenIngredients: []string{"lettuce", "cheddar"},
		Cuisine:              "Greek",
		Type:                 "salad",
		SignatureTechnique:   "crowning chunky vegetables with a full slab of feta and a ribbon of olive oil",
		CulturalContext:      "the horiatiki of Greek island tavernas, served unchilled at the height of summer",
	},
	"croissant": {
		Name:                 "Croissant",
		CanonicalIngredients: []string{"laminated dough", "butter"},
		ForbiddenIngredients: []string{"margarine", "shortening"},
		Cuisine:              "French",
		Type:                 "pastry",
		SignatureTechnique:   "laminating dozens of butter layers so the crumb shatters into an open honeycomb",
		CulturalContext:      "the Parisian boulangerie benchmark, judged by its shatter and its interior spiral",
	},
	"bibimbap": {
		Name:                 "Bibimbap",
		CanonicalIngredients: []string{"steamed rice", "gochujang", "seasoned vegetables", "fried egg", "sesame oil", "beef"},
		ForbiddenIngredients: []string{"mayonnaise", "sriracha"},
		Cuisine:              "Korean",
		Type:                 "rice",
		SignatureTechnique:   "serving in a scorching stone bowl so the rice crisps against the dolsot walls",
		CulturalContext:      "Jeonju's harmony bowl, arranging five colors of banchan before the stir",
	},
}
