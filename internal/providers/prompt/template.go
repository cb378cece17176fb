package prompt

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"server/internal/dish"
)

// photographyRequirements is appended to every templated directive. It only
// ever references canonical ingredients, so templated output can never contain
// a forbidden term.
const photographyRequirements = "Professional food photography standards: warm directional lighting, " +
	"shallow depth of field, steam rising naturally, glossy appetizing surfaces, " +
	"restaurant-quality plating on neutral ceramics. Never show raw ingredients, " +
	"preparation mess, or kitchen process footage."

// TemplateEnhancer deterministically builds a restaurant-marketing directive
// from dish metadata and the user-selected style and background. It performs
// no external calls and cannot fail.
type TemplateEnhancer struct {
	kb    *dish.KnowledgeBase
	caser cases.Caser
}

// NewTemplateEnhancer wires the templater to the dish knowledge base.
func NewTemplateEnhancer(kb *dish.KnowledgeBase) *TemplateEnhancer {
	return &TemplateEnhancer{kb: kb, caser: cases.Title(language.Und)}
}

// Enhance fulfils the Enhancer interface. The returned error is always nil.
func (t *TemplateEnhancer) Enhance(ctx context.Context, req Request) (*Result, error) {
	var directive string
	if strings.EqualFold(strings.TrimSpace(req.Format), "video") {
		directive = t.videoDirective(req)
	} else {
		directive = t.imageDirective(req)
	}
	return &Result{Directive: directive, Provider: ProviderTemplate}, nil
}

func (t *TemplateEnhancer) videoDirective(req Request) string {
	d := t.kb.Match(req.Prompt)
	subject, ingredients, cuisine := t.subjectParts(req.Prompt, d)

	var parts []string
	switch strings.TrimSpace(req.VideoStyle) {
	case "Cinematic":
		parts = append(parts, fmt.Sprintf(
			"Cinematic slow dolly-in on %s, %s catching the light as the camera glides closer, %s plating in sharp focus.",
			subject, ingredients, cuisine))
	case "Slow Motion":
		parts = append(parts, fmt.Sprintf(
			"Ultra slow-motion hero shot of %s, %s suspended mid-toss, every strand and surface glistening.",
			subject, ingredients))
	case "Social Media":
		parts = append(parts, fmt.Sprintf(
			"Punchy vertical-friendly sequence of %s, quick whip-pans across %s, bold %s energy built for a feed.",
			subject, ingredients, cuisine))
	case "Documentary":
		parts = append(parts, fmt.Sprintf(
			"Observational handheld footage of %s arriving at the table, natural light, honest %s with %s in frame.",
			subject, cuisine, ingredients))
	default:
		parts = append(parts, fmt.Sprintf(
			"Appetizing close-up of %s with %s, gentle camera drift, irresistible and ready to order.",
			subject, ingredients))
	}

	if bg := strings.TrimSpace(req.Background); bg != "" {
		parts = append(parts, fmt.Sprintf("Set in %s.", bg))
	}
	parts = append(parts, photographyRequirements)
	if d != nil {
		parts = append(parts, fmt.Sprintf("Never show: %s.", strings.Join(d.ForbiddenIngredients, ", ")))
		parts = append(parts, fmt.Sprintf("This is %s, %s.", d.Name, d.CulturalContext))
		parts = append(parts, fmt.Sprintf("Highlight the signature moment: %s.", d.SignatureTechnique))
	}
	return strings.Join(parts, " ")
}

func (t *TemplateEnhancer) imageDirective(req Request) string {
	d := t.kb.Match(req.Prompt)
	subject, ingredients, cuisine := t.subjectParts(req.Prompt, d)

	var parts []string
	switch strings.TrimSpace(req.VideoStyle) {
	case "Cinematic":
		parts = append(parts, fmt.Sprintf(
			"Dramatic editorial photograph of %s, %s under moody directional light, deep shadows framing the %s plating.",
			subject, ingredients, cuisine))
	case "Social Media":
		parts = append(parts, fmt.Sprintf(
			"Bright overhead flat-lay of %s, %s arranged for a scroll-stopping %s post.",
			subject, ingredients, cuisine))
	case "Documentary":
		parts = append(parts, fmt.Sprintf(
			"Natural-light tabletop photograph of %s, honest %s presentation, %s visible and inviting.",
			subject, cuisine, ingredients))
	default:
		parts = append(parts, fmt.Sprintf(
			"Appetizing close-up photograph of %s with %s, crisp focus on the most tempting bite.",
			subject, ingredients))
	}

	if bg := strings.TrimSpace(req.Background); bg != "" {
		parts = append(parts, fmt.Sprintf("Set in %s.", bg))
	}
	parts = append(parts, photographyRequirements)
	if d != nil {
		parts = append(parts, fmt.Sprintf("Never show: %s.", strings.Join(d.ForbiddenIngredients, ", ")))
		parts = append(parts, fmt.Sprintf("This is %s, %s.", d.Name, d.CulturalContext))
	}
	return strings.Join(parts, " ")
}

// subjectParts resolves the display name, showcase ingredients, and cuisine
// for interpolation. Unmatched prompts fall back to the user's own words.
func (t *TemplateEnhancer) subjectParts(raw string, d *dish.Info) (subject, ingredients, cuisine string) {
	if d != nil {
		return d.Name, strings.Join(d.CanonicalIngredients, ", "), d.Cuisine
	}
	subject = strings.TrimSpace(raw)
	if subject == "" {
		subject = "the featured dish"
	} else {
		subject = t.caser.String(subject)
	}
	return subject, "its freshest ingredients", "signature"
}

var _ Enhancer = (*TemplateEnhancer)(nil)
