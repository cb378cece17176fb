package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"server/internal/dish"
	"server/internal/providers/prompt"
)

// promptcheck renders the deterministic template directive for a prompt so a
// change to the dish catalog or template wording can be reviewed offline,
// without any API credential.
func main() {
	var (
		promptText = flag.String("prompt", "", "user prompt to enhance (required)")
		format     = flag.String("format", "image", "output format: image or video")
		scale      = flag.String("scale", "1:1", "aspect ratio, e.g. 1:1, 2:3, 16:9")
		length     = flag.String("length", "", "video length, e.g. 5s")
		style      = flag.String("style", "", "video style, e.g. Cinematic")
		background = flag.String("background", "", "background setting")
	)
	flag.Parse()

	if *promptText == "" {
		fmt.Fprintln(os.Stderr, "promptcheck: -prompt is required")
		flag.Usage()
		os.Exit(2)
	}

	kb, err := dish.NewKnowledgeBase()
	if err != nil {
		fmt.Fprintf(os.Stderr, "promptcheck: %v\n", err)
		os.Exit(1)
	}

	if d := kb.Match(*promptText); d != nil {
		fmt.Printf("matched dish: %s (%s)\n", d.Name, d.Cuisine)
	} else {
		fmt.Println("matched dish: none")
	}

	enhancer := prompt.NewTemplateEnhancer(kb)
	res, err := enhancer.Enhance(context.Background(), prompt.Request{
		Prompt:     *promptText,
		Format:     *format,
		Scale:      *scale,
		Length:     *length,
		VideoStyle: *style,
		Background: *background,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "promptcheck: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(res.Directive)
}
