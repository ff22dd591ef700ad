package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"jpanalyzer/analyze"
	"jpanalyzer/model"
	"jpanalyzer/tokenize"
)

// Prints every output shape for one sentence, e.g. go run ./demo -mode B -text 猫が好き
func main() {
	text := flag.String("text", "秋田県仙北市は市内を流れる入見内川の水位が高まっています。", "Japanese text to analyze")
	mode := flag.String("mode", "A", "segmentation mode: A, B or C")
	dictName := flag.String("dict", "ipa", "system dictionary: ipa or uni")
	flag.Parse()

	tk, err := tokenize.New(tokenize.Options{Dict: *dictName})
	if err != nil {
		fmt.Println("failed to create tokenizer:", err)
		os.Exit(1)
	}

	ctx := context.Background()
	m := tokenize.ResolveMode(*mode)
	toks, err := tk.Tokenize(ctx, *text, m)
	if err != nil {
		fmt.Println("tokenize error:", err)
		os.Exit(1)
	}
	fmt.Printf("Text: %s\nMode: %s (%s)\nTokens: %d\n", *text, *mode, m, len(toks))

	shaper := analyze.NewShaper(tk)
	kinds := []model.OutputKind{model.Plain, model.Furigana, model.FuriganaShort, model.Romaji, model.Grammar, model.Frequency}
	for _, kind := range kinds {
		out, err := shaper.ShapeAll(ctx, kind, toks, m)
		if err != nil {
			fmt.Printf("%s: %v\n", kind, err)
			continue
		}
		b, _ := json.MarshalIndent(out, "", "  ")
		fmt.Printf("\n--- %s ---\n%s\n", kind, b)
	}
}
