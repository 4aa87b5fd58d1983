package summary

import "strings"

const textPlaceholder = "{text}"

var promptTemplates = map[Verbosity]string{
	VeryShort: "Summarize this financial news article in 1 sentence:\n{text}",
	Short:     "Summarize this financial news article briefly in 2-3 sentences:\n{text}",
	Medium:    "Provide a concise summary of this financial news article in 4-5 sentences:\n{text}",
	Long:      "Write a detailed summary of this financial news article:\n{text}",
}

// templateFor panics on a verbosity outside the four known values.
func templateFor(v Verbosity) string {
	tmpl, ok := promptTemplates[v]
	if !ok {
		panic("summary: no prompt template for " + v.String())
	}
	return tmpl
}

// BuildPrompt substitutes text into the template for v.
func BuildPrompt(v Verbosity, text string) string {
	return strings.Replace(templateFor(v), textPlaceholder, text, 1)
}
