package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mamadbah2/qclab/internal/domain/models"
)

const promptDateLayout = "2006-01-02"

// ErrEmptyResponse marks an analysis that came back without text. Generators
// may return it, or an empty string, for a reply without text.
var ErrEmptyResponse = errors.New("empty response from model")

// Summarizer produces a natural-language analysis of a record.
type Summarizer interface {
	Summarize(ctx context.Context, record models.QCRecord) (string, error)
}

// TextGenerator is a text-generation backend.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// PromptSummarizer renders a record into a prompt for a TextGenerator.
type PromptSummarizer struct {
	generator TextGenerator
	company   string
	language  string
}

// NewPromptSummarizer wires a summarizer. company names the lab in the system
// prompt and language is the language the analysis should be written in.
func NewPromptSummarizer(generator TextGenerator, company, language string) *PromptSummarizer {
	if language == "" {
		language = "Persian"
	}
	return &PromptSummarizer{generator: generator, company: company, language: language}
}

// Summarize implements Summarizer.
func (s *PromptSummarizer) Summarize(ctx context.Context, record models.QCRecord) (string, error) {
	text, err := s.generator.Generate(ctx, s.systemPrompt(), BuildPrompt(record))
	if errors.Is(err, ErrEmptyResponse) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("generate analysis: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (s *PromptSummarizer) systemPrompt() string {
	company := s.company
	if company == "" {
		company = "the plant"
	}
	return fmt.Sprintf(`You are the senior quality control manager of %s.
Review the laboratory report you are given and write a short, technical analysis in %s.
Write plain text without complex markdown. The tone must be formal and industrial.`, company, s.language)
}

// BuildPrompt lists the record fields and test results the model should review.
func BuildPrompt(record models.QCRecord) string {
	var b strings.Builder

	b.WriteString("Report details:\n")
	fmt.Fprintf(&b, "Product/material: %s\n", record.ProductName)
	fmt.Fprintf(&b, "Category: %s\n", record.Category.Label())
	fmt.Fprintf(&b, "Batch number: %s\n", record.BatchNumber)
	fmt.Fprintf(&b, "Date: %s\n", record.Date.Format(promptDateLayout))
	fmt.Fprintf(&b, "Technician: %s\n", record.Technician)

	b.WriteString("\nTest results:\n")
	for _, p := range record.Parameters {
		fmt.Fprintf(&b, "- %s: %s %s (standard range: %s - %s)\n",
			p.Name, p.Value.String(), p.Unit, formatBound(p.Min), formatBound(p.Max))
	}

	fmt.Fprintf(&b, "\nCurrent status: %s\n", record.Status)
	notes := record.Notes
	if strings.TrimSpace(notes) == "" {
		notes = "none"
	}
	fmt.Fprintf(&b, "Technician notes: %s\n", notes)

	b.WriteString(`
Points for the analysis:
1. If the tests include ASTM D86 (distillation), look closely at the initial (IBP), middle (50%) and final (FBP) boiling points and comment on the volatility of the sample.
2. If the tests include GC, check the purity of the components (hexane, benzene, ...) carefully. High impurity levels must be flagged.
3. Take density, viscosity and flash point into account.
4. Propose a formal statement suitable for the plant's automation system.
`)
	return b.String()
}

// formatBound prints "?" for absent or zero bounds.
func formatBound(v *float64) string {
	if v == nil || *v == 0 {
		return "?"
	}
	return models.Numeric(*v).String()
}
