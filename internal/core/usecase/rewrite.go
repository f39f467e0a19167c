package usecase

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lawbotvn/lawbot/internal/core/domain"
	"github.com/lawbotvn/lawbot/internal/core/ports"
)

//go:embed expansion_rules.yaml
var defaultExpansionRules []byte

// ExpansionRule pairs a colloquial phrase with its legal wording.
type ExpansionRule struct {
	Match string `yaml:"match"`
	Legal string `yaml:"legal"`
}

type expansionRuleFile struct {
	Rules []ExpansionRule `yaml:"rules"`
}

// LoadExpansionRules reads rules from path, or falls back to the built-in
// set when path is empty.
func LoadExpansionRules(path string) ([]ExpansionRule, error) {
	raw := defaultExpansionRules
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read expansion rules: %w", err)
		}
	}

	var file expansionRuleFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode expansion rules: %w", err)
	}
	for i, rule := range file.Rules {
		if rule.Match == "" || rule.Legal == "" {
			return nil, fmt.Errorf("expansion rule %d is missing match or legal wording", i)
		}
	}
	return file.Rules, nil
}

// QueryRewriter prepares user questions for retrieval. Expansion appends
// legal terminology for colloquial phrases; condensation folds chat history
// into a standalone question via the generator.
type QueryRewriter struct {
	generator ports.Generator
	rules     []ExpansionRule
}

func NewQueryRewriter(generator ports.Generator, rules []ExpansionRule) *QueryRewriter {
	return &QueryRewriter{generator: generator, rules: rules}
}

// Expand appends the legal wording of the first matching rule to the
// question. Matching is case-insensitive on the question side; rule
// phrases are stored lowercase.
func (r *QueryRewriter) Expand(question string) string {
	lowered := strings.ToLower(question)
	for _, rule := range r.rules {
		if strings.Contains(lowered, rule.Match) {
			return question + " (" + rule.Legal + ")"
		}
	}
	return question
}

// Condense rewrites a follow-up question into a standalone one using the
// conversation history. With no history the question is already standalone
// and the generator is not consulted.
func (r *QueryRewriter) Condense(ctx context.Context, question string, history []domain.Turn) (string, error) {
	if len(history) == 0 {
		return question, nil
	}

	prompt := condensePrompt(question, history)
	standalone, err := r.generator.GenerateFromPrompt(ctx, prompt)
	if err != nil {
		return "", domain.WrapError(domain.ErrGeneration, "condense question", err)
	}
	standalone = strings.TrimSpace(standalone)
	if standalone == "" {
		return question, nil
	}
	return standalone, nil
}
