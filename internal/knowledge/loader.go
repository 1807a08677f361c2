package knowledge

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a knowledge base from a YAML file. Any schema
// violation is a load error: the assistant must fail fast at construction
// rather than silently serve an empty knowledge base.
func Load(path string) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	var kb KnowledgeBase
	if err := yaml.Unmarshal(data, &kb); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}

	if err := kb.Validate(); err != nil {
		return nil, fmt.Errorf("validate knowledge base: %w", err)
	}

	return &kb, nil
}

// Validate checks knowledge base invariants: at least one FAQ entry,
// unique non-empty ids, non-empty question and answer per entry.
func (kb *KnowledgeBase) Validate() error {
	if len(kb.FAQ) == 0 {
		return fmt.Errorf("knowledge base contains no FAQ entries")
	}

	seen := make(map[string]bool, len(kb.FAQ))
	for i, entry := range kb.FAQ {
		if entry.ID == "" {
			return fmt.Errorf("faq entry %d has no id", i)
		}
		if seen[entry.ID] {
			return fmt.Errorf("duplicate faq id: %s", entry.ID)
		}
		seen[entry.ID] = true

		if entry.Question == "" {
			return fmt.Errorf("faq entry %s has no question", entry.ID)
		}
		if entry.Answer == "" {
			return fmt.Errorf("faq entry %s has no answer", entry.ID)
		}
	}

	return nil
}
