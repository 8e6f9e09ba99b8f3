package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nzbudget/budget-server/internal/domain"
)

// InputParser loads budget profiles from YAML files for CLI use. The same
// validation runs against snapshots arriving through the API; the parser is
// just the file-shaped entry point.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a budget profile from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Budget, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var budget domain.Budget
	if err := yaml.Unmarshal(data, &budget); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateBudget(&budget); err != nil {
		return nil, fmt.Errorf("budget validation failed: %w", err)
	}

	budget.Sanitize()
	return &budget, nil
}

// ValidateBudget validates a loaded budget profile, including the
// referential link between expenses and accounts. Unknown account ids are
// tolerated on stored data (weak references survive account deletion) but
// rejected in freshly loaded profiles, where they are always a typo.
func (ip *InputParser) ValidateBudget(budget *domain.Budget) error {
	if err := budget.Validate(); err != nil {
		return err
	}

	known := make(map[string]bool, len(budget.Accounts))
	for _, a := range budget.Accounts {
		if a.ID == "" {
			return fmt.Errorf("account %s: id is required", a.Name)
		}
		if known[a.ID] {
			return fmt.Errorf("duplicate account id %q", a.ID)
		}
		known[a.ID] = true
	}

	seen := make(map[string]bool, len(budget.Expenses))
	for _, e := range budget.Expenses {
		if e.ID == "" {
			return fmt.Errorf("expense %s: id is required", e.Name)
		}
		if seen[e.ID] {
			return fmt.Errorf("duplicate expense id %q", e.ID)
		}
		seen[e.ID] = true

		if e.AccountID != "" && !known[e.AccountID] {
			return fmt.Errorf("expense %s references unknown account %q", e.Name, e.AccountID)
		}
	}
	return nil
}
