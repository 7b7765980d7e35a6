// Package rules provides the CEL-Go based building classification engine.
package rules

import (
	"context"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/rotisserie/eris"

	"github.com/opensource-finance/hurricane-autopop/internal/domain"
)

// Engine evaluates an ordered decision table of classification rules.
// The first enabled rule whose expression holds decides the class.
type Engine struct {
	mu    sync.RWMutex
	env   *cel.Env
	rules []*CompiledRule
}

// CompiledRule holds a pre-compiled CEL program.
type CompiledRule struct {
	Config  *domain.ClassRule
	Program cel.Program
}

// Match identifies the rule that classified a building.
type Match struct {
	Index  int
	RuleID string
	Class  domain.BuildingClass
}

// NewEngine creates an engine with no rules loaded.
func NewEngine() (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Variable("material", cel.StringType),
		cel.Variable("occupancy", cel.StringType),
		cel.Variable("design_level", cel.StringType),
		cel.Variable("stories", cel.IntType),
		cel.Variable("roof_shape", cel.StringType),
	)
	if err != nil {
		return nil, eris.Wrap(err, "rules: create CEL environment")
	}

	return &Engine{env: env}, nil
}

// NewHazusEngine creates an engine loaded with the Hazus decision table.
func NewHazusEngine() (*Engine, error) {
	e, err := NewEngine()
	if err != nil {
		return nil, err
	}
	if err := e.LoadRules(HazusClassRules()); err != nil {
		return nil, err
	}
	return e, nil
}

// ValidateRule compiles a rule without changing the loaded table.
func (e *Engine) ValidateRule(cfg *domain.ClassRule) error {
	if cfg == nil {
		return eris.New("rules: rule config is required")
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	_, err := e.compileRule(cfg)
	return err
}

// LoadRule compiles a rule and appends it to the end of the table.
func (e *Engine) LoadRule(cfg *domain.ClassRule) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	compiled, err := e.compileRule(cfg)
	if err != nil {
		return err
	}
	e.rules = append(e.rules, compiled)
	return nil
}

// LoadRules appends the enabled rules in order.
func (e *Engine) LoadRules(configs []*domain.ClassRule) error {
	for _, cfg := range configs {
		if cfg.Enabled {
			if err := e.LoadRule(cfg); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReloadRules replaces the whole table. On error the old table stays.
func (e *Engine) ReloadRules(configs []*domain.ClassRule) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := make([]*CompiledRule, 0, len(configs))
	for _, cfg := range configs {
		if !cfg.Enabled {
			continue
		}
		compiled, err := e.compileRule(cfg)
		if err != nil {
			return err
		}
		next = append(next, compiled)
	}

	e.rules = next
	return nil
}

// Classify returns the class of the first matching rule. It fails with
// *domain.UnclassifiableRecordError when no rule matches.
func (e *Engine) Classify(ctx context.Context, b *domain.Building) (domain.BuildingClass, error) {
	m, err := e.Explain(ctx, b)
	if err != nil {
		return domain.ClassUnknown, err
	}
	return m.Class, nil
}

// Explain returns the matching rule and its position in the table.
func (e *Engine) Explain(ctx context.Context, b *domain.Building) (Match, error) {
	e.mu.RLock()
	rules := e.rules
	e.mu.RUnlock()

	activation := map[string]any{
		"material":     b.BuildingType,
		"occupancy":    b.OccupancyClass,
		"design_level": b.DesignLevel,
		"stories":      int64(b.NumberOfStories),
		"roof_shape":   b.RoofShape,
	}

	for i, rule := range rules {
		if err := ctx.Err(); err != nil {
			return Match{}, err
		}

		out, _, err := rule.Program.Eval(activation)
		if err != nil {
			return Match{}, eris.Wrapf(err, "rules: evaluate %s", rule.Config.ID)
		}
		if matched, ok := out.(types.Bool); ok && bool(matched) {
			return Match{Index: i, RuleID: rule.Config.ID, Class: rule.Config.Class}, nil
		}
	}

	return Match{}, &domain.UnclassifiableRecordError{
		Material:  b.BuildingType,
		Occupancy: b.OccupancyClass,
		Stories:   b.NumberOfStories,
	}
}

// RulesCount returns the number of loaded rules.
func (e *Engine) RulesCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.rules)
}

// GetLoadedRules returns the loaded rule configurations in table order.
func (e *Engine) GetLoadedRules() []*domain.ClassRule {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]*domain.ClassRule, len(e.rules))
	for i, compiled := range e.rules {
		out[i] = compiled.Config
	}
	return out
}

// Close drops all loaded rules.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = nil
	return nil
}

func (e *Engine) compileRule(cfg *domain.ClassRule) (*CompiledRule, error) {
	if !cfg.Class.Valid() {
		return nil, eris.Errorf("rules: rule %s targets unknown class %d", cfg.ID, uint8(cfg.Class))
	}

	ast, issues := e.env.Compile(cfg.Expression)
	if issues != nil && issues.Err() != nil {
		return nil, eris.Wrapf(issues.Err(), "rules: compile rule %s", cfg.ID)
	}

	if outputType := ast.OutputType(); outputType != cel.BoolType {
		return nil, eris.Errorf("rules: rule %s must return bool, got %s", cfg.ID, outputType)
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, eris.Wrapf(err, "rules: create program for rule %s", cfg.ID)
	}

	return &CompiledRule{
		Config:  cfg,
		Program: program,
	}, nil
}
