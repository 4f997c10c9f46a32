// Package validation builds a graph view over a CMDB dataset snapshot and
// runs a pluggable set of consistency rules against it.
package validation

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/cmdbhub/cmdb-analyzer/pkg/apperrors"
	"github.com/cmdbhub/cmdb-analyzer/pkg/models"
	"github.com/cmdbhub/cmdb-analyzer/pkg/services/workqueue"
)

// Default rule-set configuration. Datasets differ, so all three are engine
// options; these defaults match common ServiceNow-style exports.
var (
	// DefaultParentRequiredClasses are the CI classes expected to hang off a
	// parent CI.
	DefaultParentRequiredClasses = []string{"Application", "Database", "Virtual Machine"}

	// DefaultStructuralTypes are the relationship types that count as parent
	// links.
	DefaultStructuralTypes = []string{"Contains", "Hosted on", "Runs on", "Member of"}
)

// Engine runs validation rules over dataset snapshots. It is stateless
// across runs: validating the same dataset and catalog twice produces
// value-equal findings (ignoring generated ids and timestamps), and one
// engine can serve concurrent passes because every pass builds its own
// snapshot and graph.
type Engine struct {
	logger          *zap.Logger
	rules           []Rule
	rulesConfigured bool

	maxConcurrentRules    int
	parentRequiredClasses []string
	structuralTypes       []string
	dependencyTypes       []string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRules replaces the default rule set. An explicitly empty rule set is
// kept as-is, so Validate reports it instead of silently running defaults.
func WithRules(rules ...Rule) EngineOption {
	return func(e *Engine) {
		e.rules = rules
		e.rulesConfigured = true
	}
}

// WithMaxConcurrentRules caps how many rules evaluate in parallel.
// Zero or negative means unbounded.
func WithMaxConcurrentRules(n int) EngineOption {
	return func(e *Engine) {
		e.maxConcurrentRules = n
	}
}

// WithParentRequiredClasses sets the CI classes the missing-parent rule
// checks. An empty list disables the rule.
func WithParentRequiredClasses(classes ...string) EngineOption {
	return func(e *Engine) {
		e.parentRequiredClasses = classes
	}
}

// WithStructuralTypes sets the relationship types that count as parent links
// for the missing-parent rule.
func WithStructuralTypes(types ...string) EngineOption {
	return func(e *Engine) {
		e.structuralTypes = types
	}
}

// WithDependencyTypes restricts cycle detection to the given relationship
// types. An empty list means every type participates.
func WithDependencyTypes(types ...string) EngineOption {
	return func(e *Engine) {
		e.dependencyTypes = types
	}
}

// NewEngine creates an engine with the default rule set unless WithRules
// overrides it.
func NewEngine(logger *zap.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		logger:                logger.Named("validation"),
		maxConcurrentRules:    4,
		parentRequiredClasses: DefaultParentRequiredClasses,
		structuralTypes:       DefaultStructuralTypes,
	}

	for _, opt := range opts {
		opt(e)
	}

	if !e.rulesConfigured {
		e.rules = e.defaultRules()
	}

	return e
}

// defaultRules instantiates the built-in rule catalog.
func (e *Engine) defaultRules() []Rule {
	return []Rule{
		NewDanglingRelationshipRule(),
		NewOrphanCIRule(),
		NewMissingParentRule(e.parentRequiredClasses, e.structuralTypes),
		NewInvalidClassRule(),
		NewInvalidRelationshipTypeRule(),
		NewLocationInvalidRule(),
		NewDuplicateCIRule(),
		NewMissingServiceOfferingRule(),
		NewCircularDependencyRule(e.dependencyTypes),
	}
}

// Validate snapshots the dataset, evaluates every rule against the snapshot,
// appends the findings to the dataset, and returns them.
//
// Rules run in parallel; their relative order is not significant, but the
// returned list concatenates per-rule results in registration order, so the
// aggregate is deterministic for a fixed input. Data problems never produce
// an error — they are the findings. The returned error is reserved for
// contract violations (nil arguments, no rules) and caller cancellation.
func (e *Engine) Validate(ctx context.Context, dataset *models.CMDBDataset, catalog *models.ReferenceCatalog) ([]*models.ValidationFinding, error) {
	if dataset == nil {
		return nil, apperrors.ErrNilDataset
	}
	if catalog == nil {
		return nil, apperrors.ErrNilCatalog
	}
	if len(e.rules) == 0 {
		return nil, apperrors.ErrNoRules
	}

	snap := NewSnapshot(dataset, catalog)
	e.logger.Info("validation pass started",
		zap.Int("cis", len(snap.CIs)),
		zap.Int("relationships", len(snap.Relationships)),
		zap.Int("rules", len(e.rules)),
	)

	strategy := workqueue.ConcurrencyStrategy(workqueue.NewParallelStrategy())
	if e.maxConcurrentRules > 0 {
		strategy = workqueue.NewThrottledStrategy(e.maxConcurrentRules)
	}
	queue := workqueue.New(e.logger, workqueue.WithStrategy(strategy))

	// Per-rule result slots keep aggregation order independent of
	// completion order.
	results := make([][]*models.ValidationFinding, len(e.rules))
	var mu sync.Mutex

	for i, rule := range e.rules {
		i, rule := i, rule
		queue.Enqueue(workqueue.NewFuncTask("rule/"+rule.Name(), func(ctx context.Context) error {
			found := rule.Evaluate(ctx, snap)
			mu.Lock()
			results[i] = found
			mu.Unlock()
			return nil
		}))
	}

	if err := queue.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// A failed task here means a rule panicked; report it as a finding
		// rather than losing the rest of the pass.
		e.logger.Error("rule evaluation failed", zap.Error(err))
	}

	var findings []*models.ValidationFinding
	for i := range e.rules {
		findings = append(findings, results[i]...)
	}
	for _, snapTask := range queue.Snapshots() {
		if snapTask.Status != workqueue.TaskStatusFailed {
			continue
		}
		f := newFinding(models.CodeGenericError, models.SeverityError,
			fmt.Sprintf("Rule %q could not be evaluated: %s", snapTask.Name, snapTask.Error))
		f.PutContext("rule", snapTask.Name)
		findings = append(findings, f)
	}

	for _, f := range findings {
		dataset.AddFinding(f)
	}

	e.logger.Info("validation pass finished", zap.Int("findings", len(findings)))
	return findings, nil
}
