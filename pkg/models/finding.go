package models

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity classifies how urgently an operator should act on a finding.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// ValidSeverities contains all valid severity values.
var ValidSeverities = []Severity{SeverityError, SeverityWarning, SeverityInfo}

// IsValid returns true if the severity is one of the known levels.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// FindingCode identifies the consistency rule that produced a finding.
type FindingCode string

const (
	CodeMissingParent           FindingCode = "MISSING_PARENT"
	CodeOrphanCI                FindingCode = "ORPHAN_CI"
	CodeDanglingRelationship    FindingCode = "DANGLING_RELATIONSHIP"
	CodeInvalidRelationshipType FindingCode = "INVALID_RELATIONSHIP_TYPE"
	CodeInvalidClass            FindingCode = "INVALID_CLASS"
	CodeMissingServiceOffering  FindingCode = "MISSING_SERVICE_OFFERING"
	CodeDuplicateCI             FindingCode = "DUPLICATE_CI"
	CodeCircularDependency      FindingCode = "CIRCULAR_DEPENDENCY"
	CodeLocationInvalid         FindingCode = "LOCATION_INVALID"
	CodeGenericError            FindingCode = "GENERIC_ERROR"
)

// ValidFindingCodes contains all valid finding codes.
var ValidFindingCodes = []FindingCode{
	CodeMissingParent,
	CodeOrphanCI,
	CodeDanglingRelationship,
	CodeInvalidRelationshipType,
	CodeInvalidClass,
	CodeMissingServiceOffering,
	CodeDuplicateCI,
	CodeCircularDependency,
	CodeLocationInvalid,
	CodeGenericError,
}

// IsValid returns true if the code is part of the closed enumeration.
func (c FindingCode) IsValid() bool {
	for _, v := range ValidFindingCodes {
		if v == c {
			return true
		}
	}
	return false
}

// ValidationFinding describes one detected consistency issue, optionally
// linked to the CI and/or relationship it implicates.
//
// The id is freshly generated per finding and carries no semantic meaning;
// comparisons between validation runs must ignore it (and CreatedAt).
// Severity and code default to ERROR/GENERIC_ERROR until explicitly set.
type ValidationFinding struct {
	id        string
	createdAt time.Time

	mu         sync.RWMutex
	severity   Severity
	code       FindingCode
	message    string
	ci         *CI
	relation   *Relationship
	sourceFile string
	sheetName  string
	rowIndex   int
	context    map[string]string
	suggestion string
}

// NewFinding creates a finding with generated identity and the default
// ERROR/GENERIC_ERROR classification.
func NewFinding() *ValidationFinding {
	return &ValidationFinding{
		id:        uuid.NewString(),
		createdAt: time.Now(),
		severity:  SeverityError,
		code:      CodeGenericError,
		rowIndex:  -1,
		context:   make(map[string]string),
	}
}

// ID returns the generated finding identity.
func (f *ValidationFinding) ID() string {
	return f.id
}

// CreatedAt returns when the finding was constructed.
func (f *ValidationFinding) CreatedAt() time.Time {
	return f.createdAt
}

func (f *ValidationFinding) Severity() Severity {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.severity
}

func (f *ValidationFinding) SetSeverity(severity Severity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.severity = severity
}

func (f *ValidationFinding) Code() FindingCode {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.code
}

func (f *ValidationFinding) SetCode(code FindingCode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.code = code
}

func (f *ValidationFinding) Message() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.message
}

func (f *ValidationFinding) SetMessage(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.message = message
}

// CI returns the implicated configuration item, or nil.
func (f *ValidationFinding) CI() *CI {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.ci
}

func (f *ValidationFinding) SetCI(ci *CI) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ci = ci
}

// Relation returns the implicated relationship, or nil.
func (f *ValidationFinding) Relation() *Relationship {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.relation
}

func (f *ValidationFinding) SetRelation(rel *Relationship) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.relation = rel
}

func (f *ValidationFinding) SourceFile() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sourceFile
}

func (f *ValidationFinding) SetSourceFile(sourceFile string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sourceFile = sourceFile
}

func (f *ValidationFinding) SheetName() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sheetName
}

func (f *ValidationFinding) SetSheetName(sheetName string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sheetName = sheetName
}

// RowIndex returns the source row of the implicated record, or -1.
func (f *ValidationFinding) RowIndex() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.rowIndex
}

func (f *ValidationFinding) SetRowIndex(rowIndex int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rowIndex = rowIndex
}

// Context returns a point-in-time copy of the rule-specific context map, so
// callers cannot mutate engine-internal state.
func (f *ValidationFinding) Context() map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]string, len(f.context))
	for k, v := range f.context {
		out[k] = v
	}
	return out
}

// PutContext records a context entry. Last write per key wins; empty keys are
// ignored.
func (f *ValidationFinding) PutContext(key, value string) {
	if key == "" {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.context[key] = value
}

func (f *ValidationFinding) Suggestion() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.suggestion
}

func (f *ValidationFinding) SetSuggestion(suggestion string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.suggestion = suggestion
}

// FindingView is a plain serializable snapshot of a finding, suitable for
// JSON export and report rendering.
type FindingView struct {
	ID           string            `json:"id"`
	Severity     Severity          `json:"severity"`
	Code         FindingCode       `json:"code"`
	Message      string            `json:"message"`
	CIID         string            `json:"ci_id,omitempty"`
	Relationship string            `json:"relationship,omitempty"`
	SourceFile   string            `json:"source_file,omitempty"`
	SheetName    string            `json:"sheet_name,omitempty"`
	RowIndex     int               `json:"row_index"`
	Context      map[string]string `json:"context,omitempty"`
	Suggestion   string            `json:"suggestion,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// View returns a consistent snapshot of all finding fields.
func (f *ValidationFinding) View() FindingView {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v := FindingView{
		ID:         f.id,
		Severity:   f.severity,
		Code:       f.code,
		Message:    f.message,
		SourceFile: f.sourceFile,
		SheetName:  f.sheetName,
		RowIndex:   f.rowIndex,
		Suggestion: f.suggestion,
		CreatedAt:  f.createdAt,
	}
	if f.ci != nil {
		v.CIID = f.ci.ID()
	}
	if f.relation != nil {
		v.Relationship = f.relation.String()
	}
	if len(f.context) > 0 {
		v.Context = make(map[string]string, len(f.context))
		for k, val := range f.context {
			v.Context[k] = val
		}
	}
	return v
}

func (f *ValidationFinding) String() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return fmt.Sprintf("[%s] %s - %s", f.severity, f.code, f.message)
}
