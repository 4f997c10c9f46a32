package models

import (
	"testing"
)

func TestFinding_Defaults(t *testing.T) {
	f := NewFinding()

	if f.ID() == "" {
		t.Error("finding must get a generated id")
	}
	if f.Severity() != SeverityError {
		t.Errorf("default severity must be ERROR, got %s", f.Severity())
	}
	if f.Code() != CodeGenericError {
		t.Errorf("default code must be GENERIC_ERROR, got %s", f.Code())
	}
	if f.RowIndex() != -1 {
		t.Errorf("default row index must be -1, got %d", f.RowIndex())
	}
}

func TestFinding_UniqueIDs(t *testing.T) {
	a := NewFinding()
	b := NewFinding()
	if a.ID() == b.ID() {
		t.Error("two findings must not share an id")
	}
}

func TestFinding_ContextCopyOnRead(t *testing.T) {
	f := NewFinding()
	f.PutContext("ci_id", "CI-001")

	ctx := f.Context()
	ctx["ci_id"] = "mutated"
	ctx["extra"] = "x"

	if got := f.Context()["ci_id"]; got != "CI-001" {
		t.Errorf("callers must not be able to mutate internal context, got %q", got)
	}
	if _, ok := f.Context()["extra"]; ok {
		t.Error("callers must not be able to extend internal context")
	}
}

func TestFinding_ContextLastWriteWins(t *testing.T) {
	f := NewFinding()
	f.PutContext("key", "first")
	f.PutContext("key", "second")

	if got := f.Context()["key"]; got != "second" {
		t.Errorf("last write per key must win, got %q", got)
	}
}

func TestFinding_View(t *testing.T) {
	ci := NewCI("CI-001", "Server", "AppSrv01")
	rel := NewRelationship("CI-001", "CI-002", "Depends on")

	f := NewFinding()
	f.SetCode(CodeDanglingRelationship)
	f.SetSeverity(SeverityError)
	f.SetMessage("broken reference")
	f.SetCI(ci)
	f.SetRelation(rel)
	f.SetSheetName("Servers")
	f.SetRowIndex(42)
	f.SetSuggestion("fix it")

	view := f.View()
	if view.CIID != "CI-001" {
		t.Errorf("expected CIID CI-001, got %s", view.CIID)
	}
	if view.Relationship == "" {
		t.Error("view must render the implicated relationship")
	}
	if view.SheetName != "Servers" || view.RowIndex != 42 {
		t.Errorf("provenance lost in view: %s/%d", view.SheetName, view.RowIndex)
	}
}

func TestSeverityAndCodeValidity(t *testing.T) {
	for _, s := range ValidSeverities {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Severity("FATAL").IsValid() {
		t.Error("FATAL is not a valid severity")
	}

	for _, c := range ValidFindingCodes {
		if !c.IsValid() {
			t.Errorf("%s should be valid", c)
		}
	}
	if FindingCode("NOT_A_CODE").IsValid() {
		t.Error("NOT_A_CODE is not a valid finding code")
	}
}

func TestRelationship_EqualityTriple(t *testing.T) {
	a := NewRelationship("CI-001", "CI-002", "Depends on")
	b := NewRelationship("CI-001", "CI-002", "Depends on")
	c := NewRelationship("CI-001", "CI-002", "Runs on")

	if !a.Equal(b) {
		t.Error("relationships with the same triple must be equal")
	}
	if a.Equal(c) {
		t.Error("a different type makes a different relationship")
	}
	if a.Key() != b.Key() {
		t.Error("keys of equal relationships must compare equal")
	}
}
