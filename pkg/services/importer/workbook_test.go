package importer

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/cmdbhub/cmdb-analyzer/pkg/apperrors"
	"github.com/cmdbhub/cmdb-analyzer/pkg/models"
)

// writeWorkbook builds a single-file XLSX fixture. sheets maps sheet name to
// rows, the first row being the headers.
func writeWorkbook(t *testing.T, sheets map[string][][]interface{}, order []string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				t.Fatal(err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				t.Fatal(err)
			}
		}
		for rowIdx, row := range sheets[sheet] {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				t.Fatal(err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "export.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWorkbookImporter_ImportFile(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Servers": {
			{"ID", "CI Name", "Class", "Location", "Parent CI", "Relationship Type", "Project", "Business Service", "Service Offering", "Serial Number"},
			{"CI-001", "AppSrv01", "Server", "EU-West", "", "", "FactoryNet", "", "", ""},
			{"CI-002", "CRM", "Application", "EU-West", "CI-001", "Runs on", "FactoryNet", "Document Management", "DMS Portal", "SN-42"},
		},
	}, []string{"Servers"})

	ds := models.NewCMDBDataset()
	imp := NewWorkbookImporter(zap.NewNop())
	if err := imp.ImportFile(context.Background(), path, ds); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(ds.CIs()); got != 2 {
		t.Fatalf("expected 2 CIs, got %d", got)
	}

	crm, ok := ds.CIByID("CI-002")
	if !ok {
		t.Fatal("CI-002 should exist")
	}
	if crm.Class() != "Application" || crm.Name() != "CRM" || crm.Location() != "EU-West" {
		t.Errorf("canonical fields not filled: %s/%s/%s", crm.Class(), crm.Name(), crm.Location())
	}
	if v, ok := crm.Attribute("serial_number"); !ok || v != "SN-42" {
		t.Errorf("non-canonical column must land in attributes, got %q (ok=%v)", v, ok)
	}
	meta := crm.Meta()
	if meta == nil || meta.SheetName != "Servers" || meta.RowIndexEntity != 3 {
		t.Errorf("import provenance wrong: %+v", meta)
	}
	if meta != nil && meta.SourceFile != "export.xlsx" {
		t.Errorf("source file wrong: %s", meta.SourceFile)
	}

	rels := ds.Relationships()
	if len(rels) != 1 {
		t.Fatalf("expected 1 relationship, got %d", len(rels))
	}
	rel := rels[0]
	if rel.SourceID() != "CI-001" || rel.TargetID() != "CI-002" || rel.Type() != "Runs on" {
		t.Errorf("parent column must become a parent->child edge, got %s", rel)
	}
	if rel.SourceSheet() != "Servers" {
		t.Errorf("relationship should record its sheet, got %q", rel.SourceSheet())
	}

	projects := ds.Projects()
	if len(projects) != 1 || projects[0].Name() != "FactoryNet" {
		t.Fatalf("expected one FactoryNet project, got %d", len(projects))
	}
	if got := len(projects[0].CIIDs()); got != 2 {
		t.Errorf("both CIs belong to the project, got %d", got)
	}

	services := ds.BusinessServices()
	offerings := ds.ServiceOfferings()
	if len(services) != 1 || len(offerings) != 1 {
		t.Fatalf("expected 1 service and 1 offering, got %d/%d", len(services), len(offerings))
	}
	if offerings[0].CIID() != "CI-002" {
		t.Errorf("offering should reference the row's CI, got %q", offerings[0].CIID())
	}
	if offerings[0].BusinessServiceID() != services[0].ID() {
		t.Error("offering should back-reference its business service")
	}
	if got := services[0].OfferingIDs(); len(got) != 1 || got[0] != offerings[0].ID() {
		t.Errorf("service should list its offering, got %v", got)
	}
}

func TestWorkbookImporter_ParentDefaultsToContains(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Sheet": {
			{"ID", "CI Name", "Class", "Parent CI"},
			{"CI-002", "CRM", "Application", "CI-001"},
		},
	}, []string{"Sheet"})

	ds := models.NewCMDBDataset()
	if err := NewWorkbookImporter(zap.NewNop()).ImportFile(context.Background(), path, ds); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rels := ds.Relationships()
	if len(rels) != 1 {
		t.Fatalf("expected 1 relationship, got %d", len(rels))
	}
	if rels[0].Type() != DefaultParentRelationshipType {
		t.Errorf("expected default type %q, got %q", DefaultParentRelationshipType, rels[0].Type())
	}
}

func TestWorkbookImporter_MergesCIAcrossSheets(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Inventory": {
			{"ID", "CI Name", "Class"},
			{"CI-001", "AppSrv01", "Server"},
		},
		"Details": {
			{"ID", "Description", "Environment"},
			{"CI-001", "Primary application server", "Prod"},
		},
	}, []string{"Inventory", "Details"})

	ds := models.NewCMDBDataset()
	if err := NewWorkbookImporter(zap.NewNop()).ImportFile(context.Background(), path, ds); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(ds.CIs()); got != 1 {
		t.Fatalf("the same id on two sheets is one CI, got %d", got)
	}
	ci, _ := ds.CIByID("CI-001")
	if ci.Class() != "Server" || ci.Name() != "AppSrv01" {
		t.Errorf("first sheet's fields lost: %s/%s", ci.Class(), ci.Name())
	}
	if ci.Description() != "Primary application server" || ci.Environment() != "Prod" {
		t.Errorf("second sheet's fields lost: %q/%q", ci.Description(), ci.Environment())
	}
}

func TestWorkbookImporter_NameIsFallbackIdentity(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Sheet": {
			{"CI Name", "Class"},
			{"AppSrv01", "Server"},
			{"", "Server"},
		},
	}, []string{"Sheet"})

	ds := models.NewCMDBDataset()
	if err := NewWorkbookImporter(zap.NewNop()).ImportFile(context.Background(), path, ds); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(ds.CIs()); got != 1 {
		t.Fatalf("the identity-less row must be skipped, got %d CIs", got)
	}
	if _, ok := ds.CIByID("AppSrv01"); !ok {
		t.Error("the name becomes the id when no id column exists")
	}
}

func TestWorkbookImporter_RejectsUnsupportedExtension(t *testing.T) {
	ds := models.NewCMDBDataset()
	err := NewWorkbookImporter(zap.NewNop()).ImportFile(context.Background(), "export.csv", ds)
	if !errors.Is(err, apperrors.ErrUnsupportedFile) {
		t.Errorf("expected ErrUnsupportedFile, got %v", err)
	}
}

func TestWorkbookImporter_NilDataset(t *testing.T) {
	err := NewWorkbookImporter(zap.NewNop()).ImportFile(context.Background(), "export.xlsx", nil)
	if !errors.Is(err, apperrors.ErrNilDataset) {
		t.Errorf("expected ErrNilDataset, got %v", err)
	}
}
