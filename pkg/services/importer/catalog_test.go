package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmdbhub/cmdb-analyzer/pkg/apperrors"
)

func TestParseCatalog(t *testing.T) {
	data := []byte(`
classes:
  - Server
  - Application
relationship_types:
  - Depends on
  - Runs on
locations:
  - EU-West
environments:
  - Prod
  - Test
`)

	catalog, err := ParseCatalog(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !catalog.IsValidClass("Server") || !catalog.IsValidClass("Application") {
		t.Error("classes were not loaded")
	}
	if !catalog.IsValidRelationshipType("Depends on") {
		t.Error("relationship types were not loaded")
	}
	if !catalog.IsValidLocation("EU-West") {
		t.Error("locations were not loaded")
	}
	if !catalog.IsValidEnvironment("Prod") || !catalog.IsValidEnvironment("Test") {
		t.Error("environments were not loaded")
	}
}

func TestParseCatalog_OmittedSectionsStayEmpty(t *testing.T) {
	catalog, err := ParseCatalog([]byte("classes:\n  - Server\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !catalog.HasClasses() {
		t.Error("classes should be populated")
	}
	if catalog.HasRelationshipTypes() || catalog.HasLocations() || catalog.HasEnvironments() {
		t.Error("omitted sections must leave their dimension empty")
	}
}

func TestParseCatalog_InvalidYAML(t *testing.T) {
	_, err := ParseCatalog([]byte("classes: [unclosed"))
	if !errors.Is(err, apperrors.ErrCatalogFile) {
		t.Errorf("expected ErrCatalogFile, got %v", err)
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := "classes:\n  - Server\nlocations:\n  - EU-West\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !catalog.IsValidClass("Server") || !catalog.IsValidLocation("EU-West") {
		t.Error("file content was not loaded")
	}
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
