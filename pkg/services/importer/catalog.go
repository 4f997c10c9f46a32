package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cmdbhub/cmdb-analyzer/pkg/apperrors"
	"github.com/cmdbhub/cmdb-analyzer/pkg/models"
)

// catalogFile is the YAML layout of a reference-data file:
//
//	classes:
//	  - Server
//	relationship_types:
//	  - Depends on
//	locations:
//	  - EU-West
//	environments:
//	  - Prod
//
// Any section may be omitted; an omitted dimension stays empty and the
// catalog-driven rules leave it alone.
type catalogFile struct {
	Classes           []string `yaml:"classes"`
	RelationshipTypes []string `yaml:"relationship_types"`
	Locations         []string `yaml:"locations"`
	Environments      []string `yaml:"environments"`
}

// LoadCatalog reads a YAML reference-data file into a new ReferenceCatalog.
func LoadCatalog(path string) (*models.ReferenceCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog builds a ReferenceCatalog from YAML content.
func ParseCatalog(data []byte) (*models.ReferenceCatalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCatalogFile, err)
	}

	catalog := models.NewReferenceCatalog()
	for _, class := range file.Classes {
		catalog.AddValidClass(class)
	}
	for _, relType := range file.RelationshipTypes {
		catalog.AddValidRelationshipType(relType)
	}
	for _, location := range file.Locations {
		catalog.AddValidLocation(location)
	}
	for _, env := range file.Environments {
		catalog.AddValidEnvironment(env)
	}
	return catalog, nil
}
