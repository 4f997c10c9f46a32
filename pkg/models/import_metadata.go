package models

import (
	"fmt"
	"time"
)

// ImportMetadata captures where a record came from: source file, worksheet,
// and row indices for the entity row and (when present) the relationship row.
//
// Metadata is written once by the importer when the record is created and is
// treated as read-only afterwards, so it carries no lock of its own.
type ImportMetadata struct {
	SourceFile       string
	SheetName        string
	RowIndexEntity   int
	RowIndexRelation int
	ImportedAt       time.Time
}

// NewImportMetadata creates provenance for a record parsed from the given
// file and sheet. Row indices default to -1 (unknown).
func NewImportMetadata(sourceFile, sheetName string) *ImportMetadata {
	return &ImportMetadata{
		SourceFile:       sourceFile,
		SheetName:        sheetName,
		RowIndexEntity:   -1,
		RowIndexRelation: -1,
		ImportedAt:       time.Now(),
	}
}

func (m *ImportMetadata) String() string {
	return fmt.Sprintf("ImportMetadata[file=%s, sheet=%s, entityRow=%d, relationRow=%d]",
		m.SourceFile, m.SheetName, m.RowIndexEntity, m.RowIndexRelation)
}
