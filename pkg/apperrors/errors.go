package apperrors

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrNilDataset      = errors.New("dataset must not be nil")
	ErrNilCatalog      = errors.New("reference catalog must not be nil")
	ErrNoRules         = errors.New("no validation rules configured")
	ErrEmptyWorkbook   = errors.New("workbook contains no sheets")
	ErrMissingHeaders  = errors.New("sheet has no header row")
	ErrCatalogFile     = errors.New("reference catalog file is invalid")
	ErrUnsupportedFile = errors.New("unsupported input file format")
)
