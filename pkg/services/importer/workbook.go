package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/cmdbhub/cmdb-analyzer/pkg/apperrors"
	"github.com/cmdbhub/cmdb-analyzer/pkg/logging"
	"github.com/cmdbhub/cmdb-analyzer/pkg/models"
	"github.com/cmdbhub/cmdb-analyzer/pkg/services/workqueue"
)

// DefaultParentRelationshipType is the edge type recorded for a parent_ci
// column when the row carries no explicit relationship type.
const DefaultParentRelationshipType = "Contains"

// WorkbookImporter reads CMDB export workbooks (XLSX) into a dataset.
// Sheets are ingested concurrently, one worker per sheet; the dataset's own
// locking makes the concurrent appends safe.
type WorkbookImporter struct {
	logger        *zap.Logger
	maxConcurrent int
}

// WorkbookOption configures a WorkbookImporter.
type WorkbookOption func(*WorkbookImporter)

// WithMaxConcurrentSheets caps how many sheets are ingested in parallel.
// Zero or negative means unbounded.
func WithMaxConcurrentSheets(n int) WorkbookOption {
	return func(i *WorkbookImporter) {
		i.maxConcurrent = n
	}
}

// NewWorkbookImporter creates a workbook importer.
func NewWorkbookImporter(logger *zap.Logger, opts ...WorkbookOption) *WorkbookImporter {
	imp := &WorkbookImporter{
		logger:        logger.Named("importer"),
		maxConcurrent: 4,
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// ImportFile reads every sheet of the workbook at path into the dataset.
// Rows that cannot be interpreted are skipped with a log line; only file
// level problems (unreadable file, no sheets) are errors.
func (i *WorkbookImporter) ImportFile(ctx context.Context, path string, dataset *models.CMDBDataset) error {
	if dataset == nil {
		return apperrors.ErrNilDataset
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".xlsx" && ext != ".xlsm" {
		return fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFile, path)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrEmptyWorkbook, path)
	}

	// Pull all rows out up front; the excelize handle is not meant for
	// concurrent readers, the extracted rows are plain data.
	rowsBySheet := make(map[string][][]string, len(sheets))
	for _, sheet := range sheets {
		rows, err := file.GetRows(sheet)
		if err != nil {
			return fmt.Errorf("failed to read sheet %q of %s: %w", sheet, path, err)
		}
		rowsBySheet[sheet] = rows
	}

	strategy := workqueue.ConcurrencyStrategy(workqueue.NewParallelStrategy())
	if i.maxConcurrent > 0 {
		strategy = workqueue.NewThrottledStrategy(i.maxConcurrent)
	}
	queue := workqueue.New(i.logger, workqueue.WithStrategy(strategy))

	cache := newEntityCache(dataset)
	sourceFile := filepath.Base(path)
	for _, sheet := range sheets {
		sheet := sheet
		queue.Enqueue(workqueue.NewFuncTask("sheet/"+sheet, func(ctx context.Context) error {
			i.importSheet(ctx, sourceFile, sheet, rowsBySheet[sheet], dataset, cache)
			return nil
		}))
	}

	if err := queue.Wait(ctx); err != nil {
		return fmt.Errorf("workbook import of %s aborted: %w", path, err)
	}

	i.logger.Info("workbook imported",
		zap.String("file", sourceFile),
		zap.Int("sheets", len(sheets)),
	)
	return nil
}

// importSheet ingests one sheet's rows. The first row is the header row.
func (i *WorkbookImporter) importSheet(ctx context.Context, sourceFile, sheet string, rows [][]string, dataset *models.CMDBDataset, cache *entityCache) {
	logger := i.logger.With(zap.String("sheet", sheet))
	if len(rows) == 0 {
		logger.Warn("sheet is empty, skipping")
		return
	}

	headers := rows[0]
	keys := make([]string, len(headers))
	for col, header := range headers {
		keys[col] = NormalizeHeader(header)
	}

	imported := 0
	for rowOffset, row := range rows[1:] {
		if ctx.Err() != nil {
			return
		}
		rowIndex := rowOffset + 2 // 1-based, after the header row

		record := make(map[string]string, len(row))
		for col, cell := range row {
			if col >= len(keys) {
				break
			}
			value := strings.TrimSpace(cell)
			if value == "" {
				continue
			}
			record[keys[col]] = value
		}
		if len(record) == 0 {
			continue
		}

		if i.importRow(sourceFile, sheet, rowIndex, record, dataset, cache) {
			imported++
		} else {
			logger.Debug("row skipped, no CI identity",
				zap.Int("row", rowIndex),
			)
		}
	}

	logger.Info("sheet imported", zap.Int("rows", imported))
}

// importRow turns one record into dataset entities. Returns false when the
// row carries no CI identity at all.
func (i *WorkbookImporter) importRow(sourceFile, sheet string, rowIndex int, record map[string]string, dataset *models.CMDBDataset, cache *entityCache) bool {
	name := record["name"]
	id := record["id"]
	if id == "" {
		id = name
	}
	if id == "" {
		return false
	}

	meta := models.NewImportMetadata(sourceFile, sheet)
	meta.RowIndexEntity = rowIndex

	ci, existed := cache.getOrCreateCI(id, record["class"], name, meta)
	fillCI(ci, record)

	// Every non-canonical column becomes an open attribute, so nothing the
	// export carried is lost.
	for key, value := range record {
		switch key {
		case "id", "name", "class", "description", "location", "project",
			"environment", "parent_ci", "relationship",
			"service_offering", "business_service":
			continue
		}
		ci.PutAttribute(key, value)
	}

	if project := record["project"]; project != "" {
		cache.getOrCreateProject(project).AddCI(id)
	}

	if parent := record["parent_ci"]; parent != "" {
		relType := record["relationship"]
		if relType == "" {
			relType = DefaultParentRelationshipType
		}
		rel := models.NewRelationship(parent, id, relType)
		rel.SetSourceSheet(sheet)
		relMeta := models.NewImportMetadata(sourceFile, sheet)
		relMeta.RowIndexRelation = rowIndex
		rel.SetMeta(relMeta)
		dataset.AddRelationship(rel)
	}

	var svc *models.BusinessService
	if bsName := record["business_service"]; bsName != "" {
		svc = cache.getOrCreateBusinessService(bsName)
	}
	if soName := record["service_offering"]; soName != "" {
		offering, existedOffering := cache.getOrCreateServiceOffering(soName)
		offering.SetCIID(id)
		if svc != nil {
			offering.SetBusinessServiceID(svc.ID())
			if !existedOffering {
				svc.AddOffering(offering.ID())
			}
		}
	} else if svc != nil {
		svc.AddDependency(id)
	}

	if !existed {
		i.logger.Debug("ci created",
			zap.String("id", id),
			zap.String("name", logging.SanitizeCell(name)),
			zap.String("sheet", sheet),
		)
	}
	return true
}

// fillCI copies canonical record fields onto the CI. Non-empty values win;
// fields absent from this sheet keep whatever an earlier sheet set.
func fillCI(ci *models.CI, record map[string]string) {
	if v := record["class"]; v != "" {
		ci.SetClass(v)
	}
	if v := record["name"]; v != "" {
		ci.SetName(v)
	}
	if v := record["description"]; v != "" {
		ci.SetDescription(v)
	}
	if v := record["location"]; v != "" {
		ci.SetLocation(v)
	}
	if v := record["project"]; v != "" {
		ci.SetProject(v)
	}
	if v := record["environment"]; v != "" {
		ci.SetEnvironment(v)
	}
}

// entityCache de-duplicates shared entities (CIs seen on several sheets,
// projects, services, offerings) while sheets import in parallel.
type entityCache struct {
	dataset *models.CMDBDataset

	mu        sync.Mutex
	cis       map[string]*models.CI
	projects  map[string]*models.Project
	services  map[string]*models.BusinessService
	offerings map[string]*models.ServiceOffering
}

func newEntityCache(dataset *models.CMDBDataset) *entityCache {
	return &entityCache{
		dataset:   dataset,
		cis:       make(map[string]*models.CI),
		projects:  make(map[string]*models.Project),
		services:  make(map[string]*models.BusinessService),
		offerings: make(map[string]*models.ServiceOffering),
	}
}

func (c *entityCache) getOrCreateCI(id, class, name string, meta *models.ImportMetadata) (*models.CI, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ci, ok := c.cis[id]; ok {
		return ci, true
	}
	if ci, ok := c.dataset.CIByID(id); ok {
		c.cis[id] = ci
		return ci, true
	}
	ci := models.NewCI(id, class, name)
	ci.SetMeta(meta)
	c.cis[id] = ci
	c.dataset.AddCI(ci)
	return ci, false
}

func (c *entityCache) getOrCreateProject(name string) *models.Project {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.projects[name]; ok {
		return p
	}
	p := models.NewProject(name)
	c.projects[name] = p
	c.dataset.AddProject(p)
	return p
}

func (c *entityCache) getOrCreateBusinessService(name string) *models.BusinessService {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.services[name]; ok {
		return s
	}
	s := models.NewBusinessService(name, name)
	c.services[name] = s
	c.dataset.AddBusinessService(s)
	return s
}

// getOrCreateServiceOffering returns the offering and whether it already
// existed.
func (c *entityCache) getOrCreateServiceOffering(name string) (*models.ServiceOffering, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if o, ok := c.offerings[name]; ok {
		return o, true
	}
	o := models.NewServiceOffering(name, name)
	c.offerings[name] = o
	c.dataset.AddServiceOffering(o)
	return o, false
}
