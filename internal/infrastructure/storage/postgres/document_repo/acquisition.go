package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"yardbook/internal/core/id"
	"yardbook/internal/domain"
	"yardbook/internal/domain/documents/acquisition"
	"yardbook/internal/infrastructure/storage/postgres"
)

const (
	acquisitionsTable     = "doc_acquisitions"
	acquisitionLinesTable = "doc_acquisition_lines"
)

// Compile-time check that AcquisitionRepo implements acquisition.Repository.
var _ acquisition.Repository = (*AcquisitionRepo)(nil)

// AcquisitionRepo implements acquisition.Repository.
type AcquisitionRepo struct {
	*BaseDocumentRepo[*acquisition.Document]
}

// NewAcquisitionRepo creates a new acquisition repository.
func NewAcquisitionRepo(txm *postgres.TxManager) *AcquisitionRepo {
	return &AcquisitionRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txm,
			acquisitionsTable,
			postgres.ExtractDBColumns[acquisition.Document](),
			func() *acquisition.Document { return &acquisition.Document{} },
		),
	}
}

// GetLines retrieves lines for an acquisition.
func (r *AcquisitionRepo) GetLines(ctx context.Context, docID id.ID) ([]acquisition.Line, error) {
	q := r.Builder().
		Select(
			"line_id", "line_no", "material_id",
			"gross_quantity", "impurity_percent", "unit_price", "amount", "visibility",
		).
		From(acquisitionLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []acquisition.Line
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines saves lines for an acquisition (delete existing + insert new).
func (r *AcquisitionRepo) SaveLines(ctx context.Context, docID id.ID, lines []acquisition.Line) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + acquisitionLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(acquisitionLinesTable).
		Columns(
			"line_id", "document_id", "line_no", "material_id",
			"gross_quantity", "impurity_percent", "unit_price", "amount", "visibility",
		)

	for _, line := range lines {
		q = q.Values(
			line.LineID, docID, line.LineNo, line.MaterialID,
			line.GrossQuantity, line.ImpurityPercent, line.UnitPrice, line.Amount, line.Visibility,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// DeleteLines removes all lines for an acquisition.
func (r *AcquisitionRepo) DeleteLines(ctx context.Context, docID id.ID) error {
	deleteSQL := "DELETE FROM " + acquisitionLinesTable + " WHERE document_id = $1"
	if _, err := r.querier(ctx).Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete lines: %w", err)
	}
	return nil
}

// List retrieves acquisitions with filtering.
func (r *AcquisitionRepo) List(ctx context.Context, tenantID id.ID, filter acquisition.ListFilter) (domain.ListResult[*acquisition.Document], error) {
	result := domain.ListResult[*acquisition.Document]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect().
		Where(squirrel.Eq{"tenant_id": tenantID})

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.SupplierID != nil {
		q = q.Where(squirrel.Eq{"supplier_id": *filter.SupplierID})
	}

	if filter.ContractID != nil {
		q = q.Where(squirrel.Eq{"contract_id": *filter.ContractID})
	}

	if filter.PaymentStatus != nil {
		q = q.Where(squirrel.Eq{"payment_status": *filter.PaymentStatus})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": searchPattern},
			squirrel.ILike{"receipt_number": searchPattern},
		})
	}

	countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("select: %w", err)
	}

	return result, nil
}
