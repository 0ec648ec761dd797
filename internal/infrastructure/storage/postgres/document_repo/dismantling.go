package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"yardbook/internal/core/id"
	"yardbook/internal/domain"
	"yardbook/internal/domain/documents/dismantling"
	"yardbook/internal/infrastructure/storage/postgres"
)

const (
	dismantlingsTable       = "doc_dismantlings"
	dismantlingOutputsTable = "doc_dismantling_outputs"
)

// Compile-time check that DismantlingRepo implements dismantling.Repository.
var _ dismantling.Repository = (*DismantlingRepo)(nil)

// DismantlingRepo implements dismantling.Repository.
type DismantlingRepo struct {
	*BaseDocumentRepo[*dismantling.Document]
}

// NewDismantlingRepo creates a new dismantling repository.
func NewDismantlingRepo(txm *postgres.TxManager) *DismantlingRepo {
	return &DismantlingRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txm,
			dismantlingsTable,
			postgres.ExtractDBColumns[dismantling.Document](),
			func() *dismantling.Document { return &dismantling.Document{} },
		),
	}
}

// GetOutputs retrieves outputs for a dismantling.
func (r *DismantlingRepo) GetOutputs(ctx context.Context, docID id.ID) ([]dismantling.Output, error) {
	q := r.Builder().
		Select("output_id", "line_no", "material_id", "quantity").
		From(dismantlingOutputsTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var outputs []dismantling.Output
	if err := pgxscan.Select(ctx, r.querier(ctx), &outputs, sql, args...); err != nil {
		return nil, fmt.Errorf("get outputs: %w", err)
	}

	return outputs, nil
}

// SaveOutputs saves outputs for a dismantling (delete existing + insert new).
func (r *DismantlingRepo) SaveOutputs(ctx context.Context, docID id.ID, outputs []dismantling.Output) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + dismantlingOutputsTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing outputs: %w", err)
	}

	if len(outputs) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(dismantlingOutputsTable).
		Columns("output_id", "document_id", "line_no", "material_id", "quantity")

	for _, out := range outputs {
		q = q.Values(out.OutputID, docID, out.LineNo, out.MaterialID, out.Quantity)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert outputs: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert outputs: %w", err)
	}

	return nil
}

// DeleteOutputs removes all outputs for a dismantling.
func (r *DismantlingRepo) DeleteOutputs(ctx context.Context, docID id.ID) error {
	deleteSQL := "DELETE FROM " + dismantlingOutputsTable + " WHERE document_id = $1"
	if _, err := r.querier(ctx).Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete outputs: %w", err)
	}
	return nil
}

// List retrieves dismantlings with filtering.
func (r *DismantlingRepo) List(ctx context.Context, tenantID id.ID, filter dismantling.ListFilter) (domain.ListResult[*dismantling.Document], error) {
	result := domain.ListResult[*dismantling.Document]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect().
		Where(squirrel.Eq{"tenant_id": tenantID})

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.SourceMaterialID != nil {
		q = q.Where(squirrel.Eq{"source_material_id": *filter.SourceMaterialID})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"number": "%" + filter.Search + "%"})
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
