// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package formula

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/formulary/internal/platform/apperr"
	"github.com/taibuivan/formulary/internal/platform/database/schema"
	"github.com/taibuivan/formulary/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on the formulary.formula table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	selectColumns = strings.Join(schema.Formula.Columns(), ", ")
	writable      = schema.Formula.Writable()
)

func (repository *PostgresRepository) List(context context.Context) ([]Row, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC, %s DESC`,
		selectColumns, schema.Formula.Table, schema.Formula.CreatedAt, schema.Formula.ID)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_formulas")
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_formulas")
	}

	result := make([]Row, len(maps))
	for i, m := range maps {
		result[i] = Row(m)
	}
	return result, nil
}

func (repository *PostgresRepository) Get(context context.Context, id int64) (Row, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.Formula.Table, schema.Formula.ID)

	return repository.queryRow(context, "get_formula", query, id)
}

func (repository *PostgresRepository) Insert(context context.Context, row Row) (Row, error) {
	columns, values, err := splitRow(row)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, apperr.ValidationError("Nothing to insert")
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
		schema.Formula.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "), selectColumns)

	return repository.queryRow(context, "insert_formula", query, values...)
}

func (repository *PostgresRepository) Update(context context.Context, id int64, row Row) (Row, error) {
	columns, values, err := splitRow(row)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return repository.Get(context, id)
	}

	assignments := make([]string, len(columns))
	for i, column := range columns {
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+1)
	}

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $%d RETURNING %s`,
		schema.Formula.Table, strings.Join(assignments, ", "), schema.Formula.ID, len(columns)+1, selectColumns)

	return repository.queryRow(context, "update_formula", query, append(values, id)...)
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Formula.Table, schema.Formula.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_formula")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Formula")
	}
	return nil
}

func (repository *PostgresRepository) ImageURL(context context.Context, id int64) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.Formula.ImageURL, schema.Formula.Table, schema.Formula.ID)

	var imageURL *string
	if err := repository.db.QueryRow(context, query, id).Scan(&imageURL); err != nil {
		return "", wrapFormula(err, "get_formula_image")
	}

	if imageURL == nil {
		return "", nil
	}
	return *imageURL, nil
}

func (repository *PostgresRepository) queryRow(context context.Context, action, query string, args ...any) (Row, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, wrapFormula(err, action)
	}
	return Row(m), nil
}

// splitRow orders the row's columns and rejects any column a client may not write.
func splitRow(row Row) ([]string, []any, error) {
	columns := make([]string, 0, len(row))
	for column := range row {
		if !slices.Contains(writable, column) {
			return nil, nil, apperr.ValidationError(fmt.Sprintf("Column %q is not writable", column))
		}
		columns = append(columns, column)
	}
	slices.Sort(columns)

	values := make([]any, len(columns))
	for i, column := range columns {
		values[i] = row[column]
	}
	return columns, values, nil
}

func wrapFormula(err error, action string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Formula")
	}
	return dberr.Wrap(err, action)
}
