package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weihsiu/card-reward-advisor/internal/model"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// List returns the vocabulary ordered for display: 國內 group first, then
// 國外, each by sort_order.
func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, parent_group, sort_order, created_at
		FROM categories ORDER BY parent_group, sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var cats []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.ParentGroup, &cat.SortOrder, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, cat)
	}
	return cats, rows.Err()
}

// Insert appends the category at the end of its group.
func (r *CategoryRepository) Insert(ctx context.Context, cat *model.Category) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO categories (name, parent_group, sort_order)
		VALUES ($1, $2, (SELECT COALESCE(MAX(sort_order), 0) + 1 FROM categories WHERE parent_group = $2))
		RETURNING id, sort_order, created_at`,
		cat.Name, cat.ParentGroup,
	).Scan(&cat.ID, &cat.SortOrder, &cat.CreatedAt)
}

func (r *CategoryRepository) Update(ctx context.Context, cat *model.Category) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE categories SET name = $1, parent_group = $2, sort_order = $3 WHERE id = $4`,
		cat.Name, cat.ParentGroup, cat.SortOrder, cat.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
