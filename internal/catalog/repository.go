package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/menucatch/pkg/pagination"
	"github.com/JaimeStill/menucatch/pkg/query"
	"github.com/JaimeStill/menucatch/pkg/repository"
)

const namesQuery = `
	SELECT c.name, f.name
	FROM public.food_categories c
	LEFT JOIN public.foods f ON f.category = c.name
	ORDER BY c.position, c.name, f.position, f.name`

const categoriesQuery = `
	SELECT c.name, COUNT(f.id)
	FROM public.food_categories c
	LEFT JOIN public.foods f ON f.category = c.name
	GROUP BY c.name, c.position
	ORDER BY c.position, c.name`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a catalog repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "catalog"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Names(ctx context.Context) (map[string][]string, error) {
	entries, err := repository.QueryMany(ctx, r.db, namesQuery, nil, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query catalog names: %w", repository.MapError(err, ErrNotFound))
	}

	names := make(map[string][]string)
	total := 0
	for _, e := range entries {
		if _, ok := names[e.category]; !ok {
			names[e.category] = []string{}
		}
		if e.name != nil {
			names[e.category] = append(names[e.category], *e.name)
			total++
		}
	}

	r.logger.Info(
		"catalog names loaded",
		"categories", len(names),
		"foods", total,
	)

	return names, nil
}

func (r *repo) Lookup(ctx context.Context, category, name string) (*Food, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("Category", category).
		WhereEquals("Name", name).
		BuildSingleOrNull()

	f, err := repository.QueryOne(ctx, r.db, q, args, scanFood)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound)
	}
	return &f, nil
}

func (r *repo) Categories(ctx context.Context) ([]Category, error) {
	categories, err := repository.QueryMany(ctx, r.db, categoriesQuery, nil, scanCategory)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", repository.MapError(err, ErrNotFound))
	}
	return categories, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Food], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereSearch(page.Search, "Name", "Category")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.QueryCount(ctx, r.db, countSQL, countArgs)
	if err != nil {
		return nil, fmt.Errorf("count foods: %w", repository.MapError(err, ErrNotFound))
	}

	pageSQL, pageArgs := qb.BuildPage(page.PageSize, page.Offset())
	foods, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanFood)
	if err != nil {
		return nil, fmt.Errorf("query foods: %w", repository.MapError(err, ErrNotFound))
	}

	result := pagination.NewPageResult(foods, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Food, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	f, err := repository.QueryOne(ctx, r.db, q, args, scanFood)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound)
	}
	return &f, nil
}
