package catalog

import (
	"net/url"

	"github.com/JaimeStill/menucatch/pkg/query"
	"github.com/JaimeStill/menucatch/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "foods", "f").
	Project("id", "ID").
	Project("category", "Category").
	Project("name", "Name").
	Project("position", "Position").
	Project("serving_size", "ServingSize").
	Project("serving_unit", "ServingUnit").
	Project("energy_kcal", "Energy").
	Project("carbohydrate_g", "Carbohydrate").
	Project("protein_g", "Protein").
	Project("fat_g", "Fat").
	Project("sugars_g", "Sugars").
	Project("caffeine_mg", "Caffeine").
	Project("sodium_mg", "Sodium")

var defaultSort = []query.SortField{
	{Field: "Category"},
	{Field: "Position"},
	{Field: "Name"},
}

// Filters contains optional filtering criteria for food queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	Category *string `json:"category,omitempty"`
	Name     *string `json:"name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Category", f.Category).
		WhereEquals("Name", f.Name)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	return f
}

func scanFood(s repository.Scanner) (Food, error) {
	var f Food
	err := s.Scan(
		&f.ID,
		&f.Category,
		&f.Name,
		&f.Position,
		&f.ServingSize,
		&f.ServingUnit,
		&f.Energy,
		&f.Carbohydrate,
		&f.Protein,
		&f.Fat,
		&f.Sugars,
		&f.Caffeine,
		&f.Sodium,
	)
	return f, err
}

func scanCategory(s repository.Scanner) (Category, error) {
	var c Category
	err := s.Scan(&c.Name, &c.Foods)
	return c, err
}

type entry struct {
	category string
	name     *string
}

func scanEntry(s repository.Scanner) (entry, error) {
	var e entry
	err := s.Scan(&e.category, &e.name)
	return e, err
}
