// Package catalog implements the reference nutrition catalog: the canonical
// food records resolved fragments are matched against, grouped by category.
// The catalog is read-only at runtime; its contents are managed by migrations.
package catalog

import "github.com/google/uuid"

// Food is a canonical catalog record. Nutrient values are per serving and
// nil when the catalog has no measurement.
type Food struct {
	ID           uuid.UUID `json:"id"`
	Category     string    `json:"category"`
	Name         string    `json:"name"`
	Position     int       `json:"position"`
	ServingSize  *float64  `json:"serving_size"`
	ServingUnit  string    `json:"serving_unit"`
	Energy       *float64  `json:"energy_kcal"`
	Carbohydrate *float64  `json:"carbohydrate_g"`
	Protein      *float64  `json:"protein_g"`
	Fat          *float64  `json:"fat_g"`
	Sugars       *float64  `json:"sugars_g"`
	Caffeine     *float64  `json:"caffeine_mg"`
	Sodium       *float64  `json:"sodium_mg"`
}

// Category summarizes one food category.
type Category struct {
	Name  string `json:"name"`
	Foods int    `json:"foods"`
}
