package ops

import (
	"fmt"

	"github.com/mkyawt/nutrilog/internal/catalog"
)

// CleanCatalogOutput contains the result of the CleanCatalog operation.
type CleanCatalogOutput struct {
	Removed   int    `json:"removed"`
	FoodCount int    `json:"food_count"`
	Message   string `json:"message"`
}

// CleanCatalog drops records with implausible nutrition values and
// renumbers the survivors.
func CleanCatalog(cat *catalog.Catalog) (*CleanCatalogOutput, error) {
	removed, err := cat.Clean()
	if err != nil {
		return nil, err
	}
	return &CleanCatalogOutput{
		Removed:   removed,
		FoodCount: cat.Len(),
		Message:   fmt.Sprintf("Removed %d record(s) with implausible values", removed),
	}, nil
}
