package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/mkyawt/nutrilog/internal/errors"
	"github.com/mkyawt/nutrilog/internal/food"
)

// canonicalColumns is the header written on every save, in order.
var canonicalColumns = []string{
	"id", "name", "category",
	"calories", "protein", "fat", "carbs", "fiber", "sugar",
}

// loadCSV reads the whole catalog file into records, preserving row order.
// The returned column set reflects the header actually present in the
// source, which decides feature-matrix availability.
func loadCSV(path string) ([]food.Record, map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.NewNotFound("catalog", path)
		}
		return nil, nil, errors.NewInternal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows; missing cells default

	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, errors.NewInternal(fmt.Errorf("parse catalog %s: %w", path, err))
	}
	if len(rows) == 0 {
		return nil, map[string]bool{}, nil
	}

	header := rows[0]
	index := make(map[string]int, len(header))
	columns := make(map[string]bool, len(header))
	for i, col := range header {
		index[col] = i
		columns[col] = true
	}

	records := make([]food.Record, 0, len(rows)-1)
	for rowNum, row := range rows[1:] {
		cell := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		rec := food.Record{
			Name:     cell("name"),
			Category: cell("category"),
		}
		if rec.Category == "" {
			rec.Category = food.DefaultCategory
		}

		id, err := strconv.Atoi(cell("id"))
		if err != nil {
			id = rowNum + 1 // sources without ids get row-order ids
		}
		rec.ID = id

		rec.Calories = parseFloat(cell("calories"))
		rec.Protein = parseFloat(cell("protein"))
		rec.Fat = parseFloat(cell("fat"))
		rec.Carbs = parseFloat(cell("carbs"))
		rec.Fiber = parseFloat(cell("fiber"))
		rec.Sugar = parseFloat(cell("sugar"))

		records = append(records, rec)
	}

	return records, columns, nil
}

// saveCSV rewrites the whole catalog file with the canonical column set.
func saveCSV(path string, records []food.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewInternal(err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(canonicalColumns); err != nil {
		f.Close()
		return errors.NewInternal(err)
	}
	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.ID),
			rec.Name,
			rec.Category,
			formatFloat(rec.Calories),
			formatFloat(rec.Protein),
			formatFloat(rec.Fat),
			formatFloat(rec.Carbs),
			formatFloat(rec.Fiber),
			formatFloat(rec.Sugar),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return errors.NewInternal(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return errors.NewInternal(err)
	}

	if err := f.Close(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// fullColumns returns the canonical column set, used after a save has
// normalized the source schema.
func fullColumns() map[string]bool {
	columns := make(map[string]bool, len(canonicalColumns))
	for _, col := range canonicalColumns {
		columns[col] = true
	}
	return columns
}

// parseFloat reads a nutrient cell; blank or malformed cells default to 0,
// matching the original source's fillna(0) handling.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
