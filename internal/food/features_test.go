package food

import (
	"math"
	"testing"
)

func allColumns() map[string]bool {
	return map[string]bool{
		"id": true, "name": true, "category": true,
		"calories": true, "protein": true, "fat": true,
		"carbs": true, "fiber": true, "sugar": true,
	}
}

func sampleRecords() []Record {
	return []Record{
		{ID: 1, Name: "Apple", Category: "Fruits", Nutrients: Nutrients{Calories: 52, Protein: 0.3, Fat: 0.2, Carbs: 14, Fiber: 2.4, Sugar: 10}},
		{ID: 2, Name: "Banana", Category: "Fruits", Nutrients: Nutrients{Calories: 89, Protein: 1.1, Fat: 0.3, Carbs: 23, Fiber: 2.6, Sugar: 12}},
		{ID: 3, Name: "Chicken Breast", Category: "Proteins", Nutrients: Nutrients{Calories: 165, Protein: 31, Fat: 3.6, Carbs: 0, Fiber: 0}},
		{ID: 4, Name: "Salmon", Category: "Proteins", Nutrients: Nutrients{Calories: 208, Protein: 20, Fat: 13, Carbs: 0, Fiber: 0}},
		{ID: 5, Name: "White Rice", Category: "Grains", Nutrients: Nutrients{Calories: 130, Protein: 2.7, Fat: 0.3, Carbs: 28, Fiber: 0.4}},
	}
}

func TestBuildFeatureMatrixShape(t *testing.T) {
	records := sampleRecords()
	m := BuildFeatureMatrix(records, allColumns())
	if m == nil {
		t.Fatal("matrix should be available with all columns present")
	}
	if m.Size() != len(records) {
		t.Fatalf("Size = %d, want %d", m.Size(), len(records))
	}
	for i := 0; i < m.Size(); i++ {
		row, ok := m.Similarity(i)
		if !ok {
			t.Fatalf("Similarity(%d) out of bounds", i)
		}
		if len(row) != len(records) {
			t.Fatalf("row %d length = %d, want %d", i, len(row), len(records))
		}
	}
}

func TestSelfSimilarityIsRowMaximum(t *testing.T) {
	records := sampleRecords()
	m := BuildFeatureMatrix(records, allColumns())

	for i := 0; i < m.Size(); i++ {
		row, _ := m.Similarity(i)
		for j, s := range row {
			if s > row[i]+1e-12 {
				t.Errorf("row %d: sim[%d]=%f exceeds self-similarity %f", i, j, s, row[i])
			}
		}
		if math.Abs(row[i]-1) > 1e-9 {
			t.Errorf("row %d: self-similarity = %f, want 1", i, row[i])
		}
	}
}

func TestMatrixIsSymmetric(t *testing.T) {
	m := BuildFeatureMatrix(sampleRecords(), allColumns())
	for i := 0; i < m.Size(); i++ {
		rowI, _ := m.Similarity(i)
		for j := 0; j < m.Size(); j++ {
			rowJ, _ := m.Similarity(j)
			if math.Abs(rowI[j]-rowJ[i]) > 1e-12 {
				t.Fatalf("sim[%d][%d]=%f != sim[%d][%d]=%f", i, j, rowI[j], j, i, rowJ[i])
			}
		}
	}
}

func TestSimilarityRange(t *testing.T) {
	m := BuildFeatureMatrix(sampleRecords(), allColumns())
	for i := 0; i < m.Size(); i++ {
		row, _ := m.Similarity(i)
		for j, s := range row {
			if s < -1-1e-9 || s > 1+1e-9 {
				t.Errorf("sim[%d][%d] = %f out of [-1, 1]", i, j, s)
			}
		}
	}
}

func TestNutritionallyCloserFoodRanksHigher(t *testing.T) {
	records := sampleRecords()
	m := BuildFeatureMatrix(records, allColumns())

	// Chicken (row 2) should be closer to salmon (row 3) than to apple (row 0).
	row, _ := m.Similarity(2)
	if row[3] <= row[0] {
		t.Errorf("sim(chicken, salmon)=%f should exceed sim(chicken, apple)=%f", row[3], row[0])
	}
}

func TestMissingColumnMakesMatrixUnavailable(t *testing.T) {
	cols := allColumns()
	delete(cols, "fiber")
	if m := BuildFeatureMatrix(sampleRecords(), cols); m != nil {
		t.Error("matrix should be unavailable when a feature column is missing")
	}
}

func TestZeroVarianceColumnDoesNotProduceNaN(t *testing.T) {
	records := []Record{
		{ID: 1, Name: "A", Nutrients: Nutrients{Calories: 100, Protein: 5, Fat: 1, Carbs: 10, Fiber: 2}},
		{ID: 2, Name: "B", Nutrients: Nutrients{Calories: 100, Protein: 9, Fat: 2, Carbs: 20, Fiber: 1}},
	}
	m := BuildFeatureMatrix(records, allColumns())
	if m == nil {
		t.Fatal("matrix should be available")
	}
	for i := 0; i < m.Size(); i++ {
		row, _ := m.Similarity(i)
		for j, s := range row {
			if math.IsNaN(s) || math.IsInf(s, 0) {
				t.Errorf("sim[%d][%d] = %f, want finite", i, j, s)
			}
		}
	}
}

func TestIdenticalRecordsAreDegenerate(t *testing.T) {
	// All columns constant: every standardized vector is zero, so cosine
	// is defined as 0 rather than NaN.
	records := []Record{
		{ID: 1, Name: "A", Nutrients: Nutrients{Calories: 100, Protein: 5, Fat: 1, Carbs: 10, Fiber: 2}},
		{ID: 2, Name: "B", Nutrients: Nutrients{Calories: 100, Protein: 5, Fat: 1, Carbs: 10, Fiber: 2}},
	}
	m := BuildFeatureMatrix(records, allColumns())
	row, _ := m.Similarity(0)
	if row[0] != 0 || row[1] != 0 {
		t.Errorf("degenerate rows should be all zero, got %v", row)
	}
}

func TestSimilarityOutOfBounds(t *testing.T) {
	m := BuildFeatureMatrix(sampleRecords(), allColumns())
	if _, ok := m.Similarity(-1); ok {
		t.Error("Similarity(-1) should report out of bounds")
	}
	if _, ok := m.Similarity(m.Size()); ok {
		t.Error("Similarity(len) should report out of bounds")
	}
}

func TestEmptyCatalog(t *testing.T) {
	m := BuildFeatureMatrix(nil, allColumns())
	if m == nil {
		t.Fatal("empty catalog with full schema should still be available")
	}
	if m.Size() != 0 {
		t.Errorf("Size = %d, want 0", m.Size())
	}
}

func TestScaleAndAdd(t *testing.T) {
	n := Nutrients{Calories: 52, Protein: 0.3, Fat: 0.2, Carbs: 14, Fiber: 2.4, Sugar: 10}
	doubled := n.Scale(2)
	if doubled.Calories != 104 || doubled.Sugar != 20 {
		t.Errorf("Scale(2) = %+v", doubled)
	}
	sum := n.Add(doubled)
	if math.Abs(sum.Carbs-42) > 1e-9 {
		t.Errorf("Add carbs = %f, want 42", sum.Carbs)
	}
}
