package food

import "math"

// FeatureColumns are the nutrient dimensions used for similarity, in
// vector order. Sugar is deliberately excluded from the feature space.
var FeatureColumns = []string{"calories", "protein", "fat", "carbs", "fiber"}

// FeatureMatrix holds the standardized nutritional feature vectors and
// the full pairwise cosine-similarity matrix for a catalog snapshot.
// A FeatureMatrix is immutable after build; catalog mutations build a
// fresh one and swap it in.
type FeatureMatrix struct {
	sim [][]float64
}

// BuildFeatureMatrix computes the similarity matrix for the given records.
// columns is the set of column names present in the catalog source; when
// any required feature column is missing from the source schema the matrix
// is unavailable and nil is returned (not an error; recommenders fall
// back to category or random sampling).
func BuildFeatureMatrix(records []Record, columns map[string]bool) *FeatureMatrix {
	for _, col := range FeatureColumns {
		if !columns[col] {
			return nil
		}
	}
	if len(records) == 0 {
		return &FeatureMatrix{sim: [][]float64{}}
	}

	scaled := standardize(featureVectors(records))

	n := len(scaled)
	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s := cosine(scaled[i], scaled[j])
			sim[i][j] = s
			sim[j][i] = s
		}
	}

	return &FeatureMatrix{sim: sim}
}

// Size returns the side length of the matrix.
func (m *FeatureMatrix) Size() int {
	return len(m.sim)
}

// Similarity returns the i-th row of the matrix: the similarity of record
// i to every record in catalog row order. Values are in [-1, 1]. The
// second return is false when i is out of catalog bounds.
func (m *FeatureMatrix) Similarity(i int) ([]float64, bool) {
	if i < 0 || i >= len(m.sim) {
		return nil, false
	}
	return m.sim[i], true
}

// featureVectors extracts the raw 5-dimensional nutrient vector per record.
func featureVectors(records []Record) [][]float64 {
	vecs := make([][]float64, len(records))
	for i, r := range records {
		vecs[i] = []float64{r.Calories, r.Protein, r.Fat, r.Carbs, r.Fiber}
	}
	return vecs
}

// standardize centers and scales each dimension independently (subtract
// column mean, divide by column standard deviation). A zero-variance
// column contributes a constant 0 after centering.
func standardize(vecs [][]float64) [][]float64 {
	n := len(vecs)
	dims := len(vecs[0])

	means := make([]float64, dims)
	for _, v := range vecs {
		for d, x := range v {
			means[d] += x
		}
	}
	for d := range means {
		means[d] /= float64(n)
	}

	stds := make([]float64, dims)
	for _, v := range vecs {
		for d, x := range v {
			diff := x - means[d]
			stds[d] += diff * diff
		}
	}
	for d := range stds {
		stds[d] = math.Sqrt(stds[d] / float64(n))
	}

	scaled := make([][]float64, n)
	for i, v := range vecs {
		scaled[i] = make([]float64, dims)
		for d, x := range v {
			if stds[d] == 0 {
				scaled[i][d] = 0
				continue
			}
			scaled[i][d] = (x - means[d]) / stds[d]
		}
	}
	return scaled
}

// cosine computes the cosine similarity between two vectors.
// A zero vector has similarity 0 against everything, including itself.
func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for d := range a {
		dot += a[d] * b[d]
		normA += a[d] * a[d]
		normB += b[d] * b[d]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
