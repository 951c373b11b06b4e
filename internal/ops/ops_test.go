package ops

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkyawt/nutrilog/internal/catalog"
	"github.com/mkyawt/nutrilog/internal/db"
	"github.com/mkyawt/nutrilog/internal/profile"
	"github.com/mkyawt/nutrilog/internal/recommend"
)

const sampleCSV = `id,name,category,calories,protein,fat,carbs,fiber,sugar
1,Apple,Fruits,52,0.3,0.2,14,2.4,10
2,Banana,Fruits,89,1.1,0.3,23,2.6,12
3,Chicken Breast,Proteins,165,31,3.6,0,0,0
4,Chicken Thigh,Proteins,209,26,10.9,0,0,0
5,White Rice,Grains,130,2.7,0.3,28,0.4,0.1
6,Salmon,Proteins,208,20,13,0,0,0
`

func floatPtr(f float64) *float64 {
	return &f
}

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "food_catalog.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	cat, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("catalog.Load failed: %v", err)
	}
	return cat
}

func newTestStore(t *testing.T) *profile.Store {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	users, err := profile.Open(database)
	if err != nil {
		t.Fatalf("profile.Open failed: %v", err)
	}
	return users
}

func newTestRecommender(t *testing.T, cat *catalog.Catalog) *recommend.Recommender {
	t.Helper()
	return recommend.New(cat, rand.NewSource(1))
}

func createUser(t *testing.T, users *profile.Store, userID string) {
	t.Helper()
	_, err := users.Create(userID, profile.Metrics{
		Name:          "Test User",
		Age:           30,
		Weight:        70,
		Height:        175,
		Gender:        "male",
		ActivityLevel: "moderate",
		Goal:          "maintain",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
}
