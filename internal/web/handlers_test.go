package web

import (
	"encoding/json"
	"io/fs"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkyawt/nutrilog/internal/assistant"
	"github.com/mkyawt/nutrilog/internal/catalog"
	"github.com/mkyawt/nutrilog/internal/config"
	"github.com/mkyawt/nutrilog/internal/db"
	"github.com/mkyawt/nutrilog/internal/profile"
	"github.com/mkyawt/nutrilog/internal/recommend"
)

const testCSV = `id,name,category,calories,protein,fat,carbs,fiber,sugar
1,Apple,Fruits,52,0.3,0.2,14,2.4,10
2,Banana,Fruits,89,1.1,0.3,23,2.6,12
3,Chicken Breast,Proteins,165,31,3.6,0,0,0
4,White Rice,Grains,130,2.7,0.3,28,0.4,0.1
`

func setupTest(t *testing.T) *Handlers {
	t.Helper()

	csvPath := filepath.Join(t.TempDir(), "food_catalog.csv")
	if err := os.WriteFile(csvPath, []byte(testCSV), 0600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	cat, err := catalog.Load(csvPath)
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}

	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	users, err := profile.Open(database)
	if err != nil {
		t.Fatalf("profile.Open: %v", err)
	}

	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		t.Fatalf("template sub-FS: %v", err)
	}
	rec := recommend.New(cat, rand.NewSource(1))

	return &Handlers{
		catalog:   cat,
		users:     users,
		rec:       rec,
		assistant: assistant.New(cat, users, rec),
		cfg:       config.DefaultConfig(),
		renderer:  NewRenderer(templateSub, "test"),
	}
}

func seedProfile(t *testing.T, h *Handlers, userID string) {
	t.Helper()
	_, err := h.users.Create(userID, profile.Metrics{
		Name: "Alex", Age: 30, Weight: 70, Height: 175,
		Gender: "male", ActivityLevel: "moderate", Goal: "maintain",
	})
	if err != nil {
		t.Fatalf("seed profile: %v", err)
	}
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("unmarshal response: %v\nbody: %s", err, rec.Body.String())
	}
}

// --- JSON API ---

func TestAPISearch(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/api/search?q=banana", nil)
	rec := httptest.NewRecorder()
	h.HandleAPISearch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out struct {
		Count int `json:"count"`
	}
	decodeJSON(t, rec, &out)
	if out.Count != 1 {
		t.Errorf("count = %d, want 1", out.Count)
	}
}

func TestAPIRecommendMissingName(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/api/recommend", nil)
	rec := httptest.NewRecorder()
	h.HandleAPIRecommend(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "INVALID_REQUEST") {
		t.Errorf("body = %s, want INVALID_REQUEST code", rec.Body.String())
	}
}

func TestAPILogFoodAndSummary(t *testing.T) {
	h := setupTest(t)
	seedProfile(t, h, "u1")

	body := `{"user_id":"u1","food_name":"banana","quantity":2,"date":"2025-03-01"}`
	req := httptest.NewRequest("POST", "/api/log_food", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleAPILogFood(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("log_food status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}
	var logged struct {
		Food string `json:"food"`
	}
	decodeJSON(t, rec, &logged)
	if logged.Food != "Banana" {
		t.Errorf("food = %q, want canonical Banana", logged.Food)
	}

	req = httptest.NewRequest("GET", "/api/daily_summary?user_id=u1&date=2025-03-01", nil)
	rec = httptest.NewRecorder()
	h.HandleAPISummary(rec, req)

	var summary struct {
		Totals struct {
			Calories float64 `json:"calories"`
		} `json:"totals"`
	}
	decodeJSON(t, rec, &summary)
	if summary.Totals.Calories != 178 {
		t.Errorf("calories = %g, want 178", summary.Totals.Calories)
	}
}

func TestAPILogFoodNotFoundMapsTo404(t *testing.T) {
	h := setupTest(t)
	seedProfile(t, h, "u1")

	body := `{"user_id":"u1","food_name":"plutonium","quantity":1}`
	req := httptest.NewRequest("POST", "/api/log_food", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleAPILogFood(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAPILogFoodBadQuantityMapsTo422(t *testing.T) {
	h := setupTest(t)
	seedProfile(t, h, "u1")

	body := `{"user_id":"u1","food_name":"apple","quantity":0}`
	req := httptest.NewRequest("POST", "/api/log_food", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleAPILogFood(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestAPIAddFoodCreated(t *testing.T) {
	h := setupTest(t)

	body := `{"name":"Greek Yogurt","category":"Dairy","calories":59,"protein":10}`
	req := httptest.NewRequest("POST", "/api/add_food", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleAPIAddFood(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201\nbody: %s", rec.Code, rec.Body.String())
	}
}

func TestAPIProfileRoundTrip(t *testing.T) {
	h := setupTest(t)

	body := `{"user_id":"u1","name":"Alex","age":30,"weight":70,"height":175,"gender":"male","activity_level":"moderate","goal":"lose"}`
	req := httptest.NewRequest("POST", "/api/profile", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleAPICreateProfile(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201\nbody: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/profile?user_id=u1", nil)
	rec = httptest.NewRecorder()
	h.HandleAPIGetProfile(rec, req)

	var out struct {
		Profile struct {
			Name string `json:"name"`
		} `json:"profile"`
		BMI float64 `json:"bmi"`
	}
	decodeJSON(t, rec, &out)
	if out.Profile.Name != "Alex" {
		t.Errorf("name = %q, want Alex", out.Profile.Name)
	}
	if out.BMI <= 0 {
		t.Errorf("bmi = %g, want > 0", out.BMI)
	}
}

func TestAPILoginDerivesStableID(t *testing.T) {
	h := setupTest(t)

	var ids [2]string
	for i := range ids {
		req := httptest.NewRequest("POST", "/api/login", strings.NewReader(`{"username":"alex"}`))
		rec := httptest.NewRecorder()
		h.HandleAPILogin(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var out struct {
			UserID string `json:"user_id"`
		}
		decodeJSON(t, rec, &out)
		ids[i] = out.UserID
	}
	if ids[0] != ids[1] {
		t.Errorf("ids differ: %q vs %q", ids[0], ids[1])
	}
	if !strings.HasPrefix(ids[0], "user_") {
		t.Errorf("id = %q, want user_ prefix", ids[0])
	}
}

func TestAPIHealth(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	rec := httptest.NewRecorder()
	h.HandleAPIHealth(rec, req)

	var out struct {
		Status    string `json:"status"`
		FoodCount int    `json:"food_count"`
	}
	decodeJSON(t, rec, &out)
	if out.Status != "ok" || out.FoodCount != 4 {
		t.Errorf("health = %+v, want ok with 4 foods", out)
	}
}

// --- Pages ---

func TestDashboardRedirectsWithoutSession(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	rec := httptest.NewRecorder()
	h.HandleDashboard(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}

func TestDashboardRendersReport(t *testing.T) {
	h := setupTest(t)
	seedProfile(t, h, "u1")

	req := httptest.NewRequest("GET", "/dashboard?date=2025-03-01", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "u1"})
	rec := httptest.NewRecorder()
	h.HandleDashboard(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Daily report for 2025-03-01") {
		t.Errorf("body missing rendered day report")
	}
}

func TestFoodsPageLists(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/foods", nil)
	rec := httptest.NewRecorder()
	h.HandleFoods(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Chicken Breast") {
		t.Errorf("body missing catalog rows")
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	h := setupTest(t)

	form := strings.NewReader("username=alex")
	req := httptest.NewRequest("POST", "/login", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	cookies := rec.Result().Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == sessionCookie && strings.HasPrefix(c.Value, "user_") {
			found = true
		}
	}
	if !found {
		t.Error("session cookie not set")
	}
}
