package web

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"

	"github.com/mkyawt/nutrilog/internal/assistant"
	"github.com/mkyawt/nutrilog/internal/catalog"
	"github.com/mkyawt/nutrilog/internal/config"
	"github.com/mkyawt/nutrilog/internal/errors"
	"github.com/mkyawt/nutrilog/internal/ops"
	"github.com/mkyawt/nutrilog/internal/profile"
	"github.com/mkyawt/nutrilog/internal/recommend"
)

// sessionCookie names the cookie holding the logged-in user id. The whole
// login flow is a placeholder: the id is derived from the username and no
// password is checked.
const sessionCookie = "nutrilog_session"

// Handlers contains HTTP route handlers for the web UI and JSON API.
type Handlers struct {
	catalog   *catalog.Catalog
	users     *profile.Store
	rec       *recommend.Recommender
	assistant *assistant.Assistant
	cfg       *config.Config
	renderer  *Renderer
}

// userIDForName derives a stable placeholder user id from a username.
func userIDForName(username string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(username))))
	return fmt.Sprintf("user_%06d", h.Sum32()%1_000_000)
}

// sessionUser extracts the user id from the session cookie, if any.
func sessionUser(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// decodeBody unmarshals a JSON request body into a typed struct.
func decodeBody[T any](r *http.Request) (T, error) {
	var out T
	if err := json.NewDecoder(r.Body).Decode(&out); err != nil {
		return out, errors.NewInvalidRequest("invalid JSON body: " + err.Error())
	}
	return out, nil
}

// Page handlers

// HandleDashboard handles GET /dashboard, today's day report.
func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	userID := sessionUser(r)
	if userID == "" {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	summary, err := ops.DailySummary(h.catalog, h.users, ops.DailySummaryInput{
		UserID: userID,
		Date:   r.URL.Query().Get("date"),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "dashboard", DashboardPageData{
		PageData: PageData{
			Title:   "Dashboard",
			Version: h.renderer.version,
			Nav:     "dashboard",
			UserID:  userID,
		},
		Date:       summary.Date,
		Summary:    summary,
		ReportHTML: renderMarkdown(dayReportMarkdown(summary)),
		HasProfile: summary.Profile != nil,
	})
}

// HandleFoods handles GET /foods, catalog listing with optional search.
func (h *Handlers) HandleFoods(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	data := FoodsPageData{
		PageData: PageData{
			Title:   "Foods",
			Version: h.renderer.version,
			Nav:     "foods",
			UserID:  sessionUser(r),
		},
		Query: query,
	}

	if query == "" {
		out := ops.AllFoods(h.catalog)
		data.Items = out.Items
		data.Count = out.Count
	} else {
		out := ops.Search(h.catalog, ops.SearchInput{Query: query, Limit: ops.MaxSearchLimit})
		data.Items = out.Items
		data.Count = out.Count
	}

	h.renderer.renderPage(w, r, "foods", data)
}

// HandleLoginPage handles GET /login.
func (h *Handlers) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, r, "login", LoginPageData{
		PageData: PageData{Title: "Log in", Version: h.renderer.version},
	})
}

// HandleLogin handles POST /login, form login that sets the session cookie.
func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	if username == "" {
		h.renderer.renderPageStatus(w, r, http.StatusBadRequest, "login", LoginPageData{
			PageData: PageData{Title: "Log in", Version: h.renderer.version},
			Error:    "username is required",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    userIDForName(username),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// HandleLogout handles POST /logout.
func (h *Handlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusFound)
}

// JSON API handlers

// HandleAPILogin handles POST /api/login.
func (h *Handlers) HandleAPILogin(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[struct {
		Username string `json:"username"`
	}](r)
	if err != nil {
		renderJSONError(w, err)
		return
	}
	if strings.TrimSpace(body.Username) == "" {
		renderJSONError(w, errors.NewInvalidRequest("username is required"))
		return
	}
	renderJSON(w, http.StatusOK, map[string]any{"user_id": userIDForName(body.Username)})
}

// HandleAPISearch handles GET /api/search.
func (h *Handlers) HandleAPISearch(w http.ResponseWriter, r *http.Request) {
	out := ops.Search(h.catalog, ops.SearchInput{
		Query: r.URL.Query().Get("q"),
		Limit: parseIntParam(r, "limit", h.cfg.SearchLimit),
	})
	renderJSON(w, http.StatusOK, out)
}

// HandleAPIAllFoods handles GET /api/all_foods.
func (h *Handlers) HandleAPIAllFoods(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, ops.AllFoods(h.catalog))
}

// HandleAPIRecommend handles GET /api/recommend.
func (h *Handlers) HandleAPIRecommend(w http.ResponseWriter, r *http.Request) {
	out, err := ops.Recommend(h.rec, ops.RecommendInput{
		FoodName: r.URL.Query().Get("food_name"),
		TopN:     parseIntParam(r, "top_n", h.cfg.RecommendTopN),
	})
	if err != nil {
		renderJSONError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleAPIAddFood handles POST /api/add_food.
func (h *Handlers) HandleAPIAddFood(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[struct {
		Name     string   `json:"name"`
		Category string   `json:"category"`
		Calories *float64 `json:"calories"`
		Protein  float64  `json:"protein"`
		Fat      float64  `json:"fat"`
		Carbs    float64  `json:"carbs"`
		Fiber    float64  `json:"fiber"`
		Sugar    float64  `json:"sugar"`
	}](r)
	if err != nil {
		renderJSONError(w, err)
		return
	}

	out, err := ops.AddFood(h.catalog, ops.AddFoodInput{
		Name:     body.Name,
		Category: body.Category,
		Calories: body.Calories,
		Protein:  body.Protein,
		Fat:      body.Fat,
		Carbs:    body.Carbs,
		Fiber:    body.Fiber,
		Sugar:    body.Sugar,
	})
	if err != nil {
		renderJSONError(w, err)
		return
	}
	renderJSON(w, http.StatusCreated, out)
}

// HandleAPIClean handles POST /api/clean_database.
func (h *Handlers) HandleAPIClean(w http.ResponseWriter, r *http.Request) {
	out, err := ops.CleanCatalog(h.catalog)
	if err != nil {
		renderJSONError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleAPILogFood handles POST /api/log_food.
func (h *Handlers) HandleAPILogFood(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[struct {
		UserID   string  `json:"user_id"`
		Date     string  `json:"date"`
		FoodName string  `json:"food_name"`
		Quantity float64 `json:"quantity"`
		MealType string  `json:"meal_type"`
	}](r)
	if err != nil {
		renderJSONError(w, err)
		return
	}

	out, err := ops.LogFood(h.catalog, h.users, ops.LogFoodInput{
		UserID:   body.UserID,
		Date:     body.Date,
		FoodName: body.FoodName,
		Quantity: body.Quantity,
		MealType: body.MealType,
	})
	if err != nil {
		renderJSONError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleAPIRemoveFood handles POST /api/remove_food.
func (h *Handlers) HandleAPIRemoveFood(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[struct {
		UserID   string   `json:"user_id"`
		Date     string   `json:"date"`
		FoodName string   `json:"food_name"`
		Quantity *float64 `json:"quantity"`
		EntryID  string   `json:"entry_id"`
	}](r)
	if err != nil {
		renderJSONError(w, err)
		return
	}

	out, err := ops.RemoveFood(h.users, ops.RemoveFoodInput{
		UserID:   body.UserID,
		Date:     body.Date,
		FoodName: body.FoodName,
		Quantity: body.Quantity,
		EntryID:  body.EntryID,
	})
	if err != nil {
		renderJSONError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleAPIClearDate handles POST /api/clear_daily_logs.
func (h *Handlers) HandleAPIClearDate(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[struct {
		UserID string `json:"user_id"`
		Date   string `json:"date"`
	}](r)
	if err != nil {
		renderJSONError(w, err)
		return
	}

	out, err := ops.ClearDate(h.users, ops.ClearDateInput{UserID: body.UserID, Date: body.Date})
	if err != nil {
		renderJSONError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleAPISummary handles GET /api/daily_summary.
func (h *Handlers) HandleAPISummary(w http.ResponseWriter, r *http.Request) {
	out, err := ops.DailySummary(h.catalog, h.users, ops.DailySummaryInput{
		UserID: r.URL.Query().Get("user_id"),
		Date:   r.URL.Query().Get("date"),
	})
	if err != nil {
		renderJSONError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleAPICreateProfile handles POST /api/profile.
func (h *Handlers) HandleAPICreateProfile(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[struct {
		UserID        string  `json:"user_id"`
		Name          string  `json:"name"`
		Age           int     `json:"age"`
		Weight        float64 `json:"weight"`
		Height        float64 `json:"height"`
		Gender        string  `json:"gender"`
		ActivityLevel string  `json:"activity_level"`
		Goal          string  `json:"goal"`
	}](r)
	if err != nil {
		renderJSONError(w, err)
		return
	}

	out, err := ops.CreateProfile(h.users, ops.CreateProfileInput{
		UserID: body.UserID,
		Metrics: profile.Metrics{
			Name:          body.Name,
			Age:           body.Age,
			Weight:        body.Weight,
			Height:        body.Height,
			Gender:        body.Gender,
			ActivityLevel: body.ActivityLevel,
			Goal:          body.Goal,
		},
	})
	if err != nil {
		renderJSONError(w, err)
		return
	}
	renderJSON(w, http.StatusCreated, out)
}

// HandleAPIUpdateProfile handles PATCH /api/profile.
func (h *Handlers) HandleAPIUpdateProfile(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[struct {
		UserID        string   `json:"user_id"`
		Name          *string  `json:"name"`
		Age           *int     `json:"age"`
		Weight        *float64 `json:"weight"`
		Height        *float64 `json:"height"`
		Gender        *string  `json:"gender"`
		ActivityLevel *string  `json:"activity_level"`
		Goal          *string  `json:"goal"`
	}](r)
	if err != nil {
		renderJSONError(w, err)
		return
	}

	out, err := ops.UpdateProfile(h.users, ops.UpdateProfileInput{
		UserID: body.UserID,
		Update: profile.MetricsUpdate{
			Name:          body.Name,
			Age:           body.Age,
			Weight:        body.Weight,
			Height:        body.Height,
			Gender:        body.Gender,
			ActivityLevel: body.ActivityLevel,
			Goal:          body.Goal,
		},
	})
	if err != nil {
		renderJSONError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleAPIGetProfile handles GET /api/profile.
func (h *Handlers) HandleAPIGetProfile(w http.ResponseWriter, r *http.Request) {
	out, err := ops.GetProfile(h.users, r.URL.Query().Get("user_id"))
	if err != nil {
		renderJSONError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleAPICalculate handles POST /api/calculate_nutrition.
func (h *Handlers) HandleAPICalculate(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[struct {
		Age           int     `json:"age"`
		Weight        float64 `json:"weight"`
		Height        float64 `json:"height"`
		Gender        string  `json:"gender"`
		ActivityLevel string  `json:"activity_level"`
		Goal          string  `json:"goal"`
	}](r)
	if err != nil {
		renderJSONError(w, err)
		return
	}

	out, err := ops.Calculate(ops.CalculateInput{
		Age:           body.Age,
		Weight:        body.Weight,
		Height:        body.Height,
		Gender:        body.Gender,
		ActivityLevel: body.ActivityLevel,
		Goal:          body.Goal,
	})
	if err != nil {
		renderJSONError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleAPIChat handles POST /api/chat.
func (h *Handlers) HandleAPIChat(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[struct {
		UserID  string `json:"user_id"`
		Message string `json:"message"`
	}](r)
	if err != nil {
		renderJSONError(w, err)
		return
	}

	userID := body.UserID
	if userID == "" {
		userID = sessionUser(r)
	}

	out, err := ops.Chat(h.assistant, ops.ChatInput{UserID: userID, Message: body.Message})
	if err != nil {
		renderJSONError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleAPIHealth handles GET /api/health.
func (h *Handlers) HandleAPIHealth(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"food_count": h.catalog.Len(),
	})
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
