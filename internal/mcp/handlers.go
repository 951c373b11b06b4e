package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mkyawt/nutrilog/internal/assistant"
	"github.com/mkyawt/nutrilog/internal/catalog"
	"github.com/mkyawt/nutrilog/internal/errors"
	"github.com/mkyawt/nutrilog/internal/ops"
	"github.com/mkyawt/nutrilog/internal/profile"
	"github.com/mkyawt/nutrilog/internal/recommend"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	catalog   *catalog.Catalog
	users     *profile.Store
	rec       *recommend.Recommender
	assistant *assistant.Assistant
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(cat *catalog.Catalog, users *profile.Store, rec *recommend.Recommender, a *assistant.Assistant) *Handlers {
	return &Handlers{catalog: cat, users: users, rec: rec, assistant: a}
}

// Request types for each tool

// SearchRequest represents the arguments for food_search.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// RecommendRequest represents the arguments for food_recommend.
type RecommendRequest struct {
	FoodName string `json:"food_name"`
	TopN     int    `json:"top_n,omitempty"`
}

// AddFoodRequest represents the arguments for food_add.
type AddFoodRequest struct {
	Name     string   `json:"name"`
	Category string   `json:"category,omitempty"`
	Calories *float64 `json:"calories,omitempty"`
	Protein  float64  `json:"protein,omitempty"`
	Fat      float64  `json:"fat,omitempty"`
	Carbs    float64  `json:"carbs,omitempty"`
	Fiber    float64  `json:"fiber,omitempty"`
	Sugar    float64  `json:"sugar,omitempty"`
}

// LogFoodRequest represents the arguments for log_food.
type LogFoodRequest struct {
	UserID   string  `json:"user_id"`
	FoodName string  `json:"food_name"`
	Quantity float64 `json:"quantity"`
	Date     string  `json:"date,omitempty"`
	MealType string  `json:"meal_type,omitempty"`
}

// RemoveFoodRequest represents the arguments for log_remove.
type RemoveFoodRequest struct {
	UserID   string   `json:"user_id"`
	Date     string   `json:"date"`
	FoodName string   `json:"food_name,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	EntryID  string   `json:"entry_id,omitempty"`
}

// ClearDateRequest represents the arguments for log_clear.
type ClearDateRequest struct {
	UserID string `json:"user_id"`
	Date   string `json:"date,omitempty"`
}

// SummaryRequest represents the arguments for daily_summary.
type SummaryRequest struct {
	UserID string `json:"user_id"`
	Date   string `json:"date,omitempty"`
}

// CreateProfileRequest represents the arguments for profile_create.
type CreateProfileRequest struct {
	UserID        string  `json:"user_id"`
	Name          string  `json:"name,omitempty"`
	Age           int     `json:"age"`
	Weight        float64 `json:"weight"`
	Height        float64 `json:"height"`
	Gender        string  `json:"gender,omitempty"`
	ActivityLevel string  `json:"activity_level,omitempty"`
	Goal          string  `json:"goal,omitempty"`
}

// UpdateProfileRequest represents the arguments for profile_update.
type UpdateProfileRequest struct {
	UserID        string   `json:"user_id"`
	Name          *string  `json:"name,omitempty"`
	Age           *int     `json:"age,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
	Height        *float64 `json:"height,omitempty"`
	Gender        *string  `json:"gender,omitempty"`
	ActivityLevel *string  `json:"activity_level,omitempty"`
	Goal          *string  `json:"goal,omitempty"`
}

// GetProfileRequest represents the arguments for profile_get.
type GetProfileRequest struct {
	UserID string `json:"user_id"`
}

// CalculateRequest represents the arguments for nutrition_calculate.
type CalculateRequest struct {
	Age           int     `json:"age"`
	Weight        float64 `json:"weight"`
	Height        float64 `json:"height"`
	Gender        string  `json:"gender,omitempty"`
	ActivityLevel string  `json:"activity_level,omitempty"`
	Goal          string  `json:"goal,omitempty"`
}

// ChatRequest represents the arguments for nutrition_chat.
type ChatRequest struct {
	UserID  string `json:"user_id,omitempty"`
	Message string `json:"message"`
}

// Handler implementations

// HandleSearch handles the food_search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result := ops.Search(h.catalog, ops.SearchInput{
		Query: input.Query,
		Limit: input.Limit,
	})
	return successResult(result)
}

// HandleAllFoods handles the food_list tool call.
func (h *Handlers) HandleAllFoods(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(ops.AllFoods(h.catalog))
}

// HandleRecommend handles the food_recommend tool call.
func (h *Handlers) HandleRecommend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RecommendRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Recommend(h.rec, ops.RecommendInput{
		FoodName: input.FoodName,
		TopN:     input.TopN,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleAddFood handles the food_add tool call.
func (h *Handlers) HandleAddFood(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddFoodRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.AddFood(h.catalog, ops.AddFoodInput{
		Name:     input.Name,
		Category: input.Category,
		Calories: input.Calories,
		Protein:  input.Protein,
		Fat:      input.Fat,
		Carbs:    input.Carbs,
		Fiber:    input.Fiber,
		Sugar:    input.Sugar,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleClean handles the catalog_clean tool call.
func (h *Handlers) HandleClean(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.CleanCatalog(h.catalog)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleLogFood handles the log_food tool call.
func (h *Handlers) HandleLogFood(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[LogFoodRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.LogFood(h.catalog, h.users, ops.LogFoodInput{
		UserID:   input.UserID,
		Date:     input.Date,
		FoodName: input.FoodName,
		Quantity: input.Quantity,
		MealType: input.MealType,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleRemoveFood handles the log_remove tool call.
func (h *Handlers) HandleRemoveFood(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RemoveFoodRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.RemoveFood(h.users, ops.RemoveFoodInput{
		UserID:   input.UserID,
		Date:     input.Date,
		FoodName: input.FoodName,
		Quantity: input.Quantity,
		EntryID:  input.EntryID,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleClearDate handles the log_clear tool call.
func (h *Handlers) HandleClearDate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ClearDateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ClearDate(h.users, ops.ClearDateInput{
		UserID: input.UserID,
		Date:   input.Date,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleSummary handles the daily_summary tool call.
func (h *Handlers) HandleSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SummaryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.DailySummary(h.catalog, h.users, ops.DailySummaryInput{
		UserID: input.UserID,
		Date:   input.Date,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleCreateProfile handles the profile_create tool call.
func (h *Handlers) HandleCreateProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CreateProfileRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.CreateProfile(h.users, ops.CreateProfileInput{
		UserID: input.UserID,
		Metrics: profile.Metrics{
			Name:          input.Name,
			Age:           input.Age,
			Weight:        input.Weight,
			Height:        input.Height,
			Gender:        input.Gender,
			ActivityLevel: input.ActivityLevel,
			Goal:          input.Goal,
		},
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleUpdateProfile handles the profile_update tool call.
func (h *Handlers) HandleUpdateProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UpdateProfileRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.UpdateProfile(h.users, ops.UpdateProfileInput{
		UserID: input.UserID,
		Update: profile.MetricsUpdate{
			Name:          input.Name,
			Age:           input.Age,
			Weight:        input.Weight,
			Height:        input.Height,
			Gender:        input.Gender,
			ActivityLevel: input.ActivityLevel,
			Goal:          input.Goal,
		},
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleGetProfile handles the profile_get tool call.
func (h *Handlers) HandleGetProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetProfileRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.GetProfile(h.users, input.UserID)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleCalculate handles the nutrition_calculate tool call.
func (h *Handlers) HandleCalculate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CalculateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Calculate(ops.CalculateInput{
		Age:           input.Age,
		Weight:        input.Weight,
		Height:        input.Height,
		Gender:        input.Gender,
		ActivityLevel: input.ActivityLevel,
		Goal:          input.Goal,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleChat handles the nutrition_chat tool call.
func (h *Handlers) HandleChat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ChatRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Chat(h.assistant, ops.ChatInput{
		UserID:  input.UserID,
		Message: input.Message,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if appErr, ok := err.(*errors.Error); ok {
		errorObj := map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
			"status":  appErr.Status,
		}
		if appErr.Code != errors.ErrInternal && appErr.Details != nil {
			errorObj["details"] = appErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
