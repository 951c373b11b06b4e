package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Descriptions are what MCP clients show when deciding
// which tool to call, so they spell out defaults and matching rules.

var searchToolDef = mcp.NewTool("food_search",
	mcp.WithDescription("Search the food catalog by name. Exact matches are returned first; substring matches only when nothing matches exactly. A blank query returns no results."),
	mcp.WithString("query", mcp.Required(), mcp.Description("Food name or fragment to search for (case-insensitive)")),
	mcp.WithNumber("limit", mcp.Description("Maximum results to return (default 10, max 100)")),
)

var allFoodsToolDef = mcp.NewTool("food_list",
	mcp.WithDescription("List every food in the catalog in row order, with full nutrition per 100g."),
)

var recommendToolDef = mcp.NewTool("food_recommend",
	mcp.WithDescription("Recommend foods nutritionally similar to a named food, most similar first. Falls back to same-category foods, then to a random sample, when similarity is unavailable. The query food is never included."),
	mcp.WithString("food_name", mcp.Required(), mcp.Description("Name of the food to find alternatives for")),
	mcp.WithNumber("top_n", mcp.Description("Number of recommendations (default 5, max 50)")),
)

var addFoodToolDef = mcp.NewTool("food_add",
	mcp.WithDescription("Add a new food to the catalog. Nutrition values are per 100g. Calories is required; other nutrients default to 0 and category defaults to Other."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Food name")),
	mcp.WithString("category", mcp.Description("Food category (default Other)")),
	mcp.WithNumber("calories", mcp.Required(), mcp.Description("Calories per 100g")),
	mcp.WithNumber("protein", mcp.Description("Protein grams per 100g")),
	mcp.WithNumber("fat", mcp.Description("Fat grams per 100g")),
	mcp.WithNumber("carbs", mcp.Description("Carbohydrate grams per 100g")),
	mcp.WithNumber("fiber", mcp.Description("Fiber grams per 100g")),
	mcp.WithNumber("sugar", mcp.Description("Sugar grams per 100g")),
)

var cleanToolDef = mcp.NewTool("catalog_clean",
	mcp.WithDescription("Remove catalog records with implausible nutrition values (calories > 5000, protein > 100, fat > 100, or carbs > 500 per 100g) and renumber the survivors."),
)

var logFoodToolDef = mcp.NewTool("log_food",
	mcp.WithDescription("Log a food to a user's daily record. The food name is resolved against the catalog (exact first, then substring); unresolvable names fail and nothing is logged. Quantity is a serving multiplier against the 100g basis."),
	mcp.WithString("user_id", mcp.Required(), mcp.Description("User identifier")),
	mcp.WithString("food_name", mcp.Required(), mcp.Description("Food name, resolved to a canonical catalog name")),
	mcp.WithNumber("quantity", mcp.Required(), mcp.Description("Serving multiplier, must be positive")),
	mcp.WithString("date", mcp.Description("Date in YYYY-MM-DD (default today)")),
	mcp.WithString("meal_type", mcp.Description("Optional meal tag, e.g. breakfast")),
)

var removeFoodToolDef = mcp.NewTool("log_remove",
	mcp.WithDescription("Remove logged entries from a user's daily record. Pass entry_id to remove one entry, or food_name (optionally with quantity for an exact match) to remove every matching entry."),
	mcp.WithString("user_id", mcp.Required(), mcp.Description("User identifier")),
	mcp.WithString("date", mcp.Required(), mcp.Description("Date in YYYY-MM-DD")),
	mcp.WithString("food_name", mcp.Description("Canonical food name to remove")),
	mcp.WithNumber("quantity", mcp.Description("Exact quantity to match; omit to remove all entries with the name")),
	mcp.WithString("entry_id", mcp.Description("ID of a single entry to remove; takes precedence over food_name")),
)

var clearDateToolDef = mcp.NewTool("log_clear",
	mcp.WithDescription("Clear a user's entire daily record for one date. Clearing a date with no entries succeeds with a count of zero."),
	mcp.WithString("user_id", mcp.Required(), mcp.Description("User identifier")),
	mcp.WithString("date", mcp.Description("Date in YYYY-MM-DD (default today)")),
)

var summaryToolDef = mcp.NewTool("daily_summary",
	mcp.WithDescription("Summarize a user's logged foods for one date: the entry list, nutrition totals, and calorie status against the user's daily target when a profile exists."),
	mcp.WithString("user_id", mcp.Required(), mcp.Description("User identifier")),
	mcp.WithString("date", mcp.Description("Date in YYYY-MM-DD (default today)")),
)

var createProfileToolDef = mcp.NewTool("profile_create",
	mcp.WithDescription("Create or replace a user profile. Derives BMR and a goal-adjusted daily calorie target from the metrics. Creating an existing user id replaces the profile wholesale."),
	mcp.WithString("user_id", mcp.Required(), mcp.Description("User identifier")),
	mcp.WithString("name", mcp.Description("Display name")),
	mcp.WithNumber("age", mcp.Required(), mcp.Description("Age in years")),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight in kg")),
	mcp.WithNumber("height", mcp.Required(), mcp.Description("Height in cm")),
	mcp.WithString("gender", mcp.Description("Gender; male selects the male BMR coefficients")),
	mcp.WithString("activity_level", mcp.Description("One of sedentary, light, moderate, active, very_active")),
	mcp.WithString("goal", mcp.Description("One of lose, maintain, gain")),
)

var updateProfileToolDef = mcp.NewTool("profile_update",
	mcp.WithDescription("Update fields of an existing profile. Only provided fields change; BMR and the calorie target are recomputed when any metric changes."),
	mcp.WithString("user_id", mcp.Required(), mcp.Description("User identifier")),
	mcp.WithString("name", mcp.Description("Display name")),
	mcp.WithNumber("age", mcp.Description("Age in years")),
	mcp.WithNumber("weight", mcp.Description("Weight in kg")),
	mcp.WithNumber("height", mcp.Description("Height in cm")),
	mcp.WithString("gender", mcp.Description("Gender")),
	mcp.WithString("activity_level", mcp.Description("Activity level")),
	mcp.WithString("goal", mcp.Description("Goal")),
)

var getProfileToolDef = mcp.NewTool("profile_get",
	mcp.WithDescription("Fetch a user profile with derived values: BMI, BMI category, macro split, and water intake suggestion."),
	mcp.WithString("user_id", mcp.Required(), mcp.Description("User identifier")),
)

var calculateToolDef = mcp.NewTool("nutrition_calculate",
	mcp.WithDescription("Compute BMR, TDEE, goal-adjusted calories, BMI, a macro split, and a water intake suggestion from raw metrics, without storing anything."),
	mcp.WithNumber("age", mcp.Required(), mcp.Description("Age in years")),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight in kg")),
	mcp.WithNumber("height", mcp.Required(), mcp.Description("Height in cm")),
	mcp.WithString("gender", mcp.Description("Gender; male selects the male BMR coefficients")),
	mcp.WithString("activity_level", mcp.Description("Activity level (default sedentary)")),
	mcp.WithString("goal", mcp.Description("Goal (default maintain)")),
)

var chatToolDef = mcp.NewTool("nutrition_chat",
	mcp.WithDescription("Ask the rule-based nutrition assistant a question: calories in a food, nutrition details, comparisons, recommendations, high-protein foods, or profile-derived answers like calorie target, BMI, and water intake."),
	mcp.WithString("message", mcp.Required(), mcp.Description("The question or message")),
	mcp.WithString("user_id", mcp.Description("User identifier for profile-aware answers")),
)
