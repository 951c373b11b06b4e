package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mkyawt/nutrilog/internal/assistant"
	"github.com/mkyawt/nutrilog/internal/catalog"
	"github.com/mkyawt/nutrilog/internal/config"
	"github.com/mkyawt/nutrilog/internal/profile"
	"github.com/mkyawt/nutrilog/internal/recommend"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"food_search": {
		def:     searchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearch },
	},
	"food_list": {
		def:     allFoodsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAllFoods },
	},
	"food_recommend": {
		def:     recommendToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRecommend },
	},
	"food_add": {
		def:     addFoodToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAddFood },
	},
	"catalog_clean": {
		def:     cleanToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleClean },
	},
	"log_food": {
		def:     logFoodToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLogFood },
	},
	"log_remove": {
		def:     removeFoodToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRemoveFood },
	},
	"log_clear": {
		def:     clearDateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleClearDate },
	},
	"daily_summary": {
		def:     summaryToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSummary },
	},
	"profile_create": {
		def:     createProfileToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCreateProfile },
	},
	"profile_update": {
		def:     updateProfileToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUpdateProfile },
	},
	"profile_get": {
		def:     getProfileToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGetProfile },
	},
	"nutrition_calculate": {
		def:     calculateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCalculate },
	},
	"nutrition_chat": {
		def:     chatToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleChat },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with Nutrilog tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(cat *catalog.Catalog, users *profile.Store, rec *recommend.Recommender, a *assistant.Assistant, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"nutrilog",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(cat, users, rec, a)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(cat *catalog.Catalog, users *profile.Store, rec *recommend.Recommender, a *assistant.Assistant, cfg *config.Config, version string) error {
	s := NewServer(cat, users, rec, a, cfg, version)
	return server.ServeStdio(s)
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
