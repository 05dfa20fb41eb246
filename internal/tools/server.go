package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/carbonrobotics/arena-mcp-server/internal/arena"
)

// ArenaAPI is the slice of the Arena client the tools consume. *arena.Client
// implements it; tests substitute stubs.
type ArenaAPI interface {
	SearchItems(ctx context.Context, f arena.ItemFilter, p arena.Page) (*arena.Envelope, error)
	GetItem(ctx context.Context, guid string, includeEmptyAttrs bool) (arena.Object, error)
	GetItemBOM(ctx context.Context, guid string, includeAttrs bool) (*arena.Envelope, error)
	GetItemWhereUsed(ctx context.Context, guid string) (*arena.Envelope, error)
	GetItemRevisions(ctx context.Context, guid string) (*arena.Envelope, error)
	GetItemFiles(ctx context.Context, guid string) (*arena.Envelope, error)
	GetItemSourcing(ctx context.Context, guid string, p arena.Page) (*arena.Envelope, error)
	GetCategories(ctx context.Context, path string) (*arena.Envelope, error)
}

// Server wraps the MCP server with the Arena tool handlers.
type Server struct {
	mcp    *mcp.Server
	arena  ArenaAPI
	logger *logrus.Entry
}

// NewServer creates an MCP server with all Arena tools registered.
func NewServer(api ArenaAPI, logger *logrus.Entry, serverVersion string) *Server {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	srv := &Server{
		arena:  api,
		logger: logger,
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    "arena-mcp-server",
				Version: serverVersion,
			},
			nil,
		),
	}
	srv.registerTools()
	return srv
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

func (s *Server) registerTools() {
	for _, def := range toolDefs {
		s.mcp.AddTool(&mcp.Tool{
			Name:        def.name,
			Description: def.description,
			InputSchema: def.schema,
		}, s.handler(def.name))
	}
}

// handler adapts Dispatch to the MCP wire contract. Tool failures become
// error-flagged text results, never protocol errors, so a conversational
// client always gets text it can show.
func (s *Server) handler(name string) func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := parseArgs(req)
		if err != nil {
			return errResult("Error: " + err.Error()), nil
		}
		start := time.Now()
		text, err := s.Dispatch(ctx, name, args)
		s.logger.WithFields(logrus.Fields{
			"tool":        name,
			"duration_ms": time.Since(start).Milliseconds(),
			"failed":      err != nil,
		}).Info("tool call")
		if err != nil {
			return errResult("Error: " + err.Error()), nil
		}
		return textResult(text), nil
	}
}

// ToolInfo describes one registered tool for manifest output.
type ToolInfo struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	InputSchema map[string]any `json:"inputSchema" yaml:"inputSchema"`
}

// Manifest lists the registered tools with their input schemas decoded.
func Manifest() ([]ToolInfo, error) {
	out := make([]ToolInfo, 0, len(toolDefs))
	for _, def := range toolDefs {
		var schema map[string]any
		if err := json.Unmarshal(def.schema, &schema); err != nil {
			return nil, fmt.Errorf("tool %s schema: %w", def.name, err)
		}
		out = append(out, ToolInfo{Name: def.name, Description: def.description, InputSchema: schema})
	}
	return out, nil
}

// toolDef pairs a tool's wire metadata; behavior lives in Dispatch.
// Registration and Manifest both read this table so they cannot drift.
type toolDef struct {
	name        string
	description string
	schema      json.RawMessage
}

var toolDefs = []toolDef{
	{
		name:        toolSearchItems,
		description: "Search for items in Arena PLM by name, number, or description. Wildcards are added automatically for partial matching. Returns item GUIDs which can be used with other tools: use get_item for full details, get_item_bom to see components of an assembly, or get_item_where_used to find which assemblies contain a part.",
		schema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {
					"type": "string",
					"description": "Filter by item name (partial match)"
				},
				"number": {
					"type": "string",
					"description": "Filter by item number (partial match)"
				},
				"description": {
					"type": "string",
					"description": "Filter by description (partial match)"
				},
				"category_guid": {
					"type": "string",
					"description": "Filter by category GUID (use get_categories to find GUIDs)"
				},
				"limit": {
					"type": "integer",
					"description": "Max results to return (default 20, max 400)"
				},
				"offset": {
					"type": "integer",
					"description": "Number of results to skip, for paging past the first batch (default 0)"
				}
			}
		}`),
	},
	{
		name:        toolGetItem,
		description: "Get full details for a specific item by its GUID. Returns all item attributes including custom attributes, description, owner, and lifecycle phase. Use after search_items to get complete information about a specific part.",
		schema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"guid": {
					"type": "string",
					"description": "Item GUID (obtain from search_items)"
				},
				"include_empty_attributes": {
					"type": "boolean",
					"description": "Include custom attributes that have no value (default: false)"
				}
			},
			"required": ["guid"]
		}`),
	},
	{
		name:        toolGetItemBOM,
		description: "Get the bill of materials (BOM) for an assembly item. Returns all child components with quantities and reference designators. Use this to see what parts make up an assembly.",
		schema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"guid": {
					"type": "string",
					"description": "Item GUID of the assembly"
				},
				"include_additional_attributes": {
					"type": "boolean",
					"description": "Include custom BOM attributes on each line (default: false)"
				}
			},
			"required": ["guid"]
		}`),
	},
	{
		name:        toolGetItemWhereUsed,
		description: "Find all assemblies where a given item is used as a component. Essential for impact analysis: shows what products would be affected by a part change.",
		schema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"guid": {
					"type": "string",
					"description": "Item GUID to find usage of"
				}
			},
			"required": ["guid"]
		}`),
	},
	{
		name:        toolGetItemRevisions,
		description: "Get all revisions of an item including working, effective, and superseded revisions. Shows revision history with associated change orders.",
		schema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"guid": {
					"type": "string",
					"description": "Item GUID"
				}
			},
			"required": ["guid"]
		}`),
	},
	{
		name:        toolGetItemFiles,
		description: "Get all files associated with an item (drawings, datasheets, CAD files, etc.). Use to find documentation or design files for a part.",
		schema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"guid": {
					"type": "string",
					"description": "Item GUID"
				}
			},
			"required": ["guid"]
		}`),
	},
	{
		name:        toolGetItemSourcing,
		description: "Get supplier/sourcing information for an item including approved manufacturers and vendors. Shows approval status and whether sources are active for production or prototype.",
		schema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"guid": {
					"type": "string",
					"description": "Item GUID"
				},
				"limit": {
					"type": "integer",
					"description": "Max results to return (default 20, max 400)"
				},
				"offset": {
					"type": "integer",
					"description": "Number of results to skip, for paging past the first batch (default 0)"
				}
			},
			"required": ["guid"]
		}`),
	},
	{
		name:        toolGetCategories,
		description: "Get available item categories. Returns category GUIDs that can be used to filter search_items results. Use when you want to narrow searches to specific part types (e.g., only assemblies, only resistors).",
		schema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {
					"type": "string",
					"description": "Filter by category path prefix (e.g., 'item\\Assembly')"
				}
			}
		}`),
	},
}
