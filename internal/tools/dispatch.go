package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Tool names form a closed set: Dispatch routes these and nothing else.
const (
	toolSearchItems      = "search_items"
	toolGetItem          = "get_item"
	toolGetItemBOM       = "get_item_bom"
	toolGetItemWhereUsed = "get_item_where_used"
	toolGetItemRevisions = "get_item_revisions"
	toolGetItemFiles     = "get_item_files"
	toolGetItemSourcing  = "get_item_sourcing"
	toolGetCategories    = "get_categories"
)

// Dispatch routes one tool call to its implementation and returns the
// rendered text. An unknown tool name is reported in the text itself rather
// than as an error, so conversational clients always have something to show.
func (s *Server) Dispatch(ctx context.Context, name string, args map[string]any) (string, error) {
	switch name {
	case toolSearchItems:
		return s.searchItems(ctx, args)
	case toolGetItem:
		return s.getItem(ctx, args)
	case toolGetItemBOM:
		return s.getItemBOM(ctx, args)
	case toolGetItemWhereUsed:
		return s.getItemWhereUsed(ctx, args)
	case toolGetItemRevisions:
		return s.getItemRevisions(ctx, args)
	case toolGetItemFiles:
		return s.getItemFiles(ctx, args)
	case toolGetItemSourcing:
		return s.getItemSourcing(ctx, args)
	case toolGetCategories:
		return s.getCategories(ctx, args)
	default:
		return fmt.Sprintf("Unknown tool: %s", name), nil
	}
}

// DispatchText flattens the Dispatch outcome into the uniform text contract:
// every failure, whatever its cause, reads as "Error: <message>".
func (s *Server) DispatchText(ctx context.Context, name string, args map[string]any) string {
	text, err := s.Dispatch(ctx, name, args)
	if err != nil {
		return "Error: " + err.Error()
	}
	return text
}

func requireGUID(args map[string]any) (string, error) {
	guid := strings.TrimSpace(getStringArg(args, "guid"))
	if guid == "" {
		return "", errors.New("guid is required")
	}
	return guid, nil
}
