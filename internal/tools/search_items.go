package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/carbonrobotics/arena-mcp-server/internal/arena"
)

// searchItems renders one page of matching items along with the GUIDs a
// caller needs to feed the drill-down tools.
func (s *Server) searchItems(ctx context.Context, args map[string]any) (string, error) {
	filter := arena.ItemFilter{
		Name:         getStringArg(args, "name"),
		Number:       getStringArg(args, "number"),
		Description:  getStringArg(args, "description"),
		CategoryGUID: getStringArg(args, "category_guid"),
	}
	page := arena.Page{
		Limit:  getIntArg(args, "limit", arena.DefaultLimit),
		Offset: getIntArg(args, "offset", 0),
	}

	env, err := s.arena.SearchItems(ctx, filter, page)
	if err != nil {
		return "", err
	}
	if env.Count == 0 {
		return "No items found.", nil
	}

	lines := []string{fmt.Sprintf("Found %d item(s):\n", env.Count)}
	for _, item := range env.Results {
		lines = append(lines, itemSummary(item))
	}
	lines = append(lines,
		"\n---",
		"Next steps: Use a GUID above with:",
		"- get_item(guid) for full details",
		"- get_item_bom(guid) to see assembly components",
		"- get_item_where_used(guid) to find parent assemblies",
	)
	return strings.Join(lines, "\n"), nil
}

// itemSummary is one list entry: number and name always, then whatever
// identifying detail the payload carries.
func itemSummary(item arena.Object) string {
	line := fmt.Sprintf("- %s: %s", valueOr(item, "number", "N/A"), valueOr(item, "name", "N/A"))
	if rev := value(item, "revisionNumber"); rev != "" {
		line += fmt.Sprintf(" (Rev %s)", rev)
	}
	if phase := value(object(item, "lifecyclePhase"), "name"); phase != "" {
		line += fmt.Sprintf(" [%s]", phase)
	}
	if guid := value(item, "guid"); guid != "" {
		line += "\n  GUID: " + guid
	}
	if app := value(object(item, "url"), "app"); app != "" {
		line += "\n  URL: " + app
	}
	return line
}
