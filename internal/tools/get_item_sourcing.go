package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/carbonrobotics/arena-mcp-server/internal/arena"
)

func (s *Server) getItemSourcing(ctx context.Context, args map[string]any) (string, error) {
	guid, err := requireGUID(args)
	if err != nil {
		return "", err
	}
	page := arena.Page{
		Limit:  getIntArg(args, "limit", arena.DefaultLimit),
		Offset: getIntArg(args, "offset", 0),
	}
	env, err := s.arena.GetItemSourcing(ctx, guid, page)
	if err != nil {
		return "", err
	}
	if env.Count == 0 {
		return "No sourcing relationships found.", nil
	}

	lines := []string{fmt.Sprintf("Found %d source(s):\n", env.Count)}
	for _, source := range env.Results {
		approved := "Not Approved"
		if flag(source, "approved") {
			approved = "Approved"
		}
		lines = append(lines, fmt.Sprintf("- [%s] [%s]", approved, activeLabel(source)))
		if notes := value(source, "notes"); notes != "" {
			lines = append(lines, "  Notes: "+notes)
		}
		lines = append(lines, "  GUID: "+valueOr(source, "guid", "N/A"))
	}
	return strings.Join(lines, "\n"), nil
}

// activeLabel summarizes which build stages a source is active for.
func activeLabel(source arena.Object) string {
	var active []string
	if flag(source, "activeProduction") {
		active = append(active, "Production")
	}
	if flag(source, "activePrototype") {
		active = append(active, "Prototype")
	}
	if len(active) == 0 {
		return "Inactive"
	}
	return strings.Join(active, ", ")
}
