package tools

import (
	"context"
	"fmt"
	"strings"
)

func (s *Server) getCategories(ctx context.Context, args map[string]any) (string, error) {
	env, err := s.arena.GetCategories(ctx, getStringArg(args, "path"))
	if err != nil {
		return "", err
	}
	if env.Count == 0 {
		return "No categories found.", nil
	}

	lines := []string{fmt.Sprintf("Found %d category(ies):\n", env.Count)}
	for _, cat := range env.Results {
		kind := "structural"
		if flag(cat, "assignable") {
			kind = "assignable"
		}
		lines = append(lines, fmt.Sprintf("- %s [%s]", valueOr(cat, "path", "N/A"), kind))
		lines = append(lines, "  GUID: "+valueOr(cat, "guid", "N/A"))
		if desc := value(cat, "description"); desc != "" {
			lines = append(lines, "  Description: "+desc)
		}
	}
	return strings.Join(lines, "\n"), nil
}
