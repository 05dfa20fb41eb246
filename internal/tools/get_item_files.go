package tools

import (
	"context"
	"fmt"
	"strings"
)

func (s *Server) getItemFiles(ctx context.Context, args map[string]any) (string, error) {
	guid, err := requireGUID(args)
	if err != nil {
		return "", err
	}
	env, err := s.arena.GetItemFiles(ctx, guid)
	if err != nil {
		return "", err
	}
	if env.Count == 0 {
		return "No files associated with this item.", nil
	}

	lines := []string{fmt.Sprintf("Found %d file(s):\n", env.Count)}
	for _, assoc := range env.Results {
		f := object(assoc, "file")
		entry := fmt.Sprintf("- %s (%s)", valueOr(f, "name", "N/A"), valueOr(f, "format", "N/A"))
		if title := value(f, "title"); title != "" {
			entry += " - " + title
		}
		detail := fmt.Sprintf("  Number: %s, Edition: %s", valueOr(f, "number", "N/A"), valueOr(f, "edition", "N/A"))
		if flag(assoc, "primary") {
			detail += " [PRIMARY]"
		}
		lines = append(lines, entry, detail)
	}
	return strings.Join(lines, "\n"), nil
}
