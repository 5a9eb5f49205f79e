package picker

import (
	"fmt"
	"strings"
)

// Success renders a completion notice.
func Success(title string, lines ...string) string {
	return notice(successStyle.Render(title), lines)
}

// Failure renders an error notice.
func Failure(title string, lines ...string) string {
	return notice(errorStyle.Render(title), lines)
}

func notice(title string, lines []string) string {
	body := title
	if len(lines) > 0 {
		body += "\n\n" + strings.Join(lines, "\n")
	}
	return boxStyle.Render(body)
}

// CompletionLines formats the summary shown after a run.
func CompletionLines(moved int, auditLog string) []string {
	noun := "files"
	if moved == 1 {
		noun = "file"
	}
	return []string{
		fmt.Sprintf("Organized %d %s.", moved, noun),
		fmt.Sprintf("Moves are logged in %s", auditLog),
	}
}
