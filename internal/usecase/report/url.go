package report

import (
	"fmt"
	"strconv"
	"strings"
)

// PRRef identifies a pull request on GitHub.
type PRRef struct {
	Owner  string
	Repo   string
	Number int
}

// ParsePRURL extracts the owner, repository, and number from a GitHub pull
// request URL such as https://github.com/owner/repo/pull/123.
func ParsePRURL(url string) (PRRef, error) {
	if !strings.Contains(url, "github.com") {
		return PRRef{}, fmt.Errorf("invalid GitHub PR URL %q", url)
	}

	parts := strings.Split(strings.TrimRight(url, "/"), "/")
	pullIndex := -1
	for i, part := range parts {
		if part == "pull" {
			pullIndex = i
			break
		}
	}
	if pullIndex < 2 || pullIndex+1 >= len(parts) {
		return PRRef{}, fmt.Errorf("invalid GitHub PR URL %q", url)
	}

	number, err := strconv.Atoi(parts[pullIndex+1])
	if err != nil || number <= 0 {
		return PRRef{}, fmt.Errorf("invalid PR number in URL %q", url)
	}

	return PRRef{
		Owner:  parts[pullIndex-2],
		Repo:   parts[pullIndex-1],
		Number: number,
	}, nil
}
