package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/shootcal/internal/domain"
)

// resolveProject finds one of the owner's projects by full id, or by an
// unambiguous id prefix such as the eight characters shown in listings.
func resolveProject(ctx context.Context, app *App, input string) (*domain.Project, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx, app.Owner)
	if err != nil {
		return nil, err
	}

	var matches []*domain.Project
	for _, p := range projects {
		if p.ID == input {
			return p, nil
		}
		if strings.HasPrefix(p.ID, strings.ToLower(input)) {
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// parseRuleKind accepts the plural route names and a few singular forms.
func parseRuleKind(s string) (domain.RuleKind, error) {
	switch strings.ToLower(s) {
	case "holiday", "holidays":
		return domain.RuleHoliday, nil
	case "hiatus":
		return domain.RuleHiatus, nil
	case "weekend", "weekends", "working-weekend":
		return domain.RuleWorkingWeekend, nil
	case "special", "special-date", "special-dates":
		return domain.RuleSpecialDate, nil
	}
	return "", fmt.Errorf("unknown rule kind %q (expected holiday, hiatus, weekend or special)", s)
}

func parseDefinitionKind(s string) (domain.DefinitionKind, error) {
	switch strings.ToLower(s) {
	case "location", "locations":
		return domain.DefLocation, nil
	case "area", "areas":
		return domain.DefArea, nil
	case "department", "departments", "dept":
		return domain.DefDepartment, nil
	}
	return "", fmt.Errorf("unknown definition kind %q (expected location, area or department)", s)
}
