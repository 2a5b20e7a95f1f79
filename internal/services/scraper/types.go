package scraper

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when no candidate URL served the page.
var ErrNotFound = errors.New("page not found")

// StatusError is a non-200 response from a scraped site.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status code error: %d %s (%s)", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// Is makes 404 responses match ErrNotFound.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Role display names used in champion stats.
const (
	RoleTop     = "Top"
	RoleJungle  = "Jungle"
	RoleMid     = "Mid"
	RoleADC     = "ADC"
	RoleSupport = "Support"
)

// Lane difficulty labels for champion comparisons.
const (
	DifficultyEasy     = "Easy"
	DifficultySkill    = "Skill Matchup"
	DifficultyHard     = "Difficult"
	DifficultyVeryHard = "Very Hard"
)

const (
	defaultMatchupRate = 50.0
	patchUnknown       = "Current"
)
