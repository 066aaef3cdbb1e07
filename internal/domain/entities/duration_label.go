package entities

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/edutour/discovery/backend/pkg/errors"
)

var durationLabelPattern = regexp.MustCompile(`^\s*(\d+)\s*(?:-?\s*(?:days?|d))?\s*$`)

// ParseDurationLabel converts a catalog duration label such as "7 Days",
// "1 day", "10-Day" or "5" into a positive number of days.
func ParseDurationLabel(label string) (int, error) {
	match := durationLabelPattern.FindStringSubmatch(strings.ToLower(label))
	if match == nil {
		return 0, apperrors.NewValidationError(fmt.Sprintf("unrecognized duration label %q", label))
	}

	days, err := strconv.Atoi(match[1])
	if err != nil || days <= 0 {
		return 0, apperrors.NewValidationError(fmt.Sprintf("duration must be a positive number of days, got %q", label))
	}
	return days, nil
}
