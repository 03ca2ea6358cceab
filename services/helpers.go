package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/scrim-tournaments/models"
	"github.com/google/uuid"
)

// newID - случайный uuid, не зависит от времени вызова.
func newID() string {
	return uuid.NewString()
}

func now() time.Time {
	return time.Now().UTC()
}

func isValidStatusTransition(current, next models.TournamentStatus) bool {
	allowedTransitions := map[models.TournamentStatus][]models.TournamentStatus{
		models.StatusRegistration: {models.StatusActive},
		models.StatusActive:       {models.StatusCompleted},
		models.StatusCompleted:    {},
	}
	for _, allowedNextStatus := range allowedTransitions[current] {
		if next == allowedNextStatus {
			return true
		}
	}
	return false
}

// ParsePlacementPoints parses a "10,5,0"-style list. Whitespace around items is ignored.
func ParsePlacementPoints(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, validationErrorf("placement points are required")
	}
	parts := strings.Split(raw, ",")
	points := make([]int, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, validationErrorf("placement points item %d is empty", i+1)
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, validationErrorf("placement points item %d (%q) is not an integer", i+1, part)
		}
		points = append(points, v)
	}
	return points, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
