package statmath

import "github.com/Kossler/Actual-Analytics/pkg/models"

// The projector decides which stat families a player's table includes.
// Any position string other than "QB" takes the non-QB branches, so an
// unrecognized position is a valid input, not an error.

// ShouldShowPassing reports whether the passing family is shown.
// Quarterbacks only.
func ShouldShowPassing(position string) bool {
	return position == "QB"
}

// ShouldShowReceiving reports whether the receiving family is shown.
// Everyone except quarterbacks.
func ShouldShowReceiving(position string) bool {
	return position != "QB"
}

// ShouldShowRushing reports whether the rushing family is shown.
// Non-quarterbacks always rush; a quarterback's table grows the rushing
// columns only when at least one season shows a rushing attempt.
func ShouldShowRushing(position string, seasons []models.SeasonAggregate) bool {
	if position != "QB" {
		return true
	}
	for _, s := range seasons {
		if s.Rushing.Attempts > 0 {
			return true
		}
	}
	return false
}
