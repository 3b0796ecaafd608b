package statmath

import (
	"sort"

	"github.com/Kossler/Actual-Analytics/pkg/models"
)

// seasonAccumulator tracks the two game-count sources separately so that
// a season-level record overrides the weekly tally no matter where it
// appears in the input.
type seasonAccumulator struct {
	agg         models.SeasonAggregate
	weeklyTally int
	seasonGames *int
}

// AggregateSeasons folds a player's GameStat records into one aggregate
// per season, sorted season-descending.
//
// Counting fields sum with nil treated as zero: a missing value
// contributes nothing but never nullifies the total. Game count comes
// from a season-level record's Games value when one exists for the
// season, and from the tally of weekly records otherwise; the two
// sources never combine. Empty input yields an empty slice.
func AggregateSeasons(stats []models.GameStat) []models.SeasonAggregate {
	bySeason := make(map[int]*seasonAccumulator)

	for i := range stats {
		gs := &stats[i]

		acc, ok := bySeason[gs.Season]
		if !ok {
			acc = &seasonAccumulator{
				agg: models.SeasonAggregate{Season: gs.Season},
			}
			bySeason[gs.Season] = acc
		}

		addPassing(&acc.agg.Passing, &gs.Passing)
		addRushing(&acc.agg.Rushing, &gs.Rushing)
		addReceiving(&acc.agg.Receiving, &gs.Receiving)

		if gs.Week == nil {
			if gs.Games != nil {
				acc.seasonGames = gs.Games
			}
		} else {
			acc.weeklyTally++
		}
	}

	seasons := make([]int, 0, len(bySeason))
	for season := range bySeason {
		seasons = append(seasons, season)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(seasons)))

	out := make([]models.SeasonAggregate, 0, len(seasons))
	for _, season := range seasons {
		acc := bySeason[season]
		if acc.seasonGames != nil {
			acc.agg.GameCount = *acc.seasonGames
		} else {
			acc.agg.GameCount = acc.weeklyTally
		}
		out = append(out, acc.agg)
	}

	return out
}

func addPassing(total *models.PassingTotals, p *models.PassingStats) {
	total.Attempts += intOrZero(p.Attempts)
	total.Completions += intOrZero(p.Completions)
	total.Yards += intOrZero(p.Yards)
	total.Touchdowns += intOrZero(p.Touchdowns)
	total.Interceptions += intOrZero(p.Interceptions)
	total.Sacks += intOrZero(p.Sacks)
	total.EPA += floatOrZero(p.EPA)
}

func addRushing(total *models.RushingTotals, r *models.RushingStats) {
	total.Attempts += intOrZero(r.Attempts)
	total.Yards += intOrZero(r.Yards)
	total.Touchdowns += intOrZero(r.Touchdowns)
	total.EPA += floatOrZero(r.EPA)
}

func addReceiving(total *models.ReceivingTotals, r *models.ReceivingStats) {
	total.Targets += intOrZero(r.Targets)
	total.Receptions += intOrZero(r.Receptions)
	total.Yards += intOrZero(r.Yards)
	total.Touchdowns += intOrZero(r.Touchdowns)
	total.EPA += floatOrZero(r.EPA)
}

// CareerTotals sums season aggregates into a single career row. The
// game count is the plain sum of per-season counts, so a legitimate
// zero survives into the totals row.
func CareerTotals(seasons []models.SeasonAggregate) models.SeasonAggregate {
	var career models.SeasonAggregate
	for _, s := range seasons {
		career.GameCount += s.GameCount

		career.Passing.Attempts += s.Passing.Attempts
		career.Passing.Completions += s.Passing.Completions
		career.Passing.Yards += s.Passing.Yards
		career.Passing.Touchdowns += s.Passing.Touchdowns
		career.Passing.Interceptions += s.Passing.Interceptions
		career.Passing.Sacks += s.Passing.Sacks
		career.Passing.EPA += s.Passing.EPA

		career.Rushing.Attempts += s.Rushing.Attempts
		career.Rushing.Yards += s.Rushing.Yards
		career.Rushing.Touchdowns += s.Rushing.Touchdowns
		career.Rushing.EPA += s.Rushing.EPA

		career.Receiving.Targets += s.Receiving.Targets
		career.Receiving.Receptions += s.Receiving.Receptions
		career.Receiving.Yards += s.Receiving.Yards
		career.Receiving.Touchdowns += s.Receiving.Touchdowns
		career.Receiving.EPA += s.Receiving.EPA
	}
	return career
}

// TotalEPA sums the three family EPA totals for one aggregate. Computed
// at presentation time, not during aggregation.
func TotalEPA(agg models.SeasonAggregate) float64 {
	return agg.Passing.EPA + agg.Rushing.EPA + agg.Receiving.EPA
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
