package statmath

import "strconv"

// Seasons are integer map keys everywhere in this service, so a string
// key can never shadow structural behavior the way it can in a
// loosely-typed container. The guard lives at the ingestion boundary
// instead: season labels arriving from the outside are validated here,
// and callers drop (and log) anything that fails rather than aborting.

const (
	minSeason = 1920 // first NFL season
	maxSeason = 2100
)

// ParseSeasonLabel converts an externally-supplied season label to its
// integer key. The second return is false for anything non-numeric
// (which covers reserved structural names like "__proto__" or
// "constructor") or outside the plausible NFL season range.
func ParseSeasonLabel(label string) (int, bool) {
	season, err := strconv.Atoi(label)
	if err != nil {
		return 0, false
	}
	if season < minSeason || season > maxSeason {
		return 0, false
	}
	return season, true
}
