package tagging

// A VictimFinder decides which way of a full set should be evicted. It owns
// the recency state that the decision depends on, so every access to a way
// must be reported with Visit.
type VictimFinder interface {
	FindVictim(setID int) (wayID int)
	Visit(setID, wayID int)
}
