package engine

// BadgeStats is everything the badge rules look at.
type BadgeStats struct {
	EasySolved   int
	MediumSolved int
	HardSolved   int
	Streak       int
	Points       int
	// PointsRank is the 1-based position by points among all users, 0 when outside the top three.
	PointsRank int
}

type BadgeKind string

const (
	BadgeProblems BadgeKind = "problems"
	BadgeStreak   BadgeKind = "streak"
	BadgePoints   BadgeKind = "points"
	BadgeRank     BadgeKind = "rank"
)

type BadgeRule struct {
	Name        string
	Description string
	Kind        BadgeKind
	qualifies   func(BadgeStats) bool
}

func (r BadgeRule) Qualifies(stats BadgeStats) bool {
	return r.qualifies(stats)
}

func atLeast(get func(BadgeStats) int, threshold int) func(BadgeStats) bool {
	return func(s BadgeStats) bool { return get(s) >= threshold }
}

func rankIs(rank int) func(BadgeStats) bool {
	return func(s BadgeStats) bool { return s.PointsRank == rank }
}

func easy(s BadgeStats) int   { return s.EasySolved }
func medium(s BadgeStats) int { return s.MediumSolved }
func hard(s BadgeStats) int   { return s.HardSolved }
func streak(s BadgeStats) int { return s.Streak }
func points(s BadgeStats) int { return s.Points }

// Catalog is evaluated in order. Rank badges record that a position was reached at
// some point; they are not a statement about the current standing.
var Catalog = []BadgeRule{
	{"Easy Peasy", "Solved 50 easy problems", BadgeProblems, atLeast(easy, 50)},
	{"Medium Mastro", "Solved 50 medium problems", BadgeProblems, atLeast(medium, 50)},
	{"Hardcore Coder", "Solved 50 hard problems", BadgeProblems, atLeast(hard, 50)},
	{"Aaram Se Bhai!", "Solved 100 easy problems", BadgeProblems, atLeast(easy, 100)},
	{"Pakka Medium Mestro", "Solved 100 medium problems", BadgeProblems, atLeast(medium, 100)},
	{"Zindagi Ka Coding King!", "Solved 100 hard problems", BadgeProblems, atLeast(hard, 100)},

	{"Week Warrior", "Kept a 7 day streak", BadgeStreak, atLeast(streak, 7)},
	{"Fortnight Warrior", "Kept a 15 day streak", BadgeStreak, atLeast(streak, 15)},
	{"Month Master", "Kept a 30 day streak", BadgeStreak, atLeast(streak, 30)},
	{"50 Din Streak YAY", "Kept a 50 day streak", BadgeStreak, atLeast(streak, 50)},
	{"Main Legend Hoon", "Kept a 100 day streak", BadgeStreak, atLeast(streak, 100)},
	{"365 Din Wala Coder", "Kept a 365 day streak", BadgeStreak, atLeast(streak, 365)},

	{"Point Prodigy", "Earned 1000 points", BadgePoints, atLeast(points, 1000)},
	{"Paisa Hi Paisa", "Earned 5000 points", BadgePoints, atLeast(points, 5000)},
	{"Lakshya Se Aage", "Earned 10000 points", BadgePoints, atLeast(points, 10000)},

	{"Topper", "Reached first place by points", BadgeRank, rankIs(1)},
	{"Second Chance", "Reached second place by points", BadgeRank, rankIs(2)},
	{"Third Time Lucky", "Reached third place by points", BadgeRank, rankIs(3)},
}

// QualifyingBadges returns the catalog rules satisfied by stats, in catalog order.
func QualifyingBadges(stats BadgeStats) []BadgeRule {
	var out []BadgeRule
	for _, rule := range Catalog {
		if rule.Qualifies(stats) {
			out = append(out, rule)
		}
	}
	return out
}

// LookupBadge finds a catalog rule by name.
func LookupBadge(name string) (BadgeRule, bool) {
	for _, rule := range Catalog {
		if rule.Name == name {
			return rule, true
		}
	}
	return BadgeRule{}, false
}
