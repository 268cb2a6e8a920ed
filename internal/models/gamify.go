package models

// RequirementType names the derived metric an achievement requirement is
// tested against.
type RequirementType string

const (
	ReqSupplementsTaken    RequirementType = "supplements_taken"
	ReqSaunaSessions       RequirementType = "sauna_sessions"
	ReqStreakDays          RequirementType = "streak_days"
	ReqDaysTracked         RequirementType = "days_tracked"
	ReqChallengesCompleted RequirementType = "challenges_completed"
)

// Rarity of an achievement badge.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// Requirement is the unlock condition of an achievement: the named metric
// must reach Value.
type Requirement struct {
	Type  RequirementType `json:"type"`
	Value int             `json:"value"`
}

// AchievementDefinition is a static catalog entry. Definitions are pure
// data; unlock state lives in UserProgress.
type AchievementDefinition struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Points      int         `json:"points"`
	Requirement Requirement `json:"requirement"`
	Rarity      Rarity      `json:"rarity"`
}

// UserProgress is the award state mutated by the achievement engine.
// AchievementsUnlocked only ever grows and TotalPoints only ever
// increases; awards are additive and never revoked.
type UserProgress struct {
	TotalPoints          int      `json:"total_points"`
	AchievementsUnlocked []string `json:"achievements_unlocked"`
	StreakCurrent        int      `json:"streak_current"`
	StreakLongest        int      `json:"streak_longest"`
	LastActivityDate     string   `json:"last_activity_date,omitempty"` // YYYY-MM-DD
	ChallengesCompleted  int      `json:"challenges_completed"`
}

// HasAchievement reports whether the given achievement id is unlocked.
func (p UserProgress) HasAchievement(id string) bool {
	for _, got := range p.AchievementsUnlocked {
		if got == id {
			return true
		}
	}
	return false
}

// ChallengeType names the event stream a challenge advances on.
type ChallengeType string

const (
	ChallengeSupplements ChallengeType = "supplements_taken"
	ChallengeSauna       ChallengeType = "sauna_sessions"
	ChallengeStreak      ChallengeType = "streak_days"
)

// Challenge is a time-boxed, resettable goal. At most one challenge is
// active at a time; starting one deactivates all others.
type Challenge struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Type         ChallengeType `json:"type"`
	DurationDays int           `json:"duration_days"`
	Points       int           `json:"points"`
	Target       int           `json:"target"`
	Progress     int           `json:"progress"`
	Active       bool          `json:"active"`
	StartDate    string        `json:"start_date,omitempty"` // YYYY-MM-DD
}
