package models

// TimingSlot is the scheduled time-of-day bucket a supplement belongs to.
type TimingSlot string

const (
	SlotMorning   TimingSlot = "morning"
	SlotBreakfast TimingSlot = "breakfast"
	SlotLunch     TimingSlot = "lunch"
	SlotEvening   TimingSlot = "evening"
)

// TimingSlots returns all slots in day order.
func TimingSlots() []TimingSlot {
	return []TimingSlot{SlotMorning, SlotBreakfast, SlotLunch, SlotEvening}
}

// SupplementDefinition is a read-only catalog entry. Catalog entries are
// reference data, not user state; they are never edited after load.
type SupplementDefinition struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Brand          string     `json:"brand"`
	Dose           string     `json:"dose"`
	Timing         TimingSlot `json:"timing"`
	Category       string     `json:"category"`
	Benefits       []string   `json:"benefits"`
	CostPerMonth   float64    `json:"cost_per_month"`
	ResearchRating int        `json:"research_rating"`
}

// SaunaProtocol holds the reference sauna protocol shipped with the app.
type SaunaProtocol struct {
	TemperatureF    int      `json:"temperature_f"`
	OptimalMinutes  int      `json:"optimal_minutes"`
	MinimumMinutes  int      `json:"minimum_minutes"`
	SessionsPerWeek string   `json:"sessions_per_week"`
	HeatShockTempF  int      `json:"heat_shock_temp_f"`
	Notes           []string `json:"notes,omitempty"`
}

// ProtocolReference bundles the static reference protocols embedded in the
// document alongside the supplement catalog.
type ProtocolReference struct {
	Sauna SaunaProtocol `json:"sauna"`
}
