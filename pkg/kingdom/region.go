package kingdom

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Regional variable names. Condition expressions and action effects
// refer to regional state by these keys.
const (
	RegionVarHappiness       = "happiness"
	RegionVarUnrest          = "unrest"
	RegionVarEconomicLevel   = "economicLevel"
	RegionVarChurchPower     = "churchPower"
	RegionVarMilitaryPower   = "militaryPower"
	RegionVarBrigandPresence = "brigandPresence"
)

// Region is a kingdom subdivision. The six regional variables are
// bounded [0,100] and drift with events and council decisions; the
// remaining fields are static flavor set at seed time.
type Region struct {
	RegionID    string `json:"region_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	GridRow int `json:"grid_row"`
	GridCol int `json:"grid_col"`

	Happiness       int `json:"happiness"`
	Unrest          int `json:"unrest"`
	EconomicLevel   int `json:"economic_level"`
	ChurchPower     int `json:"church_power"`
	MilitaryPower   int `json:"military_power"`
	BrigandPresence int `json:"brigand_presence"`

	PrimaryProduction string `json:"primary_production,omitempty"`
	Population        int    `json:"population"`
	Terrain           string `json:"terrain,omitempty"`

	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// Var returns the named regional variable. Unknown names return
// (0, false) so condition evaluation can fail closed.
func (r *Region) Var(name string) (int, bool) {
	switch name {
	case RegionVarHappiness:
		return r.Happiness, true
	case RegionVarUnrest:
		return r.Unrest, true
	case RegionVarEconomicLevel:
		return r.EconomicLevel, true
	case RegionVarChurchPower:
		return r.ChurchPower, true
	case RegionVarMilitaryPower:
		return r.MilitaryPower, true
	case RegionVarBrigandPresence:
		return r.BrigandPresence, true
	}
	return 0, false
}

// Apply adds delta to the named regional variable, clamped to [0,100].
// Returns false if the name is not a regional variable.
func (r *Region) Apply(name string, delta int) bool {
	switch name {
	case RegionVarHappiness:
		r.Happiness = ClampPercent(r.Happiness + delta)
	case RegionVarUnrest:
		r.Unrest = ClampPercent(r.Unrest + delta)
	case RegionVarEconomicLevel:
		r.EconomicLevel = ClampPercent(r.EconomicLevel + delta)
	case RegionVarChurchPower:
		r.ChurchPower = ClampPercent(r.ChurchPower + delta)
	case RegionVarMilitaryPower:
		r.MilitaryPower = ClampPercent(r.MilitaryPower + delta)
	case RegionVarBrigandPresence:
		r.BrigandPresence = ClampPercent(r.BrigandPresence + delta)
	default:
		return false
	}
	return true
}

// DisplayName returns the region's name, falling back to a titled
// form of the ID (e.g. "western_provinces" -> "Western Provinces").
func (r *Region) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return TitleID(r.RegionID)
}

var titler = cases.Title(language.English)

// TitleID converts a snake_case identifier into a display title.
func TitleID(id string) string {
	return titler.String(strings.ReplaceAll(id, "_", " "))
}
