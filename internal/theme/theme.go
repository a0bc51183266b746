// Package theme maps day phases to fixed color/typography sets.
package theme

import "github.com/smokyabdulrahman/iftar-timer/internal/phase"

// Theme is the render palette for one phase. Colors are hex strings;
// Gradient is an optional CSS-style gradient kept for export consumers.
type Theme struct {
	Background  string
	Gradient    string
	Text        string
	TextMuted   string
	Accent      string
	Description string
}

var themes = map[phase.Phase]Theme{
	phase.Morning: {
		Background:  "#F5F1E8",
		Text:        "#2C2C2C",
		TextMuted:   "rgba(44, 44, 44, 0.7)",
		Accent:      "#D4AF37",
		Description: "Morning light, fresh start",
	},
	phase.Afternoon: {
		Background:  "#E8EDF2",
		Text:        "#1A365D",
		TextMuted:   "rgba(26, 54, 93, 0.7)",
		Accent:      "#0D7377",
		Description: "The longest part of the fast, calm endurance",
	},
	phase.PreIftar: {
		Background:  "#FFE4D6",
		Gradient:    "linear-gradient(135deg, #FFE4D6 0%, #FFD4B8 100%)",
		Text:        "#4A2C2A",
		TextMuted:   "rgba(74, 44, 42, 0.7)",
		Accent:      "#E86A33",
		Description: "Sunset approaching, anticipation building",
	},
	phase.NearIftar: {
		Background:  "#2D1B69",
		Gradient:    "linear-gradient(135deg, #2D1B69 0%, #1A1A3E 100%)",
		Text:        "#FFFFFF",
		TextMuted:   "rgba(255, 255, 255, 0.7)",
		Accent:      "#FFD700",
		Description: "Twilight, almost there, magical hour",
	},
	phase.AfterIftar: {
		Background:  "#0F1419",
		Text:        "#F0F0F0",
		TextMuted:   "rgba(240, 240, 240, 0.7)",
		Accent:      "#4ECDC4",
		Description: "Night prayer, peaceful reflection",
	},
	phase.LateNight: {
		Background:  "#0A0E14",
		Text:        "#D0D0D0",
		TextMuted:   "rgba(208, 208, 208, 0.7)",
		Accent:      "#A78BFA",
		Description: "Deep night, tahajjud time",
	},
}

// ForPhase returns the theme for a phase. Unknown phases get the afternoon
// theme, mirroring the classifier's default.
func ForPhase(p phase.Phase) Theme {
	if t, ok := themes[p]; ok {
		return t
	}
	return themes[phase.Afternoon]
}
