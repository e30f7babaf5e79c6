package forecast

import "strings"

// Palette defines the color scheme the dashboard uses for the current sky.
type Palette struct {
	Background string
	Card       string
	CardBorder string
	Text       string
	TextMuted  string
	Accent     string
}

// Condition is a coarse sky condition derived from a provider icon id.
type Condition string

const (
	ConditionClear        Condition = "clear"
	ConditionPartlyCloudy Condition = "partly_cloudy"
	ConditionCloudy       Condition = "cloudy"
	ConditionRain         Condition = "rain"
	ConditionStorm        Condition = "storm"
	ConditionSnow         Condition = "snow"
	ConditionFog          Condition = "fog"
	ConditionUnknown      Condition = "unknown"
)

// DefaultPalette is used before any weather has been loaded.
var DefaultPalette = Palette{
	Background: "#f4f6fa",
	Card:       "#ffffff",
	CardBorder: "#1e88e5",
	Text:       "#333333",
	TextMuted:  "#666666",
	Accent:     "#1e88e5",
}

// palettes maps condition+daypart keys to color schemes. Night variants are
// darker and cooler.
var palettes = map[string]Palette{
	"clear_day": {
		Background: "#f5f0e8",
		Card:       "#ffffff",
		CardBorder: "#e0a040",
		Text:       "#2a2520",
		TextMuted:  "#706050",
		Accent:     "#d07020",
	},
	"clear_night": {
		Background: "#0a0a12",
		Card:       "#141420",
		CardBorder: "#252535",
		Text:       "#dde0e8",
		TextMuted:  "#556070",
		Accent:     "#7799cc",
	},
	"partly_cloudy_day": {
		Background: "#e8eef4",
		Card:       "#ffffff",
		CardBorder: "#90b0d0",
		Text:       "#203040",
		TextMuted:  "#607080",
		Accent:     "#3080c0",
	},
	"partly_cloudy_night": {
		Background: "#10141c",
		Card:       "#1a2028",
		CardBorder: "#2a3440",
		Text:       "#dce4ec",
		TextMuted:  "#607080",
		Accent:     "#6890b8",
	},
	"cloudy_day": {
		Background: "#dde2e8",
		Card:       "#f0f2f5",
		CardBorder: "#a0a8b4",
		Text:       "#252a30",
		TextMuted:  "#5a6470",
		Accent:     "#4a78a0",
	},
	"cloudy_night": {
		Background: "#121418",
		Card:       "#1c1f24",
		CardBorder: "#2c3038",
		Text:       "#d8dce2",
		TextMuted:  "#5c6470",
		Accent:     "#6a88a8",
	},
	"rain_day": {
		Background: "#d0dae4",
		Card:       "#e8eef4",
		CardBorder: "#7090b0",
		Text:       "#1a2838",
		TextMuted:  "#4a6078",
		Accent:     "#2070b0",
	},
	"rain_night": {
		Background: "#0a1018",
		Card:       "#121a24",
		CardBorder: "#1e2a38",
		Text:       "#d0dce8",
		TextMuted:  "#506a84",
		Accent:     "#4a88c0",
	},
	"storm_day": {
		Background: "#3a3a48",
		Card:       "#4a4a5a",
		CardBorder: "#6a6a80",
		Text:       "#f0f0f8",
		TextMuted:  "#a0a0b8",
		Accent:     "#ffcc44",
	},
	"storm_night": {
		Background: "#08080e",
		Card:       "#12121a",
		CardBorder: "#22222e",
		Text:       "#e0e0ea",
		TextMuted:  "#60607a",
		Accent:     "#ddbb44",
	},
	"snow_day": {
		Background: "#e4ecf4",
		Card:       "#f4f8fc",
		CardBorder: "#c4d4e4",
		Text:       "#102030",
		TextMuted:  "#406080",
		Accent:     "#2080b8",
	},
	"snow_night": {
		Background: "#040810",
		Card:       "#0a1018",
		CardBorder: "#121c28",
		Text:       "#d0d8e4",
		TextMuted:  "#506080",
		Accent:     "#5080a0",
	},
	"fog_day": {
		Background: "#e0e0dc",
		Card:       "#f0f0ec",
		CardBorder: "#b8b8b0",
		Text:       "#30302c",
		TextMuted:  "#707068",
		Accent:     "#708090",
	},
	"fog_night": {
		Background: "#141414",
		Card:       "#1e1e1e",
		CardBorder: "#2e2e2e",
		Text:       "#d8d8d4",
		TextMuted:  "#686864",
		Accent:     "#8090a0",
	},
}

// ConditionFromIcon maps a provider icon id such as "10d" to a coarse
// condition.
func ConditionFromIcon(icon string) Condition {
	if len(icon) < 2 {
		return ConditionUnknown
	}
	switch icon[:2] {
	case "01":
		return ConditionClear
	case "02":
		return ConditionPartlyCloudy
	case "03", "04":
		return ConditionCloudy
	case "09", "10":
		return ConditionRain
	case "11":
		return ConditionStorm
	case "13":
		return ConditionSnow
	case "50":
		return ConditionFog
	}
	return ConditionUnknown
}

// PaletteForIcon picks the palette for a provider icon id. Icons ending in
// "n" are night icons.
func PaletteForIcon(icon string) Palette {
	cond := ConditionFromIcon(icon)
	if cond == ConditionUnknown {
		return DefaultPalette
	}
	part := "day"
	if strings.HasSuffix(icon, "n") {
		part = "night"
	}
	if p, ok := palettes[string(cond)+"_"+part]; ok {
		return p
	}
	return DefaultPalette
}
