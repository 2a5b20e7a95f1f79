package scraper

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]`)

// champion slugs lolalytics uses where stripping punctuation is not enough
var slugSpecialCases = map[string]string{
	"nunu & willump": "nunu",
	"nunu&willump":   "nunu",
	"nunuwillump":    "nunu",
	"renata glasc":   "renata",
	"renataglasc":    "renata",
	"monkeyking":     "wukong",
}

// normalizeChampionName turns a display name into a URL slug:
// "Kai'Sa" -> "kaisa", "Dr. Mundo" -> "drmundo".
func normalizeChampionName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := slugSpecialCases[name]; ok {
		return mapped
	}

	clean := nonSlugChars.ReplaceAllString(name, "")
	if mapped, ok := slugSpecialCases[clean]; ok {
		return mapped
	}
	return clean
}

// normalizeLane maps user input to a lolalytics lane parameter. Empty means
// every lane.
func normalizeLane(lane string) string {
	lane = strings.ToLower(strings.TrimSpace(lane))
	switch lane {
	case "top":
		return "top"
	case "mid", "middle":
		return "middle"
	case "adc", "bot", "bottom":
		return "bottom"
	case "jungle", "jg", "jung":
		return "jungle"
	case "support", "supp", "sup":
		return "support"
	}
	return ""
}

// roleDisplayName maps a lolalytics lane to the role label shown to users.
func roleDisplayName(lane string) string {
	switch strings.ToLower(lane) {
	case "top":
		return RoleTop
	case "jungle":
		return RoleJungle
	case "middle", "mid":
		return RoleMid
	case "bottom", "adc", "bot":
		return RoleADC
	case "support":
		return RoleSupport
	}
	return RoleMid
}

// riotIDSlug converts "Name#Tag" to the "Name-Tag" form used in op.gg URLs.
func riotIDSlug(riotID string) string {
	riotID = strings.TrimSpace(riotID)
	if name, tag, ok := strings.Cut(riotID, "#"); ok {
		return name + "-" + tag
	}
	return riotID
}
