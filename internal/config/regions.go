package config

import "strings"

// Region maps a short region key to its Riot API hosts.
type Region struct {
	Key      string // euw
	Platform string // euw1, used by summoner and league endpoints
	Routing  string // europe, used by account and match endpoints
	Name     string
}

var regions = map[string]Region{
	"euw":  {Key: "euw", Platform: "euw1", Routing: "europe", Name: "Europe West"},
	"eune": {Key: "eune", Platform: "eun1", Routing: "europe", Name: "Europe Nordic & East"},
	"na":   {Key: "na", Platform: "na1", Routing: "americas", Name: "North America"},
	"kr":   {Key: "kr", Platform: "kr", Routing: "asia", Name: "Korea"},
	"br":   {Key: "br", Platform: "br1", Routing: "americas", Name: "Brazil"},
	"jp":   {Key: "jp", Platform: "jp1", Routing: "asia", Name: "Japan"},
	"ru":   {Key: "ru", Platform: "ru", Routing: "europe", Name: "Russia"},
	"oce":  {Key: "oce", Platform: "oc1", Routing: "americas", Name: "Oceania"},
	"tr":   {Key: "tr", Platform: "tr1", Routing: "europe", Name: "Turkey"},
	"lan":  {Key: "lan", Platform: "la1", Routing: "americas", Name: "Latin America North"},
	"las":  {Key: "las", Platform: "la2", Routing: "americas", Name: "Latin America South"},
}

// LookupRegion resolves a short region key ("euw") or a platform id ("euw1").
func LookupRegion(key string) (Region, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	if r, ok := regions[key]; ok {
		return r, true
	}
	for _, r := range regions {
		if r.Platform == key {
			return r, true
		}
	}
	return Region{}, false
}

// RegionKeys returns every supported short region key.
func RegionKeys() []string {
	return []string{"euw", "eune", "na", "kr", "br", "jp", "ru", "oce", "tr", "lan", "las"}
}

var queueNames = map[string]string{
	"RANKED_SOLO_5x5": "Solo Queue",
	"RANKED_FLEX_SR":  "Flex 5v5",
	"RANKED_TFT":      "TFT",
}

// QueueName returns a display name for a league queue type.
func QueueName(queueType string) string {
	if name, ok := queueNames[queueType]; ok {
		return name
	}
	return queueType
}

var roleNames = map[string]string{
	"TOP":     "Top",
	"JUNGLE":  "Jungle",
	"MIDDLE":  "Mid",
	"BOTTOM":  "Bot Lane",
	"UTILITY": "Support",
}

// RoleName returns a display name for a match-v5 teamPosition.
func RoleName(position string) string {
	if name, ok := roleNames[strings.ToUpper(position)]; ok {
		return name
	}
	if position == "" {
		return "Unknown"
	}
	return position
}
