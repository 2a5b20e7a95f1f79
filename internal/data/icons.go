package data

import (
	"fmt"
	"strings"
)

// Data Dragon ids that differ from the display name.
var iconNameMapping = map[string]string{
	"wukong":         "MonkeyKing",
	"cho'gath":       "Chogath",
	"chogath":        "Chogath",
	"vel'koz":        "Velkoz",
	"velkoz":         "Velkoz",
	"kha'zix":        "Khazix",
	"khazix":         "Khazix",
	"kai'sa":         "Kaisa",
	"kaisa":          "Kaisa",
	"bel'veth":       "Belveth",
	"belveth":        "Belveth",
	"k'sante":        "KSante",
	"ksante":         "KSante",
	"rek'sai":        "RekSai",
	"reksai":         "RekSai",
	"kog'maw":        "KogMaw",
	"kogmaw":         "KogMaw",
	"leblanc":        "Leblanc",
	"nunu & willump": "Nunu",
	"renata glasc":   "Renata",
	"dr. mundo":      "DrMundo",
	"aurelion sol":   "AurelionSol",
	"jarvan iv":      "JarvanIV",
	"lee sin":        "LeeSin",
	"master yi":      "MasterYi",
	"miss fortune":   "MissFortune",
	"tahm kench":     "TahmKench",
	"twisted fate":   "TwistedFate",
	"xin zhao":       "XinZhao",
}

// ChampionIconID returns the Data Dragon image id for a champion name.
func ChampionIconID(championName string) string {
	name := strings.TrimSpace(championName)
	if mapped, ok := iconNameMapping[strings.ToLower(name)]; ok {
		return mapped
	}

	var b strings.Builder
	upperNext := true
	for _, r := range name {
		switch {
		case r == ' ' || r == '\'' || r == '.' || r == '&':
			upperNext = true
		case upperNext:
			b.WriteString(strings.ToUpper(string(r)))
			upperNext = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ChampionIconURL returns the champion square icon URL.
func ChampionIconURL(baseURL, version, championName string) string {
	return fmt.Sprintf("%s/cdn/%s/img/champion/%s.png", baseURL, version, ChampionIconID(championName))
}
