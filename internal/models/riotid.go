package models

import (
	"errors"
	"strings"
)

// ErrInvalidRiotID is returned for an empty Riot ID.
var ErrInvalidRiotID = errors.New("invalid riot id")

// RiotID is a player's "GameName#TagLine" identity.
type RiotID struct {
	GameName string
	TagLine  string
}

// ParseRiotID accepts "Name#Tag" or the URL form "Name-Tag". A bare name
// yields an empty TagLine.
func ParseRiotID(s string) (RiotID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RiotID{}, ErrInvalidRiotID
	}

	sep := strings.LastIndex(s, "#")
	if sep < 0 {
		sep = strings.LastIndex(s, "-")
	}
	if sep < 0 {
		return RiotID{GameName: s}, nil
	}

	id := RiotID{
		GameName: strings.TrimSpace(s[:sep]),
		TagLine:  strings.TrimSpace(s[sep+1:]),
	}
	if id.GameName == "" {
		return RiotID{}, ErrInvalidRiotID
	}
	return id, nil
}

// String returns "Name#Tag", or just the name without a tag.
func (r RiotID) String() string {
	if r.TagLine == "" {
		return r.GameName
	}
	return r.GameName + "#" + r.TagLine
}

// Slug returns the "Name-Tag" form used in profile URLs.
func (r RiotID) Slug() string {
	if r.TagLine == "" {
		return r.GameName
	}
	return r.GameName + "-" + r.TagLine
}

var apexTiers = map[string]bool{
	"MASTER":      true,
	"GRANDMASTER": true,
	"CHALLENGER":  true,
}

// FormatRank builds "Gold II" from a tier and division. Master and above
// have no divisions. An empty tier is Unranked.
func FormatRank(tier, division string) string {
	tier = strings.TrimSpace(tier)
	if tier == "" || strings.EqualFold(tier, "UNRANKED") {
		return Unranked
	}

	display := strings.ToUpper(tier[:1]) + strings.ToLower(tier[1:])
	if apexTiers[strings.ToUpper(tier)] || division == "" {
		return display
	}
	return display + " " + strings.ToUpper(division)
}
