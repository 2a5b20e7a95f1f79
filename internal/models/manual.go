package models

import (
	"errors"
	"strings"
)

// Match results.
const (
	ResultWin     = "WIN"
	ResultLoss    = "LOSS"
	ResultUnknown = "UNKNOWN"
)

// ManualDateLayout is the timestamp format stored in ManualMatch.Date.
const ManualDateLayout = "2006-01-02 15:04:05"

// ManualMatch is a game entered by hand, typically a custom or tournament
// game that never shows up in ranked history.
type ManualMatch struct {
	MatchID      string  `json:"match_id"`
	SummonerName string  `json:"summoner_name"`
	ChampionName string  `json:"champion_name"`
	Result       string  `json:"result"`
	Kills        float64 `json:"kills"`
	Deaths       float64 `json:"deaths"`
	Assists      float64 `json:"assists"`
	CS           float64 `json:"cs"`
	GameDuration int     `json:"game_duration"` // minutes
	QueueType    string  `json:"queue_type"`
	Date         string  `json:"date"`
	Notes        string  `json:"notes"`
}

// KDA returns the game's (kills + assists) / deaths ratio.
func (m ManualMatch) KDA() float64 {
	return KDARatio(m.Kills, m.Deaths, m.Assists)
}

// CSPerMin returns creep score per minute, 0 for a zero-length game.
func (m ManualMatch) CSPerMin() float64 {
	if m.GameDuration == 0 {
		return 0
	}
	return m.CS / float64(m.GameDuration)
}

// Won reports whether the match was recorded as a win.
func (m ManualMatch) Won() bool {
	return strings.EqualFold(m.Result, ResultWin)
}

// Validate checks the fields a user has to supply.
func (m ManualMatch) Validate() error {
	var errs []error
	if strings.TrimSpace(m.SummonerName) == "" {
		errs = append(errs, errors.New("summoner name is required"))
	}
	if strings.TrimSpace(m.ChampionName) == "" {
		errs = append(errs, errors.New("champion name is required"))
	}
	if r := strings.ToUpper(m.Result); r != ResultWin && r != ResultLoss {
		errs = append(errs, errors.New("result must be WIN or LOSS"))
	}
	if m.Kills < 0 || m.Deaths < 0 || m.Assists < 0 || m.CS < 0 {
		errs = append(errs, errors.New("kills, deaths, assists and cs must not be negative"))
	}
	if m.GameDuration < 0 {
		errs = append(errs, errors.New("game duration must not be negative"))
	}
	return errors.Join(errs...)
}
