// Package riot provides a Riot Games API client and the analysis built on
// its match data.
package riot

// AccountResponse represents the response from Riot Account API.
type AccountResponse struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// MatchInfo represents the info section of a match response.
type MatchInfo struct {
	GameCreation       int64         `json:"gameCreation"` // epoch millis
	GameDuration       int64         `json:"gameDuration"`
	GameEndTimestamp   int64         `json:"gameEndTimestamp"`
	GameStartTimestamp int64         `json:"gameStartTimestamp"`
	GameMode           string        `json:"gameMode"`
	GameType           string        `json:"gameType"` // MATCHED_GAME, CUSTOM_GAME
	QueueID            int           `json:"queueId"`
	TournamentCode     string        `json:"tournamentCode"`
	Participants       []Participant `json:"participants"`
}

// DurationSeconds returns the game length in seconds. Matches played before
// gameEndTimestamp existed report gameDuration in milliseconds.
func (i MatchInfo) DurationSeconds() int64 {
	if i.GameEndTimestamp == 0 && i.GameDuration > 36000 {
		return i.GameDuration / 1000
	}
	return i.GameDuration
}

// MatchResponse represents the full match response from Riot API.
type MatchResponse struct {
	Metadata struct {
		MatchID      string   `json:"matchId"`
		Participants []string `json:"participants"`
	} `json:"metadata"`
	Info MatchInfo `json:"info"`
}

// Participant finds the player's record in the match.
func (m *MatchResponse) Participant(puuid string) (*Participant, bool) {
	for i := range m.Info.Participants {
		if m.Info.Participants[i].PUUID == puuid {
			return &m.Info.Participants[i], true
		}
	}
	return nil, false
}

// Participant represents a player in a match.
type Participant struct {
	PUUID              string `json:"puuid"`
	ParticipantID      int    `json:"participantId"`
	RiotIDGameName     string `json:"riotIdGameName"`
	RiotIDTagline      string `json:"riotIdTagline"`
	ChampionID         int    `json:"championId"`
	ChampionName       string `json:"championName"`
	TeamID             int    `json:"teamId"`
	TeamPosition       string `json:"teamPosition"`
	IndividualPosition string `json:"individualPosition"`
	Win                bool   `json:"win"`
	Kills              int    `json:"kills"`
	Deaths             int    `json:"deaths"`
	Assists            int    `json:"assists"`
	ChampLevel         int    `json:"champLevel"`

	// Damage
	TotalDamageDealtToChampions int `json:"totalDamageDealtToChampions"`

	// CS and Gold
	TotalMinionsKilled   int `json:"totalMinionsKilled"`
	NeutralMinionsKilled int `json:"neutralMinionsKilled"`
	GoldEarned           int `json:"goldEarned"`

	// Vision
	VisionScore int `json:"visionScore"`
}

// CS returns lane plus jungle minions killed.
func (p Participant) CS() int {
	return p.TotalMinionsKilled + p.NeutralMinionsKilled
}

// SummonerDTO represents summoner data from Riot API.
type SummonerDTO struct {
	ID            string `json:"id"`
	AccountID     string `json:"accountId"`
	PUUID         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	SummonerLevel int64  `json:"summonerLevel"`
}

// LeagueEntryDTO represents ranked league entry from Riot API.
type LeagueEntryDTO struct {
	LeagueID     string `json:"leagueId"`
	SummonerID   string `json:"summonerId"`
	PUUID        string `json:"puuid"`
	QueueType    string `json:"queueType"` // RANKED_SOLO_5x5, RANKED_FLEX_SR
	Tier         string `json:"tier"`      // IRON ... CHALLENGER
	Rank         string `json:"rank"`      // I, II, III, IV
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	HotStreak    bool   `json:"hotStreak"`
	Veteran      bool   `json:"veteran"`
	FreshBlood   bool   `json:"freshBlood"`
	Inactive     bool   `json:"inactive"`
}

// ChampionMasteryDTO represents one champion-mastery-v4 entry.
type ChampionMasteryDTO struct {
	PUUID          string `json:"puuid"`
	ChampionID     int    `json:"championId"`
	ChampionLevel  int    `json:"championLevel"`
	ChampionPoints int    `json:"championPoints"`
	LastPlayTime   int64  `json:"lastPlayTime"`
}

// Queue types.
const (
	QueueSolo = "RANKED_SOLO_5x5"
	QueueFlex = "RANKED_FLEX_SR"
)

// Match queue ids used when filtering match history.
const (
	QueueIDCustom     = 0
	QueueIDRankedSolo = 420
	QueueIDRankedFlex = 440
)

// TierOrder maps tier names to numeric values for sorting.
var TierOrder = map[string]int{
	"CHALLENGER":  10,
	"GRANDMASTER": 9,
	"MASTER":      8,
	"DIAMOND":     7,
	"EMERALD":     6,
	"PLATINUM":    5,
	"GOLD":        4,
	"SILVER":      3,
	"BRONZE":      2,
	"IRON":        1,
	"UNRANKED":    0,
}

// RankOrder maps rank to numeric value for sorting within tier.
var RankOrder = map[string]int{
	"I":   4,
	"II":  3,
	"III": 2,
	"IV":  1,
}
