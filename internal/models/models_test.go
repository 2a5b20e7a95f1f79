package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKDARatio(t *testing.T) {
	assert.Equal(t, 6.0, KDARatio(4, 2, 8))
	assert.Equal(t, 12.0, KDARatio(4, 0, 8))
	assert.Equal(t, 0.0, KDARatio(0, 3, 0))
}

func TestChampionKey(t *testing.T) {
	tests := []struct {
		a, b string
		same bool
	}{
		{"Kai'Sa", "Kaisa", true},
		{"Lee Sin", "LeeSin", true},
		{"Dr. Mundo", "DrMundo", true},
		{"Nunu & Willump", "nunuwillump", true},
		{"Wukong", "MonkeyKing", false},
		{"Ahri", "Akali", false},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.same, ChampionKey(tt.a) == ChampionKey(tt.b))
		})
	}
}

func TestAggregateChampionPerformances(t *testing.T) {
	raw := []ChampionPerformance{
		{ChampionName: "Ahri", GamesPlayed: 2, Wins: 1, Losses: 1, Kills: 10, Deaths: 4, Assists: 6, CSPerMin: 8},
		{ChampionName: "Zed", GamesPlayed: 5, Wins: 3, Losses: 2, Kills: 30, Deaths: 10, Assists: 10, CSPerMin: 7},
		{ChampionName: "Ahri", GamesPlayed: 4, Wins: 3, Losses: 1, Kills: 20, Deaths: 0, Assists: 10, CSPerMin: 6},
	}

	out := AggregateChampionPerformances(raw)
	require.Len(t, out, 2)

	ahri := out[0]
	assert.Equal(t, "Ahri", ahri.ChampionName)
	assert.Equal(t, 6, ahri.GamesPlayed)
	assert.Equal(t, 4, ahri.Wins)
	assert.Equal(t, 2, ahri.Losses)
	assert.InDelta(t, 66.67, ahri.WinRate, 0.01)
	assert.Equal(t, 30.0, ahri.Kills)
	assert.Equal(t, 4.0, ahri.Deaths)
	assert.InDelta(t, 11.5, ahri.KDA, 1e-9)
	assert.Equal(t, 7.0, ahri.CSPerMin)

	assert.Equal(t, "Zed", out[1].ChampionName)
	assert.Equal(t, ahri.Wins+ahri.Losses, ahri.GamesPlayed)
}

func TestManualMatchDerivedFields(t *testing.T) {
	m := ManualMatch{Kills: 10, Deaths: 3, Assists: 8, CS: 180, GameDuration: 25, Result: "win"}
	assert.InDelta(t, 6.0, m.KDA(), 1e-9)
	assert.InDelta(t, 7.2, m.CSPerMin(), 1e-9)
	assert.True(t, m.Won())

	perfect := ManualMatch{Kills: 5, Assists: 5}
	assert.Equal(t, 10.0, perfect.KDA())
	assert.Equal(t, 0.0, perfect.CSPerMin())
}

func TestManualMatchValidate(t *testing.T) {
	valid := ManualMatch{SummonerName: "Odd", ChampionName: "Ahri", Result: "LOSS"}
	assert.NoError(t, valid.Validate())

	err := ManualMatch{Result: "DRAW", Kills: -1}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summoner name")
	assert.Contains(t, err.Error(), "champion name")
	assert.Contains(t, err.Error(), "WIN or LOSS")
	assert.Contains(t, err.Error(), "negative")
}

func TestNewTournamentStatsEmpty(t *testing.T) {
	stats := NewTournamentStats(nil, nil)

	assert.Equal(t, 0, stats.TotalGames)
	assert.Equal(t, "None", stats.MostPlayedChampion)
	assert.Equal(t, "None", stats.BestPerformingChampion)
	assert.Empty(t, stats.RecentTournaments)
	assert.NotNil(t, stats.TournamentCodes)
}

func TestNewTournamentStats(t *testing.T) {
	games := []TournamentGame{
		{GameID: "a", Date: "2024-03-01", Result: ResultWin, Champion: "Ahri", KDA: 4, CS: 200, Damage: 20000},
		{GameID: "b", Date: "2024-03-05", Result: ResultLoss, Champion: "Ahri", KDA: 1, CS: 150, Damage: 10000},
		{GameID: "c", Date: "2024-03-03", Result: ResultWin, Champion: "Zed", KDA: 8, CS: 180, Damage: 30000},
		{GameID: "d", Date: "2024-02-01", Result: ResultUnknown, Champion: UnknownChampion},
	}

	stats := NewTournamentStats(games, []string{"EUW2024"})

	assert.Equal(t, 4, stats.TotalGames)
	assert.Equal(t, 2, stats.Wins)
	assert.Equal(t, 1, stats.Losses)
	assert.Equal(t, 50.0, stats.WinRate)
	assert.Equal(t, 13.0/4, stats.AverageKDA)
	assert.Equal(t, 530.0/4, stats.AverageCS)
	assert.Equal(t, 60000.0/4, stats.AverageDamage)
	assert.Equal(t, "Ahri", stats.MostPlayedChampion)
	assert.Equal(t, "Zed", stats.BestPerformingChampion)
	require.Len(t, stats.RecentTournaments, 4)
	assert.Equal(t, "b", stats.RecentTournaments[0].GameID)
	assert.Equal(t, "d", stats.RecentTournaments[3].GameID)
}

func TestNewTournamentStatsOnlyUnknownChampions(t *testing.T) {
	stats := NewTournamentStats([]TournamentGame{{GameID: "custom_0", Champion: UnknownChampion}}, nil)

	assert.Equal(t, 1, stats.TotalGames)
	assert.Equal(t, UnknownChampion, stats.MostPlayedChampion)
	assert.Equal(t, UnknownChampion, stats.BestPerformingChampion)
}

func TestPlayerProfileSummaries(t *testing.T) {
	empty := &PlayerProfile{}
	assert.Equal(t, NoData, empty.MostPlayedChampion())
	assert.Equal(t, NoData, empty.PreferredRole())
	assert.Equal(t, 0.0, empty.RecentWinRate())
	assert.Equal(t, 0.0, empty.AverageKDA())

	p := &PlayerProfile{
		RecentMatches: []MatchPerformance{
			{Kills: 5, Deaths: 1, Assists: 5, Win: true},
			{Kills: 2, Deaths: 0, Assists: 2, Win: false},
		},
		ChampionPool:   map[string]int{"Ahri": 3, "Zed": 1},
		RolePreference: map[string]float64{"Mid": 75, "Top": 25},
	}
	assert.Equal(t, "Ahri", p.MostPlayedChampion())
	assert.Equal(t, "Mid", p.PreferredRole())
	assert.Equal(t, 50.0, p.RecentWinRate())
	assert.Equal(t, 7.0, p.AverageKDA())
}

func TestRankedStatsTotalGames(t *testing.T) {
	assert.Equal(t, 30, RankedStats{Wins: 18, Losses: 12}.TotalGames())
}

func TestParseRiotID(t *testing.T) {
	tests := []struct {
		in      string
		want    RiotID
		wantErr bool
	}{
		{in: "Odd#kimmy", want: RiotID{GameName: "Odd", TagLine: "kimmy"}},
		{in: "Odd-kimmy", want: RiotID{GameName: "Odd", TagLine: "kimmy"}},
		{in: "Some One#EUW", want: RiotID{GameName: "Some One", TagLine: "EUW"}},
		{in: "Faker", want: RiotID{GameName: "Faker"}},
		{in: "  ", wantErr: true},
		{in: "#EUW", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRiotID(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRiotID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	id := RiotID{GameName: "Odd", TagLine: "kimmy"}
	assert.Equal(t, "Odd#kimmy", id.String())
	assert.Equal(t, "Odd-kimmy", id.Slug())
}

func TestFormatRank(t *testing.T) {
	assert.Equal(t, "Gold II", FormatRank("GOLD", "II"))
	assert.Equal(t, "Diamond 4", FormatRank("diamond", "4"))
	assert.Equal(t, "Master", FormatRank("MASTER", "I"))
	assert.Equal(t, "Challenger", FormatRank("CHALLENGER", ""))
	assert.Equal(t, Unranked, FormatRank("", ""))
}
