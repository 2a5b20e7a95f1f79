// Package render formats scoutle results as plain text for the terminal.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/scoutle/internal/models"
	"github.com/scoutle/internal/services/hybrid"
)

const timeLayout = "2006-01-02 15:04"

// Medal returns the list marker for a 0-based position.
func Medal(index int) string {
	switch index {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", index+1)
	}
}

// RoleIcon returns an icon for a role in any of the spellings the Riot API
// and the scrapers use.
func RoleIcon(role string) string {
	switch strings.ToUpper(role) {
	case "TOP":
		return "🛡️"
	case "JUNGLE":
		return "🌲"
	case "MIDDLE", "MID":
		return "⚡"
	case "BOTTOM", "BOT LANE", "ADC":
		return "🏹"
	case "UTILITY", "SUPPORT":
		return "💚"
	}
	return "🎮"
}

// Rank formats a rank with its LP, leaving unranked queues bare.
func Rank(rank string, lp int) string {
	if rank == "" || rank == models.Unranked {
		return models.Unranked
	}
	return fmt.Sprintf("%s (%d LP)", rank, lp)
}

func table(b *strings.Builder) *tabwriter.Writer {
	return tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
}

func flush(w io.Writer, b *strings.Builder, tw *tabwriter.Writer) error {
	if tw != nil {
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Account writes a player summary and up to limit champions; limit <= 0
// writes them all.
func Account(w io.Writer, acc *models.PlayerAccount, limit int) error {
	var b strings.Builder
	writeAccount(&b, acc, limit)
	return flush(w, &b, nil)
}

func writeAccount(b *strings.Builder, acc *models.PlayerAccount, limit int) {
	fmt.Fprintf(b, "%s (%s)  level %d  [%s]\n", acc.SummonerName, strings.ToUpper(acc.Region), acc.Level, acc.Source)
	fmt.Fprintf(b, "Solo/Duo: %s\n", Rank(acc.SoloQRank, acc.SoloQLP))
	fmt.Fprintf(b, "Flex:     %s\n", Rank(acc.FlexRank, acc.FlexLP))
	if !acc.LastUpdated.IsZero() {
		fmt.Fprintf(b, "Updated:  %s\n", acc.LastUpdated.Format(timeLayout))
	}

	perfs := acc.ChampionPerformances
	if len(perfs) == 0 {
		b.WriteString("\nNo champion data.\n")
		return
	}
	if limit > 0 && len(perfs) > limit {
		perfs = perfs[:limit]
	}

	fmt.Fprintf(b, "\nChampions (%d, %d games)\n", len(acc.ChampionPerformances), acc.TotalGames())
	writePerformances(b, perfs)
}

// Performances writes a champion table, most played first as given.
func Performances(w io.Writer, perfs []models.ChampionPerformance) error {
	var b strings.Builder
	if len(perfs) == 0 {
		b.WriteString("No champion data.\n")
		return flush(w, &b, nil)
	}
	writePerformances(&b, perfs)
	return flush(w, &b, nil)
}

func writePerformances(b *strings.Builder, perfs []models.ChampionPerformance) {
	tw := table(b)
	fmt.Fprintln(tw, "\tCHAMPION\tGAMES\tW/L\tWR\tK/D/A\tKDA\tCS/MIN")
	for i, p := range perfs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d/%d\t%.1f%%\t%.1f/%.1f/%.1f\t%.2f\t%.1f\n",
			Medal(i), p.ChampionName, p.GamesPlayed, p.Wins, p.Losses, p.WinRate,
			p.Kills, p.Deaths, p.Assists, p.KDA, p.CSPerMin)
	}
	_ = tw.Flush()
}

// Comprehensive writes each source's account followed by the combination.
func Comprehensive(w io.Writer, d *hybrid.ComprehensiveData, limit int) error {
	var b strings.Builder
	sections := []struct {
		title   string
		account *models.PlayerAccount
	}{
		{"op.gg", d.OPGG},
		{"Riot API", d.Riot},
		{"Combined", d.Combined},
	}
	for _, s := range sections {
		fmt.Fprintf(&b, "== %s ==\n", s.title)
		if s.account == nil {
			b.WriteString("unavailable\n\n")
			continue
		}
		writeAccount(&b, s.account, limit)
		b.WriteString("\n")
	}
	return flush(w, &b, nil)
}

// Analyses writes analyzer results, most played first.
func Analyses(w io.Writer, analyses []models.ChampionAnalysis) error {
	var b strings.Builder
	if len(analyses) == 0 {
		b.WriteString("No ranked games to analyze.\n")
		return flush(w, &b, nil)
	}

	tw := table(&b)
	fmt.Fprintln(tw, "CHAMPION\tGAMES\tWR\tKDA\tCS/MIN\tGOLD/MIN\tDMG/MIN\tROLE\tTREND")
	for _, a := range analyses {
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\t%.2f\t%.1f\t%.0f\t%.0f\t%s %s\t%s\n",
			a.ChampionName, a.GamesPlayed, a.WinRate, a.AvgKDA, a.AvgCSPerMin,
			a.AvgGoldPerMin, a.AvgDamagePerMin, RoleIcon(a.MostCommonRole), a.MostCommonRole, a.RecentTrend)
	}
	return flush(w, &b, tw)
}

// Profile writes a Riot API player profile.
func Profile(w io.Writer, p *models.PlayerProfile) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)  level %d\n", p.RiotID, strings.ToUpper(p.Region), p.SummonerLevel)

	b.WriteString("\nRanked\n")
	if len(p.RankedStats) == 0 {
		b.WriteString("  Unranked\n")
	}
	for _, r := range p.RankedStats {
		fmt.Fprintf(&b, "  %s: %s %s %d LP  %dW %dL (%.1f%%)\n",
			r.QueueType, r.Tier, r.Rank, r.LP, r.Wins, r.Losses, r.WinRate)
	}

	fmt.Fprintf(&b, "\nRecent games: %d  win rate %.1f%%  average KDA %.2f\n",
		len(p.RecentMatches), p.RecentWinRate(), p.AverageKDA())
	fmt.Fprintf(&b, "Most played: %s  Preferred role: %s %s\n",
		p.MostPlayedChampion(), RoleIcon(p.PreferredRole()), p.PreferredRole())

	tw := table(&b)
	for _, m := range p.RecentMatches {
		result := "L"
		if m.Win {
			result = "W"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%d/%d/%d\t%dm\n",
			result, m.Champion, m.Role, m.Kills, m.Deaths, m.Assists, m.GameDuration/60)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(p.TopMasteries) > 0 {
		b.WriteString("\nTop masteries\n")
		for i, m := range p.TopMasteries {
			fmt.Fprintf(&b, "  %s %s  level %d  %s pts\n", Medal(i), m.ChampionName, m.ChampionLevel, humanize.Comma(int64(m.Points)))
		}
	}

	if len(p.PerformanceTrends) > 0 {
		b.WriteString("\nTrends\n")
		keys := make([]string, 0, len(p.PerformanceTrends))
		for k := range p.PerformanceTrends {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %.2f\n", k, p.PerformanceTrends[k])
		}
	}
	return flush(w, &b, nil)
}

// ChampionStats writes a lolalytics build page summary.
func ChampionStats(w io.Writer, s *models.DetailedChampionStats) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s  tier %s  patch %s\n", RoleIcon(s.Role), s.ChampionName, s.Role, s.Tier, s.Patch)
	fmt.Fprintf(&b, "Win %.2f%%  Pick %.2f%%  Ban %.2f%%\n", s.WinRate, s.PickRate, s.BanRate)
	fmt.Fprintf(&b, "Runes: %s (%s) + %s\n", s.PrimaryRune, s.PrimaryTree, s.SecondaryTree)
	fmt.Fprintf(&b, "Highest win rate build: %s\n", list(s.HighestWinRateItems))
	fmt.Fprintf(&b, "Most popular build:     %s\n", list(s.PopularItems))
	fmt.Fprintf(&b, "Strong against: %s\n", matchups(s.BestMatchups))
	fmt.Fprintf(&b, "Weak against:   %s\n", matchups(s.WorstMatchups))
	return flush(w, &b, nil)
}

func list(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func matchups(ms []models.Matchup) string {
	if len(ms) == 0 {
		return "-"
	}
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = m.OpponentName
		if m.WinRate > 0 {
			parts[i] += fmt.Sprintf(" (%.1f%%)", m.WinRate)
		}
	}
	return strings.Join(parts, ", ")
}

// Meta writes champion meta rows sorted by win rate.
func Meta(w io.Writer, metas map[string]*models.ChampionMetaData) error {
	rows := make([]*models.ChampionMetaData, 0, len(metas))
	for _, m := range metas {
		rows = append(rows, m)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].WinRate != rows[j].WinRate {
			return rows[i].WinRate > rows[j].WinRate
		}
		return rows[i].ChampionName < rows[j].ChampionName
	})

	var b strings.Builder
	tw := table(&b)
	fmt.Fprintln(tw, "CHAMPION\tROLE\tTIER\tWR\tPICK\tBAN\tPATCH")
	for _, m := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f%%\t%.2f%%\t%.2f%%\t%s\n",
			m.ChampionName, m.Role, m.Tier, m.WinRate, m.PickRate, m.BanRate, m.Patch)
	}
	return flush(w, &b, tw)
}

// Comparison writes a head-to-head champion comparison.
func Comparison(w io.Writer, c *models.ChampionComparison) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s vs %s (%s)\n", c.Champion1.ChampionName, c.Champion2.ChampionName, c.Role)
	fmt.Fprintf(&b, "Matchup win rate: %.1f%%  %s\n\n", c.MatchupWinRate, c.LaneDifficulty)

	tw := table(&b)
	fmt.Fprintf(tw, "\t%s\t%s\n", c.Champion1.ChampionName, c.Champion2.ChampionName)
	fmt.Fprintf(tw, "Tier\t%s\t%s\n", c.Champion1.Tier, c.Champion2.Tier)
	fmt.Fprintf(tw, "Win rate\t%.2f%%\t%.2f%%\n", c.Champion1.WinRate, c.Champion2.WinRate)
	fmt.Fprintf(tw, "Pick rate\t%.2f%%\t%.2f%%\n", c.Champion1.PickRate, c.Champion2.PickRate)
	fmt.Fprintf(tw, "Ban rate\t%.2f%%\t%.2f%%\n", c.Champion1.BanRate, c.Champion2.BanRate)
	fmt.Fprintf(tw, "Keystone\t%s\t%s\n", c.Champion1.PrimaryRune, c.Champion2.PrimaryRune)
	return flush(w, &b, tw)
}

// Tournament writes tournament statistics and the most recent games.
func Tournament(w io.Writer, s *models.TournamentStats) error {
	var b strings.Builder
	if s.TotalGames == 0 {
		b.WriteString("No tournament games found.\n")
		return flush(w, &b, nil)
	}

	fmt.Fprintf(&b, "Tournament games: %d  %dW %dL (%.1f%%)\n", s.TotalGames, s.Wins, s.Losses, s.WinRate)
	fmt.Fprintf(&b, "Most played: %s  Best: %s\n", s.MostPlayedChampion, s.BestPerformingChampion)
	fmt.Fprintf(&b, "Average KDA %.2f  CS %.0f  damage %s\n", s.AverageKDA, s.AverageCS, humanize.Comma(int64(s.AverageDamage)))
	if len(s.TournamentCodes) > 0 {
		fmt.Fprintf(&b, "Codes: %s\n", strings.Join(s.TournamentCodes, ", "))
	}

	b.WriteString("\n")
	tw := table(&b)
	fmt.Fprintln(tw, "DATE\tTYPE\tRESULT\tCHAMPION\tK/D/A\tCODE")
	for _, g := range s.RecentTournaments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d/%d/%d\t%s\n",
			g.Date, g.GameType, g.Result, g.Champion, g.Kills, g.Deaths, g.Assists, g.TournamentCode)
	}
	return flush(w, &b, tw)
}

// ManualMatches writes stored manual matches.
func ManualMatches(w io.Writer, matches []models.ManualMatch) error {
	var b strings.Builder
	if len(matches) == 0 {
		b.WriteString("No manual matches.\n")
		return flush(w, &b, nil)
	}

	tw := table(&b)
	fmt.Fprintln(tw, "ID\tDATE\tSUMMONER\tCHAMPION\tRESULT\tK/D/A\tCS/MIN\tNOTES")
	for _, m := range matches {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.0f/%.0f/%.0f\t%.1f\t%s\n",
			m.MatchID, m.Date, m.SummonerName, m.ChampionName, m.Result,
			m.Kills, m.Deaths, m.Assists, m.CSPerMin(), m.Notes)
	}
	return flush(w, &b, tw)
}
