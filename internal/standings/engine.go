package standings

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scorekeeper/internal/records"
)

// New creates a new Engine reading from source.
func New(source Source) *Engine {
	return &Engine{source: source}
}

// Compute returns one standing per registered player, in the store's player
// order. Rows are not ranked; callers that want a ranking sort the result.
func (e *Engine) Compute(ctx context.Context) ([]PlayerStanding, error) {
	snap, err := e.source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return Fold(snap.Players, snap.Matches), nil
}

// Fold joins matches to players by name.
//
// A match counts once for every player whose name equals its winner or its
// loser. A match where winner and loser are the same name is played once but
// is both won and lost. Matches naming nobody registered are dropped, and
// players sharing a name share the same counters.
func Fold(players []records.Player, matches []records.Match) []PlayerStanding {
	byName := make(map[string]*tally)
	get := func(name string) *tally {
		t, ok := byName[name]
		if !ok {
			t = &tally{}
			byName[name] = t
		}
		return t
	}

	for _, m := range matches {
		d, err := records.ParseDuration(m.Duration)
		if err != nil {
			log.Warn("Treating non-numeric match duration as zero", "matchID", m.ID, "duration", m.Duration)
			d = 0
		}

		w := get(m.WinnerName)
		w.played++
		w.won++
		w.duration += d

		l := get(m.LoserName)
		if m.LoserName != m.WinnerName {
			l.played++
			l.duration += d
		}
		l.lost++
	}

	out := make([]PlayerStanding, 0, len(players))
	for _, p := range players {
		s := PlayerStanding{ID: p.ID, Name: p.Name, Photo: p.Photo}
		if t, ok := byName[p.Name]; ok {
			s.MatchesPlayed = t.played
			s.MatchesWon = t.won
			s.MatchesLost = t.lost
			s.TotalDuration = t.duration
		}
		out = append(out, s)
	}
	return out
}
