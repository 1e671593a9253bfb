package automatic

// Batches of computer vs computer games.

import (
	"context"
	"errors"
	"expvar"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/gameengines/config"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// Summary aggregates a batch of games.
type Summary struct {
	Game        string        `yaml:"game"`
	Games       int           `yaml:"games"`
	Player1Wins int           `yaml:"player1_wins"`
	Player2Wins int           `yaml:"player2_wins"`
	Draws       int           `yaml:"draws"`
	MeanTurns   float64       `yaml:"mean_turns"`
	Results     []*GameResult `yaml:"results,omitempty"`
}

// Summarize tallies results.
func Summarize(game string, results []*GameResult) *Summary {
	s := &Summary{
		Game:    game,
		Games:   len(results),
		Results: results,
	}
	s.Player1Wins = lo.CountBy(results, func(r *GameResult) bool { return r.Winner == ResultPlayer1 })
	s.Player2Wins = lo.CountBy(results, func(r *GameResult) bool { return r.Winner == ResultPlayer2 })
	s.Draws = lo.CountBy(results, func(r *GameResult) bool { return r.Winner == ResultDraw })
	if len(results) > 0 {
		turns := lo.SumBy(results, func(r *GameResult) int { return r.Turns })
		s.MeanTurns = float64(turns) / float64(len(results))
	}
	return s
}

// PlayGames plays one game per seed, running at most the configured
// number of threads at once, and stops early if ctx is cancelled.
func PlayGames(ctx context.Context, cfg *config.Config, seeds [][32]byte) (*Summary, error) {
	if IsPlaying.Value() > 0 {
		return nil, errors.New("games are already being played, please wait till complete")
	}
	runner, err := NewGameRunner(cfg)
	if err != nil {
		return nil, err
	}
	threads := cfg.GetInt(config.ConfigThreads)
	log.Debug().Int("games", len(seeds)).Int("threads", threads).Str("game", runner.game).
		Msg("starting games")

	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)
	CVCCounter.Set(0)

	results := make([]*GameResult, len(seeds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i, seed := range seeds {
		if gctx.Err() != nil {
			break
		}
		i, seed := i, seed
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := runner.PlayGame(i, seed)
			if err != nil {
				return err
			}
			results[i] = res
			CVCCounter.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		log.Info().Int64("finished", CVCCounter.Value()).Msg("stopped before all games were played")
		return nil, err
	}

	summary := Summarize(runner.game, results)
	log.Info().Int("games", summary.Games).Int("p1", summary.Player1Wins).
		Int("p2", summary.Player2Wins).Int("draws", summary.Draws).
		Float64("mean-turns", summary.MeanTurns).Msg("all games finished")
	return summary, nil
}
