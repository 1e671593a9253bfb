// Package automatic plays computer-vs-computer games of Tower and
// Nested-Grid, choosing uniformly among the legal moves. It drives the
// engines end to end the way an external search framework would.
package automatic

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/gameengines/config"
	"github.com/domino14/gameengines/nestedgrid"
	"github.com/domino14/gameengines/persist"
	"github.com/domino14/gameengines/tower"
	"github.com/domino14/gameengines/zobrist"
)

// Results of a finished game, in the Nested-Grid convention.
const (
	ResultDraw    = -1
	ResultPlayer1 = 1
	ResultPlayer2 = 2
)

var ErrStuck = errors.New("automatic: no legal move in an undecided game")

// GameResult describes one finished game.
type GameResult struct {
	Game   string `yaml:"game"`
	Index  int    `yaml:"index"`
	Turns  int    `yaml:"turns"`
	Winner int    `yaml:"winner"`
	Score  [2]int `yaml:"score"`
	Hash   uint64 `yaml:"hash"`
}

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	game       string
	strategy   persist.Strategy
	permissive bool
	outputDir  string
	zobrist    *zobrist.Zobrist
}

// NewGameRunner just instantiates and initializes a game runner.
func NewGameRunner(cfg *config.Config) (*GameRunner, error) {
	strategy, err := persist.FromName(cfg.GetString(config.ConfigSaveFormat))
	if err != nil {
		return nil, err
	}
	game := cfg.GetString(config.ConfigGame)
	if game != config.GameTower && game != config.GameNestedGrid {
		return nil, fmt.Errorf("unknown game %q", game)
	}
	return &GameRunner{
		game:       game,
		strategy:   strategy,
		permissive: cfg.GetBool(config.ConfigPermissivePlay),
		outputDir:  cfg.GetString(config.ConfigOutput),
		zobrist:    zobrist.Default(),
	}, nil
}

// PlayGame plays game number idx to the end with moves drawn from a
// generator seeded by seed. The same seed always produces the same game.
func (r *GameRunner) PlayGame(idx int, seed [32]byte) (*GameResult, error) {
	rng := frand.NewCustom(seed[:], 1024, 12)
	if r.game == config.GameNestedGrid {
		return r.playNestedGrid(idx, rng)
	}
	return r.playTower(idx, rng)
}

func (r *GameRunner) playTower(idx int, rng *frand.RNG) (*GameResult, error) {
	s := tower.NewState(tower.WithStrategy(r.strategy), tower.WithPermissivePlay(r.permissive))
	key := r.zobrist.TowerHash(s, false)
	turns := 0
	for {
		moves := s.LegalMoves()
		if len(moves) == 0 {
			break
		}
		m := moves[rng.Intn(len(moves))]
		ns, err := s.Play(m)
		if err != nil {
			return nil, err
		}
		key = r.zobrist.AddTowerMove(key, s, m)
		s = ns
		turns++
	}
	sc := s.Score()
	res := &GameResult{Game: config.GameTower, Index: idx, Turns: turns, Score: sc, Hash: key}
	switch {
	case sc[0] > sc[1]:
		res.Winner = ResultPlayer1
	case sc[1] > sc[0]:
		res.Winner = ResultPlayer2
	default:
		res.Winner = ResultDraw
	}
	log.Debug().Int("game", idx).Int("turns", turns).Ints("score", sc[:]).Msg("tower game over")
	return res, r.save(idx, s)
}

func (r *GameRunner) playNestedGrid(idx int, rng *frand.RNG) (*GameResult, error) {
	s := nestedgrid.NewState(nestedgrid.WithStrategy(r.strategy), nestedgrid.WithPermissivePlay(r.permissive))
	key := r.zobrist.NestedHash(s)
	for s.Winner() == nestedgrid.Ongoing {
		moves := s.LegalMoves()
		if len(moves) == 0 {
			return nil, fmt.Errorf("%w: game %d turn %d", ErrStuck, idx, s.Turn())
		}
		m := moves[rng.Intn(len(moves))]
		ns, err := s.Play(m)
		if err != nil {
			return nil, err
		}
		key = r.zobrist.AddNestedMove(key, s, ns, m)
		s = ns
	}
	res := &GameResult{
		Game: config.GameNestedGrid, Index: idx, Turns: s.Turn(),
		Winner: s.Winner(), Score: s.Score(), Hash: key,
	}
	log.Debug().Int("game", idx).Int("turns", s.Turn()).Int("winner", res.Winner).Msg("nestedgrid game over")
	return res, r.save(idx, s)
}

type saver interface {
	Save(w io.Writer) error
}

// save writes the final position of game idx to the output directory, if
// there is one.
func (r *GameRunner) save(idx int, s saver) (err error) {
	if r.outputDir == "" {
		return nil
	}
	path := filepath.Join(r.outputDir, fmt.Sprintf("%s-%05d.yaml", r.game, idx))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return s.Save(f)
}
