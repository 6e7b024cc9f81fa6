package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/pairmatch-backend/internal/apperror"
	"github.com/rocketscienceinc/pairmatch-backend/internal/entity"
	"github.com/rocketscienceinc/pairmatch-backend/internal/pairs"
	"github.com/rocketscienceinc/pairmatch-backend/internal/pkg"
	"github.com/rocketscienceinc/pairmatch-backend/internal/repository"
)

const persistTimeout = 5 * time.Second

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.GameResult) error
}

// GameNotifier receives the fresh snapshot after every engine mutation so the
// transport can push it to connected clients.
type GameNotifier interface {
	NotifyGameUpdate(game *entity.Game)
}

// session is one live round: the engine carries timers, so it has to stay in
// memory; the repository only mirrors its latest snapshot.
type session struct {
	gameID  string
	engine  *pairs.Engine
	players []*entity.Player
}

type GameManager struct {
	logger     *slog.Logger
	playerRepo playerRepo
	gameRepo   gameRepo
	resultRepo resultRepo
	scheduler  pairs.Scheduler

	mu       sync.RWMutex
	sessions map[string]*session

	notifierMu sync.RWMutex
	notifier   GameNotifier
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, resultRepo resultRepo, scheduler pairs.Scheduler) *GameManager {
	return &GameManager{
		logger: logger,

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		resultRepo: resultRepo,
		scheduler:  scheduler,

		sessions: make(map[string]*session),
	}
}

// SetNotifier registers the transport push target. Set once during wiring,
// before any game is created.
func (that *GameManager) SetNotifier(notifier GameNotifier) {
	that.notifierMu.Lock()
	defer that.notifierMu.Unlock()

	that.notifier = notifier
}

func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		id = pkg.GenerateNewSessionID()
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		player = &entity.Player{ID: id}
		if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			return nil, fmt.Errorf("failed to create player: %w", err)
		}

		return player, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// GetOrCreateGame returns the player's current round, dealing a fresh one when
// the player has none.
func (that *GameManager) GetOrCreateGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create player: %w", err)
	}

	if player.GameID != "" {
		if sess := that.sessionByGameID(player.GameID); sess != nil {
			return that.snapshot(sess), nil
		}
	}

	return that.createGame(ctx, player)
}

// FlipCard forwards a tap into the player's engine. Invalid taps (face-up,
// matched, mid-resolution) are silently ignored by the engine; the returned
// snapshot always reflects the current state.
func (that *GameManager) FlipCard(ctx context.Context, playerID string, cardID int) (*entity.Game, error) {
	sess, err := that.sessionByPlayerID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	sess.engine.Flip(cardID)

	return that.snapshot(sess), nil
}

// ResetGame abandons the player's round and deals a fresh deck.
func (that *GameManager) ResetGame(ctx context.Context, playerID string) (*entity.Game, error) {
	sess, err := that.sessionByPlayerID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	sess.engine.Reset()

	return that.snapshot(sess), nil
}

func (that *GameManager) GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error) {
	sess, err := that.sessionByPlayerID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	return that.snapshot(sess), nil
}

// EndGame releases the round: the live engine is dropped with its timers, the
// stored snapshot is deleted and the players are unbound.
func (that *GameManager) EndGame(ctx context.Context, game *entity.Game) error {
	log := that.logger.With("method", "EndGame", "gameID", game.ID)

	that.mu.Lock()
	sess, ok := that.sessions[game.ID]
	delete(that.sessions, game.ID)
	that.mu.Unlock()

	if ok {
		sess.engine.Reset() // cancels outstanding timers
	}

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	for _, player := range game.Players {
		player.GameID = ""

		if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			log.Error("failed to update player", "error", err)
		}
	}

	log.Info("game ended")

	return nil
}

func (that *GameManager) createGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	gameID := pkg.GenerateGameID()

	player.GameID = gameID
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	sess := &session{
		gameID:  gameID,
		engine:  pairs.NewEngine(that.scheduler),
		players: []*entity.Player{player},
	}

	that.mu.Lock()
	that.sessions[gameID] = sess
	that.mu.Unlock()

	game := that.snapshot(sess)
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	sess.engine.Subscribe(func() {
		that.handleGameUpdate(gameID)
	})

	return game, nil
}

// handleGameUpdate runs after every engine mutation: it mirrors the snapshot
// into the repository, records the result once the round finishes and pushes
// the snapshot to the transport.
func (that *GameManager) handleGameUpdate(gameID string) {
	log := that.logger.With("method", "handleGameUpdate", "gameID", gameID)

	sess := that.sessionByGameID(gameID)
	if sess == nil {
		return
	}

	game := that.snapshot(sess)

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		log.Error("failed to update game", "error", err)
	}

	if game.IsFinished() {
		result := &entity.GameResult{
			GameID:     game.ID,
			Score:      game.Score,
			Elapsed:    game.Elapsed,
			FinishedAt: time.Now(),
		}

		if err := that.resultRepo.Save(ctx, result); err != nil {
			log.Error("failed to save result", "error", err)
		}

		log.Info("game finished", "score", game.Score, "elapsed", game.Elapsed)
	}

	that.notifierMu.RLock()
	notifier := that.notifier
	that.notifierMu.RUnlock()

	if notifier != nil {
		notifier.NotifyGameUpdate(game)
	}
}

func (that *GameManager) sessionByGameID(gameID string) *session {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.sessions[gameID]
}

func (that *GameManager) sessionByPlayerID(ctx context.Context, playerID string) (*session, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == "" {
		return nil, apperror.ErrNoActiveGames
	}

	sess := that.sessionByGameID(player.GameID)
	if sess == nil {
		return nil, apperror.ErrNoActiveGames
	}

	return sess, nil
}

func (that *GameManager) snapshot(sess *session) *entity.Game {
	game := sess.engine.Snapshot()
	game.ID = sess.gameID
	game.Players = sess.players

	return game
}
