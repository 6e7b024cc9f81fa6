package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/pairmatch-backend/internal/apperror"
	"github.com/rocketscienceinc/pairmatch-backend/internal/entity"
)

const payloadActionGameUpdate = "game:update"

func (that *Server) handleConnect(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	var playerID string
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)

		return that.sendErrorResponse(bufrw, msg.Action, "failed to create a new player")
	}

	that.connectionsMutex.Lock()
	that.connections[player.ID] = bufrw
	that.connectionsMutex.Unlock()

	payloadResp := Payload{
		Player: player,
	}

	if player.GameID != "" {
		game, gameErr := that.gameUseCase.GetGameByPlayerID(ctx, player.ID)
		if gameErr == nil {
			payloadResp.Game = maskGameDetails(game)
		}
	}

	if err = that.sendMessage(bufrw, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleNewGame")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	that.connectionsMutex.Lock()
	that.connections[payloadReq.Player.ID] = bufrw
	that.connectionsMutex.Unlock()

	game, err := that.gameUseCase.GetOrCreateGame(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to create or get game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to create a new game")
	}

	log = log.With("gameID", game.ID)

	payloadResp := Payload{
		Player: payloadReq.Player,
		Game:   maskGameDetails(game),
	}

	if err = that.sendMessage(bufrw, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("game is ready")

	return nil
}

func (that *Server) handleFlipCard(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleFlipCard")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	if payloadReq.Card == nil {
		log.Error("Card is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Card is required")
	}

	log = log.With("playerID", payloadReq.Player.ID)

	game, err := that.gameUseCase.FlipCard(ctx, payloadReq.Player.ID, *payloadReq.Card)
	if errors.Is(err, apperror.ErrNoActiveGames) {
		return that.sendErrorResponse(bufrw, msg.Action, "no active games")
	}

	if err != nil {
		log.Error("failed to flip card", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, fmt.Sprintf("failed to flip card: %v", err))
	}

	log.Info("player flipped a card", "gameID", game.ID, "card", *payloadReq.Card)

	// the resulting snapshots are pushed through NotifyGameUpdate
	return nil
}

func (that *Server) handleResetGame(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleResetGame")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	game, err := that.gameUseCase.ResetGame(ctx, payloadReq.Player.ID)
	if errors.Is(err, apperror.ErrNoActiveGames) {
		return that.sendErrorResponse(bufrw, msg.Action, "no active games")
	}

	if err != nil {
		log.Error("failed to reset game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to reset game")
	}

	log.Info("game reset", "gameID", game.ID)

	return nil
}

func (that *Server) handleLeaveGame(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleLeaveGame")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	game, err := that.gameUseCase.GetGameByPlayerID(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to find game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "game doesn't exist")
	}

	if err = that.gameUseCase.EndGame(ctx, game); err != nil {
		log.Error("failed to end game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to leave game")
	}

	payloadResp := Payload{
		Player: payloadReq.Player,
	}

	if err = that.sendMessage(bufrw, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("player left the game", "gameID", game.ID)

	return nil
}

// NotifyGameUpdate pushes a fresh snapshot to every connected player of the
// game. It implements the usecase notifier and fires after every engine
// mutation, including timer ticks and delayed mismatch conceals.
func (that *Server) NotifyGameUpdate(game *entity.Game) {
	log := that.logger.With("method", "NotifyGameUpdate", "gameID", game.ID)

	for _, player := range game.Players {
		that.connectionsMutex.RLock()
		conn, ok := that.connections[player.ID]
		that.connectionsMutex.RUnlock()

		if !ok {
			log.Warn("connection not found for player", "playerID", player.ID)
			continue
		}

		payloadResp := Payload{
			Player: player,
			Game:   maskGameDetails(game),
		}

		if err := that.sendMessage(conn, payloadActionGameUpdate, payloadResp); err != nil {
			log.Error("failed to send game update", "error", err)
		}
	}
}

// maskGameDetails hides what the player must not see: the content of every
// card that is still face-down and unmatched. The input is left untouched.
func maskGameDetails(game *entity.Game) *entity.Game {
	masked := *game
	masked.Players = nil

	cards := make([]*entity.Card, len(game.Cards))
	for i, card := range game.Cards {
		copied := *card
		if !copied.IsRevealed() {
			copied.Content = ""
		}
		cards[i] = &copied
	}

	masked.Cards = cards

	return &masked
}

func (that *Server) sendErrorResponse(bufrw *bufio.ReadWriter, action, errorMsg string) error {
	payload := Payload{Error: errorMsg}
	if err := that.sendMessage(bufrw, action, payload); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
