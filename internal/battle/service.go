package battle

import (
	"context"

	"github.com/google/uuid"

	"github.com/kestrelgames/emberrealm/internal/character"
	"github.com/kestrelgames/emberrealm/internal/combat"
	"github.com/kestrelgames/emberrealm/internal/domain"
	"github.com/kestrelgames/emberrealm/internal/event"
	"github.com/kestrelgames/emberrealm/internal/logger"
	"github.com/kestrelgames/emberrealm/internal/metrics"
	"github.com/kestrelgames/emberrealm/internal/settlement"
)

// Service orchestrates a full battle: snapshot effective stats, run the
// simulation, settle the rewards, and broadcast the outcome.
type Service interface {
	StartPvP(ctx context.Context, challengerID, opponentID string) (*domain.BattleResult, error)
	StartBoss(ctx context.Context, playerID, bossCode string) (*domain.BattleResult, error)
}

type service struct {
	characters character.Service
	engine     *combat.Engine
	settlement settlement.Service
	bus        event.Bus
	bosses     Bosses
}

// NewService creates a new battle service
func NewService(characters character.Service, engine *combat.Engine, settlementSvc settlement.Service, bus event.Bus, bosses Bosses) Service {
	return &service{
		characters: characters,
		engine:     engine,
		settlement: settlementSvc,
		bus:        bus,
		bosses:     bosses,
	}
}

// StartPvP runs a battle between two players' effective stat snapshots.
func (s *service) StartPvP(ctx context.Context, challengerID, opponentID string) (*domain.BattleResult, error) {
	challenger, err := s.characters.EffectiveStats(ctx, challengerID)
	if err != nil {
		return nil, err
	}
	opponent, err := s.characters.EffectiveStats(ctx, opponentID)
	if err != nil {
		return nil, err
	}

	return s.run(ctx, domain.ModePvP, challenger, opponent)
}

// StartBoss runs a battle between a player and a configured boss.
func (s *service) StartBoss(ctx context.Context, playerID, bossCode string) (*domain.BattleResult, error) {
	challenger, err := s.characters.EffectiveStats(ctx, playerID)
	if err != nil {
		return nil, err
	}
	boss, err := s.bosses.Get(bossCode)
	if err != nil {
		return nil, err
	}

	return s.run(ctx, domain.ModeBoss, challenger, boss)
}

func (s *service) run(ctx context.Context, mode domain.BattleMode, challenger, opponent domain.Combatant) (*domain.BattleResult, error) {
	log := logger.FromContext(ctx)

	battleID := uuid.New().String()
	result, err := s.engine.Simulate(battleID, mode, challenger, opponent)
	if err != nil {
		return nil, err
	}

	settled, err := s.settlement.Settle(ctx, *result)
	if err != nil {
		return nil, err
	}

	outcome := "win"
	if settled.Draw() {
		outcome = "draw"
	}
	metrics.BattlesCompleted.WithLabelValues(string(mode), outcome).Inc()

	// Broadcast is fire-and-forget; the battle outcome does not depend on
	// delivery.
	if err := s.bus.Publish(ctx, event.NewBattleCompletedEvent(*settled)); err != nil {
		log.Warn("Failed to publish battle event", "battle_id", battleID, "error", err)
	}

	log.Info("Battle completed",
		"battle_id", battleID,
		"mode", mode,
		"challenger_id", challenger.ID,
		"opponent_id", opponent.ID,
		"winner_id", settled.WinnerID,
		"turns", settled.Turns)
	return settled, nil
}
