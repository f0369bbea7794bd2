package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pta-server/internal/repository"
	"pta-server/shared/models"
)

// WareRequest is one line of a purchase order.
type WareRequest struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Amount int    `json:"amount"`
}

// ExchangeService moves pokemon between trainers and items between shops
// and trainers.
type ExchangeService interface {
	// Trade swaps ownership and active-team membership of two pokemon.
	Trade(ctx context.Context, leftID, rightID uuid.UUID, gmName string) error
	// Purchase validates the order against the shop inventory and the
	// trainer's funds, then applies it. Invalid lines are dropped.
	Purchase(ctx context.Context, shopID, trainerID uuid.UUID, wares []WareRequest) (*models.Trainer, error)
	CreateShop(ctx context.Context, gameID uuid.UUID, name string, inventory map[string]models.Ware) (*models.Shop, error)
	UpdateShop(ctx context.Context, shop *models.Shop) error
	GetShop(ctx context.Context, shopID uuid.UUID) (*models.Shop, error)
	ListShops(ctx context.Context, gameID uuid.UUID) ([]models.Shop, error)
	DeleteShop(ctx context.Context, shopID uuid.UUID) error
}

// Compile-time check
var _ ExchangeService = (*exchangeServiceImpl)(nil)

type exchangeServiceImpl struct {
	pokemon  repository.PokemonRepository
	trainers repository.TrainerRepository
	shops    repository.ShopRepository
	recorder *logRecorder
	locks    *gameLock
	logger   *zap.Logger
}

func NewExchangeService(
	pokemon repository.PokemonRepository,
	trainers repository.TrainerRepository,
	shops repository.ShopRepository,
	recorder *logRecorder,
	locks *gameLock,
	logger *zap.Logger,
) ExchangeService {
	return &exchangeServiceImpl{
		pokemon:  pokemon,
		trainers: trainers,
		shops:    shops,
		recorder: recorder,
		locks:    locks,
		logger:   logger.Named("ExchangeService"),
	}
}

func (s *exchangeServiceImpl) Trade(ctx context.Context, leftID, rightID uuid.UUID, gmName string) error {
	left, err := s.pokemon.GetByID(ctx, leftID)
	if err != nil {
		return err
	}
	unlock := s.locks.Lock(left.GameID.String())
	defer unlock()

	left, err = s.pokemon.GetByID(ctx, leftID)
	if err != nil {
		return err
	}
	right, err := s.pokemon.GetByID(ctx, rightID)
	if err != nil {
		return err
	}
	if left.GameID != right.GameID {
		return fmt.Errorf("pokemon are in different games: %w", models.ErrInvalidInput)
	}
	if left.TrainerID == right.TrainerID {
		return models.ErrSelfTrade
	}

	leftTrainer, err := s.trainers.GetByID(ctx, left.TrainerID)
	if err != nil {
		return err
	}
	rightTrainer, err := s.trainers.GetByID(ctx, right.TrainerID)
	if err != nil {
		return err
	}

	left.TrainerID, right.TrainerID = right.TrainerID, left.TrainerID
	left.IsOnActiveTeam, right.IsOnActiveTeam = right.IsOnActiveTeam, left.IsOnActiveTeam

	if err := s.pokemon.Update(ctx, left); err != nil {
		return fmt.Errorf("failed to save trade: %w", err)
	}
	if err := s.pokemon.Update(ctx, right); err != nil {
		return fmt.Errorf("failed to save trade: %w", err)
	}

	s.recorder.Record(ctx, left.GameID, gmName,
		fmt.Sprintf("authorized a trade between %s and %s",
			leftTrainer.TrainerName, rightTrainer.TrainerName))
	return nil
}

func (s *exchangeServiceImpl) Purchase(ctx context.Context, shopID, trainerID uuid.UUID, wares []WareRequest) (*models.Trainer, error) {
	shop, err := s.shops.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if !shop.IsActive {
		return nil, fmt.Errorf("shop is closed: %w", models.ErrConflict)
	}

	unlock := s.locks.Lock(shop.GameID.String())
	defer unlock()

	shop, err = s.shops.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	trainer, err := s.trainers.GetByID(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	if trainer.GameID != shop.GameID {
		return nil, fmt.Errorf("shop belongs to another game: %w", models.ErrInvalidInput)
	}

	// Lines that fail validation drop out of the order silently.
	valid := make([]WareRequest, 0, len(wares))
	cost := 0
	for _, req := range wares {
		ware, ok := findWare(shop, req.Name)
		if !ok || !strings.EqualFold(ware.Type, req.Type) {
			continue
		}
		if req.Amount <= 0 {
			continue
		}
		if ware.Quantity != -1 && req.Amount > ware.Quantity {
			continue
		}
		valid = append(valid, req)
		cost += ware.Cost * req.Amount
	}

	if cost > trainer.Money {
		return nil, models.ErrInsufficientFunds
	}

	for _, req := range valid {
		key, ware, _ := findWareKey(shop, req.Name)
		if ware.Quantity != -1 {
			ware.Quantity -= req.Amount
			shop.Inventory[key] = ware
		}
		addItem(trainer, models.Item{
			Name:    key,
			Effects: ware.Effects,
			Type:    ware.Type,
			Amount:  req.Amount,
		})
		s.recorder.Record(ctx, shop.GameID, trainer.TrainerName,
			fmt.Sprintf("purchased (%d) %s from %s", req.Amount, key, shop.Name))
	}
	trainer.Money -= cost

	if err := s.shops.Update(ctx, shop); err != nil {
		return nil, fmt.Errorf("failed to save shop stock: %w", err)
	}
	if err := s.trainers.Update(ctx, trainer); err != nil {
		return nil, fmt.Errorf("failed to save purchase: %w", err)
	}
	return trainer, nil
}

func findWare(shop *models.Shop, name string) (models.Ware, bool) {
	_, ware, ok := findWareKey(shop, name)
	return ware, ok
}

func findWareKey(shop *models.Shop, name string) (string, models.Ware, bool) {
	for key, ware := range shop.Inventory {
		if strings.EqualFold(key, name) {
			return key, ware, true
		}
	}
	return "", models.Ware{}, false
}

func (s *exchangeServiceImpl) CreateShop(ctx context.Context, gameID uuid.UUID, name string, inventory map[string]models.Ware) (*models.Shop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("shop name is required: %w", models.ErrInvalidInput)
	}
	if inventory == nil {
		inventory = map[string]models.Ware{}
	}
	shop := &models.Shop{
		ShopID:    uuid.New(),
		GameID:    gameID,
		Name:      name,
		IsActive:  true,
		Inventory: inventory,
	}
	if err := s.shops.Create(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *exchangeServiceImpl) UpdateShop(ctx context.Context, shop *models.Shop) error {
	return s.shops.Update(ctx, shop)
}

func (s *exchangeServiceImpl) GetShop(ctx context.Context, shopID uuid.UUID) (*models.Shop, error) {
	return s.shops.GetByID(ctx, shopID)
}

func (s *exchangeServiceImpl) ListShops(ctx context.Context, gameID uuid.UUID) ([]models.Shop, error) {
	return s.shops.ListByGame(ctx, gameID)
}

func (s *exchangeServiceImpl) DeleteShop(ctx context.Context, shopID uuid.UUID) error {
	return s.shops.Delete(ctx, shopID)
}
