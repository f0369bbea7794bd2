package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pta-server/internal/repository"
	"pta-server/shared/models"
)

// ItemRequest names an item and how many of it an operation touches.
type ItemRequest struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// TrainerService covers trainer lifecycle: creation, bag management, honors,
// money and presence.
type TrainerService interface {
	CreateTrainer(ctx context.Context, gameID, userID uuid.UUID, name string, isGM bool) (*models.Trainer, error)
	GetTrainer(ctx context.Context, trainerID uuid.UUID) (*models.Trainer, error)
	ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Trainer, error)
	AddItems(ctx context.Context, trainerID uuid.UUID, items []models.Item) (*models.Trainer, error)
	RemoveItems(ctx context.Context, trainerID uuid.UUID, requests []ItemRequest) (*models.Trainer, error)
	GrantHonor(ctx context.Context, trainerID uuid.UUID, honor string, gmName string) error
	GrantGroupHonor(ctx context.Context, gameID uuid.UUID, honor string) error
	AdjustMoney(ctx context.Context, trainerID uuid.UUID, delta int) (*models.Trainer, error)
	SetOnline(ctx context.Context, trainerID uuid.UUID, online bool) error
	Approve(ctx context.Context, trainerID uuid.UUID) error
	DeleteTrainer(ctx context.Context, trainerID uuid.UUID) error
}

// Compile-time check
var _ TrainerService = (*trainerServiceImpl)(nil)

type trainerServiceImpl struct {
	trainers repository.TrainerRepository
	users    repository.UserRepository
	recorder *logRecorder
	locks    *gameLock
	logger   *zap.Logger
}

func NewTrainerService(
	trainers repository.TrainerRepository,
	users repository.UserRepository,
	recorder *logRecorder,
	locks *gameLock,
	logger *zap.Logger,
) TrainerService {
	return &trainerServiceImpl{
		trainers: trainers,
		users:    users,
		recorder: recorder,
		locks:    locks,
		logger:   logger.Named("TrainerService"),
	}
}

// newTrainerStats is the baseline spread every fresh trainer starts with.
func newTrainerStats() models.StatBlock {
	return models.StatBlock{
		HP:             20,
		Attack:         1,
		Defense:        1,
		SpecialAttack:  1,
		SpecialDefense: 1,
		Speed:          1,
	}
}

func (s *trainerServiceImpl) CreateTrainer(ctx context.Context, gameID, userID uuid.UUID, name string, isGM bool) (*models.Trainer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("trainer name is required: %w", models.ErrInvalidInput)
	}
	unlock := s.locks.Lock(gameID.String())
	defer unlock()

	_, err := s.trainers.GetByNameInGame(ctx, gameID, name)
	if err == nil {
		return nil, models.ErrNameTaken
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to check trainer name: %w", err)
	}

	stats := newTrainerStats()
	trainer := &models.Trainer{
		TrainerID:      uuid.New(),
		UserID:         userID,
		GameID:         gameID,
		TrainerName:    name,
		IsGM:           isGM,
		IsAllowed:      isGM, // the GM approves everyone else
		Money:          0,
		Honors:         []string{},
		TrainerClasses: []string{},
		Feats:          []string{},
		Items:          []models.Item{},
		TrainerStats:   stats,
		CurrentHP:      stats.HP,
	}
	if err := s.trainers.Create(ctx, trainer); err != nil {
		return nil, fmt.Errorf("failed to create trainer: %w", err)
	}
	if err := s.users.AddGame(ctx, userID, gameID); err != nil {
		s.logger.Warn("Failed to record game on user",
			zap.String("userID", userID.String()), zap.Error(err))
	}
	s.logger.Info("Trainer created",
		zap.String("trainerID", trainer.TrainerID.String()),
		zap.String("gameID", gameID.String()),
		zap.Bool("isGM", isGM))
	return trainer, nil
}

func (s *trainerServiceImpl) GetTrainer(ctx context.Context, trainerID uuid.UUID) (*models.Trainer, error) {
	return s.trainers.GetByID(ctx, trainerID)
}

func (s *trainerServiceImpl) ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Trainer, error) {
	return s.trainers.ListByGame(ctx, gameID)
}

// AddItems merges items into the trainer's bag. Names match
// case-insensitively and stacks clamp at MaxItemStack.
func (s *trainerServiceImpl) AddItems(ctx context.Context, trainerID uuid.UUID, items []models.Item) (*models.Trainer, error) {
	trainer, err := s.trainers.GetByID(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(trainer.GameID.String())
	defer unlock()

	// Reload under the lock so concurrent adds do not clobber each other.
	trainer, err = s.trainers.GetByID(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if item.Amount <= 0 {
			continue
		}
		added := addItem(trainer, item)
		s.recorder.Record(ctx, trainer.GameID, trainer.TrainerName,
			fmt.Sprintf("added (%d) %s", added, item.Name))
	}
	if err := s.trainers.Update(ctx, trainer); err != nil {
		return nil, fmt.Errorf("failed to save trainer items: %w", err)
	}
	return trainer, nil
}

func addItem(trainer *models.Trainer, item models.Item) int {
	for i := range trainer.Items {
		if strings.EqualFold(trainer.Items[i].Name, item.Name) {
			added := item.Amount
			if trainer.Items[i].Amount+added > models.MaxItemStack {
				added = models.MaxItemStack - trainer.Items[i].Amount
			}
			trainer.Items[i].Amount += added
			return added
		}
	}
	added := item.Amount
	if added > models.MaxItemStack {
		added = models.MaxItemStack
	}
	trainer.Items = append(trainer.Items, models.Item{
		Name:    item.Name,
		Effects: item.Effects,
		Type:    item.Type,
		Amount:  added,
	})
	return added
}

// RemoveItems takes items out of the bag. The whole request is rejected when
// any line asks for more than the trainer holds; entries that reach zero are
// dropped.
func (s *trainerServiceImpl) RemoveItems(ctx context.Context, trainerID uuid.UUID, requests []ItemRequest) (*models.Trainer, error) {
	trainer, err := s.trainers.GetByID(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(trainer.GameID.String())
	defer unlock()

	trainer, err = s.trainers.GetByID(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	for _, req := range requests {
		if req.Amount <= 0 {
			return nil, fmt.Errorf("amount for %q must be positive: %w", req.Name, models.ErrInvalidInput)
		}
		held := findItem(trainer, req.Name)
		if held == nil || held.Amount < req.Amount {
			return nil, fmt.Errorf("not enough %q to remove: %w", req.Name, models.ErrConflict)
		}
	}
	for _, req := range requests {
		removeItem(trainer, req)
		s.recorder.Record(ctx, trainer.GameID, trainer.TrainerName,
			fmt.Sprintf("removed (%d) %s", req.Amount, req.Name))
	}
	if err := s.trainers.Update(ctx, trainer); err != nil {
		return nil, fmt.Errorf("failed to save trainer items: %w", err)
	}
	return trainer, nil
}

func findItem(trainer *models.Trainer, name string) *models.Item {
	for i := range trainer.Items {
		if strings.EqualFold(trainer.Items[i].Name, name) {
			return &trainer.Items[i]
		}
	}
	return nil
}

func removeItem(trainer *models.Trainer, req ItemRequest) {
	for i := range trainer.Items {
		if strings.EqualFold(trainer.Items[i].Name, req.Name) {
			trainer.Items[i].Amount -= req.Amount
			if trainer.Items[i].Amount <= 0 {
				trainer.Items = append(trainer.Items[:i], trainer.Items[i+1:]...)
			}
			return
		}
	}
}

func (s *trainerServiceImpl) GrantHonor(ctx context.Context, trainerID uuid.UUID, honor string, gmName string) error {
	if strings.TrimSpace(honor) == "" {
		return fmt.Errorf("honor text is required: %w", models.ErrInvalidInput)
	}
	trainer, err := s.trainers.GetByID(ctx, trainerID)
	if err != nil {
		return err
	}
	trainer.Honors = append(trainer.Honors, honor)
	if err := s.trainers.Update(ctx, trainer); err != nil {
		return fmt.Errorf("failed to save honor: %w", err)
	}
	s.recorder.Record(ctx, trainer.GameID, gmName,
		fmt.Sprintf("has granted %s a new honor", trainer.TrainerName))
	return nil
}

func (s *trainerServiceImpl) GrantGroupHonor(ctx context.Context, gameID uuid.UUID, honor string) error {
	if strings.TrimSpace(honor) == "" {
		return fmt.Errorf("honor text is required: %w", models.ErrInvalidInput)
	}
	trainers, err := s.trainers.ListByGame(ctx, gameID)
	if err != nil {
		return err
	}
	for i := range trainers {
		trainers[i].Honors = append(trainers[i].Honors, honor)
		if err := s.trainers.Update(ctx, &trainers[i]); err != nil {
			return fmt.Errorf("failed to save honor for %s: %w", trainers[i].TrainerName, err)
		}
	}
	s.recorder.Record(ctx, gameID, "GM",
		fmt.Sprintf("The party has earned a new honor: %s", honor))
	return nil
}

// AdjustMoney applies a signed delta to the trainer's funds, clamping at
// zero rather than failing on overdraw.
func (s *trainerServiceImpl) AdjustMoney(ctx context.Context, trainerID uuid.UUID, delta int) (*models.Trainer, error) {
	trainer, err := s.trainers.GetByID(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(trainer.GameID.String())
	defer unlock()

	trainer, err = s.trainers.GetByID(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	trainer.Money += delta
	if trainer.Money < 0 {
		trainer.Money = 0
	}
	if err := s.trainers.Update(ctx, trainer); err != nil {
		return nil, fmt.Errorf("failed to save trainer money: %w", err)
	}
	return trainer, nil
}

func (s *trainerServiceImpl) SetOnline(ctx context.Context, trainerID uuid.UUID, online bool) error {
	trainer, err := s.trainers.GetByID(ctx, trainerID)
	if err != nil {
		return err
	}
	trainer.IsOnline = online
	return s.trainers.Update(ctx, trainer)
}

func (s *trainerServiceImpl) Approve(ctx context.Context, trainerID uuid.UUID) error {
	trainer, err := s.trainers.GetByID(ctx, trainerID)
	if err != nil {
		return err
	}
	trainer.IsAllowed = true
	if err := s.trainers.Update(ctx, trainer); err != nil {
		return err
	}
	s.recorder.Record(ctx, trainer.GameID, trainer.TrainerName, "was allowed into the game")
	return nil
}

func (s *trainerServiceImpl) DeleteTrainer(ctx context.Context, trainerID uuid.UUID) error {
	return s.trainers.Delete(ctx, trainerID)
}
