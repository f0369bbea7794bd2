package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pta-server/shared/models"
)

// Mock UserRepository
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
func (m *UserRepository) UpdateActivityToken(ctx context.Context, id uuid.UUID, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}
func (m *UserRepository) SetOnline(ctx context.Context, id uuid.UUID, online bool) error {
	args := m.Called(ctx, id, online)
	return args.Error(0)
}
func (m *UserRepository) AddGame(ctx context.Context, userID, gameID uuid.UUID) error {
	args := m.Called(ctx, userID, gameID)
	return args.Error(0)
}
func (m *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock GameRepository
type GameRepository struct {
	mock.Mock
}

func (m *GameRepository) Create(ctx context.Context, game *models.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}
func (m *GameRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	args := m.Called(ctx, id)
	game, _ := args.Get(0).(*models.Game)
	return game, args.Error(1)
}
func (m *GameRepository) ListOnline(ctx context.Context) ([]models.Game, error) {
	args := m.Called(ctx)
	games, _ := args.Get(0).([]models.Game)
	return games, args.Error(1)
}
func (m *GameRepository) SetOnline(ctx context.Context, id uuid.UUID, online bool) error {
	args := m.Called(ctx, id, online)
	return args.Error(0)
}
func (m *GameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock TrainerRepository
type TrainerRepository struct {
	mock.Mock
}

func (m *TrainerRepository) Create(ctx context.Context, trainer *models.Trainer) error {
	args := m.Called(ctx, trainer)
	return args.Error(0)
}
func (m *TrainerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Trainer, error) {
	args := m.Called(ctx, id)
	trainer, _ := args.Get(0).(*models.Trainer)
	return trainer, args.Error(1)
}
func (m *TrainerRepository) GetByNameInGame(ctx context.Context, gameID uuid.UUID, name string) (*models.Trainer, error) {
	args := m.Called(ctx, gameID, name)
	trainer, _ := args.Get(0).(*models.Trainer)
	return trainer, args.Error(1)
}
func (m *TrainerRepository) GetByUserInGame(ctx context.Context, userID, gameID uuid.UUID) (*models.Trainer, error) {
	args := m.Called(ctx, userID, gameID)
	trainer, _ := args.Get(0).(*models.Trainer)
	return trainer, args.Error(1)
}
func (m *TrainerRepository) ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Trainer, error) {
	args := m.Called(ctx, gameID)
	trainers, _ := args.Get(0).([]models.Trainer)
	return trainers, args.Error(1)
}
func (m *TrainerRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Trainer, error) {
	args := m.Called(ctx, userID)
	trainers, _ := args.Get(0).([]models.Trainer)
	return trainers, args.Error(1)
}
func (m *TrainerRepository) FindGM(ctx context.Context, gameID uuid.UUID) (*models.Trainer, error) {
	args := m.Called(ctx, gameID)
	trainer, _ := args.Get(0).(*models.Trainer)
	return trainer, args.Error(1)
}
func (m *TrainerRepository) Update(ctx context.Context, trainer *models.Trainer) error {
	args := m.Called(ctx, trainer)
	return args.Error(0)
}
func (m *TrainerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock NPCRepository
type NPCRepository struct {
	mock.Mock
}

func (m *NPCRepository) Create(ctx context.Context, npc *models.NPC) error {
	args := m.Called(ctx, npc)
	return args.Error(0)
}
func (m *NPCRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.NPC, error) {
	args := m.Called(ctx, id)
	npc, _ := args.Get(0).(*models.NPC)
	return npc, args.Error(1)
}
func (m *NPCRepository) ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.NPC, error) {
	args := m.Called(ctx, gameID)
	npcs, _ := args.Get(0).([]models.NPC)
	return npcs, args.Error(1)
}
func (m *NPCRepository) Update(ctx context.Context, npc *models.NPC) error {
	args := m.Called(ctx, npc)
	return args.Error(0)
}
func (m *NPCRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock PokemonRepository
type PokemonRepository struct {
	mock.Mock
}

func (m *PokemonRepository) Create(ctx context.Context, pokemon *models.Pokemon) error {
	args := m.Called(ctx, pokemon)
	return args.Error(0)
}
func (m *PokemonRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Pokemon, error) {
	args := m.Called(ctx, id)
	pokemon, _ := args.Get(0).(*models.Pokemon)
	return pokemon, args.Error(1)
}
func (m *PokemonRepository) ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]models.Pokemon, error) {
	args := m.Called(ctx, trainerID)
	list, _ := args.Get(0).([]models.Pokemon)
	return list, args.Error(1)
}
func (m *PokemonRepository) CountActiveTeam(ctx context.Context, trainerID uuid.UUID) (int, error) {
	args := m.Called(ctx, trainerID)
	return args.Int(0), args.Error(1)
}
func (m *PokemonRepository) Update(ctx context.Context, pokemon *models.Pokemon) error {
	args := m.Called(ctx, pokemon)
	return args.Error(0)
}
func (m *PokemonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock SettingRepository
type SettingRepository struct {
	mock.Mock
}

func (m *SettingRepository) Create(ctx context.Context, setting *models.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}
func (m *SettingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Setting, error) {
	args := m.Called(ctx, id)
	setting, _ := args.Get(0).(*models.Setting)
	return setting, args.Error(1)
}
func (m *SettingRepository) GetActiveByGame(ctx context.Context, gameID uuid.UUID) (*models.Setting, error) {
	args := m.Called(ctx, gameID)
	setting, _ := args.Get(0).(*models.Setting)
	return setting, args.Error(1)
}
func (m *SettingRepository) ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Setting, error) {
	args := m.Called(ctx, gameID)
	settings, _ := args.Get(0).([]models.Setting)
	return settings, args.Error(1)
}
func (m *SettingRepository) Update(ctx context.Context, setting *models.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}
func (m *SettingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock ShopRepository
type ShopRepository struct {
	mock.Mock
}

func (m *ShopRepository) Create(ctx context.Context, shop *models.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}
func (m *ShopRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	args := m.Called(ctx, id)
	shop, _ := args.Get(0).(*models.Shop)
	return shop, args.Error(1)
}
func (m *ShopRepository) ListByGame(ctx context.Context, gameID uuid.UUID) ([]models.Shop, error) {
	args := m.Called(ctx, gameID)
	shops, _ := args.Get(0).([]models.Shop)
	return shops, args.Error(1)
}
func (m *ShopRepository) Update(ctx context.Context, shop *models.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}
func (m *ShopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock DexRepository
type DexRepository struct {
	mock.Mock
}

func (m *DexRepository) Get(ctx context.Context, trainerID uuid.UUID, dexNo int) (*models.DexItem, error) {
	args := m.Called(ctx, trainerID, dexNo)
	item, _ := args.Get(0).(*models.DexItem)
	return item, args.Error(1)
}
func (m *DexRepository) Upsert(ctx context.Context, item *models.DexItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *DexRepository) ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]models.DexItem, error) {
	args := m.Called(ctx, trainerID)
	items, _ := args.Get(0).([]models.DexItem)
	return items, args.Error(1)
}

// Mock GameLogRepository
type GameLogRepository struct {
	mock.Mock
}

func (m *GameLogRepository) Append(ctx context.Context, entry models.GameLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *GameLogRepository) ListByGame(ctx context.Context, gameID uuid.UUID, limit int) ([]models.GameLog, error) {
	args := m.Called(ctx, gameID, limit)
	logs, _ := args.Get(0).([]models.GameLog)
	return logs, args.Error(1)
}

// Mock TokenRepository
type TokenRepository struct {
	mock.Mock
}

func (m *TokenRepository) Save(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error {
	args := m.Called(ctx, userID, token, ttl)
	return args.Error(0)
}
func (m *TokenRepository) Get(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}
func (m *TokenRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
