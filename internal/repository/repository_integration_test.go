package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"pta-server/internal/database"
	"pta-server/internal/repository"
	"pta-server/shared/models"
)

// IntegrationTestSuite runs the repositories against real PostgreSQL and
// Redis containers. Skipped in -short mode.
type IntegrationTestSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *tcpostgres.PostgresContainer
	rdContainer *tcredis.RedisContainer
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	logger      *zap.Logger

	users    repository.UserRepository
	games    repository.GameRepository
	trainers repository.TrainerRepository
	pokemon  repository.PokemonRepository
	settings repository.SettingRepository
	dex      repository.DexRepository
	logs     repository.GameLogRepository
	tokens   repository.TokenRepository
}

func (s *IntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = zap.NewNop()
	var err error

	s.pgContainer, err = tcpostgres.Run(s.ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("pta_test"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err)

	s.pgPool, err = database.NewPool(s.ctx, connStr, s.logger)
	require.NoError(s.T(), err, "Failed to connect to test postgres")

	require.NoError(s.T(), database.ApplyMigrations(s.pgPool, s.logger),
		"Failed to apply migrations")

	s.rdContainer, err = tcredis.Run(s.ctx,
		"docker.io/redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("* Ready to accept connections").
				WithOccurrence(1).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start redis container")

	redisHost, err := s.rdContainer.Host(s.ctx)
	require.NoError(s.T(), err)
	redisPort, err := s.rdContainer.MappedPort(s.ctx, "6379/tcp")
	require.NoError(s.T(), err)
	s.redisClient = redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", redisHost, redisPort.Port()),
	})
	require.NoError(s.T(), s.redisClient.Ping(s.ctx).Err(), "Failed to connect to test redis")

	s.users = repository.NewPgUserRepository(s.pgPool, s.logger)
	s.games = repository.NewPgGameRepository(s.pgPool, s.logger)
	s.trainers = repository.NewPgTrainerRepository(s.pgPool, s.logger)
	s.pokemon = repository.NewPgPokemonRepository(s.pgPool, s.logger)
	s.settings = repository.NewPgSettingRepository(s.pgPool, s.logger)
	s.dex = repository.NewPgDexRepository(s.pgPool, s.logger)
	s.logs = repository.NewPgGameLogRepository(s.pgPool, s.logger)
	s.tokens = repository.NewRedisTokenRepository(s.redisClient, s.logger)
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.pgPool != nil {
		s.pgPool.Close()
	}
	if s.redisClient != nil {
		s.redisClient.Close()
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
	if s.rdContainer != nil {
		_ = s.rdContainer.Terminate(s.ctx)
	}
}

func (s *IntegrationTestSuite) SetupTest() {
	require.NoError(s.T(), s.redisClient.FlushDB(s.ctx).Err())
	_, err := s.pgPool.Exec(s.ctx, "TRUNCATE TABLE users, games CASCADE")
	require.NoError(s.T(), err)
}

func TestIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) newUser(username string) *models.User {
	user := &models.User{
		UserID:       uuid.New(),
		Username:     username,
		PasswordHash: "hash",
		SiteRole:     models.SiteRoleActive,
		DateCreated:  time.Now().UTC(),
		Games:        []uuid.UUID{},
	}
	require.NoError(s.T(), s.users.Create(s.ctx, user))
	return user
}

func (s *IntegrationTestSuite) newGame(nickname string) *models.Game {
	game := &models.Game{
		GameID:       uuid.New(),
		Nickname:     nickname,
		IsOnline:     true,
		PasswordHash: "hash",
	}
	require.NoError(s.T(), s.games.Create(s.ctx, game))
	return game
}

func (s *IntegrationTestSuite) newTrainer(user *models.User, game *models.Game, name string) *models.Trainer {
	trainer := &models.Trainer{
		TrainerID:      uuid.New(),
		UserID:         user.UserID,
		GameID:         game.GameID,
		TrainerName:    name,
		Honors:         []string{},
		TrainerClasses: []string{},
		Feats:          []string{},
		Items:          []models.Item{},
		TrainerStats:   models.StatBlock{HP: 20, Speed: 3},
		CurrentHP:      20,
	}
	require.NoError(s.T(), s.trainers.Create(s.ctx, trainer))
	return trainer
}

func (s *IntegrationTestSuite) TestUserRoundTrip() {
	t := s.T()
	user := s.newUser("ash_ketchum")

	got, err := s.users.GetByID(s.ctx, user.UserID)
	require.NoError(t, err)
	require.Equal(t, "ash_ketchum", got.Username)

	got, err = s.users.GetByUsername(s.ctx, "ash_ketchum")
	require.NoError(t, err)
	require.Equal(t, user.UserID, got.UserID)

	require.NoError(t, s.users.UpdateActivityToken(s.ctx, user.UserID, "tok"))
	got, err = s.users.GetByID(s.ctx, user.UserID)
	require.NoError(t, err)
	require.Equal(t, "tok", got.ActivityToken)

	_, err = s.users.GetByID(s.ctx, uuid.New())
	require.ErrorIs(t, err, models.ErrNotFound)
}

func (s *IntegrationTestSuite) TestUsernameUniquenessIsCaseInsensitive() {
	t := s.T()
	s.newUser("ash_ketchum")

	dup := &models.User{
		UserID:       uuid.New(),
		Username:     "Ash_Ketchum",
		PasswordHash: "hash",
		SiteRole:     models.SiteRoleActive,
		DateCreated:  time.Now().UTC(),
		Games:        []uuid.UUID{},
	}
	err := s.users.Create(s.ctx, dup)
	require.ErrorIs(t, err, models.ErrConflict)
}

func (s *IntegrationTestSuite) TestTrainerNameLookupIsCaseInsensitive() {
	t := s.T()
	user := s.newUser("ash_ketchum")
	game := s.newGame("Kanto Campaign")
	trainer := s.newTrainer(user, game, "Ash")

	got, err := s.trainers.GetByNameInGame(s.ctx, game.GameID, "ASH")
	require.NoError(t, err)
	require.Equal(t, trainer.TrainerID, got.TrainerID)

	_, err = s.trainers.GetByNameInGame(s.ctx, game.GameID, "Misty")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func (s *IntegrationTestSuite) TestWildPokemonCarryTheZeroTrainer() {
	t := s.T()
	game := s.newGame("Kanto Campaign")

	wild := &models.Pokemon{
		PokemonID:   uuid.New(),
		GameID:      game.GameID,
		DexNo:       129,
		SpeciesName: "Magikarp",
		Nickname:    "Magikarp",
		Status:      models.StatusNormal,
		Types:       []string{"Water"},
		Moves:       []string{"Splash"},
		CatchRate:   90,
		PokemonStats: models.StatBlock{
			HP: 6, Speed: 4,
		},
		CurrentHP: 6,
	}
	require.NoError(t, s.pokemon.Create(s.ctx, wild))

	got, err := s.pokemon.GetByID(s.ctx, wild.PokemonID)
	require.NoError(t, err)
	require.True(t, got.IsWild())
}

func (s *IntegrationTestSuite) TestSingleActiveSettingPerGame() {
	t := s.T()
	game := s.newGame("Kanto Campaign")

	first := &models.Setting{
		SettingID:    uuid.New(),
		GameID:       game.GameID,
		Name:         "Route 1",
		Type:         models.SettingHostile,
		IsActive:     true,
		Participants: []models.SettingParticipant{},
		Environment:  []string{},
		Shops:        []uuid.UUID{},
	}
	require.NoError(t, s.settings.Create(s.ctx, first))

	second := &models.Setting{
		SettingID:    uuid.New(),
		GameID:       game.GameID,
		Name:         "Route 2",
		Type:         models.SettingHostile,
		IsActive:     true,
		Participants: []models.SettingParticipant{},
		Environment:  []string{},
		Shops:        []uuid.UUID{},
	}
	// The partial unique index refuses a second active encounter.
	require.ErrorIs(t, s.settings.Create(s.ctx, second), models.ErrConflict)

	active, err := s.settings.GetActiveByGame(s.ctx, game.GameID)
	require.NoError(t, err)
	require.Equal(t, first.SettingID, active.SettingID)
}

func (s *IntegrationTestSuite) TestDexUpsert() {
	t := s.T()
	user := s.newUser("ash_ketchum")
	game := s.newGame("Kanto Campaign")
	trainer := s.newTrainer(user, game, "Ash")

	entry := &models.DexItem{
		TrainerID: trainer.TrainerID,
		GameID:    game.GameID,
		DexNo:     25,
		IsSeen:    true,
	}
	require.NoError(t, s.dex.Upsert(s.ctx, entry))

	entry.IsCaught = true
	require.NoError(t, s.dex.Upsert(s.ctx, entry))

	got, err := s.dex.Get(s.ctx, trainer.TrainerID, 25)
	require.NoError(t, err)
	require.True(t, got.IsSeen)
	require.True(t, got.IsCaught)

	list, err := s.dex.ListByTrainer(s.ctx, trainer.TrainerID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func (s *IntegrationTestSuite) TestGameLogOrdering() {
	t := s.T()
	game := s.newGame("Kanto Campaign")

	for i := 1; i <= 3; i++ {
		entry := models.NewGameLog(game.GameID, "Ash", fmt.Sprintf("action %d", i))
		entry.Timestamp = time.Now().UTC().Add(time.Duration(i) * time.Second)
		require.NoError(t, s.logs.Append(s.ctx, entry))
	}

	logs, err := s.logs.ListByGame(s.ctx, game.GameID, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	// Newest first.
	require.Equal(t, "action 3", logs[0].Action)
	require.Equal(t, "action 2", logs[1].Action)
}

func (s *IntegrationTestSuite) TestTokenMirror() {
	t := s.T()
	userID := uuid.New()

	require.NoError(t, s.tokens.Save(s.ctx, userID, "tok", time.Minute))

	got, err := s.tokens.Get(s.ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "tok", got)

	require.NoError(t, s.tokens.Delete(s.ctx, userID))
	_, err = s.tokens.Get(s.ctx, userID)
	require.ErrorIs(t, err, models.ErrNotFound)
}
