package service_test

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pta-server/internal/catalog"
	"pta-server/internal/repository/mocks"
	"pta-server/internal/service"
)

// repoMocks bundles one mock per repository so each test can set
// expectations on exactly the ones its operation touches.
type repoMocks struct {
	users    *mocks.UserRepository
	games    *mocks.GameRepository
	trainers *mocks.TrainerRepository
	npcs     *mocks.NPCRepository
	pokemon  *mocks.PokemonRepository
	settings *mocks.SettingRepository
	shops    *mocks.ShopRepository
	dex      *mocks.DexRepository
	logs     *mocks.GameLogRepository
	tokens   *mocks.TokenRepository
}

func newTestServices(t *testing.T) (*service.Services, *repoMocks) {
	t.Helper()

	m := &repoMocks{
		users:    new(mocks.UserRepository),
		games:    new(mocks.GameRepository),
		trainers: new(mocks.TrainerRepository),
		npcs:     new(mocks.NPCRepository),
		pokemon:  new(mocks.PokemonRepository),
		settings: new(mocks.SettingRepository),
		shops:    new(mocks.ShopRepository),
		dex:      new(mocks.DexRepository),
		logs:     new(mocks.GameLogRepository),
		tokens:   new(mocks.TokenRepository),
	}
	// Audit writes happen on most mutations and are not what these tests
	// assert on.
	m.logs.On("Append", mock.Anything, mock.Anything).Return(nil).Maybe()

	cat, err := catalog.Load()
	require.NoError(t, err)

	svcs := service.NewServices(service.Dependencies{
		Users:    m.users,
		Games:    m.games,
		Trainers: m.trainers,
		NPCs:     m.npcs,
		Pokemon:  m.pokemon,
		Settings: m.settings,
		Shops:    m.shops,
		Dex:      m.dex,
		Logs:     m.logs,
		Tokens:   m.tokens,
		Catalog:  cat,
	}, zap.NewNop())
	return svcs, m
}
