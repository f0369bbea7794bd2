package service

import (
	"go.uber.org/zap"

	"pta-server/internal/catalog"
	"pta-server/internal/repository"
)

// Dependencies collects everything the service layer is built from.
type Dependencies struct {
	Users    repository.UserRepository
	Games    repository.GameRepository
	Trainers repository.TrainerRepository
	NPCs     repository.NPCRepository
	Pokemon  repository.PokemonRepository
	Settings repository.SettingRepository
	Shops    repository.ShopRepository
	Dex      repository.DexRepository
	Logs     repository.GameLogRepository
	Tokens   repository.TokenRepository

	Catalog   *catalog.Catalog
	Publisher GameEventPublisher
}

// Services bundles the constructed service layer. All services share one
// per-game lock table and one audit recorder.
type Services struct {
	Users    UserService
	Games    GameService
	Trainers TrainerService
	Pokemon  PokemonService
	Dex      DexService
	Settings SettingService
	Catch    CatchService
	Exchange ExchangeService
}

func NewServices(deps Dependencies, logger *zap.Logger) *Services {
	locks := newGameLock()
	recorder := newLogRecorder(deps.Logs, deps.Publisher, logger)

	trainers := NewTrainerService(deps.Trainers, deps.Users, recorder, locks, logger)

	return &Services{
		Users:    NewUserService(deps.Users, deps.Tokens, logger),
		Games:    NewGameService(deps.Games, deps.NPCs, deps.Logs, deps.Trainers, trainers, logger),
		Trainers: trainers,
		Pokemon:  NewPokemonService(deps.Pokemon, deps.Trainers, deps.Dex, deps.Catalog, recorder, locks, logger),
		Dex:      NewDexService(deps.Dex, deps.Trainers, deps.Catalog, logger),
		Settings: NewSettingService(deps.Settings, deps.Trainers, deps.NPCs, deps.Pokemon, recorder, locks, logger),
		Catch:    NewCatchService(deps.Trainers, deps.Pokemon, deps.Settings, deps.Dex, deps.Catalog, recorder, locks, logger),
		Exchange: NewExchangeService(deps.Pokemon, deps.Trainers, deps.Shops, recorder, locks, logger),
	}
}
