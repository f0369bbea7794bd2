package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pta-server/internal/auth"
	"pta-server/internal/service"
)

// Handler wires the HTTP surface to the service layer.
type Handler struct {
	users    service.UserService
	games    service.GameService
	trainers service.TrainerService
	pokemon  service.PokemonService
	dex      service.DexService
	settings service.SettingService
	catch    service.CatchService
	exchange service.ExchangeService
	guard    *auth.Guard
	logger   *zap.Logger
}

func NewHandler(
	users service.UserService,
	games service.GameService,
	trainers service.TrainerService,
	pokemon service.PokemonService,
	dex service.DexService,
	settings service.SettingService,
	catch service.CatchService,
	exchange service.ExchangeService,
	guard *auth.Guard,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		users:    users,
		games:    games,
		trainers: trainers,
		pokemon:  pokemon,
		dex:      dex,
		settings: settings,
		catch:    catch,
		exchange: exchange,
		guard:    guard,
		logger:   logger.Named("Handler"),
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	usersGroup := router.Group("/users")
	{
		usersGroup.POST("/register", h.register)
		usersGroup.POST("/login", h.login)
	}

	session := router.Group("/", h.SessionMiddleware())
	{
		session.POST("/users/logout", h.logout)
		session.GET("/users/me", h.getMe)
		session.DELETE("/users/me", h.deleteMe)
	}

	gamesGroup := router.Group("/games")
	{
		gamesGroup.GET("", h.listOnlineGames)
	}

	authedGames := router.Group("/games", h.SessionMiddleware())
	{
		authedGames.POST("", h.createGame)
		authedGames.GET("/:game_id", h.getGame)
		authedGames.POST("/:game_id/join", h.joinGame)
		authedGames.PUT("/:game_id/online", h.setGameOnline)
		authedGames.DELETE("/:game_id", h.deleteGame)
		authedGames.GET("/:game_id/logs", h.gameLogs)

		authedGames.POST("/:game_id/npcs", h.createNPC)
		authedGames.GET("/:game_id/npcs", h.listNPCs)
		authedGames.DELETE("/:game_id/npcs/:npc_id", h.deleteNPC)

		authedGames.GET("/:game_id/trainers", h.listTrainers)
		authedGames.POST("/:game_id/honors", h.grantGroupHonor)

		authedGames.POST("/:game_id/settings", h.createSetting)
		authedGames.GET("/:game_id/settings", h.listSettings)
		authedGames.GET("/:game_id/settings/active", h.activeSetting)

		authedGames.POST("/:game_id/wild", h.spawnWild)
		authedGames.POST("/:game_id/trades", h.trade)

		authedGames.POST("/:game_id/shops", h.createShop)
		authedGames.GET("/:game_id/shops", h.listShops)
	}

	trainersGroup := router.Group("/trainers", h.SessionMiddleware())
	{
		trainersGroup.GET("/:trainer_id", h.getTrainer)
		trainersGroup.DELETE("/:trainer_id", h.deleteTrainer)
		trainersGroup.POST("/:trainer_id/items", h.addItems)
		trainersGroup.DELETE("/:trainer_id/items", h.removeItems)
		trainersGroup.POST("/:trainer_id/honors", h.grantHonor)
		trainersGroup.PUT("/:trainer_id/money", h.adjustMoney)
		trainersGroup.PUT("/:trainer_id/online", h.setTrainerOnline)
		trainersGroup.PUT("/:trainer_id/approve", h.approveTrainer)
		trainersGroup.GET("/:trainer_id/pokemon", h.listPokemon)
		trainersGroup.GET("/:trainer_id/dex", h.listDex)
		trainersGroup.POST("/:trainer_id/dex/:dex_no/seen", h.markSeen)
		trainersGroup.POST("/:trainer_id/dex/:dex_no/caught", h.markCaught)
		trainersGroup.POST("/:trainer_id/catch", h.catchPokemon)
	}

	pokemonGroup := router.Group("/pokemon", h.SessionMiddleware())
	{
		pokemonGroup.GET("/:pokemon_id", h.getPokemon)
		pokemonGroup.DELETE("/:pokemon_id", h.deletePokemon)
		pokemonGroup.POST("/:pokemon_id/evolve", h.evolvePokemon)
		pokemonGroup.PUT("/:pokemon_id/form", h.switchForm)
		pokemonGroup.PUT("/:pokemon_id/hp", h.updatePokemonHP)
		pokemonGroup.PUT("/:pokemon_id/nickname", h.setPokemonNickname)
		pokemonGroup.PUT("/:pokemon_id/evolvable", h.markEvolvable)
		pokemonGroup.PUT("/:pokemon_id/team", h.setActiveTeam)
	}

	settingsGroup := router.Group("/settings", h.SessionMiddleware())
	{
		settingsGroup.GET("/:setting_id", h.getSetting)
		settingsGroup.DELETE("/:setting_id", h.deleteSetting)
		settingsGroup.PUT("/:setting_id/active", h.activateSetting)
		settingsGroup.PUT("/:setting_id/inactive", h.deactivateSetting)
		settingsGroup.POST("/:setting_id/participants", h.joinSetting)
		settingsGroup.PUT("/:setting_id/participants/:participant_id/position", h.moveParticipant)
		settingsGroup.DELETE("/:setting_id/participants/:participant_id", h.leaveSetting)
		settingsGroup.PUT("/:setting_id/hp", h.refreshSettingHP)
		settingsGroup.PUT("/:setting_id/environment", h.setEnvironment)
	}

	shopsGroup := router.Group("/shops", h.SessionMiddleware())
	{
		shopsGroup.GET("/:shop_id", h.getShop)
		shopsGroup.PUT("/:shop_id", h.updateShop)
		shopsGroup.DELETE("/:shop_id", h.deleteShop)
		shopsGroup.POST("/:shop_id/purchase", h.purchase)
	}
}
