package handler

import (
	"github.com/google/uuid"

	"pta-server/internal/service"
	"pta-server/shared/models"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	User          *models.User `json:"user"`
	ActivityToken string       `json:"activityToken"`
}

type createGameRequest struct {
	Nickname string `json:"nickname" binding:"required"`
	Password string `json:"password" binding:"required"`
	GMName   string `json:"gmName" binding:"required"`
}

type createGameResponse struct {
	Game *models.Game    `json:"game"`
	GM   *models.Trainer `json:"gm"`
}

type joinGameRequest struct {
	Password    string `json:"password" binding:"required"`
	TrainerName string `json:"trainerName" binding:"required"`
}

type onlineRequest struct {
	Online *bool `json:"online" binding:"required"`
}

type createNPCRequest struct {
	TrainerName    string           `json:"trainerName" binding:"required"`
	TrainerClasses []string         `json:"trainerClasses"`
	Feats          []string         `json:"feats"`
	TrainerStats   models.StatBlock `json:"trainerStats"`
}

type addItemsRequest struct {
	Items []models.Item `json:"items" binding:"required"`
}

type removeItemsRequest struct {
	Items []service.ItemRequest `json:"items" binding:"required"`
}

type honorRequest struct {
	Honor string `json:"honor" binding:"required"`
}

type moneyRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

type evolveRequest struct {
	Species   string   `json:"species" binding:"required"`
	Nickname  string   `json:"nickname"`
	KeptMoves []string `json:"keptMoves"`
	NewMoves  []string `json:"newMoves"`
}

type formRequest struct {
	Form string `json:"form" binding:"required"`
}

type hpRequest struct {
	HP *int `json:"hp" binding:"required"`
}

type nicknameRequest struct {
	Nickname string `json:"nickname" binding:"required"`
}

type teamRequest struct {
	OnTeam *bool `json:"onTeam" binding:"required"`
}

type createSettingRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}

type joinSettingRequest struct {
	ParticipantID uuid.UUID              `json:"participantId" binding:"required"`
	Type          models.ParticipantType `json:"type" binding:"required"`
	Position      models.MapPosition     `json:"position"`
}

type moveRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type environmentRequest struct {
	Tags []string `json:"tags" binding:"required"`
}

type catchRequest struct {
	PokemonID uuid.UUID `json:"pokemonId" binding:"required"`
	Ball      string    `json:"ball" binding:"required"`
	// The GM-decided difficulty of this particular throw. A pointer so
	// that an explicit zero passes the required check.
	CatchRate *int   `json:"catchRate" binding:"required"`
	Nickname  string `json:"nickname"`
}

type spawnRequest struct {
	Species    string `json:"species" binding:"required"`
	Nickname   string `json:"nickname"`
	Gender     string `json:"gender"`
	Nature     string `json:"nature"`
	Status     string `json:"status"`
	ForceShiny bool   `json:"forceShiny"`
}

type createShopRequest struct {
	Name      string                 `json:"name" binding:"required"`
	Inventory map[string]models.Ware `json:"inventory"`
}

type updateShopRequest struct {
	Name      string                 `json:"name"`
	IsActive  *bool                  `json:"isActive"`
	Inventory map[string]models.Ware `json:"inventory"`
}

type purchaseRequest struct {
	TrainerID uuid.UUID             `json:"trainerId" binding:"required"`
	Wares     []service.WareRequest `json:"wares" binding:"required"`
}

type tradeRequest struct {
	LeftPokemonID  uuid.UUID `json:"leftPokemonId" binding:"required"`
	RightPokemonID uuid.UUID `json:"rightPokemonId" binding:"required"`
}
