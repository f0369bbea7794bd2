package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pta-server/shared/models"
)

// loadPokemon fetches the pokemon behind a path parameter.
func (h *Handler) loadPokemon(c *gin.Context) (*models.Pokemon, bool) {
	pokemonID, ok := parseUUIDParam(c, "pokemon_id")
	if !ok {
		return nil, false
	}
	pokemon, err := h.pokemon.GetPokemon(c.Request.Context(), pokemonID)
	if err != nil {
		handleServiceError(c, err)
		return nil, false
	}
	return pokemon, true
}

// requirePokemonOwnerOrGM aborts unless the caller owns the pokemon's
// trainer or runs its game. Wild pokemon fall to the GM.
func (h *Handler) requirePokemonOwnerOrGM(c *gin.Context, pokemon *models.Pokemon) bool {
	if !pokemon.IsWild() {
		trainer, err := h.trainers.GetTrainer(c.Request.Context(), pokemon.TrainerID)
		if err == nil && trainer.UserID == currentUserID(c) {
			return true
		}
	}
	return h.requireGM(c, pokemon.GameID)
}

func (h *Handler) getPokemon(c *gin.Context) {
	pokemon, ok := h.loadPokemon(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, pokemon)
}

func (h *Handler) listPokemon(c *gin.Context) {
	trainerID, ok := parseUUIDParam(c, "trainer_id")
	if !ok {
		return
	}
	list, err := h.pokemon.ListByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) evolvePokemon(c *gin.Context) {
	pokemon, ok := h.loadPokemon(c)
	if !ok {
		return
	}
	if !h.requirePokemonOwnerOrGM(c, pokemon) {
		return
	}
	var req evolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	evolved, err := h.pokemon.Evolve(c.Request.Context(), pokemon.PokemonID, req.Species, req.Nickname, req.KeptMoves, req.NewMoves)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, evolved)
}

func (h *Handler) switchForm(c *gin.Context) {
	pokemon, ok := h.loadPokemon(c)
	if !ok {
		return
	}
	if !h.requirePokemonOwnerOrGM(c, pokemon) {
		return
	}
	var req formRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	switched, err := h.pokemon.SwitchForm(c.Request.Context(), pokemon.PokemonID, req.Form)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, switched)
}

func (h *Handler) updatePokemonHP(c *gin.Context) {
	pokemon, ok := h.loadPokemon(c)
	if !ok {
		return
	}
	if !h.requireGM(c, pokemon.GameID) {
		return
	}
	var req hpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	updated, err := h.pokemon.UpdateHP(c.Request.Context(), pokemon.PokemonID, *req.HP)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) setPokemonNickname(c *gin.Context) {
	pokemon, ok := h.loadPokemon(c)
	if !ok {
		return
	}
	if !h.requirePokemonOwnerOrGM(c, pokemon) {
		return
	}
	var req nicknameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	if err := h.pokemon.SetNickname(c.Request.Context(), pokemon.PokemonID, req.Nickname); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "nickname updated"})
}

func (h *Handler) markEvolvable(c *gin.Context) {
	pokemon, ok := h.loadPokemon(c)
	if !ok {
		return
	}
	if !h.requireGM(c, pokemon.GameID) {
		return
	}
	if err := h.pokemon.MarkEvolvable(c.Request.Context(), pokemon.PokemonID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "pokemon can now evolve"})
}

func (h *Handler) setActiveTeam(c *gin.Context) {
	pokemon, ok := h.loadPokemon(c)
	if !ok {
		return
	}
	if !h.requirePokemonOwnerOrGM(c, pokemon) {
		return
	}
	var req teamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	if err := h.pokemon.SetActiveTeam(c.Request.Context(), pokemon.PokemonID, *req.OnTeam); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "team updated"})
}

func (h *Handler) deletePokemon(c *gin.Context) {
	pokemon, ok := h.loadPokemon(c)
	if !ok {
		return
	}
	if !h.requireGM(c, pokemon.GameID) {
		return
	}
	if err := h.pokemon.DeletePokemon(c.Request.Context(), pokemon.PokemonID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "pokemon released"})
}
