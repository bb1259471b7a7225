package handlers

import (
	"github.com/gorilla/schema"

	"github.com/vancomm/memory-server/internal/memory"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type CreateNewGameDTO struct {
	Dimension int `schema:"dimension"`
}

func ParseCreateNewGameDTO(src map[string][]string) (CreateNewGameDTO, error) {
	var dto CreateNewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type FlipDTO struct {
	Index int `schema:"index,required"`
}

func ParseFlipDTO(src map[string][]string) (FlipDTO, error) {
	var dto FlipDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type GameSessionDTO struct {
	GameSessionId string `json:"game_session_id"`
	memory.Snapshot
}

func NewGameSessionDTO(id string, snapshot memory.Snapshot) *GameSessionDTO {
	return &GameSessionDTO{GameSessionId: id, Snapshot: snapshot}
}
