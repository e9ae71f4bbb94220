package sheet

import (
	"encoding/json"

	"github.com/pokecamp/backend/x/core"
)

// trainerSheetRequest carries the whole sheet: saves replace the row,
// they never merge fields. The three collections are opaque JSON the
// client round-trips.
type trainerSheetRequest struct {
	Nome      string          `json:"nome"`
	Peso      string          `json:"peso"`
	Idade     string          `json:"idade"`
	Altura    string          `json:"altura"`
	Cidade    string          `json:"cidade"`
	Regiao    string          `json:"regiao"`
	XP        string          `json:"xp"`
	HP        string          `json:"hp"`
	Level     string          `json:"level"`
	Vantagens json.RawMessage `json:"vantagens"`
	Atributos json.RawMessage `json:"atributos"`
	Pericias  json.RawMessage `json:"pericias"`
}

type trainerSheetResponse struct {
	ID        uint            `json:"id"`
	UserID    uint            `json:"user_id"`
	Nome      string          `json:"nome"`
	Peso      string          `json:"peso"`
	Idade     string          `json:"idade"`
	Altura    string          `json:"altura"`
	Cidade    string          `json:"cidade"`
	Regiao    string          `json:"regiao"`
	XP        string          `json:"xp"`
	HP        string          `json:"hp"`
	Level     string          `json:"level"`
	Vantagens json.RawMessage `json:"vantagens"`
	Atributos json.RawMessage `json:"atributos"`
	Pericias  json.RawMessage `json:"pericias"`
}

func rawOrNull(s string) json.RawMessage {
	if s == "" {
		return json.RawMessage("null")
	}
	return json.RawMessage(s)
}

func toResponse(s core.TrainerSheet) trainerSheetResponse {
	return trainerSheetResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		Nome:      s.Nome,
		Peso:      s.Peso,
		Idade:     s.Idade,
		Altura:    s.Altura,
		Cidade:    s.Cidade,
		Regiao:    s.Regiao,
		XP:        s.XP,
		HP:        s.HP,
		Level:     s.Level,
		Vantagens: rawOrNull(s.VantagensJSON),
		Atributos: rawOrNull(s.AtributosJSON),
		Pericias:  rawOrNull(s.PericiasJSON),
	}
}

type pokemonSheetRequest struct {
	Notes string `json:"notes"`
}
