package core

import (
	"time"
)

// Trainer is a user account, either a master (admin) or a regular trainer.
// mutable
type Trainer struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"type:text;not null;uniqueIndex"`
	Password string `json:"-" gorm:"type:text;not null"`
	Role     Role   `json:"tipo_usuario" gorm:"column:tipo_usuario;type:text;not null"`
	ImageURL string `json:"image_url" gorm:"column:image_url;type:text"`
}

func (Trainer) TableName() string { return "users" }

// Pokemon belongs to exactly one trainer. Status tracks whether it is
// in the active party ("U") or in the box ("D").
// mutable
type Pokemon struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string    `json:"name" gorm:"type:text;not null"`
	Type          string    `json:"type" gorm:"type:text;not null"`
	Level         int       `json:"level" gorm:"not null;default:1"`
	XP            int       `json:"xp" gorm:"column:xp;not null;default:0"`
	MaxHP         int       `json:"max_hp" gorm:"column:max_hp;not null;default:10"`
	CurrentHP     int       `json:"current_hp" gorm:"column:current_hp;not null;default:10"`
	Especial      int       `json:"especial" gorm:"not null;default:10"`
	EspecialTotal int       `json:"especial_total" gorm:"column:especial_total;not null;default:10"`
	Vigor         int       `json:"vigor" gorm:"not null;default:10"`
	VigorTotal    int       `json:"vigor_total" gorm:"column:vigor_total;not null;default:10"`
	ImageURL      string    `json:"image_url" gorm:"column:image_url;type:text"`
	TrainerID     uint      `json:"trainer_id" gorm:"column:trainer_id;not null;index"`
	Status        Placement `json:"status" gorm:"type:text;not null;default:'U'"`
}

func (Pokemon) TableName() string { return "pokemons" }

// TrainerSheet is the free-form character sheet of a trainer. One row
// per trainer, replaced whole on every save. The three *JSON columns
// hold opaque JSON-encoded collections the client round-trips.
type TrainerSheet struct {
	ID            uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID        uint   `json:"user_id" gorm:"column:user_id;not null;uniqueIndex"`
	Nome          string `json:"nome" gorm:"type:text"`
	Peso          string `json:"peso" gorm:"type:text"`
	Idade         string `json:"idade" gorm:"type:text"`
	Altura        string `json:"altura" gorm:"type:text"`
	Cidade        string `json:"cidade" gorm:"type:text"`
	Regiao        string `json:"regiao" gorm:"type:text"`
	XP            string `json:"xp" gorm:"column:xp;type:text"`
	HP            string `json:"hp" gorm:"column:hp;type:text"`
	Level         string `json:"level" gorm:"type:text"`
	VantagensJSON string `json:"vantagens_json" gorm:"column:vantagens_json;type:text"`
	AtributosJSON string `json:"atributos_json" gorm:"column:atributos_json;type:text"`
	PericiasJSON  string `json:"pericias_json" gorm:"column:pericias_json;type:text"`
}

func (TrainerSheet) TableName() string { return "trainer_sheets" }

// PokemonSheet is the per-pokemon counterpart of TrainerSheet.
// Mostly a placeholder for now.
type PokemonSheet struct {
	ID        uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	PokemonID uint   `json:"pokemon_id" gorm:"column:pokemon_id;not null;uniqueIndex"`
	Notes     string `json:"notes" gorm:"type:text"`
}

func (PokemonSheet) TableName() string { return "pokemon_sheets" }

// PokedexEntry records that a trainer has discovered a species.
// Composite key (species id, trainer); duplicate inserts are ignored.
type PokedexEntry struct {
	SpeciesID uint   `json:"id" gorm:"column:id;primaryKey;autoIncrement:false"`
	UserID    uint   `json:"user_id" gorm:"column:user_id;primaryKey;autoIncrement:false"`
	Name      string `json:"name" gorm:"type:text;not null"`
	Type      string `json:"type" gorm:"type:text;not null"`
	ImageURL  string `json:"image_url" gorm:"column:image_url;type:text"`
}

func (PokedexEntry) TableName() string { return "pokedex" }

// BackpackItem is a named item stack in a trainer's backpack.
// unique(user, item name); additions increment the quantity.
type BackpackItem struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID   uint   `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_mochila_user_item"`
	ItemName string `json:"item_nome" gorm:"column:item_nome;type:text;not null;uniqueIndex:idx_mochila_user_item"`
	Quantity int    `json:"quantidade" gorm:"column:quantidade;not null"`
}

func (BackpackItem) TableName() string { return "mochila_itens" }

// AuditLog is one immutable record of a state-changing action. The
// username is snapshotted at write time so entries stay readable after
// renames and deletions.
type AuditLog struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Timestamp time.Time `json:"timestamp" gorm:"autoCreateTime;index"`
	UserID    *uint     `json:"user_id" gorm:"column:user_id"`
	Username  string    `json:"username" gorm:"type:text"`
	Action    string    `json:"action" gorm:"type:text;not null"`
	Details   string    `json:"details" gorm:"type:text"`
}

func (AuditLog) TableName() string { return "audit_logs" }
