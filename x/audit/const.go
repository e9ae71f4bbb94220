package audit

// Action tags form a closed vocabulary, one per state-changing
// operation. The values are the ones the audit_logs table has always
// stored, so existing log data stays queryable.
const (
	ActionLogin           = "LOGIN"
	ActionRegisterTrainer = "CADASTRO_TREINADOR"
	ActionEditTrainer     = "EDITOU_TREINADOR"
	ActionDeleteTrainer   = "EXCLUSÃO_DE_TREINADOR"
	ActionAddPokemon      = "ADICIONOU_POKEMON"
	ActionEditPokemon     = "EDITOU_POKEMON_STATS"
	ActionDeletePokemon   = "EXCLUIU_POKEMON"
	ActionDepositPokemon  = "DEPOSITOU_POKEMON"
	ActionWithdrawPokemon = "RETIROU_POKEMON"
	ActionSaveSheet       = "SALVOU_FICHA"
	ActionAddPokedex      = "ADICIONOU_POKEDEX"
	ActionAddItem         = "ADICIONOU_ITEM"
	ActionEditItem        = "EDITOU_ITEM_QTD"
	ActionRemoveItem      = "REMOVEU_ITEM_COMPLETO"
)

// SystemUsername is the snapshot label used when an action has no
// resolvable actor.
const SystemUsername = "Sistema"

// ListLimit caps the audit listing.
const ListLimit = 200
