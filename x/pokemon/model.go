package pokemon

type createRequest struct {
	Name          string `json:"name" form:"name"`
	Type          string `json:"type" form:"type"`
	Level         int    `json:"level" form:"level"`
	XP            int    `json:"xp" form:"xp"`
	MaxHP         int    `json:"max_hp" form:"max_hp"`
	CurrentHP     int    `json:"current_hp" form:"current_hp"`
	Especial      int    `json:"especial" form:"especial"`
	EspecialTotal int    `json:"especial_total" form:"especial_total"`
	Vigor         int    `json:"vigor" form:"vigor"`
	VigorTotal    int    `json:"vigor_total" form:"vigor_total"`
	ImageURL      string `json:"image_url" form:"image_url"`
	TrainerID     uint   `json:"trainer_id" form:"trainer_id"`
}

// statsRequest uses pointers so absent fields keep their current
// values: stat updates merge, they do not reset.
type statsRequest struct {
	Level         *int `json:"level"`
	XP            *int `json:"xp"`
	MaxHP         *int `json:"max_hp"`
	CurrentHP     *int `json:"current_hp"`
	Especial      *int `json:"especial"`
	EspecialTotal *int `json:"especial_total"`
	Vigor         *int `json:"vigor"`
	VigorTotal    *int `json:"vigor_total"`
}
