package trainer

type registerRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Captcha  string `json:"captcha" form:"captcha"`
}

type updateRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}
