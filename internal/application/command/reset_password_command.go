package command

type ResetPasswordCommand struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type ResetPasswordCommandResult struct {
	Message string `json:"message"`
}
