package command

type ForgotPasswordCommand struct {
	Email string `json:"email"`
}

type ForgotPasswordCommandResult struct {
	Message string `json:"message"`
}
