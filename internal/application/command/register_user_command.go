package command

import "booklending-service/internal/application/common"

type RegisterUserCommand struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterUserCommandResult struct {
	Result *common.UserResult `json:"result"`
}
