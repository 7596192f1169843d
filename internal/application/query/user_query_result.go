package query

import "booklending-service/internal/application/common"

type UserQueryResult struct {
	Result *common.UserResult `json:"result"`
}
