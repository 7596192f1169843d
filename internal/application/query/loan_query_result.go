package query

import "booklending-service/internal/application/common"

type LoanListQueryResult struct {
	Result []common.LoanResult `json:"result"`
}
