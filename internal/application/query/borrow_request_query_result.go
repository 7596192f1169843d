package query

import "booklending-service/internal/application/common"

type BorrowRequestListQueryResult struct {
	Result []common.BorrowRequestResult `json:"result"`
}
