package query

import "booklending-service/internal/application/common"

type BookQueryResult struct {
	Result *common.BookResult `json:"result"`
}

type BookListQueryResult struct {
	Result []common.BookResult `json:"result"`
}
