package query

import "booklending-service/internal/application/common"

type StatsQueryResult struct {
	Result *common.StatsResult `json:"result"`
}
