package common

type StatsResult struct {
	OwnedBooks      int64 `json:"ownedBooks"`
	BorrowedBooks   int64 `json:"borrowedBooks"`
	PendingRequests int64 `json:"pendingRequests"`
}
