package mapper

import (
	"booklending-service/internal/application/common"
	"booklending-service/internal/domain/entities"
)

func NewBorrowRequestResultFromDetails(details *entities.BorrowRequestDetails) *common.BorrowRequestResult {
	return &common.BorrowRequestResult{
		Id:             details.Id,
		BookId:         details.BookId,
		RequesterId:    details.RequesterId,
		OwnerId:        details.OwnerId,
		Status:         string(details.Status),
		Message:        details.Message,
		RequestDate:    details.RequestDate,
		ResponseDate:   details.ResponseDate,
		BookTitle:      details.BookTitle,
		BookAuthor:     details.BookAuthor,
		BookCoverImage: details.BookCoverImage,
		RequesterName:  details.RequesterName,
		RequesterEmail: details.RequesterEmail,
		OwnerName:      details.OwnerName,
	}
}
