package mapper

import (
	"booklending-service/internal/application/common"
	"booklending-service/internal/domain/entities"
)

func NewLoanResultFromDetails(details *entities.LoanDetails) *common.LoanResult {
	return &common.LoanResult{
		Id:         details.Loan.Id,
		BorrowedAt: details.BorrowedAt,
		DueDate:    details.DueDate,
		ReturnedAt: details.ReturnedAt,
		RequestId:  details.RequestId,
		Book:       *NewBookResultFromEntity(&details.Book),
		Owner:      common.LoanOwnerResult{Name: details.OwnerName},
	}
}

func NewLoanResultFromEntity(loan *entities.Loan, book *entities.Book, ownerName string) *common.LoanResult {
	return &common.LoanResult{
		Id:         loan.Id,
		BorrowedAt: loan.BorrowedAt,
		DueDate:    loan.DueDate,
		ReturnedAt: loan.ReturnedAt,
		RequestId:  loan.RequestId,
		Book:       *NewBookResultFromEntity(book),
		Owner:      common.LoanOwnerResult{Name: ownerName},
	}
}
