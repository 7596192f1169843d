package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"booklending-service/internal/domain/entities"
	"booklending-service/internal/domain/repositories"
)

type LoanRepository struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) repositories.LoanRepository {
	return &LoanRepository{db: db}
}

func (r *LoanRepository) Create(ctx context.Context, loan *entities.Loan) (*entities.Loan, error) {
	loanModel := loanModelFromEntity(loan)
	if err := dbFrom(ctx, r.db).Create(&loanModel).Error; err != nil {
		return nil, err
	}

	return loanEntityFromModel(&loanModel), nil
}

func (r *LoanRepository) FindOpenByBookAndUser(ctx context.Context, bookId, userId uuid.UUID) (*entities.Loan, error) {
	var loanModel LoanModel
	err := dbFrom(ctx, r.db).
		Where("book_id = ? AND user_id = ? AND returned_at IS NULL", bookId, userId).
		First(&loanModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return loanEntityFromModel(&loanModel), nil
}

type loanDetailsRow struct {
	LoanModel
	BookTitle         string
	BookAuthor        string
	BookISBN          string `gorm:"column:book_isbn"`
	BookPublishedYear int
	BookDescription   *string
	BookCoverImage    *string
	BookOwnerId       uuid.UUID `gorm:"column:book_owner_id"`
	OwnerName         string
}

func (r *LoanRepository) ListOpenByUser(ctx context.Context, userId uuid.UUID) ([]entities.LoanDetails, error) {
	var rows []loanDetailsRow
	err := dbFrom(ctx, r.db).Table("borrowed_books").
		Select("borrowed_books.*, "+
			"books.title AS book_title, books.author AS book_author, books.isbn AS book_isbn, "+
			"books.published_year AS book_published_year, books.description AS book_description, "+
			"books.cover_image AS book_cover_image, books.user_id AS book_owner_id, "+
			"users.name AS owner_name").
		Joins("JOIN books ON books.id = borrowed_books.book_id").
		Joins("JOIN users ON users.id = books.user_id").
		Where("borrowed_books.user_id = ? AND borrowed_books.returned_at IS NULL", userId).
		Order("borrowed_books.borrowed_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	details := make([]entities.LoanDetails, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		details = append(details, entities.LoanDetails{
			Loan: *loanEntityFromModel(&row.LoanModel),
			Book: entities.Book{
				Id:            row.BookId,
				Title:         row.BookTitle,
				Author:        row.BookAuthor,
				ISBN:          row.BookISBN,
				PublishedYear: row.BookPublishedYear,
				Description:   row.BookDescription,
				CoverImage:    row.BookCoverImage,
				Available:     false,
				OwnerId:       row.BookOwnerId,
			},
			OwnerName: row.OwnerName,
		})
	}
	return details, nil
}

func (r *LoanRepository) MarkReturned(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	// Guarded write: a loan can be closed exactly once.
	result := dbFrom(ctx, r.db).Model(&LoanModel{}).
		Where("id = ? AND returned_at IS NULL", id).
		Update("returned_at", at)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *LoanRepository) CountOpenByUser(ctx context.Context, userId uuid.UUID) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&LoanModel{}).
		Where("user_id = ? AND returned_at IS NULL", userId).
		Count(&count).Error
	return count, err
}

func (r *LoanRepository) CountOpenByBook(ctx context.Context, bookId uuid.UUID) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&LoanModel{}).
		Where("book_id = ? AND returned_at IS NULL", bookId).
		Count(&count).Error
	return count, err
}

func loanModelFromEntity(loan *entities.Loan) LoanModel {
	return LoanModel{
		Id:         loan.Id,
		UserId:     loan.UserId,
		BookId:     loan.BookId,
		RequestId:  loan.RequestId,
		BorrowedAt: loan.BorrowedAt,
		DueDate:    loan.DueDate,
		ReturnedAt: loan.ReturnedAt,
	}
}

func loanEntityFromModel(loanModel *LoanModel) *entities.Loan {
	return &entities.Loan{
		Id:         loanModel.Id,
		UserId:     loanModel.UserId,
		BookId:     loanModel.BookId,
		RequestId:  loanModel.RequestId,
		BorrowedAt: loanModel.BorrowedAt,
		DueDate:    loanModel.DueDate,
		ReturnedAt: loanModel.ReturnedAt,
	}
}
