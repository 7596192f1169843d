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

type BorrowRequestRepository struct {
	db *gorm.DB
}

func NewBorrowRequestRepository(db *gorm.DB) repositories.BorrowRequestRepository {
	return &BorrowRequestRepository{db: db}
}

func (r *BorrowRequestRepository) Create(ctx context.Context, request *entities.BorrowRequest) (*entities.BorrowRequest, error) {
	requestModel := requestModelFromEntity(request)
	if err := dbFrom(ctx, r.db).Create(&requestModel).Error; err != nil {
		return nil, err
	}

	return r.FindById(ctx, requestModel.Id)
}

func (r *BorrowRequestRepository) FindById(ctx context.Context, id uuid.UUID) (*entities.BorrowRequest, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *BorrowRequestRepository) FindPendingByIdAndOwner(ctx context.Context, id, ownerId uuid.UUID) (*entities.BorrowRequest, error) {
	return r.findOne(ctx, "id = ? AND owner_id = ? AND status = ?", id, ownerId, string(entities.RequestStatusPending))
}

func (r *BorrowRequestRepository) FindPendingByIdAndRequester(ctx context.Context, id, requesterId uuid.UUID) (*entities.BorrowRequest, error) {
	return r.findOne(ctx, "id = ? AND requester_id = ? AND status = ?", id, requesterId, string(entities.RequestStatusPending))
}

func (r *BorrowRequestRepository) FindPendingByBookAndRequester(ctx context.Context, bookId, requesterId uuid.UUID) (*entities.BorrowRequest, error) {
	return r.findOne(ctx, "book_id = ? AND requester_id = ? AND status = ?", bookId, requesterId, string(entities.RequestStatusPending))
}

func (r *BorrowRequestRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entities.BorrowRequest, error) {
	var requestModel BorrowRequestModel
	if err := dbFrom(ctx, r.db).Where(query, args...).First(&requestModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return requestEntityFromModel(&requestModel), nil
}

func (r *BorrowRequestRepository) ListPendingByRequester(ctx context.Context, requesterId uuid.UUID) ([]entities.BorrowRequest, error) {
	var requestModels []BorrowRequestModel
	err := dbFrom(ctx, r.db).
		Where("requester_id = ? AND status = ?", requesterId, string(entities.RequestStatusPending)).
		Find(&requestModels).Error
	if err != nil {
		return nil, err
	}

	requests := make([]entities.BorrowRequest, 0, len(requestModels))
	for i := range requestModels {
		requests = append(requests, *requestEntityFromModel(&requestModels[i]))
	}
	return requests, nil
}

func (r *BorrowRequestRepository) ListPendingByBook(ctx context.Context, bookId uuid.UUID) ([]entities.BorrowRequest, error) {
	var requestModels []BorrowRequestModel
	err := dbFrom(ctx, r.db).
		Where("book_id = ? AND status = ?", bookId, string(entities.RequestStatusPending)).
		Find(&requestModels).Error
	if err != nil {
		return nil, err
	}

	requests := make([]entities.BorrowRequest, 0, len(requestModels))
	for i := range requestModels {
		requests = append(requests, *requestEntityFromModel(&requestModels[i]))
	}
	return requests, nil
}

type requestDetailsRow struct {
	BorrowRequestModel
	BookTitle      string
	BookAuthor     string
	BookCoverImage *string
	RequesterName  string
	RequesterEmail string
	OwnerName      string
}

func (r *BorrowRequestRepository) ListReceived(ctx context.Context, ownerId uuid.UUID, status entities.RequestStatus) ([]entities.BorrowRequestDetails, error) {
	var rows []requestDetailsRow
	err := dbFrom(ctx, r.db).Table("borrow_requests").
		Select("borrow_requests.*, " +
			"books.title AS book_title, books.author AS book_author, books.cover_image AS book_cover_image, " +
			"users.name AS requester_name, users.email AS requester_email").
		Joins("JOIN books ON books.id = borrow_requests.book_id").
		Joins("JOIN users ON users.id = borrow_requests.requester_id").
		Where("borrow_requests.owner_id = ? AND borrow_requests.status = ?", ownerId, string(status)).
		Order("borrow_requests.request_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return requestDetailsFromRows(rows), nil
}

func (r *BorrowRequestRepository) ListSent(ctx context.Context, requesterId uuid.UUID) ([]entities.BorrowRequestDetails, error) {
	var rows []requestDetailsRow
	err := dbFrom(ctx, r.db).Table("borrow_requests").
		Select("borrow_requests.*, " +
			"books.title AS book_title, books.author AS book_author, books.cover_image AS book_cover_image, " +
			"users.name AS owner_name").
		Joins("JOIN books ON books.id = borrow_requests.book_id").
		Joins("JOIN users ON users.id = borrow_requests.owner_id").
		Where("borrow_requests.requester_id = ?", requesterId).
		Order("borrow_requests.request_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return requestDetailsFromRows(rows), nil
}

func (r *BorrowRequestRepository) MarkResponded(ctx context.Context, id uuid.UUID, status entities.RequestStatus, at time.Time) (bool, error) {
	// Guarded write: responding is legal only while the request is still
	// pending.
	result := dbFrom(ctx, r.db).Model(&BorrowRequestModel{}).
		Where("id = ? AND status = ?", id, string(entities.RequestStatusPending)).
		Updates(map[string]interface{}{
			"status":        string(status),
			"response_date": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *BorrowRequestRepository) RejectOtherPending(ctx context.Context, bookId, keepId uuid.UUID, at time.Time) (int64, error) {
	result := dbFrom(ctx, r.db).Model(&BorrowRequestModel{}).
		Where("book_id = ? AND id <> ? AND status = ?", bookId, keepId, string(entities.RequestStatusPending)).
		Updates(map[string]interface{}{
			"status":        string(entities.RequestStatusRejected),
			"response_date": at,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *BorrowRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&BorrowRequestModel{}, "id = ?", id).Error
}

func (r *BorrowRequestRepository) CountPendingByBook(ctx context.Context, bookId uuid.UUID) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&BorrowRequestModel{}).
		Where("book_id = ? AND status = ?", bookId, string(entities.RequestStatusPending)).
		Count(&count).Error
	return count, err
}

func (r *BorrowRequestRepository) CountPendingByOwner(ctx context.Context, ownerId uuid.UUID) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&BorrowRequestModel{}).
		Where("owner_id = ? AND status = ?", ownerId, string(entities.RequestStatusPending)).
		Count(&count).Error
	return count, err
}

func requestModelFromEntity(request *entities.BorrowRequest) BorrowRequestModel {
	return BorrowRequestModel{
		Id:           request.Id,
		BookId:       request.BookId,
		RequesterId:  request.RequesterId,
		OwnerId:      request.OwnerId,
		Status:       string(request.Status),
		Message:      request.Message,
		RequestDate:  request.RequestDate,
		ResponseDate: request.ResponseDate,
	}
}

func requestEntityFromModel(requestModel *BorrowRequestModel) *entities.BorrowRequest {
	return &entities.BorrowRequest{
		Id:           requestModel.Id,
		BookId:       requestModel.BookId,
		RequesterId:  requestModel.RequesterId,
		OwnerId:      requestModel.OwnerId,
		Status:       entities.RequestStatus(requestModel.Status),
		Message:      requestModel.Message,
		RequestDate:  requestModel.RequestDate,
		ResponseDate: requestModel.ResponseDate,
	}
}

func requestDetailsFromRows(rows []requestDetailsRow) []entities.BorrowRequestDetails {
	details := make([]entities.BorrowRequestDetails, 0, len(rows))
	for i := range rows {
		details = append(details, entities.BorrowRequestDetails{
			BorrowRequest:  *requestEntityFromModel(&rows[i].BorrowRequestModel),
			BookTitle:      rows[i].BookTitle,
			BookAuthor:     rows[i].BookAuthor,
			BookCoverImage: rows[i].BookCoverImage,
			RequesterName:  rows[i].RequesterName,
			RequesterEmail: rows[i].RequesterEmail,
			OwnerName:      rows[i].OwnerName,
		})
	}
	return details
}
