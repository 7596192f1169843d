package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"booklending-service/internal/domain/entities"
	"booklending-service/internal/domain/repositories"
)

type BookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) repositories.BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) Create(ctx context.Context, book *entities.ValidatedBook) (*entities.Book, error) {
	bookModel := bookModelFromEntity(book.GetBook())
	if err := dbFrom(ctx, r.db).Create(&bookModel).Error; err != nil {
		return nil, err
	}

	return r.FindById(ctx, bookModel.Id)
}

func (r *BookRepository) FindById(ctx context.Context, id uuid.UUID) (*entities.Book, error) {
	return r.findOne(dbFrom(ctx, r.db), "id = ?", id)
}

func (r *BookRepository) FindByIdForUpdate(ctx context.Context, id uuid.UUID) (*entities.Book, error) {
	db := dbFrom(ctx, r.db)
	// Row locking exists on postgres only; sqlite (tests) serializes writers
	// on its own and rejects FOR UPDATE.
	if db.Dialector.Name() == "postgres" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.findOne(db, "id = ?", id)
}

func (r *BookRepository) FindByISBN(ctx context.Context, isbn string, excludeId uuid.UUID) (*entities.Book, error) {
	db := dbFrom(ctx, r.db)
	if excludeId != uuid.Nil {
		return r.findOne(db, "isbn = ? AND id <> ?", isbn, excludeId)
	}
	return r.findOne(db, "isbn = ?", isbn)
}

func (r *BookRepository) findOne(db *gorm.DB, query string, args ...interface{}) (*entities.Book, error) {
	var bookModel BookModel
	if err := db.Where(query, args...).First(&bookModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return bookEntityFromModel(&bookModel), nil
}

func (r *BookRepository) ListAll(ctx context.Context) ([]entities.Book, error) {
	var bookModels []BookModel
	if err := dbFrom(ctx, r.db).Order("title ASC").Find(&bookModels).Error; err != nil {
		return nil, err
	}

	return bookEntitiesFromModels(bookModels), nil
}

func (r *BookRepository) ListByOwner(ctx context.Context, ownerId uuid.UUID) ([]entities.Book, error) {
	var bookModels []BookModel
	if err := dbFrom(ctx, r.db).Where("user_id = ?", ownerId).Order("created_at DESC").Find(&bookModels).Error; err != nil {
		return nil, err
	}

	return bookEntitiesFromModels(bookModels), nil
}

type bookWithOwnerRow struct {
	BookModel
	OwnerName string
}

func (r *BookRepository) ListAvailable(ctx context.Context) ([]entities.BookWithOwner, error) {
	var rows []bookWithOwnerRow
	err := dbFrom(ctx, r.db).Table("books").
		Select("books.*, users.name AS owner_name").
		Joins("JOIN users ON users.id = books.user_id").
		Where("books.available = ?", true).
		Order("books.title ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	books := make([]entities.BookWithOwner, 0, len(rows))
	for i := range rows {
		books = append(books, entities.BookWithOwner{
			Book:      *bookEntityFromModel(&rows[i].BookModel),
			OwnerName: rows[i].OwnerName,
		})
	}
	return books, nil
}

func (r *BookRepository) Update(ctx context.Context, book *entities.ValidatedBook) (*entities.Book, error) {
	bookEntity := book.GetBook()
	err := dbFrom(ctx, r.db).Model(&BookModel{}).Where("id = ?", bookEntity.Id).
		Updates(map[string]interface{}{
			"title":          bookEntity.Title,
			"author":         bookEntity.Author,
			"isbn":           bookEntity.ISBN,
			"published_year": bookEntity.PublishedYear,
			"description":    bookEntity.Description,
			"cover_image":    bookEntity.CoverImage,
		}).Error
	if err != nil {
		return nil, err
	}

	return r.FindById(ctx, bookEntity.Id)
}

func (r *BookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&BookModel{}, "id = ?", id).Error
}

func (r *BookRepository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (bool, error) {
	// Guarded write: only flips when the flag currently has the opposite
	// value, so a racing transition shows up as zero affected rows.
	result := dbFrom(ctx, r.db).Model(&BookModel{}).
		Where("id = ? AND available = ?", id, !available).
		Update("available", available)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *BookRepository) CountByOwner(ctx context.Context, ownerId uuid.UUID) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&BookModel{}).Where("user_id = ?", ownerId).Count(&count).Error
	return count, err
}

func bookModelFromEntity(book *entities.Book) BookModel {
	return BookModel{
		Id:            book.Id,
		CreatedAt:     book.CreatedAt,
		UpdatedAt:     book.UpdatedAt,
		Title:         book.Title,
		Author:        book.Author,
		ISBN:          book.ISBN,
		PublishedYear: book.PublishedYear,
		Description:   book.Description,
		CoverImage:    book.CoverImage,
		Available:     book.Available,
		UserId:        book.OwnerId,
	}
}

func bookEntityFromModel(bookModel *BookModel) *entities.Book {
	return &entities.Book{
		Id:            bookModel.Id,
		CreatedAt:     bookModel.CreatedAt,
		UpdatedAt:     bookModel.UpdatedAt,
		Title:         bookModel.Title,
		Author:        bookModel.Author,
		ISBN:          bookModel.ISBN,
		PublishedYear: bookModel.PublishedYear,
		Description:   bookModel.Description,
		CoverImage:    bookModel.CoverImage,
		Available:     bookModel.Available,
		OwnerId:       bookModel.UserId,
	}
}

func bookEntitiesFromModels(bookModels []BookModel) []entities.Book {
	books := make([]entities.Book, 0, len(bookModels))
	for i := range bookModels {
		books = append(books, *bookEntityFromModel(&bookModels[i]))
	}
	return books
}
