package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Book struct {
	Id            uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Title         string
	Author        string
	ISBN          string
	PublishedYear int
	Description   *string
	CoverImage    *string
	Available     bool
	OwnerId       uuid.UUID
}

func NewBook(title, author, isbn string, publishedYear int, description, coverImage *string, ownerId uuid.UUID) *Book {
	return &Book{
		Id:            uuid.New(),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
		Title:         title,
		Author:        author,
		ISBN:          isbn,
		PublishedYear: publishedYear,
		Description:   description,
		CoverImage:    coverImage,
		Available:     true,
		OwnerId:       ownerId,
	}
}

func (b *Book) validate() error {
	if b.Title == "" {
		return errors.New("title must not be empty")
	}
	if b.Author == "" {
		return errors.New("author must not be empty")
	}
	if b.ISBN == "" {
		return errors.New("isbn must not be empty")
	}
	if b.PublishedYear == 0 {
		return errors.New("published year must not be empty")
	}
	if b.OwnerId == uuid.Nil {
		return errors.New("owner id must not be empty")
	}
	return nil
}

// UpdateDetails replaces the editable fields. Ownership and availability are
// never touched here.
func (b *Book) UpdateDetails(title, author, isbn string, publishedYear int, description, coverImage *string) {
	b.Title = title
	b.Author = author
	b.ISBN = isbn
	b.PublishedYear = publishedYear
	b.Description = description
	b.CoverImage = coverImage
	b.UpdatedAt = time.Now()
}

// BookWithOwner is a read model for the available-books listing: the book
// plus its owner's display name.
type BookWithOwner struct {
	Book
	OwnerName string
}

type ValidatedBook struct {
	*Book
}

func NewValidatedBook(book *Book) (*ValidatedBook, error) {
	if err := book.validate(); err != nil {
		return nil, err
	}

	return &ValidatedBook{Book: book}, nil
}

func (vb *ValidatedBook) GetBook() *Book {
	return vb.Book
}
