package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pathagar/bookshop-api/internal/core/domain"
)

const (
	collectionCourses = "courses"
	collectionBooks   = "books"
)

// CatalogRepository implements ports.CatalogRepository over the read-only
// courses and books collections.
type CatalogRepository struct {
	courses *mongo.Collection
	books   *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		courses: db.Collection(collectionCourses),
		books:   db.Collection(collectionBooks),
	}
}

type mongoCourse struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Instructor  string             `bson:"instructor,omitempty"`
	Image       string             `bson:"image,omitempty"`
	Description string             `bson:"description,omitempty"`
}

type mongoBook struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Name   string             `bson:"name"`
	Author string             `bson:"author,omitempty"`
	Image  string             `bson:"image,omitempty"`
	Price  float64            `bson:"price"`
}

func (r *CatalogRepository) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.courses.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer cursor.Close(ctx)

	var courses []*domain.Course
	for cursor.Next(ctx) {
		var mc mongoCourse
		if err := cursor.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode course: %w", err)
		}
		courses = append(courses, &domain.Course{
			ID:          mc.ID.Hex(),
			Title:       mc.Title,
			Instructor:  mc.Instructor,
			Image:       mc.Image,
			Description: mc.Description,
		})
	}
	return courses, cursor.Err()
}

func (r *CatalogRepository) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.books.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer cursor.Close(ctx)

	var books []*domain.Book
	for cursor.Next(ctx) {
		var mb mongoBook
		if err := cursor.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode book: %w", err)
		}
		books = append(books, &domain.Book{
			ID:     mb.ID.Hex(),
			Name:   mb.Name,
			Author: mb.Author,
			Image:  mb.Image,
			Price:  mb.Price,
		})
	}
	return books, cursor.Err()
}
