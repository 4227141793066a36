package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pathagar/bookshop-api/internal/core/domain"
)

const collectionCart = "cart"

// CartRepository implements ports.CartRepository against the cart collection.
type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{coll: db.Collection(collectionCart)}
}

type mongoCartItem struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Email         string             `bson:"email"`
	BookID        string             `bson:"book_id,omitempty"`
	Name          string             `bson:"name"`
	Image         string             `bson:"image,omitempty"`
	Price         float64            `bson:"price"`
	Quantity      int                `bson:"quantity"`
	Paid          bool               `bson:"paid"`
	TransactionID string             `bson:"transaction_id,omitempty"`
}

func (mc mongoCartItem) toDomain() *domain.CartItem {
	return &domain.CartItem{
		ID:            mc.ID.Hex(),
		Email:         mc.Email,
		BookID:        mc.BookID,
		Name:          mc.Name,
		Image:         mc.Image,
		Price:         mc.Price,
		Quantity:      mc.Quantity,
		Paid:          mc.Paid,
		TransactionID: mc.TransactionID,
	}
}

// objectID converts the string id; an unparseable id behaves like a missing
// document rather than a server error.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrCartItemNotFound
	}
	return oid, nil
}

func (r *CartRepository) Insert(ctx context.Context, item *domain.CartItem) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCartItem{
		Email:    item.Email,
		BookID:   item.BookID,
		Name:     item.Name,
		Image:    item.Image,
		Price:    item.Price,
		Quantity: item.Quantity,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert cart item: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert cart item: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *CartRepository) FindByID(ctx context.Context, id string) (*domain.CartItem, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCartItem
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("find cart item: %w", err)
	}
	return mc.toDomain(), nil
}

// List returns items, scoped to an owner email when one is given.
func (r *CartRepository) List(ctx context.Context, email string) ([]*domain.CartItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.CartItem
	for cursor.Next(ctx) {
		var mc mongoCartItem
		if err := cursor.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode cart item: %w", err)
		}
		items = append(items, mc.toDomain())
	}
	return items, cursor.Err()
}

// SetQuantity upserts the quantity field, last write wins.
func (r *CartRepository) SetQuantity(ctx context.Context, id string, quantity int) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"quantity": quantity}}
	_, err = r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("set quantity: %w", err)
	}
	return nil
}

// MarkPaid flips the paid flag and attaches the transaction id. The filter
// includes paid=false so the first capture wins inside a single atomic
// document update; zero matches means the order is already paid or gone.
func (r *CartRepository) MarkPaid(ctx context.Context, id, transactionID string) (bool, error) {
	oid, err := objectID(id)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"paid": true, "transaction_id": transactionID}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid, "paid": false}, update)
	if err != nil {
		return false, fmt.Errorf("mark paid: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

// EnsureIndexes creates the owner-email index on the cart collection.
func (r *CartRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
	})
	return err
}
