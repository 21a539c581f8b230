package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant-ordering/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// menuItemDocument is the stored shape of a menu item.
type menuItemDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Price       float64            `bson:"price"`
	ImageURL    *string            `bson:"imageUrl,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *menuItemDocument) toModel() model.MenuItem {
	return model.MenuItem{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Price:       d.Price,
		ImageURL:    d.ImageURL,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func newDocument(in *model.MenuItemInput, now time.Time) menuItemDocument {
	return menuItemDocument{
		ID:          primitive.NewObjectID(),
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// mongoStore implements Store on a MongoDB collection.
type mongoStore struct {
	coll   *mongo.Collection
	logger zerolog.Logger
	now    func() time.Time
}

// NewMongoStore creates a Store backed by the given collection.
func NewMongoStore(coll *mongo.Collection, logger zerolog.Logger) Store {
	return &mongoStore{
		coll:   coll,
		logger: logger.With().Str("store", "menu").Logger(),
		now: func() time.Time {
			// BSON dates carry millisecond precision.
			return time.Now().UTC().Truncate(time.Millisecond)
		},
	}
}

func (s *mongoStore) List(ctx context.Context) ([]model.MenuItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query menu items")
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}

	return s.decodeAll(ctx, cursor)
}

func (s *mongoStore) FindByID(ctx context.Context, id string) (*model.MenuItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc menuItemDocument
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.Debug().Str("menu_item_id", id).Msg("menu item not found")
			return nil, nil
		}
		s.logger.Error().Err(err).Str("menu_item_id", id).Msg("failed to query menu item")
		return nil, fmt.Errorf("failed to query menu item: %w", err)
	}

	item := doc.toModel()
	return &item, nil
}

func (s *mongoStore) FindByIDs(ctx context.Context, ids []string) ([]model.MenuItem, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []model.MenuItem{}, nil
	}

	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		s.logger.Error().Err(err).Int("count", len(oids)).Msg("failed to query menu items by id")
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}

	return s.decodeAll(ctx, cursor)
}

func (s *mongoStore) Create(ctx context.Context, in *model.MenuItemInput) (*model.MenuItem, error) {
	doc := newDocument(in, s.now())

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		s.logger.Error().Err(err).Str("name", in.Name).Msg("failed to insert menu item")
		return nil, fmt.Errorf("failed to insert menu item: %w", err)
	}

	item := doc.toModel()
	s.logger.Debug().Str("menu_item_id", item.ID).Msg("menu item created")
	return &item, nil
}

func (s *mongoStore) Update(ctx context.Context, id string, req *model.UpdateMenuItemRequest) (*model.MenuItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	set := bson.M{"updatedAt": s.now()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.ImageURL != nil {
		set["imageUrl"] = *req.ImageURL
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc menuItemDocument
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		s.logger.Error().Err(err).Str("menu_item_id", id).Msg("failed to update menu item")
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	item := doc.toModel()
	return &item, nil
}

func (s *mongoStore) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		s.logger.Error().Err(err).Str("menu_item_id", id).Msg("failed to delete menu item")
		return false, fmt.Errorf("failed to delete menu item: %w", err)
	}

	return res.DeletedCount > 0, nil
}

func (s *mongoStore) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}
	return n, nil
}

func (s *mongoStore) InsertMany(ctx context.Context, items []model.MenuItemInput) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	now := s.now()
	docs := make([]interface{}, 0, len(items))
	for i := range items {
		docs = append(docs, newDocument(&items[i], now))
	}

	res, err := s.coll.InsertMany(ctx, docs)
	if err != nil {
		s.logger.Error().Err(err).Int("count", len(items)).Msg("failed to insert menu items")
		return 0, fmt.Errorf("failed to insert menu items: %w", err)
	}

	return len(res.InsertedIDs), nil
}

func (s *mongoStore) decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]model.MenuItem, error) {
	defer cursor.Close(ctx)

	items := []model.MenuItem{}
	for cursor.Next(ctx) {
		var doc menuItemDocument
		if err := cursor.Decode(&doc); err != nil {
			s.logger.Error().Err(err).Msg("failed to decode menu item")
			return nil, fmt.Errorf("failed to decode menu item: %w", err)
		}
		items = append(items, doc.toModel())
	}

	if err := cursor.Err(); err != nil {
		s.logger.Error().Err(err).Msg("error iterating menu items")
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	return items, nil
}
