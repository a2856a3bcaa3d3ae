package mongodb

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sbdiallo/stockboard/internal/domain/models"
)

// ErrItemNotFound indicates the requested item does not exist.
var ErrItemNotFound = errors.New("item not found")

// ErrEmailTaken indicates a registration attempt with an already-used email.
var ErrEmailTaken = errors.New("email already exists")

// ItemQuery captures the list filters. Zero values mean "no filter".
type ItemQuery struct {
	Search   string
	Category models.Category
	Skip     int64
	Limit    int64
}

// ItemRepository defines the persistence operations for inventory items.
type ItemRepository interface {
	List(ctx context.Context, query ItemQuery) ([]models.Item, int64, error)
	GetByID(ctx context.Context, id string) (*models.Item, error)
	Create(ctx context.Context, draft models.ItemDraft) (string, error)
	Update(ctx context.Context, id string, draft models.ItemDraft) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*models.StatsReport, error)
	LowStock(ctx context.Context) ([]models.Item, error)
}

// UserRepository defines the persistence operations for dashboard users.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// SnapshotRepository stores periodic inventory snapshots.
type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, snapshot models.InventorySnapshot) error
}

// MongoDBRepository implements the repository interfaces for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{client: client, dbName: dbName}, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) items() *mongo.Collection {
	return r.client.Database(r.dbName).Collection("items")
}

func (r *MongoDBRepository) users() *mongo.Collection {
	return r.client.Database(r.dbName).Collection("users")
}

func (r *MongoDBRepository) snapshots() *mongo.Collection {
	return r.client.Database(r.dbName).Collection("inventory_snapshots")
}

// itemDoc is the stored shape of an item; the ObjectID is converted to its
// hex form at the model boundary.
type itemDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	ItemCode    string             `bson:"item_code"`
	Description string             `bson:"description"`
	Category    models.Category    `bson:"category"`
	Quantity    int                `bson:"quantity"`
	Price       float64            `bson:"price"`
	MinStock    int                `bson:"min_stock"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d itemDoc) toModel() models.Item {
	return models.Item{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		ItemCode:    d.ItemCode,
		Description: d.Description,
		Category:    d.Category,
		Quantity:    d.Quantity,
		Price:       d.Price,
		MinStock:    d.MinStock,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// List returns one page of items plus the total match count. Search matches
// name, description and item code case-insensitively; the category filter is
// exact. Newest items come first.
func (r *MongoDBRepository) List(ctx context.Context, query ItemQuery) ([]models.Item, int64, error) {
	filter := bson.M{}

	if query.Search != "" {
		regex := primitive.Regex{Pattern: query.Search, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"description": regex},
			bson.M{"item_code": regex},
		}
	}

	if query.Category != "" {
		filter["category"] = query.Category
	}

	total, err := r.items().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	findOptions := options.Find().
		SetSkip(query.Skip).
		SetLimit(query.Limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.items().Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("find items: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []itemDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode items: %w", err)
	}

	items := make([]models.Item, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toModel())
	}

	return items, total, nil
}

// GetByID fetches a single item.
func (r *MongoDBRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrItemNotFound
	}

	var doc itemDoc
	err = r.items().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find item %s: %w", id, err)
	}

	item := doc.toModel()
	return &item, nil
}

// Create inserts a new item with timestamps and returns its id.
func (r *MongoDBRepository) Create(ctx context.Context, draft models.ItemDraft) (string, error) {
	now := time.Now().UTC()
	doc := itemDoc{
		Name:        draft.Name,
		ItemCode:    draft.ItemCode,
		Description: draft.Description,
		Category:    draft.Category,
		Quantity:    draft.Quantity,
		Price:       draft.Price,
		MinStock:    draft.MinStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := r.items().InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert item: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return oid.Hex(), nil
}

// Update replaces the editable fields of an existing item and refreshes its
// updated_at timestamp.
func (r *MongoDBRepository) Update(ctx context.Context, id string, draft models.ItemDraft) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrItemNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":        draft.Name,
		"item_code":   draft.ItemCode,
		"description": draft.Description,
		"category":    draft.Category,
		"quantity":    draft.Quantity,
		"price":       draft.Price,
		"min_stock":   draft.MinStock,
		"updated_at":  time.Now().UTC(),
	}}

	result, err := r.items().UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update item %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Delete removes an item.
func (r *MongoDBRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrItemNotFound
	}

	result, err := r.items().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Stats computes the aggregate report: totals, low-stock count and the
// per-category breakdown sorted by descending count.
func (r *MongoDBRepository) Stats(ctx context.Context) (*models.StatsReport, error) {
	total, err := r.items().CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}

	lowStock, err := r.items().CountDocuments(ctx, bson.M{"quantity": bson.M{"$lte": models.LowStockThreshold}})
	if err != nil {
		return nil, fmt.Errorf("count low stock items: %w", err)
	}

	valuePipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":         nil,
			"total_value": bson.M{"$sum": bson.M{"$multiply": bson.A{"$quantity", "$price"}}},
		}}},
	}

	cursor, err := r.items().Aggregate(ctx, valuePipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate total value: %w", err)
	}

	var valueRows []struct {
		TotalValue float64 `bson:"total_value"`
	}
	if err := cursor.All(ctx, &valueRows); err != nil {
		return nil, fmt.Errorf("decode total value: %w", err)
	}

	var totalValue float64
	if len(valueRows) > 0 {
		totalValue = valueRows[0].TotalValue
	}

	categoriesPipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$category",
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err = r.items().Aggregate(ctx, categoriesPipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate categories: %w", err)
	}

	var categories []models.CategoryCount
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	return &models.StatsReport{
		TotalItems:    int(total),
		LowStockItems: int(lowStock),
		TotalValue:    math.Round(totalValue*100) / 100,
		Categories:    categories,
	}, nil
}

// LowStock returns every item at or below the low-stock threshold, for the
// scheduled snapshot report.
func (r *MongoDBRepository) LowStock(ctx context.Context) ([]models.Item, error) {
	cursor, err := r.items().Find(ctx, bson.M{"quantity": bson.M{"$lte": models.LowStockThreshold}})
	if err != nil {
		return nil, fmt.Errorf("find low stock items: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []itemDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode low stock items: %w", err)
	}

	items := make([]models.Item, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toModel())
	}
	return items, nil
}

type userDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
	Email    string             `bson:"email"`
	Password []byte             `bson:"password"`
	Role     string             `bson:"role"`
}

// CreateUser inserts a new user, rejecting duplicate emails.
func (r *MongoDBRepository) CreateUser(ctx context.Context, user models.User) (string, error) {
	count, err := r.users().CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return "", fmt.Errorf("check existing email: %w", err)
	}
	if count > 0 {
		return "", ErrEmailTaken
	}

	doc := userDoc{
		Username: user.Username,
		Email:    user.Email,
		Password: user.PasswordHash,
		Role:     user.Role,
	}

	result, err := r.users().InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert user: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return oid.Hex(), nil
}

// FindByEmail looks up a user; a nil user means no match.
func (r *MongoDBRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc userDoc
	err := r.users().FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return &models.User{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		Email:        doc.Email,
		PasswordHash: doc.Password,
		Role:         doc.Role,
	}, nil
}

// SaveSnapshot persists a point-in-time inventory snapshot.
func (r *MongoDBRepository) SaveSnapshot(ctx context.Context, snapshot models.InventorySnapshot) error {
	if _, err := r.snapshots().InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("insert inventory snapshot: %w", err)
	}
	return nil
}
