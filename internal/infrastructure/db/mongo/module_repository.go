package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/buildhub/module-catalog/internal/core/domain"
	"github.com/buildhub/module-catalog/internal/core/ports"
)

const collectionModules = "modules"

type ModuleRepository struct {
	col *mongo.Collection
}

func NewModuleRepository(db *mongo.Database) *ModuleRepository {
	return &ModuleRepository{col: db.Collection(collectionModules)}
}

// Create inserts a new module document.
func (r *ModuleRepository) Create(ctx context.Context, m *domain.Module) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrModuleExists
		}
		return fmt.Errorf("insert module: %w", err)
	}
	return nil
}

func (r *ModuleRepository) FindByID(ctx context.Context, id string) (*domain.Module, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m domain.Module
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrModuleNotFound
		}
		return nil, fmt.Errorf("find module: %w", err)
	}
	return &m, nil
}

// List returns modules matching the filter, ordered by creation time then
// id. The order is deterministic across calls with no intervening writes.
func (r *ModuleRepository) List(ctx context.Context, filter ports.ListModulesFilter) ([]*domain.Module, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer cursor.Close(ctx)

	modules := make([]*domain.Module, 0)
	for cursor.Next(ctx) {
		var m domain.Module
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode module: %w", err)
		}
		modules = append(modules, &m)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	return modules, nil
}

// SetStatus overwrites the module's status in a single atomic
// FindOneAndUpdate. Decoding the pre-image gives the replaced status from
// the same step, so concurrent writers on one id each see the exact status
// they displaced.
func (r *ModuleRepository) SetStatus(ctx context.Context, id string, status domain.ModuleStatus) (*domain.Module, domain.ModuleStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": string(status)}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var m domain.Module
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", domain.ErrModuleNotFound
		}
		return nil, "", fmt.Errorf("set module status: %w", err)
	}

	previous := m.Status
	m.Status = status
	return &m, previous, nil
}

// EnsureIndexes creates the indexes backing listing and moderation queries.
func (r *ModuleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
