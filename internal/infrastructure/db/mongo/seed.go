package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/buildhub/module-catalog/internal/core/domain"
)

// SeedDemoModules inserts two example approved catalog entries when the
// modules collection is empty. Intended for development environments only.
func SeedDemoModules(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	col := db.Collection(collectionModules)

	count, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("seed modules: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	demo := []interface{}{
		&domain.Module{
			ID:          "MOD-SEED0001",
			Name:        "heroku-buildpack-python",
			Description: "Official buildpack for deploying Python applications.",
			Keywords:    []string{"python", "official"},
			Link:        "https://github.com/heroku/heroku-buildpack-python",
			AuthorID:    "system",
			Status:      domain.StatusApproved,
			CreatedAt:   now,
		},
		&domain.Module{
			ID:          "MOD-SEED0002",
			Name:        "heroku-buildpack-nginx",
			Description: "Adds NGINX for serving static files.",
			Keywords:    []string{"nginx", "static", "proxy"},
			Link:        "https://github.com/heroku/heroku-buildpack-nginx",
			AuthorID:    "system",
			Status:      domain.StatusApproved,
			CreatedAt:   now.Add(time.Second),
		},
	}

	if _, err := col.InsertMany(ctx, demo); err != nil {
		return fmt.Errorf("seed modules: %w", err)
	}
	return nil
}
