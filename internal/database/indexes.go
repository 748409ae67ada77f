package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("products").Indexes()

	categoryIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "category", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("category_createdAt"),
	}

	_, err := indexes.CreateOne(ctx, categoryIndex)
	if err != nil {
		log.Error().Err(err).Msg("EnsureProductIndexes: category index error")
		return err
	}
	log.Info().Msg("EnsureProductIndexes: category_createdAt index ready")
	return nil
}

func EnsureOptionIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("options").Indexes()

	typeIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "type", Value: 1},
			{Key: "sortOrder", Value: 1},
		},
		Options: options.Index().SetName("type_sortOrder"),
	}

	_, err := indexes.CreateOne(ctx, typeIndex)
	if err != nil {
		log.Error().Err(err).Msg("EnsureOptionIndexes: type index error")
		return err
	}
	log.Info().Msg("EnsureOptionIndexes: type_sortOrder index ready")
	return nil
}

func EnsureCustomerIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("customers").Indexes()

	phoneIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "phone", Value: 1}},
		Options: options.Index().
			SetName("phone_unique").
			SetUnique(true),
	}

	_, err := indexes.CreateOne(ctx, phoneIndex)
	if err != nil {
		log.Error().Err(err).Msg("EnsureCustomerIndexes: phone index error")
		return err
	}
	log.Info().Msg("EnsureCustomerIndexes: phone_unique index ready")
	return nil
}

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "customerId", Value: 1}},
			Options: options.Index().SetName("customerId_index"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("createdAt_desc"),
		},
	}

	_, err := indexes.CreateMany(ctx, models)
	if err != nil {
		log.Error().Err(err).Msg("EnsureOrderIndexes: order index error")
		return err
	}
	log.Info().Msg("EnsureOrderIndexes: order indexes ready")
	return nil
}

func EnsureRefreshTokenIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("refresh_tokens").Indexes()

	hashIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "tokenHash", Value: 1}},
		Options: options.Index().
			SetName("tokenHash_unique").
			SetUnique(true),
	}

	_, err := indexes.CreateOne(ctx, hashIndex)
	if err != nil {
		log.Error().Err(err).Msg("EnsureRefreshTokenIndexes: tokenHash index error")
		return err
	}
	log.Info().Msg("EnsureRefreshTokenIndexes: tokenHash_unique index ready")
	return nil
}
