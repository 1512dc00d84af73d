package ratingRepo

import (
	"context"
	"fmt"
	"math"
	"time"

	"gigbook/database"
	"gigbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRatingRepo implements RatingRepository using MongoDB.
type MongoRatingRepo struct {
	coll         *mongo.Collection
	providerColl *mongo.Collection
}

// NewMongoRatingRepo creates a new instance of RatingRepository using MongoDB.
func NewMongoRatingRepo() RatingRepository {
	repo := &MongoRatingRepo{
		coll:         database.Collection("ratings"),
		providerColl: database.Collection("providers"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoRatingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}}},
		// Backstop for the one-rating-per-(provider,user) rule; the write
		// path checks first so callers get a clean duplicate error.
		{
			Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoRatingRepo) GetByID(ctx context.Context, id string) (*models.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rating models.Rating
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&rating); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch rating with id %s: %w", id, err)
	}
	return &rating, nil
}

func (r *MongoRatingRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"providerId": providerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var ratings []models.Rating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, fmt.Errorf("failed to decode ratings: %w", err)
	}
	return ratings, nil
}

// AddWithAggregate inserts the rating and refreshes the provider aggregate
// inside one Mongo transaction.
func (r *MongoRatingRepo) AddWithAggregate(ctx context.Context, rating *models.Rating) (Aggregate, error) {
	var agg Aggregate

	txnFn := func(sc mongo.SessionContext) error {
		dup := r.coll.FindOne(sc, bson.M{
			"providerId": rating.ProviderID,
			"userId":     rating.UserID,
		})
		if dup.Err() == nil {
			return ErrDuplicate
		}
		if dup.Err() != mongo.ErrNoDocuments {
			return fmt.Errorf("duplicate check failed: %w", dup.Err())
		}

		if _, err := r.coll.InsertOne(sc, rating); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("insert rating failed: %w", err)
		}

		var err error
		agg, err = r.refreshAggregate(sc, rating.ProviderID)
		return err
	}

	if err := r.runInTransaction(ctx, txnFn); err != nil {
		return Aggregate{}, err
	}
	return agg, nil
}

// RemoveWithAggregate deletes the rating and refreshes the provider
// aggregate inside one Mongo transaction.
func (r *MongoRatingRepo) RemoveWithAggregate(ctx context.Context, providerID, ratingID string) (Aggregate, error) {
	var agg Aggregate

	txnFn := func(sc mongo.SessionContext) error {
		res, err := r.coll.DeleteOne(sc, bson.M{"id": ratingID, "providerId": providerID})
		if err != nil {
			return fmt.Errorf("delete rating failed: %w", err)
		}
		if res.DeletedCount == 0 {
			return ErrNotFound
		}

		agg, err = r.refreshAggregate(sc, providerID)
		return err
	}

	if err := r.runInTransaction(ctx, txnFn); err != nil {
		return Aggregate{}, err
	}
	return agg, nil
}

// refreshAggregate recomputes the mean and count over the provider's
// ratings and writes them onto the provider document.
func (r *MongoRatingRepo) refreshAggregate(sc mongo.SessionContext, providerID string) (Aggregate, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"providerId": providerID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.coll.Aggregate(sc, pipeline)
	if err != nil {
		return Aggregate{}, fmt.Errorf("aggregate ratings failed: %w", err)
	}
	defer cursor.Close(sc)

	var agg Aggregate
	if cursor.Next(sc) {
		var row struct {
			Avg   float64 `bson:"avg"`
			Count int     `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return Aggregate{}, fmt.Errorf("decode rating aggregate failed: %w", err)
		}
		agg.AverageRating = math.Round(row.Avg*10) / 10
		agg.ReviewCount = row.Count
	}

	update := bson.M{"$set": bson.M{
		"averageRating": agg.AverageRating,
		"reviewCount":   agg.ReviewCount,
		"updatedAt":     time.Now(),
	}}
	res, err := r.providerColl.UpdateOne(sc, bson.M{"id": providerID}, update)
	if err != nil {
		return Aggregate{}, fmt.Errorf("update provider aggregate failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return Aggregate{}, fmt.Errorf("provider %s not found for aggregate update", providerID)
	}
	return agg, nil
}

func (r *MongoRatingRepo) runInTransaction(ctx context.Context, txnFn func(mongo.SessionContext) error) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}
