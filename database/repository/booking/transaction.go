package bookingRepo

import (
	"context"
	"fmt"

	"gigbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateWithConflictCheck inserts the booking inside a Mongo transaction,
// after verifying no non-cancelled booking overlaps it for the same
// provider and date. The check sees committed state only; callers must
// serialize concurrent creators per (provider, date) — see SlotLocker.
//
// Fixed-width "HH:MM" strings order the same lexicographically as
// numerically, so the half-open overlap test (start < other.end &&
// end > other.start) works directly on the stored strings.
func (r *MongoBookingRepo) CreateWithConflictCheck(ctx context.Context, booking *models.Booking) error {
	providerID, _ := booking.ProviderRef()

	overlapFilter := providerDateFilter(providerID, booking.Date)
	overlapFilter["status"] = bson.M{"$ne": string(models.StatusCancelled)}
	overlapFilter["startTime"] = bson.M{"$lt": booking.EndTime}
	overlapFilter["endTime"] = bson.M{"$gt": booking.StartTime}

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		count, err := r.coll.CountDocuments(sc, overlapFilter)
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}
		if count > 0 {
			return ErrOverlap
		}
		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrOverlap {
			return ErrOverlap
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}
