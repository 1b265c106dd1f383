package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/movemate/logistics-api/internal/core/domain"
	"github.com/movemate/logistics-api/internal/core/ports"
)

const collectionShipments = "shipments"

type ShipmentRepository struct {
	col *mongo.Collection
}

func NewShipmentRepository(db *mongo.Database) *ShipmentRepository {
	return &ShipmentRepository{col: db.Collection(collectionShipments)}
}

// Create inserts a new shipment document.
func (r *ShipmentRepository) Create(ctx context.Context, s *domain.Shipment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if s.ID == "" {
		s.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col.InsertOne(ctx, s)
	return err
}

// FindByTrackingID retrieves a shipment by its public tracking id.
func (r *ShipmentRepository) FindByTrackingID(ctx context.Context, trackingID string) (*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Shipment
	err := r.col.FindOne(ctx, bson.M{"tracking_id": trackingID}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns shipments matching the equality filter, newest-updated first.
func (r *ShipmentRepository) List(ctx context.Context, filter ports.ShipmentListFilter) ([]*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var shipments []*domain.Shipment
	if err := cursor.All(ctx, &shipments); err != nil {
		return nil, err
	}
	return shipments, nil
}

// ListAll returns every shipment ordered by creation time descending.
func (r *ShipmentRepository) ListAll(ctx context.Context) ([]*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var shipments []*domain.Shipment
	if err := cursor.All(ctx, &shipments); err != nil {
		return nil, err
	}
	return shipments, nil
}

// Update replaces the mutable fields of the shipment row keyed by tracking id.
func (r *ShipmentRepository) Update(ctx context.Context, s *domain.Shipment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"sender_name":         s.SenderName,
		"sender_phone":        s.SenderPhone,
		"receiver_name":       s.ReceiverName,
		"receiver_phone":      s.ReceiverPhone,
		"pickup_location":     s.PickupLocation,
		"delivery_location":   s.DeliveryLocation,
		"current_location":    s.CurrentLocation,
		"package_description": s.PackageDescription,
		"weight":              s.WeightKg,
		"category":            s.Category,
		"status":              s.Status,
		"estimated_delivery":  s.EstimatedDelivery,
		"updated_at":          s.UpdatedAt,
		"timeline":            s.Timeline,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"tracking_id": s.TrackingID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrShipmentNotFound
	}
	return nil
}

// Delete removes a shipment by tracking id.
func (r *ShipmentRepository) Delete(ctx context.Context, trackingID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"tracking_id": trackingID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrShipmentNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the shipments collection.
func (r *ShipmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tracking_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "updated_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
