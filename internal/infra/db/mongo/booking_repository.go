package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "renteasy/internal/domain/booking"
	domainitem "renteasy/internal/domain/item"
	"renteasy/internal/domain/shared/dates"
)

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection("agg_booking")}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrBookingNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	b.Version = doc.Version
	return nil
}

func (r *BookingRepository) ListByItem(ctx context.Context, itemID domainitem.ItemID) ([]*domainbooking.Booking, error) {
	return r.list(ctx, bson.M{"item_id": string(itemID)})
}

func (r *BookingRepository) ListByRenter(ctx context.Context, renterID string) ([]*domainbooking.Booking, error) {
	return r.list(ctx, bson.M{"renter_id": renterID})
}

func (r *BookingRepository) list(ctx context.Context, filter bson.M) ([]*domainbooking.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]*domainbooking.Booking, 0)
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type bookingDocument struct {
	ID                  string `bson:"_id"`
	ItemID              string `bson:"item_id"`
	RenterID            string `bson:"renter_id"`
	StartDate           string `bson:"start_date"`
	EndDate             string `bson:"end_date"`
	RentalDays          int    `bson:"rental_days"`
	TotalPriceCents     int64  `bson:"total_price_cents"`
	Status              string `bson:"status"`
	DeliveryAddress     string `bson:"delivery_address"`
	SpecialInstructions string `bson:"special_instructions"`
	CreatedAt           int64  `bson:"created_at"`
	UpdatedAt           int64  `bson:"updated_at"`
	Version             int64  `bson:"version"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	return bookingDocument{
		ID:                  string(b.ID),
		ItemID:              string(b.ItemID),
		RenterID:            b.RenterID,
		StartDate:           string(b.Start),
		EndDate:             string(b.End),
		RentalDays:          b.RentalDays,
		TotalPriceCents:     b.TotalPriceCents,
		Status:              string(b.Status),
		DeliveryAddress:     b.DeliveryAddress,
		SpecialInstructions: b.SpecialInstructions,
		CreatedAt:           b.CreatedAt.UnixMilli(),
		UpdatedAt:           b.UpdatedAt.UnixMilli(),
		Version:             b.Version,
	}
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	status, ok := domainbooking.ParseStatus(d.Status)
	if !ok {
		status = domainbooking.StatusPending
	}
	return &domainbooking.Booking{
		ID:                  domainbooking.BookingID(d.ID),
		ItemID:              domainitem.ItemID(d.ItemID),
		RenterID:            d.RenterID,
		Start:               dates.Day(d.StartDate),
		End:                 dates.Day(d.EndDate),
		RentalDays:          d.RentalDays,
		TotalPriceCents:     d.TotalPriceCents,
		Status:              status,
		DeliveryAddress:     d.DeliveryAddress,
		SpecialInstructions: d.SpecialInstructions,
		CreatedAt:           timestampToTime(d.CreatedAt),
		UpdatedAt:           timestampToTime(d.UpdatedAt),
		Version:             d.Version,
	}
}
