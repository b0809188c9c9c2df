package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainoffer "renteasy/internal/domain/offer"
)

type OfferRepository struct {
	col *mongo.Collection
}

func NewOfferRepository(db *mongo.Database) *OfferRepository {
	return &OfferRepository{col: db.Collection("agg_offer")}
}

func (r *OfferRepository) ByID(ctx context.Context, id domainoffer.OfferID) (*domainoffer.Offer, error) {
	var doc offerDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainoffer.ErrOfferNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *OfferRepository) Save(ctx context.Context, o *domainoffer.Offer) error {
	doc := newOfferDocument(o)
	filter := bson.M{"_id": doc.ID, "version": o.Version}
	doc.Version = o.Version + 1
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
	o.Version = doc.Version
	return nil
}

func (r *OfferRepository) List(ctx context.Context) ([]*domainoffer.Offer, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]*domainoffer.Offer, 0)
	for cursor.Next(ctx) {
		var doc offerDocument
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

// offerDocument mirrors the legacy collection shape: validity bounds and the
// creation timestamp are stored as raw strings, so loads normalize instead of
// failing on the historical junk records.
type offerDocument struct {
	ID              string   `bson:"_id"`
	Title           string   `bson:"title"`
	Description     string   `bson:"description"`
	DiscountPercent int      `bson:"discount_percentage"`
	ValidFrom       string   `bson:"valid_from"`
	ValidTo         string   `bson:"valid_to"`
	ApplicableItems []string `bson:"applicable_items"`
	Status          string   `bson:"status"`
	CreatedAt       string   `bson:"created_at"`
	UpdatedAt       int64    `bson:"updated_at"`
	Version         int64    `bson:"version"`
}

func newOfferDocument(o *domainoffer.Offer) offerDocument {
	return offerDocument{
		ID:              string(o.ID),
		Title:           o.Title,
		Description:     o.Description,
		DiscountPercent: o.DiscountPercent,
		ValidFrom:       string(o.ValidFrom),
		ValidTo:         string(o.ValidTo),
		ApplicableItems: o.ApplicableItems,
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       o.UpdatedAt.UnixMilli(),
		Version:         o.Version,
	}
}

func (d offerDocument) toAggregate() *domainoffer.Offer {
	return &domainoffer.Offer{
		ID:              domainoffer.OfferID(d.ID),
		Title:           d.Title,
		Description:     d.Description,
		DiscountPercent: d.DiscountPercent,
		ValidFrom:       domainoffer.NormalizeBound(d.ValidFrom),
		ValidTo:         domainoffer.NormalizeBound(d.ValidTo),
		ApplicableItems: d.ApplicableItems,
		Status:          domainoffer.ParseStatus(d.Status),
		CreatedAt:       domainoffer.NormalizeCreatedAt(d.CreatedAt),
		UpdatedAt:       timestampToTime(d.UpdatedAt),
		Version:         d.Version,
	}
}
