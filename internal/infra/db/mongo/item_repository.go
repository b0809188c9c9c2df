package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainitem "renteasy/internal/domain/item"
	"renteasy/internal/domain/shared/dates"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type ItemRepository struct {
	col *mongo.Collection
}

func NewItemRepository(db *mongo.Database) *ItemRepository {
	return &ItemRepository{col: db.Collection("agg_item")}
}

func (r *ItemRepository) ByID(ctx context.Context, id domainitem.ItemID) (*domainitem.Item, error) {
	var doc itemDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainitem.ErrItemNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ItemRepository) Save(ctx context.Context, it *domainitem.Item) error {
	doc := newItemDocument(it)
	filter := bson.M{"_id": doc.ID, "version": it.Version}
	doc.Version = it.Version + 1
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
	it.Version = doc.Version
	return nil
}

func (r *ItemRepository) Search(ctx context.Context, params domainitem.SearchParams) (domainitem.SearchResult, error) {
	opts := params.Normalized()
	filter := searchFilter(opts)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return domainitem.SearchResult{}, err
	}

	findOpts := options.Find().
		SetSort(searchSort(opts.Sort)).
		SetSkip(int64(opts.Offset)).
		SetLimit(int64(opts.Limit))
	cursor, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return domainitem.SearchResult{}, err
	}
	defer cursor.Close(ctx)

	items := make([]*domainitem.Item, 0, opts.Limit)
	for cursor.Next(ctx) {
		var doc itemDocument
		if err := cursor.Decode(&doc); err != nil {
			return domainitem.SearchResult{}, err
		}
		items = append(items, doc.toAggregate())
	}
	if err := cursor.Err(); err != nil {
		return domainitem.SearchResult{}, err
	}
	return domainitem.SearchResult{Items: items, Total: int(total)}, nil
}

func searchFilter(opts domainitem.SearchParams) bson.M {
	filter := bson.M{}
	if opts.OnlyAvailable {
		filter["available"] = true
	}
	if opts.OnlyBoosted {
		filter["boosted"] = true
		// a zero BoostedUntil is stored as the zero-time sentinel and means
		// unbounded; anything between the sentinel and now has expired
		filter["boosted_until"] = bson.M{"$not": bson.M{
			"$gt":  time.Time{}.UnixMilli(),
			"$lte": opts.Now.UnixMilli(),
		}}
	}
	if opts.Owner != "" {
		filter["owner"] = string(opts.Owner)
	}
	if opts.Category != "" {
		filter["category"] = caseInsensitiveEq(opts.Category)
	}
	if opts.Subcategory != "" {
		filter["subcategory"] = caseInsensitiveEq(opts.Subcategory)
	}
	if opts.Location != "" {
		filter["location"] = primitive.Regex{Pattern: regexEscape(opts.Location), Options: "i"}
	}
	price := bson.M{}
	if opts.PriceMinCents > 0 {
		price["$gte"] = opts.PriceMinCents
	}
	if opts.PriceMaxCents > 0 {
		price["$lte"] = opts.PriceMaxCents
	}
	if len(price) > 0 {
		filter["price_per_day_cents"] = price
	}
	if opts.Query != "" {
		pattern := primitive.Regex{Pattern: regexEscape(opts.Query), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		}
	}
	return filter
}

func caseInsensitiveEq(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexEscape(value) + "$", Options: "i"}
}

func regexEscape(value string) string {
	const specials = `\.+*?()|[]{}^$`
	out := make([]byte, 0, len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		for j := 0; j < len(specials); j++ {
			if c == specials[j] {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, c)
	}
	return string(out)
}

func searchSort(sort domainitem.CatalogSort) bson.D {
	switch sort {
	case domainitem.SortByPriceAsc:
		return bson.D{{Key: "price_per_day_cents", Value: 1}, {Key: "created_at", Value: -1}}
	case domainitem.SortByPriceDesc:
		return bson.D{{Key: "price_per_day_cents", Value: -1}, {Key: "created_at", Value: -1}}
	case domainitem.SortByPopular:
		return bson.D{{Key: "views", Value: -1}, {Key: "created_at", Value: -1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}, {Key: "price_per_day_cents", Value: 1}}
	}
}

type itemDocument struct {
	ID               string   `bson:"_id"`
	Owner            string   `bson:"owner"`
	Name             string   `bson:"name"`
	Description      string   `bson:"description"`
	Category         string   `bson:"category"`
	Subcategory      string   `bson:"subcategory"`
	PricePerDayCents int64    `bson:"price_per_day_cents"`
	ImageURL         string   `bson:"image_url"`
	AdditionalImages []string `bson:"additional_images"`
	Available        bool     `bson:"available"`
	BlockedDates     []string `bson:"blocked_dates"`
	OwnerPhone       string   `bson:"owner_phone"`
	Location         string   `bson:"location"`
	MinRentalDays    int      `bson:"min_rental_days"`
	MaxRentalDays    int      `bson:"max_rental_days"`
	Views            int64    `bson:"views"`
	Boosted          bool     `bson:"boosted"`
	BoostedUntil     int64    `bson:"boosted_until"`
	CreatedAt        int64    `bson:"created_at"`
	UpdatedAt        int64    `bson:"updated_at"`
	Version          int64    `bson:"version"`
}

func newItemDocument(it *domainitem.Item) itemDocument {
	return itemDocument{
		ID:               string(it.ID),
		Owner:            string(it.Owner),
		Name:             it.Name,
		Description:      it.Description,
		Category:         it.Category,
		Subcategory:      it.Subcategory,
		PricePerDayCents: it.PricePerDayCents,
		ImageURL:         it.ImageURL,
		AdditionalImages: it.AdditionalImages,
		Available:        it.Available,
		BlockedDates:     it.BlockedDateStrings(),
		OwnerPhone:       it.OwnerPhone,
		Location:         it.Location,
		MinRentalDays:    it.MinRentalDays,
		MaxRentalDays:    it.MaxRentalDays,
		Views:            it.Views,
		Boosted:          it.Boosted,
		BoostedUntil:     it.BoostedUntil.UnixMilli(),
		CreatedAt:        it.CreatedAt.UnixMilli(),
		UpdatedAt:        it.UpdatedAt.UnixMilli(),
		Version:          it.Version,
	}
}

func (d itemDocument) toAggregate() *domainitem.Item {
	blocked := make([]dates.Day, 0, len(d.BlockedDates))
	for _, raw := range d.BlockedDates {
		day, err := dates.Parse(raw)
		if err != nil {
			continue
		}
		blocked = append(blocked, day)
	}
	return &domainitem.Item{
		ID:               domainitem.ItemID(d.ID),
		Owner:            domainitem.OwnerID(d.Owner),
		Name:             d.Name,
		Description:      d.Description,
		Category:         d.Category,
		Subcategory:      d.Subcategory,
		PricePerDayCents: d.PricePerDayCents,
		ImageURL:         d.ImageURL,
		AdditionalImages: d.AdditionalImages,
		Available:        d.Available,
		BlockedDates:     blocked,
		OwnerPhone:       d.OwnerPhone,
		Location:         d.Location,
		MinRentalDays:    d.MinRentalDays,
		MaxRentalDays:    d.MaxRentalDays,
		Views:            d.Views,
		Boosted:          d.Boosted,
		BoostedUntil:     timestampToTime(d.BoostedUntil),
		CreatedAt:        timestampToTime(d.CreatedAt),
		UpdatedAt:        timestampToTime(d.UpdatedAt),
		Version:          d.Version,
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
