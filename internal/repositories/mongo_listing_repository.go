package repositories

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"kasiBack/internal/models"
)

const defaultUsersCollection = "users"

// MongoListingRepository reads listings from the collections written by the
// listing CRUD services. It never writes listing documents.
type MongoListingRepository struct {
	DB              *mongo.Database
	UsersCollection string
}

// NewMongoClient connects and pings within timeout.
func NewMongoClient(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func (r *MongoListingRepository) Find(ctx context.Context, filter models.ListingFilter, opts models.FindOptions) ([]models.Listing, error) {
	d, err := models.Descriptor(filter.Type)
	if err != nil {
		return nil, err
	}

	pipeline := buildMongoPipeline(d, filter, opts, r.usersCollection())
	cur, err := r.DB.Collection(d.Collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", d.Collection, err)
	}
	defer cur.Close(ctx)

	switch d.Type {
	case models.ListingTypeRentals:
		return decodeAll[models.Rental](ctx, cur)
	case models.ListingTypeJobs:
		return decodeAll[models.Job](ctx, cur)
	case models.ListingTypeSkills:
		return decodeAll[models.Skill](ctx, cur)
	case models.ListingTypeBusinesses:
		return decodeAll[models.Business](ctx, cur)
	}
	return nil, fmt.Errorf("%w: %s", models.ErrInvalidSearchType, d.Type)
}

func (r *MongoListingRepository) Count(ctx context.Context, filter models.ListingFilter) (int64, error) {
	d, err := models.Descriptor(filter.Type)
	if err != nil {
		return 0, err
	}
	n, err := r.DB.Collection(d.Collection).CountDocuments(ctx, buildMongoFilter(d, filter))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", d.Collection, err)
	}
	return n, nil
}

func (r *MongoListingRepository) Ping(ctx context.Context) error {
	if r.DB == nil {
		return models.ErrStoreUnavailable
	}
	if err := r.DB.Client().Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}

// EnsureIndexes creates the text and status indexes the search queries rely
// on. Creating an index that already exists is a no-op in MongoDB. A
// collection allows a single text index, so an existing one is kept under
// whatever name it was created with.
func (r *MongoListingRepository) EnsureIndexes(ctx context.Context) error {
	for _, t := range models.AllListingTypes {
		d, err := models.Descriptor(t)
		if err != nil {
			return err
		}
		view := r.DB.Collection(d.Collection).Indexes()

		cur, err := view.List(ctx)
		if err != nil {
			return fmt.Errorf("list indexes on %s: %w", d.Collection, err)
		}
		var existing []bson.M
		if err := cur.All(ctx, &existing); err != nil {
			return fmt.Errorf("list indexes on %s: %w", d.Collection, err)
		}

		if _, err := view.CreateMany(ctx, indexModels(d, !hasTextIndex(existing))); err != nil {
			return fmt.Errorf("create indexes on %s: %w", d.Collection, err)
		}
	}
	return nil
}

func (r *MongoListingRepository) usersCollection() string {
	if r.UsersCollection == "" {
		return defaultUsersCollection
	}
	return r.UsersCollection
}

func indexModels(d *models.ListingDescriptor, withText bool) []mongo.IndexModel {
	var idx []mongo.IndexModel
	if withText {
		textKeys := bson.D{}
		for _, field := range d.TextFields {
			textKeys = append(textKeys, bson.E{Key: field, Value: "text"})
		}
		idx = append(idx, mongo.IndexModel{Keys: textKeys, Options: options.Index().SetName(d.Collection + "_text")})
	}
	idx = append(idx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "isPremium", Value: -1}, {Key: "createdAt", Value: -1}},
	})
	if d.PriceMin != nil {
		idx = append(idx, mongo.IndexModel{Keys: bson.D{{Key: d.PriceMin.Path, Value: 1}, {Key: "status", Value: 1}}})
	}
	if d.Category != nil {
		idx = append(idx, mongo.IndexModel{Keys: bson.D{{Key: d.Category.Path, Value: 1}, {Key: "status", Value: 1}}})
	}
	return idx
}

// hasTextIndex reports whether any listIndexes spec is a text index. The
// server stores text indexes under the _fts key with a weights document.
func hasTextIndex(specs []bson.M) bool {
	for _, spec := range specs {
		if _, ok := spec["weights"]; ok {
			return true
		}
		switch key := spec["key"].(type) {
		case bson.M:
			for _, v := range key {
				if v == "text" {
					return true
				}
			}
		case bson.D:
			for _, e := range key {
				if e.Value == "text" {
					return true
				}
			}
		}
	}
	return false
}

// buildMongoFilter translates a ListingFilter into a query document. The
// status gate is always present.
func buildMongoFilter(d *models.ListingDescriptor, f models.ListingFilter) bson.D {
	doc := bson.D{}

	if f.Text != "" {
		doc = append(doc, bson.E{Key: "$text", Value: bson.D{{Key: "$search", Value: f.Text}}})
	}

	if f.Location != "" && len(d.LocationFields) > 0 {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Location), Options: "i"}
		if len(d.LocationFields) == 1 {
			doc = append(doc, bson.E{Key: d.LocationFields[0].Path, Value: re})
		} else {
			alternatives := bson.A{}
			for _, field := range d.LocationFields {
				alternatives = append(alternatives, bson.D{{Key: field.Path, Value: re}})
			}
			doc = append(doc, bson.E{Key: "$or", Value: alternatives})
		}
	}

	// Rentals and skills bound the same path on both sides, so conditions
	// are grouped by path to keep a single key per field.
	var (
		paths  []string
		ranges = map[string]bson.D{}
	)
	addRange := func(path, op string, v float64) {
		if _, ok := ranges[path]; !ok {
			paths = append(paths, path)
		}
		ranges[path] = append(ranges[path], bson.E{Key: op, Value: v})
	}
	if f.MinPrice != nil && d.PriceMin != nil {
		addRange(d.PriceMin.Path, "$gte", *f.MinPrice)
	}
	if f.MaxPrice != nil && d.PriceMax != nil {
		addRange(d.PriceMax.Path, "$lte", *f.MaxPrice)
	}
	for _, p := range paths {
		doc = append(doc, bson.E{Key: p, Value: ranges[p]})
	}

	if f.Category != "" && d.Category != nil {
		doc = append(doc, bson.E{Key: d.Category.Path, Value: f.Category})
	}

	status := f.Status
	if status == "" {
		status = d.Status
	}
	doc = append(doc, bson.E{Key: "status", Value: status})
	return doc
}

func buildMongoSort(d *models.ListingDescriptor) bson.D {
	sort := bson.D{}
	for _, key := range d.Sort {
		dir := 1
		if key.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: key.Field.Path, Value: dir})
	}
	return sort
}

func buildMongoPipeline(d *models.ListingDescriptor, f models.ListingFilter, opts models.FindOptions, users string) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: buildMongoFilter(d, f)}},
	}
	if !opts.Suggest {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: buildMongoSort(d)}})
	}
	if opts.Skip > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: opts.Skip}})
	}
	if opts.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: opts.Limit}})
	}

	switch {
	case opts.Suggest:
		projection := bson.D{}
		for _, field := range d.SuggestionFields {
			projection = append(projection, bson.E{Key: field, Value: 1})
		}
		pipeline = append(pipeline, bson.D{{Key: "$project", Value: projection}})
	case opts.Populate:
		pipeline = append(pipeline,
			bson.D{{Key: "$lookup", Value: bson.D{
				{Key: "from", Value: users},
				{Key: "let", Value: bson.D{{Key: "ownerId", Value: "$" + d.OwnerField}}},
				{Key: "pipeline", Value: bson.A{
					bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{{Key: "$eq", Value: bson.A{"$_id", "$$ownerId"}}}}}}},
					bson.D{{Key: "$project", Value: bson.D{{Key: "name", Value: 1}, {Key: "email", Value: 1}, {Key: "phone", Value: 1}}}},
				}},
				{Key: "as", Value: d.OwnerField},
			}}},
			bson.D{{Key: "$unwind", Value: bson.D{
				{Key: "path", Value: "$" + d.OwnerField},
				{Key: "preserveNullAndEmptyArrays", Value: true},
			}}},
		)
	default:
		// The raw owner field is an ObjectID and cannot decode into *Owner.
		pipeline = append(pipeline, bson.D{{Key: "$project", Value: bson.D{{Key: d.OwnerField, Value: 0}}}})
	}
	return pipeline
}

func decodeAll[T models.Listing](ctx context.Context, cur *mongo.Cursor) ([]models.Listing, error) {
	var docs []T
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	out := make([]models.Listing, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc)
	}
	return out, nil
}
