package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/casazul/real-estate-api/internal/core/ports"
)

// comparisonOps maps the filter operators onto their Mongo counterparts.
var comparisonOps = map[string]string{
	ports.OpGreater:      "$gt",
	ports.OpGreaterEqual: "$gte",
	ports.OpEqual:        "$eq",
	ports.OpLess:         "$lt",
	ports.OpLessEqual:    "$lte",
}

const defaultPageSize = 6

// caseInsensitive builds a case-insensitive substring match.
func caseInsensitive(value string) primitive.Regex {
	return primitive.Regex{Pattern: value, Options: "i"}
}

// buildPropertyQuery translates the store-level part of a PropertyFilter
// into a Mongo filter document. State and city are deliberately absent: they
// live on the referenced location and are matched in memory after populate.
func buildPropertyQuery(f ports.PropertyFilter) bson.M {
	query := bson.M{}

	if f.Title != "" {
		query["title"] = caseInsensitive(f.Title)
	}
	if f.PetAllowed != nil {
		query["petAllowed"] = *f.PetAllowed
	}
	if f.HasGarage != nil {
		query["hasGarage"] = *f.HasGarage
	}
	if f.AnnounceType != nil {
		query["announceType"] = string(*f.AnnounceType)
	}

	for field, rng := range buildNumericRanges(f.Numeric) {
		query[field] = rng
	}
	return query
}

// buildNumericRanges accumulates parsed numeric filters into one compound
// range document per field, so price>100,price<500 becomes a single
// {price: {$gt: 100, $lt: 500}} condition. A repeated operator on the same
// field keeps the last value.
func buildNumericRanges(filters []ports.NumericFilter) map[string]bson.M {
	ranges := make(map[string]bson.M)
	for _, nf := range filters {
		op, ok := comparisonOps[nf.Op]
		if !ok {
			continue
		}
		if _, ok := ranges[nf.Field]; !ok {
			ranges[nf.Field] = bson.M{}
		}
		ranges[nf.Field][op] = nf.Value
	}
	return ranges
}

// buildSort converts a field list into a Mongo sort document. A leading "-"
// flips the direction, matching the query-string convention. Order and
// duplicates are preserved.
func buildSort(fields []string) bson.D {
	sort := bson.D{}
	for _, f := range fields {
		if f == "" {
			continue
		}
		dir := 1
		if f[0] == '-' {
			dir = -1
			f = f[1:]
		}
		if f == "" {
			continue
		}
		sort = append(sort, bson.E{Key: f, Value: dir})
	}
	return sort
}

// buildProjection converts a select list into an inclusion projection.
func buildProjection(fields []string) bson.D {
	projection := bson.D{}
	for _, f := range fields {
		if f == "" {
			continue
		}
		projection = append(projection, bson.E{Key: f, Value: 1})
	}
	return projection
}

// applyListOptions attaches sort, projection and skip/limit to find options.
// Page is 1-based; a non-positive page or limit falls back to the defaults.
func applyListOptions(opts *options.FindOptions, sort, sel []string, page, limit int) *options.FindOptions {
	if s := buildSort(sort); len(s) > 0 {
		opts = opts.SetSort(s)
	}
	if p := buildProjection(sel); len(p) > 0 {
		opts = opts.SetProjection(p)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	return opts.SetSkip(int64(page-1) * int64(limit)).SetLimit(int64(limit))
}
