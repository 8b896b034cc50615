package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/casazul/real-estate-api/internal/core/domain"
	"github.com/casazul/real-estate-api/internal/core/ports"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildPropertyQuery_Title(t *testing.T) {
	q := buildPropertyQuery(ports.PropertyFilter{Title: "house for sale"})

	rx, ok := q["title"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected regex for title, got %T", q["title"])
	}
	if rx.Pattern != "house for sale" || rx.Options != "i" {
		t.Fatalf("unexpected regex: %+v", rx)
	}
}

func TestBuildPropertyQuery_Booleans(t *testing.T) {
	q := buildPropertyQuery(ports.PropertyFilter{
		PetAllowed: boolPtr(true),
		HasGarage:  boolPtr(false),
	})

	if q["petAllowed"] != true {
		t.Fatalf("expected petAllowed=true, got %v", q["petAllowed"])
	}
	if q["hasGarage"] != false {
		t.Fatalf("expected hasGarage=false, got %v", q["hasGarage"])
	}

	q = buildPropertyQuery(ports.PropertyFilter{})
	if _, ok := q["petAllowed"]; ok {
		t.Fatalf("absent filter must not constrain petAllowed")
	}
}

func TestBuildPropertyQuery_AnnounceType(t *testing.T) {
	at := domain.AnnounceSale
	q := buildPropertyQuery(ports.PropertyFilter{AnnounceType: &at})
	if q["announceType"] != "sale" {
		t.Fatalf("expected sale, got %v", q["announceType"])
	}
}

func TestBuildNumericRanges_CompoundRange(t *testing.T) {
	ranges := buildNumericRanges([]ports.NumericFilter{
		{Field: "price", Op: ports.OpGreater, Value: 100},
		{Field: "price", Op: ports.OpLess, Value: 500},
		{Field: "numberBedrooms", Op: ports.OpGreaterEqual, Value: 2},
	})

	price, ok := ranges["price"]
	if !ok {
		t.Fatalf("expected price range")
	}
	if price["$gt"] != int64(100) || price["$lt"] != int64(500) {
		t.Fatalf("unexpected price range: %v", price)
	}
	if ranges["numberBedrooms"]["$gte"] != int64(2) {
		t.Fatalf("unexpected bedrooms range: %v", ranges["numberBedrooms"])
	}
}

func TestBuildNumericRanges_UnknownOpDropped(t *testing.T) {
	ranges := buildNumericRanges([]ports.NumericFilter{
		{Field: "price", Op: "!=", Value: 100},
	})
	if len(ranges) != 0 {
		t.Fatalf("unknown operator must be dropped, got %v", ranges)
	}
}

func TestBuildSort(t *testing.T) {
	sort := buildSort([]string{"-price", "createdAt", "", "-"})

	want := bson.D{{Key: "price", Value: -1}, {Key: "createdAt", Value: 1}}
	if len(sort) != len(want) {
		t.Fatalf("expected %d sort keys, got %d (%v)", len(want), len(sort), sort)
	}
	for i := range want {
		if sort[i] != want[i] {
			t.Fatalf("sort[%d]: expected %v, got %v", i, want[i], sort[i])
		}
	}
}

func TestBuildSort_DuplicatesPreserved(t *testing.T) {
	sort := buildSort([]string{"price", "price"})
	if len(sort) != 2 {
		t.Fatalf("duplicates must be preserved, got %v", sort)
	}
}

func TestBuildProjection(t *testing.T) {
	projection := buildProjection([]string{"title", "price"})

	if len(projection) != 2 {
		t.Fatalf("expected 2 fields, got %v", projection)
	}
	if projection[0].Key != "title" || projection[0].Value != 1 {
		t.Fatalf("unexpected projection: %v", projection)
	}
}

func TestApplyListOptions_Pagination(t *testing.T) {
	opts := applyListOptions(options.Find(), nil, nil, 3, 6)
	if *opts.Skip != 12 || *opts.Limit != 6 {
		t.Fatalf("expected skip=12 limit=6, got skip=%d limit=%d", *opts.Skip, *opts.Limit)
	}

	opts = applyListOptions(options.Find(), nil, nil, 0, 0)
	if *opts.Skip != 0 || *opts.Limit != defaultPageSize {
		t.Fatalf("expected defaults, got skip=%d limit=%d", *opts.Skip, *opts.Limit)
	}
}

func TestDuplicateField(t *testing.T) {
	err := &stubDupError{msg: `E11000 duplicate key error collection: real_estate.users index: email_1 dup key: { email: "a@b.com" }`}
	if got := duplicateField(err); got != "email" {
		t.Fatalf("expected email, got %q", got)
	}
}

type stubDupError struct{ msg string }

func (e *stubDupError) Error() string { return e.msg }
