package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/casazul/real-estate-api/internal/core/domain"
	"github.com/casazul/real-estate-api/internal/core/ports"
)

func listingInput() ports.CreatePropertyInput {
	return ports.CreatePropertyInput{
		Title:           "House for sale",
		Description:     "A good house",
		Price:           1000,
		LocationID:      "62735070d47b87fb917de79b",
		AnnouncerID:     "6274554605ebef471497257e",
		AnnounceType:    domain.AnnounceSale,
		NumberBedrooms:  3,
		NumberBathrooms: 2,
		Images:          []string{"https://example.com/front.jpg"},
	}
}

func TestPropertyService_Create_Defaults(t *testing.T) {
	svc := NewPropertyService(newStubPropertyRepo(), zerolog.Nop())

	property, err := svc.Create(context.Background(), listingInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !property.PetAllowed {
		t.Fatalf("petAllowed must default to true")
	}
	if property.HasGarage {
		t.Fatalf("hasGarage must default to false")
	}
}

func TestPropertyService_Create_Validation(t *testing.T) {
	svc := NewPropertyService(newStubPropertyRepo(), zerolog.Nop())

	input := listingInput()
	input.Title = ""
	input.Price = 50
	input.NumberBedrooms = 0
	input.Images = nil

	_, err := svc.Create(context.Background(), input)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Messages) != 4 {
		t.Fatalf("expected four messages, got %v", ve.Messages)
	}
}

func TestPropertyService_Create_TooLongTitle(t *testing.T) {
	svc := NewPropertyService(newStubPropertyRepo(), zerolog.Nop())

	input := listingInput()
	input.Title = strings.Repeat("a", 101)

	var ve *domain.ValidationError
	if _, err := svc.Create(context.Background(), input); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestPropertyService_List_LocationPostFilter(t *testing.T) {
	repo := newStubPropertyRepo()
	repo.listResult = []*domain.Property{
		{ID: "1", Title: "a", Location: &domain.Location{State: "São Paulo", City: "Campinas"}},
		{ID: "2", Title: "b", Location: &domain.Location{State: "Minas Gerais", City: "Belo Horizonte"}},
		{ID: "3", Title: "c", Location: nil},
	}
	svc := NewPropertyService(repo, zerolog.Nop())

	properties, err := svc.List(context.Background(), ports.PropertyFilter{City: "campinas"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(properties) != 1 || properties[0].ID != "1" {
		t.Fatalf("unexpected result: %+v", properties)
	}

	// Without a location filter every row of the page is returned,
	// including the one whose reference dangles.
	properties, err = svc.List(context.Background(), ports.PropertyFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(properties) != 3 {
		t.Fatalf("expected full page, got %d", len(properties))
	}
}

func TestPropertyService_List_StateFilter(t *testing.T) {
	repo := newStubPropertyRepo()
	repo.listResult = []*domain.Property{
		{ID: "1", Location: &domain.Location{State: "São Paulo", City: "Santos"}},
		{ID: "2", Location: &domain.Location{State: "Bahia", City: "Salvador"}},
	}
	svc := NewPropertyService(repo, zerolog.Nop())

	properties, err := svc.List(context.Background(), ports.PropertyFilter{State: "bahia"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(properties) != 1 || properties[0].ID != "2" {
		t.Fatalf("unexpected result: %+v", properties)
	}
}

func TestPropertyService_Update_Validation(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewPropertyService(repo, zerolog.Nop())

	property, err := svc.Create(context.Background(), listingInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	badPrice := int64(50)
	var ve *domain.ValidationError
	if _, err := svc.Update(context.Background(), property.ID, ports.PropertyUpdate{Price: &badPrice}); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	goodPrice := int64(300000)
	updated, err := svc.Update(context.Background(), property.ID, ports.PropertyUpdate{Price: &goodPrice})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Price != 300000 {
		t.Fatalf("unexpected price: %d", updated.Price)
	}
}

func TestPropertyService_Delete_NotFound(t *testing.T) {
	svc := NewPropertyService(newStubPropertyRepo(), zerolog.Nop())

	if _, err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}
