package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/casazul/real-estate-api/internal/core/domain"
	"github.com/casazul/real-estate-api/internal/core/ports"
)

func seedLocations(t *testing.T) *stubLocationRepo {
	t.Helper()
	repo := &stubLocationRepo{}
	for _, l := range []domain.Location{
		{State: "São Paulo", City: "Campinas"},
		{State: "Minas Gerais", City: "Belo Horizonte"},
		{State: "São Paulo", City: "Santos"},
		{State: "Minas Gerais", City: "Uberlândia"},
	} {
		if _, err := repo.Create(context.Background(), &l); err != nil {
			t.Fatalf("seed location: %v", err)
		}
	}
	return repo
}

func TestLocationService_States_Deduplicated(t *testing.T) {
	svc := NewLocationService(seedLocations(t), zerolog.Nop())

	states, err := svc.States(context.Background())
	if err != nil {
		t.Fatalf("states: %v", err)
	}
	want := []string{"Minas Gerais", "São Paulo"}
	if !reflect.DeepEqual(states, want) {
		t.Fatalf("expected %v, got %v", want, states)
	}
}

func TestLocationService_CitiesByState(t *testing.T) {
	svc := NewLocationService(seedLocations(t), zerolog.Nop())

	cities, err := svc.CitiesByState(context.Background(), "minas")
	if err != nil {
		t.Fatalf("cities: %v", err)
	}
	want := []string{"Belo Horizonte", "Uberlândia"}
	if !reflect.DeepEqual(cities, want) {
		t.Fatalf("expected %v, got %v", want, cities)
	}
}

func TestLocationService_CitiesByState_MissingState(t *testing.T) {
	svc := NewLocationService(&stubLocationRepo{}, zerolog.Nop())

	var ve *domain.ValidationError
	if _, err := svc.CitiesByState(context.Background(), ""); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestLocationService_Create_Validation(t *testing.T) {
	svc := NewLocationService(&stubLocationRepo{}, zerolog.Nop())

	var ve *domain.ValidationError
	if _, err := svc.Create(context.Background(), ports.CreateLocationInput{}); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Messages) != 2 {
		t.Fatalf("expected two messages, got %v", ve.Messages)
	}
}

func TestLocationService_Create_DuplicateCity(t *testing.T) {
	repo := seedLocations(t)
	svc := NewLocationService(repo, zerolog.Nop())

	// Same city under a different state still collides: city uniqueness is
	// global.
	_, err := svc.Create(context.Background(), ports.CreateLocationInput{State: "Bahia", City: "Santos"})

	var dup *domain.DuplicateKeyError
	if !errors.As(err, &dup) || dup.Field != "city" {
		t.Fatalf("expected city DuplicateKeyError, got %v", err)
	}
}
