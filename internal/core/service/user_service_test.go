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

func seedUser(t *testing.T, users *stubUserRepo) *domain.User {
	t.Helper()
	auth := NewAuthService(users, zerolog.Nop())
	user, err := auth.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestUserService_Create_WithRole(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, newStubPropertyRepo(), zerolog.Nop())

	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name:     "announcer_bob",
		Email:    "bob@example.com",
		Password: "pass",
		Role:     domain.RoleAnnouncer,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Role != domain.RoleAnnouncer {
		t.Fatalf("expected announcer role, got %s", user.Role)
	}
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), newStubPropertyRepo(), zerolog.Nop())

	var ve *domain.ValidationError
	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name:     "announcer_bob",
		Email:    "bob@example.com",
		Password: "pass",
		Role:     domain.Role("superuser"),
	})
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUserService_UpdatePassword_Flow(t *testing.T) {
	users := newStubUserRepo()
	user := seedUser(t, users)
	svc := NewUserService(users, newStubPropertyRepo(), zerolog.Nop())
	auth := NewAuthService(users, zerolog.Nop())

	// Wrong current password is rejected.
	err := svc.UpdatePassword(context.Background(), user.ID, "wrong", "newpass")
	if !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}

	if err := svc.UpdatePassword(context.Background(), user.ID, "s3cret", "newpass"); err != nil {
		t.Fatalf("update password: %v", err)
	}

	// The old password no longer works; the new one does.
	if _, err := auth.Login(context.Background(), user.Email, "s3cret"); !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("old password should be rejected, got %v", err)
	}
	if _, err := auth.Login(context.Background(), user.Email, "newpass"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestUserService_UpdateName_Validation(t *testing.T) {
	users := newStubUserRepo()
	user := seedUser(t, users)
	svc := NewUserService(users, newStubPropertyRepo(), zerolog.Nop())

	var ve *domain.ValidationError
	if _, err := svc.UpdateName(context.Background(), user.ID, ""); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for empty name, got %v", err)
	}
	if _, err := svc.UpdateName(context.Background(), user.ID, "ab"); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for short name, got %v", err)
	}

	updated, err := svc.UpdateName(context.Background(), user.ID, "alice_renamed")
	if err != nil {
		t.Fatalf("update name: %v", err)
	}
	if updated.Name != "alice_renamed" {
		t.Fatalf("unexpected name: %s", updated.Name)
	}
}

func TestUserService_FavoriteRoundTrip(t *testing.T) {
	users := newStubUserRepo()
	properties := newStubPropertyRepo()
	user := seedUser(t, users)
	svc := NewUserService(users, properties, zerolog.Nop())

	property, err := properties.Create(context.Background(), &domain.Property{Title: "House for sale"})
	if err != nil {
		t.Fatalf("seed property: %v", err)
	}

	before, _ := users.FindByID(context.Background(), user.ID)

	updated, err := svc.AddFavorite(context.Background(), user.ID, property.ID)
	if err != nil {
		t.Fatalf("add favorite: %v", err)
	}
	if len(updated.FavoriteIDs) != 1 || updated.FavoriteIDs[0] != property.ID {
		t.Fatalf("unexpected favorites: %v", updated.FavoriteIDs)
	}

	// Adding twice keeps set semantics.
	updated, err = svc.AddFavorite(context.Background(), user.ID, property.ID)
	if err != nil {
		t.Fatalf("re-add favorite: %v", err)
	}
	if len(updated.FavoriteIDs) != 1 {
		t.Fatalf("favorites must behave as a set, got %v", updated.FavoriteIDs)
	}

	updated, err = svc.RemoveFavorite(context.Background(), user.ID, property.ID)
	if err != nil {
		t.Fatalf("remove favorite: %v", err)
	}
	if !reflect.DeepEqual(updated.FavoriteIDs, before.FavoriteIDs) {
		t.Fatalf("favorites not restored: %v vs %v", updated.FavoriteIDs, before.FavoriteIDs)
	}
}

func TestUserService_AddFavorite_UnknownProperty(t *testing.T) {
	users := newStubUserRepo()
	user := seedUser(t, users)
	svc := NewUserService(users, newStubPropertyRepo(), zerolog.Nop())

	var ve *domain.ValidationError
	if _, err := svc.AddFavorite(context.Background(), user.ID, "missing"); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUserService_Favorites_Populated(t *testing.T) {
	users := newStubUserRepo()
	properties := newStubPropertyRepo()
	user := seedUser(t, users)
	svc := NewUserService(users, properties, zerolog.Nop())

	property, _ := properties.Create(context.Background(), &domain.Property{Title: "Apartment"})
	if _, err := svc.AddFavorite(context.Background(), user.ID, property.ID); err != nil {
		t.Fatalf("add favorite: %v", err)
	}

	favorites, err := svc.Favorites(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("favorites: %v", err)
	}
	if len(favorites) != 1 || favorites[0].Title != "Apartment" {
		t.Fatalf("unexpected favorites: %+v", favorites)
	}
}
