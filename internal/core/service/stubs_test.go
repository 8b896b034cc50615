package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/casazul/real-estate-api/internal/core/domain"
	"github.com/casazul/real-estate-api/internal/core/ports"
)

// In-memory repository stubs shared by the service tests.

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	clone.FavoriteIDs = append([]string(nil), u.FavoriteIDs...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Name == user.Name {
			return nil, &domain.DuplicateKeyError{Field: "name"}
		}
		if existing.Email == user.Email {
			return nil, &domain.DuplicateKeyError{Field: "email"}
		}
	}
	r.nextID++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("user-%d", r.nextID)
	clone.FavoriteIDs = []string{}
	r.users[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, cloneUser(u))
	}
	return users, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, update ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.PasswordHash != nil {
		u.PasswordHash = *update.PasswordHash
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) AddFavorite(_ context.Context, userID, propertyID string) (*domain.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	for _, id := range u.FavoriteIDs {
		if id == propertyID {
			return cloneUser(u), nil
		}
	}
	u.FavoriteIDs = append(u.FavoriteIDs, propertyID)
	return cloneUser(u), nil
}

func (r *stubUserRepo) RemoveFavorite(_ context.Context, userID, propertyID string) (*domain.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	kept := u.FavoriteIDs[:0]
	for _, id := range u.FavoriteIDs {
		if id != propertyID {
			kept = append(kept, id)
		}
	}
	u.FavoriteIDs = kept
	return cloneUser(u), nil
}

type stubPropertyRepo struct {
	properties map[string]*domain.Property
	listResult []*domain.Property
	nextID     int
}

func newStubPropertyRepo() *stubPropertyRepo {
	return &stubPropertyRepo{properties: make(map[string]*domain.Property)}
}

func (r *stubPropertyRepo) Create(_ context.Context, p *domain.Property) (*domain.Property, error) {
	r.nextID++
	clone := *p
	clone.ID = fmt.Sprintf("property-%d", r.nextID)
	r.properties[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *stubPropertyRepo) FindByID(_ context.Context, id string) (*domain.Property, error) {
	p, ok := r.properties[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPropertyRepo) List(_ context.Context, _ ports.PropertyFilter) ([]*domain.Property, error) {
	return r.listResult, nil
}

func (r *stubPropertyRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Property, error) {
	out := make([]*domain.Property, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.properties[id]; ok {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubPropertyRepo) FindByAnnouncer(_ context.Context, announcerID string) ([]*domain.Property, error) {
	out := make([]*domain.Property, 0)
	for _, p := range r.properties {
		if p.AnnouncerID == announcerID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubPropertyRepo) Update(_ context.Context, id string, update ports.PropertyUpdate) (*domain.Property, error) {
	p, ok := r.properties[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.Title != nil {
		p.Title = *update.Title
	}
	clone := *p
	return &clone, nil
}

func (r *stubPropertyRepo) Delete(_ context.Context, id string) (*domain.Property, error) {
	p, ok := r.properties[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	delete(r.properties, id)
	return p, nil
}

type stubLocationRepo struct {
	locations []*domain.Location
	nextID    int
}

func (r *stubLocationRepo) Create(_ context.Context, l *domain.Location) (*domain.Location, error) {
	for _, existing := range r.locations {
		if existing.City == l.City {
			return nil, &domain.DuplicateKeyError{Field: "city"}
		}
	}
	r.nextID++
	clone := *l
	clone.ID = fmt.Sprintf("location-%d", r.nextID)
	r.locations = append(r.locations, &clone)
	result := clone
	return &result, nil
}

func (r *stubLocationRepo) FindByID(_ context.Context, id string) (*domain.Location, error) {
	for _, l := range r.locations {
		if l.ID == id {
			clone := *l
			return &clone, nil
		}
	}
	return nil, domain.ErrLocationNotFound
}

func (r *stubLocationRepo) List(_ context.Context, filter ports.LocationFilter) ([]*domain.Location, error) {
	out := make([]*domain.Location, 0, len(r.locations))
	for _, l := range r.locations {
		if filter.State != "" && !strings.Contains(strings.ToLower(l.State), strings.ToLower(filter.State)) {
			continue
		}
		if filter.City != "" && !strings.Contains(strings.ToLower(l.City), strings.ToLower(filter.City)) {
			continue
		}
		clone := *l
		out = append(out, &clone)
	}
	if len(filter.Sort) > 0 {
		switch filter.Sort[0] {
		case "state":
			sort.Slice(out, func(i, j int) bool { return out[i].State < out[j].State })
		case "city":
			sort.Slice(out, func(i, j int) bool { return out[i].City < out[j].City })
		}
	}
	return out, nil
}

func (r *stubLocationRepo) Update(_ context.Context, id string, update ports.LocationUpdate) (*domain.Location, error) {
	for _, l := range r.locations {
		if l.ID == id {
			if update.State != nil {
				l.State = *update.State
			}
			if update.City != nil {
				l.City = *update.City
			}
			clone := *l
			return &clone, nil
		}
	}
	return nil, domain.ErrLocationNotFound
}

func (r *stubLocationRepo) Delete(_ context.Context, id string) (*domain.Location, error) {
	for i, l := range r.locations {
		if l.ID == id {
			r.locations = append(r.locations[:i], r.locations[i+1:]...)
			return l, nil
		}
	}
	return nil, domain.ErrLocationNotFound
}
