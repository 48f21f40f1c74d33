package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/farmlink/farm-marketplace/internal/config"
	"github.com/farmlink/farm-marketplace/internal/handler"
	"github.com/farmlink/farm-marketplace/internal/model"
	"github.com/farmlink/farm-marketplace/internal/repository"
	"github.com/farmlink/farm-marketplace/internal/router"
)

// In-memory store fakes mirroring the repository contracts, so the
// handlers can be exercised through real routes without a database.

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeProductStore struct {
	products []model.Product
	inUse    map[string]bool // product ids referenced by order items
	seq      int
}

func (f *fakeProductStore) List(_ context.Context, q repository.ProductQuery) ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range f.products {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.Search != "" {
			term := strings.ToLower(q.Search)
			desc := ""
			if p.Description != nil {
				desc = strings.ToLower(*p.Description)
			}
			if !strings.Contains(strings.ToLower(p.Name), term) && !strings.Contains(desc, term) {
				continue
			}
		}
		out = append(out, p)
	}
	switch q.Sort {
	case "price-low":
		sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case "price-high":
		sort.Slice(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return out, nil
}

func (f *fakeProductStore) Featured(_ context.Context, limit int) ([]model.Product, error) {
	if len(f.products) < limit {
		limit = len(f.products)
	}
	return append([]model.Product{}, f.products[:limit]...), nil
}

func (f *fakeProductStore) GetByID(_ context.Context, id string) (model.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, repository.ErrNotFound
}

func (f *fakeProductStore) Create(_ context.Context, p *model.Product) error {
	f.seq++
	p.ID = fmt.Sprintf("prod-%d", f.seq)
	p.CreatedAt, p.UpdatedAt = testNow, testNow
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeProductStore) Update(_ context.Context, p *model.Product) error {
	p.UpdatedAt = testNow.Add(time.Minute)
	for i := range f.products {
		if f.products[i].ID == p.ID {
			f.products[i] = *p
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeProductStore) Delete(_ context.Context, id string) error {
	if f.inUse[id] {
		return repository.ErrRowInUse
	}
	for i := range f.products {
		if f.products[i].ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeUserStore struct {
	users []model.User
	seq   int
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repository.ErrEmailExists
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("user-%d", f.seq)
	u.CreatedAt, u.UpdatedAt = testNow, testNow
	f.users = append(f.users, *u)
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) Update(_ context.Context, u *model.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email && existing.ID != u.ID {
			return repository.ErrEmailExists
		}
	}
	u.UpdatedAt = testNow.Add(time.Minute)
	for i := range f.users {
		if f.users[i].ID == u.ID {
			f.users[i] = *u
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeUserStore) EmailTaken(_ context.Context, email, excludeID string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeFarmStore struct {
	farms []model.Farm
	seq   int
	// validOwners, when non-nil, emulates the owner foreign key.
	validOwners map[string]bool
}

func (f *fakeFarmStore) List(_ context.Context, ownerID string) ([]model.Farm, error) {
	out := []model.Farm{}
	for _, fm := range f.farms {
		if ownerID != "" && fm.OwnerID != ownerID {
			continue
		}
		out = append(out, fm)
	}
	return out, nil
}

func (f *fakeFarmStore) GetByID(_ context.Context, id string) (model.Farm, error) {
	for _, fm := range f.farms {
		if fm.ID == id {
			return fm, nil
		}
	}
	return model.Farm{}, repository.ErrNotFound
}

func (f *fakeFarmStore) Create(_ context.Context, fm *model.Farm) error {
	if f.validOwners != nil && !f.validOwners[fm.OwnerID] {
		return repository.ErrMissingParent
	}
	f.seq++
	fm.ID = fmt.Sprintf("farm-%d", f.seq)
	fm.CreatedAt, fm.UpdatedAt = testNow, testNow
	f.farms = append(f.farms, *fm)
	return nil
}

type fakeCropStore struct {
	crops []model.Crop
	seq   int
}

func (f *fakeCropStore) ListByFarm(_ context.Context, farmID string) ([]model.Crop, error) {
	out := []model.Crop{}
	for _, c := range f.crops {
		if c.FarmID == farmID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCropStore) Create(_ context.Context, c *model.Crop) error {
	f.seq++
	c.ID = fmt.Sprintf("crop-%d", f.seq)
	c.CreatedAt, c.UpdatedAt = testNow, testNow
	f.crops = append(f.crops, *c)
	return nil
}

type fakeSoilStore struct {
	records []model.SoilRecord
	seq     int
}

func (f *fakeSoilStore) LatestByFarm(_ context.Context, farmID string) (model.SoilRecord, error) {
	var latest *model.SoilRecord
	for i := range f.records {
		r := &f.records[i]
		if r.FarmID != farmID {
			continue
		}
		if latest == nil || r.RecordDate.After(latest.RecordDate) {
			latest = r
		}
	}
	if latest == nil {
		return model.SoilRecord{}, repository.ErrNotFound
	}
	return *latest, nil
}

func (f *fakeSoilStore) Create(_ context.Context, s *model.SoilRecord) error {
	f.seq++
	s.ID = fmt.Sprintf("soil-%d", f.seq)
	s.CreatedAt = testNow
	if s.RecordDate.IsZero() {
		s.RecordDate = time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 0, 0, 0, 0, time.UTC)
	}
	f.records = append(f.records, *s)
	return nil
}

type fakeEquipmentStore struct {
	items []model.Equipment
	seq   int
}

func (f *fakeEquipmentStore) ListByFarm(_ context.Context, farmID string) ([]model.Equipment, error) {
	out := []model.Equipment{}
	for _, e := range f.items {
		if e.FarmID == farmID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEquipmentStore) Create(_ context.Context, e *model.Equipment) error {
	f.seq++
	e.ID = fmt.Sprintf("equip-%d", f.seq)
	e.CreatedAt, e.UpdatedAt = testNow, testNow
	f.items = append(f.items, *e)
	return nil
}

type fakeOrderStore struct {
	orders []model.Order
}

func (f *fakeOrderStore) ListByUser(_ context.Context, userID string) ([]model.Order, error) {
	out := []model.Order{}
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// testStores bundles one fake of each kind for an app instance.
type testStores struct {
	products *fakeProductStore
	users    *fakeUserStore
	farms    *fakeFarmStore
	crops    *fakeCropStore
	soil     *fakeSoilStore
	equip    *fakeEquipmentStore
	orders   *fakeOrderStore
}

func newStores() *testStores {
	return &testStores{
		products: &fakeProductStore{inUse: map[string]bool{}},
		users:    &fakeUserStore{},
		farms:    &fakeFarmStore{},
		crops:    &fakeCropStore{},
		soil:     &fakeSoilStore{},
		equip:    &fakeEquipmentStore{},
		orders:   &fakeOrderStore{},
	}
}

// newApp wires the fakes through the real router so tests exercise the
// exact route surface.
func newApp(s *testStores) *echo.Echo {
	e := echo.New()
	cfg := config.Config{BcryptCost: bcrypt.MinCost}
	router.RegisterRoutes(e,
		handler.NewProductHandler(s.products),
		handler.NewFarmHandler(s.farms, s.crops, s.soil, s.equip),
		handler.NewUserHandler(cfg, s.users, s.orders),
	)
	return e
}

// do performs a request against the app and returns the recorder.
func do(t *testing.T, e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, want, rec.Body.String())
	}
}
