package service

import (
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/Dhruv6019/BrivaMart/internal/models"
	"github.com/Dhruv6019/BrivaMart/internal/utils"
)

// In-memory gateway fakes. All of them return sql.ErrNoRows for unknown ids,
// matching the sqlx repositories.

type fakeUsers struct {
	byID map[string]*models.UserProfile
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[string]*models.UserProfile)}
}

func (f *fakeUsers) Create(u *models.UserProfile) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return utils.ErrEmailTaken
		}
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(id string) (*models.UserProfile, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(email string) (*models.UserProfile, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUsers) GetRole(id string) (models.Role, error) {
	u, ok := f.byID[id]
	if !ok {
		return "", sql.ErrNoRows
	}
	return u.Role, nil
}

func (f *fakeUsers) UpdateProfile(id string, update *models.ProfileUpdate, encryptedPhone *string) (*models.UserProfile, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		u.LastName = *update.LastName
	}
	if update.Phone != nil {
		u.Phone = update.Phone
		u.EncryptedPhone = encryptedPhone
	}
	if update.AvatarURL != nil {
		u.AvatarURL = update.AvatarURL
	}
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) UpdatePassword(id, passwordHash string) error {
	u, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUsers) SetVerified(id string, email, phone bool) error {
	u, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.EmailVerified = u.EmailVerified || email
	u.PhoneVerified = u.PhoneVerified || phone
	return nil
}

func (f *fakeUsers) TouchLastLogin(id string, at time.Time) error {
	u, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.LastLogin = &at
	return nil
}

func (f *fakeUsers) Delete(id string) error {
	if _, ok := f.byID[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

type fakeOTPs struct {
	byID map[string]*models.OTPVerification
}

func newFakeOTPs() *fakeOTPs {
	return &fakeOTPs{byID: make(map[string]*models.OTPVerification)}
}

func (f *fakeOTPs) Create(v *models.OTPVerification) error {
	v.CreatedAt = time.Now()
	cp := *v
	f.byID[v.ID] = &cp
	return nil
}

func (f *fakeOTPs) GetByID(id string) (*models.OTPVerification, error) {
	v, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *v
	return &cp, nil
}

func (f *fakeOTPs) IncrementAttempts(id string) error {
	v, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	v.Attempts++
	return nil
}

func (f *fakeOTPs) MarkConsumed(id string, at time.Time) error {
	v, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	v.ConsumedAt = &at
	return nil
}

type fakeSessions struct {
	byID map[string]*models.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{byID: make(map[string]*models.Session)}
}

func (f *fakeSessions) Create(s *models.Session) error {
	s.CreatedAt = time.Now()
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *fakeSessions) GetByID(id string) (*models.Session, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessions) ListByUser(userID string) ([]models.Session, error) {
	var out []models.Session
	for _, s := range f.byID {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeSessions) Touch(id string, at time.Time) error {
	s, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	s.LastActivity = at
	return nil
}

func (f *fakeSessions) Delete(id, userID string) error {
	s, ok := f.byID[id]
	if !ok || s.UserID != userID {
		return sql.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeSessions) DeleteByUser(userID string) error {
	for id, s := range f.byID {
		if s.UserID == userID {
			delete(f.byID, id)
		}
	}
	return nil
}

type fakeAudits struct {
	entries []models.AuditLog
}

func (f *fakeAudits) Append(entry *models.AuditLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAudits) actions() []string {
	out := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.Action)
	}
	return out
}

type fakeProducts struct {
	byID map[string]*models.Product
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{byID: make(map[string]*models.Product)}
}

func (f *fakeProducts) GetAll(filter *models.ProductFilter) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.byID {
		if filter != nil {
			if filter.Category != "" && p.Category != filter.Category {
				continue
			}
			if filter.Search != "" {
				needle := strings.ToLower(filter.Search)
				if !strings.Contains(strings.ToLower(p.Name), needle) &&
					!strings.Contains(strings.ToLower(p.Description), needle) {
					continue
				}
			}
			if filter.PriceMin != nil && p.Price < *filter.PriceMin {
				continue
			}
			if filter.PriceMax != nil && p.Price > *filter.PriceMax {
				continue
			}
			if filter.InStock != nil && p.InStock != *filter.InStock {
				continue
			}
			if filter.Featured != nil && p.Featured != *filter.Featured {
				continue
			}
			if filter.IsNew != nil && p.IsNew != *filter.IsNew {
				continue
			}
			if filter.OnSale != nil && p.OnSale != *filter.OnSale {
				continue
			}
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeProducts) GetByID(id string) (*models.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) Create(p *models.Product) error {
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProducts) Update(p *models.Product) error {
	if _, ok := f.byID[p.ID]; !ok {
		return sql.ErrNoRows
	}
	p.UpdatedAt = time.Now()
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProducts) Delete(id string) error {
	if _, ok := f.byID[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

type fakeOrders struct {
	byID map[string]*models.Order
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{byID: make(map[string]*models.Order)}
}

func (f *fakeOrders) Create(o *models.Order) error {
	cp := *o
	f.byID[o.ID] = &cp
	return nil
}

func (f *fakeOrders) GetByID(id, userID string) (*models.Order, error) {
	o, ok := f.byID[id]
	if !ok || o.UserID != userID {
		return nil, sql.ErrNoRows
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrders) ListByUser(userID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.byID {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
