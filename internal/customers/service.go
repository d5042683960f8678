// Package customers manages customer profiles and their order statistics.
package customers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"greengrass/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNameRequired = errors.New("Customer name is required")
	ErrNotFound     = errors.New("customer not found")
)

type CustomerWithStats struct {
	models.Customer
	OrdersCount int     `json:"orders_count"`
	TotalSpent  float64 `json:"total_spent"`
}

type NewCustomer struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type orderStat struct {
	UserID      string
	OrdersCount int
	TotalSpent  float64
}

// List returns every profile, newest first, with its order count and
// total spend. A non-empty search keeps customers whose name or city
// contains it (case-insensitive) or whose phone contains it verbatim.
func (s *Service) List(ctx context.Context, search string) ([]CustomerWithStats, error) {
	var profiles []models.Customer
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch customers: %w", err)
	}

	var stats []orderStat
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Select("user_id, COUNT(*) AS orders_count, COALESCE(SUM(total), 0) AS total_spent").
		Where("user_id IS NOT NULL").
		Group("user_id").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order stats: %w", err)
	}

	byUser := make(map[string]orderStat, len(stats))
	for _, st := range stats {
		byUser[st.UserID] = st
	}

	out := make([]CustomerWithStats, 0, len(profiles))
	for _, p := range profiles {
		if !matches(p, search) {
			continue
		}
		st := byUser[p.UserID]
		out = append(out, CustomerWithStats{Customer: p, OrdersCount: st.OrdersCount, TotalSpent: st.TotalSpent})
	}
	return out, nil
}

func matches(c models.Customer, search string) bool {
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	return strings.Contains(strings.ToLower(deref(c.FullName)), q) ||
		strings.Contains(deref(c.Phone), search) ||
		strings.Contains(strings.ToLower(deref(c.City)), q)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Customer, error) {
	var c models.Customer
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}
	return &c, nil
}

// Add creates a profile with a freshly generated user id.
func (s *Service) Add(ctx context.Context, in NewCustomer) (*models.Customer, error) {
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		return nil, ErrNameRequired
	}

	c := models.Customer{
		FullName: &name,
		Email:    nullable(strings.TrimSpace(in.Email)),
		Phone:    nullable(strings.TrimSpace(in.Phone)),
		Address:  nullable(strings.TrimSpace(in.Address)),
		City:     nullable(strings.TrimSpace(in.City)),
		Country:  nullable(strings.TrimSpace(in.Country)),
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to add customer: %w", err)
	}
	return &c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete customer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Orders lists a customer's orders, newest first.
func (s *Service) Orders(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customer orders: %w", err)
	}
	return orders, nil
}

// Import parses r and inserts every valid row, returning how many were added.
func (s *Service) Import(ctx context.Context, r io.Reader) (int, error) {
	rows, err := ParseCSV(r)
	if err != nil {
		return 0, err
	}

	if err := s.db.WithContext(ctx).CreateInBatches(&rows, 100).Error; err != nil {
		return 0, fmt.Errorf("failed to import customers: %w", err)
	}
	return len(rows), nil
}

// Export writes the filtered customer list as CSV.
func (s *Service) Export(ctx context.Context, w io.Writer, search string) error {
	list, err := s.List(ctx, search)
	if err != nil {
		return err
	}
	return WriteCSV(w, list)
}
