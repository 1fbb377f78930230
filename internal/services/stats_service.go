package services

import "boutique/internal/repositories"

// Totals is the dashboard aggregate: one counter per collection.
type Totals struct {
	TotalProducts int64 `json:"totalProducts"`
	TotalUsers    int64 `json:"totalUsers"`
	TotalContacts int64 `json:"totalContacts"`
}

// StatsService aggregates counts for the admin dashboard.
type StatsService struct {
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
	contactRepo repositories.ContactRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(productRepo repositories.ProductRepository, userRepo repositories.UserRepository, contactRepo repositories.ContactRepository) *StatsService {
	return &StatsService{
		productRepo: productRepo,
		userRepo:    userRepo,
		contactRepo: contactRepo,
	}
}

// Totals collects the three dashboard counters. The reads are not a
// snapshot; each count is taken independently.
func (s *StatsService) Totals() (*Totals, error) {
	products, err := s.productRepo.Count()
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	contacts, err := s.contactRepo.Count()
	if err != nil {
		return nil, err
	}
	return &Totals{
		TotalProducts: products,
		TotalUsers:    users,
		TotalContacts: contacts,
	}, nil
}
