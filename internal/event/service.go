package event

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/codaisseur/eventup-backend/internal/auditlog"
	"github.com/codaisseur/eventup-backend/internal/auth"
	"github.com/codaisseur/eventup-backend/internal/category"
)

// Service wraps the business rules around events: validation, ownership on
// update, category attachment and the audit trail.
type Service struct {
	Repo       *Repository
	Categories *category.Repository
	AuditSvc   auditlog.Service
}

func NewService(r *Repository, categories *category.Repository, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:       r,
		Categories: categories,
		AuditSvc:   auditSvc,
	}
}

// ===========================
// 📄 List Events
func (s *Service) ListEvents(filter ListFilter) ([]Event, error) {
	return s.Repo.List(filter)
}

// ===========================
// 🔍 Get Event (global collection, public)
func (s *Service) GetEventByID(id uint) (*Event, error) {
	e, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	return e, err
}

// ===========================
// 👥 Guests through registrations
func (s *Service) GetGuests(id uint) ([]auth.User, error) {
	if _, err := s.GetEventByID(id); err != nil {
		return nil, err
	}
	return s.Repo.Guests(id)
}

// ===========================
// 🎯 Create Event (owner is always the acting user)
func (s *Service) CreateEvent(req *CreateEventRequest, userID uint, ip string) (*Event, error) {
	e := &Event{
		Name:           req.Name,
		Description:    req.Description,
		Location:       req.Location,
		IncludesFood:   req.IncludesFood,
		IncludesDrinks: req.IncludesDrinks,
		Price:          req.Price,
		Capacity:       req.Capacity,
		Active:         true,
		UserID:         userID,
	}
	if req.Active != nil {
		e.Active = *req.Active
	}

	verrs := ValidationErrors{}
	if req.StartsAt != "" {
		t, err := ParseTimestamp(req.StartsAt)
		if err != nil {
			verrs["starts_at"] = append(verrs["starts_at"], "is not a valid timestamp")
		} else {
			e.StartsAt = t
		}
	}
	if req.EndsAt != "" {
		t, err := ParseTimestamp(req.EndsAt)
		if err != nil {
			verrs["ends_at"] = append(verrs["ends_at"], "is not a valid timestamp")
		} else {
			e.EndsAt = t
		}
	}
	for field, messages := range e.Validate() {
		verrs[field] = append(verrs[field], messages...)
	}
	if len(verrs) > 0 {
		s.audit(&userID, nil, "EVENT_CREATED", map[string]interface{}{
			"name":   req.Name,
			"errors": verrs,
		}, ip, "failure")
		return nil, verrs
	}

	if len(req.CategoryIDs) > 0 {
		categories, err := s.Categories.FindByIDs(req.CategoryIDs)
		if err != nil {
			return nil, err
		}
		e.Categories = categories
	}

	if err := s.Repo.Create(e); err != nil {
		s.audit(&userID, nil, "EVENT_CREATED", map[string]interface{}{
			"name":  req.Name,
			"error": err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.audit(&userID, &e.ID, "EVENT_CREATED", map[string]interface{}{
		"name":     e.Name,
		"location": e.Location,
		"price":    e.Price,
	}, ip, "success")
	return e, nil
}

// ===========================
// 🛠 Update Event (looked up within the acting user's own events only)
func (s *Service) UpdateEvent(id uint, req *UpdateEventRequest, userID uint, ip string) (*Event, error) {
	e, err := s.Repo.FindOwnedByID(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.audit(&userID, &id, "EVENT_UPDATED", map[string]interface{}{
			"error": "not found in user's events",
		}, ip, "failure")
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.IncludesFood != nil {
		e.IncludesFood = *req.IncludesFood
	}
	if req.IncludesDrinks != nil {
		e.IncludesDrinks = *req.IncludesDrinks
	}
	if req.Price != nil {
		e.Price = *req.Price
	}
	if req.Capacity != nil {
		e.Capacity = *req.Capacity
	}
	if req.Active != nil {
		e.Active = *req.Active
	}

	verrs := ValidationErrors{}
	if req.StartsAt != nil {
		t, err := ParseTimestamp(*req.StartsAt)
		if err != nil {
			verrs["starts_at"] = append(verrs["starts_at"], "is not a valid timestamp")
		} else {
			e.StartsAt = t
		}
	}
	if req.EndsAt != nil {
		t, err := ParseTimestamp(*req.EndsAt)
		if err != nil {
			verrs["ends_at"] = append(verrs["ends_at"], "is not a valid timestamp")
		} else {
			e.EndsAt = t
		}
	}
	for field, messages := range e.Validate() {
		verrs[field] = append(verrs[field], messages...)
	}
	if len(verrs) > 0 {
		s.audit(&userID, &e.ID, "EVENT_UPDATED", map[string]interface{}{
			"errors": verrs,
		}, ip, "failure")
		return nil, verrs
	}

	if err := s.Repo.Save(e); err != nil {
		return nil, err
	}

	if req.CategoryIDs != nil {
		categories, err := s.Categories.FindByIDs(*req.CategoryIDs)
		if err != nil {
			return nil, err
		}
		if err := s.Repo.ReplaceCategories(e, categories); err != nil {
			return nil, err
		}
		e.Categories = categories
	}

	s.audit(&userID, &e.ID, "EVENT_UPDATED", map[string]interface{}{
		"name": e.Name,
	}, ip, "success")
	return e, nil
}

// ===========================
// ❌ Delete Event (public, cascades photos and registrations)
//
// userID is nil when the caller is unauthenticated; the audit entry records
// that too.
func (s *Service) DeleteEvent(id uint, userID *uint, ip string) error {
	e, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEventNotFound
	}
	if err != nil {
		return err
	}

	registrations, _ := s.Repo.CountRegistrations(e.ID)

	if err := s.Repo.Delete(e); err != nil {
		s.audit(userID, &e.ID, "EVENT_DELETED", map[string]interface{}{
			"name":  e.Name,
			"error": err.Error(),
		}, ip, "failure")
		return err
	}

	s.audit(userID, &e.ID, "EVENT_DELETED", map[string]interface{}{
		"name":                  e.Name,
		"registrations_removed": registrations,
	}, ip, "success")
	return nil
}

func (s *Service) audit(userID *uint, eventID *uint, action string, details map[string]interface{}, ip, status string) {
	if s.AuditSvc == nil {
		return
	}
	_ = s.AuditSvc.LogAction(context.Background(), userID, eventID, action, details, ip, status)
}
