package service

import (
	"context"
	"errors"
	"fmt"

	"resourcehub-backend/internal/availability"
	"resourcehub-backend/internal/domain"
	"resourcehub-backend/internal/repository"
)

// ErrInvalidSchedule means the submitted schedule was neither a known
// template key nor parseable weekly schedule JSON.
var ErrInvalidSchedule = errors.New("schedule must be a known template or valid weekly schedule JSON")

type resourceService struct {
	resourceRepo repository.ResourceRepository
	userRepo     repository.UserRepository
}

func NewResourceService(resourceRepo repository.ResourceRepository, userRepo repository.UserRepository) ResourceService {
	return &resourceService{resourceRepo: resourceRepo, userRepo: userRepo}
}

func (s *resourceService) Get(ctx context.Context, id int32) (*domain.Resource, error) {
	return s.resourceRepo.GetByID(ctx, id)
}

func (s *resourceService) ListPublished(ctx context.Context) ([]domain.Resource, error) {
	return s.resourceRepo.ListPublished(ctx)
}

func (s *resourceService) ListMine(ctx context.Context, ownerID int32) ([]domain.Resource, error) {
	return s.resourceRepo.ListByOwner(ctx, ownerID)
}

func (s *resourceService) Create(ctx context.Context, ownerID int32, resource *domain.Resource) error {
	resource.OwnerID = ownerID
	if resource.Status == "" {
		resource.Status = domain.ResourceStatusDraft
	}
	resource.ApplyRuleDefaults()
	if resource.AvailabilitySchedule != "" {
		if availability.ParseSchedule(resource.AvailabilitySchedule) == nil {
			return ErrInvalidSchedule
		}
	}
	return s.resourceRepo.Create(ctx, resource)
}

// loadOwned fetches the resource and verifies the actor may manage it.
func (s *resourceService) loadOwned(ctx context.Context, actorID, resourceID int32) (*domain.Resource, error) {
	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if resource.OwnerID != actorID {
		actor, err := s.userRepo.GetByID(ctx, actorID)
		if err != nil || !actor.IsAdmin() {
			return nil, ErrUnauthorized
		}
	}
	return resource, nil
}

func (s *resourceService) UpdateSchedule(ctx context.Context, actorID, resourceID int32, templateKey, scheduleJSON string) (*domain.Resource, error) {
	resource, err := s.loadOwned(ctx, actorID, resourceID)
	if err != nil {
		return nil, err
	}

	switch {
	case templateKey != "":
		tpl := availability.TemplateSchedule(templateKey)
		if tpl == "" {
			return nil, ErrInvalidSchedule
		}
		resource.AvailabilitySchedule = tpl
	case scheduleJSON != "":
		if availability.ParseSchedule(scheduleJSON) == nil {
			return nil, ErrInvalidSchedule
		}
		resource.AvailabilitySchedule = scheduleJSON
	default:
		// Clearing the schedule removes the constraint entirely.
		resource.AvailabilitySchedule = ""
	}

	if err := s.resourceRepo.Update(ctx, resource); err != nil {
		return nil, fmt.Errorf("update schedule: %w", err)
	}
	return resource, nil
}

func (s *resourceService) UpdateRules(ctx context.Context, actorID, resourceID int32, rules domain.Resource) (*domain.Resource, error) {
	resource, err := s.loadOwned(ctx, actorID, resourceID)
	if err != nil {
		return nil, err
	}

	resource.MinBookingMinutes = rules.MinBookingMinutes
	resource.MaxBookingMinutes = rules.MaxBookingMinutes
	resource.IncrementMinutes = rules.IncrementMinutes
	resource.BufferMinutes = rules.BufferMinutes
	resource.AdvanceHorizonDays = rules.AdvanceHorizonDays
	resource.MinLeadTimeHours = rules.MinLeadTimeHours
	resource.IsRestricted = rules.IsRestricted
	resource.ApplyRuleDefaults()

	if err := s.resourceRepo.Update(ctx, resource); err != nil {
		return nil, fmt.Errorf("update rules: %w", err)
	}
	return resource, nil
}
