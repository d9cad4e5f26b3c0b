package service

import (
	"context"
	"time"

	"team-schedule-api/core/constants"
	coreEntity "team-schedule-api/core/entity"
	"team-schedule-api/core/errors"
	"team-schedule-api/core/logger"
	"team-schedule-api/core/params"
	"team-schedule-api/modules/host/dto"
	"team-schedule-api/modules/host/entity"
	"team-schedule-api/modules/host/repository"

	"github.com/google/uuid"
)

type HostServiceInterface interface {
	CreateHost(ctx context.Context, req *dto.CreateHostRequest) (*dto.HostResponse, *errors.AppError)
	GetHost(ctx context.Context, id uuid.UUID) (*dto.HostResponse, *errors.AppError)
	GetHostsByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.SchedulingUser, *errors.AppError)
	ListHosts(ctx context.Context, queryParams params.QueryParams) (*entity.PaginatedHosts, *errors.AppError)
	UpdateSettings(ctx context.Context, id uuid.UUID, req *dto.UpdateHostSettingsRequest) (*dto.HostResponse, *errors.AppError)
	DeactivateHost(ctx context.Context, id uuid.UUID) *errors.AppError
}

type hostService struct {
	repo repository.HostRepositoryInterface
}

func NewHostService(repo repository.HostRepositoryInterface) HostServiceInterface {
	return &hostService{repo: repo}
}

func (s *hostService) CreateHost(ctx context.Context, req *dto.CreateHostRequest) (*dto.HostResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	logger.Info("HostService:CreateHost:Start", "email", req.Email)

	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "unknown timezone: "+req.Timezone, err)
	}

	host := &entity.SchedulingUser{
		Name:               req.Name,
		Email:              req.Email,
		Timezone:           req.Timezone,
		IsActive:           true,
		MinimumNoticeHours: constants.DefaultMinimumNoticeHours,
		BookingWindowDays:  constants.DefaultBookingWindowDays,
		BaseEntity: coreEntity.BaseEntity{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	created, err := s.repo.Create(ctx, host)
	if err != nil {
		logger.Error("HostService:CreateHost:Create:Error", err, "email", req.Email)
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create host", err)
	}

	logger.Info("HostService:CreateHost:Success", "host_id", created.ID)
	return dto.ToHostResponse(created), nil
}

func (s *hostService) GetHost(ctx context.Context, id uuid.UUID) (*dto.HostResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	host, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load host", err)
	}
	if host == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "host not found", nil)
	}

	return dto.ToHostResponse(host), nil
}

func (s *hostService) GetHostsByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.SchedulingUser, *errors.AppError) {
	hosts, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load hosts", err)
	}
	return hosts, nil
}

func (s *hostService) ListHosts(ctx context.Context, queryParams params.QueryParams) (*entity.PaginatedHosts, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.List(ctx, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list hosts", err)
	}
	return page, nil
}

func (s *hostService) UpdateSettings(ctx context.Context, id uuid.UUID, req *dto.UpdateHostSettingsRequest) (*dto.HostResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	logger.Info("HostService:UpdateSettings:Start", "host_id", id)

	host, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load host", err)
	}
	if host == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "host not found", nil)
	}

	if req.MinimumNoticeHours != nil {
		host.MinimumNoticeHours = *req.MinimumNoticeHours
	}
	if req.BookingWindowDays != nil {
		host.BookingWindowDays = *req.BookingWindowDays
	}
	if req.BufferBeforeMinutes != nil {
		host.BufferBeforeMinutes = *req.BufferBeforeMinutes
	}
	if req.BufferAfterMinutes != nil {
		host.BufferAfterMinutes = *req.BufferAfterMinutes
	}
	if req.DailyBookingLimit != nil {
		if *req.DailyBookingLimit <= 0 {
			host.DailyBookingLimit = nil
		} else {
			host.DailyBookingLimit = req.DailyBookingLimit
		}
	}

	if host.MinimumNoticeHours < 0 || host.BookingWindowDays < 1 ||
		host.BufferBeforeMinutes < 0 || host.BufferAfterMinutes < 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "settings out of range", nil)
	}

	if err := s.repo.UpdateSettings(ctx, host); err != nil {
		logger.Error("HostService:UpdateSettings:Error", err, "host_id", id)
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update host settings", err)
	}

	logger.Info("HostService:UpdateSettings:Success", "host_id", id)
	return dto.ToHostResponse(host), nil
}

func (s *hostService) DeactivateHost(ctx context.Context, id uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	host, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "failed to load host", err)
	}
	if host == nil {
		return errors.NewAppError(errors.ErrNotFound, "host not found", nil)
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to deactivate host", err)
	}

	logger.Info("HostService:DeactivateHost:Success", "host_id", id)
	return nil
}
