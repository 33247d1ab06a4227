package api

import (
	"context"
	"errors"
	"time"

	"github.com/absmach/perfapi/monitor"
	pkgerrors "github.com/absmach/perfapi/pkg/errors"
	apiutil "github.com/absmach/supermq/api/http/util"
	"github.com/go-kit/kit/endpoint"
)

func systemMetricsEndpoint(svc monitor.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(systemMetricsReq)
		if !ok {
			return systemMetricsRes{}, errors.Join(apiutil.ErrValidation, pkgerrors.ErrInvalidData)
		}
		if err := req.validate(); err != nil {
			return systemMetricsRes{}, errors.Join(apiutil.ErrValidation, err)
		}

		snap, err := svc.SystemMetrics(ctx, req.options())
		if err != nil {
			return systemMetricsRes{}, err
		}

		return systemMetricsRes{SystemSnapshot: snap}, nil
	}
}

func processMetricsEndpoint(svc monitor.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(processMetricsReq)
		if !ok {
			return processMetricsRes{}, errors.Join(apiutil.ErrValidation, pkgerrors.ErrInvalidData)
		}
		if err := req.validate(); err != nil {
			return processMetricsRes{}, errors.Join(apiutil.ErrValidation, err)
		}

		snap, err := svc.ProcessMetrics(ctx, int32(req.pid))
		if err != nil {
			return processMetricsRes{}, err
		}

		return processMetricsRes{ProcessSnapshot: snap}, nil
	}
}

func historyEndpoint(svc monitor.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(windowReq)
		if !ok {
			return historyRes{}, errors.Join(apiutil.ErrValidation, pkgerrors.ErrInvalidData)
		}
		if err := req.validate(); err != nil {
			return historyRes{}, errors.Join(apiutil.ErrValidation, err)
		}

		samples, err := svc.History(ctx, req.window())
		if err != nil {
			return historyRes{}, err
		}

		return historyRes{Samples: samples}, nil
	}
}

func summaryEndpoint(svc monitor.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(windowReq)
		if !ok {
			return summaryRes{}, errors.Join(apiutil.ErrValidation, pkgerrors.ErrInvalidData)
		}
		if err := req.validate(); err != nil {
			return summaryRes{}, errors.Join(apiutil.ErrValidation, err)
		}

		summary, err := svc.Summary(ctx, req.window())
		if err != nil {
			return summaryRes{}, err
		}

		return summaryRes{Summary: summary}, nil
	}
}

func listTargetsEndpoint(svc monitor.Service) endpoint.Endpoint {
	return func(ctx context.Context, _ any) (any, error) {
		names, err := svc.ListTargets(ctx)
		if err != nil {
			return targetsRes{}, err
		}
		if names == nil {
			names = []string{}
		}

		return targetsRes(names), nil
	}
}

func runProfileEndpoint(svc monitor.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(runProfileReq)
		if !ok {
			return profileRes{}, errors.Join(apiutil.ErrValidation, pkgerrors.ErrInvalidData)
		}
		if err := req.validate(); err != nil {
			return profileRes{}, errors.Join(apiutil.ErrValidation, err)
		}

		stats, err := svc.RunProfile(ctx, req.RunRequest)
		if err != nil {
			return profileRes{}, err
		}

		return profileRes{Stats: stats}, nil
	}
}

func runProfileDetailedEndpoint(svc monitor.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(runProfileReq)
		if !ok {
			return detailedProfileRes{}, errors.Join(apiutil.ErrValidation, pkgerrors.ErrInvalidData)
		}
		if err := req.validate(); err != nil {
			return detailedProfileRes{}, errors.Join(apiutil.ErrValidation, err)
		}

		stats, err := svc.RunProfileDetailed(ctx, req.RunRequest)
		if err != nil {
			return detailedProfileRes{}, err
		}

		return detailedProfileRes{DetailedStats: stats}, nil
	}
}

func simulateWorkEndpoint(svc monitor.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(simulateWorkReq)
		if !ok {
			return workRes{}, errors.Join(apiutil.ErrValidation, pkgerrors.ErrInvalidData)
		}
		if err := req.validate(); err != nil {
			return workRes{}, errors.Join(apiutil.ErrValidation, err)
		}

		res, err := svc.SimulateWork(ctx, time.Duration(req.workMS)*time.Millisecond)
		if err != nil {
			return workRes{}, err
		}

		return workRes{WorkResult: res}, nil
	}
}

func healthEndpoint(svc monitor.Service) endpoint.Endpoint {
	return func(ctx context.Context, _ any) (any, error) {
		h, err := svc.Health(ctx)
		if err != nil {
			return healthRes{}, err
		}

		return healthRes{Health: h}, nil
	}
}

func infoEndpoint(svc monitor.Service) endpoint.Endpoint {
	return func(ctx context.Context, _ any) (any, error) {
		info, err := svc.Info(ctx)
		if err != nil {
			return infoRes{}, err
		}

		return infoRes{Info: info}, nil
	}
}
