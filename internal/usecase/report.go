package usecase

import (
	"context"
	"time"

	"rentalhub/internal/pkg/errs"
	"rentalhub/internal/usecase/readmodel"
)

type ReportRepository interface {
	Summary(ctx context.Context, from, to time.Time) (*readmodel.ReportSummaryRM, error)
}

type ReportUseCase interface {
	Summary(ctx context.Context, from, to time.Time) (*readmodel.ReportSummaryRM, error)
}

type reportUseCaseImpl struct {
	reportRepo ReportRepository
}

func NewReportUseCase(reportRepo ReportRepository) ReportUseCase {
	return &reportUseCaseImpl{reportRepo: reportRepo}
}

func (u *reportUseCaseImpl) Summary(ctx context.Context, from, to time.Time) (*readmodel.ReportSummaryRM, error) {
	summary, err := u.reportRepo.Summary(ctx, from, to)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return summary, nil
}
