package domain

import (
	"context"
	"errors"
	"time"

	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/internal/model"
	"github.com/mtaadao/backend/internal/repository"
	"github.com/mtaadao/backend/pkg/errorx"
	"github.com/mtaadao/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type TreasuryDomain interface {
	GetBalance(ctx context.Context, req *model.GetTreasuryBalanceRequest) (*model.GetTreasuryBalanceResponse, error)
	GetTransactions(ctx context.Context, req *model.GetTreasuryTransactionsRequest) (*model.GetTreasuryTransactionsResponse, error)
	GetMetrics(ctx context.Context, req *model.GetTreasuryMetricsRequest) (*model.GetTreasuryMetricsResponse, error)
}

type treasuryDomain struct {
	daoRepo         repository.DAORepository
	vaultRepo       repository.VaultRepository
	transactionRepo repository.TransactionRepository
}

func NewTreasuryDomain(
	daoRepo repository.DAORepository,
	vaultRepo repository.VaultRepository,
	transactionRepo repository.TransactionRepository,
) *treasuryDomain {
	return &treasuryDomain{
		daoRepo:         daoRepo,
		vaultRepo:       vaultRepo,
		transactionRepo: transactionRepo,
	}
}

// GetBalance never fails on a storage error after the DAO is resolved. A
// degraded zero reading keeps the dashboard rendering; the flag tells the
// caller the zero is not real.
func (d *treasuryDomain) GetBalance(
	ctx context.Context, req *model.GetTreasuryBalanceRequest,
) (*model.GetTreasuryBalanceResponse, error) {
	dao, err := d.daoRepo.GetByID(ctx, req.DaoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found dao")
		}

		xcontext.Logger(ctx).Errorf("Cannot get dao: %v", err)
		return nil, errorx.Unknown
	}

	aggregate, err := d.vaultRepo.Aggregate(ctx, req.DaoID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot aggregate vaults of dao %s: %v", req.DaoID, err)
		return &model.GetTreasuryBalanceResponse{Currency: dao.Currency, Degraded: true}, nil
	}

	resp := &model.GetTreasuryBalanceResponse{
		Balance:    aggregate.Balance,
		Currency:   dao.Currency,
		VaultCount: aggregate.Count,
	}

	if aggregate.LastUpdated.Valid {
		resp.LastUpdated = aggregate.LastUpdated.Time
	}

	return resp, nil
}

func (d *treasuryDomain) GetTransactions(
	ctx context.Context, req *model.GetTreasuryTransactionsRequest,
) (*model.GetTreasuryTransactionsResponse, error) {
	if req.Limit == 0 {
		req.Limit = xcontext.Configs(ctx).ApiServer.DefaultLimit
	}

	if req.Limit > xcontext.Configs(ctx).ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	transactions, err := d.transactionRepo.GetList(ctx, req.DaoID, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get transactions of dao %s: %v", req.DaoID, err)
		return &model.GetTreasuryTransactionsResponse{
			Transactions: []model.Transaction{},
			Degraded:     true,
		}, nil
	}

	total, err := d.transactionRepo.Count(ctx, req.DaoID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count transactions of dao %s: %v", req.DaoID, err)
		return &model.GetTreasuryTransactionsResponse{
			Transactions: []model.Transaction{},
			Degraded:     true,
		}, nil
	}

	result := []model.Transaction{}
	for _, tx := range transactions {
		result = append(result, model.Transaction{
			ID:        tx.ID,
			Type:      string(tx.Type),
			Amount:    tx.Amount,
			Currency:  tx.Currency,
			Note:      tx.Note,
			CreatedAt: tx.CreatedAt,
		})
	}

	return &model.GetTreasuryTransactionsResponse{Transactions: result, Total: total}, nil
}

func (d *treasuryDomain) GetMetrics(
	ctx context.Context, req *model.GetTreasuryMetricsRequest,
) (*model.GetTreasuryMetricsResponse, error) {
	cfg := xcontext.Configs(ctx).Analytics
	windowStart := time.Now().Add(-cfg.EngagementWindow)

	aggregate, err := d.vaultRepo.Aggregate(ctx, req.DaoID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot aggregate vaults of dao %s: %v", req.DaoID, err)
		return &model.GetTreasuryMetricsResponse{Degraded: true}, nil
	}

	inflow, err := d.transactionRepo.SumAmount(ctx, repository.StatisticTransactionFilter{
		DaoID:        req.DaoID,
		Types:        entity.InflowTransactionTypes,
		CreatedStart: windowStart,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sum inflow of dao %s: %v", req.DaoID, err)
		return &model.GetTreasuryMetricsResponse{Degraded: true}, nil
	}

	outflow, err := d.transactionRepo.SumAmount(ctx, repository.StatisticTransactionFilter{
		DaoID:        req.DaoID,
		Types:        entity.OutflowTransactionTypes,
		CreatedStart: windowStart,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sum outflow of dao %s: %v", req.DaoID, err)
		return &model.GetTreasuryMetricsResponse{Degraded: true}, nil
	}

	windowMonths := cfg.EngagementWindow.Hours() / (30 * 24)
	burnRate := float64(0)
	if windowMonths > 0 {
		burnRate = outflow / windowMonths
	}

	// Zero outflow over the window means no projected exhaustion. The
	// sentinel avoids Inf/NaN leaking into the response.
	runway := cfg.RunwayUnbounded
	if burnRate > 0 {
		runway = aggregate.Balance / burnRate
		if runway > cfg.RunwayUnbounded {
			runway = cfg.RunwayUnbounded
		}
	}

	return &model.GetTreasuryMetricsResponse{
		CurrentBalance: aggregate.Balance,
		TotalInflow:    inflow,
		TotalOutflow:   outflow,
		NetChange:      inflow - outflow,
		BurnRate:       burnRate,
		Runway:         runway,
	}, nil
}
