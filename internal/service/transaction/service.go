package transaction

import (
	"context"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
	"github.com/zimhr/payroll-backend-go/internal/domain/transaction"
)

// TransactionService manages transaction codes and the recurring/ad-hoc pay
// lines fed into period runs.
type TransactionService struct {
	transactionRepo transaction.TransactionRepository
}

func NewTransactionService(transactionRepo transaction.TransactionRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo}
}

func (s *TransactionService) CreateCode(ctx context.Context, req transaction.CreateTransactionCodeRequest) (transaction.TransactionCodeResponse, error) {
	if err := req.Validate(); err != nil {
		return transaction.TransactionCodeResponse{}, err
	}

	isTaxable := true
	if req.IsTaxable != nil {
		isTaxable = *req.IsTaxable
	}
	isBenefit := false
	if req.IsBenefit != nil {
		isBenefit = *req.IsBenefit
	}

	created, err := s.transactionRepo.CreateCode(ctx, transaction.TransactionCode{
		Code:        req.Code,
		Name:        req.Name,
		Category:    transaction.Category(req.Category),
		IsTaxable:   isTaxable,
		FixedAmount: req.FixedAmount,
		Percentage:  req.Percentage,
		IsBenefit:   isBenefit,
		IsActive:    true,
	})
	if err != nil {
		return transaction.TransactionCodeResponse{}, err
	}

	return mapCodeResponse(created), nil
}

func (s *TransactionService) ListCodes(ctx context.Context, activeOnly bool) ([]transaction.TransactionCodeResponse, error) {
	codes, err := s.transactionRepo.ListCodes(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]transaction.TransactionCodeResponse, 0, len(codes))
	for _, code := range codes {
		result = append(result, mapCodeResponse(code))
	}
	return result, nil
}

func (s *TransactionService) CreateDefaultTransaction(ctx context.Context, req transaction.CreateDefaultTransactionRequest) (transaction.DefaultTransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return transaction.DefaultTransactionResponse{}, err
	}

	created, err := s.transactionRepo.CreateDefaultTransaction(ctx, transaction.DefaultTransaction{
		TransactionCodeID: req.TransactionCodeID,
		PeriodID:          req.PeriodID,
		CostCenterID:      req.CostCenterID,
		Currency:          currency.Mode(req.Currency),
		EmployeeAmount:    req.EmployeeAmount,
		EmployerAmount:    req.EmployerAmount,
		Hours:             req.Hours,
	})
	if err != nil {
		return transaction.DefaultTransactionResponse{}, err
	}

	return mapDefaultResponse(created), nil
}

func (s *TransactionService) ListDefaultTransactions(ctx context.Context, periodID, costCenterID string) ([]transaction.DefaultTransactionResponse, error) {
	txns, err := s.transactionRepo.ListDefaultTransactions(ctx, periodID, costCenterID)
	if err != nil {
		return nil, err
	}

	result := make([]transaction.DefaultTransactionResponse, 0, len(txns))
	for _, txn := range txns {
		result = append(result, mapDefaultResponse(txn))
	}
	return result, nil
}

func (s *TransactionService) DeleteDefaultTransaction(ctx context.Context, id string) error {
	return s.transactionRepo.SoftDeleteDefaultTransaction(ctx, id)
}

func (s *TransactionService) CreateCustomTransaction(ctx context.Context, req transaction.CreateCustomTransactionRequest) (transaction.CustomTransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return transaction.CustomTransactionResponse{}, err
	}

	codes := make([]transaction.TransactionCode, 0, len(req.TransactionCodeIDs))
	for _, id := range req.TransactionCodeIDs {
		code, err := s.transactionRepo.GetCodeByID(ctx, id)
		if err != nil {
			return transaction.CustomTransactionResponse{}, err
		}
		codes = append(codes, code)
	}

	created, err := s.transactionRepo.CreateCustomTransaction(ctx, transaction.CustomTransaction{
		PeriodID:     req.PeriodID,
		CostCenterID: req.CostCenterID,
		Description:  req.Description,
		UseBasic:     req.UseBasic,
		BaseAmount:   req.BaseAmount,
		WorkedHours:  req.WorkedHours,
		BaseHours:    req.BaseHours,
		EmployeeIDs:  req.EmployeeIDs,
		Codes:        codes,
	})
	if err != nil {
		return transaction.CustomTransactionResponse{}, err
	}

	return mapCustomResponse(created), nil
}

func (s *TransactionService) ListCustomTransactions(ctx context.Context, periodID, costCenterID string) ([]transaction.CustomTransactionResponse, error) {
	txns, err := s.transactionRepo.ListCustomTransactions(ctx, periodID, costCenterID)
	if err != nil {
		return nil, err
	}

	result := make([]transaction.CustomTransactionResponse, 0, len(txns))
	for _, txn := range txns {
		result = append(result, mapCustomResponse(txn))
	}
	return result, nil
}

func (s *TransactionService) DeleteCustomTransaction(ctx context.Context, id string) error {
	return s.transactionRepo.SoftDeleteCustomTransaction(ctx, id)
}

func mapCodeResponse(code transaction.TransactionCode) transaction.TransactionCodeResponse {
	return transaction.TransactionCodeResponse{
		ID:          code.ID,
		Code:        code.Code,
		Name:        code.Name,
		Category:    string(code.Category),
		IsTaxable:   code.IsTaxable,
		FixedAmount: code.FixedAmount,
		Percentage:  code.Percentage,
		IsBenefit:   code.IsBenefit,
		IsActive:    code.IsActive,
	}
}

func mapDefaultResponse(txn transaction.DefaultTransaction) transaction.DefaultTransactionResponse {
	resp := transaction.DefaultTransactionResponse{
		ID:             txn.ID,
		PeriodID:       txn.PeriodID,
		CostCenterID:   txn.CostCenterID,
		Currency:       string(txn.Currency),
		EmployeeAmount: txn.EmployeeAmount,
		EmployerAmount: txn.EmployerAmount,
		Hours:          txn.Hours,
	}
	if txn.Code != nil {
		resp.Code = *txn.Code
	}
	if txn.CodeName != nil {
		resp.CodeName = *txn.CodeName
	}
	if txn.CodeCategory != nil {
		resp.Category = string(*txn.CodeCategory)
	}
	return resp
}

func mapCustomResponse(txn transaction.CustomTransaction) transaction.CustomTransactionResponse {
	resp := transaction.CustomTransactionResponse{
		ID:           txn.ID,
		PeriodID:     txn.PeriodID,
		CostCenterID: txn.CostCenterID,
		Description:  txn.Description,
		UseBasic:     txn.UseBasic,
		BaseAmount:   txn.BaseAmount,
		WorkedHours:  txn.WorkedHours,
		BaseHours:    txn.BaseHours,
		EmployeeIDs:  txn.EmployeeIDs,
	}
	for _, code := range txn.Codes {
		resp.TransactionCodeIDs = append(resp.TransactionCodeIDs, code.ID)
	}
	return resp
}
