package models

import (
	"errors"
	"time"

	"github.com/gezilink/GL-BookingService/internal/domain"
)

var (
	// ErrInvalidRole возвращается при некорректной роли
	ErrInvalidRole = errors.New("invalid partner role")
)

// Request модели

// CreateTransactionRequest запрос на создание партнёрской транзакции
type CreateTransactionRequest struct {
	ReceiverTenantID int64   `json:"receiverTenantId"`
	CustomerName     string  `json:"customerName"`
	ActivityName     string  `json:"activityName"`
	Date             string  `json:"date"` // "2026-07-15"
	GuestCount       int     `json:"guestCount"`
	AmountTl         int64   `json:"amountTl"`
	Notes            *string `json:"notes,omitempty"`
}

// ListTransactionsRequest запрос на выборку партнёрских транзакций
type ListTransactionsRequest struct {
	TenantID int64   `json:"tenantId"`
	Role     *string `json:"role,omitempty"` // "sender" | "receiver" | "all"
}

// ToDomainRole конвертирует строку роли в domain.PartnerRole
func (r *ListTransactionsRequest) ToDomainRole() (domain.PartnerRole, error) {
	if r.Role == nil {
		return domain.PartnerRoleAll, nil
	}

	role := domain.PartnerRole(*r.Role)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Response модели

// TransactionResponse ответ с данными партнёрской транзакции
type TransactionResponse struct {
	ID int64 `json:"id"`

	SenderTenantID   int64 `json:"senderTenantId"`
	ReceiverTenantID int64 `json:"receiverTenantId"`

	CustomerName string `json:"customerName"`
	ActivityName string `json:"activityName"`
	Date         string `json:"date"`
	GuestCount   int    `json:"guestCount"`
	AmountTl     int64  `json:"amountTl"`

	Notes *string `json:"notes,omitempty"`

	DeletionStatus              string `json:"deletionStatus"`
	DeletionRequestedByTenantID *int64 `json:"deletionRequestedByTenantId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TransactionListResponse ответ со списком партнёрских транзакций
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// Методы конвертации

// FromDomainTransaction конвертирует domain модель в DTO
func FromDomainTransaction(t *domain.PartnerTransaction) *TransactionResponse {
	if t == nil {
		return nil
	}

	return &TransactionResponse{
		ID:                          t.ID,
		SenderTenantID:              t.SenderTenantID,
		ReceiverTenantID:            t.ReceiverTenantID,
		CustomerName:                t.CustomerName,
		ActivityName:                t.ActivityName,
		Date:                        t.Date.Format(domain.DateFormat),
		GuestCount:                  t.GuestCount,
		AmountTl:                    t.AmountTl,
		Notes:                       t.Notes,
		DeletionStatus:              string(t.DeletionStatus),
		DeletionRequestedByTenantID: t.DeletionRequestedByTenantID,
		CreatedAt:                   t.CreatedAt,
		UpdatedAt:                   t.UpdatedAt,
	}
}

// FromDomainTransactionList конвертирует список domain моделей в DTO
func FromDomainTransactionList(transactions []*domain.PartnerTransaction) *TransactionListResponse {
	if transactions == nil {
		return &TransactionListResponse{
			Transactions: []TransactionResponse{},
		}
	}

	resp := &TransactionListResponse{
		Transactions: make([]TransactionResponse, len(transactions)),
	}

	for i, transaction := range transactions {
		if transactionResp := FromDomainTransaction(transaction); transactionResp != nil {
			resp.Transactions[i] = *transactionResp
		}
	}

	return resp
}
