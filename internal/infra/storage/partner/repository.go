package partner

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/gezilink/GL-BookingService/internal/domain"
	"github.com/gezilink/GL-BookingService/pkg/dbmetrics"
	"github.com/gezilink/GL-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий партнёрских транзакций между тенантами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория партнёрских транзакций
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

var transactionColumns = []string{
	"id",
	"sender_tenant_id",
	"receiver_tenant_id",
	"customer_name",
	"activity_name",
	"transaction_date",
	"guest_count",
	"amount_tl",
	"notes",
	"deletion_status",
	"deletion_requested_by_tenant_id",
	"created_at",
	"updated_at",
}

// Create создает партнёрскую транзакцию
func (r *Repository) Create(ctx context.Context, t *domain.PartnerTransaction) (*domain.PartnerTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("partner_transactions").
		Columns("sender_tenant_id", "receiver_tenant_id", "customer_name", "activity_name", "transaction_date", "guest_count", "amount_tl", "notes", "deletion_status").
		Values(t.SenderTenantID, t.ReceiverTenantID, t.CustomerName, t.ActivityName, t.Date, t.GuestCount, t.AmountTl, t.Notes, domain.DeletionStatusNone).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	t.DeletionStatus = domain.DeletionStatusNone
	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return t, nil
}

// GetByID получает транзакцию по ID без фильтра по тенанту.
// Проверка причастности тенанта - забота сервисного слоя.
func (r *Repository) GetByID(ctx context.Context, transactionID int64) (*domain.PartnerTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(transactionColumns...).
		From("partner_transactions").
		Where(squirrel.Eq{"id": transactionID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	t, err := r.scanOne(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan transaction: %v", ErrScanRow, err)
	}

	return t, nil
}

// ListForTenant получает транзакции, где тенант выступает в заданной роли.
// Транзакции с подтверждённым удалением считаются архивными
// и в выдачу не попадают.
func (r *Repository) ListForTenant(ctx context.Context, tenantID int64, role domain.PartnerRole) ([]*domain.PartnerTransaction, error) {
	var roleWhere squirrel.Sqlizer
	switch role {
	case domain.PartnerRoleSender:
		roleWhere = squirrel.Eq{"sender_tenant_id": tenantID}
	case domain.PartnerRoleReceiver:
		roleWhere = squirrel.Eq{"receiver_tenant_id": tenantID}
	default:
		roleWhere = squirrel.Or{
			squirrel.Eq{"sender_tenant_id": tenantID},
			squirrel.Eq{"receiver_tenant_id": tenantID},
		}
	}

	return r.list(ctx, squirrel.And{
		roleWhere,
		squirrel.NotEq{"deletion_status": domain.DeletionStatusApproved},
	})
}

// RequestDeletion переводит транзакцию из none в pending от имени тенанта.
// Условное обновление: повторный запрос поверх pending не проходит.
func (r *Repository) RequestDeletion(ctx context.Context, transactionID, requesterTenantID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("partner_transactions").
		Set("deletion_status", domain.DeletionStatusPending).
		Set("deletion_requested_by_tenant_id", requesterTenantID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": transactionID, "deletion_status": domain.DeletionStatusNone}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RequestDeletion - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RequestDeletion - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RequestDeletion - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		// Ноль строк: либо транзакции нет, либо запрос уже висит.
		// Перечитываем, чтобы отдать точную причину.
		if _, err := r.GetByID(ctx, transactionID); err != nil {
			return err
		}
		return ErrDeletionAlreadyRequested
	}

	return nil
}

// ResolveDeletion подтверждает или отклоняет ожидающий запрос на удаление.
// Ключевой инвариант зашит прямо в WHERE: резолвить может только тенант,
// НЕ запрашивавший удаление. Состояние гонки двух одновременных резолвов
// снимается тем же условным обновлением.
func (r *Repository) ResolveDeletion(ctx context.Context, transactionID, approverTenantID int64, approve bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	status := domain.DeletionStatusApproved
	if !approve {
		// Отклонение возвращает транзакцию в исходное состояние,
		// чтобы удаление можно было запросить заново
		status = domain.DeletionStatusNone
	}

	updateBuilder := psqlbuilder.Update("partner_transactions").
		Set("deletion_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": transactionID, "deletion_status": domain.DeletionStatusPending}).
		Where(squirrel.NotEq{"deletion_requested_by_tenant_id": approverTenantID})
	if !approve {
		updateBuilder = updateBuilder.Set("deletion_requested_by_tenant_id", nil)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ResolveDeletion - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ResolveDeletion - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ResolveDeletion - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		// Ноль строк: классифицируем причину перечитыванием
		t, err := r.GetByID(ctx, transactionID)
		if err != nil {
			return err
		}
		if !t.HasPendingDeletion() {
			return ErrDeletionNotPending
		}
		return ErrUnauthorizedDeletionApproval
	}

	return nil
}

func (r *Repository) list(ctx context.Context, where squirrel.Sqlizer) ([]*domain.PartnerTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(transactionColumns...).
		From("partner_transactions").
		Where(where).
		OrderBy("transaction_date DESC, id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	transactions := make([]*domain.PartnerTransaction, 0)
	for rows.Next() {
		t, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: list - scan transaction: %v", ErrScanRow, err)
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows error: %v", ErrScanRow, err)
	}

	return transactions, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanOne(row rowScanner) (*domain.PartnerTransaction, error) {
	var t domain.PartnerTransaction
	var requestedBy sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&t.ID,
		&t.SenderTenantID,
		&t.ReceiverTenantID,
		&t.CustomerName,
		&t.ActivityName,
		&t.Date,
		&t.GuestCount,
		&t.AmountTl,
		&t.Notes,
		&t.DeletionStatus,
		&requestedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if requestedBy.Valid {
		t.DeletionRequestedByTenantID = &requestedBy.Int64
	}
	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return &t, nil
}
