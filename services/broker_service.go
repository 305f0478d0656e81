package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ipocraft/ipocraft-backend/models"
)

const brokerColumns = `id, name, slug, logo_url, account_opening, account_maintenance,
              equity_delivery, equity_intraday, futures, options,
              cta_url, notes, sort_order, is_active, created_at, updated_at`

// BrokerService owns the broker comparison table.
type BrokerService struct {
	DB             *sql.DB
	UtilityService *UtilityService
	auditLogger    *AuditLogger
}

func NewBrokerService(db *sql.DB) *BrokerService {
	return &BrokerService{
		DB:             db,
		UtilityService: NewUtilityService(),
		auditLogger:    NewAuditLogger("broker-service"),
	}
}

// ListActiveBrokers returns active brokers ordered by sort_order then name.
func (s *BrokerService) ListActiveBrokers(ctx context.Context) ([]models.Broker, error) {
	query := `SELECT ` + brokerColumns + ` FROM brokers
              WHERE is_active = TRUE ORDER BY sort_order ASC, name ASC`
	return s.queryBrokers(ctx, query)
}

// ListBrokers returns all brokers for the admin console, active or not.
func (s *BrokerService) ListBrokers(ctx context.Context) ([]models.Broker, error) {
	query := `SELECT ` + brokerColumns + ` FROM brokers
              ORDER BY sort_order ASC, name ASC`
	return s.queryBrokers(ctx, query)
}

// CreateBroker inserts a broker; the slug is generated from the name on
// create only.
func (s *BrokerService) CreateBroker(ctx context.Context, b *models.Broker) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Slug == "" {
		b.Slug = s.UtilityService.GenerateSlug(b.Name)
	}

	query := `INSERT INTO brokers (id, name, slug, logo_url, account_opening,
              account_maintenance, equity_delivery, equity_intraday, futures, options,
              cta_url, notes, sort_order, is_active)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
              RETURNING created_at, updated_at`

	err := s.DB.QueryRowContext(ctx, query,
		b.ID, b.Name, b.Slug, b.LogoURL, b.AccountOpening,
		b.AccountMaintenance, b.EquityDelivery, b.EquityIntraday, b.Futures, b.Options,
		b.CTAURL, b.Notes, b.SortOrder, b.IsActive,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		s.auditLogger.LogMutation("CREATE", "Broker", b.Slug, false, err)
		return fmt.Errorf("failed to insert broker: %w", err)
	}

	s.auditLogger.LogMutation("CREATE", "Broker", b.Slug, true, nil)
	return nil
}

// UpdateBroker persists admin edits; the stored slug is preserved.
func (s *BrokerService) UpdateBroker(ctx context.Context, id uuid.UUID, b *models.Broker) (*models.Broker, error) {
	query := `UPDATE brokers SET name = $1, logo_url = $2, account_opening = $3,
              account_maintenance = $4, equity_delivery = $5, equity_intraday = $6,
              futures = $7, options = $8, cta_url = $9, notes = $10,
              sort_order = $11, is_active = $12, updated_at = CURRENT_TIMESTAMP
              WHERE id = $13
              RETURNING slug, created_at, updated_at`

	err := s.DB.QueryRowContext(ctx, query,
		b.Name, b.LogoURL, b.AccountOpening, b.AccountMaintenance,
		b.EquityDelivery, b.EquityIntraday, b.Futures, b.Options,
		b.CTAURL, b.Notes, b.SortOrder, b.IsActive, id,
	).Scan(&b.Slug, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.auditLogger.LogMutation("UPDATE", "Broker", id.String(), false, err)
		return nil, fmt.Errorf("failed to update broker: %w", err)
	}
	b.ID = id

	s.auditLogger.LogMutation("UPDATE", "Broker", b.Slug, true, nil)
	return b, nil
}

// DeleteBroker removes a broker.
func (s *BrokerService) DeleteBroker(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM brokers WHERE id = $1`, id)
	if err != nil {
		s.auditLogger.LogMutation("DELETE", "Broker", id.String(), false, err)
		return false, fmt.Errorf("failed to delete broker: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}

	s.auditLogger.LogMutation("DELETE", "Broker", id.String(), affected > 0, nil)
	return affected > 0, nil
}

func (s *BrokerService) queryBrokers(ctx context.Context, query string) ([]models.Broker, error) {
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query brokers: %w", err)
	}
	defer rows.Close()

	var brokers []models.Broker
	for rows.Next() {
		var b models.Broker
		err := rows.Scan(
			&b.ID, &b.Name, &b.Slug, &b.LogoURL, &b.AccountOpening, &b.AccountMaintenance,
			&b.EquityDelivery, &b.EquityIntraday, &b.Futures, &b.Options,
			&b.CTAURL, &b.Notes, &b.SortOrder, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan broker row: %w", err)
		}
		brokers = append(brokers, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating broker rows: %w", err)
	}
	return brokers, nil
}
