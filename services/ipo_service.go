package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ipocraft/ipocraft-backend/models"
	"github.com/ipocraft/ipocraft-backend/shared"
	"github.com/sirupsen/logrus"
)

const ipoColumns = `id, slug, name, ipo_type, exchange, sector,
              open_date, close_date, allotment_date, refund_date, listing_date,
              price_min, price_max, lot_size, issue_size, gmp,
              sub_total, sub_qib, sub_nii, sub_rii, sub_bhni, sub_shni,
              allotment_out, allotment_link, status, created_at, updated_at`

// IPOService owns reads and administrative writes for the ipos table.
// Writes that change the GMP snapshot also append to gmp_history, see
// NeedsHistoryPoint.
type IPOService struct {
	DB             *sql.DB
	UtilityService *UtilityService
	auditLogger    *AuditLogger
	serviceMetrics *shared.ServiceMetrics
}

func NewIPOService(db *sql.DB) *IPOService {
	return &IPOService{
		DB:             db,
		UtilityService: NewUtilityService(),
		auditLogger:    NewAuditLogger("ipo-service"),
		serviceMetrics: shared.NewServiceMetrics("IPO_Service"),
	}
}

// NeedsHistoryPoint reports whether changing the stored GMP snapshot from
// old to new warrants a new gmp_history point. A point is appended only
// when the new value is present and differs from the previous one; no-op
// updates never write history.
func NeedsHistoryPoint(oldGMP, newGMP *float64) bool {
	if newGMP == nil {
		return false
	}
	if oldGMP == nil {
		return true
	}
	return *oldGMP != *newGMP
}

// ListIPOs returns all IPOs, most recently created first.
func (s *IPOService) ListIPOs(ctx context.Context) ([]models.IPO, error) {
	start := time.Now()

	query := `SELECT ` + ipoColumns + ` FROM ipos ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		s.serviceMetrics.RecordRequest(false, time.Since(start))
		return nil, fmt.Errorf("failed to query IPOs: %w", err)
	}
	defer rows.Close()

	var ipos []models.IPO
	for rows.Next() {
		ipo, err := scanIPO(rows)
		if err != nil {
			s.serviceMetrics.RecordRequest(false, time.Since(start))
			return nil, err
		}
		ipos = append(ipos, *ipo)
	}
	if err = rows.Err(); err != nil {
		s.serviceMetrics.RecordRequest(false, time.Since(start))
		return nil, fmt.Errorf("error iterating IPO rows: %w", err)
	}

	s.serviceMetrics.RecordRequest(true, time.Since(start))
	return ipos, nil
}

// GetIPOByID returns one IPO or nil when it does not exist.
func (s *IPOService) GetIPOByID(ctx context.Context, id int64) (*models.IPO, error) {
	query := `SELECT ` + ipoColumns + ` FROM ipos WHERE id = $1`
	ipo, err := scanIPO(s.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return ipo, err
}

// GetIPOBySlug returns one IPO by its URL slug or nil when it does not exist.
func (s *IPOService) GetIPOBySlug(ctx context.Context, slug string) (*models.IPO, error) {
	query := `SELECT ` + ipoColumns + ` FROM ipos WHERE slug = $1`
	ipo, err := scanIPO(s.DB.QueryRowContext(ctx, query, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return ipo, err
}

// CreateIPO inserts a new IPO. The slug is generated from the name once,
// here on create; updates never regenerate it because slugs are used for
// external linking. When the new record carries a GMP snapshot, the first
// history point is appended in the same transaction.
func (s *IPOService) CreateIPO(ctx context.Context, ipo *models.IPO) error {
	if ipo.Slug == "" {
		ipo.Slug = s.UtilityService.GenerateSlug(ipo.Name)
	}
	if ipo.IPOType == "" {
		ipo.IPOType = models.IPOTypeMainboard
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO ipos (slug, name, ipo_type, exchange, sector,
              open_date, close_date, allotment_date, refund_date, listing_date,
              price_min, price_max, lot_size, issue_size, gmp,
              sub_total, sub_qib, sub_nii, sub_rii, sub_bhni, sub_shni,
              allotment_out, allotment_link, status)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
                      $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
              RETURNING id, created_at, updated_at`

	err = tx.QueryRowContext(ctx, query,
		ipo.Slug, ipo.Name, ipo.IPOType, ipo.Exchange, ipo.Sector,
		ipo.OpenDate, ipo.CloseDate, ipo.AllotmentDate, ipo.RefundDate, ipo.ListingDate,
		ipo.PriceMin, ipo.PriceMax, ipo.LotSize, ipo.IssueSize, ipo.GMP,
		ipo.SubTotal, ipo.SubQIB, ipo.SubNII, ipo.SubRII, ipo.SubBHNI, ipo.SubSHNI,
		ipo.AllotmentOut, ipo.AllotmentLink, ipo.StatusOverride,
	).Scan(&ipo.ID, &ipo.CreatedAt, &ipo.UpdatedAt)
	if err != nil {
		s.auditLogger.LogMutation("CREATE", "IPO", ipo.Slug, false, err)
		return fmt.Errorf("failed to insert IPO: %w", err)
	}

	if NeedsHistoryPoint(nil, ipo.GMP) {
		if err := appendHistoryPointTx(ctx, tx, ipo.ID, *ipo.GMP); err != nil {
			s.auditLogger.LogMutation("CREATE", "IPO", ipo.Slug, false, err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit IPO insert: %w", err)
	}

	s.auditLogger.LogMutation("CREATE", "IPO", ipo.Slug, true, nil)
	return nil
}

// UpdateIPO persists admin edits to an existing IPO. The stored slug is
// preserved. When the GMP snapshot changed, one history point is appended
// in the same transaction.
func (s *IPOService) UpdateIPO(ctx context.Context, id int64, ipo *models.IPO) (*models.IPO, error) {
	existing, err := s.GetIPOByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE ipos SET name = $1, ipo_type = $2, exchange = $3, sector = $4,
              open_date = $5, close_date = $6, allotment_date = $7, refund_date = $8,
              listing_date = $9, price_min = $10, price_max = $11, lot_size = $12,
              issue_size = $13, gmp = $14, sub_total = $15, sub_qib = $16, sub_nii = $17,
              sub_rii = $18, sub_bhni = $19, sub_shni = $20, allotment_out = $21,
              allotment_link = $22, status = $23, updated_at = CURRENT_TIMESTAMP
              WHERE id = $24
              RETURNING created_at, updated_at`

	err = tx.QueryRowContext(ctx, query,
		ipo.Name, ipo.IPOType, ipo.Exchange, ipo.Sector,
		ipo.OpenDate, ipo.CloseDate, ipo.AllotmentDate, ipo.RefundDate, ipo.ListingDate,
		ipo.PriceMin, ipo.PriceMax, ipo.LotSize, ipo.IssueSize, ipo.GMP,
		ipo.SubTotal, ipo.SubQIB, ipo.SubNII, ipo.SubRII, ipo.SubBHNI, ipo.SubSHNI,
		ipo.AllotmentOut, ipo.AllotmentLink, ipo.StatusOverride, id,
	).Scan(&ipo.CreatedAt, &ipo.UpdatedAt)
	if err != nil {
		s.auditLogger.LogMutation("UPDATE", "IPO", existing.Slug, false, err)
		return nil, fmt.Errorf("failed to update IPO: %w", err)
	}
	ipo.ID = id
	ipo.Slug = existing.Slug

	if NeedsHistoryPoint(existing.GMP, ipo.GMP) {
		if err := appendHistoryPointTx(ctx, tx, id, *ipo.GMP); err != nil {
			s.auditLogger.LogMutation("UPDATE", "IPO", existing.Slug, false, err)
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit IPO update: %w", err)
	}

	s.auditLogger.LogMutation("UPDATE", "IPO", existing.Slug, true, nil)
	return ipo, nil
}

// UpdateGMPSnapshot changes only the stored GMP value, appending a history
// point when the value actually changed. Used by the refresh job.
func (s *IPOService) UpdateGMPSnapshot(ctx context.Context, id int64, gmp float64) (bool, error) {
	existing, err := s.GetIPOByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, shared.NewServiceError(shared.ErrorCategoryNotFound, "IPO_NOT_FOUND",
			fmt.Sprintf("IPO %d not found", id), "ipo-service", "UpdateGMPSnapshot", false, nil)
	}

	if !NeedsHistoryPoint(existing.GMP, &gmp) {
		return false, nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE ipos SET gmp = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`, gmp, id); err != nil {
		return false, fmt.Errorf("failed to update GMP snapshot: %w", err)
	}
	if err := appendHistoryPointTx(ctx, tx, id, gmp); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit GMP snapshot update: %w", err)
	}

	return true, nil
}

// DeleteIPO removes an IPO; its GMP history goes with it via the schema's
// ON DELETE CASCADE.
func (s *IPOService) DeleteIPO(ctx context.Context, id int64) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM ipos WHERE id = $1`, id)
	if err != nil {
		s.auditLogger.LogMutation("DELETE", "IPO", fmt.Sprintf("%d", id), false, err)
		return false, fmt.Errorf("failed to delete IPO: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}

	s.auditLogger.LogMutation("DELETE", "IPO", fmt.Sprintf("%d", id), affected > 0, nil)
	return affected > 0, nil
}

// LogMetricsSummary logs the service metrics summary.
func (s *IPOService) LogMetricsSummary() {
	if s.serviceMetrics != nil {
		s.serviceMetrics.LogSummary()
	}
}

func appendHistoryPointTx(ctx context.Context, tx *sql.Tx, ipoID int64, gmp float64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO gmp_history (ipo_id, gmp) VALUES ($1, $2)`, ipoID, gmp)
	if err != nil {
		return fmt.Errorf("failed to append GMP history point: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanIPO(row rowScanner) (*models.IPO, error) {
	var ipo models.IPO
	err := row.Scan(
		&ipo.ID, &ipo.Slug, &ipo.Name, &ipo.IPOType, &ipo.Exchange, &ipo.Sector,
		&ipo.OpenDate, &ipo.CloseDate, &ipo.AllotmentDate, &ipo.RefundDate, &ipo.ListingDate,
		&ipo.PriceMin, &ipo.PriceMax, &ipo.LotSize, &ipo.IssueSize, &ipo.GMP,
		&ipo.SubTotal, &ipo.SubQIB, &ipo.SubNII, &ipo.SubRII, &ipo.SubBHNI, &ipo.SubSHNI,
		&ipo.AllotmentOut, &ipo.AllotmentLink, &ipo.StatusOverride, &ipo.CreatedAt, &ipo.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan IPO row: %w", err)
	}
	return &ipo, nil
}

// AuditLogger writes structured audit entries for administrative mutations.
type AuditLogger struct {
	serviceName string
}

func NewAuditLogger(serviceName string) *AuditLogger {
	return &AuditLogger{serviceName: serviceName}
}

// LogMutation records one create/update/delete against an entity.
func (a *AuditLogger) LogMutation(operation, entityType, entityID string, success bool, err error) {
	fields := logrus.Fields{
		"service_name": a.serviceName,
		"operation":    operation,
		"entity_type":  entityType,
		"entity_id":    entityID,
		"success":      success,
	}
	if err != nil {
		fields["error_msg"] = err.Error()
	}

	if success {
		logrus.WithFields(fields).Info("Audit log entry")
	} else {
		logrus.WithFields(fields).Warn("Audit log entry - operation failed")
	}
}
