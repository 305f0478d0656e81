package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/ipocraft/ipocraft-backend/models"
)

// GMPService reads the gmp_history series. Points are append-only and never
// mutated; writes happen through IPOService alongside snapshot updates.
type GMPService struct {
	DB *sql.DB
}

func NewGMPService(db *sql.DB) *GMPService {
	return &GMPService{DB: db}
}

// HistoryForIPO returns the series for one IPO, ascending by observation time.
func (s *GMPService) HistoryForIPO(ctx context.Context, ipoID int64) ([]models.GmpHistoryPoint, error) {
	query := `SELECT id, ipo_id, gmp, observed_at FROM gmp_history
              WHERE ipo_id = $1 ORDER BY observed_at ASC`

	rows, err := s.DB.QueryContext(ctx, query, ipoID)
	if err != nil {
		return nil, fmt.Errorf("failed to query GMP history: %w", err)
	}
	defer rows.Close()

	return scanHistoryRows(rows)
}

// HistoryForIPOs returns the series for a set of IPOs grouped by IPO id,
// each ascending by observation time. IPOs with no history are absent from
// the map.
func (s *GMPService) HistoryForIPOs(ctx context.Context, ipoIDs []int64) (map[int64][]models.GmpHistoryPoint, error) {
	grouped := make(map[int64][]models.GmpHistoryPoint)
	if len(ipoIDs) == 0 {
		return grouped, nil
	}

	query := `SELECT id, ipo_id, gmp, observed_at FROM gmp_history
              WHERE ipo_id = ANY($1) ORDER BY ipo_id, observed_at ASC`

	rows, err := s.DB.QueryContext(ctx, query, pq.Array(ipoIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query GMP history: %w", err)
	}
	defer rows.Close()

	points, err := scanHistoryRows(rows)
	if err != nil {
		return nil, err
	}
	for _, p := range points {
		grouped[p.IPOID] = append(grouped[p.IPOID], p)
	}
	return grouped, nil
}

func scanHistoryRows(rows *sql.Rows) ([]models.GmpHistoryPoint, error) {
	var points []models.GmpHistoryPoint
	for rows.Next() {
		var p models.GmpHistoryPoint
		if err := rows.Scan(&p.ID, &p.IPOID, &p.GMP, &p.ObservedAt); err != nil {
			return nil, fmt.Errorf("failed to scan GMP history row: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating GMP history rows: %w", err)
	}
	return points, nil
}
