package policy

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medclaims/claims-pipeline/constants"
	"github.com/medclaims/claims-pipeline/internal/common"
	"github.com/medclaims/claims-pipeline/internal/entity"
)

// Open creates the pgx pool for the policy store.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("policy.db.connecting")

	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("policy.db.parse_config_failed", "error", err)
		return nil, err
	}
	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "claims-pipeline"

	ctx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		logger.Error("policy.db.connect_failed", "error", err)
		return nil, err
	}

	logger.Info("policy.db.connected")
	return pool, nil
}

// HealthCheck pings the pool to catch DSN issues early.
func HealthCheck(ctx context.Context, pool *pgxpool.Pool, timeout time.Duration, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("policy.db.ping")
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return pool.Ping(ctx)
}

// PostgresStore serves policy lookups from the policies table.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresStore(pool *pgxpool.Pool, logger *slog.Logger) *PostgresStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStore{pool: pool, logger: logger}
}

func (s *PostgresStore) GetPolicy(ctx context.Context, policyNumber string) (entity.PolicyData, error) {
	const q = `
		SELECT policy_number, is_active, coverage_active,
		       excluded_diagnoses, claim_limit, required_documents
		  FROM policies
		 WHERE policy_number = $1`

	var (
		p            entity.PolicyData
		excluded     []string
		requiredDocs []string
	)
	err := s.pool.QueryRow(ctx, q, policyNumber).Scan(
		&p.PolicyNumber, &p.IsActive, &p.CoverageActive,
		&excluded, &p.ClaimLimit, &requiredDocs,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		s.logger.Warn("policy.lookup.not_found", "policy_number", policyNumber)
		return entity.PolicyData{}, common.NewAppError("POLICY_NOT_FOUND", policyNumber, common.ErrPolicyNotFound)
	}
	if err != nil {
		s.logger.Error("policy.lookup.failed", "policy_number", policyNumber, "error", err)
		return entity.PolicyData{}, common.WrapError(err, "query policy")
	}

	p.ExcludedDiagnoses = excluded
	if p.ExcludedDiagnoses == nil {
		p.ExcludedDiagnoses = []string{}
	}
	p.RequiredDocuments = toDocumentTypes(requiredDocs)
	return p, nil
}

func toDocumentTypes(names []string) []constants.DocumentType {
	out := make([]constants.DocumentType, 0, len(names))
	for _, n := range names {
		if constants.IsValidDocumentType(n) {
			out = append(out, constants.DocumentType(n))
		}
	}
	return out
}
