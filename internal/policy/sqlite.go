package policy

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/medclaims/claims-pipeline/internal/common"
	"github.com/medclaims/claims-pipeline/internal/entity"
)

// SQLiteStore is a file-backed policy store for local runs. List columns are
// stored as JSON text.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (and if needed creates) a local policy database.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, common.WrapError(err, "open sqlite policy store")
	}
	s := &SQLiteStore{db: db, logger: logger}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) ensureSchema() error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS policies (
			policy_number      TEXT PRIMARY KEY,
			is_active          INTEGER NOT NULL DEFAULT 0,
			coverage_active    INTEGER NOT NULL DEFAULT 0,
			excluded_diagnoses TEXT NOT NULL DEFAULT '[]',
			claim_limit        REAL,
			required_documents TEXT NOT NULL DEFAULT '[]'
		)`
	_, err := s.db.Exec(ddl)
	return common.WrapError(err, "create policies table")
}

// SeedPolicy inserts or replaces one policy row. Used by the CLI to load
// fixtures before adjudicating locally.
func (s *SQLiteStore) SeedPolicy(ctx context.Context, p entity.PolicyData) error {
	excluded, err := json.Marshal(p.ExcludedDiagnoses)
	if err != nil {
		return common.WrapError(err, "encode excluded diagnoses")
	}
	required, err := json.Marshal(p.RequiredDocuments)
	if err != nil {
		return common.WrapError(err, "encode required documents")
	}
	const q = `
		INSERT OR REPLACE INTO policies
			(policy_number, is_active, coverage_active, excluded_diagnoses, claim_limit, required_documents)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, q,
		p.PolicyNumber, p.IsActive, p.CoverageActive, string(excluded), p.ClaimLimit, string(required))
	return common.WrapError(err, "seed policy")
}

func (s *SQLiteStore) GetPolicy(ctx context.Context, policyNumber string) (entity.PolicyData, error) {
	const q = `
		SELECT policy_number, is_active, coverage_active,
		       excluded_diagnoses, claim_limit, required_documents
		  FROM policies
		 WHERE policy_number = ?`

	var (
		p            entity.PolicyData
		excludedJSON string
		requiredJSON string
	)
	err := s.db.QueryRowContext(ctx, q, policyNumber).Scan(
		&p.PolicyNumber, &p.IsActive, &p.CoverageActive,
		&excludedJSON, &p.ClaimLimit, &requiredJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("policy.lookup.not_found", "policy_number", policyNumber)
		return entity.PolicyData{}, common.NewAppError("POLICY_NOT_FOUND", policyNumber, common.ErrPolicyNotFound)
	}
	if err != nil {
		return entity.PolicyData{}, common.WrapError(err, "query policy")
	}

	p.ExcludedDiagnoses = []string{}
	if err := json.Unmarshal([]byte(excludedJSON), &p.ExcludedDiagnoses); err != nil {
		return entity.PolicyData{}, common.WrapError(err, "decode excluded diagnoses")
	}
	var required []string
	if err := json.Unmarshal([]byte(requiredJSON), &required); err != nil {
		return entity.PolicyData{}, common.WrapError(err, "decode required documents")
	}
	p.RequiredDocuments = toDocumentTypes(required)
	return p, nil
}
