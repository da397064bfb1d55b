package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"medledger/internal/domain"
	id "medledger/pkg/domain"
	"medledger/pkg/platform/sentinel"
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so the
// same store code serves direct reads and transactional writes.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore is the durable implementation of Store. Counter rows live in
// the same database as the collections they coordinate, so a rolled-back
// transaction restores them exactly and failed calls never advance them.
type PostgresStore struct {
	q querier
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{q: pool}
}

func newTxStore(tx pgx.Tx) *PostgresStore {
	return &PostgresStore{q: tx}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *PostgresStore) GetPatient(ctx context.Context, pid id.Principal) (domain.Patient, error) {
	var p domain.Patient
	var registeredAt, totalConsents, activeConsents int64
	err := s.q.QueryRow(ctx, `
		SELECT id, name, registered_at, verified, total_consents, active_consents
		FROM patients WHERE id = $1
	`, pid.String()).Scan(&p.ID, &p.Name, &registeredAt, &p.Verified, &totalConsents, &activeConsents)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Patient{}, sentinel.ErrNotFound
	}
	if err != nil {
		return domain.Patient{}, fmt.Errorf("query patient: %w", err)
	}
	p.RegisteredAt = uint64(registeredAt)
	p.TotalConsents = uint64(totalConsents)
	p.ActiveConsents = uint64(activeConsents)
	return p, nil
}

func (s *PostgresStore) PutPatient(ctx context.Context, p domain.Patient) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO patients (id, name, registered_at, verified, total_consents, active_consents)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID.String(), p.Name, int64(p.RegisteredAt), p.Verified, int64(p.TotalConsents), int64(p.ActiveConsents))
	if isUniqueViolation(err) {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdatePatient(ctx context.Context, pid id.Principal, apply func(*domain.Patient)) error {
	p, err := s.GetPatient(ctx, pid)
	if err != nil {
		return err
	}
	apply(&p)
	tag, err := s.q.Exec(ctx, `
		UPDATE patients SET name = $2, verified = $3, total_consents = $4, active_consents = $5
		WHERE id = $1
	`, pid.String(), p.Name, p.Verified, int64(p.TotalConsents), int64(p.ActiveConsents))
	if err != nil {
		return fmt.Errorf("update patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) GetProvider(ctx context.Context, pid id.Principal) (domain.Provider, error) {
	var p domain.Provider
	var registeredAt, totalRequests int64
	err := s.q.QueryRow(ctx, `
		SELECT id, organization, specialization, license, verified, registered_at, total_data_requests
		FROM providers WHERE id = $1
	`, pid.String()).Scan(&p.ID, &p.Organization, &p.Specialization, &p.License, &p.Verified, &registeredAt, &totalRequests)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Provider{}, sentinel.ErrNotFound
	}
	if err != nil {
		return domain.Provider{}, fmt.Errorf("query provider: %w", err)
	}
	p.RegisteredAt = uint64(registeredAt)
	p.TotalDataRequests = uint64(totalRequests)
	return p, nil
}

func (s *PostgresStore) PutProvider(ctx context.Context, p domain.Provider) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO providers (id, organization, specialization, license, verified, registered_at, total_data_requests)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID.String(), p.Organization, p.Specialization, p.License, p.Verified, int64(p.RegisteredAt), int64(p.TotalDataRequests))
	if isUniqueViolation(err) {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert provider: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateProvider(ctx context.Context, pid id.Principal, apply func(*domain.Provider)) error {
	p, err := s.GetProvider(ctx, pid)
	if err != nil {
		return err
	}
	apply(&p)
	tag, err := s.q.Exec(ctx, `
		UPDATE providers SET organization = $2, specialization = $3, license = $4, verified = $5, total_data_requests = $6
		WHERE id = $1
	`, pid.String(), p.Organization, p.Specialization, p.License, p.Verified, int64(p.TotalDataRequests))
	if err != nil {
		return fmt.Errorf("update provider: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) GetConsent(ctx context.Context, cid id.ConsentID) (domain.ConsentGrant, error) {
	var g domain.ConsentGrant
	var gid, grantedAt, expiresAt int64
	var revokedAt *int64
	err := s.q.QueryRow(ctx, `
		SELECT id, patient_id, provider_id, data_categories, purpose, granted,
		       granted_at, expires_at, can_share_further, revoked, revoked_at
		FROM consents WHERE id = $1
	`, int64(cid)).Scan(&gid, &g.PatientID, &g.ProviderID, &g.DataCategories, &g.Purpose, &g.Granted,
		&grantedAt, &expiresAt, &g.CanShareFurther, &g.Revoked, &revokedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ConsentGrant{}, sentinel.ErrNotFound
	}
	if err != nil {
		return domain.ConsentGrant{}, fmt.Errorf("query consent: %w", err)
	}
	g.ID = id.ConsentID(gid)
	g.GrantedAt = uint64(grantedAt)
	g.ExpiresAt = uint64(expiresAt)
	if revokedAt != nil {
		tick := uint64(*revokedAt)
		g.RevokedAt = &tick
	}
	return g, nil
}

func (s *PostgresStore) PutConsent(ctx context.Context, g domain.ConsentGrant) error {
	var revokedAt *int64
	if g.RevokedAt != nil {
		tick := int64(*g.RevokedAt)
		revokedAt = &tick
	}
	_, err := s.q.Exec(ctx, `
		INSERT INTO consents (id, patient_id, provider_id, data_categories, purpose, granted,
		                      granted_at, expires_at, can_share_further, revoked, revoked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, int64(g.ID), g.PatientID.String(), g.ProviderID.String(), g.DataCategories, g.Purpose, g.Granted,
		int64(g.GrantedAt), int64(g.ExpiresAt), g.CanShareFurther, g.Revoked, revokedAt)
	if isUniqueViolation(err) {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert consent: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateConsent(ctx context.Context, cid id.ConsentID, apply func(*domain.ConsentGrant)) error {
	g, err := s.GetConsent(ctx, cid)
	if err != nil {
		return err
	}
	apply(&g)
	var revokedAt *int64
	if g.RevokedAt != nil {
		tick := int64(*g.RevokedAt)
		revokedAt = &tick
	}
	tag, err := s.q.Exec(ctx, `
		UPDATE consents SET revoked = $2, revoked_at = $3 WHERE id = $1
	`, int64(cid), g.Revoked, revokedAt)
	if err != nil {
		return fmt.Errorf("update consent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) NextConsentID(ctx context.Context) (id.ConsentID, error) {
	var allocated int64
	err := s.q.QueryRow(ctx, `
		UPDATE counters SET value = value + 1 WHERE name = 'next_consent_id'
		RETURNING value - 1
	`).Scan(&allocated)
	if err != nil {
		return 0, fmt.Errorf("allocate consent id: %w", err)
	}
	return id.ConsentID(allocated), nil
}

func (s *PostgresStore) AppendAudit(ctx context.Context, e domain.AuditEntry) (uint64, error) {
	var allocated int64
	err := s.q.QueryRow(ctx, `
		UPDATE counters SET value = value + 1 WHERE name = 'next_audit_id'
		RETURNING value - 1
	`).Scan(&allocated)
	if err != nil {
		return 0, fmt.Errorf("allocate audit id: %w", err)
	}
	_, err = s.q.Exec(ctx, `
		INSERT INTO audit_log (id, consent_id, accessed_by, tick, access_type, data_categories)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, allocated, int64(e.ConsentID), e.AccessedBy.String(), int64(e.Tick), e.AccessType, e.DataCategories)
	if err != nil {
		return 0, fmt.Errorf("insert audit entry: %w", err)
	}
	return uint64(allocated), nil
}

func (s *PostgresStore) ListAudit(ctx context.Context, afterID uint64, limit int) ([]domain.AuditEntry, error) {
	query := `
		SELECT id, consent_id, accessed_by, tick, access_type, data_categories
		FROM audit_log WHERE id > $1 ORDER BY id ASC
	`
	args := []any{int64(afterID)}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		var eid, cid, tick int64
		if err := rows.Scan(&eid, &cid, &e.AccessedBy, &tick, &e.AccessType, &e.DataCategories); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.ID = uint64(eid)
		e.ConsentID = id.ConsentID(cid)
		e.Tick = uint64(tick)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit log: %w", err)
	}
	return entries, nil
}

func (s *PostgresStore) Counters(ctx context.Context) (domain.Counters, error) {
	rows, err := s.q.Query(ctx, `SELECT name, value FROM counters`)
	if err != nil {
		return domain.Counters{}, fmt.Errorf("query counters: %w", err)
	}
	defer rows.Close()

	var c domain.Counters
	for rows.Next() {
		var name string
		var value int64
		if err := rows.Scan(&name, &value); err != nil {
			return domain.Counters{}, fmt.Errorf("scan counter: %w", err)
		}
		switch name {
		case "next_consent_id":
			c.NextConsentID = uint64(value)
		case "next_audit_id":
			c.NextAuditID = uint64(value)
		case "total_patients":
			c.TotalPatients = uint64(value)
		case "total_providers":
			c.TotalProviders = uint64(value)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.Counters{}, fmt.Errorf("iterate counters: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) IncTotalPatients(ctx context.Context) error {
	_, err := s.q.Exec(ctx, `UPDATE counters SET value = value + 1 WHERE name = 'total_patients'`)
	if err != nil {
		return fmt.Errorf("increment total patients: %w", err)
	}
	return nil
}

func (s *PostgresStore) IncTotalProviders(ctx context.Context) error {
	_, err := s.q.Exec(ctx, `UPDATE counters SET value = value + 1 WHERE name = 'total_providers'`)
	if err != nil {
		return fmt.Errorf("increment total providers: %w", err)
	}
	return nil
}
