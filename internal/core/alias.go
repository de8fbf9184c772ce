package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/edvin/edgeid/internal/model"
	"github.com/edvin/edgeid/internal/platform"
)

const (
	maskedConstraint = "domain_aliases_masked_uniq"
	realConstraint   = "domain_aliases_real_uniq"

	// maxMaskedRegenerations bounds retries after a masked-label collision.
	maxMaskedRegenerations = 5
)

// AliasService registers base/real/masked hostname triples and keeps the
// ssl_hosts setting in sync with newly minted aliases.
type AliasService struct {
	db       DB
	settings *SettingsService
}

func NewAliasService(db DB, settings *SettingsService) *AliasService {
	return &AliasService{db: db, settings: settings}
}

// Create normalizes and persists a new alias. When no masked label is given
// one is generated. A unique-constraint violation on the masked label is the
// authoritative collision signal and triggers regeneration; the row insert,
// not a prior read, decides.
func (s *AliasService) Create(ctx context.Context, baseDomain, subdomain, maskedSubdomain string) (*model.DomainAlias, error) {
	base := platform.NormalizeDomain(baseDomain)
	if base == "" {
		return nil, fmt.Errorf("%w: base domain must not be empty", ErrValidation)
	}
	sub := platform.NormalizeLabel(subdomain)

	masked := platform.NormalizeLabel(maskedSubdomain)
	if masked == "" {
		masked = platform.NewMaskedLabel(platform.DefaultMaskedLabelLength)
	}

	alias := &model.DomainAlias{
		BaseDomain: base,
		Subdomain:  sub,
	}

	regenerations := 0
	for {
		alias.ID = platform.NewID()
		alias.MaskedSubdomain = masked

		err := s.db.QueryRow(ctx,
			`INSERT INTO domain_aliases (id, base_domain, subdomain, masked_subdomain, created_at)
			 VALUES ($1, $2, $3, $4, now())
			 RETURNING created_at`,
			alias.ID, base, sub, masked,
		).Scan(&alias.CreatedAt)
		if err == nil {
			break
		}

		if violatesConstraint(err, realConstraint) {
			return nil, fmt.Errorf("%w: an alias for %s already exists", ErrValidation, platform.JoinHost(sub, base))
		}
		if violatesConstraint(err, maskedConstraint) {
			if regenerations >= maxMaskedRegenerations {
				return nil, fmt.Errorf("%w: could not generate a unique masked subdomain for %s", ErrAliasCollision, base)
			}
			regenerations++
			masked = platform.NewMaskedLabel(platform.DefaultMaskedLabelLength)
			continue
		}
		return nil, fmt.Errorf("insert domain alias: %w", err)
	}

	decorateAlias(alias)

	if err := s.propagateHosts(ctx, []string{alias.TargetHost, alias.MaskedHost}); err != nil {
		return nil, fmt.Errorf("propagate alias hosts: %w", err)
	}

	return alias, nil
}

// List returns all aliases, newest first, with derived host fields set.
func (s *AliasService) List(ctx context.Context) ([]model.DomainAlias, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, base_domain, subdomain, masked_subdomain, created_at
		 FROM domain_aliases ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list domain aliases: %w", err)
	}
	defer rows.Close()

	var aliases []model.DomainAlias
	for rows.Next() {
		var a model.DomainAlias
		if err := rows.Scan(&a.ID, &a.BaseDomain, &a.Subdomain, &a.MaskedSubdomain, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan domain alias: %w", err)
		}
		decorateAlias(&a)
		aliases = append(aliases, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate domain aliases: %w", err)
	}
	return aliases, nil
}

// Delete removes an alias. The ssl_hosts setting is left untouched; hosts
// registered elsewhere may still rely on the entries.
func (s *AliasService) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM domain_aliases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete domain alias %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: domain alias %s", ErrNotFound, id)
	}
	return nil
}

// propagateHosts merges hosts into the ssl_hosts setting, writing back only
// when the set actually grew.
func (s *AliasService) propagateHosts(ctx context.Context, hosts []string) error {
	current, err := s.settings.HostList(ctx)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(current))
	for _, host := range current {
		seen[strings.ToLower(host)] = true
	}

	changed := false
	for _, host := range hosts {
		host = strings.ToLower(strings.TrimSpace(host))
		if host == "" || seen[host] {
			continue
		}
		seen[host] = true
		changed = true
	}
	if !changed {
		return nil
	}

	merged := make([]string, 0, len(seen))
	for host := range seen {
		merged = append(merged, host)
	}
	sort.Strings(merged)

	return s.settings.Update(ctx, map[string]string{SettingSSLHosts: strings.Join(merged, ", ")})
}

func decorateAlias(a *model.DomainAlias) {
	a.TargetHost = platform.JoinHost(a.Subdomain, a.BaseDomain)
	a.MaskedHost = platform.JoinHost(a.MaskedSubdomain, a.BaseDomain)
	a.TargetURL = platform.HostURL(a.TargetHost)
	a.MaskedURL = platform.HostURL(a.MaskedHost)
}

func violatesConstraint(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}
