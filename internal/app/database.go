package app

import (
	"context"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-club/internal/config"
	"github.com/riskibarqy/football-club/internal/infrastructure/repository/postgres"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

const (
	dbPingTimeout     = 5 * time.Second
	maxTracedQueryLen = 512
)

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", postgresDSN(cfg),
		otelsql.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("service.name", cfg.ServiceName),
		),
		otelsql.WithDBName(databaseName(cfg.DBURL)),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, crerr.Wrap(err, "open postgres")
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, crerr.Wrap(err, "ping postgres")
	}

	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		_ = db.Close()
		return nil, crerr.Wrap(err, "bootstrap seed data")
	}

	return db, nil
}

// postgresDSN tags URL-form connection strings with the service as
// application_name and, when configured, turns off binary results for
// prepared statements (needed behind pgbouncer). Parameters already present
// in the URL win. Keyword/value strings are returned unchanged.
func postgresDSN(cfg config.Config) string {
	parsed, err := url.Parse(strings.TrimSpace(cfg.DBURL))
	if err != nil || parsed.Scheme == "" {
		return cfg.DBURL
	}

	query := parsed.Query()
	changed := false
	setDefault := func(key, value string) {
		if value == "" || query.Has(key) {
			return
		}
		query.Set(key, value)
		changed = true
	}
	setDefault("application_name", cfg.ServiceName)
	if cfg.DBDisablePreparedBinary {
		setDefault("disable_prepared_binary_result", "yes")
	}
	if !changed {
		return cfg.DBURL
	}

	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// databaseName finds the database in either DSN form, or returns "".
func databaseName(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if parsed, err := url.Parse(dsn); err == nil && parsed.Scheme != "" {
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}

	for _, token := range strings.Fields(dsn) {
		if name, ok := strings.CutPrefix(token, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}

// traceQuery collapses whitespace so multi-line statements read as one span
// attribute, and cuts long ones on a rune boundary.
func traceQuery(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if len(query) <= maxTracedQueryLen {
		return query
	}

	cut := maxTracedQueryLen
	for cut > 0 && !utf8.RuneStart(query[cut]) {
		cut--
	}
	return query[:cut] + "..."
}
