package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"vidhub/config"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newBufferedQueryLogger(cfg *config.Config) (*queryLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return newQueryLogger(base, cfg), &buf
}

func fixedQuery() (string, int64) {
	return `SELECT * FROM "users" WHERE email = 'a@b.c'`, 1
}

func TestQueryLogger_Trace(t *testing.T) {
	tests := []struct {
		name    string
		debug   bool
		elapsed time.Duration
		err     error
		want    string
	}{
		{name: "quiet success", elapsed: time.Millisecond},
		{name: "record not found is expected", err: gorm.ErrRecordNotFound},
		{name: "duplicate key is expected", err: &pgconn.PgError{Code: pgUniqueViolation}},
		{name: "other failure", err: &pgconn.PgError{Code: "42P01"}, want: "Query failed"},
		{name: "slow query", elapsed: time.Second, want: "Slow query"},
		{name: "debug logs every query", debug: true, elapsed: time.Millisecond, want: "msg=Query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Env.Debug = tt.debug
			l, buf := newBufferedQueryLogger(cfg)

			l.Trace(context.Background(), time.Now().Add(-tt.elapsed), fixedQuery, tt.err)

			if tt.want == "" {
				assert.Empty(t, buf.String())

				return
			}
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestQueryLogger_SlowThresholdFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.SlowQueryThreshold = 2 * time.Second
	l, buf := newBufferedQueryLogger(cfg)

	l.Trace(context.Background(), time.Now().Add(-time.Second), fixedQuery, nil)
	assert.Empty(t, buf.String())
}

func TestQueryLogger_ParamsFilter(t *testing.T) {
	quiet, _ := newBufferedQueryLogger(&config.Config{})
	sql, params := quiet.ParamsFilter(context.Background(), "SELECT $1", "secret")
	assert.Equal(t, "SELECT $1", sql)
	assert.Nil(t, params)

	debugCfg := &config.Config{}
	debugCfg.Env.Debug = true
	verbose, _ := newBufferedQueryLogger(debugCfg)
	_, params = verbose.ParamsFilter(context.Background(), "SELECT $1", "secret")
	assert.Equal(t, []any{"secret"}, params)
}

func TestQueryLogger_LogModeSilences(t *testing.T) {
	l, buf := newBufferedQueryLogger(&config.Config{})
	silent := l.LogMode(logger.Silent)

	silent.Trace(context.Background(), time.Now().Add(-time.Second), fixedQuery, &pgconn.PgError{Code: "42P01"})
	silent.Error(context.Background(), "boom %d", 1)
	assert.Empty(t, buf.String())
}
