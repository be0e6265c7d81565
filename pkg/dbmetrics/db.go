package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/SMC-TableBookingService/pkg/metrics"
)

// DefaultPoolStatsInterval период сбора статистики connection pool
const DefaultPoolStatsInterval = 15 * time.Second

// DB обёртка над *sql.DB, которая собирает метрики запросов
// Если collector == nil, метрики не пишутся
type DB struct {
	db        *sql.DB
	collector *metrics.Metrics
	service   string
}

// Wrap оборачивает соединение без фонового сбора статистики pool
func Wrap(db *sql.DB, collector *metrics.Metrics, service string) *DB {
	return &DB{db: db, collector: collector, service: service}
}

// WrapWithDefault оборачивает соединение и запускает сбор статистики pool
// Сбор останавливается при закрытии stopCh
func WrapWithDefault(db *sql.DB, collector *metrics.Metrics, service string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, collector, service)
	if collector != nil {
		go wrapped.collectPoolStats(DefaultPoolStatsInterval, stopCh)
	}
	return wrapped
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe(query, start, err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(query, start, err)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe(query, start, row.Err())
	return row
}

// BeginTx начинает транзакцию, запросы внутри которой тоже попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, parent: d}, nil
}

// PingContext проверяет соединение с БД
func (d *DB) PingContext(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DB) observe(query string, start time.Time, err error) {
	if d.collector == nil {
		return
	}
	op := operationOf(query)
	d.collector.DBQueryDuration.WithLabelValues(d.service, op).Observe(time.Since(start).Seconds())
	if err != nil && err != sql.ErrNoRows {
		d.collector.DBQueryErrors.WithLabelValues(d.service, op).Inc()
	}
}

func (d *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.collector.DBOpenConnections.WithLabelValues(d.service).Set(float64(stats.OpenConnections))
			d.collector.DBInUseConnections.WithLabelValues(d.service).Set(float64(stats.InUse))
			d.collector.DBIdleConnections.WithLabelValues(d.service).Set(float64(stats.Idle))
			d.collector.DBWaitCount.WithLabelValues(d.service).Set(float64(stats.WaitCount))
		}
	}
}

// Tx транзакция с метриками
type Tx struct {
	tx     *sql.Tx
	parent *DB
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.parent.observe(query, start, err)
	return res, err
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.parent.observe(query, start, err)
	return rows, err
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.parent.observe(query, start, row.Err())
	return row
}

func (t *Tx) Commit() error {
	start := time.Now()
	err := t.tx.Commit()
	t.parent.observe("COMMIT", start, err)
	return err
}

func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

// operationOf возвращает тип запроса (select, insert, ...) для лейбла метрики
func operationOf(query string) string {
	q := strings.TrimSpace(query)
	if idx := strings.IndexAny(q, " \n\t"); idx > 0 {
		q = q[:idx]
	}
	switch op := strings.ToLower(q); op {
	case "select", "insert", "update", "delete", "commit":
		return op
	default:
		return "other"
	}
}
