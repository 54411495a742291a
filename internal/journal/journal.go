package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"tradesim/internal/config"
	"tradesim/internal/order"
)

const schema = `
CREATE TABLE IF NOT EXISTS receipts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id TEXT NOT NULL,
    symbol TEXT NOT NULL,
    side TEXT NOT NULL,
    original_quantity REAL NOT NULL,
    executed_quantity REAL NOT NULL,
    executed_price REAL,
    submitted_at TEXT NOT NULL,
    status TEXT NOT NULL
);
`

// Journal 将订单回执写入 SQLite 流水表。默认使用内存库，
// 不承诺跨进程保留数据。
type Journal struct {
	db *sql.DB
}

// Open 根据配置初始化回执流水库。
func Open(cfg config.JournalConfig) (*Journal, error) {
	dsn := cfg.Path
	maxOpen := cfg.MaxOpenConns
	if cfg.InMemory {
		dsn = ":memory:"
		// 内存库在多连接下会各自持有独立数据库，必须收敛为单连接。
		maxOpen = 1
	} else {
		if err := ensureDir(filepath.Dir(cfg.Path)); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000&_foreign_keys=on", dsn))
	if err != nil {
		return nil, fmt.Errorf("打开 SQLite 数据库失败: %w", err)
	}

	conn.SetMaxOpenConns(maxOpen)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if !cfg.InMemory {
		if _, err := conn.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("设置 SQLite WAL 模式失败: %w", err)
		}
		if _, err := conn.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("设置 SQLite 同步级别失败: %w", err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("初始化回执流水表失败: %w", err)
	}

	return &Journal{db: conn}, nil
}

// Record 追加一条回执记录。
func (j *Journal) Record(r order.Receipt) error {
	price := sql.NullFloat64{}
	if r.ExecutedPrice != nil {
		price = sql.NullFloat64{Float64: *r.ExecutedPrice, Valid: true}
	}

	_, err := j.db.Exec(
		`INSERT INTO receipts (order_id, symbol, side, original_quantity, executed_quantity, executed_price, submitted_at, status)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.OrderID, r.Symbol, string(r.Side), r.OriginalQuantity, r.ExecutedQuantity, price, r.Timestamp, string(r.Status),
	)
	if err != nil {
		return fmt.Errorf("写入回执失败: %w", err)
	}
	return nil
}

// List 按写入顺序返回全部回执。
func (j *Journal) List() ([]order.Receipt, error) {
	rows, err := j.db.Query(
		`SELECT order_id, symbol, side, original_quantity, executed_quantity, executed_price, submitted_at, status
         FROM receipts ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("查询回执失败: %w", err)
	}
	defer rows.Close()

	var receipts []order.Receipt
	for rows.Next() {
		var (
			r     order.Receipt
			side  string
			state string
			price sql.NullFloat64
		)
		if err := rows.Scan(&r.OrderID, &r.Symbol, &side, &r.OriginalQuantity, &r.ExecutedQuantity, &price, &r.Timestamp, &state); err != nil {
			return nil, fmt.Errorf("读取回执记录失败: %w", err)
		}
		r.Side = order.Side(side)
		r.Status = order.Status(state)
		if price.Valid {
			p := price.Float64
			r.ExecutedPrice = &p
		}
		receipts = append(receipts, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历回执记录失败: %w", err)
	}

	return receipts, nil
}

// Close 关闭数据库连接。
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("创建目录 %q 失败: %w", path, err)
	}
	return nil
}
