// db/sqlite.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	logger "github.com/vapvarun/wc-subscription-protection/logging"
)

// CommerceDB is the read-only handle on the commerce extension's database.
var CommerceDB *sql.DB

func InitCommerceDB(ctx context.Context, dsn string) error {
	var err error
	CommerceDB, err = sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open commerce database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := CommerceDB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to connect to commerce database: %w", err)
	}

	logger.Info("Successfully opened commerce database")
	return nil
}

func CloseCommerceDB() {
	if CommerceDB == nil {
		return
	}
	if err := CommerceDB.Close(); err != nil {
		logger.Error("Error closing commerce database", zap.Error(err))
	}
}
