package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ogurasousui/timesheet-core/internal/adapters/repository/postgres"
	"github.com/ogurasousui/timesheet-core/internal/core/timesheet"
	"github.com/ogurasousui/timesheet-core/internal/platform/config"
	pg "github.com/ogurasousui/timesheet-core/internal/platform/db/postgres"
)

var configFlag string

// rootCmd は timesheetctl のエントリポイントです。
var rootCmd = &cobra.Command{
	Use:   "timesheetctl",
	Short: "Validate and persist store attendance grids",
	Long: `timesheetctl drives the attendance grid engine from the command line.

It validates grid files, classifies duplicate conflicts against persisted
grids and saves grids into the canonical (store, period) row.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute はシグナルで停止可能なコンテキストの下でルートコマンドを
// 実行します。
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(duplicatesCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(catalogCmd)
}

func loadConfig() (*config.Config, error) {
	// .env は任意。存在しない場合は無視します。
	_ = godotenv.Load()

	path := configFlag
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "assets/local.yaml"
	}
	return config.Load(path)
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

type engine struct {
	logger   *logrus.Logger
	service  *timesheet.Service
	catalogs *postgres.AbsenceTypeRepository
}

// newEngine は設定されたデータベースに対してスタック全体を組み立てます。
func newEngine(ctx context.Context) (*engine, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(cfg)

	pool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	tx := pg.NewTransactionManager(pool)
	gridRepo := postgres.NewGridRepository(pool)
	catalogRepo := postgres.NewAbsenceTypeRepository(pool)
	directoryRepo := postgres.NewDirectoryRepository(pool)

	service := timesheet.NewService(gridRepo, catalogRepo, directoryRepo, nil, tx)

	cleanup := func() {
		pool.Close()
	}
	return &engine{logger: logger, service: service, catalogs: catalogRepo}, cleanup, nil
}
