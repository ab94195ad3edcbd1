package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/element-cleaning/paystatement-backend-go/internal/config"
	"github.com/element-cleaning/paystatement-backend-go/internal/domain/contractor"
	"github.com/element-cleaning/paystatement-backend-go/internal/domain/statement"
	"github.com/element-cleaning/paystatement-backend-go/internal/domain/upload"
	"github.com/element-cleaning/paystatement-backend-go/internal/fixtures"
	appHTTP "github.com/element-cleaning/paystatement-backend-go/internal/handler/http"
	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/cron"
	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/database"
	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/gdrive"
	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/jwt"
	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/oauth"
	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/storage"
	"github.com/element-cleaning/paystatement-backend-go/internal/repository/local"
	"github.com/element-cleaning/paystatement-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/element-cleaning/paystatement-backend-go/internal/service/auth"
	contractorService "github.com/element-cleaning/paystatement-backend-go/internal/service/contractor"
	"github.com/element-cleaning/paystatement-backend-go/internal/service/export"
	"github.com/element-cleaning/paystatement-backend-go/internal/service/file"
	payperiodService "github.com/element-cleaning/paystatement-backend-go/internal/service/payperiod"
	statementService "github.com/element-cleaning/paystatement-backend-go/internal/service/statement"
)

const (
	logoMaxHeight      = 160
	draftIdleTimeout   = 24 * time.Hour
	draftSweepInterval = 15 * time.Minute
)

func main() {
	hashPassword := flag.String("hash-password", "", "print the bcrypt hash of the given password for ADMIN_PASSWORD_HASH and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := serviceAuth.HashPassword(*hashPassword)
		if err != nil {
			log.Fatal("Failed to hash password: ", err)
		}
		fmt.Println(hash)
		return
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.App.LogLevel)})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Calendar.Location()
	if err != nil {
		log.Fatal(err)
	}
	calendar, err := payperiodService.NewCalendar(cfg.Calendar.Anchor, cfg.Calendar.Horizon, loc)
	if err != nil {
		log.Fatal("Failed to generate pay periods: ", err)
	}

	var (
		contractorRepo contractor.ContractorRepository
		statementRepo  statement.StatementRepository
	)
	switch cfg.App.DataBackend {
	case config.BackendPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.DefaultPoolOptions)
		if err != nil {
			log.Fatal("Error connecting to database: ", err)
		}
		defer db.Close()

		if cfg.Database.ApplySchema {
			if err := postgresql.ApplySchema(ctx, db); err != nil {
				log.Fatal(err)
			}
			if _, err := postgresql.SeedContractors(ctx, db, fixtures.DefaultContractors()); err != nil {
				log.Fatal(err)
			}
		}
		contractorRepo = postgresql.NewContractorRepository(db)
		statementRepo = postgresql.NewStatementRepository(db)
	default:
		dataFiles, err := storage.NewLocalStorage(cfg.App.LocalDataDir, "")
		if err != nil {
			log.Fatal("Failed to initialize local data directory: ", err)
		}
		contractorRepo, err = local.NewContractorRepository(ctx, dataFiles, fixtures.DefaultContractors())
		if err != nil {
			log.Fatal("Failed to load contractors: ", err)
		}
		statementRepo, err = local.NewStatementRepository(ctx, dataFiles)
		if err != nil {
			log.Fatal("Failed to load saved statements: ", err)
		}
	}

	var (
		uploader upload.Uploader
		filesDir string
	)
	switch cfg.Drive.UploadBackend {
	case config.UploadGDrive:
		credentials, err := oauth.NewDriveCredentials(oauth.ServiceAccount{
			Email:       cfg.Drive.ServiceAccountEmail,
			PrivateKey:  cfg.Drive.PrivateKey,
			KeyFilePath: cfg.Drive.KeyFilePath,
		})
		if err != nil {
			log.Fatal("Failed to load Drive credentials: ", err)
		}
		uploader = gdrive.NewUploader(credentials, cfg.Drive.ParentFolderID, cfg.Drive.DriveID)
	default:
		uploadFiles, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
		uploader = storage.NewFolderUploader(uploadFiles)
		filesDir = cfg.Storage.BasePath
	}

	fileService := file.NewFileService(uploader)
	renderer := export.NewRenderer(loadLogo(fileService, cfg.Company.LogoPath))

	statementSvc := statementService.NewStatementService(calendar, contractorRepo, statementRepo, renderer, uploader, cfg.Company.Info())
	contractorSvc := contractorService.NewContractorService(contractorRepo)

	handlers := appHTTP.Handlers{
		PayPeriod:  appHTTP.NewPayPeriodHandler(calendar),
		Contractor: appHTTP.NewContractorHandler(contractorSvc),
		Statement:  appHTTP.NewStatementHandler(statementSvc),
		Drive:      appHTTP.NewDriveHandler(fileService),
	}
	routerCfg := appHTTP.RouterConfig{
		AppName:        cfg.App.Name,
		Version:        cfg.App.Version,
		Env:            cfg.App.Env,
		AllowedOrigins: cfg.App.AllowedOrigins,
		FilesDir:       filesDir,
	}

	if cfg.Auth.Enabled {
		JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
		if err != nil {
			log.Fatal("Invalid JWT expiration: ", err)
		}
		authService := serviceAuth.NewAuthService(cfg.Auth.AdminUsername, cfg.Auth.AdminPasswordHash, JWTService)
		handlers.Auth = appHTTP.NewAuthHandler(JWTService, authService)
		routerCfg.JWTService = JWTService
	}

	scheduler := cron.NewScheduler()
	scheduler.AddJob("expire-idle-drafts", draftSweepInterval, func(ctx context.Context) error {
		_, err := statementSvc.ExpireDrafts(ctx, draftIdleTimeout)
		return err
	})
	if routerCfg.JWTService != nil {
		jwtService := routerCfg.JWTService
		scheduler.AddJob("prune-revoked-tokens", time.Hour, func(ctx context.Context) error {
			if n := jwtService.PruneRevoked(); n > 0 {
				slog.Info("Pruned revoked refresh tokens", "count", n)
			}
			return nil
		})
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(routerCfg, handlers)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}()

	slog.Info("Server running",
		"addr", server.Addr,
		"data_backend", cfg.App.DataBackend,
		"upload_backend", cfg.Drive.UploadBackend,
		"auth_enabled", cfg.Auth.Enabled,
		"pay_periods", len(calendar.All()),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}

// loadLogo returns nil when no logo is configured or it cannot be read; statements
// then render without one.
func loadLogo(fileService file.FileService, path string) []byte {
	if path == "" {
		return nil
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		slog.Warn("Company logo not loaded", "path", path, "error", err)
		return nil
	}
	defer f.Close()

	logo, err := fileService.PrepareLogo(f, logoMaxHeight)
	if err != nil {
		slog.Warn("Company logo not loaded", "path", path, "error", err)
		return nil
	}
	return logo
}

func logLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
