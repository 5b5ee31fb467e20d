package cmd

import (
	"errors"
	"fmt"

	"teach-sync/core/config"
	"teach-sync/core/database"
	"teach-sync/core/logger"
	"teach-sync/core/storage"
	"teach-sync/feature/teach"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// session bundles what every command needs.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
}

// newSession loads configuration and builds the logger.
func newSession() (*session, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return &session{cfg: cfg, logger: l}, nil
}

// connect opens the database. With strict set a URI must resolve from the flag,
// config/uris.json or DATABASE_URI; otherwise the discrete database.* settings are used
// as a last resort.
func (s *session) connect(uriFlag string, strict bool) error {
	dbCfg := s.cfg.Database

	uri, err := config.ResolveURI(configPath, uriFlag, s.cfg)
	switch {
	case err == nil:
		dbCfg.URI = uri
	case errors.Is(err, config.ErrNoURI) && !strict:
		dbCfg.URI = ""
	default:
		return err
	}

	db, err := database.Connect(dbCfg)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

// storageClient returns the object storage client, or nil when it cannot be built.
// Only s3:// sources need it.
func (s *session) storageClient() storage.Client {
	client, err := storage.NewClient(s.cfg.Storage)
	if err != nil {
		s.logger.Warn("Object storage unavailable", zap.Error(err))
		return nil
	}
	return client
}

// service builds the teach service over the connected database.
func (s *session) service() *teach.Service {
	store := teach.NewStore(s.db, "", s.logger)
	return teach.NewService(store, s.storageClient(), s.cfg.Storage.Bucket, s.cfg.Teach, s.logger)
}

// close releases the database and flushes the logger.
func (s *session) close() {
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = s.logger.Sync()
}
