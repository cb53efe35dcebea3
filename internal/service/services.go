package service

import (
	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/crypto"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/store"
	"github.com/MKhiriev/go-vault-keeper/models"
)

type Services struct {
	VaultService     VaultService
	SecretService    SecretService
	FolderService    FolderService
	ShareService     ShareService
	AccessLogService AccessLogService
	ShareSweepJob    ShareSweepJob
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	keyChain := crypto.NewKeyChainService(models.KDFParams{
		Time:    cfg.App.KDF.Time,
		Memory:  cfg.App.KDF.Memory,
		Threads: cfg.App.KDF.Threads,
	})

	accessLog := NewAccessLogService(storages.AccessLogRepository, cfg.AccessLog, logger)
	shareService := NewShareService(storages, accessLog, keyChain, logger)
	secretService := NewSecretValidationService().Wrap(
		NewSecretService(storages, accessLog, keyChain, cfg.Secrets, logger),
	)

	return &Services{
		VaultService:     NewVaultService(storages.TxManager, storages.VaultRepository, accessLog, keyChain, logger),
		SecretService:    secretService,
		FolderService:    NewFolderService(storages, accessLog, cfg.Folders, logger),
		ShareService:     shareService,
		AccessLogService: accessLog,
		ShareSweepJob:    NewShareSweepJob(shareService, logger),
	}
}
