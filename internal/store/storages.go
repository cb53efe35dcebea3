package store

import "github.com/MKhiriev/go-vault-keeper/internal/logger"

// Storages bundles every repository over one database together with the
// transaction manager that spans them.
type Storages struct {
	TxManager           *TxManager
	VaultRepository     VaultRepository
	SecretRepository    SecretRepository
	FolderRepository    FolderRepository
	ShareRepository     ShareRepository
	AccessLogRepository AccessLogRepository
}

func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		TxManager:           NewTxManager(db),
		VaultRepository:     NewVaultRepository(db, log),
		SecretRepository:    NewSecretRepository(db, log),
		FolderRepository:    NewFolderRepository(db, log),
		ShareRepository:     NewShareRepository(db, log),
		AccessLogRepository: NewAccessLogRepository(db, log),
	}
}
