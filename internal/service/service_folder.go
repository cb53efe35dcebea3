package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/store"
	"github.com/MKhiriev/go-vault-keeper/internal/utils"
	"github.com/MKhiriev/go-vault-keeper/internal/validators"
	"github.com/MKhiriev/go-vault-keeper/models"
)

type folderService struct {
	txManager        *store.TxManager
	vaultRepository  store.VaultRepository
	folderRepository store.FolderRepository
	secretRepository store.SecretRepository
	shareRepository  store.ShareRepository
	accessLog        AccessLogService
	validator        validators.Validator
	ids              *utils.UUIDGenerator
	defaultStrategy  models.FolderDeleteStrategy
	now              func() time.Time

	logger *logger.Logger
}

// NewFolderService constructs a [FolderService]. cfg.DeleteStrategy is
// used when Delete is called without a strategy; an unknown value falls
// back to cascade.
func NewFolderService(storages *store.Storages, accessLog AccessLogService, cfg config.Folders, logger *logger.Logger) FolderService {
	strategy := models.FolderDeleteStrategy(cfg.DeleteStrategy)
	if !strategy.IsValid() {
		strategy = models.DeleteCascade
	}

	return &folderService{
		txManager:        storages.TxManager,
		vaultRepository:  storages.VaultRepository,
		folderRepository: storages.FolderRepository,
		secretRepository: storages.SecretRepository,
		shareRepository:  storages.ShareRepository,
		accessLog:        accessLog,
		validator:        validators.NewSecretValidator(),
		ids:              utils.NewUUIDGenerator(),
		defaultStrategy:  strategy,
		now:              time.Now,
		logger:           logger,
	}
}

// Create adds a folder to the session's vault, under parentID when set.
// Returns ErrInvalidParent when parentID is missing or belongs to another
// vault.
func (f *folderService) Create(ctx context.Context, session *Session, name string, parentID, icon *string) (models.Folder, error) {
	if err := session.check(); err != nil {
		return models.Folder{}, err
	}

	now := f.now().UTC()
	folder := models.Folder{
		ID:        f.ids.Generate(),
		VaultID:   session.VaultID(),
		ParentID:  parentID,
		Name:      strings.TrimSpace(name),
		Icon:      icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := f.validator.Validate(ctx, folder); err != nil {
		return models.Folder{}, mapValidationError(err)
	}

	err := f.txManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := f.lockVault(ctx, session); err != nil {
			return err
		}
		if parentID != nil {
			if _, err := f.ownedFolder(ctx, session, *parentID, ErrInvalidParent); err != nil {
				return err
			}
		}
		if err := f.folderRepository.Create(ctx, folder); err != nil {
			return mapStoreError(err)
		}
		return f.accessLog.Record(ctx, folderEntry(session, folder.ID, models.ActionCreate))
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "folderService.Create").
			Str("vault_id", folder.VaultID).
			Msg("folder creation failed")
		return models.Folder{}, err
	}

	return folder, nil
}

// Rename replaces the name and icon of a folder. Folders of other vaults
// are ErrNotFound.
func (f *folderService) Rename(ctx context.Context, session *Session, folderID, name string, icon *string) (models.Folder, error) {
	if err := session.check(); err != nil {
		return models.Folder{}, err
	}
	name = strings.TrimSpace(name)
	if err := f.validator.Validate(ctx, models.Folder{Name: name}, validators.FieldName); err != nil {
		return models.Folder{}, mapValidationError(err)
	}

	var folder models.Folder
	err := f.txManager.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		folder, err = f.ownedFolder(ctx, session, folderID, ErrNotFound)
		if err != nil {
			return err
		}
		folder.Name = name
		folder.Icon = icon
		folder.UpdatedAt = f.now().UTC()
		if err := f.folderRepository.Update(ctx, folder); err != nil {
			return mapStoreError(err)
		}

		entry := folderEntry(session, folder.ID, models.ActionUpdate)
		entry.Details["fields"] = []string{"name", "icon"}
		return f.accessLog.Record(ctx, entry)
	})
	if err != nil {
		return models.Folder{}, err
	}

	return folder, nil
}

// Move re-parents folderID under newParentID. Moving a folder under itself
// or one of its descendants is ErrCycleDetected and leaves the tree as is.
func (f *folderService) Move(ctx context.Context, session *Session, folderID string, newParentID *string) (models.Folder, error) {
	if err := session.check(); err != nil {
		return models.Folder{}, err
	}

	var folder models.Folder
	err := f.txManager.RunInTx(ctx, func(ctx context.Context) error {
		// the cycle check below reads the whole tree; concurrent moves in
		// the same vault must not interleave with it
		if err := f.lockVault(ctx, session); err != nil {
			return err
		}

		var err error
		folder, err = f.ownedFolder(ctx, session, folderID, ErrNotFound)
		if err != nil {
			return err
		}

		if newParentID != nil {
			folders, err := f.folderRepository.ListByVault(ctx, session.VaultID())
			if err != nil {
				return mapStoreError(err)
			}
			byID := indexFolders(folders)
			if _, ok := byID[*newParentID]; !ok {
				return ErrInvalidParent
			}
			if err := checkCycle(byID, folderID, *newParentID); err != nil {
				return err
			}
		}

		folder.ParentID = newParentID
		folder.UpdatedAt = f.now().UTC()
		if err := f.folderRepository.Update(ctx, folder); err != nil {
			return mapStoreError(err)
		}

		entry := folderEntry(session, folder.ID, models.ActionUpdate)
		entry.Details["fields"] = []string{"parent"}
		return f.accessLog.Record(ctx, entry)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "folderService.Move").
			Str("folder_id", folderID).
			Msg("folder move failed")
		return models.Folder{}, err
	}

	return folder, nil
}

// Delete removes folderID with the given strategy in one transaction.
func (f *folderService) Delete(ctx context.Context, session *Session, folderID string, strategy models.FolderDeleteStrategy) error {
	if err := session.check(); err != nil {
		return err
	}
	if strategy == "" {
		strategy = f.defaultStrategy
	}
	if !strategy.IsValid() {
		return ErrInvalidDataProvided
	}

	err := f.txManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := f.lockVault(ctx, session); err != nil {
			return err
		}

		folder, err := f.ownedFolder(ctx, session, folderID, ErrNotFound)
		if err != nil {
			return err
		}

		entry := folderEntry(session, folder.ID, models.ActionDelete)
		entry.Details["strategy"] = string(strategy)

		switch strategy {
		case models.DeleteReparent:
			err = f.deleteReparent(ctx, folder)
		default:
			var secrets int
			secrets, err = f.deleteCascade(ctx, session, folder)
			entry.Details["deleted_secrets"] = secrets
		}
		if err != nil {
			return err
		}

		return f.accessLog.Record(ctx, entry)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "folderService.Delete").
			Str("folder_id", folderID).
			Str("strategy", string(strategy)).
			Msg("folder deletion failed")
	}
	return err
}

// deleteCascade removes folder, every descendant folder and all their
// secrets. It returns the number of deleted secrets.
func (f *folderService) deleteCascade(ctx context.Context, session *Session, folder models.Folder) (int, error) {
	folders, err := f.folderRepository.ListByVault(ctx, folder.VaultID)
	if err != nil {
		return 0, mapStoreError(err)
	}

	// breadth-first: parents precede children
	order := descendants(folders, folder.ID)

	secrets, err := f.secretRepository.ListByFolders(ctx, folder.VaultID, order)
	if err != nil {
		return 0, mapStoreError(err)
	}
	now := f.now().UTC()
	for _, secret := range secrets {
		if err := deleteSecret(ctx, f.secretRepository, f.shareRepository, f.accessLog, session, secret, now); err != nil {
			return 0, err
		}
	}

	childFirst := make([]string, len(order))
	for i, id := range order {
		childFirst[len(order)-1-i] = id
	}
	if err := f.folderRepository.Delete(ctx, folder.VaultID, childFirst); err != nil {
		return 0, mapStoreError(err)
	}

	return len(secrets), nil
}

func (f *folderService) deleteReparent(ctx context.Context, folder models.Folder) error {
	now := f.now().UTC()
	if err := f.folderRepository.ReparentChildren(ctx, folder.VaultID, folder.ID, now); err != nil {
		return mapStoreError(err)
	}
	if err := f.secretRepository.MoveFolderToRoot(ctx, folder.VaultID, folder.ID, now); err != nil {
		return mapStoreError(err)
	}
	return mapStoreError(f.folderRepository.Delete(ctx, folder.VaultID, []string{folder.ID}))
}

// ResolvePath returns the folder names from the root down to folderID.
func (f *folderService) ResolvePath(ctx context.Context, session *Session, folderID string) ([]string, error) {
	if err := session.check(); err != nil {
		return nil, err
	}

	folders, err := f.folderRepository.ListByVault(ctx, session.VaultID())
	if err != nil {
		return nil, mapStoreError(err)
	}
	byID := indexFolders(folders)
	if _, ok := byID[folderID]; !ok {
		return nil, ErrNotFound
	}

	path := make([]string, 0, 4)
	visited := make(map[string]struct{}, 4)
	for id := &folderID; id != nil; {
		if _, ok := visited[*id]; ok {
			return nil, ErrCycleDetected
		}
		visited[*id] = struct{}{}

		folder, ok := byID[*id]
		if !ok {
			break
		}
		path = append(path, folder.Name)
		id = folder.ParentID
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// Tree lists every folder of the vault with the number of secrets it
// directly contains.
func (f *folderService) Tree(ctx context.Context, session *Session) ([]models.FolderNode, error) {
	if err := session.check(); err != nil {
		return nil, err
	}

	folders, err := f.folderRepository.ListByVault(ctx, session.VaultID())
	if err != nil {
		return nil, mapStoreError(err)
	}
	counts, err := f.secretRepository.CountByFolder(ctx, session.VaultID())
	if err != nil {
		return nil, mapStoreError(err)
	}

	nodes := make([]models.FolderNode, 0, len(folders))
	for _, folder := range folders {
		nodes = append(nodes, models.FolderNode{Folder: folder, SecretCount: counts[folder.ID]})
	}
	return nodes, nil
}

// lockVault serialises structural changes to the session's folder tree.
func (f *folderService) lockVault(ctx context.Context, session *Session) error {
	return mapStoreError(f.vaultRepository.LockForUpdate(ctx, session.VaultID()))
}

// ownedFolder loads folderID from the session's vault. Folders of other
// vaults are reported as notFound.
func (f *folderService) ownedFolder(ctx context.Context, session *Session, folderID string, notFound error) (models.Folder, error) {
	folder, err := f.folderRepository.GetByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Folder{}, notFound
		}
		return models.Folder{}, mapStoreError(err)
	}
	if folder.VaultID != session.VaultID() {
		return models.Folder{}, notFound
	}
	return folder, nil
}

func indexFolders(folders []models.Folder) map[string]models.Folder {
	byID := make(map[string]models.Folder, len(folders))
	for _, folder := range folders {
		byID[folder.ID] = folder
	}
	return byID
}

// checkCycle walks the ancestors of parentID and fails if folderID is among
// them or is parentID itself.
func checkCycle(byID map[string]models.Folder, folderID, parentID string) error {
	visited := make(map[string]struct{}, len(byID))
	for id := &parentID; id != nil; {
		if *id == folderID {
			return ErrCycleDetected
		}
		if _, ok := visited[*id]; ok {
			return ErrCycleDetected
		}
		visited[*id] = struct{}{}

		parent, ok := byID[*id]
		if !ok {
			return nil
		}
		id = parent.ParentID
	}
	return nil
}

// descendants returns rootID followed by all of its descendants in
// breadth-first order.
func descendants(folders []models.Folder, rootID string) []string {
	children := make(map[string][]string, len(folders))
	for _, folder := range folders {
		if folder.ParentID != nil {
			children[*folder.ParentID] = append(children[*folder.ParentID], folder.ID)
		}
	}

	order := []string{rootID}
	seen := map[string]struct{}{rootID: {}}
	for i := 0; i < len(order); i++ {
		for _, child := range children[order[i]] {
			if _, ok := seen[child]; ok {
				continue
			}
			seen[child] = struct{}{}
			order = append(order, child)
		}
	}
	return order
}

func folderEntry(session *Session, folderID string, action models.AccessAction) models.AccessLogEntry {
	entry := entryFor(session.Actor(), session.VaultID(), models.ResourceFolder, action)
	entry.Details = map[string]any{"folder_id": folderID}
	return entry
}
