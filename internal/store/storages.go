package store

import (
	"github.com/pagesmith/pagesmith/internal/logger"
)

// Storages bundles every repository the service layer depends on.
type Storages struct {
	Pages      PageRepository
	Modules    ModuleRepository
	Categories CategoryRepository
	Users      UserRepository
	Config     ConfigRepository
}

// NewStorages wires all repositories to the shared database connection.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		Pages:      NewPageRepository(db, logger),
		Modules:    NewModuleRepository(db, logger),
		Categories: NewCategoryRepository(db, logger),
		Users:      NewUserRepository(db, logger),
		Config:     NewConfigRepository(db, logger),
	}
}
