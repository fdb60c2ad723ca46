package service

import (
	"context"

	"github.com/pagesmith/pagesmith/models"
)

// PageService exposes page CRUD plus the two read paths that join pages
// with their modules: the JSON join endpoint and the display-route
// resolution into a render-ready view.
type PageService interface {
	Create(ctx context.Context, page models.MutPage) error
	GetByID(ctx context.Context, id int64) (models.Page, error)
	List(ctx context.Context) ([]models.Page, error)
	Update(ctx context.Context, id int64, page models.MutPage) error
	Delete(ctx context.Context, id int64) error

	GetWithModules(ctx context.Context, id int64) (models.PageWithModules, error)
	ResolveByURL(ctx context.Context, urlPath string) (models.PageView, error)
}

type ModuleService interface {
	Create(ctx context.Context, module models.MutModule) error
	GetByID(ctx context.Context, id int64) (models.Module, error)
	List(ctx context.Context) ([]models.Module, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]models.Module, error)
	Update(ctx context.Context, id int64, module models.MutModule) error
	Delete(ctx context.Context, id int64) error
}

type CategoryService interface {
	Create(ctx context.Context, category models.MutCategory) error
	GetByID(ctx context.Context, id int64) (models.ModuleCategory, error)
	Update(ctx context.Context, id int64, category models.MutCategory) error
	Delete(ctx context.Context, id int64) error
}

// AuthService owns the account and session lifecycle: registration,
// login (including the bootstrap root claim), logout, token issuing and
// request authentication.
type AuthService interface {
	Register(ctx context.Context, user models.MutUser) (models.User, error)

	// Login verifies credentials and issues a fresh session token. The
	// claimed flag reports that the bootstrap root account was taken
	// over by this login.
	Login(ctx context.Context, user models.MutUser) (token models.Token, claimed bool, err error)
	Logout(ctx context.Context, username string) error

	// Authenticate validates a raw token string and returns the account
	// it belongs to. The token must verify as a JWT and must equal,
	// byte for byte, the token currently stored for the user.
	Authenticate(ctx context.Context, tokenString string) (models.User, error)

	GetUser(ctx context.Context, id int64) (models.User, error)

	// UpdateUser overwrites the credentials of the account with the given
	// id. Only the account owner may update it; a fresh token is issued
	// and stored so older sessions are invalidated.
	UpdateUser(ctx context.Context, id int64, actor string, user models.MutUser) (models.Token, error)
	DeleteUser(ctx context.Context, id int64) error
}

// ConfigService exposes the database-backed key/value configuration.
type ConfigService interface {
	Get(ctx context.Context, key string) (models.ConfigEntry, error)
	List(ctx context.Context) ([]models.ConfigEntry, error)
	Put(ctx context.Context, entry models.ConfigEntry) error
	Delete(ctx context.Context, key string) error
}
