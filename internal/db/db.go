package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"feedbackhub/internal/app"
	myErr "feedbackhub/internal/types/errors"
	"feedbackhub/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Open открывает единственное на процесс соединение с БД.
// По умолчанию sqlite-файл, postgres подключается через dsn в конфиге.
func Open(c *app.Config) (*sql.DB, error) {
	switch c.CfgDB.Driver {
	case "sqlite":
		return sql.Open("sqlite", c.CfgDB.Path)
	case "postgres":
		return sql.Open("postgres", c.CfgDB.DSN)
	default:
		return nil, fmt.Errorf("unknown db driver: %q", c.CfgDB.Driver)
	}
}

// Gateway - миграция схемы и посев администратора.
// Init обязан отработать до старта сервера и ровно один раз.
type Gateway struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger

	seedEmail    string
	seedPassword string

	once    sync.Once
	initErr error
}

func NewGateway(db *sql.DB, logger *zap.SugaredLogger, seedEmail, seedPassword string) *Gateway {
	return &Gateway{
		DB:           db,
		Logger:       logger,
		seedEmail:    seedEmail,
		seedPassword: seedPassword,
	}
}

func (g *Gateway) Init(ctx context.Context) error {
	g.once.Do(func() {
		if err := g.migrate(ctx); err != nil {
			g.initErr = fmt.Errorf("migrate: %w", err)
			return
		}
		if err := g.seed(ctx); err != nil {
			g.initErr = fmt.Errorf("seed: %w", err)
			return
		}

		g.Logger.Info("Database connected and initialized")
	})

	return g.initErr
}

func (g *Gateway) migrate(ctx context.Context) error {
	_, err := g.DB.ExecContext(ctx, schema)

	return err
}

// seed создает администратора по умолчанию, если его еще нет.
// Выполняется на каждом старте, но вставка случается только один раз.
func (g *Gateway) seed(ctx context.Context) error {
	var id string
	err := g.DB.QueryRowContext(ctx, `SELECT id FROM users WHERE email = $1`, g.seedEmail).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(g.seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = g.DB.ExecContext(ctx, `
		INSERT INTO users (id, email, name, role, password_hash)
		VALUES ($1, $2, $3, $4, $5)`,
		uuid.New().String(), g.seedEmail, "Admin User", user.RoleAdmin, string(hash),
	)
	if err != nil {
		g.Logger.Error("Failed to seed admin user", zap.Error(err))
		return myErr.ErrDBInternal
	}

	g.Logger.Infof("Seeded admin user: %s", g.seedEmail)
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT UNIQUE NOT NULL,
    name TEXT NOT NULL,
    role TEXT NOT NULL,
    password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS feedback_forms (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    created_by TEXT NOT NULL REFERENCES users(id),
    created_at TIMESTAMP NOT NULL,
    is_active BOOLEAN NOT NULL,
    fields TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS feedbacks (
    id TEXT PRIMARY KEY,
    form_id TEXT NOT NULL REFERENCES feedback_forms(id),
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    message TEXT NOT NULL,
    rating INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL,
    responses TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_feedbacks_form_id ON feedbacks(form_id);
`
