// Package env provides a structure for managing application-wide dependencies.
package env

import (
	"context"
	"log/slog"

	"recipeshare/internal/config"
	"recipeshare/internal/grants"
	"recipeshare/internal/log"
	"recipeshare/internal/recipe"
	"recipeshare/internal/store"
)

type Env struct {
	Logger *slog.Logger
	Store  store.RecipeStore
	Grants grants.Issuer
	Config config.Config
}

// Assets derives the asset location config the record mapper and upload
// grants share.
func (e *Env) Assets() recipe.AssetConfig {
	return recipe.AssetConfig{
		BaseURL:  e.Config.ObjectStore.PublicURL,
		ImageDir: e.Config.ObjectStore.ImageDir,
		ThumbDir: e.Config.ObjectStore.ThumbDir,
	}
}

// Null returns an Env with a discarding logger and no collaborators wired.
// Used in tests.
func Null() *Env {
	return &Env{
		Logger: log.NullLogger(),
	}
}

type envKeyType struct{}

var envKey envKeyType

// WithCtx injects the environment into a context.
func WithCtx(ctx context.Context, e *Env) context.Context {
	return context.WithValue(ctx, envKey, e)
}

// EnvFromCtx extracts the environment from a context, falling back to a
// null environment when none was injected.
func EnvFromCtx(ctx context.Context) *Env {
	if e, ok := ctx.Value(envKey).(*Env); ok && e != nil {
		return e
	}
	return Null()
}
