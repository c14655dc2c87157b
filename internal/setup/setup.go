// Package setup is responsible for setting up components.
package setup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"recipeshare/internal/config"
	"recipeshare/internal/grants"
	mHttp "recipeshare/internal/http"
	"recipeshare/internal/store"
)

// Store creates the Postgres-backed recipe store and applies the schema if
// it is missing.
func Store(ctx context.Context, conf config.Config) (*store.Postgres, error) {
	dbString := fmt.Sprintf("postgresql://%s:%s@%s:%d/%s",
		conf.Database.User, conf.Database.Password,
		conf.Database.Host, conf.Database.Port, conf.Database.Database)

	pool, err := pgxpool.New(ctx, dbString)
	if err != nil {
		return nil, fmt.Errorf("creating database pool: %w", err)
	}

	st := store.NewPostgres(pool)
	if err := st.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("initializing store: %w", err)
	}

	return st, nil
}

// Grants creates the upload grant issuer and makes sure the bucket exists.
func Grants(ctx context.Context, conf config.Config, logger *slog.Logger) (*grants.S3Issuer, error) {
	creds := credentials.NewStaticV4(conf.ObjectStore.AccessKey, conf.ObjectStore.SecretKey, "")
	client, err := minio.New(conf.ObjectStore.Endpoint, &minio.Options{
		Creds:     creds,
		Secure:    conf.ObjectStore.UseSSL,
		Region:    conf.ObjectStore.Region,
		Transport: mHttp.New(mHttp.DefaultConfig()).Transport(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating object store client: %w", err)
	}

	exists, err := client.BucketExists(ctx, conf.ObjectStore.Bucket)
	if err != nil {
		return nil, fmt.Errorf("checking bucket %q: %w", conf.ObjectStore.Bucket, err)
	}
	if !exists {
		err := client.MakeBucket(ctx, conf.ObjectStore.Bucket,
			minio.MakeBucketOptions{Region: conf.ObjectStore.Region})
		if err != nil {
			return nil, fmt.Errorf("creating bucket %q: %w", conf.ObjectStore.Bucket, err)
		}
	}

	return grants.NewS3Issuer(client.EndpointURL(), conf.ObjectStore.Bucket,
		conf.ObjectStore.Region, creds, logger), nil
}
