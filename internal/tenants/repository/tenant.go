package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	tenanterrors "turnero/internal/tenants/errors"
	"turnero/pkg/config"
	"turnero/pkg/model"
)

const CollectionName = "tenants"

type TenantRepository interface {
	Create(ctx context.Context, t *model.Tenant) error
	FindByCode(ctx context.Context, code string) (*model.Tenant, error)
	ListActive(ctx context.Context) ([]*model.Tenant, error)
	ListActiveCodes(ctx context.Context) ([]string, error)
}

type mongoTenantRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoTenantRepository(cfg *config.Config) TenantRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabase)
	return &mongoTenantRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoTenantRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}
	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoTenantRepository) Create(ctx context.Context, t *model.Tenant) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	t.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, t); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", tenanterrors.ErrDuplicateCode, t.Code)
		}
		return fmt.Errorf("failed to create tenant: %w", err)
	}
	return nil
}

func (r *mongoTenantRepository) FindByCode(ctx context.Context, code string) (*model.Tenant, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var t model.Tenant
	err := r.collection.FindOne(ctx, bson.M{"_id": code}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", tenanterrors.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to find tenant: %w", err)
	}
	return &t, nil
}

func (r *mongoTenantRepository) ListActive(ctx context.Context) ([]*model.Tenant, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"active": true}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer cursor.Close(ctx)

	var tenants []*model.Tenant
	if err := cursor.All(ctx, &tenants); err != nil {
		return nil, fmt.Errorf("failed to decode tenants: %w", err)
	}
	return tenants, nil
}

func (r *mongoTenantRepository) ListActiveCodes(ctx context.Context) ([]string, error) {
	tenants, err := r.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(tenants))
	for _, t := range tenants {
		codes = append(codes, t.Code)
	}
	return codes, nil
}
