package audit

import (
	"context"

	"gorm.io/gorm"

	"github.com/pokecamp/backend/x/core"
)

// Repository is the interface for audit repository
type Repository interface {
	Insert(ctx context.Context, entry core.AuditLog) error
	ResolveUsername(ctx context.Context, id uint) (string, error)
	List(ctx context.Context, limit int) ([]core.AuditLog, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new audit repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// Insert appends one audit row. Rows are never updated or deleted.
func (r *repository) Insert(ctx context.Context, entry core.AuditLog) error {
	ctx, span := tracer.Start(ctx, "Audit.Repository.Insert")
	defer span.End()

	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// ResolveUsername looks up the current username for the snapshot column.
func (r *repository) ResolveUsername(ctx context.Context, id uint) (string, error) {
	ctx, span := tracer.Start(ctx, "Audit.Repository.ResolveUsername")
	defer span.End()

	var trainer core.Trainer
	if err := r.db.WithContext(ctx).Select("username").First(&trainer, id).Error; err != nil {
		span.RecordError(err)
		return "", err
	}
	return trainer.Username, nil
}

// List returns the most recent entries, newest first.
func (r *repository) List(ctx context.Context, limit int) ([]core.AuditLog, error) {
	ctx, span := tracer.Start(ctx, "Audit.Repository.List")
	defer span.End()

	var entries []core.AuditLog
	err := r.db.WithContext(ctx).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if entries == nil {
		entries = []core.AuditLog{}
	}
	return entries, nil
}
