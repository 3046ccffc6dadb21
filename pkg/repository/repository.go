// Package repository provides a small generic gorm store for entities whose
// persistence needs no hand-written SQL.
package repository

import "context"

type Repository[T any] interface {
	Find(ctx context.Context, query *T, order string) ([]*T, error)
	FindOne(ctx context.Context, query *T) (*T, error)
	Create(ctx context.Context, resource *T) error
	Save(ctx context.Context, resource *T) error
	Delete(ctx context.Context, resourceID string) error
}
