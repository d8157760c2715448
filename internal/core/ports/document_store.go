// Package ports declares what the application core needs from the outside:
// the remote document store, local persistence, event publishing and the
// notification side effects of the polling observer.
package ports

import (
	"context"
)

// DocumentStore is the remote hierarchical JSON store. Paths are absolute and
// carry no ".json" suffix.
//
// Get decodes the subtree at path into dst and returns an error wrapping
// errs.ErrObjectNotFound when nothing is stored there. Failed calls return an
// *errs.RemoteCallError.
type DocumentStore interface {
	Get(ctx context.Context, path string, dst any) error
	Put(ctx context.Context, path string, body any) error
	Patch(ctx context.Context, path string, fields any) error
	Delete(ctx context.Context, path string) error

	// GetETag is Get that also returns the entity tag of the current value.
	// found is false for an absent value, which still has a tag.
	GetETag(ctx context.Context, path string, dst any) (etag string, found bool, err error)

	// PutIfMatch writes body only if the value at path still has etag.
	// A stale tag yields an error wrapping errs.ErrPreconditionFailed.
	PutIfMatch(ctx context.Context, path, etag string, body any) error
}
