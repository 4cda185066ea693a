// Package kvstore is a durable string key/value store used for cart
// snapshots. Three drivers are available:
//
//   - "disk"  — one file per key under a root directory (default)
//   - "redis" — shared Redis instance, for multi-node deployments
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2)
//
// The cart store writes a snapshot on every mutation and reads it back at
// open, so drivers must make Set visible to an immediately following Get.
//
//	kv, _ := kvstore.Open()
//	_ = kv.Set("cart:42", payload)
//	payload, ok, _ := kv.Get("cart:42")
package kvstore

import (
	"fmt"

	"github.com/epicurean/epicurean/config"
)

// Store is the key/value driver interface.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)

	// Set writes value under key, overwriting any previous value.
	Set(key, value string) error

	// Delete removes key. Absent keys are not an error.
	Delete(key string) error
}

// Open builds the driver selected by CART_STORE.
func Open() (Store, error) {
	switch driver := config.CartStoreDriver(); driver {
	case "disk":
		return NewDiskStore(config.CartStoreRoot()), nil
	case "redis":
		return NewRedisStore()
	case "s3":
		return NewS3Store()
	default:
		return nil, fmt.Errorf("kvstore: unsupported CART_STORE %q (supported: disk, redis, s3)", driver)
	}
}
