// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"postdesk/internal/storage"
)

// BackupPrefix is the object key prefix for uploaded snapshots.
const BackupPrefix = "backups/"

// LinkTTL is how long a backup download link stays valid.
const LinkTTL = 15 * time.Minute

// ErrBackupDisabled is returned when no object storage is configured.
var ErrBackupDisabled = errors.New("export: backup storage not configured")

// Uploader stores an object. storage.Client satisfies it.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
}

// Downloader reads a stored object. storage.Client satisfies it.
type Downloader interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

// Presigner issues temporary download links. storage.Client satisfies it.
type Presigner interface {
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// Pruner lists and removes stored objects. storage.Client satisfies it.
type Pruner interface {
	List(ctx context.Context, prefix string) ([]storage.Object, error)
	Delete(ctx context.Context, key string) error
}

// BackupKey returns the object key for a snapshot taken at t.
func BackupKey(t time.Time) string {
	return BackupPrefix + "postdesk-" + t.UTC().Format("20060102-150405") + ".json"
}

// Backup uploads snap as JSON and returns the object key.
func Backup(ctx context.Context, up Uploader, snap Snapshot) (string, error) {
	if up == nil {
		return "", ErrBackupDisabled
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, snap); err != nil {
		return "", err
	}

	key := BackupKey(snap.ExportedAt)
	if err := up.Upload(ctx, key, FormatJSON.ContentType(), bytes.NewReader(buf.Bytes()), int64(buf.Len())); err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}

	slog.Info("backup uploaded", "key", key, "bytes", buf.Len(),
		"posts", len(snap.Posts), "categories", len(snap.Categories))
	return key, nil
}

// Restore downloads the snapshot stored under key and decodes it.
func Restore(ctx context.Context, dl Downloader, key string) (Snapshot, error) {
	if dl == nil {
		return Snapshot{}, ErrBackupDisabled
	}
	data, err := dl.Download(ctx, key)
	if err != nil {
		return Snapshot{}, fmt.Errorf("restore: %w", err)
	}
	snap, err := ReadJSON(bytes.NewReader(data))
	if err != nil {
		return Snapshot{}, fmt.Errorf("restore %s: %w", key, err)
	}
	slog.Info("backup downloaded", "key", key, "bytes", len(data),
		"posts", len(snap.Posts), "categories", len(snap.Categories))
	return snap, nil
}

// Prune deletes all but the keep newest backups and returns the removed
// keys. A failed delete stops the prune and is returned with the keys
// removed so far.
func Prune(ctx context.Context, p Pruner, keep int) ([]string, error) {
	if p == nil {
		return nil, ErrBackupDisabled
	}
	if keep < 0 {
		return nil, fmt.Errorf("prune: keep must not be negative, got %d", keep)
	}

	objs, err := p.List(ctx, BackupPrefix)
	if err != nil {
		return nil, fmt.Errorf("prune: %w", err)
	}
	if len(objs) <= keep {
		return nil, nil
	}

	var removed []string
	for _, o := range objs[keep:] {
		if err := p.Delete(ctx, o.Key); err != nil {
			return removed, fmt.Errorf("prune: %w", err)
		}
		removed = append(removed, o.Key)
	}
	slog.Info("backups pruned", "removed", len(removed), "kept", keep)
	return removed, nil
}
