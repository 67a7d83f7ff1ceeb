// Package storage keeps uploaded files in named buckets and hands out public
// URLs for them.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

const DeliverablesBucket = "deliverables"

// Store is the file storage port.
type Store interface {
	Put(ctx context.Context, bucket, objectPath string, data []byte) error
	PublicURL(bucket, objectPath string) string
	Remove(ctx context.Context, bucket string, objectPaths ...string) error
}

// LocalStore keeps objects under <root>/<bucket>/<path>.
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(root, baseURL string) *LocalStore {
	return &LocalStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStore) Put(ctx context.Context, bucket, objectPath string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return domain.Remote("", err)
	}
	full, err := s.resolve(bucket, objectPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return domain.Remote("", fmt.Errorf("creating bucket directory: %w", err))
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return domain.Remote("", fmt.Errorf("writing object %s/%s: %w", bucket, objectPath, err))
	}
	return nil
}

func (s *LocalStore) PublicURL(bucket, objectPath string) string {
	return s.baseURL + "/" + path.Join(bucket, cleanObjectPath(objectPath))
}

// Remove deletes the listed objects. Objects that do not exist are skipped.
func (s *LocalStore) Remove(ctx context.Context, bucket string, objectPaths ...string) error {
	if err := ctx.Err(); err != nil {
		return domain.Remote("", err)
	}
	var errs []error
	for _, p := range objectPaths {
		full, err := s.resolve(bucket, p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, domain.Remote("", fmt.Errorf("removing object %s/%s: %w", bucket, p, err)))
		}
	}
	return errors.Join(errs...)
}

// Exists reports whether the object is stored.
func (s *LocalStore) Exists(bucket, objectPath string) bool {
	full, err := s.resolve(bucket, objectPath)
	if err != nil {
		return false
	}
	_, err = os.Stat(full)
	return err == nil
}

// Read returns the stored object.
func (s *LocalStore) Read(bucket, objectPath string) ([]byte, error) {
	full, err := s.resolve(bucket, objectPath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.Missing("object " + bucket + "/" + objectPath)
	}
	if err != nil {
		return nil, domain.Remote("", err)
	}
	return data, nil
}

func (s *LocalStore) resolve(bucket, objectPath string) (string, error) {
	clean := cleanObjectPath(objectPath)
	if bucket == "" || strings.ContainsAny(bucket, `/\`) || bucket == "." || bucket == ".." {
		return "", domain.Invalid("bucket", "Bucket inválido")
	}
	if clean == "" || clean == "." || strings.HasPrefix(clean, "../") || clean == ".." {
		return "", domain.Invalid("path", "Ruta de archivo inválida")
	}
	return filepath.Join(s.root, bucket, filepath.FromSlash(clean)), nil
}

func cleanObjectPath(p string) string {
	return strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(p, `\`, "/")), "/")
}

// DeliverablePath is the object path of a deliverable's current file.
func DeliverablePath(deliverableID, fileName string) string {
	return deliverableID + "/" + path.Base(fileName)
}

// VersionPath is the object path of a file uploaded for a specific version.
func VersionPath(deliverableID, version, fileName string) string {
	return deliverableID + "/" + version + "/" + path.Base(fileName)
}
