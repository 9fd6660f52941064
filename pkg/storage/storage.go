// Package storage keeps archived documents in an Azure Blob Storage container.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"

	"github.com/JaimeStill/menucatch/pkg/lifecycle"
)

// MaxListCap is the largest page size a single List call may request.
const MaxListCap int32 = 5000

// BlobMeta describes a stored blob without its content.
type BlobMeta struct {
	Key           string    `json:"key"`
	ContentType   string    `json:"content_type"`
	ContentLength int64     `json:"content_length"`
	LastModified  time.Time `json:"last_modified"`
}

// BlobList is one page of blob metadata. NextMarker is empty on the last page.
type BlobList struct {
	Blobs      []BlobMeta `json:"blobs"`
	NextMarker string     `json:"next_marker,omitempty"`
}

// BlobResult is an open blob stream. The caller must close Body.
type BlobResult struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// System reads and writes blobs in a single container.
type System interface {
	// Start creates the container once the coordinator starts.
	Start(lc *lifecycle.Coordinator) error
	// Upload writes reader to key, replacing any existing blob.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Download opens the blob at key. Missing blobs return ErrNotFound.
	Download(ctx context.Context, key string) (*BlobResult, error)
	// Find returns the properties of the blob at key.
	Find(ctx context.Context, key string) (*BlobMeta, error)
	// List returns one page of up to maxResults blobs under prefix,
	// continuing from marker.
	List(ctx context.Context, prefix, marker string, maxResults int32) (*BlobList, error)
}

type blobStore struct {
	container *container.Client
	logger    *slog.Logger
}

// New builds a container client from the connection string. Nothing is
// sent to the account until Start or the first operation.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	client, err := container.NewClientFromConnectionString(cfg.ConnectionString, cfg.ContainerName, nil)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &blobStore{
		container: client,
		logger:    logger.With("system", "storage", "container", cfg.ContainerName),
	}, nil
}

// ParseMaxResults parses a max_results query value. Empty input yields
// fallback, values above MaxListCap are clamped, and non-positive or
// non-numeric input is an error.
func ParseMaxResults(s string, fallback int32) (int32, error) {
	if s == "" {
		return fallback, nil
	}

	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid max_results %q: %w", s, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("max_results must be positive: %d", n)
	}

	return min(int32(n), MaxListCap), nil
}

func (s *blobStore) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup(func() {
		_, err := s.container.Create(lc.Context(), nil)
		if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			s.logger.Error("container create failed", "error", err)
			return
		}
		s.logger.Info("storage container ready")
	})
	return nil
}

func (s *blobStore) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	_, err := s.container.NewBlockBlobClient(key).UploadStream(ctx, reader, &blockblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: to.Ptr(contentType)},
	})
	return translate(err, "upload", key)
}

func (s *blobStore) Download(ctx context.Context, key string) (*BlobResult, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	resp, err := s.container.NewBlobClient(key).DownloadStream(ctx, nil)
	if err != nil {
		return nil, translate(err, "download", key)
	}

	return &BlobResult{
		Body:          resp.Body,
		ContentType:   deref(resp.ContentType),
		ContentLength: deref(resp.ContentLength),
	}, nil
}

func (s *blobStore) Find(ctx context.Context, key string) (*BlobMeta, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	props, err := s.container.NewBlobClient(key).GetProperties(ctx, nil)
	if err != nil {
		return nil, translate(err, "find", key)
	}

	return &BlobMeta{
		Key:           key,
		ContentType:   deref(props.ContentType),
		ContentLength: deref(props.ContentLength),
		LastModified:  deref(props.LastModified),
	}, nil
}

func (s *blobStore) List(ctx context.Context, prefix, marker string, maxResults int32) (*BlobList, error) {
	if strings.Contains(prefix, "..") {
		return nil, ErrInvalidKey
	}

	opts := &container.ListBlobsFlatOptions{
		MaxResults: to.Ptr(min(max(maxResults, 1), MaxListCap)),
	}
	if prefix != "" {
		opts.Prefix = &prefix
	}
	if marker != "" {
		opts.Marker = &marker
	}

	page, err := s.container.NewListBlobsFlatPager(opts).NextPage(ctx)
	if err != nil {
		return nil, translate(err, "list", prefix)
	}

	list := &BlobList{
		Blobs:      []BlobMeta{},
		NextMarker: deref(page.NextMarker),
	}
	if page.Segment == nil {
		return list, nil
	}

	for _, item := range page.Segment.BlobItems {
		list.Blobs = append(list.Blobs, metaFromItem(item))
	}
	return list, nil
}

func metaFromItem(item *container.BlobItem) BlobMeta {
	meta := BlobMeta{Key: deref(item.Name)}
	if p := item.Properties; p != nil {
		meta.ContentType = deref(p.ContentType)
		meta.ContentLength = deref(p.ContentLength)
		meta.LastModified = deref(p.LastModified)
	}
	return meta
}

// translate maps a missing blob to ErrNotFound and wraps everything else
// with the operation and key.
func translate(err error, op, key string) error {
	switch {
	case err == nil:
		return nil
	case bloberror.HasCode(err, bloberror.BlobNotFound):
		return fmt.Errorf("%s %s: %w", op, key, ErrNotFound)
	default:
		return fmt.Errorf("%s blob %s: %w", op, key, err)
	}
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

func validateKey(key string) error {
	switch {
	case key == "":
		return ErrEmptyKey
	case strings.Contains(key, ".."):
		return ErrInvalidKey
	}
	return nil
}
