package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"cantrack/internal/domain"
	"cantrack/internal/repos"
	"cantrack/internal/storage"

	"github.com/google/uuid"
)

// ObjectStore is the remote image store consumed by the resolution chain.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	PublicURL(key string) string
}

// URLProber reports whether a public URL actually serves.
type URLProber interface {
	Reachable(ctx context.Context, url string) bool
}

// ImageService resolves and stores can images through an ordered chain of
// tiers: remote object storage first, then the local fallback cache. Each
// tier either returns a display URL or fails into the next; only the final
// tier's failure propagates to the caller.
type ImageService struct {
	Store  ObjectStore // nil when remote storage is not configured
	Images *repos.CanImageRepo
	Cache  *storage.LocalCache
	Probe  URLProber // nil skips the reachability check
}

func NewImageService(store ObjectStore, images *repos.CanImageRepo, cache *storage.LocalCache, probe URLProber) *ImageService {
	return &ImageService{Store: store, Images: images, Cache: cache, Probe: probe}
}

type imageUpload struct {
	userID   string
	canName  string
	series   string
	filename string
	data     []byte
}

// cacheKey namespaces local cache entries per user. The cache file is
// shared by the whole process, so without the prefix one user's fallback
// image would leak into every library showing the same can.
func cacheKey(userID, canName, series string) string {
	return userID + "/" + domain.CanKey(canName, series)
}

// SetImage stores an image for a (name, series) pair and returns the URL
// to display for it.
func (s *ImageService) SetImage(ctx context.Context, userID, canName, series, filename string, data []byte) (string, error) {
	up := imageUpload{userID: userID, canName: canName, series: series, filename: filename, data: data}
	tiers := []func(context.Context, imageUpload) (string, error){
		s.remoteTier,
		s.localTier,
	}
	var lastErr error
	for _, tier := range tiers {
		url, err := tier(ctx, up)
		if err == nil {
			return url, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// remoteTier uploads to object storage, verifies the public URL serves,
// then records the metadata row (best-effort) and warms the local cache.
func (s *ImageService) remoteTier(ctx context.Context, up imageUpload) (string, error) {
	if up.userID == "" {
		return "", ErrNotAuthenticated
	}
	if s.Store == nil {
		return "", errors.New("object storage not configured")
	}

	ext := strings.ToLower(filepath.Ext(up.filename))
	ct := mime.TypeByExtension(ext)
	if ct == "" {
		ct = http.DetectContentType(up.data)
	}
	key := fmt.Sprintf("%s/%s_%d%s", up.userID, domain.CanKey(up.canName, up.series), time.Now().UnixNano(), ext)

	if err := s.Store.Upload(ctx, key, up.data, ct); err != nil {
		return "", err
	}
	url := s.Store.PublicURL(key)
	if s.Probe != nil && !s.Probe.Reachable(ctx, url) {
		return "", fmt.Errorf("uploaded image unreachable at %s", url)
	}

	// Metadata row write is best-effort: the URL stands even if it fails.
	_ = s.Images.Upsert(domain.CanImage{
		ID:       uuid.NewString(),
		UserID:   up.userID,
		CanName:  up.canName,
		Series:   up.series,
		ImageURL: url,
	})
	// Write-through keeps the fallback store warm regardless.
	_ = s.Cache.Set(cacheKey(up.userID, up.canName, up.series), url)

	return url, nil
}

// localTier re-encodes the file as a self-contained data URL and stores it
// in the local cache. This is the terminal fallback; its failure is the
// only one callers ever see.
func (s *ImageService) localTier(_ context.Context, up imageUpload) (string, error) {
	if len(up.data) == 0 {
		return "", errors.New("empty image payload")
	}
	ct := http.DetectContentType(up.data)
	dataURL := "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(up.data)
	if err := s.Cache.Set(cacheKey(up.userID, up.canName, up.series), dataURL); err != nil {
		return "", err
	}
	return dataURL, nil
}

// Lookup returns the resolved image URL per can key. Remote metadata rows
// win over local cache entries for the same key; a failed remote fetch
// degrades to local-only rather than erroring.
func (s *ImageService) Lookup(userID string) map[string]string {
	out := map[string]string{}
	prefix := userID + "/"
	for k, v := range s.Cache.All() {
		if strings.HasPrefix(k, prefix) {
			out[strings.TrimPrefix(k, prefix)] = v
		}
	}
	if userID == "" {
		return out
	}
	rows, err := s.Images.ByUser(userID)
	if err != nil {
		return out
	}
	for _, img := range rows {
		out[domain.CanKey(img.CanName, img.Series)] = img.ImageURL
	}
	return out
}

// Remove deletes the remote metadata row best-effort, then always clears
// the local cache entry.
func (s *ImageService) Remove(userID, canName, series string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	_ = s.Images.Delete(userID, canName, series)
	return s.Cache.Delete(cacheKey(userID, canName, series))
}
