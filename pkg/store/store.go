package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/opencontainers/go-digest"
	"golang.org/x/exp/slices"
	swaperrors "kubegems.io/swapimport/pkg/errors"
	"kubegems.io/swapimport/pkg/types"
)

const (
	ModelsDirEnv     = "OLLAMA_MODELS"
	ManifestsDirName = "manifests"
	BlobsDirName     = "blobs"
)

// DefaultModelDir returns $OLLAMA_MODELS, falling back to ~/.ollama/models.
func DefaultModelDir() string {
	if dir := os.Getenv(ModelsDirEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".ollama", "models")
	}
	return filepath.Join(home, ".ollama", "models")
}

type LocalStore struct {
	basepath string
}

func NewLocalStore(dir string) *LocalStore {
	if dir == "" {
		dir = DefaultModelDir()
	}
	return &LocalStore{basepath: dir}
}

func (s *LocalStore) Basepath() string {
	return s.basepath
}

func (s *LocalStore) ManifestsDir() string {
	return filepath.Join(s.basepath, ManifestsDirName)
}

func (s *LocalStore) BlobsDir() string {
	return filepath.Join(s.basepath, BlobsDirName)
}

// Check reports whether the store root has a manifests directory.
func (s *LocalStore) Check() error {
	fi, err := os.Stat(s.ManifestsDir())
	if err != nil {
		return swaperrors.NewStoreInvalidError(s.basepath, err)
	}
	if !fi.IsDir() {
		return swaperrors.NewStoreInvalidError(s.basepath, fmt.Errorf("%s is not a directory", s.ManifestsDir()))
	}
	return nil
}

// Scan walks every manifest in the store. Problems with individual manifests
// are returned as scan errors and never abort the walk; only a cancelled
// context is returned as err.
func (s *LocalStore) Scan(ctx context.Context) ([]types.DiscoveredModel, []error, error) {
	log := logr.FromContextOrDiscard(ctx)

	if err := s.Check(); err != nil {
		return []types.DiscoveredModel{}, []error{err}, nil
	}

	models := []types.DiscoveredModel{}
	scanErrs := []error{}
	root := s.ManifestsDir()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			scanErrs = append(scanErrs, swaperrors.NewManifestInvalidError(path, err))
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			scanErrs = append(scanErrs, swaperrors.NewManifestInvalidError(path, err))
			return nil
		}
		model, err := s.readModel(path, rel)
		if err != nil {
			scanErrs = append(scanErrs, err)
			return nil
		}
		if model.Path == "" {
			log.V(1).Info("no model blob resolved", "model", model.Name, "manifest", path)
		}
		models = append(models, model)
		return nil
	})
	if err != nil {
		return nil, scanErrs, err
	}
	slices.SortFunc(models, types.SortDiscoveredName)
	return models, scanErrs, nil
}

func (s *LocalStore) readModel(path, rel string) (types.DiscoveredModel, error) {
	name, err := ModelName(rel)
	if err != nil {
		return types.DiscoveredModel{}, swaperrors.NewManifestInvalidError(path, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return types.DiscoveredModel{}, swaperrors.NewManifestInvalidError(path, err)
	}
	defer f.Close()

	manifest := types.Manifest{}
	if err := json.NewDecoder(f).Decode(&manifest); err != nil {
		return types.DiscoveredModel{}, swaperrors.NewManifestInvalidError(path, err)
	}

	model := types.DiscoveredModel{Name: name}
	layer, ok := manifest.ModelLayer()
	if !ok {
		return model, nil
	}
	blob, err := s.BlobPath(layer.Digest)
	if err != nil {
		return types.DiscoveredModel{}, swaperrors.NewManifestInvalidError(path, err)
	}
	model.Digest = layer.Digest
	model.Size = layer.Size
	if fi, err := os.Stat(blob); err == nil && !fi.IsDir() {
		model.Path = blob
		if model.Size == 0 {
			model.Size = fi.Size()
		}
	}
	return model, nil
}

// BlobPath maps a layer digest to its file under blobs/, e.g.
// sha256:abc... -> blobs/sha256-abc...
func (s *LocalStore) BlobPath(d digest.Digest) (string, error) {
	if err := d.Validate(); err != nil {
		return "", swaperrors.NewDigestInvalidError(d.String())
	}
	return filepath.Join(s.BlobsDir(), d.Algorithm().String()+"-"+d.Encoded()), nil
}

// ModelName derives the model name from a manifest path relative to the
// manifests directory (host/namespace/model/tag).
func ModelName(rel string) (string, error) {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) != 4 {
		return "", fmt.Errorf("unexpected manifest path %q, want host/namespace/model/tag", rel)
	}
	for _, part := range parts {
		if part == "" {
			return "", fmt.Errorf("unexpected manifest path %q", rel)
		}
	}
	host, namespace, model, tag := parts[0], parts[1], parts[2], parts[3]
	switch {
	case host == types.DefaultRegistryHost && namespace == types.DefaultRegistryNamespace:
		return model + ":" + tag, nil
	case host == types.DefaultRegistryHost:
		return namespace + "/" + model + ":" + tag, nil
	default:
		return host + "/" + namespace + "/" + model + ":" + tag, nil
	}
}
