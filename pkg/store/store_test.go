package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	swaperrors "kubegems.io/swapimport/pkg/errors"
)

const (
	llamaDigest = "sha256:6a0746a1ec1aef3e7ec53868f220ff6e389f6f8ef87a01d77c96807de94ca2aa"
	qwenDigest  = "sha256:43070e2d4e532684de521b885f385d0841030efa2b1a20bafb76133a5e1379c1"
)

func writeManifest(t *testing.T, root, rel, layerDigest string) {
	t.Helper()
	content := `{"schemaVersion":2,"mediaType":"application/vnd.docker.distribution.manifest.v2+json",` +
		`"config":{"mediaType":"application/vnd.docker.container.image.v1+json","digest":"sha256:34bb5ab01051a11372a91f95f3fbbc51173eed8e7f13ec395b9ae9b8bd0e242b","size":561},` +
		`"layers":[{"mediaType":"application/vnd.ollama.image.model","digest":"` + layerDigest + `","size":4661211424},` +
		`{"mediaType":"application/vnd.ollama.image.license","digest":"sha256:4fa551d4f938f68b8c1e6afa9d28befb70e3f33f75d0753248d530364aeea40f","size":12403}]}`
	path := filepath.Join(root, ManifestsDirName, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeBlob(t *testing.T, root, d string) string {
	t.Helper()
	path := filepath.Join(root, BlobsDirName, "sha256-"+d[len("sha256:"):])
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("GGUF"), 0o644))
	return path
}

func TestModelName(t *testing.T) {
	tests := []struct {
		name    string
		rel     string
		want    string
		wantErr bool
	}{
		{name: "library", rel: "registry.ollama.ai/library/llama3/latest", want: "llama3:latest"},
		{name: "namespace", rel: "registry.ollama.ai/someone/mixtral/8x7b", want: "someone/mixtral:8x7b"},
		{name: "other host", rel: "hf.co/bartowski/Qwen2.5-GGUF/Q4_K_M", want: "hf.co/bartowski/Qwen2.5-GGUF:Q4_K_M"},
		{name: "too short", rel: "registry.ollama.ai/llama3/latest", wantErr: true},
		{name: "too long", rel: "a/b/c/d/e", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ModelName(tt.rel)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalStore_Scan(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "registry.ollama.ai/library/qwen2/7b", qwenDigest)
	writeManifest(t, root, "registry.ollama.ai/library/llama3/latest", llamaDigest)
	writeManifest(t, root, "registry.ollama.ai/library/phi3/mini", "sha256:0000000000000000000000000000000000000000000000000000000000000000")
	llamaBlob := writeBlob(t, root, llamaDigest)
	qwenBlob := writeBlob(t, root, qwenDigest)

	broken := filepath.Join(root, ManifestsDirName, "registry.ollama.ai", "library", "broken", "latest")
	require.NoError(t, os.MkdirAll(filepath.Dir(broken), 0o755))
	require.NoError(t, os.WriteFile(broken, []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ManifestsDirName, ".DS_Store"), nil, 0o644))

	models, scanErrs, err := NewLocalStore(root).Scan(context.Background())
	require.NoError(t, err)

	require.Len(t, scanErrs, 1)
	assert.True(t, swaperrors.IsErrCode(scanErrs[0], swaperrors.ErrCodeManifestInvalid))

	require.Len(t, models, 3)
	assert.Equal(t, "llama3:latest", models[0].Name)
	assert.Equal(t, llamaBlob, models[0].Path)
	assert.Equal(t, int64(4661211424), models[0].Size)
	assert.Equal(t, "phi3:mini", models[1].Name)
	assert.Empty(t, models[1].Path, "blob file is missing")
	assert.Equal(t, "qwen2:7b", models[2].Name)
	assert.Equal(t, qwenBlob, models[2].Path)
}

func TestLocalStore_ScanMissingStore(t *testing.T) {
	models, scanErrs, err := NewLocalStore(filepath.Join(t.TempDir(), "nope")).Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, models)
	require.Len(t, scanErrs, 1)
	assert.True(t, swaperrors.IsErrCode(scanErrs[0], swaperrors.ErrCodeStoreInvalid))
}

func TestLocalStore_ScanCancelled(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "registry.ollama.ai/library/llama3/latest", llamaDigest)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := NewLocalStore(root).Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalStore_BlobPath(t *testing.T) {
	s := NewLocalStore("/models")
	got, err := s.BlobPath(llamaDigest)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/models", "blobs", "sha256-"+llamaDigest[len("sha256:"):]), got)

	_, err = s.BlobPath("sha256:short")
	assert.True(t, swaperrors.IsErrCode(err, swaperrors.ErrCodeDigestInvalid))
}

func TestDefaultModelDir(t *testing.T) {
	t.Setenv(ModelsDirEnv, "/srv/ollama")
	assert.Equal(t, "/srv/ollama", DefaultModelDir())
}
