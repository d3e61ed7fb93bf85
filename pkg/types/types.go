package types

import (
	"strings"

	"github.com/opencontainers/go-digest"
)

const (
	MediaTypeManifest        = "application/vnd.docker.distribution.manifest.v2+json"
	MediaTypeModelConfig     = "application/vnd.docker.container.image.v1+json"
	MediaTypeModel           = "application/vnd.ollama.image.model"
	MediaTypeModelProjector  = "application/vnd.ollama.image.projector"
	MediaTypeModelAdapter    = "application/vnd.ollama.image.adapter"
	MediaTypeModelTemplate   = "application/vnd.ollama.image.template"
	MediaTypeModelParams     = "application/vnd.ollama.image.params"
	MediaTypeModelSystem     = "application/vnd.ollama.image.system"
	MediaTypeModelLicense    = "application/vnd.ollama.image.license"
	MediaTypeModelMessages   = "application/vnd.ollama.image.messages"
	DefaultRegistryHost      = "registry.ollama.ai"
	DefaultRegistryNamespace = "library"
)

type Descriptor struct {
	MediaType   string            `json:"mediaType,omitempty"`
	Digest      digest.Digest     `json:"digest,omitempty"`
	Size        int64             `json:"size,omitempty"`
	From        string            `json:"from,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

// Manifest is the on-disk manifest of one model tag in the store.
type Manifest struct {
	SchemaVersion int          `json:"schemaVersion"`
	MediaType     string       `json:"mediaType,omitempty"`
	Config        Descriptor   `json:"config"`
	Layers        []Descriptor `json:"layers"`
}

// ModelLayer returns the primary weights layer, if any.
func (m Manifest) ModelLayer() (Descriptor, bool) {
	for _, layer := range m.Layers {
		if layer.MediaType == MediaTypeModel {
			return layer, true
		}
	}
	return Descriptor{}, false
}

// DiscoveredModel is one model found in the store. Path is empty when the
// primary artifact could not be resolved.
type DiscoveredModel struct {
	Name   string        `json:"name"`
	Path   string        `json:"path,omitempty"`
	Digest digest.Digest `json:"digest,omitempty"`
	Size   int64         `json:"size,omitempty"`
}

func SortDiscoveredName(a, b DiscoveredModel) bool {
	return strings.Compare(a.Name, b.Name) < 0
}
