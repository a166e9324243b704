package milvus

import (
	"errors"
	"time"
)

// Default schema and index parameters for the chunk collection.
const (
	DefaultCollection  = "chunkit_chunks"
	DefaultIDField     = "id"
	DefaultVectorField = "embedding"
	DefaultTextField   = "text"

	defaultIDMaxLength   = 64
	defaultTextMaxLength = 4096
	defaultShardNum      = 2
	defaultIndexNList    = 128
	defaultSearchNProbe  = 16
	defaultTimeout       = 30 * time.Second
)

// Config holds connection and schema configuration for the Milvus store.
type Config struct {
	// Address is the Milvus server address, e.g. "localhost:19530".
	Address string

	// Collection is the collection name. Default: "chunkit_chunks".
	Collection string

	// Dimension is the vector field's dimensionality. Required.
	Dimension int

	// IDField, VectorField, and TextField name the schema fields.
	IDField     string
	VectorField string
	TextField   string

	// IndexNList is the IVF_FLAT nlist parameter used by CreateIndex.
	IndexNList int

	// SearchNProbe is the IVF_FLAT nprobe parameter used by Search.
	SearchNProbe int

	// Timeout bounds individual SDK calls. Default: 30s.
	Timeout time.Duration
}

// applyDefaults fills zero-valued fields with defaults.
func (c *Config) applyDefaults() {
	if c.Collection == "" {
		c.Collection = DefaultCollection
	}
	if c.IDField == "" {
		c.IDField = DefaultIDField
	}
	if c.VectorField == "" {
		c.VectorField = DefaultVectorField
	}
	if c.TextField == "" {
		c.TextField = DefaultTextField
	}
	if c.IndexNList <= 0 {
		c.IndexNList = defaultIndexNList
	}
	if c.SearchNProbe <= 0 {
		c.SearchNProbe = defaultSearchNProbe
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// validate checks required fields after defaults are applied.
func (c *Config) validate() error {
	if c.Address == "" {
		return errors.New("milvus config: Address is required")
	}
	if c.Dimension <= 0 {
		return errors.New("milvus config: Dimension must be greater than 0")
	}
	return nil
}
