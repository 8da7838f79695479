// Package version resolves which implementation version serves each stage:
// classifier, per-document-type processors, entity aggregator, and rule engine.
// The two tables are loaded once at process start and read-only after.
package version

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/medclaims/claims-pipeline/constants"
	"github.com/medclaims/claims-pipeline/internal/common"
)

// GlobalConfig holds the process-wide defaults keyed by logical name.
type GlobalConfig struct {
	DocumentClassifierVersion string `yaml:"document_classifier_version"`
	NerExtractorVersion       string `yaml:"ner_extractor_version"`
	RuleEngine                string `yaml:"rule_engine"`
	DefaultDocumentVersion    string `yaml:"default_document_version"`
	OpenAIModel               string `yaml:"openai_model"`
	ExternalAPIVersion        string `yaml:"external_api_version"`
}

// DocumentConfig is the per-document-type override row.
type DocumentConfig struct {
	Version  string `yaml:"version"`
	Required bool   `yaml:"required"`
}

// Registry answers version and required-document lookups.
type Registry struct {
	global    GlobalConfig
	documents map[constants.DocumentType]DocumentConfig
}

// Load reads the two YAML tables and builds the registry.
func Load(globalPath, documentsPath string) (*Registry, error) {
	gb, err := os.ReadFile(globalPath)
	if err != nil {
		return nil, common.NewAppError("CONFIG_ERROR", "read global versions", common.ErrConfig)
	}
	var global GlobalConfig
	if err := yaml.Unmarshal(gb, &global); err != nil {
		return nil, common.NewAppError("CONFIG_ERROR", fmt.Sprintf("parse %s", globalPath), common.ErrConfig)
	}

	db, err := os.ReadFile(documentsPath)
	if err != nil {
		return nil, common.NewAppError("CONFIG_ERROR", "read document versions", common.ErrConfig)
	}
	raw := map[string]DocumentConfig{}
	if err := yaml.Unmarshal(db, &raw); err != nil {
		return nil, common.NewAppError("CONFIG_ERROR", fmt.Sprintf("parse %s", documentsPath), common.ErrConfig)
	}

	documents := make(map[constants.DocumentType]DocumentConfig, len(raw))
	for name, dc := range raw {
		if !constants.IsValidDocumentType(name) {
			return nil, common.NewAppError("CONFIG_ERROR",
				fmt.Sprintf("unknown document type %q in %s", name, documentsPath), common.ErrConfig)
		}
		documents[constants.DocumentType(name)] = dc
	}

	return NewRegistry(global, documents)
}

// NewRegistry builds a registry from already-parsed tables. Used directly by
// tests and local runs.
func NewRegistry(global GlobalConfig, documents map[constants.DocumentType]DocumentConfig) (*Registry, error) {
	if global.DocumentClassifierVersion == "" {
		return nil, common.NewAppError("CONFIG_ERROR", "document_classifier_version is required", common.ErrConfig)
	}
	if global.NerExtractorVersion == "" {
		return nil, common.NewAppError("CONFIG_ERROR", "ner_extractor_version is required", common.ErrConfig)
	}
	if global.RuleEngine == "" {
		return nil, common.NewAppError("CONFIG_ERROR", "rule_engine is required", common.ErrConfig)
	}
	if documents == nil {
		documents = map[constants.DocumentType]DocumentConfig{}
	}
	return &Registry{global: global, documents: documents}, nil
}

// ResolveVersion returns the active extraction version for a document type:
// the per-type override when present, else the global default. Fails closed
// when neither is configured.
func (r *Registry) ResolveVersion(dt constants.DocumentType) (string, error) {
	if dc, ok := r.documents[dt]; ok && dc.Version != "" {
		return dc.Version, nil
	}
	if r.global.DefaultDocumentVersion != "" {
		return r.global.DefaultDocumentVersion, nil
	}
	return "", common.NewAppError("CONFIG_ERROR",
		fmt.Sprintf("no version registered for document type %q and no default", dt), common.ErrConfig)
}

// IsRequired reports whether the registry marks a document type as required.
// Absence is deferred to the rule engine; only the aggregator's claim_form
// check is fatal.
func (r *Registry) IsRequired(dt constants.DocumentType) bool {
	return r.documents[dt].Required
}

func (r *Registry) ClassifierVersion() string { return r.global.DocumentClassifierVersion }
func (r *Registry) NerVersion() string        { return r.global.NerExtractorVersion }
func (r *Registry) RuleEngine() string        { return r.global.RuleEngine }
func (r *Registry) Model() string             { return r.global.OpenAIModel }
func (r *Registry) APIVersion() string        { return r.global.ExternalAPIVersion }
