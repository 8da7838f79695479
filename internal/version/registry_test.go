package version

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medclaims/claims-pipeline/constants"
	"github.com/medclaims/claims-pipeline/internal/common"
)

func testGlobal() GlobalConfig {
	return GlobalConfig{
		DocumentClassifierVersion: "v1",
		NerExtractorVersion:       "v1",
		RuleEngine:                "rules_2025_q4_v1",
		DefaultDocumentVersion:    "v1",
	}
}

func TestResolveVersion(t *testing.T) {
	tests := []struct {
		name      string
		global    GlobalConfig
		documents map[constants.DocumentType]DocumentConfig
		docType   constants.DocumentType
		want      string
		wantErr   bool
	}{
		{
			name:   "per-type override wins over default",
			global: testGlobal(),
			documents: map[constants.DocumentType]DocumentConfig{
				constants.ClaimForm: {Version: "v2", Required: true},
			},
			docType: constants.ClaimForm,
			want:    "v2",
		},
		{
			name:      "no override falls back to global default",
			global:    testGlobal(),
			documents: nil,
			docType:   constants.Receipt,
			want:      "v1",
		},
		{
			name: "no override and no default fails closed",
			global: GlobalConfig{
				DocumentClassifierVersion: "v1",
				NerExtractorVersion:       "v1",
				RuleEngine:                "rules_2025_q4_v1",
			},
			documents: nil,
			docType:   constants.Invoice,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := NewRegistry(tt.global, tt.documents)
			require.NoError(t, err)

			got, err := reg.ResolveVersion(tt.docType)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, common.ErrConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveVersionDeterministic(t *testing.T) {
	reg, err := NewRegistry(testGlobal(), map[constants.DocumentType]DocumentConfig{
		constants.ClaimForm: {Version: "v2", Required: true},
		constants.Invoice:   {Version: "v1", Required: true},
	})
	require.NoError(t, err)

	// Every known type resolves, and repeated lookups agree.
	for _, dt := range constants.DocumentTypes {
		first, err := reg.ResolveVersion(dt)
		require.NoError(t, err, "type %s", dt)
		for i := 0; i < 3; i++ {
			again, err := reg.ResolveVersion(dt)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	}
}

func TestIsRequired(t *testing.T) {
	reg, err := NewRegistry(testGlobal(), map[constants.DocumentType]DocumentConfig{
		constants.ClaimForm: {Version: "v2", Required: true},
		constants.Receipt:   {Version: "v1", Required: false},
	})
	require.NoError(t, err)

	assert.True(t, reg.IsRequired(constants.ClaimForm))
	assert.False(t, reg.IsRequired(constants.Receipt))
	assert.False(t, reg.IsRequired(constants.IDCard), "unlisted types are not required")
}

func TestNewRegistryRejectsIncompleteGlobals(t *testing.T) {
	g := testGlobal()
	g.RuleEngine = ""
	_, err := NewRegistry(g, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConfig))
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	globalPath := filepath.Join(dir, "global.yaml")
	docsPath := filepath.Join(dir, "documents.yaml")

	require.NoError(t, os.WriteFile(globalPath, []byte(`
document_classifier_version: v1
ner_extractor_version: v1
rule_engine: rules_2025_q4_v1
default_document_version: v1
openai_model: gpt-4o-mini
`), 0o644))
	require.NoError(t, os.WriteFile(docsPath, []byte(`
claim_form:
  version: v2
  required: true
invoice:
  version: v1
  required: true
`), 0o644))

	reg, err := Load(globalPath, docsPath)
	require.NoError(t, err)

	got, err := reg.ResolveVersion(constants.ClaimForm)
	require.NoError(t, err)
	assert.Equal(t, "v2", got)
	assert.Equal(t, "rules_2025_q4_v1", reg.RuleEngine())
	assert.Equal(t, "gpt-4o-mini", reg.Model())
	assert.True(t, reg.IsRequired(constants.Invoice))
}

func TestLoadRejectsUnknownDocumentType(t *testing.T) {
	dir := t.TempDir()
	globalPath := filepath.Join(dir, "global.yaml")
	docsPath := filepath.Join(dir, "documents.yaml")

	require.NoError(t, os.WriteFile(globalPath, []byte(`
document_classifier_version: v1
ner_extractor_version: v1
rule_engine: rules_2025_q3_v1
default_document_version: v1
`), 0o644))
	require.NoError(t, os.WriteFile(docsPath, []byte(`
prescription:
  version: v1
`), 0o644))

	_, err := Load(globalPath, docsPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConfig))
}
