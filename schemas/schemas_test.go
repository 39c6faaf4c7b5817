package schemas_test

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/hunter/internal/schemas"
	root "github.com/jonathan/hunter/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaFiles = []string{root.DomainSearch, root.EmailFinder, root.EmailVerifier}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := root.FS.ReadFile(schemaFile)
			require.NoError(t, err, "should be able to read embedded schema file")

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON: %s", schemaFile)

			_, hasType := schemaObj["type"]
			_, hasSchema := schemaObj["$schema"]
			assert.True(t, hasType && hasSchema, "schema should declare $schema and type")
		})
	}
}

func TestAllSchemaFiles_RejectMissingData(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			err := schemas.ValidateEmbedded(schemaFile, []byte(`{"meta":{}}`))
			require.Error(t, err)

			var validationErr *schemas.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestDomainSearchSchema_AcceptsMinimalResponse(t *testing.T) {
	body := `{"data":{"emails":[{"value":"x@example.com","type":"personal","sources":[{"uri":"http://s1"}]}]}}`

	err := schemas.ValidateEmbedded(root.DomainSearch, []byte(body))
	assert.NoError(t, err)
}
