package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiforge/apiforge/internal/model"
)

// Two-entity blog model exercising primary keys, unique fields, enum
// references, and a bidirectional relationship.
const blogModelJSON = `{
  "name": "Blog API",
  "version": "1.0.0",
  "entities": [
    {
      "name": "User",
      "timestamps": true,
      "fields": [
        {
          "name": "id",
          "dataType": {"type": "string", "format": "uuid"},
          "isPrimaryKey": true,
          "isGenerated": true,
          "generationStrategy": "uuid"
        },
        {
          "name": "email",
          "dataType": {"type": "string", "format": "email"},
          "isUnique": true
        },
        {
          "name": "name",
          "dataType": {"type": "string"}
        },
        {
          "name": "role",
          "dataType": {"type": "enum", "enum": ["UserRole"]}
        },
        {
          "name": "posts",
          "dataType": {"type": "array"},
          "relationship": {"type": "oneToMany", "target": "Post"}
        }
      ]
    },
    {
      "name": "Post",
      "fields": [
        {
          "name": "id",
          "dataType": {"type": "string", "format": "uuid"},
          "isPrimaryKey": true,
          "isGenerated": true,
          "generationStrategy": "uuid"
        },
        {
          "name": "title",
          "dataType": {"type": "string", "validation": {"maxLength": 200}}
        },
        {
          "name": "content",
          "dataType": {"type": "string"}
        },
        {
          "name": "published",
          "dataType": {"type": "boolean", "default": false}
        },
        {
          "name": "authorId",
          "dataType": {"type": "string", "format": "uuid"}
        },
        {
          "name": "author",
          "dataType": {"type": "object"},
          "relationship": {"type": "manyToOne", "target": "User", "foreignKey": "authorId"}
        }
      ]
    }
  ],
  "enums": [
    {"name": "UserRole", "values": ["ADMIN", "USER", "MODERATOR"]}
  ]
}`

const blogModelYAML = `name: Blog API
version: 1.0.0
entities:
  - name: User
    fields:
      - name: id
        dataType:
          type: string
          format: uuid
        isPrimaryKey: true
        isGenerated: true
        generationStrategy: uuid
      - name: email
        dataType:
          type: string
          format: email
        isUnique: true
enums:
  - name: UserRole
    values: [ADMIN, USER]
`

func TestLoader_ParseBlogModel(t *testing.T) {
	m, diags, err := New(false).Parse([]byte(blogModelJSON), model.FormatJSON)
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.False(t, diags.HasErrors())
	assert.Empty(t, diags.Warnings(), "the blog model is warning-free in lenient mode")

	assert.Equal(t, "Blog API", m.Name)
	require.Len(t, m.Entities, 2)
	assert.Equal(t, "User", m.Entities[0].Name)
	assert.Equal(t, "Post", m.Entities[1].Name)

	role := m.Entities[0].Fields[3]
	ref, ok := role.DataType.EnumRef()
	require.True(t, ok)
	assert.Equal(t, "UserRole", ref)

	author := m.Entities[1].Fields[5]
	require.NotNil(t, author.Relationship)
	assert.Equal(t, model.ManyToOne, author.Relationship.Type)
}

func TestLoader_SerializeRoundTrip(t *testing.T) {
	original, diags, err := New(false).Parse([]byte(blogModelJSON), model.FormatJSON)
	require.NoError(t, err)
	require.False(t, diags.HasErrors())

	for _, format := range []model.Format{model.FormatJSON, model.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			raw, err := model.Serialize(original, format)
			require.NoError(t, err)

			reparsed, diags, err := New(false).Parse(raw, format)
			require.NoError(t, err)
			assert.False(t, diags.HasErrors())
			assert.Equal(t, original, reparsed)
		})
	}
}

func TestLoader_ParseYAML(t *testing.T) {
	m, diags, err := New(false).Parse([]byte(blogModelYAML), model.FormatYAML)
	require.NoError(t, err)
	assert.False(t, diags.HasErrors())
	require.Len(t, m.Entities, 1)
	assert.Equal(t, "email", m.Entities[0].Fields[1].Name)
	assert.True(t, m.Entities[0].Fields[1].IsUnique)
}

func TestLoader_ParseFile(t *testing.T) {
	t.Run("extension selects the format", func(t *testing.T) {
		_, _, err := New(false).ParseFile("model.yaml", []byte(blogModelYAML))
		assert.NoError(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, _, err := New(false).ParseFile("model.toml", []byte(blogModelJSON))
		var formatErr *model.ErrUnsupportedFormat
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, ".toml", formatErr.Extension)
	})
}

func TestLoader_MalformedInput(t *testing.T) {
	_, _, err := New(false).Parse([]byte(`{"name": `), model.FormatJSON)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, model.FormatJSON, parseErr.Format)
}

func TestLoader_StructuralShortCircuit(t *testing.T) {
	// Structurally broken (missing version) AND business-broken (no primary
	// key): only the structural pass may run.
	doc := `{
	  "name": "Broken",
	  "entities": [
	    {"name": "User", "fields": [{"name": "email", "dataType": {"type": "string"}}]}
	  ]
	}`

	m, diags, err := New(false).Parse([]byte(doc), model.FormatJSON)
	assert.Nil(t, m)
	assert.Nil(t, diags, "business rules must not run on a structurally invalid document")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Error(), "/version")
	assert.NotContains(t, vErr.Error(), "primary key")
}

func TestLoader_BusinessRuleFailure(t *testing.T) {
	doc := `{
	  "name": "Broken",
	  "version": "1.0.0",
	  "entities": [
	    {"name": "User", "fields": [{"name": "email", "dataType": {"type": "string"}}]}
	  ]
	}`

	m, diags, err := New(false).Parse([]byte(doc), model.FormatJSON)
	assert.Nil(t, m)
	require.NotNil(t, diags)
	assert.True(t, diags.HasErrors())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Error(), "Entity User has no primary key field")
}

func TestLoader_StrictModeWarnings(t *testing.T) {
	lenientModel, lenient, err := New(false).Parse([]byte(blogModelJSON), model.FormatJSON)
	require.NoError(t, err)
	strictModel, strict, err := New(true).Parse([]byte(blogModelJSON), model.FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, lenientModel.Name, strictModel.Name)
	assert.Empty(t, lenient.Warnings())
	assert.NotEmpty(t, strict.Warnings(), "strict mode surfaces advisory findings")
	assert.False(t, strict.HasErrors(), "strict mode never escalates to errors")
}
