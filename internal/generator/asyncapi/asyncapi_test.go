package asyncapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiforge/apiforge/internal/model"
)

func blogModel() *model.DataModel {
	return &model.DataModel{
		Name:    "Blog API",
		Version: "1.0.0",
		Entities: []model.Entity{
			{
				Name:       "User",
				Timestamps: true,
				Fields: []model.EntityField{
					{Name: "id", DataType: model.DataType{Type: model.KindString, Format: "uuid"}, IsPrimaryKey: true, IsGenerated: true},
					{Name: "email", DataType: model.DataType{Type: model.KindString, Format: "email", Required: true}},
					{Name: "posts", DataType: model.DataType{Type: model.KindArray}, Relationship: &model.Relationship{Type: model.OneToMany, Target: "Post"}},
				},
			},
			{
				Name: "Post",
				Fields: []model.EntityField{
					{Name: "id", DataType: model.DataType{Type: model.KindString, Format: "uuid"}, IsPrimaryKey: true, IsGenerated: true},
					{Name: "title", DataType: model.DataType{Type: model.KindString}},
					{Name: "author", DataType: model.DataType{Type: model.KindObject}, Relationship: &model.Relationship{Type: model.ManyToOne, Target: "User", ForeignKey: "authorId"}},
				},
			},
		},
		Enums: []model.EnumDefinition{{Name: "UserRole", Values: []string{"ADMIN", "USER"}}},
	}
}

func blogConfig() *model.ProjectConfig {
	return &model.ProjectConfig{
		Project:  model.ProjectInfo{Name: "blog", Version: "1.0.0"},
		Features: model.FeatureToggles{AsyncAPI: true},
	}
}

func TestGenerate_Files(t *testing.T) {
	result := New().Generate(blogConfig(), blogModel())
	require.True(t, result.Success)

	paths := make([]string, len(result.Files))
	for i, f := range result.Files {
		paths[i] = f.Path
	}
	assert.Contains(t, paths, "docs/asyncapi.json")
	assert.Contains(t, paths, "docs/asyncapi.yaml")
}

func TestBuildDocument_Channels(t *testing.T) {
	doc := New().BuildDocument(blogConfig(), blogModel())
	assert.Equal(t, "2.6.0", doc["asyncapi"])

	channels := doc["channels"].(map[string]any)
	expected := []string{
		"user.created", "user.updated", "user.deleted",
		"post.created", "post.updated", "post.deleted",
	}
	require.Len(t, channels, len(expected))
	for _, name := range expected {
		assert.Contains(t, channels, name)
	}

	created := channels["user.created"].(map[string]any)
	subscribe := created["subscribe"].(map[string]any)
	assert.Equal(t, "onUserCreated", subscribe["operationId"])
	message := subscribe["message"].(map[string]any)
	assert.Equal(t, "#/components/messages/UserCreated", message["$ref"])
}

func TestBuildDocument_Messages(t *testing.T) {
	doc := New().BuildDocument(blogConfig(), blogModel())
	components := doc["components"].(map[string]any)
	messages := components["messages"].(map[string]any)

	for _, name := range []string{
		"UserCreated", "UserUpdated", "UserDeleted",
		"PostCreated", "PostUpdated", "PostDeleted",
	} {
		assert.Contains(t, messages, name)
	}

	msg := messages["PostUpdated"].(map[string]any)
	assert.Equal(t, "application/json", msg["contentType"])
	traits := msg["traits"].([]any)
	require.Len(t, traits, 1)
	assert.Equal(t, map[string]any{"$ref": "#/components/messageTraits/commonHeaders"}, traits[0])
	payload := msg["payload"].(map[string]any)
	assert.Equal(t, "#/components/schemas/PostEvent", payload["$ref"])
}

func TestBuildDocument_Schemas(t *testing.T) {
	doc := New().BuildDocument(blogConfig(), blogModel())
	components := doc["components"].(map[string]any)
	schemas := components["schemas"].(map[string]any)

	for _, name := range []string{"User", "UserEvent", "Post", "PostEvent", "UserRole"} {
		assert.Contains(t, schemas, name)
	}

	t.Run("state schema flattens relationships", func(t *testing.T) {
		post := schemas["Post"].(map[string]any)
		props := post["properties"].(map[string]any)
		assert.Contains(t, props, "authorId", "to-one relationship renders as its foreign key")
		assert.NotContains(t, props, "author")

		user := schemas["User"].(map[string]any)
		userProps := user["properties"].(map[string]any)
		assert.NotContains(t, userProps, "posts", "to-many sides are omitted from event state")
		assert.Contains(t, userProps, "createdAt")
	})

	t.Run("event envelope", func(t *testing.T) {
		event := schemas["UserEvent"].(map[string]any)
		props := event["properties"].(map[string]any)

		metadata := props["metadata"].(map[string]any)
		metaProps := metadata["properties"].(map[string]any)
		for _, key := range []string{"eventId", "eventType", "timestamp", "correlationId"} {
			assert.Contains(t, metaProps, key)
		}

		assert.Equal(t, map[string]any{"$ref": "#/components/schemas/User"}, props["data"])
		assert.Equal(t, map[string]any{"$ref": "#/components/schemas/User"}, props["previousData"])
		assert.Equal(t, []any{"metadata", "data"}, event["required"])
	})
}
