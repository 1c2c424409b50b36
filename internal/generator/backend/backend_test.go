package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiforge/apiforge/internal/model"
)

func intPtr(v int) *int { return &v }

func blogModel() *model.DataModel {
	return &model.DataModel{
		Name:    "Blog API",
		Version: "1.0.0",
		Entities: []model.Entity{
			{
				Name:       "User",
				Timestamps: true,
				Fields: []model.EntityField{
					{Name: "id", DataType: model.DataType{Type: model.KindString, Format: "uuid"}, IsPrimaryKey: true, IsGenerated: true, GenerationStrategy: model.GenerateUUID},
					{Name: "email", DataType: model.DataType{Type: model.KindString, Format: "email", Required: true}, IsUnique: true},
					{Name: "role", DataType: model.DataType{Type: model.KindEnum, Enum: []string{"UserRole"}}},
					{Name: "posts", DataType: model.DataType{Type: model.KindArray}, Relationship: &model.Relationship{Type: model.OneToMany, Target: "Post"}},
				},
			},
			{
				Name:       "Post",
				SoftDelete: true,
				Fields: []model.EntityField{
					{Name: "id", DataType: model.DataType{Type: model.KindString, Format: "uuid"}, IsPrimaryKey: true, IsGenerated: true, GenerationStrategy: model.GenerateUUID},
					{Name: "title", DataType: model.DataType{Type: model.KindString, Required: true, Validation: &model.ValidationRules{MaxLength: intPtr(200)}}},
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
		Database: model.DatabaseConfig{Type: model.PostgreSQL},
	}
}

func fileByPath(t *testing.T, result model.GenerationResult, path string) model.GeneratedFile {
	t.Helper()
	for _, f := range result.Files {
		if f.Path == path {
			return f
		}
	}
	t.Fatalf("no generated file at %s", path)
	return model.GeneratedFile{}
}

func TestGenerate_FileList(t *testing.T) {
	result := New().Generate(blogConfig(), blogModel())
	require.True(t, result.Success)
	require.Empty(t, result.Errors)

	paths := make(map[string]bool, len(result.Files))
	for _, f := range result.Files {
		paths[f.Path] = true
	}

	for _, p := range []string{
		"src/user/user.entity.ts",
		"src/user/dto/create-user.dto.ts",
		"src/user/dto/update-user.dto.ts",
		"src/user/user.service.ts",
		"src/user/user.controller.ts",
		"src/user/user.module.ts",
		"src/post/post.entity.ts",
		"src/post/post.service.ts",
		"src/enums/user-role.enum.ts",
		"src/main.ts",
		"src/app.module.ts",
		"src/config/database.config.ts",
		"package.json",
	} {
		assert.True(t, paths[p], "missing %s", p)
	}

	assert.False(t, paths["Dockerfile"], "docker files need the docker feature")
	assert.False(t, paths["src/auth/auth.module.ts"], "auth files need the authentication feature")
	assert.False(t, paths["src/user/user.service.spec.ts"], "spec files need the testing feature")
}

func TestGenerate_FeatureFiles(t *testing.T) {
	cfg := blogConfig()
	cfg.Features.Authentication = true
	cfg.Features.Docker = true
	cfg.Features.Testing = true

	result := New().Generate(cfg, blogModel())
	require.True(t, result.Success)

	paths := make(map[string]bool, len(result.Files))
	for _, f := range result.Files {
		paths[f.Path] = true
	}
	for _, p := range []string{
		"src/auth/auth.module.ts",
		"src/auth/jwt.strategy.ts",
		"src/auth/jwt-auth.guard.ts",
		"Dockerfile",
		"docker-compose.yml",
		"src/user/user.service.spec.ts",
	} {
		assert.True(t, paths[p], "missing %s", p)
	}

	spec := fileByPath(t, result, "src/user/user.service.spec.ts")
	assert.Equal(t, model.FileTest, spec.Type)

	controller := fileByPath(t, result, "src/user/user.controller.ts")
	assert.Contains(t, controller.Content, "@UseGuards(JwtAuthGuard)")
}

func TestGenerate_EntityFile(t *testing.T) {
	result := New().Generate(blogConfig(), blogModel())
	require.True(t, result.Success)

	t.Run("user entity", func(t *testing.T) {
		content := fileByPath(t, result, "src/user/user.entity.ts").Content

		assert.Contains(t, content, "@Entity('users')")
		assert.Contains(t, content, "@PrimaryGeneratedColumn('uuid')")
		assert.Contains(t, content, "@Column({ type: 'text', unique: true })")
		assert.Contains(t, content, "email: string;")
		assert.Contains(t, content, "enum: ['ADMIN', 'USER']", "enum reference resolves to definition values")
		assert.Contains(t, content, "@OneToMany(() => Post, (post) => post.author)")
		assert.Contains(t, content, "posts: Post[];")
		assert.Contains(t, content, "@CreateDateColumn()")
		assert.Contains(t, content, "@UpdateDateColumn()")
		assert.Contains(t, content, "import { Post } from '../post/post.entity';")
	})

	t.Run("post entity", func(t *testing.T) {
		content := fileByPath(t, result, "src/post/post.entity.ts").Content

		assert.Contains(t, content, "@Entity('posts')")
		assert.Contains(t, content, "length: 200")
		assert.Contains(t, content, "@ManyToOne(() => User, (user) => user.posts)")
		assert.Contains(t, content, "@JoinColumn({ name: 'authorId' })")
		assert.Contains(t, content, "@DeleteDateColumn()")
	})
}

func TestGenerate_DtoFiles(t *testing.T) {
	result := New().Generate(blogConfig(), blogModel())
	require.True(t, result.Success)

	create := fileByPath(t, result, "src/user/dto/create-user.dto.ts").Content
	assert.Contains(t, create, "export class CreateUserDto")
	assert.Contains(t, create, "@IsEmail()")
	assert.NotContains(t, create, "id: string;", "generated fields are excluded from the create dto")

	update := fileByPath(t, result, "src/user/dto/update-user.dto.ts").Content
	assert.Contains(t, update, "PartialType(CreateUserDto)")
	assert.Contains(t, update, "export class UpdateUserDto")
}

func TestGenerate_ServiceAndController(t *testing.T) {
	result := New().Generate(blogConfig(), blogModel())
	require.True(t, result.Success)

	service := fileByPath(t, result, "src/post/post.service.ts").Content
	assert.Contains(t, service, "findAndCount")
	assert.Contains(t, service, "NotFoundException")
	assert.Contains(t, service, "softRemove", "soft-delete entities use softRemove")

	userService := fileByPath(t, result, "src/user/user.service.ts").Content
	assert.Contains(t, userService, "this.repository.remove(entity);")
	assert.NotContains(t, userService, "softRemove")

	controller := fileByPath(t, result, "src/post/post.controller.ts").Content
	assert.Contains(t, controller, "@Controller('posts')")
	assert.Contains(t, controller, "@HttpCode(204)")
	assert.NotContains(t, controller, "UseGuards")
}

func TestGenerate_EnumFile(t *testing.T) {
	result := New().Generate(blogConfig(), blogModel())
	content := fileByPath(t, result, "src/enums/user-role.enum.ts").Content

	assert.Contains(t, content, "export enum UserRole {")
	assert.Contains(t, content, "ADMIN = 'ADMIN',")
	assert.Contains(t, content, "USER = 'USER',")
}

func TestGenerate_SharedFiles(t *testing.T) {
	result := New().Generate(blogConfig(), blogModel())

	appModule := fileByPath(t, result, "src/app.module.ts").Content
	assert.Contains(t, appModule, "UserModule")
	assert.Contains(t, appModule, "PostModule")

	dbConfig := fileByPath(t, result, "src/config/database.config.ts").Content
	assert.Contains(t, dbConfig, "'postgres'")
	assert.Contains(t, dbConfig, "5432")

	pkg := fileByPath(t, result, "package.json")
	assert.Equal(t, model.FileConfig, pkg.Type)
	assert.Contains(t, pkg.Content, "\"name\": \"blog\"")
	assert.Contains(t, pkg.Content, "@nestjs/typeorm")
}

func TestGenerate_Deterministic(t *testing.T) {
	first := New().Generate(blogConfig(), blogModel())
	second := New().Generate(blogConfig(), blogModel())
	require.Equal(t, len(first.Files), len(second.Files))
	for i := range first.Files {
		assert.Equal(t, first.Files[i].Path, second.Files[i].Path)
		assert.Equal(t, first.Files[i].Content, second.Files[i].Content)
	}
}

func TestGenerate_ComposeByDatabase(t *testing.T) {
	tests := []struct {
		db       model.DatabaseType
		wantText string
	}{
		{model.PostgreSQL, "postgres:"},
		{model.MySQL, "mysql:"},
		{model.MongoDB, "mongo:"},
	}
	for _, tt := range tests {
		t.Run(string(tt.db), func(t *testing.T) {
			cfg := blogConfig()
			cfg.Features.Docker = true
			cfg.Database.Type = tt.db

			result := New().Generate(cfg, blogModel())
			compose := fileByPath(t, result, "docker-compose.yml").Content
			assert.Contains(t, compose, tt.wantText)
		})
	}

	t.Run("sqlite has no database service", func(t *testing.T) {
		cfg := blogConfig()
		cfg.Features.Docker = true
		cfg.Database.Type = model.SQLite

		result := New().Generate(cfg, blogModel())
		compose := fileByPath(t, result, "docker-compose.yml").Content
		assert.NotContains(t, compose, "postgres")
		assert.NotContains(t, compose, "mysql")
	})
}
