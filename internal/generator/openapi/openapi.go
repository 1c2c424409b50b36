// Package openapi generates an OpenAPI 3.0.3 document from a validated data
// model: one schema and two DTO schemas per entity, five paths per entity,
// shared error/pagination schemas, and an optional bearer security scheme.
package openapi

import (
	"fmt"

	"github.com/apiforge/apiforge/internal/generator"
	"github.com/apiforge/apiforge/internal/generator/naming"
	"github.com/apiforge/apiforge/internal/model"
	"github.com/apiforge/apiforge/internal/typemap"
)

// Generator emits OpenAPI documents.
type Generator struct{}

// New creates an OpenAPI generator.
func New() *Generator { return &Generator{} }

// Name implements generator.Target.
func (g *Generator) Name() string { return "openapi" }

// Generate builds the document and serializes it to docs/openapi.{json,yaml}.
func (g *Generator) Generate(cfg *model.ProjectConfig, m *model.DataModel) (result model.GenerationResult) {
	defer generator.Recover(&result)

	doc := g.buildDocument(cfg, m)
	files, err := generator.RenderDocument(doc, "openapi")
	if err != nil {
		return generator.Failure("%v", err)
	}
	return model.GenerationResult{Success: true, Files: files}
}

// BuildDocument exposes the in-memory document for callers that serialize
// themselves.
func (g *Generator) BuildDocument(cfg *model.ProjectConfig, m *model.DataModel) map[string]any {
	return g.buildDocument(cfg, m)
}

func (g *Generator) buildDocument(cfg *model.ProjectConfig, m *model.DataModel) map[string]any {
	doc := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       cfg.Project.Name + " API",
			"version":     cfg.Project.Version,
			"description": cfg.Project.Description,
		},
		"servers": []any{
			map[string]any{
				"url":         "http://localhost:3000",
				"description": "Local development server",
			},
		},
		"tags":  g.buildTags(m),
		"paths": g.buildPaths(cfg, m),
	}

	components := map[string]any{
		"schemas": g.buildSchemas(m),
	}
	if cfg.Features.Authentication {
		components["securitySchemes"] = map[string]any{
			"bearerAuth": map[string]any{
				"type":         "http",
				"scheme":       "bearer",
				"bearerFormat": "JWT",
			},
		}
		doc["security"] = []any{map[string]any{"bearerAuth": []any{}}}
	}
	doc["components"] = components

	return doc
}

func (g *Generator) buildTags(m *model.DataModel) []any {
	tags := make([]any, 0, len(m.Entities))
	for _, e := range m.Entities {
		tag := map[string]any{"name": e.Name}
		if e.Description != "" {
			tag["description"] = e.Description
		}
		tags = append(tags, tag)
	}
	return tags
}

func (g *Generator) buildSchemas(m *model.DataModel) map[string]any {
	schemas := map[string]any{
		"ErrorResponse": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"statusCode": map[string]any{"type": "integer"},
				"message":    map[string]any{"type": "string"},
				"error":      map[string]any{"type": "string"},
			},
			"required": []any{"statusCode", "message"},
		},
		"PaginationMeta": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"page":       map[string]any{"type": "integer"},
				"limit":      map[string]any{"type": "integer"},
				"totalItems": map[string]any{"type": "integer"},
				"totalPages": map[string]any{"type": "integer"},
			},
		},
	}

	for _, enum := range m.Enums {
		schema := map[string]any{
			"type": "string",
			"enum": enum.Values,
		}
		if enum.Description != "" {
			schema["description"] = enum.Description
		}
		schemas[enum.Name] = schema
	}

	for i := range m.Entities {
		e := &m.Entities[i]
		schemas[e.Name] = g.entitySchema(e)
		schemas["Create"+e.Name+"Dto"] = g.createDtoSchema(e)
		schemas["Update"+e.Name+"Dto"] = g.updateDtoSchema(e)
	}

	return schemas
}

func (g *Generator) entitySchema(e *model.Entity) map[string]any {
	properties := map[string]any{}
	var required []any

	for _, f := range e.Fields {
		if rel := f.Relationship; rel != nil {
			ref := map[string]any{"$ref": "#/components/schemas/" + rel.Target}
			if rel.ToMany() {
				properties[f.Name] = map[string]any{"type": "array", "items": ref}
			} else {
				properties[f.Name] = ref
			}
			continue
		}
		properties[f.Name] = typemap.OpenAPIProperty(f.DataType)
		if f.DataType.Required {
			required = append(required, f.Name)
		}
	}

	if e.Timestamps {
		properties["createdAt"] = map[string]any{"type": "string", "format": "date-time"}
		properties["updatedAt"] = map[string]any{"type": "string", "format": "date-time"}
	}
	if e.SoftDelete {
		properties["deletedAt"] = map[string]any{"type": "string", "format": "date-time", "nullable": true}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if e.Description != "" {
		schema["description"] = e.Description
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// createDtoSchema covers the writable surface of an entity: generated fields
// and relationship objects are excluded, foreign-key scalars stay.
func (g *Generator) createDtoSchema(e *model.Entity) map[string]any {
	properties := map[string]any{}
	var required []any

	for _, f := range e.Fields {
		if f.IsGenerated || f.Relationship != nil {
			continue
		}
		properties[f.Name] = typemap.OpenAPIProperty(f.DataType)
		if f.DataType.Required {
			required = append(required, f.Name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// updateDtoSchema is the create DTO with every field optional.
func (g *Generator) updateDtoSchema(e *model.Entity) map[string]any {
	schema := g.createDtoSchema(e)
	delete(schema, "required")
	return schema
}

func (g *Generator) buildPaths(cfg *model.ProjectConfig, m *model.DataModel) map[string]any {
	paths := map[string]any{}
	for i := range m.Entities {
		e := &m.Entities[i]
		collection := "/" + naming.Plural(naming.Kebab(e.Name))
		item := collection + "/{id}"
		paths[collection] = g.collectionPath(e)
		paths[item] = g.itemPath(e)
	}
	return paths
}

func (g *Generator) collectionPath(e *model.Entity) map[string]any {
	plural := naming.Plural(e.Name)
	return map[string]any{
		"get": map[string]any{
			"operationId": "list" + plural,
			"summary":     fmt.Sprintf("List %s with pagination", plural),
			"tags":        []any{e.Name},
			"parameters": []any{
				queryParam("page", "Page number", 1),
				queryParam("limit", "Items per page", 20),
			},
			"responses": map[string]any{
				"200": jsonResponse("Paginated list", map[string]any{
					"type": "object",
					"properties": map[string]any{
						"data": map[string]any{
							"type":  "array",
							"items": schemaRef(e.Name),
						},
						"meta": schemaRef("PaginationMeta"),
					},
				}),
			},
		},
		"post": map[string]any{
			"operationId": "create" + e.Name,
			"summary":     "Create a new " + e.Name,
			"tags":        []any{e.Name},
			"requestBody": jsonBody(schemaRef("Create" + e.Name + "Dto")),
			"responses": map[string]any{
				"201": jsonResponse("Created", schemaRef(e.Name)),
				"400": jsonResponse("Validation failed", schemaRef("ErrorResponse")),
			},
		},
	}
}

func (g *Generator) itemPath(e *model.Entity) map[string]any {
	notFound := jsonResponse(e.Name+" not found", schemaRef("ErrorResponse"))
	idParam := map[string]any{
		"name":     "id",
		"in":       "path",
		"required": true,
		"schema":   map[string]any{"type": "string"},
	}
	return map[string]any{
		"get": map[string]any{
			"operationId": "get" + e.Name,
			"summary":     "Get one " + e.Name + " by id",
			"tags":        []any{e.Name},
			"parameters":  []any{idParam},
			"responses": map[string]any{
				"200": jsonResponse("Found", schemaRef(e.Name)),
				"404": notFound,
			},
		},
		"put": map[string]any{
			"operationId": "update" + e.Name,
			"summary":     "Update a " + e.Name,
			"tags":        []any{e.Name},
			"parameters":  []any{idParam},
			"requestBody": jsonBody(schemaRef("Update" + e.Name + "Dto")),
			"responses": map[string]any{
				"200": jsonResponse("Updated", schemaRef(e.Name)),
				"404": notFound,
			},
		},
		"delete": map[string]any{
			"operationId": "delete" + e.Name,
			"summary":     "Delete a " + e.Name,
			"tags":        []any{e.Name},
			"parameters":  []any{idParam},
			"responses": map[string]any{
				"204": map[string]any{"description": "Deleted"},
				"404": notFound,
			},
		},
	}
}

func schemaRef(name string) map[string]any {
	return map[string]any{"$ref": "#/components/schemas/" + name}
}

func jsonResponse(description string, schema map[string]any) map[string]any {
	return map[string]any{
		"description": description,
		"content": map[string]any{
			"application/json": map[string]any{"schema": schema},
		},
	}
}

func jsonBody(schema map[string]any) map[string]any {
	return map[string]any{
		"required": true,
		"content": map[string]any{
			"application/json": map[string]any{"schema": schema},
		},
	}
}

func queryParam(name, description string, defaultValue int) map[string]any {
	return map[string]any{
		"name":        name,
		"in":          "query",
		"required":    false,
		"description": description,
		"schema": map[string]any{
			"type":    "integer",
			"default": defaultValue,
			"minimum": 1,
		},
	}
}

var _ generator.Target = (*Generator)(nil)
