// Package asyncapi generates an AsyncAPI 2.6.0 document from a validated
// data model: per entity a state schema, an event-envelope schema and three
// lifecycle channels, each bound to a message carrying a correlation-ready
// header trait.
package asyncapi

import (
	"fmt"

	"github.com/apiforge/apiforge/internal/generator"
	"github.com/apiforge/apiforge/internal/generator/naming"
	"github.com/apiforge/apiforge/internal/model"
	"github.com/apiforge/apiforge/internal/typemap"
)

// Generator emits AsyncAPI documents.
type Generator struct{}

// New creates an AsyncAPI generator.
func New() *Generator { return &Generator{} }

// Name implements generator.Target.
func (g *Generator) Name() string { return "asyncapi" }

// Generate builds the document and serializes it to docs/asyncapi.{json,yaml}.
func (g *Generator) Generate(cfg *model.ProjectConfig, m *model.DataModel) (result model.GenerationResult) {
	defer generator.Recover(&result)

	doc := g.buildDocument(cfg, m)
	files, err := generator.RenderDocument(doc, "asyncapi")
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
	return map[string]any{
		"asyncapi": "2.6.0",
		"info": map[string]any{
			"title":       cfg.Project.Name + " Events",
			"version":     cfg.Project.Version,
			"description": cfg.Project.Description,
		},
		"servers": map[string]any{
			"development": map[string]any{
				"url":         "localhost:5672",
				"protocol":    "amqp",
				"description": "Local development broker",
			},
		},
		"channels": g.buildChannels(m),
		"components": map[string]any{
			"messages":      g.buildMessages(m),
			"schemas":       g.buildSchemas(m),
			"messageTraits": g.buildMessageTraits(),
		},
	}
}

// Channel names follow "{entity}.{lifecycle}" with the entity camelCased.
var lifecycleEvents = []string{"created", "updated", "deleted"}

func (g *Generator) buildChannels(m *model.DataModel) map[string]any {
	channels := map[string]any{}
	for _, e := range m.Entities {
		for _, event := range lifecycleEvents {
			channel := fmt.Sprintf("%s.%s", naming.Camel(e.Name), event)
			channels[channel] = map[string]any{
				"description": fmt.Sprintf("%s %s events", e.Name, event),
				"subscribe": map[string]any{
					"operationId": fmt.Sprintf("on%s%s", e.Name, naming.Pascal(event)),
					"message": map[string]any{
						"$ref": fmt.Sprintf("#/components/messages/%s%s", e.Name, naming.Pascal(event)),
					},
				},
			}
		}
	}
	return channels
}

func (g *Generator) buildMessages(m *model.DataModel) map[string]any {
	messages := map[string]any{}
	for _, e := range m.Entities {
		for _, event := range lifecycleEvents {
			name := e.Name + naming.Pascal(event)
			messages[name] = map[string]any{
				"name":        name,
				"title":       fmt.Sprintf("%s %s", e.Name, event),
				"contentType": "application/json",
				"traits": []any{
					map[string]any{"$ref": "#/components/messageTraits/commonHeaders"},
				},
				"payload": map[string]any{
					"$ref": "#/components/schemas/" + e.Name + "Event",
				},
			}
		}
	}
	return messages
}

func (g *Generator) buildSchemas(m *model.DataModel) map[string]any {
	schemas := map[string]any{}

	for _, enum := range m.Enums {
		schemas[enum.Name] = map[string]any{
			"type": "string",
			"enum": enum.Values,
		}
	}

	for i := range m.Entities {
		e := &m.Entities[i]
		schemas[e.Name] = g.stateSchema(e)
		schemas[e.Name+"Event"] = g.eventEnvelopeSchema(e)
	}

	return schemas
}

// stateSchema describes the full entity state carried in event payloads.
func (g *Generator) stateSchema(e *model.Entity) map[string]any {
	properties := map[string]any{}
	var required []any

	for _, f := range e.Fields {
		if rel := f.Relationship; rel != nil {
			// Events carry scalar state only; to-one relationships are
			// represented by their foreign key, to-many sides are omitted.
			if !rel.ToMany() && rel.ForeignKey != "" {
				properties[rel.ForeignKey] = map[string]any{"type": "string"}
			}
			continue
		}
		properties[f.Name] = typemap.AsyncAPIProperty(f.DataType)
		if f.DataType.Required {
			required = append(required, f.Name)
		}
	}

	if e.Timestamps {
		properties["createdAt"] = map[string]any{"type": "string", "format": "date-time"}
		properties["updatedAt"] = map[string]any{"type": "string", "format": "date-time"}
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

// eventEnvelopeSchema wraps entity state with event metadata. previousData
// is only present on update and delete events, so it stays optional.
func (g *Generator) eventEnvelopeSchema(e *model.Entity) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"metadata": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"eventId":       map[string]any{"type": "string", "format": "uuid"},
					"eventType":     map[string]any{"type": "string"},
					"timestamp":     map[string]any{"type": "string", "format": "date-time"},
					"correlationId": map[string]any{"type": "string", "format": "uuid"},
				},
				"required": []any{"eventId", "eventType", "timestamp"},
			},
			"data":         map[string]any{"$ref": "#/components/schemas/" + e.Name},
			"previousData": map[string]any{"$ref": "#/components/schemas/" + e.Name},
		},
		"required": []any{"metadata", "data"},
	}
}

func (g *Generator) buildMessageTraits() map[string]any {
	return map[string]any{
		"commonHeaders": map[string]any{
			"headers": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"correlationId": map[string]any{
						"type":        "string",
						"format":      "uuid",
						"description": "Correlates request and event",
					},
					"source": map[string]any{"type": "string"},
				},
			},
		},
	}
}

var _ generator.Target = (*Generator)(nil)
