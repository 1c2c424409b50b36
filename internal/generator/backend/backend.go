// Package backend generates a NestJS-style TypeScript source tree from a
// validated data model: per entity one coherent fragment group (entity,
// DTOs, service, controller, module) plus shared bootstrap, database config,
// optional auth scaffolding and Docker infra files. Every fragment is
// derived from Type Mapper output and the naming helpers; no template engine
// is involved.
package backend

import (
	"github.com/apiforge/apiforge/internal/generator"
	"github.com/apiforge/apiforge/internal/generator/naming"
	"github.com/apiforge/apiforge/internal/model"
)

// Generator emits backend source fragments.
type Generator struct{}

// New creates a backend generator.
func New() *Generator { return &Generator{} }

// Name implements generator.Target.
func (g *Generator) Name() string { return "backend" }

// entityNames caches the casing variants of one entity name; every fragment
// builder works from the same set.
type entityNames struct {
	Pascal string // User
	Camel  string // user
	Kebab  string // user
	Plural string // users
}

func namesFor(e *model.Entity) entityNames {
	return entityNames{
		Pascal: naming.Pascal(e.Name),
		Camel:  naming.Camel(e.Name),
		Kebab:  naming.Kebab(e.Name),
		Plural: naming.Plural(naming.Kebab(e.Name)),
	}
}

// Generate produces the complete ordered artifact list. Entities are
// processed in declaration order and shared files follow, so output order
// is stable across runs.
func (g *Generator) Generate(cfg *model.ProjectConfig, m *model.DataModel) (result model.GenerationResult) {
	defer generator.Recover(&result)

	var files []model.GeneratedFile
	source := func(path, content string) {
		files = append(files, model.GeneratedFile{
			Path: path, Content: content, Type: model.FileSource, Language: "typescript",
		})
	}

	for i := range m.Entities {
		e := &m.Entities[i]
		n := namesFor(e)
		dir := "src/" + n.Kebab + "/"

		source(dir+n.Kebab+".entity.ts", g.entityFile(m, e, n))
		source(dir+"dto/create-"+n.Kebab+".dto.ts", g.createDtoFile(e, n))
		source(dir+"dto/update-"+n.Kebab+".dto.ts", g.updateDtoFile(n))
		source(dir+n.Kebab+".service.ts", g.serviceFile(e, n))
		source(dir+n.Kebab+".controller.ts", g.controllerFile(cfg, e, n))
		source(dir+n.Kebab+".module.ts", g.moduleFile(n))

		if cfg.Features.Testing {
			files = append(files, model.GeneratedFile{
				Path:     dir + n.Kebab + ".service.spec.ts",
				Content:  g.serviceSpecFile(e, n),
				Type:     model.FileTest,
				Language: "typescript",
			})
		}
	}

	for _, enum := range m.Enums {
		source("src/enums/"+naming.Kebab(enum.Name)+".enum.ts", g.enumFile(&enum))
	}

	source("src/main.ts", g.mainFile(cfg))
	source("src/app.module.ts", g.appModuleFile(cfg, m))
	source("src/config/database.config.ts", g.databaseConfigFile(cfg))

	if cfg.Features.Authentication {
		source("src/auth/auth.module.ts", g.authModuleFile())
		source("src/auth/auth.service.ts", g.authServiceFile())
		source("src/auth/jwt.strategy.ts", g.jwtStrategyFile())
		source("src/auth/jwt-auth.guard.ts", g.jwtGuardFile())
	}

	files = append(files, model.GeneratedFile{
		Path: "package.json", Content: g.packageJSONFile(cfg), Type: model.FileConfig, Language: "json",
	})

	if cfg.Features.Docker {
		files = append(files,
			model.GeneratedFile{Path: "Dockerfile", Content: g.dockerfile(), Type: model.FileConfig},
			model.GeneratedFile{Path: "docker-compose.yml", Content: g.composeFile(cfg), Type: model.FileConfig, Language: "yaml"},
		)
	}

	return model.GenerationResult{Success: true, Files: files}
}

var _ generator.Target = (*Generator)(nil)
