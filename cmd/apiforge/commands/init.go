package commands

import (
	"fmt"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/apiforge/apiforge/internal/config"
	"github.com/apiforge/apiforge/internal/model"
	"github.com/apiforge/apiforge/internal/ui"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new apiforge project",
		Long: `Initialize a new apiforge project.

Creates a project config, a starter data-model document, and supporting
files in the target directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(dir, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip prompts and use defaults")

	return cmd
}

func runInit(dir string, yes bool) error {
	ui.PrintHeader("apiforge", "Initialize Project")

	name := filepath.Base(dir)
	if name == "." || name == string(filepath.Separator) {
		name = "my-api"
	}
	cfg := config.DefaultProject(name)

	if !yes {
		answered, err := promptProject(cfg)
		if err != nil {
			return err
		}
		cfg = answered
	}

	if dir != "." {
		if err := config.AppFs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create project directory: %w", err)
		}
	}

	configRaw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to render project config: %w", err)
	}

	files := map[string][]byte{
		"apiforge.yaml":  configRaw,
		"datamodel.json": []byte(starterModel),
		".env.example":   []byte(starterEnv),
		".gitignore":     []byte(starterGitignore),
	}
	for _, path := range []string{"apiforge.yaml", "datamodel.json", ".env.example", ".gitignore"} {
		target := filepath.Join(dir, path)
		if exists, _ := afero.Exists(config.AppFs, target); exists {
			ui.PrintWarning("Skipping existing file: %s", target)
			continue
		}
		if err := afero.WriteFile(config.AppFs, target, files[path], 0o644); err != nil {
			return fmt.Errorf("failed to create %s: %w", target, err)
		}
		ui.PrintSuccess("Created %s", target)
	}

	fmt.Println()
	ui.PrintSection("Next steps")
	if err := ui.PrintMarkdown(nextStepsDoc); err != nil {
		ui.PrintList([]string{
			"Edit datamodel.json to describe your entities",
			"Run: apiforge validate",
			"Run: apiforge generate",
		})
	}
	return nil
}

const nextStepsDoc = `1. Edit **datamodel.json** to describe your entities
2. Run ` + "`apiforge validate`" + ` to check the model
3. Run ` + "`apiforge generate`" + ` to produce docs and backend code
`

func promptProject(cfg *model.ProjectConfig) (*model.ProjectConfig, error) {
	answers := struct {
		Name     string
		Database string
		Features []string
	}{}

	questions := []*survey.Question{
		{
			Name: "name",
			Prompt: &survey.Input{
				Message: "Project name:",
				Default: cfg.Project.Name,
			},
			Validate: survey.Required,
		},
		{
			Name: "database",
			Prompt: &survey.Select{
				Message: "Database:",
				Options: []string{
					string(model.PostgreSQL),
					string(model.MySQL),
					string(model.MongoDB),
					string(model.SQLite),
				},
				Default: string(cfg.Database.Type),
			},
		},
		{
			Name: "features",
			Prompt: &survey.MultiSelect{
				Message: "Features:",
				Options: []string{"swagger", "asyncapi", "authentication", "docker", "testing"},
				Default: []string{"swagger", "asyncapi"},
			},
		},
	}
	if err := survey.Ask(questions, &answers); err != nil {
		return nil, err
	}

	cfg.Project.Name = answers.Name
	cfg.Database.Type = model.DatabaseType(answers.Database)
	cfg.Features = model.FeatureToggles{}
	for _, feature := range answers.Features {
		switch feature {
		case "swagger":
			cfg.Features.Swagger = true
		case "asyncapi":
			cfg.Features.AsyncAPI = true
		case "authentication":
			cfg.Features.Authentication = true
		case "docker":
			cfg.Features.Docker = true
		case "testing":
			cfg.Features.Testing = true
		}
	}
	return cfg, nil
}

const starterModel = `{
  "name": "My API",
  "version": "1.0.0",
  "description": "Starter data model",
  "entities": [
    {
      "name": "User",
      "timestamps": true,
      "fields": [
        {
          "name": "id",
          "dataType": { "type": "string", "format": "uuid" },
          "isPrimaryKey": true,
          "isGenerated": true,
          "generationStrategy": "uuid"
        },
        {
          "name": "email",
          "dataType": {
            "type": "string",
            "format": "email",
            "required": true,
            "description": "Login email address"
          },
          "isUnique": true
        },
        {
          "name": "name",
          "dataType": { "type": "string", "validation": { "maxLength": 120 } }
        }
      ]
    }
  ]
}
`

const starterEnv = `# Database connection for the generated backend
DATABASE_HOST=localhost
DATABASE_PORT=5432
DATABASE_USER=postgres
DATABASE_PASSWORD=postgres
DATABASE_NAME=myapi
`

const starterGitignore = `# Generated output
generated/

# Environment variables
.env
.env.local

# IDE
.idea/
.vscode/

# OS
.DS_Store
`
