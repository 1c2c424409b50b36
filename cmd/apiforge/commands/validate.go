package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	goversion "github.com/hashicorp/go-version"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/apiforge/apiforge/internal/config"
	"github.com/apiforge/apiforge/internal/debug"
	"github.com/apiforge/apiforge/internal/loader"
	"github.com/apiforge/apiforge/internal/model"
	"github.com/apiforge/apiforge/internal/ui"
)

// Model documents older than this predate the relationship syntax and get a
// compatibility warning.
const minModelVersion = "1.0.0"

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	var (
		modelPath string
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "validate [model-path]",
		Short: "Validate a data-model document",
		Long: `Validate a data-model document for structural and business-rule errors.

This command will:
- Parse the model file (JSON or YAML)
- Check the document structure
- Check business rules (naming, keys, relationships, enums)
- Display validation results`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(getModelPath(modelPath, args), strict)
		},
	}

	cmd.Flags().StringVarP(&modelPath, "model", "m", "datamodel.json", "Path to model file")
	cmd.Flags().BoolVar(&strict, "strict", false, "Enable strict-mode warnings")

	return cmd
}

func runValidate(modelPath string, strict bool) error {
	ui.PrintHeader("apiforge", "Validate Model")

	if exists, _ := afero.Exists(config.AppFs, modelPath); !exists {
		return fmt.Errorf("model file not found: %s", modelPath)
	}

	raw, err := afero.ReadFile(config.AppFs, modelPath)
	if err != nil {
		return fmt.Errorf("failed to read model file: %w", err)
	}

	m, diags, err := loader.New(strict).ParseFile(modelPath, raw)
	if err != nil {
		var vErr *loader.ValidationError
		if errors.As(err, &vErr) {
			ui.PrintError("Model validation failed:")
			if diags != nil && diags.HasErrors() {
				fmt.Fprintf(os.Stderr, "\n%s\n", diags.ToPrettyString())
			} else {
				fmt.Fprintf(os.Stderr, "\n%s\n", strings.Join(vErr.Errors, "\n"))
			}
			return fmt.Errorf("model has %d validation error(s)", len(vErr.Errors))
		}
		return err
	}

	if len(diags.Warnings()) > 0 {
		ui.PrintWarning("Model validated with warnings:")
		fmt.Fprintf(os.Stderr, "\n%s\n", diags.WarningsToPrettyString())
	}

	checkModelVersion(m)

	absPath, _ := filepath.Abs(modelPath)
	ui.PrintSuccess("Model is valid: %s", absPath)

	fmt.Println()
	ui.PrintSection("Model Summary")
	ui.PrintList(summarizeModel(m))

	if len(m.Entities) > 0 {
		fmt.Println()
		ui.PrintSection("Entities")
		rows := make([][]string, 0, len(m.Entities))
		for _, entity := range m.Entities {
			relationships := 0
			for _, field := range entity.Fields {
				if field.Relationship != nil {
					relationships++
				}
			}
			rows = append(rows, []string{
				entity.Name,
				fmt.Sprintf("%d", len(entity.Fields)),
				fmt.Sprintf("%d", relationships),
			})
		}
		ui.PrintTable([]string{"Entity", "Fields", "Relationships"}, rows)
	}

	return nil
}

// checkModelVersion warns when the document declares a version below the
// oldest format this tool fully supports.
func checkModelVersion(m *model.DataModel) {
	declared, err := goversion.NewVersion(m.Version)
	if err != nil {
		debug.Stage("validate").Warn("unparsable model version", "version", m.Version)
		return
	}
	minimum := goversion.Must(goversion.NewVersion(minModelVersion))
	if declared.LessThan(minimum) {
		ui.PrintWarning("Model version %s predates %s; consider upgrading the document format", m.Version, minModelVersion)
	}
}

func summarizeModel(m *model.DataModel) []string {
	fields := 0
	relationships := 0
	for _, entity := range m.Entities {
		fields += len(entity.Fields)
		for _, field := range entity.Fields {
			if field.Relationship != nil {
				relationships++
			}
		}
	}
	return []string{
		fmt.Sprintf("%d entity(ies)", len(m.Entities)),
		fmt.Sprintf("%d field(s)", fields),
		fmt.Sprintf("%d relationship(s)", relationships),
		fmt.Sprintf("%d enum(s)", len(m.Enums)),
	}
}
