// Package template provides offline template commands that run the export
// pipeline without the HTTP server.
package template

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/orris-inc/docforge/internal/application/document/services"
	"github.com/orris-inc/docforge/internal/application/document/usecases"
	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/infrastructure/config"
	"github.com/orris-inc/docforge/internal/infrastructure/database"
	"github.com/orris-inc/docforge/internal/infrastructure/pdf"
	"github.com/orris-inc/docforge/internal/infrastructure/repository"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

var (
	env        string
	configPath string
	templateID string
	valuesPath string
	outPath    string
	filename   string
	noPublish  bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Template tools",
		Long:  `Detect placeholders and export templates to PDF from the command line.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.PersistentFlags().StringVar(&templateID, "id", "", "Template ID (tpl_xxxxx)")
	_ = cmd.MarkPersistentFlagRequired("id")

	cmd.AddCommand(newDetectCommand(), newExportCommand())
	return cmd
}

func newDetectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Create variable definitions for undefined placeholders",
		RunE:  runDetect,
	}
}

func newExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Generate a PDF from a template and a YAML values file",
		Long: `Generate a PDF from a template. The values file is a YAML mapping of
variable name to value. Unless --no-publish is given the PDF is also stored
as an artifact and recorded on the template, like an API export.`,
		RunE: runExport,
	}

	cmd.Flags().StringVar(&valuesPath, "values", "", "YAML file with variable values")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output PDF path (required)")
	cmd.Flags().StringVar(&filename, "filename", "", "Artifact filename (default: template name)")
	cmd.Flags().BoolVar(&noPublish, "no-publish", false, "Only write the PDF file")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func initEnv() (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, logger.NewLogger().Named("cli"), nil
}

func runDetect(cmd *cobra.Command, args []string) error {
	_, log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	gdb := database.Get()
	uc := usecases.NewDetectVariablesUseCase(
		repository.NewTemplateRepository(gdb, log),
		repository.NewVariableRepository(gdb, log),
		log,
	)

	result, err := uc.Execute(cmd.Context(), usecases.DetectVariablesCommand{TemplateID: templateID})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n", result.Notification.Type, result.Notification.Message)
	for _, v := range result.Created {
		fmt.Fprintf(out, "  %-24s %-10s %s\n", v.Name, v.Type, v.ID)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	raw, err := loadValues(valuesPath)
	if err != nil {
		return err
	}

	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	ctx := cmd.Context()
	gdb := database.Get()
	templateRepo := repository.NewTemplateRepository(gdb, log)

	tpl, err := templateRepo.GetBySID(ctx, templateID)
	if err != nil {
		return err
	}
	if tpl == nil {
		return &document.UnknownTemplateError{ID: templateID}
	}

	vars, err := repository.NewVariableRepository(gdb, log).ListByTemplate(ctx, tpl.ID())
	if err != nil {
		return err
	}

	session, err := document.NewExportSession(uuid.NewString(), tpl, vars)
	if err != nil {
		return err
	}
	if err := session.SetLineValues(stringValues(raw)); err != nil {
		return err
	}

	assembler, err := pdf.NewFromConfig(&cfg.Export, log)
	if err != nil {
		return fmt.Errorf("failed to initialize pdf assembler: %w", err)
	}
	branding, err := pdf.LoadBranding(&cfg.Branding)
	if err != nil {
		return err
	}

	var data []byte
	artifactID := "none"
	if noPublish {
		if data, err = session.Generate(ctx, assembler, branding); err != nil {
			return err
		}
	} else {
		publisher := services.NewArtifactPublisher(repository.NewArtifactRepository(gdb, log), cfg.Export.DownloadBasePath, log)
		result, err := services.NewExportService(templateRepo, assembler, publisher, branding, log).Export(ctx, tpl, session, filename)
		if err != nil {
			return err
		}
		data = result.Artifact.Data()
		artifactID = result.Artifact.SID()
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes, artifact %s)\n", outPath, len(data), artifactID)
	return nil
}

// stringValues formats YAML scalars the way the variable types expect
// them; a time.Time comes back as YYYY-MM-DD.
func stringValues(raw map[string]any) map[string]string {
	values := make(map[string]string, len(raw))
	for name, v := range raw {
		switch val := v.(type) {
		case nil:
			values[name] = ""
		case string:
			values[name] = val
		case time.Time:
			values[name] = val.Format(time.DateOnly)
		default:
			values[name] = fmt.Sprint(val)
		}
	}
	return values
}

// loadValues reads a YAML mapping of variable values. An empty path yields
// no values, so only defaults and optional variables apply.
func loadValues(path string) (map[string]any, error) {
	if path == "" {
		return map[string]any{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values file: %w", err)
	}

	values := map[string]any{}
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("failed to parse values file %s: %w", path, err)
	}
	return values, nil
}
