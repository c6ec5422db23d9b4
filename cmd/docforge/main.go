package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/docforge/internal/interfaces/cli/migrate"
	"github.com/orris-inc/docforge/internal/interfaces/cli/server"
	"github.com/orris-inc/docforge/internal/interfaces/cli/template"
	"github.com/orris-inc/docforge/internal/shared/version"
)

// @title						docforge API
// @version					1.0
// @description				Document templates with typed variables, guided export sessions and PDF generation.
// @BasePath					/api/v1
// @securityDefinitions.apikey	ApiKeyAuth
// @in							header
// @name						X-API-Key
func main() {
	rootCmd := &cobra.Command{
		Use:     "docforge",
		Short:   "docforge - template variables and PDF export",
		Long:    `docforge manages rich-text document templates, their typed variables and the export pipeline that turns them into branded PDFs.`,
		Version: version.Get().Version,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		template.NewCommand(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
