package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/renekerr/sqlinv/internal/collector"
	"github.com/renekerr/sqlinv/internal/config"
	"github.com/renekerr/sqlinv/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate your sqlinv.yml configuration",
	Long: `Check that all configured sources are usable: the target is set,
referenced files exist, required binaries are available and the LDAP
settings are complete.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), "run 'sqlinv init' to create a config file"))
		return err
	}

	fmt.Println(ui.Bold("Validating sqlinv.yml..."))

	passed := 0
	failed := 0

	if cfg.Target.Server == "" {
		ui.ValidationErr("target.server", "inventory server is not set", "set the host that stores the inventory table")
		failed++
	} else {
		ui.ValidationOK("target.server", cfg.Target.Server)
		passed++
	}
	if cfg.Target.Table == "" {
		ui.ValidationErr("target.table", "inventory table is not set", "e.g. dbo.DatabaseInventory")
		failed++
	} else {
		ui.ValidationOK("target.table", cfg.Target.Table)
		passed++
	}

	rawSources := cfg.RawSources
	for _, c := range collector.All() {
		meta := c.Metadata()

		if !c.Enabled(rawSources) {
			continue
		}

		section, _ := rawSources[meta.ConfigKey].(map[string]any)
		if err := c.Configure(section); err != nil {
			ui.ValidationErr(meta.DisplayName, err.Error(), "")
			failed++
			continue
		}

		errs := c.Validate()
		if len(errs) == 0 {
			ui.ValidationOK(meta.DisplayName, "configuration valid")
			passed++
		} else {
			for _, ve := range errs {
				ui.ValidationErr(ve.Field, ve.Message, ve.Suggestion)
				failed++
			}
		}
	}

	fmt.Println()
	if failed == 0 {
		ui.Success(fmt.Sprintf("%d checks passed, 0 errors", passed))
	} else {
		fmt.Printf("%d checks passed, %d errors\n", passed, failed)
	}

	if failed > 0 {
		return fmt.Errorf("%d validation errors", failed)
	}
	return nil
}
