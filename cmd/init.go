package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/renekerr/sqlinv/internal/ui"
	"github.com/renekerr/sqlinv/internal/wizard"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sqlinv.yml config file interactively",
	Long: `Scan the environment for usable tools (PowerShell, sqlcmd, a saved
directory enumeration) and generate a config file through an interactive
wizard.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := "sqlinv.yml"

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("%s already exists.\n", configPath)
		fmt.Print("Overwrite? [y/N] ")
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	fmt.Println(ui.Bold("Scanning environment..."))
	detection := wizard.Detect(nil)

	answers, err := wizard.Run(detection)
	if err != nil {
		return fmt.Errorf("wizard: %w", err)
	}

	content, err := wizard.GenerateConfig(*answers)
	if err != nil {
		return fmt.Errorf("generating config: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	ui.Success(fmt.Sprintf("Created %s", configPath))
	fmt.Println()
	fmt.Printf("Next step: %s\n", ui.Bold("sqlinv validate"))
	fmt.Printf("           %s\n", ui.Hint("then fill in the exclusion lists before running reconcile"))

	return nil
}
