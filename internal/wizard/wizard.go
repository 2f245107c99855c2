package wizard

import (
	"strings"

	"github.com/charmbracelet/huh"
)

// Run executes the interactive wizard and returns the user's answers.
func Run(detection DetectionResult) (*WizardAnswers, error) {
	answers := &WizardAnswers{
		TargetTable:    "dbo.DatabaseInventory",
		NamePrefix:     "SR",
		ClusterKeyword: "CLU",
		RetentionDays:  15,
	}

	defaultMode := "ldap"
	if detection.ServersFile != "" {
		defaultMode = "file"
		answers.ServersFile = detection.ServersFile
	} else if detection.PowershellAvailable {
		defaultMode = "powershell"
	}
	answers.DirectoryMode = defaultMode

	modeDesc := "How should candidate servers be enumerated from the directory?"
	if detection.ServersFile != "" {
		modeDesc += "\n\nSaved enumeration found: " + detection.ServersFile
	}
	if detection.PowershellAvailable {
		modeDesc += "\nPowerShell with the ActiveDirectory module detected."
	}

	var olapList string

	targetForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Inventory server").
				Description("SQL Server host that stores the inventory table").
				Placeholder("SRINV01PRO").
				Value(&answers.TargetServer),
			huh.NewInput().
				Title("Inventory table").
				Value(&answers.TargetTable),
			huh.NewInput().
				Title("Testing table (optional)").
				Description("Used with --testing to rehearse a reload").
				Value(&answers.TestingTable),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Directory source").
				Description(modeDesc).
				Options(
					huh.NewOption("Saved server file", "file"),
					huh.NewOption("PowerShell Get-ADComputer", "powershell"),
					huh.NewOption("Live LDAP query", "ldap"),
				).
				Value(&answers.DirectoryMode),
		),
	)
	if err := targetForm.Run(); err != nil {
		return nil, err
	}

	var groups []*huh.Group

	switch answers.DirectoryMode {
	case "file":
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Server file path").
				Description("One server name per line").
				Value(&answers.ServersFile),
		))
	case "ldap":
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("LDAP URL").
				Placeholder("ldap://dc01.mutua.es").
				Value(&answers.LdapURL),
			huh.NewInput().
				Title("Bind user (optional)").
				Description("Leave empty for the current session; password via SQLINV_LDAP_PASSWORD").
				Value(&answers.BindUser),
		))
	}

	if answers.DirectoryMode != "file" {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Base DN / OU").
				Placeholder("OU=BBDD,DC=mutua,DC=es").
				Value(&answers.BaseDN),
			huh.NewInput().
				Title("Server name prefix").
				Description("Directory objects are filtered to this prefix").
				Value(&answers.NamePrefix),
		))
	}

	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Cluster keyword").
			Description("Names containing this substring are cluster network objects").
			Value(&answers.ClusterKeyword),
		huh.NewInput().
			Title("Analysis (OLAP) servers").
			Description("Comma-separated host names, empty if none").
			Value(&olapList),
	))

	form := huh.NewForm(groups...)
	if err := form.Run(); err != nil {
		return nil, err
	}

	for _, s := range strings.Split(olapList, ",") {
		if s = strings.TrimSpace(s); s != "" {
			answers.OlapServers = append(answers.OlapServers, s)
		}
	}

	return answers, nil
}
