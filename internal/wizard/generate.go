package wizard

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/yaml.v3"
)

// WizardAnswers holds all user responses from the wizard.
type WizardAnswers struct {
	// Target inventory
	TargetServer  string
	TargetTable   string
	TestingTable  string
	RetentionDays int

	// Directory enumeration
	DirectoryMode string // "file", "powershell" or "ldap"
	ServersFile   string
	LdapURL       string
	BindUser      string
	BaseDN        string
	NamePrefix    string

	// Estate layout
	ClusterKeyword string
	OlapServers    []string
	OlapEndpoint   string
}

const configTemplate = `# sqlinv configuration

target:
  server: {{ .TargetServer }}
  table: {{ .TargetTable }}
{{- if .TestingTable }}
  testing_table: {{ .TestingTable }}
{{- end }}
  backup_retention_days: {{ .RetentionDays }}

sources:
  directory:
{{- if eq .DirectoryMode "file" }}
    file: {{ .ServersFile }}
{{- else if eq .DirectoryMode "powershell" }}
    use_powershell: true
{{- else }}
    url: {{ .LdapURL }}
{{- if .BindUser }}
    bind_user: {{ .BindUser }}
{{- end }}
{{- end }}
{{- if .BaseDN }}
    base_dn: {{ .BaseDN }}
{{- end }}
    name_prefix: {{ .NamePrefix }}

  sqlserver:
    cluster_keyword: {{ .ClusterKeyword }}

{{- if .OlapServers }}

  olap:
    endpoint: "{{ .OlapEndpoint }}"
    servers:
{{- range .OlapServers }}
      - {{ . }}
{{- end }}
{{- end }}

servers:
  servers_to_review: []
  servers_to_exclude: []
  responsible_contacts: []
`

// GenerateConfig renders the YAML config from wizard answers and checks
// that the result actually parses as YAML before handing it back.
func GenerateConfig(answers WizardAnswers) (string, error) {
	if answers.NamePrefix == "" {
		answers.NamePrefix = "SR"
	}
	if answers.ClusterKeyword == "" {
		answers.ClusterKeyword = "CLU"
	}
	if answers.RetentionDays == 0 {
		answers.RetentionDays = 15
	}
	if answers.OlapEndpoint == "" {
		answers.OlapEndpoint = "http://%s/olap/msmdpump.dll"
	}
	if answers.DirectoryMode == "" {
		answers.DirectoryMode = "ldap"
	}

	tmpl, err := template.New("config").Parse(configTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, answers); err != nil {
		return "", err
	}

	var check map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &check); err != nil {
		return "", fmt.Errorf("generated config is not valid YAML: %w", err)
	}

	return buf.String(), nil
}
