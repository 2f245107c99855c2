package collector

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/go-ldap/ldap/v3"

	"github.com/renekerr/sqlinv/internal/model"
	"github.com/renekerr/sqlinv/internal/util"
)

func init() {
	Register(func() RegisteredCollector { return &DirectoryCollector{} })
}

// DirectoryCollector enumerates candidate database servers from the
// directory service. Three modes, tried in this order: a previously saved
// server file, a PowerShell Get-ADComputer query, or a live LDAP search.
type DirectoryCollector struct {
	URL           string
	BindUser      string
	BindPassword  string
	BaseDN        string
	NamePrefix    string
	File          string
	UsePowershell bool
	ExtraHosts    []string
}

func (dc *DirectoryCollector) Metadata() CollectorMetadata {
	return CollectorMetadata{
		Name:        "directory",
		DisplayName: "Directory Service",
		Description: "Enumerates candidate SQL Server hosts from the directory OU",
		ConfigKey:   "directory",
		DetectHint:  "powershell",
	}
}

func (dc *DirectoryCollector) Enabled(sources map[string]any) bool {
	section, ok := sources["directory"].(map[string]any)
	if !ok {
		return false
	}
	url, _ := section["url"].(string)
	file, _ := section["file"].(string)
	ps, _ := section["use_powershell"].(bool)
	return url != "" || file != "" || ps
}

func (dc *DirectoryCollector) Configure(section map[string]any) error {
	if section == nil {
		return nil
	}
	if v, ok := section["url"].(string); ok {
		dc.URL = v
	}
	if v, ok := section["bind_user"].(string); ok {
		dc.BindUser = v
	}
	if v, ok := section["bind_password"].(string); ok {
		dc.BindPassword = v
	}
	if dc.BindPassword == "" {
		dc.BindPassword = os.Getenv("SQLINV_LDAP_PASSWORD")
	}
	if v, ok := section["base_dn"].(string); ok {
		dc.BaseDN = v
	}
	if v, ok := section["name_prefix"].(string); ok {
		dc.NamePrefix = v
	}
	if v, ok := section["file"].(string); ok {
		dc.File = v
	}
	if v, ok := section["use_powershell"].(bool); ok {
		dc.UsePowershell = v
	}
	return nil
}

func (dc *DirectoryCollector) Validate() []ValidationError {
	var errs []ValidationError
	if dc.File != "" {
		if _, err := os.Stat(dc.File); err != nil {
			errs = append(errs, ValidationError{
				Field:      "sources.directory.file",
				Message:    fmt.Sprintf("file not found: %s", dc.File),
				Suggestion: "check the path or remove file to query the directory live",
			})
		}
		return errs
	}
	if dc.UsePowershell {
		if _, err := exec.LookPath("powershell"); err != nil {
			errs = append(errs, ValidationError{
				Field:      "sources.directory.use_powershell",
				Message:    "powershell binary not found in PATH",
				Suggestion: "disable use_powershell and set an LDAP url instead",
			})
		}
	} else if dc.URL == "" {
		errs = append(errs, ValidationError{
			Field:      "sources.directory.url",
			Message:    "url is required when no file or PowerShell fallback is configured",
			Suggestion: "set the LDAP URL of a domain controller, e.g. ldap://dc01.mutua.es",
		})
	}
	if dc.BaseDN == "" && dc.File == "" {
		errs = append(errs, ValidationError{
			Field:      "sources.directory.base_dn",
			Message:    "base_dn is required for directory queries",
			Suggestion: "set the OU that holds the database servers",
		})
	}
	return errs
}

// Collect enumerates computer names, uppercases them and appends the
// configured extra hosts, preserving directory order.
func (dc *DirectoryCollector) Collect(inv *model.Inventory) error {
	names, err := dc.servers()
	if err != nil {
		return fmt.Errorf("enumerating directory servers: %w", err)
	}

	for _, name := range names {
		if n := util.NormalizeName(name); n != "" {
			inv.Candidates = append(inv.Candidates, n)
		}
	}
	for _, host := range dc.ExtraHosts {
		if h := util.NormalizeName(host); h != "" {
			inv.Candidates = append(inv.Candidates, h)
		}
	}
	return nil
}

func (dc *DirectoryCollector) servers() ([]string, error) {
	if dc.File != "" {
		data, err := os.ReadFile(dc.File)
		if err != nil {
			return nil, err
		}
		return util.CleanLines(strings.Split(string(data), "\n")), nil
	}
	if dc.UsePowershell {
		return dc.powershellServers()
	}
	return dc.ldapServers()
}

func (dc *DirectoryCollector) powershellServers() ([]string, error) {
	query := fmt.Sprintf(
		"Get-ADComputer -Filter \"Name -like '%s*'\" -Properties Name, DistinguishedName | "+
			"Where-Object { $_.DistinguishedName -like \"*%s*\" } | "+
			"Select-Object Name | Format-Table -AutoSize -HideTableHeaders",
		dc.NamePrefix, dc.BaseDN)

	output, err := exec.Command("powershell", "-Command", query).Output()
	if err != nil {
		return nil, fmt.Errorf("running Get-ADComputer: %w", err)
	}
	return util.CleanLines(strings.Split(string(output), "\n")), nil
}

func (dc *DirectoryCollector) ldapServers() ([]string, error) {
	conn, err := dc.connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	filter := fmt.Sprintf("(&(objectClass=computer)(name=%s*))", ldap.EscapeFilter(dc.NamePrefix))
	req := ldap.NewSearchRequest(
		dc.BaseDN, ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		filter, []string{"name"}, nil)

	res, err := conn.Search(req)
	if err != nil {
		return nil, fmt.Errorf("ldap search: %w", err)
	}

	names := make([]string, 0, len(res.Entries))
	for _, entry := range res.Entries {
		names = append(names, entry.GetAttributeValue("name"))
	}
	return names, nil
}

// LookupContact resolves a responsible person's display name to a mail
// address through the directory. Only available in LDAP mode.
func (dc *DirectoryCollector) LookupContact(name string) (model.Contact, error) {
	contact := model.Contact{Name: name}
	if dc.URL == "" {
		return contact, fmt.Errorf("contact lookup requires an LDAP url")
	}

	conn, err := dc.connect()
	if err != nil {
		return contact, err
	}
	defer conn.Close()

	filter := fmt.Sprintf("(&(objectClass=user)(displayName=*%s*))", ldap.EscapeFilter(name))
	req := ldap.NewSearchRequest(
		dc.BaseDN, ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		filter, []string{"displayName", "mail"}, nil)

	res, err := conn.Search(req)
	if err != nil {
		return contact, fmt.Errorf("ldap search: %w", err)
	}
	if len(res.Entries) == 0 {
		return contact, fmt.Errorf("no directory entry for %q", name)
	}

	entry := res.Entries[0]
	contact.Name = entry.GetAttributeValue("displayName")
	contact.Email = entry.GetAttributeValue("mail")
	return contact, nil
}

func (dc *DirectoryCollector) connect() (*ldap.Conn, error) {
	conn, err := ldap.DialURL(dc.URL)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", dc.URL, err)
	}

	if dc.BindPassword == "" {
		err = conn.UnauthenticatedBind(dc.BindUser)
	} else {
		err = conn.Bind(dc.BindUser, dc.BindPassword)
	}
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ldap bind: %w", err)
	}
	return conn, nil
}
