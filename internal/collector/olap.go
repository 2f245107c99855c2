package collector

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/renekerr/sqlinv/internal/model"
	"github.com/renekerr/sqlinv/internal/ui"
)

func init() {
	Register(func() RegisteredCollector { return &OlapCollector{} })
}

// discoverCatalogs is the XMLA Discover request for the DBSCHEMA_CATALOGS
// rowset, the analysis-services equivalent of listing databases.
const discoverCatalogs = `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <Discover xmlns="urn:schemas-microsoft-com:xml-analysis">
      <RequestType>DBSCHEMA_CATALOGS</RequestType>
      <Restrictions/>
      <Properties>
        <PropertyList>
          <Format>Tabular</Format>
        </PropertyList>
      </Properties>
    </Discover>
  </soap:Body>
</soap:Envelope>`

// OlapCollector retrieves hosted catalogs from SSAS/tabular servers over
// their XMLA HTTP endpoint. Failure policy matches the SQL collector:
// record and continue.
type OlapCollector struct {
	Servers  []string
	Endpoint string // host substituted for %s, e.g. "http://%s/olap/msmdpump.dll"
	Timeout  time.Duration

	client *http.Client
}

func (oc *OlapCollector) Metadata() CollectorMetadata {
	return CollectorMetadata{
		Name:        "olap",
		DisplayName: "Analysis Services",
		Description: "Collects hosted catalogs from SSAS/tabular servers via XMLA",
		ConfigKey:   "olap",
		DetectHint:  "",
	}
}

func (oc *OlapCollector) Enabled(sources map[string]any) bool {
	section, ok := sources["olap"].(map[string]any)
	if !ok {
		return false
	}
	servers, _ := section["servers"].([]any)
	return len(servers) > 0
}

func (oc *OlapCollector) Configure(section map[string]any) error {
	if section == nil {
		return nil
	}
	if v, ok := section["servers"].([]any); ok {
		for _, s := range v {
			if name, ok := s.(string); ok {
				oc.Servers = append(oc.Servers, name)
			}
		}
	}
	if v, ok := section["endpoint"].(string); ok && v != "" {
		oc.Endpoint = v
	}
	return nil
}

func (oc *OlapCollector) Validate() []ValidationError {
	var errs []ValidationError
	if oc.Endpoint != "" && !strings.Contains(oc.Endpoint, "%s") {
		errs = append(errs, ValidationError{
			Field:      "sources.olap.endpoint",
			Message:    "endpoint must contain %s for the host name",
			Suggestion: "e.g. http://%s/olap/msmdpump.dll",
		})
	}
	return errs
}

// xmlaRow matches one row of the tabular Discover response. Only the
// catalog name is of interest.
type xmlaRow struct {
	CatalogName string `xml:"CATALOG_NAME"`
}

type xmlaResponse struct {
	Rows []xmlaRow `xml:"Body>DiscoverResponse>return>root>row"`
}

func (oc *OlapCollector) Collect(inv *model.Inventory) error {
	if oc.Endpoint == "" {
		oc.Endpoint = "http://%s/olap/msmdpump.dll"
	}
	if oc.client == nil {
		timeout := oc.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		oc.client = &http.Client{Timeout: timeout}
	}

	for i, server := range oc.Servers {
		ui.Progress(i+1, len(oc.Servers), server)
		catalogs, err := oc.discover(server)
		if err != nil {
			inv.AddFailure(server, "olap", err)
			continue
		}
		if len(catalogs) == 0 {
			inv.AddDatabase(server, model.NoDatabaseFound)
			continue
		}
		for _, catalog := range catalogs {
			inv.AddDatabase(server, catalog)
		}
	}
	return nil
}

func (oc *OlapCollector) discover(server string) ([]string, error) {
	url := fmt.Sprintf(oc.Endpoint, server)

	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(discoverCatalogs))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/xml")
	req.Header.Set("SOAPAction", "urn:schemas-microsoft-com:xml-analysis:Discover")

	resp, err := oc.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("xmla discover returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed xmlaResponse
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing xmla response: %w", err)
	}

	catalogs := make([]string, 0, len(parsed.Rows))
	for _, row := range parsed.Rows {
		if row.CatalogName != "" {
			catalogs = append(catalogs, row.CatalogName)
		}
	}
	return catalogs, nil
}
