package tools

// Tool describes one managed security tool and the container names it may
// run under. ContainerNames are checked in order against the fleet view;
// the first match wins.
type Tool struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Port           int      `json:"port"`
	Protocols      []string `json:"protocols"`
	ContainerNames []string `json:"container_names"`
	AccessURL      string   `json:"access_url,omitempty"`
}

type Category struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Catalog is the ordered tool table plus its category index.
type Catalog struct {
	Tools      []Tool              `json:"tools"`
	Categories map[string]Category `json:"categories"`
}

// Lookup returns the tool with the given id.
func (c *Catalog) Lookup(id string) (Tool, bool) {
	for _, t := range c.Tools {
		if t.ID == id {
			return t, true
		}
	}
	return Tool{}, false
}

// Default returns the built-in catalog of managed tools.
func Default() *Catalog {
	return &Catalog{
		Tools: []Tool{
			{
				ID:             "velociraptor",
				Name:           "Velociraptor",
				Description:    "Digital Forensics and Incident Response platform for live endpoint forensics and threat hunting.",
				Category:       "dfir",
				Port:           8889,
				Protocols:      []string{"https"},
				ContainerNames: []string{"velociraptor", "btpi-velociraptor", "cyber-blue-test-velociraptor-1"},
				AccessURL:      "https://{server_ip}:8889",
			},
			{
				ID:             "wazuh-dashboard",
				Name:           "Wazuh Dashboard",
				Description:    "SIEM dashboard for log analysis, alerting, and security monitoring.",
				Category:       "siem",
				Port:           5601,
				Protocols:      []string{"https"},
				ContainerNames: []string{"wazuh-dashboard", "wazuh.dashboard", "cyber-blue-test-wazuh.dashboard-1"},
				AccessURL:      "https://{server_ip}:5601",
			},
			{
				ID:             "wazuh-manager",
				Name:           "Wazuh Manager",
				Description:    "Wazuh Manager API for agent management and SIEM configuration.",
				Category:       "siem",
				Port:           55000,
				Protocols:      []string{"https"},
				ContainerNames: []string{"wazuh-manager", "wazuh.manager", "cyber-blue-test-wazuh.manager-1"},
				AccessURL:      "https://{server_ip}:55000",
			},
			{
				ID:             "elasticsearch",
				Name:           "Elasticsearch",
				Description:    "Search and analytics engine for log storage and retrieval.",
				Category:       "data",
				Port:           9200,
				Protocols:      []string{"https"},
				ContainerNames: []string{"elasticsearch", "btpi-elasticsearch", "cyber-blue-test-elasticsearch-1"},
				AccessURL:      "https://{server_ip}:9200",
			},
			{
				ID:             "portainer",
				Name:           "Portainer",
				Description:    "Web-based container management interface for Docker and Kubernetes.",
				Category:       "management",
				Port:           9443,
				Protocols:      []string{"https"},
				ContainerNames: []string{"portainer", "btpi-portainer", "cyber-blue-test-portainer-1"},
				AccessURL:      "https://{server_ip}:9443",
			},
			{
				ID:             "kasm",
				Name:           "Kasm Workspaces",
				Description:    "Browser-isolated workspace streaming for analyst desktops.",
				Category:       "management",
				Port:           6443,
				Protocols:      []string{"https"},
				ContainerNames: []string{"kasm-server", "kasm_kasm_1", "cyber-blue-test-kasm-1"},
				AccessURL:      "https://{server_ip}:6443",
			},
			{
				ID:             "cassandra",
				Name:           "Cassandra",
				Description:    "NoSQL database backend for distributed data storage.",
				Category:       "data",
				Port:           9042,
				Protocols:      []string{"tcp"},
				ContainerNames: []string{"cassandra", "btpi-cassandra", "cyber-blue-test-cassandra-1"},
			},
		},
		Categories: map[string]Category{
			"dfir":       {Name: "Digital Forensics & Incident Response", Color: "primary"},
			"siem":       {Name: "SIEM & Log Analysis", Color: "success"},
			"data":       {Name: "Data Storage & Search", Color: "info"},
			"management": {Name: "Container Management", Color: "warning"},
		},
	}
}
