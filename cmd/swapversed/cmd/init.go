package cmd

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	cmtos "github.com/cometbft/cometbft/libs/os"
	"github.com/spf13/cobra"

	"github.com/swapverse/swapverse/app"
)

const flagOverwrite = "overwrite"

const appTomlTemplate = `# swapversed configuration

log-level = "{{ .LogLevel }}"
log-format = "{{ .LogFormat }}"

# goleveldb or memdb
db-backend = "{{ .DBBackend }}"

# How often due lifecycle transitions are applied to every pool
sweep-interval = "{{ .SweepInterval }}"

[api]
address = "{{ .API.Address }}"
jwt-secret = "{{ .API.JWTSecret }}"
cors-origins = [{{ range $i, $o := .API.CORSOrigins }}{{ if $i }}, {{ end }}"{{ $o }}"{{ end }}]
rate-limit-rps = {{ .API.RateLimitRPS }}
read-timeout = "{{ .API.ReadTimeout }}"
write-timeout = "{{ .API.WriteTimeout }}"
request-timeout = "{{ .API.RequestTimeout }}"
shutdown-timeout = "{{ .API.ShutdownTimeout }}"

[metrics]
enabled = {{ .Metrics.Enabled }}
address = "{{ .Metrics.Address }}"
max-sweep-age = "{{ .Metrics.MaxSweepAge }}"

[telemetry]
enabled = {{ .Telemetry.Enabled }}
otlp-endpoint = "{{ .Telemetry.OTLPEndpoint }}"
prometheus-enabled = {{ .Telemetry.PrometheusEnabled }}
sample-rate = {{ .Telemetry.SampleRate }}
environment = "{{ .Telemetry.Environment }}"
`

// InitCmd returns a command that writes the default configuration and genesis
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default app.toml and genesis.json",
		Long: `Write the default configuration and genesis files under the home directory.

Example:
  swapversed init --home ~/.swapverse
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home, _ := cmd.Flags().GetString(flagHome)
			overwrite, _ := cmd.Flags().GetBool(flagOverwrite)

			if err := cmtos.EnsureDir(filepath.Join(home, "config"), 0o755); err != nil {
				return err
			}
			if err := cmtos.EnsureDir(filepath.Join(home, "data"), 0o755); err != nil {
				return err
			}

			for _, path := range []string{configPath(home), genesisPath(home)} {
				if !overwrite && cmtos.FileExists(path) {
					return fmt.Errorf("%s already exists, use --%s to replace it", path, flagOverwrite)
				}
			}

			cfg := DefaultConfig()
			secret := make([]byte, 32)
			if _, err := rand.Read(secret); err != nil {
				return fmt.Errorf("generate JWT secret: %w", err)
			}
			cfg.API.JWTSecret = hex.EncodeToString(secret)

			appToml, err := renderAppToml(cfg)
			if err != nil {
				return err
			}
			if err := os.WriteFile(configPath(home), appToml, 0o600); err != nil {
				return err
			}

			genesis, err := json.MarshalIndent(app.NewDefaultGenesisState(), "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(genesisPath(home), genesis, 0o644); err != nil {
				return err
			}

			cmd.Printf("initialized swapverse home at %s\n", home)
			return nil
		},
	}

	cmd.Flags().Bool(flagOverwrite, false, "overwrite existing config and genesis files")
	return cmd
}

func renderAppToml(cfg Config) ([]byte, error) {
	tmpl, err := template.New("app.toml").Parse(appTomlTemplate)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return nil, fmt.Errorf("render app.toml: %w", err)
	}
	return []byte(strings.TrimLeft(buf.String(), "\n")), nil
}
