package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/photodrop/cli/config"
	"github.com/justapithecus/photodrop/intake"
)

// loadConfig loads --config when given. A nil Config means no file.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	if path == "" {
		return nil, nil
	}
	return config.Load(path)
}

// configVal reads a field from cfg, or the zero value when cfg is nil.
func configVal[T any](cfg *config.Config, get func(*config.Config) T) T {
	if cfg == nil {
		var zero T
		return zero
	}
	return get(cfg)
}

// resolveString returns the flag when set on the command line, then the
// config value when non-empty, then the flag's default.
func resolveString(c *cli.Context, name, cfgVal string) string {
	if c.IsSet(name) {
		return c.String(name)
	}
	if cfgVal != "" {
		return cfgVal
	}
	return c.String(name)
}

// resolveFloat follows the resolveString rules with a zero config value
// meaning unset.
func resolveFloat(c *cli.Context, name string, cfgVal float64) float64 {
	if c.IsSet(name) {
		return c.Float64(name)
	}
	if cfgVal != 0 {
		return cfgVal
	}
	return c.Float64(name)
}

// resolveInt follows the resolveString rules with a nil config value
// meaning unset, so an explicit 0 in config wins over the flag default.
func resolveInt(c *cli.Context, name string, cfgVal *int) int {
	if c.IsSet(name) {
		return c.Int(name)
	}
	if cfgVal != nil {
		return *cfgVal
	}
	return c.Int(name)
}

// resolveDuration follows the resolveString rules with zero meaning unset.
func resolveDuration(c *cli.Context, name string, cfgVal time.Duration) time.Duration {
	if c.IsSet(name) {
		return c.Duration(name)
	}
	if cfgVal != 0 {
		return cfgVal
	}
	return c.Duration(name)
}

// resolveBool returns the flag when set on the command line, else cfgVal.
func resolveBool(c *cli.Context, name string, cfgVal bool) bool {
	if c.IsSet(name) {
		return c.Bool(name)
	}
	return cfgVal
}

// resolvePolicy applies --allowed-type and --max-size-mb over the config
// policy and checks the result.
func resolvePolicy(c *cli.Context, cfg *config.Config) (intake.Policy, error) {
	p := cfg.Policy()
	if c.IsSet("allowed-type") {
		p.AllowedTypes = c.StringSlice("allowed-type")
	}
	p.MaxSizeMB = resolveFloat(c, "max-size-mb", p.MaxSizeMB)
	if err := p.Check(); err != nil {
		return p, fmt.Errorf("invalid acceptance policy: %w", err)
	}
	return p, nil
}

// parseHeaders turns repeated K=V flags into a map, layered over base.
func parseHeaders(base map[string]string, pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(base)+len(pairs))
	for k, v := range base {
		out[k] = v
	}
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid header %q (expected Key=Value)", pair)
		}
		out[k] = strings.TrimSpace(v)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
