package config

import (
	"os"
	"strings"

	"github.com/kevinburke/ssh_config"

	"github.com/rileyhilliard/pingboard/internal/errors"
)

// ImportSSHHosts reads an OpenSSH client config and returns probe targets for
// its host entries. Wildcard patterns are skipped; they describe matching
// rules, not hosts. When an entry sets HostName, that address is probed and
// the alias is kept only implicitly through it.
func ImportSSHHosts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot open SSH config: "+path,
			"Check the path; the usual location is ~/.ssh/config.")
	}
	defer f.Close()

	cfg, err := ssh_config.Decode(f)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot parse SSH config: "+path,
			"Check the file for syntax errors.")
	}

	var targets []string
	seen := make(map[string]bool)
	for _, host := range cfg.Hosts {
		for _, pattern := range host.Patterns {
			alias := pattern.String()
			if strings.ContainsAny(alias, "*?!") {
				continue
			}
			target := alias
			if hostname, err := cfg.Get(alias, "HostName"); err == nil && hostname != "" {
				target = hostname
			}
			if !seen[target] {
				seen[target] = true
				targets = append(targets, target)
			}
		}
	}
	return targets, nil
}
