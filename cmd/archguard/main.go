// Command archguard checks that modules/<name>/{domain,services,presentation,infrastructure}
// only import inward.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/roblaszczak/go-cleanarch/cleanarch"
	"gopkg.in/yaml.v3"
)

type config struct {
	Root           string   `yaml:"root"`
	IgnoreTests    bool     `yaml:"ignore_tests"`
	IgnorePackages []string `yaml:"ignore_packages"`
	// Modules any other module may import, e.g. test backends.
	SharedModules []string `yaml:"shared_modules"`
	Allow         []string `yaml:"allow"`
	Layers        struct {
		Domain         []string `yaml:"domain"`
		Application    []string `yaml:"application"`
		Interfaces     []string `yaml:"interfaces"`
		Infrastructure []string `yaml:"infrastructure"`
	} `yaml:"layers"`
}

var (
	defaultDomain         = []string{"domain"}
	defaultApplication    = []string{"services"}
	defaultInterfaces     = []string{"presentation"}
	defaultInfrastructure = []string{"infrastructure"}
)

func main() {
	configPath := flag.String("config", ".archguard.yml", "config file")
	debug := flag.Bool("debug", false, "print go-cleanarch debug output")
	flag.Parse()

	if *debug {
		cleanarch.Log.SetOutput(os.Stderr)
	}
	if err := run(*configPath, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, out io.Writer) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("archguard: read config: %w", err)
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return fmt.Errorf("archguard: resolve root: %w", err)
	}

	v := cleanarch.NewValidator(cfg.aliases())
	ok, found, err := v.Validate(root, cfg.IgnoreTests, cfg.IgnorePackages)
	if err != nil {
		return fmt.Errorf("archguard: validate %s: %w", root, err)
	}
	violations := cfg.filter(found)
	if ok || len(violations) == 0 {
		_, err := fmt.Fprintln(out, "archguard: ok")
		return err
	}
	for _, msg := range violations {
		if _, err := fmt.Fprintln(out, msg); err != nil {
			return err
		}
	}
	return fmt.Errorf("archguard: %d layering violation(s)", len(violations))
}

func loadConfig(path string) (*config, error) {
	cfg := &config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	if cfg.Root == "" {
		cfg.Root = "modules"
	}
	return cfg, nil
}

func (c *config) aliases() map[string]cleanarch.Layer {
	out := map[string]cleanarch.Layer{}
	add := func(names, defaults []string, layer cleanarch.Layer) {
		if len(names) == 0 {
			names = defaults
		}
		for _, n := range names {
			if n = strings.TrimSpace(n); n != "" {
				out[n] = layer
			}
		}
	}
	add(c.Layers.Domain, defaultDomain, cleanarch.LayerDomain)
	add(c.Layers.Application, defaultApplication, cleanarch.LayerApplication)
	add(c.Layers.Interfaces, defaultInterfaces, cleanarch.LayerInterfaces)
	add(c.Layers.Infrastructure, defaultInfrastructure, cleanarch.LayerInfrastructure)
	return out
}

var crossModule = regexp.MustCompile(`between ([\w-]+) and ([\w-]+) modules`)

// filter drops violations that involve a shared module or contain an
// allowed substring.
func (c *config) filter(found []cleanarch.ValidationError) []string {
	shared := map[string]bool{}
	for _, m := range c.SharedModules {
		if m = strings.TrimSpace(m); m != "" {
			shared[m] = true
		}
	}

	var out []string
	for _, v := range found {
		msg := v.Error()
		if m := crossModule.FindStringSubmatch(msg); len(m) == 3 && (shared[m[1]] || shared[m[2]]) {
			continue
		}
		if c.allowed(msg) {
			continue
		}
		out = append(out, msg)
	}
	return out
}

func (c *config) allowed(msg string) bool {
	for _, p := range c.Allow {
		if p != "" && strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
