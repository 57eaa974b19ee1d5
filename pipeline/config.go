package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/declgen/declerrors"
	"github.com/erraggy/declgen/generator"
	"github.com/erraggy/declgen/internal/maputil"
)

const (
	// DefaultMainModule is the module key of the main product namespace
	DefaultMainModule = "code/highcharts"
	// DefaultOptionLink is the see-link template of option declarations
	DefaultOptionLink = "https://api.highcharts.com/{product}/{name}"
	// DefaultReferenceLink is the see-link template of every other declaration
	DefaultReferenceLink = "https://api.highcharts.com/class-reference/{name}"
)

// SeeLinks holds the templates see links are built from. "{name}" is
// replaced by the declaration name and "{product}" by the product.
type SeeLinks struct {
	Option    string `yaml:"option,omitempty"`
	Reference string `yaml:"reference,omitempty"`
}

// Config describes the products of a run.
type Config struct {
	// Namespace is the name of every product namespace
	Namespace string `yaml:"namespace,omitempty"`
	// MainModule is the module key whose tree every product is generated from first
	MainModule string `yaml:"mainModule,omitempty"`
	// Products maps product names to the module key of their namespace
	Products maputil.Ordered[string] `yaml:"products"`
	// ModularProducts maps product names to the module key that augments
	// the main module with the product's additions
	ModularProducts maputil.Ordered[string] `yaml:"modularProducts,omitempty"`
	// SeeLinks holds the see-link templates
	SeeLinks SeeLinks `yaml:"seeLinks,omitempty"`
}

// DefaultConfig returns a configuration with the single product highcharts.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Products.Set("highcharts", DefaultMainModule)
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &declerrors.ParseError{Path: path, Message: "failed to read config", Cause: err}
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes and validates a YAML configuration. Missing
// namespace, main module and see-link templates get their defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &declerrors.ParseError{Path: "<config>", Message: "invalid YAML", Cause: err}
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Namespace == "" {
		c.Namespace = generator.DefaultNamespace
	}
	if c.MainModule == "" {
		c.MainModule = DefaultMainModule
	}
	if c.SeeLinks.Option == "" {
		c.SeeLinks.Option = DefaultOptionLink
	}
	if c.SeeLinks.Reference == "" {
		c.SeeLinks.Reference = DefaultReferenceLink
	}
}

// Validate checks that the configuration describes a runnable set of
// products. The returned error is a *declerrors.ConfigError.
func (c *Config) Validate() error {
	if c.Namespace == "" {
		return &declerrors.ConfigError{Option: "namespace", Message: "cannot be empty"}
	}
	if c.Products.Len() == 0 {
		return &declerrors.ConfigError{Option: "products", Message: "at least one product is required"}
	}
	if err := validModuleKey("mainModule", c.MainModule); err != nil {
		return err
	}

	hasMain := false
	for _, product := range c.Products.Keys() {
		key, _ := c.Products.Get(product)
		if err := validModuleKey("products."+product, key); err != nil {
			return err
		}
		if key == c.MainModule {
			hasMain = true
		}
	}
	if !hasMain {
		return &declerrors.ConfigError{Option: "mainModule", Value: c.MainModule, Message: "must be the module of a product"}
	}

	for _, product := range c.ModularProducts.Keys() {
		key, _ := c.ModularProducts.Get(product)
		if err := validModuleKey("modularProducts."+product, key); err != nil {
			return err
		}
		if _, ok := c.Products.Get(product); !ok {
			return &declerrors.ConfigError{Option: "modularProducts." + product, Message: "product is not configured"}
		}
		if c.productOf(key) != "" {
			return &declerrors.ConfigError{Option: "modularProducts." + product, Value: key, Message: "module is already a product namespace"}
		}
	}
	return nil
}

func validModuleKey(option, key string) error {
	if key == "" {
		return &declerrors.ConfigError{Option: option, Message: "module key cannot be empty"}
	}
	if !filepath.IsLocal(filepath.FromSlash(key)) {
		return &declerrors.ConfigError{Option: option, Value: key, Message: "module key must be a relative path"}
	}
	return nil
}

// ProductNames returns the configured products in configuration order.
func (c *Config) ProductNames() []string {
	return c.Products.Keys()
}

// productOf returns the product whose namespace lives in module key, or "".
func (c *Config) productOf(key string) string {
	for _, product := range c.Products.Keys() {
		if k, _ := c.Products.Get(product); k == key {
			return product
		}
	}
	return ""
}

// SeeLink returns the see-link builder for the configured templates.
func (c *Config) SeeLink() generator.SeeLinkFunc {
	option, reference := c.SeeLinks.Option, c.SeeLinks.Reference
	return func(name, kind, product string) string {
		tmpl := reference
		if kind == "option" {
			tmpl = option
			if product == "" {
				product = c.defaultProduct()
			}
		}
		return strings.NewReplacer("{name}", name, "{product}", product).Replace(tmpl)
	}
}

func (c *Config) defaultProduct() string {
	if p := c.productOf(c.MainModule); p != "" {
		return p
	}
	return "highcharts"
}
