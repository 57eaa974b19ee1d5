package generator

import (
	"fmt"
	"time"

	"github.com/erraggy/declgen/declaration"
	"github.com/erraggy/declgen/doctree"
	"github.com/erraggy/declgen/internal/issues"
	"github.com/erraggy/declgen/internal/severity"
)

// Severity indicates the severity level of a generation issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about generation choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates a doc node that could not be fully translated
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates input that could not be turned into a declaration
	SeverityError = severity.SeverityError
	// SeverityCritical indicates a pass that could not complete
	SeverityCritical = severity.SeverityCritical
)

// GenerateIssue represents a single generation issue
type GenerateIssue = issues.Issue

// DefaultNamespace is the name of the root namespace module.
const DefaultNamespace = "Highcharts"

// SeeLinkFunc builds the reference link attached to a declaration.
// kind is the doclet kind, or "option" for option declarations. product
// is empty outside of product-scoped options.
type SeeLinkFunc func(name, kind, product string) string

// DefaultSeeLink points options at the per-product option reference and
// everything else at the class reference.
func DefaultSeeLink(name, kind, product string) string {
	if kind == "option" {
		if product == "" {
			product = "highcharts"
		}
		return "https://api.highcharts.com/" + product + "/" + name
	}
	return "https://api.highcharts.com/class-reference/" + name
}

// GenerateResult contains the outcome of one generator pass
type GenerateResult struct {
	// Root is the declaration tree the pass populated
	Root *declaration.Declaration
	// Product is the product the pass was filtered to, if any
	Product string
	// Issues contains all generation issues
	Issues []GenerateIssue
	// WarningCount is the total number of warnings
	WarningCount int
	// InfoCount is the total number of info messages
	InfoCount int
	// DeclarationCount is the number of declarations below Root
	DeclarationCount int
	// GenerateTime is the duration of the pass
	GenerateTime time.Duration
}

// HasWarnings returns true if there are any warnings
func (r *GenerateResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// Option is a function that configures a generator
type Option func(*generateConfig) error

type generateConfig struct {
	product   string
	products  []string
	namespace string
	seeLink   SeeLinkFunc
	logger    doctree.Logger
}

func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		namespace: DefaultNamespace,
		seeLink:   DefaultSeeLink,
		logger:    doctree.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("generator: invalid options: %w", err)
		}
	}
	return cfg, nil
}

// WithProduct filters the pass to doc nodes available in product.
// Default: "" (no filtering)
func WithProduct(product string) Option {
	return func(cfg *generateConfig) error {
		cfg.product = product
		return nil
	}
}

// WithProducts lists every configured product. The series discriminant
// description is tagged with them.
func WithProducts(products ...string) Option {
	return func(cfg *generateConfig) error {
		cfg.products = append([]string(nil), products...)
		return nil
	}
}

// WithNamespaceName sets the name of the root namespace that option
// declarations are qualified with.
// Default: "Highcharts"
func WithNamespaceName(name string) Option {
	return func(cfg *generateConfig) error {
		if name == "" {
			return fmt.Errorf("namespace name cannot be empty")
		}
		cfg.namespace = name
		return nil
	}
}

// WithSeeLink sets the see-link builder. A nil func disables see links.
// Default: DefaultSeeLink
func WithSeeLink(fn SeeLinkFunc) Option {
	return func(cfg *generateConfig) error {
		cfg.seeLink = fn
		return nil
	}
}

// WithLogger sets the logger for generation diagnostics.
// Default: doctree.NopLogger
func WithLogger(l doctree.Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.logger = doctree.OrNop(l)
		return nil
	}
}

// reporter collects issues and mirrors them to the logger.
type reporter struct {
	logger doctree.Logger
	issues []GenerateIssue
}

func (r *reporter) warn(node *doctree.Node, msg string, value any) {
	issue := GenerateIssue{
		Message:  msg,
		Severity: SeverityWarning,
		Value:    value,
	}
	if node != nil {
		issue.Path = node.Path()
		if node.Doclet != nil && node.Doclet.Name != "" {
			issue.Path = node.Doclet.Name
		}
		issue.File = node.Meta.Filename
		issue.Line = node.Meta.Line
	}
	r.issues = append(r.issues, issue)
	r.logger.Warn(msg, "path", issue.Path, "value", value)
}

func (r *reporter) warnf(path, msg string, value any) {
	r.issues = append(r.issues, GenerateIssue{Path: path, Message: msg, Severity: SeverityWarning, Value: value})
	r.logger.Warn(msg, "path", path, "value", value)
}

func (r *reporter) result(root *declaration.Declaration, product string, start time.Time) *GenerateResult {
	res := &GenerateResult{
		Root:         root,
		Product:      product,
		Issues:       append([]GenerateIssue(nil), r.issues...),
		WarningCount: issues.Count(r.issues, SeverityWarning),
		InfoCount:    issues.Count(r.issues, SeverityInfo),
		GenerateTime: time.Since(start),
	}
	if root != nil {
		res.DeclarationCount = len(root.ChildrenNames(true))
	}
	return res
}
