package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/goliatone/go-docforms/internal/infer"
	"github.com/goliatone/go-docforms/internal/persona"
	"github.com/goliatone/go-docforms/pkg/classify"
	"github.com/goliatone/go-docforms/pkg/document"
	"github.com/goliatone/go-docforms/pkg/model"
	"github.com/goliatone/go-docforms/pkg/overrides"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLogger sets the logger used for per-stage debug output and warning
// diagnostics. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithClassifier injects a classifier, typically one built with extra rules.
func WithClassifier(classifier *classify.Classifier) Option {
	return func(o *Orchestrator) {
		o.classifier = classifier
	}
}

// WithOverrides registers the administrator override store.
func WithOverrides(store *overrides.Store) Option {
	return func(o *Orchestrator) {
		o.overrides = store
	}
}

// WithCache enables result caching. Pass nil to disable it.
func WithCache(cache Cache) Option {
	return func(o *Orchestrator) {
		o.cache = cache
		o.cacheSpecified = true
	}
}

// WithBuilder injects a custom schema builder.
func WithBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithDecorators registers decorators that run against the built schema
// before it is cached.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithTitles overrides section headings of the default builder. It has no
// effect when WithBuilder is also supplied.
func WithTitles(titles map[model.Category]string) Option {
	return func(o *Orchestrator) {
		o.builderOptions = append(o.builderOptions, model.WithTitles(titles))
		if len(titles) == 0 {
			return
		}
		if o.titles == nil {
			o.titles = make(map[model.Category]string, len(titles))
		}
		for category, title := range titles {
			o.titles[category] = title
		}
	}
}

// Orchestrator coordinates the analysis of a template document into a form
// schema. Missing dependencies are initialised with the built-in
// implementations so callers can start with a single constructor call.
type Orchestrator struct {
	logger         *slog.Logger
	classifier     *classify.Classifier
	overrides      *overrides.Store
	builder        model.Builder
	builderOptions []model.BuilderOption
	titles         map[model.Category]string
	decorators     []model.Decorator
	cache          Cache
	cacheSpecified bool
	settings       string
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the template to analyse.
type Request struct {
	// TemplateID keys the cache and selects template overrides. When empty
	// the document id is used.
	TemplateID string

	// Document is the immutable snapshot to analyse.
	Document document.Document
}

// Result is the outcome of one analysis.
type Result struct {
	Schema       model.FormSchema      `json:"schema" yaml:"schema"`
	Table        []model.FieldSpec     `json:"table" yaml:"table"`
	Multiplicity []model.PersonaCount  `json:"multiplicity" yaml:"multiplicity"`
	Suggestions  []string              `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
	Diagnostics  []model.Diagnostic    `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Unclassified []string              `json:"unclassified,omitempty" yaml:"unclassified,omitempty"`
	Occurrences  []document.Occurrence `json:"occurrences,omitempty" yaml:"occurrences,omitempty"`
	Keys         []string              `json:"keys" yaml:"keys"`
	Cached       bool                  `json:"cached" yaml:"cached"`
}

// Warnings returns the warning-level diagnostics.
func (r Result) Warnings() []model.Diagnostic {
	var out []model.Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == model.SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// Clone returns a deep copy of r. Cached results are stored and served as
// clones so callers may modify what Analyze returns.
func (r Result) Clone() Result {
	out := r
	out.Schema = r.Schema.Clone()
	if r.Table != nil {
		out.Table = make([]model.FieldSpec, len(r.Table))
		for i, spec := range r.Table {
			out.Table[i] = spec.Clone()
		}
	}
	if r.Multiplicity != nil {
		out.Multiplicity = make([]model.PersonaCount, len(r.Multiplicity))
		for i, count := range r.Multiplicity {
			count.Instances = append([]int(nil), count.Instances...)
			out.Multiplicity[i] = count
		}
	}
	out.Suggestions = cloneStrings(r.Suggestions)
	out.Unclassified = cloneStrings(r.Unclassified)
	out.Keys = cloneStrings(r.Keys)
	if r.Diagnostics != nil {
		out.Diagnostics = append([]model.Diagnostic(nil), r.Diagnostics...)
	}
	if r.Occurrences != nil {
		out.Occurrences = append([]document.Occurrence(nil), r.Occurrences...)
	}
	return out
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string(nil), values...)
}

// Analyze runs tokenize → fingerprint → cache check → classify → reconcile →
// infer → overrides → aggregate → build → decorate. Content problems are
// reported as diagnostics; errors are returned only for caller mistakes and
// failing decorators.
func (o *Orchestrator) Analyze(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	templateID := strings.TrimSpace(req.TemplateID)
	if templateID == "" {
		templateID = strings.TrimSpace(req.Document.ID)
	}
	if o.cache != nil && templateID == "" {
		return Result{}, errors.New("orchestrator: template id is required when caching is enabled")
	}
	log := o.logger.With("template", templateID)

	keys, diags := document.ExtractKeys(req.Document)
	fingerprint := document.Fingerprint(keys)
	cacheKey := fingerprint + ":" + o.overrides.Fingerprint(templateID) + ":" + o.settings
	log.Debug("placeholders extracted", "keys", len(keys), "fingerprint", fingerprint)

	if o.cache != nil {
		if entry, ok := o.cache.Get(templateID); ok && entry.Fingerprint == cacheKey {
			log.Debug("schema served from cache")
			cached := entry.Result.Clone()
			cached.Occurrences = document.Occurrences(req.Document)
			cached.Cached = true
			return cached, nil
		}
	}

	results := o.classifier.ClassifyAll(keys)
	for _, key := range classify.Reconcile(results) {
		diags = append(diags, model.Diagnostic{
			Kind:     model.DiagnosticReconciled,
			Severity: model.SeverityInfo,
			Key:      key,
			Message:  fmt.Sprintf("%q references an authority and was moved out of the generic address section", key),
		})
	}
	log.Debug("keys classified", "count", len(results))

	fields := make([]model.ClassifiedField, 0, len(results))
	var unclassified []string
	for idx, res := range results {
		if res.Anomaly != "" {
			diags = append(diags, model.Diagnostic{
				Kind:     model.DiagnosticInstanceParse,
				Severity: model.SeverityWarning,
				Key:      res.Key,
				Message:  res.Anomaly,
			})
		}
		if res.Category == model.CategoryOther {
			unclassified = append(unclassified, res.Key)
			diags = append(diags, model.Diagnostic{
				Kind:     model.DiagnosticUnclassified,
				Severity: model.SeverityInfo,
				Key:      res.Key,
				Message:  fmt.Sprintf("%q matched no classification rule and was placed under %q", res.Key, model.TitleFor(model.CategoryOther)),
			})
		}
		fields = append(fields, infer.NewField(res, idx+1))
	}

	fields, overrideDiags := o.overrides.Merge(templateID, fields)
	diags = append(diags, overrideDiags...)
	log.Debug("overrides applied", "diagnostics", len(overrideDiags))

	groups, leftovers := persona.Aggregate(fields)
	schema := o.builder.Build(groups.Ordered(), leftovers)
	schema.TemplateID = templateID
	schema.Fingerprint = fingerprint
	if err := o.applyDecorators(&schema); err != nil {
		return Result{}, err
	}
	log.Debug("schema built", "sections", len(schema.Sections), "fields", schema.TotalFields, "personas", schema.TotalPersonas)

	multiplicity := persona.DetectMultiplicity(fields)
	result := Result{
		Schema:       schema,
		Table:        schema.Table(),
		Multiplicity: multiplicity.Counts(),
		Suggestions:  persona.Suggest(groups, multiplicity),
		Diagnostics:  diags,
		Unclassified: unclassified,
		Occurrences:  document.Occurrences(req.Document),
		Keys:         keys,
	}

	for _, d := range result.Warnings() {
		log.Warn(d.Message, "kind", d.Kind, "key", d.Key)
	}

	if o.cache != nil {
		o.cache.Put(templateID, Entry{Fingerprint: cacheKey, Result: result.Clone()})
	}
	return result, nil
}

// Invalidate drops the cached analysis for templateID.
func (o *Orchestrator) Invalidate(templateID string) {
	if o.cache == nil {
		return
	}
	o.cache.Invalidate(templateID)
}

// Overrides returns the override store in use.
func (o *Orchestrator) Overrides() *overrides.Store {
	return o.overrides
}

func (o *Orchestrator) applyDecorators(schema *model.FormSchema) error {
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(schema); err != nil {
			return fmt.Errorf("orchestrator: decorate schema: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.classifier == nil {
		o.classifier = classify.New()
	}
	if o.overrides == nil {
		o.overrides = overrides.NewStore()
	}
	if o.builder == nil {
		o.builder = model.NewBuilder(o.builderOptions...)
	}
	if o.cache == nil && !o.cacheSpecified {
		o.cache = NewMemoryCache()
	}
	o.settings = o.settingsFingerprint()
}

// settingsFingerprint hashes the orchestrator configuration that shapes a
// schema. Builders and decorators are identified by their dynamic type.
func (o *Orchestrator) settingsFingerprint() string {
	var parts []string
	categories := make([]string, 0, len(o.titles))
	for category := range o.titles {
		categories = append(categories, string(category))
	}
	sort.Strings(categories)
	for _, category := range categories {
		parts = append(parts, "title\x00"+category+"\x00"+o.titles[model.Category(category)])
	}
	parts = append(parts, "rules\x00"+strings.Join(o.classifier.RuleNames(), ","))
	parts = append(parts, fmt.Sprintf("builder\x00%T", o.builder))
	for idx, decorator := range o.decorators {
		parts = append(parts, fmt.Sprintf("decorator\x00%d\x00%T", idx, decorator))
	}
	return strconv.FormatUint(xxhash.Sum64String(strings.Join(parts, "\n")), 16)
}
