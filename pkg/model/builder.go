package model

import "github.com/goliatone/go-docforms/internal/model"

// Builder assembles persona groups and leftover fields into a form schema.
type Builder interface {
	Build(groups []PersonaGroup, leftovers []ClassifiedField) FormSchema
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	titles       map[Category]string
	dataTitle    string
	addressTitle string
}

// WithTitles overrides section headings per category.
func WithTitles(titles map[Category]string) BuilderOption {
	return func(opts *builderOptions) {
		if len(titles) == 0 {
			return
		}
		if opts.titles == nil {
			opts.titles = make(map[Category]string, len(titles))
		}
		for category, title := range titles {
			opts.titles[category] = title
		}
	}
}

// WithSubsectionTitles overrides the persona data/address subsection headings.
func WithSubsectionTitles(data, address string) BuilderOption {
	return func(opts *builderOptions) {
		opts.dataTitle = data
		opts.addressTitle = address
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	return model.New(model.Options{
		Titles:       cfg.titles,
		DataTitle:    cfg.dataTitle,
		AddressTitle: cfg.addressTitle,
	})
}
