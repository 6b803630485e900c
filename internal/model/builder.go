package model

import (
	"sort"
	"strconv"
)

// sectionOrder is the reading order of a petition. Persona categories expand
// into one section per instance at their slot.
var sectionOrder = []Category{
	CategoryClient,
	CategoryAddress,
	CategoryPersonActive,
	CategoryPersonPassive,
	CategoryThirdParty,
	CategoryProcess,
	CategoryAuthority,
	CategoryOther,
}

// Builder assembles persona groups and leftover fields into a FormSchema.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if len(options.Titles) > 0 {
		opts.Titles = make(map[Category]string, len(options.Titles))
		for category, title := range options.Titles {
			opts.Titles[category] = title
		}
	}
	if options.DataTitle != "" {
		opts.DataTitle = options.DataTitle
	}
	if options.AddressTitle != "" {
		opts.AddressTitle = options.AddressTitle
	}
	return &Builder{opts: opts}
}

// Build produces the ordered section list. Sections without fields are
// omitted. The same input always yields the same section order; groups and
// fields are re-sorted here so callers may pass them in any order.
func (b *Builder) Build(groups []PersonaGroup, leftovers []ClassifiedField) FormSchema {
	byCategory := make(map[Category][]PersonaGroup)
	for _, group := range groups {
		byCategory[group.Category] = append(byCategory[group.Category], group)
	}

	flat := make(map[Category][]ClassifiedField)
	for _, field := range leftovers {
		category := field.Category
		if category.IsPersona() || !knownCategory(category) {
			category = CategoryOther
		}
		flat[category] = append(flat[category], field)
	}

	schema := FormSchema{Sections: []FormSection{}}
	for _, category := range sectionOrder {
		if category.IsPersona() {
			ordered := byCategory[category]
			SortGroups(ordered)
			for _, group := range ordered {
				section, ok := b.personaSection(group)
				if !ok {
					continue
				}
				schema.Sections = append(schema.Sections, section)
				schema.TotalPersonas++
			}
			continue
		}

		fields := flat[category]
		if len(fields) == 0 {
			continue
		}
		schema.Sections = append(schema.Sections, FormSection{
			Name:     string(category),
			Title:    b.opts.Title(category),
			Category: category,
			Fields:   sortFields(fields),
		})
	}

	for _, section := range schema.Sections {
		schema.TotalFields += section.FieldCount()
	}
	return schema
}

func (b *Builder) personaSection(group PersonaGroup) (FormSection, bool) {
	data, address := group.Data, group.Address
	if len(data) == 0 && len(address) == 0 {
		data, address = SplitSubBuckets(group.Fields)
	}

	name := SectionName(group.Category, group.Instance)
	title := PersonaTitle(b.opts.Title(group.Category), group.Instance)

	section := FormSection{
		Name:     name,
		Title:    title,
		Category: group.Category,
		Instance: copyInt(group.Instance),
	}
	if len(data) > 0 {
		section.Subsections = append(section.Subsections, FormSection{
			Name:     name + "." + string(SubCategoryData),
			Title:    b.opts.DataTitle,
			Category: group.Category,
			Instance: copyInt(group.Instance),
			Fields:   sortFields(data),
		})
	}
	if len(address) > 0 {
		section.Subsections = append(section.Subsections, FormSection{
			Name:     name + "." + string(SubCategoryAddress),
			Title:    b.opts.AddressTitle,
			Category: group.Category,
			Instance: copyInt(group.Instance),
			Fields:   sortFields(address),
		})
	}
	return section, len(section.Subsections) > 0
}

// SectionName returns the stable identifier of a persona section, e.g.
// "person_active_2".
func SectionName(category Category, instance *int) string {
	if instance == nil {
		return string(category)
	}
	return string(category) + "_" + strconv.Itoa(*instance)
}

// SplitSubBuckets separates persona fields into data and address buckets,
// preserving order.
func SplitSubBuckets(fields []ClassifiedField) (data, address []ClassifiedField) {
	for _, field := range fields {
		if field.SubCategory == SubCategoryAddress {
			address = append(address, field)
			continue
		}
		data = append(data, field)
	}
	return data, address
}

// SortGroups orders persona groups by ascending instance number, treating a
// missing instance as 1 and placing it ahead of an explicit 1.
func SortGroups(groups []PersonaGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		return LessGroup(groups[i], groups[j])
	})
}

// LessGroup reports whether a sorts before b.
func LessGroup(a, b PersonaGroup) bool {
	if a.Category != b.Category {
		return categoryRank(a.Category) < categoryRank(b.Category)
	}
	ai, bi := instanceRank(a.Instance), instanceRank(b.Instance)
	if ai != bi {
		return ai < bi
	}
	return a.Instance == nil && b.Instance != nil
}

func instanceRank(instance *int) int {
	if instance == nil {
		return 1
	}
	return *instance
}

func categoryRank(category Category) int {
	for idx, c := range sectionOrder {
		if c == category {
			return idx
		}
	}
	return len(sectionOrder)
}

func knownCategory(category Category) bool {
	return categoryRank(category) < len(sectionOrder)
}

func sortFields(fields []ClassifiedField) []ClassifiedField {
	out := append([]ClassifiedField(nil), fields...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
