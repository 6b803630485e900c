package persona

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-docforms/internal/classify"
	"github.com/goliatone/go-docforms/internal/model"
)

// GroupKey identifies a persona instance. Instance is 0 for un-numbered keys.
type GroupKey struct {
	Category model.Category
	Instance int
}

func keyFor(category model.Category, instance *int) GroupKey {
	if instance == nil {
		return GroupKey{Category: category}
	}
	return GroupKey{Category: category, Instance: *instance}
}

// Groups is the result of a single aggregation pass.
type Groups struct {
	index map[GroupKey]int
	list  []model.PersonaGroup
}

// Aggregate groups persona fields by (category, instance) and splits each
// group into data and address sub-buckets. Non-persona fields are returned as
// leftovers in their original order.
func Aggregate(fields []model.ClassifiedField) (Groups, []model.ClassifiedField) {
	groups := Groups{index: make(map[GroupKey]int)}
	var leftovers []model.ClassifiedField

	for _, field := range fields {
		if !field.Category.IsPersona() {
			leftovers = append(leftovers, field)
			continue
		}
		key := keyFor(field.Category, field.Instance)
		idx, ok := groups.index[key]
		if !ok {
			idx = len(groups.list)
			groups.index[key] = idx
			group := model.PersonaGroup{Category: field.Category}
			if field.Instance != nil {
				group.Instance = model.IntPtr(*field.Instance)
			}
			group.Title = model.PersonaTitle(model.TitleFor(field.Category), group.Instance)
			groups.list = append(groups.list, group)
		}
		group := &groups.list[idx]
		group.Fields = append(group.Fields, field)
		if field.SubCategory == model.SubCategoryAddress {
			group.Address = append(group.Address, field)
		} else {
			group.Data = append(group.Data, field)
		}
	}

	model.SortGroups(groups.list)
	for i, group := range groups.list {
		groups.index[keyFor(group.Category, group.Instance)] = i
	}
	return groups, leftovers
}

// Ordered returns every group, sorted by category slot then instance.
func (g Groups) Ordered() []model.PersonaGroup {
	return append([]model.PersonaGroup(nil), g.list...)
}

// Category returns the groups of one category in ascending instance order.
func (g Groups) Category(category model.Category) []model.PersonaGroup {
	var out []model.PersonaGroup
	for _, group := range g.list {
		if group.Category == category {
			out = append(out, group)
		}
	}
	return out
}

// Lookup finds the group for (category, instance). A nil instance selects the
// un-numbered group.
func (g Groups) Lookup(category model.Category, instance *int) (model.PersonaGroup, bool) {
	idx, ok := g.index[keyFor(category, instance)]
	if !ok {
		return model.PersonaGroup{}, false
	}
	return g.list[idx], true
}

// Len reports the number of groups.
func (g Groups) Len() int {
	return len(g.list)
}

// Multiplicity counts distinct instances per persona category.
type Multiplicity map[model.Category]model.PersonaCount

// personaCategories lists persona categories in section order.
var personaCategories = []model.Category{
	model.CategoryPersonActive,
	model.CategoryPersonPassive,
	model.CategoryThirdParty,
	model.CategoryAuthority,
}

// DetectMultiplicity answers how many authors, defendants, third parties and
// authorities the fields describe. Un-numbered keys count as instance 1.
func DetectMultiplicity(fields []model.ClassifiedField) Multiplicity {
	seen := make(map[model.Category]map[int]struct{})
	for _, field := range fields {
		if !field.Category.IsPersona() {
			continue
		}
		if seen[field.Category] == nil {
			seen[field.Category] = make(map[int]struct{})
		}
		seen[field.Category][field.InstanceOrDefault()] = struct{}{}
	}

	out := make(Multiplicity, len(seen))
	for category, instances := range seen {
		list := make([]int, 0, len(instances))
		for n := range instances {
			list = append(list, n)
		}
		sort.Ints(list)
		out[category] = model.PersonaCount{
			Category:  category,
			Count:     len(list),
			Instances: list,
		}
	}
	return out
}

// Counts returns the multiplicity entries in section order.
func (m Multiplicity) Counts() []model.PersonaCount {
	out := make([]model.PersonaCount, 0, len(m))
	for _, category := range personaCategories {
		if count, ok := m[category]; ok {
			out = append(out, count)
		}
	}
	return out
}

// Count returns the number of instances detected for category.
func (m Multiplicity) Count(category model.Category) int {
	return m[category].Count
}

var keyPrefixes = map[model.Category]string{
	model.CategoryPersonActive:  "autor",
	model.CategoryPersonPassive: "reu",
	model.CategoryThirdParty:    "terceiro",
	model.CategoryAuthority:     "orgao_transito",
}

// Suggest produces the administrator hints shown by the persona analysis:
// the next instance to add, gaps in the numbering and fields that some
// instances define but others lack.
func Suggest(groups Groups, multiplicity Multiplicity) []string {
	var out []string
	for _, count := range multiplicity.Counts() {
		title := strings.ToLower(model.TitleFor(count.Category))
		prefix := keyPrefixes[count.Category]

		next := count.Instances[len(count.Instances)-1] + 1
		out = append(out, fmt.Sprintf(
			"detected %d %s instance(s); consider adding %s_%d_* fields if the case has another",
			count.Count, title, prefix, next,
		))

		if missing := gaps(count.Instances); len(missing) > 0 {
			out = append(out, fmt.Sprintf(
				"%s numbering skips %s; check the template for missing %s_<n>_* placeholders",
				title, joinInts(missing), prefix,
			))
		}

		out = append(out, parityHints(groups.Category(count.Category))...)
	}
	return out
}

func gaps(instances []int) []int {
	if len(instances) == 0 {
		return nil
	}
	present := make(map[int]struct{}, len(instances))
	for _, n := range instances {
		present[n] = struct{}{}
	}
	var missing []int
	for n := 1; n < instances[len(instances)-1]; n++ {
		if _, ok := present[n]; !ok {
			missing = append(missing, n)
		}
	}
	return missing
}

// parityHints compares the field suffixes of numbered instances of one
// category.
func parityHints(groups []model.PersonaGroup) []string {
	var numbered []model.PersonaGroup
	for _, group := range groups {
		if group.Instance != nil {
			numbered = append(numbered, group)
		}
	}
	if len(numbered) < 2 {
		return nil
	}

	union := make(map[string]struct{})
	perGroup := make([]map[string]struct{}, len(numbered))
	for i, group := range numbered {
		perGroup[i] = make(map[string]struct{}, len(group.Fields))
		for _, field := range group.Fields {
			suffix := fieldSuffix(field.Key)
			perGroup[i][suffix] = struct{}{}
			union[suffix] = struct{}{}
		}
	}

	var out []string
	for i, group := range numbered {
		var missing []string
		for suffix := range union {
			if _, ok := perGroup[i][suffix]; !ok {
				missing = append(missing, suffix)
			}
		}
		if len(missing) == 0 {
			continue
		}
		sort.Strings(missing)
		out = append(out, fmt.Sprintf(
			"%s lacks fields defined for other instances: %s",
			group.Title, strings.Join(missing, ", "),
		))
	}
	return out
}

// fieldSuffix strips the role and instance prefix so fields of different
// instances can be compared.
func fieldSuffix(key string) string {
	res := classify.Classify(key)
	if len(res.Rest) == 0 {
		return strings.ToLower(key)
	}
	return strings.Join(res.Rest, "_")
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprint(v))
	}
	return strings.Join(parts, ", ")
}
