package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docforms/internal/model"
)

func field(key string, category model.Category, instance *int, sub model.SubCategory, order int) model.ClassifiedField {
	return model.ClassifiedField{
		Key:         key,
		Category:    category,
		Instance:    instance,
		SubCategory: sub,
		Type:        model.FieldTypeText,
		Label:       model.DefaultLabeler(key),
		Required:    true,
		Order:       order,
	}
}

func group(category model.Category, instance *int, fields ...model.ClassifiedField) model.PersonaGroup {
	return model.PersonaGroup{Category: category, Instance: instance, Fields: fields}
}

func sectionNames(schema model.FormSchema) []string {
	names := make([]string, 0, len(schema.Sections))
	for _, section := range schema.Sections {
		names = append(names, section.Name)
	}
	return names
}

func scrambledInput() ([]model.PersonaGroup, []model.ClassifiedField) {
	groups := []model.PersonaGroup{
		group(model.CategoryAuthority, model.IntPtr(1), field("orgao_transito_1_nome", model.CategoryAuthority, model.IntPtr(1), model.SubCategoryData, 9)),
		group(model.CategoryPersonActive, model.IntPtr(2), field("autor_2_nome", model.CategoryPersonActive, model.IntPtr(2), model.SubCategoryData, 5)),
		group(model.CategoryPersonPassive, nil, field("reu_nome", model.CategoryPersonPassive, nil, model.SubCategoryData, 6)),
		group(model.CategoryThirdParty, model.IntPtr(1), field("advogado_1_nome", model.CategoryThirdParty, model.IntPtr(1), model.SubCategoryData, 7)),
		group(model.CategoryPersonActive, model.IntPtr(1),
			field("autor_1_cep", model.CategoryPersonActive, model.IntPtr(1), model.SubCategoryAddress, 4),
			field("autor_1_nome", model.CategoryPersonActive, model.IntPtr(1), model.SubCategoryData, 3),
		),
	}
	leftovers := []model.ClassifiedField{
		field("campo_misterioso", model.CategoryOther, nil, "", 10),
		field("processo_numero", model.CategoryProcess, nil, "", 8),
		field("cliente_nome", model.CategoryClient, nil, "", 1),
		field("cliente_endereco", model.CategoryAddress, nil, "", 2),
	}
	return groups, leftovers
}

func TestBuild_SectionOrder(t *testing.T) {
	groups, leftovers := scrambledInput()
	schema := model.New(model.Options{}).Build(groups, leftovers)

	want := []string{
		"client",
		"address",
		"person_active_1",
		"person_active_2",
		"person_passive",
		"third_party_1",
		"process",
		"authority_1",
		"other",
	}
	if diff := cmp.Diff(want, sectionNames(schema)); diff != "" {
		t.Fatalf("section order mismatch (-want +got):\n%s", diff)
	}
	if schema.TotalFields != 10 {
		t.Fatalf("total fields = %d, want 10", schema.TotalFields)
	}
	if schema.TotalPersonas != 5 {
		t.Fatalf("total personas = %d, want 5", schema.TotalPersonas)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	groups, leftovers := scrambledInput()
	first := model.New(model.Options{}).Build(groups, leftovers)

	reversedGroups := make([]model.PersonaGroup, 0, len(groups))
	for i := len(groups) - 1; i >= 0; i-- {
		reversedGroups = append(reversedGroups, groups[i])
	}
	reversedLeftovers := make([]model.ClassifiedField, 0, len(leftovers))
	for i := len(leftovers) - 1; i >= 0; i-- {
		reversedLeftovers = append(reversedLeftovers, leftovers[i])
	}
	second := model.New(model.Options{}).Build(reversedGroups, reversedLeftovers)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("input order changed the schema (-first +second):\n%s", diff)
	}
}

func TestBuild_OmitsEmptySections(t *testing.T) {
	builder := model.New(model.Options{})

	empty := builder.Build(nil, nil)
	if empty.Sections == nil || len(empty.Sections) != 0 {
		t.Fatalf("expected an empty, non-nil section list, got %#v", empty.Sections)
	}
	if empty.TotalFields != 0 || empty.TotalPersonas != 0 {
		t.Fatalf("unexpected totals: %+v", empty)
	}

	only := builder.Build(
		[]model.PersonaGroup{group(model.CategoryPersonActive, model.IntPtr(1))},
		[]model.ClassifiedField{field("processo_numero", model.CategoryProcess, nil, "", 1)},
	)
	if diff := cmp.Diff([]string{"process"}, sectionNames(only)); diff != "" {
		t.Fatalf("groups without fields should be omitted (-want +got):\n%s", diff)
	}
	if only.TotalPersonas != 0 {
		t.Fatalf("omitted groups should not count as personas")
	}
}

func TestBuild_PersonaSubsections(t *testing.T) {
	groups, _ := scrambledInput()
	schema := model.New(model.Options{}).Build(groups, nil)

	author := schema.Sections[0]
	if author.Name != "person_active_1" || author.Title != "Autor 1" {
		t.Fatalf("unexpected first section: %s / %s", author.Name, author.Title)
	}
	if len(author.Fields) != 0 {
		t.Fatalf("persona sections hold fields in subsections only")
	}
	var got [][2]string
	for _, sub := range author.Subsections {
		for _, f := range sub.Fields {
			got = append(got, [2]string{sub.Name + " " + sub.Title, f.Key})
		}
	}
	want := [][2]string{
		{"person_active_1.data Dados", "autor_1_nome"},
		{"person_active_1.address Endereço", "autor_1_cep"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("subsections mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_FieldOrder(t *testing.T) {
	leftovers := []model.ClassifiedField{
		field("processo_vara", model.CategoryProcess, nil, "", 2),
		field("processo_numero", model.CategoryProcess, nil, "", 1),
		field("processo_comarca", model.CategoryProcess, nil, "", 2),
	}
	schema := model.New(model.Options{}).Build(nil, leftovers)

	var keys []string
	for _, f := range schema.Sections[0].Fields {
		keys = append(keys, f.Key)
	}
	want := []string{"processo_numero", "processo_comarca", "processo_vara"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Fatalf("fields should sort by order then key (-want +got):\n%s", diff)
	}
}

func TestBuild_NilInstanceSortsFirst(t *testing.T) {
	groups := []model.PersonaGroup{
		group(model.CategoryPersonActive, model.IntPtr(1), field("autor_1_nome", model.CategoryPersonActive, model.IntPtr(1), model.SubCategoryData, 2)),
		group(model.CategoryPersonActive, nil, field("autor_nome", model.CategoryPersonActive, nil, model.SubCategoryData, 1)),
	}
	schema := model.New(model.Options{}).Build(groups, nil)
	if diff := cmp.Diff([]string{"person_active", "person_active_1"}, sectionNames(schema)); diff != "" {
		t.Fatalf("nil instance should precede instance 1 (-want +got):\n%s", diff)
	}
}

func TestBuild_StrayCategoriesGoToOther(t *testing.T) {
	leftovers := []model.ClassifiedField{
		field("autor_1_nome", model.CategoryPersonActive, model.IntPtr(1), model.SubCategoryData, 1),
		field("desconhecido", model.Category("bogus"), nil, "", 2),
	}
	schema := model.New(model.Options{}).Build(nil, leftovers)
	if diff := cmp.Diff([]string{"other"}, sectionNames(schema)); diff != "" {
		t.Fatalf("unexpected sections (-want +got):\n%s", diff)
	}
	if schema.TotalFields != 2 {
		t.Fatalf("total fields = %d, want 2", schema.TotalFields)
	}
}

func TestBuild_Titles(t *testing.T) {
	groups, leftovers := scrambledInput()
	schema := model.New(model.Options{
		Titles:       map[model.Category]string{model.CategoryPersonActive: "Requerente", model.CategoryProcess: "Processo"},
		DataTitle:    "Qualificação",
		AddressTitle: "Residência",
	}).Build(groups, leftovers)

	titles := map[string]string{}
	for _, section := range schema.Sections {
		titles[section.Name] = section.Title
	}
	if titles["person_active_2"] != "Requerente 2" || titles["process"] != "Processo" {
		t.Fatalf("custom titles not applied: %v", titles)
	}
	if titles["client"] != "Dados do Cliente" {
		t.Fatalf("missing titles should keep defaults: %v", titles)
	}
	if sub := schema.Sections[2].Subsections[0]; sub.Title != "Qualificação" {
		t.Fatalf("data subsection title = %q", sub.Title)
	}
}

func TestFormSchemaTable(t *testing.T) {
	groups, leftovers := scrambledInput()
	table := model.New(model.Options{}).Build(groups, leftovers).Table()

	var got [][2]string
	for _, row := range table {
		got = append(got, [2]string{row.Key, row.Section})
	}
	want := [][2]string{
		{"cliente_nome", "client"},
		{"cliente_endereco", "address"},
		{"autor_1_nome", "person_active_1.data"},
		{"autor_1_cep", "person_active_1.address"},
		{"autor_2_nome", "person_active_2.data"},
		{"reu_nome", "person_passive.data"},
		{"advogado_1_nome", "third_party_1.data"},
		{"processo_numero", "process"},
		{"orgao_transito_1_nome", "authority_1.data"},
		{"campo_misterioso", "other"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"autor_1_cpf":     "Autor 1 CPF",
		"endereco_numero": "Endereço Número",
		"orgao-transito":  "Órgão Trânsito",
		"dataNascimento":  "Data Nascimento",
		"":                "",
		"placa2":          "Placa 2",
	}
	for in, want := range cases {
		if got := model.DefaultLabeler(in); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", in, got, want)
		}
	}
}
