package overrides_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docforms/pkg/model"
	"github.com/goliatone/go-docforms/pkg/overrides"
)

func TestFieldOverride_ApplyIsIdempotent(t *testing.T) {
	required := false
	order := 3
	ov := overrides.FieldOverride{
		Key:      "autor_1_estado_civil",
		Label:    "Estado civil do autor",
		Type:     "select",
		Required: &required,
		Order:    &order,
		Options:  []string{"Solteiro(a)", "Casado(a)"},
	}
	field := model.ClassifiedField{
		Key:      "autor_1_estado_civil",
		Category: model.CategoryPersonActive,
		Type:     model.FieldTypeText,
		Label:    "Estado Civil",
		Required: true,
		Order:    7,
	}

	once, diags := ov.Apply(field)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %#v", diags)
	}
	twice, _ := ov.Apply(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("apply is not idempotent (-once +twice):\n%s", diff)
	}

	if once.Type != model.FieldTypeSelect || once.Required || once.Order != 3 {
		t.Fatalf("override not applied: %#v", once)
	}
}

func TestFieldOverride_InvalidTypeKeepsInferred(t *testing.T) {
	ov := overrides.FieldOverride{Key: "cliente_nome", Type: "checkbox"}
	field := model.ClassifiedField{Key: "cliente_nome", Type: model.FieldTypeText, Label: "Cliente Nome"}

	got, diags := ov.Apply(field)
	if got.Type != model.FieldTypeText {
		t.Fatalf("invalid type should be ignored, got %q", got.Type)
	}
	if len(diags) != 1 || diags[0].Kind != model.DiagnosticOverrideInvalid {
		t.Fatalf("expected one override_invalid diagnostic, got %#v", diags)
	}
}

func TestFieldOverride_SanitisesLabel(t *testing.T) {
	ov := overrides.FieldOverride{Label: `<script>alert(1)</script><b>Nome</b> &amp; Sobrenome`}
	got, diags := ov.Apply(model.ClassifiedField{Key: "cliente_nome", Label: "Cliente Nome"})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %#v", diags)
	}
	if got.Label != "Nome & Sobrenome" {
		t.Fatalf("label not sanitised: %q", got.Label)
	}

	markupOnly := overrides.FieldOverride{Label: "<i></i>"}
	got, diags = markupOnly.Apply(model.ClassifiedField{Key: "cliente_nome", Label: "Cliente Nome"})
	if got.Label != "Cliente Nome" || len(diags) != 1 {
		t.Fatalf("empty sanitised label should be rejected: %q %#v", got.Label, diags)
	}
}

func TestFieldOverride_OptionsDroppedForNonSelect(t *testing.T) {
	ov := overrides.FieldOverride{Type: "text"}
	got, _ := ov.Apply(model.ClassifiedField{
		Key:     "cliente_uf",
		Type:    model.FieldTypeSelect,
		Options: []string{"SP", "RJ"},
	})
	if got.Options != nil {
		t.Fatalf("options should be cleared when the type is not select: %v", got.Options)
	}
}

func TestStore_MergeReportsOrphans(t *testing.T) {
	store := loadStore(t, "basic")
	fields := []model.ClassifiedField{
		{Key: "autor_1_nome", Category: model.CategoryPersonActive, Type: model.FieldTypeText, Label: "Nome", Required: true, Order: 1},
		{Key: "processo_numero", Category: model.CategoryProcess, Type: model.FieldTypeText, Label: "Processo Numero", Required: true, Order: 2},
	}

	merged, diags := store.Merge("peticao-inicial", fields)

	if merged[0].Label != "Nome completo do autor" {
		t.Fatalf("template override not applied: %q", merged[0].Label)
	}
	if merged[1].Label != "Nº do processo" {
		t.Fatalf("label markup not stripped: %q", merged[1].Label)
	}
	if fields[0].Label != "Nome" {
		t.Fatalf("merge must not mutate its input")
	}

	var orphans []string
	for _, d := range diags {
		if d.Kind == model.DiagnosticOverrideOrphan {
			orphans = append(orphans, d.Key)
		}
	}
	want := []string{"autor_1_complemento", "campo_removido"}
	if diff := cmp.Diff(want, orphans); diff != "" {
		t.Fatalf("orphan keys mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_TemplateOverridesWinOverGlobal(t *testing.T) {
	store := overrides.NewStore()
	store.Put(overrides.GlobalTemplate, []overrides.FieldOverride{
		{Key: "valor_multa", Label: "Valor (global)", Type: "text"},
		{Key: "placa_veiculo", Label: "Placa"},
	})
	store.Put("recurso-multa", []overrides.FieldOverride{
		{Key: "valor_multa", Label: "Valor da multa"},
	})

	fields := []model.ClassifiedField{
		{Key: "valor_multa", Type: model.FieldTypeText, Label: "Valor Multa"},
	}
	merged, diags := store.Merge("recurso-multa", fields)
	if merged[0].Label != "Valor da multa" {
		t.Fatalf("template override should win, got %q", merged[0].Label)
	}
	if len(diags) != 0 {
		t.Fatalf("global overrides must not produce orphan diagnostics: %#v", diags)
	}
}

func TestStore_FingerprintTracksEdits(t *testing.T) {
	store := overrides.NewStore()
	if store.Fingerprint("recurso-multa") != "" {
		t.Fatalf("empty store should have an empty fingerprint")
	}

	store.Put("recurso-multa", []overrides.FieldOverride{{Key: "valor_multa", Label: "Valor"}})
	first := store.Fingerprint("recurso-multa")
	if first == "" {
		t.Fatalf("expected fingerprint")
	}
	if store.Fingerprint("outro-modelo") != "" {
		t.Fatalf("unrelated templates should not share the fingerprint")
	}

	store.Put("recurso-multa", []overrides.FieldOverride{{Key: "valor_multa", Label: "Valor da multa"}})
	if store.Fingerprint("recurso-multa") == first {
		t.Fatalf("fingerprint should change after an edit")
	}
}
