package model_test

import (
	"testing"

	"github.com/goliatone/go-docforms/pkg/model"
)

func TestTitleFor(t *testing.T) {
	cases := []struct {
		category model.Category
		want     string
	}{
		{model.CategoryOther, "Outros Campos"},
		{model.CategoryProcess, "Dados do Processo"},
		{model.Category("anexos_extras"), "Anexos Extras"},
	}
	for _, tc := range cases {
		if got := model.TitleFor(tc.category); got != tc.want {
			t.Fatalf("TitleFor(%q) = %q, want %q", tc.category, got, tc.want)
		}
	}
	if got := model.DefaultTitles()[model.CategoryOther]; got != model.TitleFor(model.CategoryOther) {
		t.Fatalf("DefaultTitles and TitleFor disagree: %q", got)
	}
}

func TestFormSchemaClone(t *testing.T) {
	schema := model.FormSchema{
		Sections: []model.FormSection{{
			Name:     "person_active_1",
			Instance: model.IntPtr(1),
			Subsections: []model.FormSection{{
				Name:   "person_active_1.data",
				Fields: []model.ClassifiedField{{Key: "autor_1_sexo", Options: []string{"Masculino"}, Instance: model.IntPtr(1)}},
			}},
		}},
	}

	clone := schema.Clone()
	clone.Sections[0].Subsections[0].Fields[0].Options[0] = "Feminino"
	*clone.Sections[0].Subsections[0].Fields[0].Instance = 2
	*clone.Sections[0].Instance = 3

	field := schema.Sections[0].Subsections[0].Fields[0]
	if field.Options[0] != "Masculino" || *field.Instance != 1 || *schema.Sections[0].Instance != 1 {
		t.Fatalf("clone shares memory with the original: %#v", schema.Sections[0])
	}
}
