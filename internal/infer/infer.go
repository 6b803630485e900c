package infer

import (
	"strings"

	"github.com/goliatone/go-docforms/internal/classify"
	"github.com/goliatone/go-docforms/internal/model"
)

// Inference is the label, input type and required flag derived for a key.
type Inference struct {
	Label      string
	GroupLabel string
	Type       model.FieldType
	Required   bool
	Options    []string
}

type matchMode int

const (
	// matchSubstring compares against the underscore-joined rest of the key.
	matchSubstring matchMode = iota
	// matchToken requires a whole-token (or whole-phrase) match.
	matchToken
)

type keyword struct {
	text string
	mode matchMode
}

func (k keyword) matches(tokens []string, joined string) bool {
	if k.mode == matchSubstring {
		return strings.Contains(joined, k.text)
	}
	words := strings.Fields(k.text)
	if len(words) == 0 || len(words) > len(tokens) {
		return false
	}
outer:
	for i := 0; i+len(words) <= len(tokens); i++ {
		for j, w := range words {
			if tokens[i+j] != w {
				continue outer
			}
		}
		return true
	}
	return false
}

func sub(texts ...string) []keyword {
	out := make([]keyword, 0, len(texts))
	for _, t := range texts {
		out = append(out, keyword{text: t, mode: matchSubstring})
	}
	return out
}

func tok(texts ...string) []keyword {
	out := make([]keyword, 0, len(texts))
	for _, t := range texts {
		out = append(out, keyword{text: t, mode: matchToken})
	}
	return out
}

type typeRule struct {
	keywords []keyword
	fieldTyp model.FieldType
	options  []string
}

var maritalStatus = []string{
	"Solteiro(a)", "Casado(a)", "Divorciado(a)", "Separado(a)", "Viúvo(a)", "União estável",
}

var genders = []string{"Feminino", "Masculino", "Outro"}

var federativeUnits = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA", "MT", "MS", "MG", "PA",
	"PB", "PR", "PE", "PI", "RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
}

// typeTable is evaluated top to bottom; the first rule with a matching
// keyword decides the type.
var typeTable = []typeRule{
	{keywords: sub("email"), fieldTyp: model.FieldTypeEmail},
	{keywords: sub("telefone", "celular", "phone", "mobile", "whatsapp", "fone"), fieldTyp: model.FieldTypeTel},
	{keywords: append(tok("data", "date", "dt"), sub("nascimento", "birth", "vencimento")...), fieldTyp: model.FieldTypeDate},
	{keywords: sub("observac", "descricao", "description", "fatos", "relato", "historico", "fundamentacao", "notes", "notas"), fieldTyp: model.FieldTypeTextarea},
	{keywords: tok("estado civil", "marital status"), fieldTyp: model.FieldTypeSelect, options: maritalStatus},
	{keywords: tok("sexo", "genero", "gender"), fieldTyp: model.FieldTypeSelect, options: genders},
	{keywords: tok("uf", "estado", "state"), fieldTyp: model.FieldTypeSelect, options: federativeUnits},
}

var optionalKeywords = append(
	sub("complemento", "complement", "observac", "referencia", "apelido", "nickname"),
	tok("outro telefone", "other phone", "telefone secundario", "telefone 2", "celular 2", "email secundario", "telefone recado")...,
)

// Infer derives the display metadata for a classified key. Keys are required
// unless they match the optional keyword list.
func Infer(res classify.Result) Inference {
	tokens := res.Rest
	if len(tokens) == 0 {
		tokens = res.Tokens
	}
	joined := strings.Join(tokens, "_")

	inf := Inference{
		Label:    label(res, tokens),
		Type:     model.FieldTypeText,
		Required: true,
	}
	if res.Category.IsPersona() {
		inf.GroupLabel = GroupLabel(res.Category, res.Instance)
	}

	for _, rule := range typeTable {
		if matchAny(rule.keywords, tokens, joined) {
			inf.Type = rule.fieldTyp
			if len(rule.options) > 0 {
				inf.Options = append([]string(nil), rule.options...)
			}
			break
		}
	}

	if matchAny(optionalKeywords, tokens, joined) {
		inf.Required = false
	}
	return inf
}

// GroupLabel renders the persona heading, e.g. "Autor 2" or "Autoridade".
func GroupLabel(category model.Category, instance *int) string {
	return model.PersonaTitle(model.TitleFor(category), instance)
}

func label(res classify.Result, tokens []string) string {
	if res.Category.IsPersona() {
		return model.HumanizeTokens(tokens)
	}
	if out := model.DefaultLabeler(res.Key); out != "" {
		return out
	}
	return res.Key
}

func matchAny(keywords []keyword, tokens []string, joined string) bool {
	for _, k := range keywords {
		if k.matches(tokens, joined) {
			return true
		}
	}
	return false
}

// NewField combines a classification with its inferred metadata. Order is the
// key's position in the document.
func NewField(res classify.Result, order int) model.ClassifiedField {
	inf := Infer(res)
	field := model.ClassifiedField{
		Key:        res.Key,
		Category:   res.Category,
		Type:       inf.Type,
		Label:      inf.Label,
		GroupLabel: inf.GroupLabel,
		Required:   inf.Required,
		Options:    inf.Options,
		Order:      order,
	}
	if res.Instance != nil {
		field.Instance = model.IntPtr(*res.Instance)
	}
	if res.Category.IsPersona() {
		field.SubCategory = res.Sub
	}
	return field
}
