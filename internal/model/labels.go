package model

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// acronyms are rendered upper-case regardless of the key's casing.
var acronyms = map[string]string{
	"cpf":     "CPF",
	"cnpj":    "CNPJ",
	"rg":      "RG",
	"cnh":     "CNH",
	"cep":     "CEP",
	"uf":      "UF",
	"oab":     "OAB",
	"ait":     "AIT",
	"renavam": "RENAVAM",
	"detran":  "DETRAN",
	"jari":    "JARI",
	"cetran":  "CETRAN",
	"prf":     "PRF",
	"dnit":    "DNIT",
	"pis":     "PIS",
	"ctps":    "CTPS",
	"id":      "ID",
}

// accented restores the accents that placeholder keys drop.
var accented = map[string]string{
	"endereco":      "Endereço",
	"numero":        "Número",
	"orgao":         "Órgão",
	"transito":      "Trânsito",
	"reu":           "Réu",
	"profissao":     "Profissão",
	"infracao":      "Infração",
	"observacao":    "Observação",
	"observacoes":   "Observações",
	"descricao":     "Descrição",
	"expedicao":     "Expedição",
	"emissao":       "Emissão",
	"nacionalidade": "Nacionalidade",
	"ministerio":    "Ministério",
	"publico":       "Público",
	"juizo":         "Juízo",
	"veiculo":       "Veículo",
	"municipio":     "Município",
	"fundamentacao": "Fundamentação",
	"historico":     "Histórico",
	"referencia":    "Referência",
	"genero":        "Gênero",
	"secundario":    "Secundário",
	"notificacao":   "Notificação",
	"apreensao":     "Apreensão",
	"suspensao":     "Suspensão",
	"cassacao":      "Cassação",
	"peticao":       "Petição",
	"razao":         "Razão",
	"social":        "Social",
}

// DefaultLabeler converts a field name into a human-friendly label. It splits
// on underscores/dashes and camelCase boundaries, upper-cases document
// acronyms and restores common accents.
func DefaultLabeler(name string) string {
	if name == "" {
		return ""
	}

	words := splitWordsPattern.Split(name, -1)
	var segments []string
	for _, word := range words {
		if word == "" {
			continue
		}
		segments = append(segments, labelWord(word))
	}
	return strings.TrimSpace(strings.Join(segments, " "))
}

// HumanizeTokens labels an already tokenised key.
func HumanizeTokens(tokens []string) string {
	return DefaultLabeler(strings.Join(tokens, "_"))
}

func labelWord(word string) string {
	parts := strings.Fields(splitCamel(word))
	for i, part := range parts {
		parts[i] = labelPart(part)
	}
	return strings.Join(parts, " ")
}

func labelPart(part string) string {
	lower := strings.ToLower(part)
	if acronym, ok := acronyms[lower]; ok {
		return acronym
	}
	if restored, ok := accented[lower]; ok {
		return restored
	}
	return titleCase(part)
}

func splitCamel(input string) string {
	var out strings.Builder
	var prev rune
	for i, r := range input {
		if i > 0 && isBoundary(prev, r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
		prev = r
	}
	return out.String()
}

func isBoundary(prev, r rune) bool {
	return (unicode.IsLower(prev) && unicode.IsUpper(r)) ||
		(unicode.IsLetter(prev) && unicode.IsDigit(r)) ||
		(unicode.IsDigit(prev) && unicode.IsLetter(r))
}

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	first, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(first)) + lower[size:]
}
