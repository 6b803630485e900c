package model

import "strconv"

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	// Titles overrides section and persona headings per category. Missing
	// entries fall back to DefaultTitles.
	Titles map[Category]string
	// DataTitle and AddressTitle head the persona subsections.
	DataTitle    string
	AddressTitle string
}

// DefaultTitles are the Portuguese headings used by the office UI.
var DefaultTitles = map[Category]string{
	CategoryClient:        "Dados do Cliente",
	CategoryAddress:       "Endereço",
	CategoryPersonActive:  "Autor",
	CategoryPersonPassive: "Réu",
	CategoryThirdParty:    "Terceiro",
	CategoryProcess:       "Dados do Processo",
	CategoryAuthority:     "Autoridade",
	CategoryOther:         "Outros Campos",
}

const (
	defaultDataTitle    = "Dados"
	defaultAddressTitle = "Endereço"
)

func defaultOptions() Options {
	return Options{
		DataTitle:    defaultDataTitle,
		AddressTitle: defaultAddressTitle,
	}
}

// Title returns the heading for category, honouring overrides.
func (o Options) Title(category Category) string {
	if title, ok := o.Titles[category]; ok && title != "" {
		return title
	}
	return TitleFor(category)
}

// TitleFor returns the default heading for category.
func TitleFor(category Category) string {
	if title, ok := DefaultTitles[category]; ok {
		return title
	}
	return DefaultLabeler(string(category))
}

// PersonaTitle renders a persona heading such as "Autor 2". A nil instance
// renders the bare title.
func PersonaTitle(title string, instance *int) string {
	if instance == nil {
		return title
	}
	return title + " " + strconv.Itoa(*instance)
}
