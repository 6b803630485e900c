package classify

// Keyword phrases are written as space separated tokens and matched against
// the underscore separated tokens of a key. Both the Portuguese vocabulary used
// by the office templates and an English equivalent are accepted.

var activeRoles = []string{
	"autor", "autora", "autores", "author", "plaintiff",
	"requerente", "impetrante", "reclamante", "exequente", "embargante", "apelante",
}

var passiveRoles = []string{
	"reu", "requerido", "requerida", "defendant", "respondent",
	"impetrado", "reclamado", "reclamada", "executado", "executada", "embargado", "apelado",
}

var authorityMarkers = []string{
	"orgao", "autoridade", "authority", "transito", "transit",
	"detran", "der", "prf", "jari", "cetran", "contran", "dnit",
}

// authorityExclusions name identity-document fields that mention an "orgao"
// without referring to an authority persona.
var authorityExclusions = []string{
	"orgao expedidor", "orgao emissor", "issuing authority",
}

var thirdPartyMarkers = []string{
	"ministerio publico", "public ministry",
	"assistente", "assistant",
	"advogado", "advogada", "attorney", "lawyer", "procurador", "procuradora",
	"promotor", "promotora", "prosecutor",
	"curador", "curadora", "curator",
	"tutor", "tutora", "guardian",
	"representante", "representative",
	"testemunha", "witness",
}

var processMarkers = []string{
	"numero processo", "processo", "process", "case",
	"auto infracao", "infracao", "infraction", "ait",
	"valor multa", "multa", "fine",
	"placa", "plate", "veiculo", "vehicle", "renavam",
	"saldo pontos", "pontos", "points",
	"vara", "comarca", "tribunal", "juizo", "foro", "court",
}

var addressMarkers = []string{
	"endereco", "address", "logradouro", "rua", "street", "avenida",
	"numero", "number", "complemento", "complement",
	"bairro", "neighborhood", "cidade", "city", "municipio",
	"estado", "state", "uf", "cep", "zip", "zipcode",
}

// addressExclusions neutralise address words that are part of a non-address
// phrase ("estado civil" is marital status, "numero oab" a bar id, "numero
// telefone" a phone).
var addressExclusions = []string{
	"estado civil",
	"numero oab", "numero processo", "numero documento", "numero rg", "numero cnh",
	"numero auto", "numero ait",
	"numero cpf", "numero cnpj", "numero telefone", "numero celular", "numero whatsapp",
}

var clientMarkers = []string{
	"cliente", "client",
	"nome", "name",
	"cpf", "cnpj", "rg", "cnh", "documento", "document",
	"profissao", "profession", "nacionalidade", "nationality", "estado civil",
	"email", "telefone", "celular", "phone", "nascimento", "birth",
}

// connectors are skipped when they sit between prefix markers, so
// "orgao_de_transito_1" still reads as an authority with instance 1.
var connectors = map[string]struct{}{
	"de": {}, "do": {}, "da": {}, "dos": {}, "das": {}, "of": {},
}
