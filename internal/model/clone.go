package model

// Clone returns a copy of the schema that shares no slices or instance
// pointers with s.
func (s FormSchema) Clone() FormSchema {
	out := s
	out.Sections = cloneSections(s.Sections)
	return out
}

// Clone returns a copy of the field that shares no memory with f.
func (f ClassifiedField) Clone() ClassifiedField {
	out := f
	out.Instance = copyInt(f.Instance)
	if f.Options != nil {
		out.Options = append([]string(nil), f.Options...)
	}
	return out
}

// Clone returns a copy of the row that shares no memory with f.
func (f FieldSpec) Clone() FieldSpec {
	out := f
	if f.Options != nil {
		out.Options = append([]string(nil), f.Options...)
	}
	return out
}

func cloneSections(sections []FormSection) []FormSection {
	if sections == nil {
		return nil
	}
	out := make([]FormSection, len(sections))
	for i, section := range sections {
		section.Instance = copyInt(section.Instance)
		section.Fields = CloneFields(section.Fields)
		section.Subsections = cloneSections(section.Subsections)
		out[i] = section
	}
	return out
}

// CloneFields deep-copies a field slice, preserving nil.
func CloneFields(fields []ClassifiedField) []ClassifiedField {
	if fields == nil {
		return nil
	}
	out := make([]ClassifiedField, len(fields))
	for i, field := range fields {
		out[i] = field.Clone()
	}
	return out
}
