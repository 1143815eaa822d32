package gamedata

// Strings is the static UI text table.
type Strings map[string]string

// Get returns the text for key, or the key itself when it is missing.
func (s Strings) Get(key string) string {
	if v, ok := s[key]; ok {
		return v
	}
	return key
}

// StringsFile represents the structure of strings.json.
type StringsFile struct {
	Strings Strings `json:"strings"`
}

// LoadStrings loads the UI string table from the embedded strings.json file.
func LoadStrings() (Strings, error) {
	file, err := Load[StringsFile]("strings.json")
	if err != nil {
		return nil, err
	}
	return file.Strings, nil
}

// MustLoadStrings loads the string table, panicking on error.
func MustLoadStrings() Strings {
	s, err := LoadStrings()
	if err != nil {
		panic(err)
	}
	return s
}
