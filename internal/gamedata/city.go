package gamedata

// CityFile represents the structure of city.json.
type CityFile struct {
	Alphabet   []string `json:"alphabet"`   // Letters a spin can land on
	Categories []string `json:"categories"` // Default answer columns
}

// LoadCity loads the city game alphabet and default categories.
func LoadCity() (CityFile, error) {
	return Load[CityFile]("city.json")
}

// MustLoadCity loads city data, panicking on error.
func MustLoadCity() CityFile {
	city, err := LoadCity()
	if err != nil {
		panic(err)
	}
	return city
}
