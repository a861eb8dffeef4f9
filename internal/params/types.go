package params

// Record is a single configurable entry rendered as one table row.
type Record struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Value       string `yaml:"value"`
}

// DisplayValue returns the value as it appears in the table.
// An empty value is shown as "" so the cell never ends up blank.
func (r Record) DisplayValue() string {
	if r.Value == "" {
		return `""`
	}
	return r.Value
}

// Section is a titled group of parameters rendered under its own sub-heading.
type Section struct {
	Title  string
	Params []Record
}

// Group is the ordered list of sections that make up the Parameters body.
type Group []Section
