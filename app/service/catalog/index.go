package catalog

// ProductIndex maps created product names to their identifiers for the life of
// the process. It only grows and is not safe for concurrent use.
type ProductIndex struct {
	ids map[string]string
}

func NewProductIndex() *ProductIndex {
	return &ProductIndex{ids: make(map[string]string)}
}

func (i *ProductIndex) Put(name, id string) {
	i.ids[name] = id
}

// Lookup reports the identifier recorded for name.
func (i *ProductIndex) Lookup(name string) (string, bool) {
	id, ok := i.ids[name]
	return id, ok
}

// Resolve returns the identifier for name, or name itself when it is unknown.
func (i *ProductIndex) Resolve(name string) string {
	if id, ok := i.Lookup(name); ok {
		return id
	}

	return name
}

func (i *ProductIndex) Len() int {
	return len(i.ids)
}
