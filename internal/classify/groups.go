package classify

// Groups maps keys to filenames, preserving the order in which keys were
// first added and the order of files within each key.
type Groups struct {
	keys  []string
	files map[string][]string
}

// NewGroups returns an empty Groups.
func NewGroups() *Groups {
	return &Groups{files: make(map[string][]string)}
}

// Add appends file under key.
func (g *Groups) Add(key, file string) {
	if g.files == nil {
		g.files = make(map[string][]string)
	}
	if _, ok := g.files[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.files[key] = append(g.files[key], file)
}

// Keys returns keys in first-seen order.
func (g *Groups) Keys() []string {
	return append([]string(nil), g.keys...)
}

// Files returns the files stored under key.
func (g *Groups) Files(key string) []string {
	return append([]string(nil), g.files[key]...)
}

// Has reports whether key holds at least one file.
func (g *Groups) Has(key string) bool {
	_, ok := g.files[key]
	return ok
}

// Len is the number of keys.
func (g *Groups) Len() int {
	return len(g.keys)
}

// Total is the number of files across all keys.
func (g *Groups) Total() int {
	total := 0
	for _, files := range g.files {
		total += len(files)
	}
	return total
}

// Group builds Groups from docs using keyFn.
func Group(docs []Document, keyFn func(Document) string) *Groups {
	groups := NewGroups()
	for _, doc := range docs {
		groups.Add(keyFn(doc), doc.Name)
	}
	return groups
}
