package resolver

// SymbolPool interns atom names so that atom equality is pointer equality.
// A pool is not safe for concurrent interning; a World stops interning once it is built.
type SymbolPool struct {
	atoms map[string]*Atom
}

// NewSymbolPool returns an empty symbol pool.
func NewSymbolPool() *SymbolPool {
	return &SymbolPool{atoms: make(map[string]*Atom)}
}

// Intern returns the canonical atom for the name, creating it if needed.
func (p *SymbolPool) Intern(name string) *Atom {
	if a, ok := p.atoms[name]; ok {
		return a
	}
	a := &Atom{Name: name}
	p.atoms[name] = a
	return a
}

// Lookup returns the canonical atom for the name without inserting it.
func (p *SymbolPool) Lookup(name string) (*Atom, bool) {
	a, ok := p.atoms[name]
	return a, ok
}

// Len returns the number of interned atoms.
func (p *SymbolPool) Len() int { return len(p.atoms) }
