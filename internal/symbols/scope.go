package symbols

import (
	"fmt"

	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

// LocalVar is a scalar local of one script. ID is unique within the script
// and lets the generator map the variable to its stack slot.
type LocalVar struct {
	ID    int
	Name  string
	Type  types.Primitive
	Param bool
	Span  source.Span
}

// LocalArray is a local array. Slot is its position among the script's
// arrays in declaration order, parameters first.
type LocalArray struct {
	Name  string
	Slot  int
	Type  types.Primitive
	Param bool
	Span  source.Span
}

// Ref returns the array reference type used when the array is passed by name.
func (a LocalArray) Ref() types.ArrayReference {
	return types.ArrayReference{Elem: a.Type, Index: a.Slot}
}

// Scope models a lexical block scope with a parent chain.
type Scope struct {
	Parent ScopeID
	Vars   map[string]LocalVar
	Arrays map[string]LocalArray
}

// Scopes stores the scopes of one script. Index 0 is reserved for NoScopeID.
type Scopes struct {
	data   []Scope
	vars   int
	arrays int
}

func NewScopes() *Scopes {
	return &Scopes{data: make([]Scope, 1, 8)}
}

// New allocates a child scope of parent; NoScopeID makes a root scope.
func (s *Scopes) New(parent ScopeID) ScopeID {
	s.data = append(s.data, Scope{
		Parent: parent,
		Vars:   make(map[string]LocalVar),
		Arrays: make(map[string]LocalArray),
	})
	return ScopeID(len(s.data) - 1)
}

// Get returns the scope pointer or nil if ID is invalid.
func (s *Scopes) Get(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

// VarCount is the number of scalar locals declared so far.
func (s *Scopes) VarCount() int { return s.vars }

// ArrayCount is the number of arrays declared so far.
func (s *Scopes) ArrayCount() int { return s.arrays }

func (s *Scopes) LookupVar(id ScopeID, name string) (LocalVar, bool) {
	for sc := s.Get(id); sc != nil; sc = s.Get(sc.Parent) {
		if v, ok := sc.Vars[name]; ok {
			return v, true
		}
	}
	return LocalVar{}, false
}

func (s *Scopes) LookupArray(id ScopeID, name string) (LocalArray, bool) {
	for sc := s.Get(id); sc != nil; sc = s.Get(sc.Parent) {
		if a, ok := sc.Arrays[name]; ok {
			return a, true
		}
	}
	return LocalArray{}, false
}

// DeclareVar adds a scalar local to scope id. A name visible from id is
// rejected with ErrAlreadyDefined and nothing is added.
func (s *Scopes) DeclareVar(id ScopeID, v LocalVar) (LocalVar, error) {
	if _, ok := s.LookupVar(id, v.Name); ok {
		return LocalVar{}, fmt.Errorf("local %q: %w", v.Name, ErrAlreadyDefined)
	}
	v.ID = s.vars
	s.vars++
	s.Get(id).Vars[v.Name] = v
	return v, nil
}

// DeclareArray adds an array to scope id and assigns the next array slot.
func (s *Scopes) DeclareArray(id ScopeID, a LocalArray) (LocalArray, error) {
	if _, ok := s.LookupArray(id, a.Name); ok {
		return LocalArray{}, fmt.Errorf("array %q: %w", a.Name, ErrAlreadyDefined)
	}
	a.Slot = s.arrays
	s.arrays++
	s.Get(id).Arrays[a.Name] = a
	return a, nil
}
