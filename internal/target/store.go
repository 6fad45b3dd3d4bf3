// Package target holds the mapping from target name to its ordered
// dependency and command lists. Declaration order is preserved and is
// semantically significant: $(dep[N]) indexes into a target's Deps in
// declaration order.
package target

import "fmt"

// Target is a named build output plus the recipe that produces it.
type Target struct {
	Name     string
	Deps     []string
	Commands []string
}

// Store is an insertion-ordered map from target name to Target. Indices
// are stable and correspond to declaration order.
type Store struct {
	order  []string
	byIdx  []*Target
	byName map[string]int
}

func NewStore() *Store {
	return &Store{byName: make(map[string]int)}
}

// AddTarget registers a new target. It returns its stable index. name
// must not already be registered.
func (s *Store) AddTarget(name string) (int, error) {
	if _, exists := s.byName[name]; exists {
		return 0, fmt.Errorf("target %q already declared", name)
	}
	idx := len(s.byIdx)
	s.byIdx = append(s.byIdx, &Target{Name: name})
	s.order = append(s.order, name)
	s.byName[name] = idx
	return idx, nil
}

// Lookup returns the target registered under name, if any.
func (s *Store) Lookup(name string) (*Target, bool) {
	idx, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return s.byIdx[idx], true
}

// AppendDep appends dep to targetName's dependency list.
func (s *Store) AppendDep(targetName, dep string) error {
	t, ok := s.Lookup(targetName)
	if !ok {
		return fmt.Errorf("no such target %q", targetName)
	}
	t.Deps = append(t.Deps, dep)
	return nil
}

// AppendCommand appends a shell command string to targetName's recipe.
func (s *Store) AppendCommand(targetName, command string) error {
	t, ok := s.Lookup(targetName)
	if !ok {
		return fmt.Errorf("no such target %q", targetName)
	}
	t.Commands = append(t.Commands, command)
	return nil
}

// Deps returns the target's dependency list in declaration order.
func (s *Store) Deps(name string) ([]string, bool) {
	t, ok := s.Lookup(name)
	if !ok {
		return nil, false
	}
	return t.Deps, true
}

// Commands returns the target's command list in declaration order.
func (s *Store) Commands(name string) ([]string, bool) {
	t, ok := s.Lookup(name)
	if !ok {
		return nil, false
	}
	return t.Commands, true
}

// Names returns every declared target name, in declaration order.
func (s *Store) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// First returns the first declared target's name. ok is false when no
// target has been declared. The parser does not use it as a fallback
// build root.
func (s *Store) First() (string, bool) {
	if len(s.order) == 0 {
		return "", false
	}
	return s.order[0], true
}

// Len reports how many targets have been declared.
func (s *Store) Len() int { return len(s.order) }
