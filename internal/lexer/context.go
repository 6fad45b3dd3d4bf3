package lexer

// Context gives the lexer just enough of the engine's process-wide state
// to resolve macros during tokenization, without coupling it to the
// parser or target store types directly.
type Context interface {
	// CurrentTarget returns the name of the target block currently being
	// parsed, and whether one is open at all.
	CurrentTarget() (name string, ok bool)

	// TargetDeps returns the dependency list accumulated so far for the
	// named target (used to resolve $(dep[N])).
	TargetDeps(name string) (deps []string, ok bool)

	// LookupDefine resolves a user-defined $NAME reference.
	LookupDefine(name string) (value string, ok bool)

	// DefineNames lists known define names, for "did you mean" hints on
	// an undefined $NAME.
	DefineNames() []string
}
