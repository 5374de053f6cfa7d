package simulation

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for programmer mistakes and invariant violations. They are
// wrapped with context and compared with errors.Is. A user-rejectable
// condition is never reported through these; see Rejection.
var (
	// ErrUnknownProject indicates an identifier that is not in the catalog.
	ErrUnknownProject = constError("unknown project")

	// ErrDuplicateProject indicates a catalog with two entries sharing an id.
	ErrDuplicateProject = constError("duplicate project")

	// ErrInvalidProject indicates a malformed catalog entry.
	ErrInvalidProject = constError("invalid project definition")

	// ErrInvalidApplier indicates an applier on an unknown stat or with an unusable modifier.
	ErrInvalidApplier = constError("invalid applier")

	// ErrUnknownFinancing indicates a financing type the engine does not model.
	ErrUnknownFinancing = constError("unknown financing option")

	// ErrNonPositiveBaseline indicates savings computed against a baseline with no emissions.
	ErrNonPositiveBaseline = constError("baseline emissions must be positive")

	// ErrGameOver indicates an intent issued after the game was won or lost.
	ErrGameOver = constError("game is over")

	// ErrCorruptHistory indicates period bookkeeping that no longer lines up.
	ErrCorruptHistory = constError("inconsistent period history")
)
