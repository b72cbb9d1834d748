package tasks

import "time"

const (
	// PageSize is the fixed number of contacts per page.
	PageSize = 10

	// DebounceInterval is the quiet period after the last keystroke
	// before a search fetch is issued.
	DebounceInterval = 500 * time.Millisecond
)

// Mutation identifies a write operation against the contact collection.
type Mutation int

const (
	MutationCreate Mutation = iota
	MutationUpdate
	MutationDelete
	MutationImport
	MutationExport
)

// String returns the mutation name for logs.
func (m Mutation) String() string {
	switch m {
	case MutationCreate:
		return "create"
	case MutationUpdate:
		return "update"
	case MutationDelete:
		return "delete"
	case MutationImport:
		return "import"
	case MutationExport:
		return "export"
	default:
		return "unknown"
	}
}

// RefetchTarget names which page to reload after a mutation.
type RefetchTarget int

const (
	// RefetchNone leaves the displayed page untouched.
	RefetchNone RefetchTarget = iota
	// RefetchFirstPage jumps back to page zero.
	RefetchFirstPage
	// RefetchCurrentPage reloads the page already displayed.
	RefetchCurrentPage
)

// refetchPolicy maps each mutation to the page it invalidates. Create and
// import can grow the collection anywhere, so they reset to the first
// page; update and delete only disturb the page they touched; export is
// read-only.
var refetchPolicy = map[Mutation]RefetchTarget{
	MutationCreate: RefetchFirstPage,
	MutationImport: RefetchFirstPage,
	MutationUpdate: RefetchCurrentPage,
	MutationDelete: RefetchCurrentPage,
	MutationExport: RefetchNone,
}

// PolicyFor returns the refetch target for the mutation.
func PolicyFor(m Mutation) RefetchTarget {
	return refetchPolicy[m]
}
