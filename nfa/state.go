package nfa

import "github.com/coregx/wrx/internal/classvec"

// StateID indexes a State within a Table. InvalidState (-1) marks "no
// transition"; a signed 32-bit index gives headroom for the 32767-state
// cap to be enforced explicitly rather than by integer overflow.
type StateID int32

// InvalidState is the sentinel meaning "no transition" for State.S0/S1.
const InvalidState StateID = -1

// MaxStates is the hard ceiling on the number of states a single NFA may
// contain: the largest index representable in 15 bits.
const MaxStates = 32767

// State is a single NFA node: one opcode, up to two outgoing transitions,
// and an opcode-specific payload.
//
// Every field not used by a given Op is left at its zero value. Only CHC
// normally carries two live transitions (S0 and S1); every other non-EOM
// opcode uses S0 only, and EOM uses neither.
type State struct {
	Op Opcode
	S0 StateID
	S1 StateID

	// Byte is the payload for MTC/MCI.
	Byte byte

	// Class is the payload for SET. It is always non-nil for a SET state
	// and always owned by this State (quantifier duplication deep-copies
	// it via classvec.Vector.Clone).
	Class *classvec.Vector

	// Idx is the capture-slot index for REC, STP, BRF and BRI.
	Idx int
}
