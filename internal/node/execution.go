package node

import "docbridge/internal/domain"

// Execution carries everything one batch run needs: the node parameters,
// the input records, and the partial-failure policy. It is built by the
// caller and passed explicitly; nodes hold no per-run state.
type Execution struct {
	Params         Params
	Records        []domain.Record
	ContinueOnFail bool
}
