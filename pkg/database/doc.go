// Package database keeps a ledger of perturbation runs through gorm. The
// ledger is dialect-neutral; the postgres and mariadb packages open the
// connection and hand it to NewLedger.
//
// Each CLI invocation is stored as a Run with its settings, the input and
// output locations, timing and the error, if any:
//
//	err := ledger.RecordRun(ctx, &database.Run{
//	    Perturbation:  "deletion",
//	    Strategy:      "random",
//	    PerturbedFrac: 0.5,
//	    Examples:      5622,
//	    StartedAt:     start,
//	    FinishedAt:    time.Now(),
//	})
//
// Errors returned by the ledger are translated to ErrRecordNotFound,
// ErrDuplicateKey and ErrInvalidData where gorm reports them.
package database
