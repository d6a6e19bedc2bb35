package node

import (
	"context"
	"fmt"
	"log"

	"docbridge/internal/domain"
)

// recordFunc processes one record into its output record. Warnings are
// non-fatal findings (cleanup failures) and may accompany an error.
type recordFunc func(ctx context.Context, rec domain.Record) (domain.OutputRecord, []string, error)

// runBatch executes fn once per record, strictly in order. When the
// execution tolerates failures, a failed record contributes an error record
// and processing continues; otherwise the batch stops at the first failure
// and the records produced so far are returned with the error. Warning
// records are appended after the record that produced them, and only in
// tolerant mode.
func runBatch(ctx context.Context, name string, exec Execution, fn recordFunc) ([]domain.OutputRecord, error) {
	out := make([]domain.OutputRecord, 0, len(exec.Records))

	for i, rec := range exec.Records {
		result, warnings, err := fn(ctx, rec)
		if err != nil {
			log.Printf("node.runBatch: %s record %d failed: %v", name, i, err)
			if !exec.ContinueOnFail {
				return out, fmt.Errorf("record %d: %w", i, err)
			}
			out = append(out, domain.ErrorRecord(err))
			out = appendWarnings(out, exec, warnings)
			continue
		}
		out = append(out, result)
		out = appendWarnings(out, exec, warnings)
	}

	return out, nil
}

func appendWarnings(out []domain.OutputRecord, exec Execution, warnings []string) []domain.OutputRecord {
	if !exec.ContinueOnFail {
		return out
	}
	for _, w := range warnings {
		out = append(out, domain.WarningRecord(w))
	}
	return out
}
