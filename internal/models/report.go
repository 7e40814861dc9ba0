package models

// BatchReport is the outcome of one import invocation. It is immutable once
// returned: counts, the ordered per-row error list and the batch identifier
// that tags every record created by the invocation.
type BatchReport struct {
	BatchID  string   `json:"batch_id"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors"`
}
