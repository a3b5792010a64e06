package judge

// RunSummary aggregates label counts for one finished batch. It feeds the
// BigQuery run bookkeeping and the Notion summary sync.
type RunSummary struct {
	RunID   string
	Variant string
	Model   string

	Total      int
	TrueCount  int
	FalseCount int
	ErrorCount int

	// OtherCount covers labels outside the expected vocabulary. The pipeline
	// passes such labels through rather than rejecting them.
	OtherCount int
}

// Summarize counts labels across a batch of output records.
func Summarize(records []*OutputRecord) RunSummary {
	s := RunSummary{Total: len(records)}
	for _, rec := range records {
		switch rec.Label {
		case "True":
			s.TrueCount++
		case "False":
			s.FalseCount++
		case ErrorLabel:
			s.ErrorCount++
		default:
			s.OtherCount++
		}
	}
	return s
}
