package interfaces

import "time"

// ReportSummarizer renders the day's appended summaries into a CSV snapshot.
type ReportSummarizer interface {
	SummarizeDay(t time.Time) (csvPath string, err error)
	SummarizeToday() (csvPath string, err error)
}
