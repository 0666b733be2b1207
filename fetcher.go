package dartdoc

import "context"

// ReportFetcher retrieves the raw archive of a filing by its receipt number.
type ReportFetcher interface {
	// FetchReport downloads the archive for receiptNo.
	// The context controls timeout and cancellation.
	FetchReport(ctx context.Context, receiptNo string) ([]byte, error)
}

// Unpacker turns a downloaded archive into decoded document text.
type Unpacker interface {
	Unpack(data []byte) (string, error)
}
