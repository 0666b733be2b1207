package mock

import (
	"context"

	"github.com/fwojciec/dartdoc"
)

var _ dartdoc.ReportFetcher = (*ReportFetcher)(nil)

// ReportFetcher is a mock implementation of dartdoc.ReportFetcher.
type ReportFetcher struct {
	FetchReportFn func(ctx context.Context, receiptNo string) ([]byte, error)
}

func (f *ReportFetcher) FetchReport(ctx context.Context, receiptNo string) ([]byte, error) {
	return f.FetchReportFn(ctx, receiptNo)
}

var _ dartdoc.Unpacker = (*Unpacker)(nil)

// Unpacker is a mock implementation of dartdoc.Unpacker.
type Unpacker struct {
	UnpackFn func(data []byte) (string, error)
}

func (u *Unpacker) Unpack(data []byte) (string, error) {
	return u.UnpackFn(data)
}
