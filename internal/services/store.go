package services

import (
	"context"
	"io"

	"github.com/bittenrichard/30-07/internal/baserow"
)

// RowStore is the slice of the Baserow gateway the services and handlers
// consume. Tests swap in fakes; production wires *baserow.Client.
type RowStore interface {
	ListRows(ctx context.Context, table, filter string, out any) error
	GetRow(ctx context.Context, table string, id int, out any) error
	CreateRow(ctx context.Context, table string, fields, out any) error
	UpdateRow(ctx context.Context, table string, id int, fields, out any) error
	DeleteRow(ctx context.Context, table string, id int) error
	UploadFile(ctx context.Context, name, contentType string, r io.Reader) (*baserow.UploadedFile, error)
}
