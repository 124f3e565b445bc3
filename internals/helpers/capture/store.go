// file: internals/helpers/capture/store.go
package capture

import (
	"context"
	"errors"
	"io"
)

// ErrServiceUnstable marca fallas de red/servicio del almacén remoto.
// El caller puede reintentar; ninguna referencia relacional quedó a medias.
var ErrServiceUnstable = errors.New("capture store unstable")

// UploadResult: id opaco (object key) + URL pública del comprobante.
type UploadResult struct {
	ID  string
	URL string
}

// Store es el contrato mínimo que necesita el motor de facturación sobre el
// almacén de comprobantes. La implementación concreta (OSS) vive aparte para
// poder inyectar un fake en tests.
type Store interface {
	Upload(ctx context.Context, content io.Reader, name, folder string) (UploadResult, error)
	Delete(ctx context.Context, id string) error
	Rename(ctx context.Context, id, newName string) (UploadResult, error)
}
