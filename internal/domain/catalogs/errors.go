package catalogs

import "errors"

var ErrUnknownKind = errors.New("unknown catalog kind")
