package output

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// WriteMsgpack writes v as msgpack to w, using the msgpack struct tags.
func WriteMsgpack(w io.Writer, v any) error {
	return msgpack.NewEncoder(w).Encode(v)
}
