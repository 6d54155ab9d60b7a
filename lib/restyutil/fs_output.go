package restyutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// InstrumentOutput receives one rendered request/response pair per call.
type InstrumentOutput interface {
	Write(id string, contents string)
}

type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput clears and recreates dir so it only ever holds the
// messages of the current run.
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	err := os.RemoveAll(dir)
	if err != nil {
		return FilesystemOutput{}, err
	}
	err = os.MkdirAll(dir, 0700)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id+".http"), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write message info file", "id", id, "err", err)
	}
}

// DumpMessages writes every completed exchange made by client to output
// with credentials redacted. A nil output is a no-op.
func DumpMessages(client *resty.Client, output InstrumentOutput) {
	if output == nil {
		return
	}
	var idcounter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := strconv.FormatUint(atomic.AddUint64(&idcounter, 1), 10)
		output.Write(id, formatHttpMessage(res))
		return nil
	})
}
