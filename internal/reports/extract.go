package reports

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"front-auditor/internal/apperr"

	"github.com/klauspost/compress/zip"
)

// Extract unpacks the zip at archivePath into dest and returns the paths of
// the extracted files. Entries that would land outside dest are rejected.
func Extract(archivePath, dest string) ([]string, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, apperr.New(apperr.KindDecompress, "open "+filepath.Base(archivePath), err)
	}
	defer reader.Close()

	err = os.MkdirAll(dest, 0755)
	if err != nil {
		return nil, apperr.New(apperr.KindDirectoryCreate, "extract", err)
	}

	root, err := filepath.Abs(dest)
	if err != nil {
		return nil, apperr.New(apperr.KindDecompress, "extract", err)
	}

	files := []string{}
	for _, f := range reader.File {
		target := filepath.Join(root, filepath.FromSlash(f.Name))
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return files, apperr.New(apperr.KindDecompress, "extract", fmt.Errorf("illegal entry %q", f.Name))
		}

		if f.FileInfo().IsDir() {
			err = os.MkdirAll(target, 0755)
			if err != nil {
				return files, apperr.New(apperr.KindDirectoryCreate, "extract", err)
			}
			continue
		}

		err = extractFile(f, target)
		if err != nil {
			return files, apperr.New(apperr.KindDecompress, "extract "+f.Name, err)
		}
		files = append(files, target)
	}
	return files, nil
}

func extractFile(f *zip.File, target string) error {
	err := os.MkdirAll(filepath.Dir(target), 0755)
	if err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, src)
	closeErr := out.Close()
	if err != nil {
		return err
	}
	return closeErr
}
