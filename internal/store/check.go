package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"runtime"
)

// Report describes the state of a task file on disk.
type Report struct {
	Path     string
	Exists   bool
	Mode     fs.FileMode
	Count    int
	Problems []string
}

// OwnerOnly reports whether group and other have no access. It is always
// true on platforms without permission bits.
func (r *Report) OwnerOnly() bool {
	if runtime.GOOS == "windows" {
		return true
	}
	return r.Mode.Perm()&0o077 == 0
}

// Valid reports whether the file exists and matched the schema.
func (r *Report) Valid() bool {
	return r.Exists && len(r.Problems) == 0
}

// Check inspects the task file without modifying it. Only read failures are
// returned as errors; format problems are listed in the report.
func (s *FileStore) Check() (*Report, error) {
	report := &Report{Path: s.path}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return report, nil
		}
		return nil, err
	}
	report.Exists = true
	report.Mode = info.Mode()
	if info.IsDir() {
		report.Problems = append(report.Problems, "path is a directory")
		return report, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		report.Problems = append(report.Problems, "invalid JSON: "+err.Error())
		return report, nil
	}
	report.Problems = append(report.Problems, validateDocument(raw)...)
	if len(report.Problems) > 0 {
		return report, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		report.Problems = append(report.Problems, err.Error())
		return report, nil
	}
	report.Count = len(doc.Todos)
	return report, nil
}
