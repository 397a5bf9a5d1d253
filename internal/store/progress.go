// Package store persists tour progress between runs.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// CurrentSchemaVersion is the current version of the progress file schema.
const CurrentSchemaVersion = 1

// DataDir returns the path to the tipwalk data directory.
// Uses XDG_DATA_HOME or defaults to ~/.local/share/tipwalk.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "tipwalk"), nil
}

// ProgressPath returns the path to the progress file.
func ProgressPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "progress.json"), nil
}

// TourKey identifies a tour file across working directories.
func TourKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// Record is the progress through one tour.
type Record struct {
	Tour        string `json:"tour"`                 // Absolute tour path
	LastID      string `json:"last_id,omitempty"`    // Last tip shown
	Seen        int    `json:"seen"`                 // Tips shown in the current traversal
	Completed   bool   `json:"completed"`            // The last traversal reached the end
	Completions int    `json:"completions"`          // Finished traversals
	UpdatedAt   int64  `json:"updated_at,omitempty"` // Unix timestamp
}

// Shown records that the tip id was shown. The first tip of a traversal
// clears the completed flag.
func (r *Record) Shown(id string, first bool, now time.Time) {
	if first {
		r.Seen = 0
		r.Completed = false
	}
	r.LastID = id
	r.Seen++
	r.UpdatedAt = now.Unix()
}

// Finish records a finished traversal.
func (r *Record) Finish(now time.Time) {
	r.Completed = true
	r.Completions++
	r.UpdatedAt = now.Unix()
}

// ResumeFrom returns the tip to resume at, or "" to start from the top.
func (r *Record) ResumeFrom() string {
	if r == nil || r.Completed {
		return ""
	}
	return r.LastID
}

// Progress is the content of the progress file.
type Progress struct {
	Tours         map[string]*Record `json:"tours"`
	SchemaVersion int                `json:"schema_version"`
}

// NewProgress returns empty progress.
func NewProgress() *Progress {
	return &Progress{
		Tours:         make(map[string]*Record),
		SchemaVersion: CurrentSchemaVersion,
	}
}

// Get returns the record for tour, if any.
func (p *Progress) Get(tour string) (*Record, bool) {
	r, ok := p.Tours[tour]
	return r, ok
}

// Records returns all records, most recently updated first.
func (p *Progress) Records() []Record {
	records := make([]Record, 0, len(p.Tours))
	for _, r := range p.Tours {
		records = append(records, *r)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].UpdatedAt != records[j].UpdatedAt {
			return records[i].UpdatedAt > records[j].UpdatedAt
		}
		return records[i].Tour < records[j].Tour
	})
	return records
}

// ProgressFile reads and writes the progress file.
type ProgressFile struct {
	path string
	mu   sync.Mutex
}

// NewProgressFile creates a progress file handle. An empty path selects
// the default location.
func NewProgressFile(path string) (*ProgressFile, error) {
	if path == "" {
		var err error
		if path, err = ProgressPath(); err != nil {
			return nil, err
		}
	}
	return &ProgressFile{path: path}, nil
}

// Path returns the file path.
func (f *ProgressFile) Path() string {
	return f.path
}

// Load reads the progress file. A missing or corrupted file reads as empty
// progress.
func (f *ProgressFile) Load() (*Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *ProgressFile) load() (*Progress, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewProgress(), nil
		}
		return nil, err
	}

	p := NewProgress()
	if err := json.Unmarshal(data, p); err != nil {
		return NewProgress(), nil
	}
	if p.Tours == nil {
		p.Tours = make(map[string]*Record)
	}
	for key, r := range p.Tours {
		if r == nil {
			delete(p.Tours, key)
			continue
		}
		r.Tour = key
	}
	return p, nil
}

// Save writes the progress file.
func (f *ProgressFile) Save(p *Progress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.save(p)
}

func (f *ProgressFile) save(p *Progress) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return err
	}

	if p.SchemaVersion == 0 {
		p.SchemaVersion = CurrentSchemaVersion
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	// Write atomically via temp file
	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmpPath, f.path)
}

// Update loads the file, applies fn to the record for tour (created when
// missing) and saves the result.
func (f *ProgressFile) Update(tour string, fn func(r *Record)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, err := f.load()
	if err != nil {
		return err
	}
	r, ok := p.Tours[tour]
	if !ok {
		r = &Record{Tour: tour}
		p.Tours[tour] = r
	}
	fn(r)
	return f.save(p)
}

// Forget removes the record for tour. It reports whether there was one.
func (f *ProgressFile) Forget(tour string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, err := f.load()
	if err != nil {
		return false, err
	}
	if _, ok := p.Tours[tour]; !ok {
		return false, nil
	}
	delete(p.Tours, tour)
	return true, f.save(p)
}
