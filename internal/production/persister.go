package production

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// SubjectSnapshot captures a subject's last known state for persistence
// across runs.
type SubjectSnapshot struct {
	Subject   string    `json:"subject" yaml:"subject"`
	State     any       `json:"state" yaml:"state"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// JSONPersister is a stdlib-only file-based persister using JSON
// serialization, one file per subject.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

func (p *JSONPersister) Save(snapshot SubjectSnapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snapshot.Subject+".json")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}

	return nil
}

func (p *JSONPersister) Load(subject string) (SubjectSnapshot, error) {
	fn := filepath.Join(p.dir, subject+".json")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return SubjectSnapshot{}, fmt.Errorf("subject %q: %w", subject, os.ErrNotExist)
		}
		return SubjectSnapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot SubjectSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return SubjectSnapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	snapshot.Subject = subject // Ensure ID

	return snapshot, nil
}

// YAMLPersister is a file-based persister using YAML serialization.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

func (p *YAMLPersister) Save(snapshot SubjectSnapshot) error {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snapshot.Subject+".yaml")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}

	return nil
}

func (p *YAMLPersister) Load(subject string) (SubjectSnapshot, error) {
	fn := filepath.Join(p.dir, subject+".yaml")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return SubjectSnapshot{}, fmt.Errorf("subject %q: %w", subject, os.ErrNotExist)
		}
		return SubjectSnapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot SubjectSnapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return SubjectSnapshot{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	snapshot.Subject = subject // Ensure ID

	return snapshot, nil
}
