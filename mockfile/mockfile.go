// Package mockfile writes the fixtures that let a passing iteration be
// replayed offline: the run config, the state the interactor produced and the
// item that drove it.
package mockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/yaml.v3"

	"github.com/theGhostJW/zenith-with-typescript-sub000/types"
)

// ErrMissingRunConfig is returned when an iteration is offered for mocking
// before any run config has been seen
var ErrMissingRunConfig = errors.New("run config missing")

// NameFunc returns the file a mock for the given item should be written to
type NameFunc func(itemID, testName string, runConfig map[string]any) (string, error)

// Mock is the content of a mock file
type Mock struct {
	RunConfig map[string]any `yaml:"runConfig"`
	APState   map[string]any `yaml:"apState"`
	Item      map[string]any `yaml:"item"`
}

// Writer serialises mocks for iterations with passing validators
type Writer struct {
	log  log.Logger
	name NameFunc
}

// NewWriter creates a Writer. A nil NameFunc names files by test and item
// under dir.
func NewWriter(logger log.Logger, dir string, name NameFunc) *Writer {
	if logger == nil {
		logger = log.New()
	}
	if name == nil {
		name = DefaultNameFunc(dir)
	}
	return &Writer{log: logger, name: name}
}

// Write serialises the iteration's mock. An existing file of the same name is
// overwritten.
func (w *Writer) Write(it types.IterationInfo, runConfig map[string]any) error {
	if runConfig == nil {
		return ErrMissingRunConfig
	}
	path, err := w.name(it.ID, it.TestName, runConfig)
	if err != nil {
		return fmt.Errorf("failed to name mock for %s item %s: %w", it.TestName, it.ID, err)
	}

	data, err := yaml.Marshal(Mock{RunConfig: runConfig, APState: it.APState, Item: it.Item})
	if err != nil {
		return fmt.Errorf("failed to marshal mock: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create mock directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mock %s: %w", path, err)
	}
	w.log.Debug("Wrote mock", "test", it.TestName, "item", it.ID, "path", path)
	return nil
}

// Load reads a mock file back
func Load(path string) (*Mock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mock: %w", err)
	}
	var m Mock
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse mock %s: %w", path, err)
	}
	return &m, nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// DefaultNameFunc names mocks <dir>/<environment>/<testName>_<itemID>.yaml,
// leaving out the environment level when the run config has none
func DefaultNameFunc(dir string) NameFunc {
	return func(itemID, testName string, runConfig map[string]any) (string, error) {
		if testName == "" {
			return "", errors.New("test name is empty")
		}
		file := unsafeChars.ReplaceAllString(testName+"_"+itemID, "_") + ".yaml"
		if env, ok := runConfig["environment"]; ok {
			return filepath.Join(dir, unsafeChars.ReplaceAllString(fmt.Sprint(env), "_"), file), nil
		}
		return filepath.Join(dir, file), nil
	}
}
