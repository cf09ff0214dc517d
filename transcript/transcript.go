// Package transcript archives completed delegations so hosts can audit what
// was asked, what memory came back and how the call ended. Recording is
// optional; the engine writes a record per delegation when a store is
// configured.
package transcript

import (
	"errors"
	"time"

	"github.com/hupe1980/handoff/core"
)

// ErrNotFound is returned when no record exists for the given id.
var ErrNotFound = errors.New("transcript not found")

// Record captures one completed delegation.
type Record struct {
	ID      string       `json:"id"`
	Agent   string       `json:"agent"`
	Task    string       `json:"task"`
	Mode    string       `json:"mode"`
	Success bool         `json:"success"`
	Result  string       `json:"result,omitempty"`
	Error   string       `json:"error,omitempty"`
	Shared  int          `json:"shared_memories"`
	Entries []core.Entry `json:"entries,omitempty"`
	Created time.Time    `json:"created"`
}

// Store persists delegation records.
type Store interface {
	Save(rec Record) error
	Get(id string) (Record, error)
	List() []string
}
