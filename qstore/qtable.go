// Package qstore provides Q-value storage the backup operators read from.
// Ownership of the values stays with the learning loop; the engine side only
// sees the read-only QSource view.
package qstore

import (
	"encoding/json"
	"os"

	"github.com/seeprybyrun/burlap/types"
)

// QTable stores one agent's joint-action values keyed by state hash and
// joint action hash.
type QTable struct {
	table    map[string]map[string]float64
	defaultQ float64
}

var _ types.QSource = &QTable{}

func NewQTable(defaultQ float64) *QTable {
	return &QTable{
		table:    make(map[string]map[string]float64),
		defaultQ: defaultQ,
	}
}

func (q *QTable) Get(state, action string) float64 {
	if _, ok := q.table[state]; !ok {
		return q.defaultQ
	}
	if _, ok := q.table[state][action]; !ok {
		return q.defaultQ
	}
	return q.table[state][action]
}

func (q *QTable) Set(state, action string, val float64) {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	q.table[state][action] = val
}

// QValue satisfies types.QSource over the stored table.
func (q *QTable) QValue(s types.State, ja *types.JointAction) float64 {
	return q.Get(s.Hash(), ja.Hash())
}

// Write saves the table as JSON.
func (q *QTable) Write(path string) error {
	data, err := json.Marshal(q.table)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Read loads a table previously saved with Write, replacing the contents.
func (q *QTable) Read(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	table := make(map[string]map[string]float64)
	if err := json.Unmarshal(data, &table); err != nil {
		return err
	}
	q.table = table
	return nil
}

// AgentTables is an in-memory QSourceMap: one QTable per agent.
type AgentTables struct {
	tables map[string]*QTable
}

var _ types.QSourceMap = &AgentTables{}

func NewAgentTables(agents []string, defaultQ float64) *AgentTables {
	tables := make(map[string]*QTable)
	for _, a := range agents {
		tables[a] = NewQTable(defaultQ)
	}
	return &AgentTables{tables: tables}
}

func (m *AgentTables) AgentQSource(agent string) (types.QSource, bool) {
	t, ok := m.tables[agent]
	if !ok {
		return nil, false
	}
	return t, true
}

// Table exposes the mutable table for the learning side.
func (m *AgentTables) Table(agent string) (*QTable, bool) {
	t, ok := m.tables[agent]
	return t, ok
}
