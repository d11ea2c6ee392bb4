package storage

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// sonicThreshold is the payload size in bytes above which JSON
// decoding switches to sonic.
const sonicThreshold = 10 << 10

// SaveJSON serializes v to rel as UTF-8 JSON with 4-space indentation.
// Non-ASCII characters are written literally, not escaped.
func (m *Manager) SaveJSON(rel string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return m.failKind("save_json", rel, KindCorrupt, err)
	}

	if err := m.writeManaged("save_json", rel, buf.Bytes()); err != nil {
		return err
	}
	m.log.Infof("json saved: %s", rel)
	return nil
}

// LoadJSON deserializes rel into a mapping. Payloads above
// sonicThreshold decode through sonic, smaller ones through
// encoding/json.
func (m *Manager) LoadJSON(rel string) (map[string]any, error) {
	data, err := m.readManaged("load_json", rel)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if len(data) > sonicThreshold {
		err = sonic.Unmarshal(data, &out)
	} else {
		err = json.Unmarshal(data, &out)
	}
	if err != nil {
		return nil, m.failKind("load_json", rel, KindCorrupt, err)
	}
	return out, nil
}

// SaveCSV serializes rows to rel as comma-delimited records with "\n"
// terminators. A non-empty header is written first.
func (m *Manager) SaveCSV(rel string, rows [][]string, header []string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if len(header) > 0 {
		if err := w.Write(header); err != nil {
			return m.failKind("save_csv", rel, KindIO, err)
		}
	}
	if err := w.WriteAll(rows); err != nil {
		return m.failKind("save_csv", rel, KindIO, err)
	}

	if err := m.writeManaged("save_csv", rel, buf.Bytes()); err != nil {
		return err
	}
	m.log.Infof("csv saved: %s", rel)
	return nil
}

// LoadCSV deserializes rel into rows, header line included if one was
// written. Records may have varying field counts.
func (m *Manager) LoadCSV(rel string) ([][]string, error) {
	data, err := m.readManaged("load_csv", rel)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, m.failKind("load_csv", rel, KindCorrupt, err)
	}
	return records, nil
}

// SaveYAML serializes v to rel as YAML.
func (m *Manager) SaveYAML(rel string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return m.failKind("save_yaml", rel, KindCorrupt, err)
	}

	if err := m.writeManaged("save_yaml", rel, data); err != nil {
		return err
	}
	m.log.Infof("yaml saved: %s", rel)
	return nil
}

// LoadYAML deserializes rel into a mapping.
func (m *Manager) LoadYAML(rel string) (map[string]any, error) {
	data, err := m.readManaged("load_yaml", rel)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, m.failKind("load_yaml", rel, KindCorrupt, err)
	}
	return out, nil
}

// SaveTOML serializes v to rel as TOML.
func (m *Manager) SaveTOML(rel string, v any) error {
	data, err := toml.Marshal(v)
	if err != nil {
		return m.failKind("save_toml", rel, KindCorrupt, err)
	}

	if err := m.writeManaged("save_toml", rel, data); err != nil {
		return err
	}
	m.log.Infof("toml saved: %s", rel)
	return nil
}

// LoadTOML deserializes rel into a mapping.
func (m *Manager) LoadTOML(rel string) (map[string]any, error) {
	data, err := m.readManaged("load_toml", rel)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := toml.Unmarshal(data, &out); err != nil {
		return nil, m.failKind("load_toml", rel, KindCorrupt, err)
	}
	return out, nil
}

// writeManaged resolves rel, creates parent directories, and writes
// data with the configured file mode.
func (m *Manager) writeManaged(op, rel string, data []byte) error {
	path, err := m.resolve(rel)
	if err != nil {
		return m.failKind(op, rel, KindInvalid, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), m.dirMode); err != nil {
		return m.fail(op, rel, err)
	}
	if err := os.WriteFile(path, data, m.fileMode); err != nil {
		return m.fail(op, rel, err)
	}
	return nil
}

// readManaged resolves rel and reads the whole file.
func (m *Manager) readManaged(op, rel string) ([]byte, error) {
	path, err := m.resolve(rel)
	if err != nil {
		return nil, m.failKind(op, rel, KindInvalid, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, m.fail(op, rel, err)
	}
	return data, nil
}
