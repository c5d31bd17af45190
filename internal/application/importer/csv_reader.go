package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// table es un CSV ya leído: encabezados normalizados y filas de datos.
type table struct {
	index map[string]int // nombre de columna (minúsculas, sin espacios) -> posición
	rows  [][]string
}

// readTable lee un CSV UTF-8 (BOM opcional). La primera fila define las columnas.
// Los bytes UTF-8 inválidos se rechazan para no corromper nombres.
func readTable(r io.Reader) (*table, error) {
	// BOMOverride descarta el BOM UTF-8 (o decodifica UTF-16 si el BOM lo indica).
	dec := transform.NewReader(r, unicode.BOMOverride(encoding.Nop.NewDecoder()))
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("leer archivo: %w", err)
	}
	if !utf8.Valid(raw) {
		return nil, errors.New("el archivo no está codificado en UTF-8")
	}

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("el archivo está vacío")
	}
	if err != nil {
		return nil, fmt.Errorf("leer encabezados: %w", err)
	}
	t := &table{index: make(map[string]int, len(header))}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, dup := t.index[name]; !dup && name != "" {
			t.index[name] = i
		}
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer filas: %w", err)
	}
	for _, rec := range records {
		if isBlank(rec) {
			continue
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

// require verifica que existan las columnas indicadas.
func (t *table) require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if !t.has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("faltan columnas requeridas: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (t *table) has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// value devuelve la celda recortada, o "" si la columna no existe en la fila.
func (t *table) value(rec []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
