package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/guardias-api/internal/domain/entity"
)

// Columnas del CSV de delegaciones (separador ';', cabecera obligatoria).
var delegationColumns = []string{"nombre", "codigo", "pais", "region"}

// readDelegationsCSV decodifica un CSV ISO-8859-1 exportado de la hoja de delegaciones.
// Solo "nombre" es obligatorio; las celdas vacías quedan a nil.
func readDelegationsCSV(in io.Reader) ([]*entity.Delegation, error) {
	r := csv.NewReader(transform.NewReader(in, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("csv: falta la cabecera")
		}
		return nil, err
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := idx["nombre"]; !ok {
		return nil, fmt.Errorf("csv: falta la columna nombre")
	}
	for name := range idx {
		if !slices.Contains(delegationColumns, name) {
			return nil, fmt.Errorf("csv: columna inesperada %q", name)
		}
	}

	cell := func(rec []string, col string) *string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return nil
		}
		v := strings.TrimSpace(rec[i])
		if v == "" {
			return nil
		}
		return &v
	}

	var out []*entity.Delegation
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv línea %d: %w", line, err)
		}
		name := cell(rec, "nombre")
		if name == nil {
			return nil, fmt.Errorf("csv línea %d: nombre vacío", line)
		}
		d := &entity.Delegation{
			Name:       *name,
			Code:       cell(rec, "codigo"),
			RegionCode: cell(rec, "region"),
			Active:     true,
		}
		if pais := cell(rec, "pais"); pais != nil {
			cc := strings.ToUpper(*pais)
			d.CountryCode = &cc
		}
		out = append(out, d)
	}
	return out, nil
}
