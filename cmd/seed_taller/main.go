// seed_taller genera un script SQL para poblar clientes y vehículos a partir
// del CSV exportado del sistema anterior del taller (codificado en ISO-8859-1).
//
// Columna esperada: nombre,telefono,email,marca,modelo,año,placa,vin,kilometraje
//
// Uso: go run ./cmd/seed_taller [ruta/clientes.csv]
// Por defecto busca clientes.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_clientes.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type registro struct {
	nombre      string
	telefono    string
	email       string
	marca       string
	modelo      string
	anio        int
	placa       string
	vin         string
	kilometraje int
}

func main() {
	csvPath := "clientes.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// El export del sistema anterior viene en ISO-8859-1, no UTF-8
	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.FieldsPerRecord = 9
	rows, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var registros []registro
	vistos := make(map[string]bool) // teléfonos ya emitidos, el teléfono es único
	for i, row := range rows {
		if i == 0 && strings.EqualFold(row[0], "nombre") {
			continue // cabecera
		}
		r := registro{
			nombre:   strings.TrimSpace(row[0]),
			telefono: strings.TrimSpace(row[1]),
			email:    strings.TrimSpace(row[2]),
			marca:    strings.TrimSpace(row[3]),
			modelo:   strings.TrimSpace(row[4]),
			placa:    strings.ToUpper(strings.TrimSpace(row[6])),
			vin:      strings.ToUpper(strings.TrimSpace(row[7])),
		}
		r.anio, _ = strconv.Atoi(strings.TrimSpace(row[5]))
		r.kilometraje, _ = strconv.Atoi(strings.TrimSpace(row[8]))
		if r.nombre == "" || r.telefono == "" || r.placa == "" {
			fmt.Fprintf(os.Stderr, "fila %d omitida: nombre, teléfono y placa son requeridos\n", i+1)
			continue
		}
		registros = append(registros, r)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_clientes.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Clientes y vehículos migrados del sistema anterior\n")
	out.WriteString("-- Generado desde clientes.csv por cmd/seed_taller\n\n")

	clientes, vehiculos := 0, 0
	for _, r := range registros {
		nombre := escapeSQL(r.nombre)
		telefono := escapeSQL(r.telefono)

		if !vistos[r.telefono] {
			vistos[r.telefono] = true
			email := "NULL"
			if r.email != "" {
				email = "'" + escapeSQL(r.email) + "'"
			}
			fmt.Fprintf(out, "INSERT INTO customers (id, nombre, telefono, whatsapp, email)\n")
			fmt.Fprintf(out, "VALUES (gen_random_uuid(), '%s', '%s', '%s', %s)\n", nombre, telefono, telefono, email)
			out.WriteString("ON CONFLICT (telefono) DO NOTHING;\n\n")
			clientes++
		}

		vin := "NULL"
		if r.vin != "" {
			vin = "'" + escapeSQL(r.vin) + "'"
		}
		fmt.Fprintf(out, "INSERT INTO vehicles (id, vin, marca, modelo, anio, placa_actual, kilometraje, customer_id, activo)\n")
		fmt.Fprintf(out, "SELECT gen_random_uuid(), %s, '%s', '%s', %d, '%s', %d, c.id, TRUE\n",
			vin, escapeSQL(r.marca), escapeSQL(r.modelo), r.anio, escapeSQL(r.placa), r.kilometraje)
		fmt.Fprintf(out, "FROM customers c WHERE c.telefono = '%s'\n", telefono)
		fmt.Fprintf(out, "AND NOT EXISTS (SELECT 1 FROM vehicles v WHERE v.placa_actual = '%s' AND v.activo);\n\n", escapeSQL(r.placa))
		vehiculos++
	}

	fmt.Printf("Generado %s: %d clientes, %d vehículos\n", outPath, clientes, vehiculos)
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
