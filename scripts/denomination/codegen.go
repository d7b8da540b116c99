package main

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
)

type denomination struct {
	Name       string
	Ident      string
	MinorUnits int64
}

func main() {
	// Open the input file and read its contents
	data, err := readCsvFile(filepath.Join("scripts", "denomination", "denomination_data.csv"))
	if err != nil {
		panic(fmt.Errorf("error reading CSV file: %v", err))
	}

	// Convert the CSV records to a list of denominations
	denoms, err := convertDataToDenominations(data)
	if err != nil {
		panic(fmt.Errorf("error converting CSV records: %v", err))
	}

	// Generate Go code from the denominations using a template
	code, err := generateGoCode(filepath.Join("scripts", "denomination", "denomination_data.tmpl"), denoms)
	if err != nil {
		panic(fmt.Errorf("error generating Go code: %v", err))
	}

	// Write the generated Go code to a file
	err = writeToFile("denomination_data.go", code)
	if err != nil {
		panic(fmt.Errorf("error writing to file: %v", err))
	}
}

func readCsvFile(filename string) ([][]string, error) {
	in, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()

	reader := csv.NewReader(in)
	_, err = reader.Read() // header
	if err != nil {
		return nil, err
	}
	return reader.ReadAll()
}

func convertDataToDenominations(data [][]string) ([]denomination, error) {
	denoms := make([]denomination, 0, len(data))
	for _, rec := range data {
		units, err := strconv.ParseInt(rec[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing face value of %q: %w", rec[0], err)
		}
		if units <= 0 {
			return nil, fmt.Errorf("face value of %q must be positive", rec[0])
		}
		denoms = append(denoms, denomination{
			Name:       rec[0],
			Ident:      rec[1],
			MinorUnits: units,
		})
	}

	// Canonical order is ascending face value
	sort.SliceStable(denoms, func(i, j int) bool {
		return denoms[i].MinorUnits < denoms[j].MinorUnits
	})
	for i := 1; i < len(denoms); i++ {
		if denoms[i].MinorUnits == denoms[i-1].MinorUnits {
			return nil, fmt.Errorf("%q and %q share face value %v", denoms[i-1].Name, denoms[i].Name, denoms[i].MinorUnits)
		}
	}
	return denoms, nil
}

func generateGoCode(filename string, denoms []denomination) ([]byte, error) {
	fmap := template.FuncMap{
		"lower": strings.ToLower,
		"underscore": func(s string) string {
			return strings.ReplaceAll(s, " ", "_")
		},
	}
	tmpl, err := template.New(filepath.Base(filename)).Funcs(fmap).ParseFiles(filename)
	if err != nil {
		return nil, err
	}

	var output bytes.Buffer
	err = tmpl.Execute(&output, denoms)
	if err != nil {
		return nil, err
	}

	// Format the output as Go code
	return format.Source(output.Bytes())
}

func writeToFile(filename string, content []byte) error {
	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	writer := bufio.NewWriter(out)
	_, err = writer.Write(content)
	if err != nil {
		return err
	}
	return writer.Flush()
}
